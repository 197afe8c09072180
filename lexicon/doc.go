// Package lexicon implements the in-memory lexical store: an immutable
// mapping from token text to a deterministic 64-bit identity hash and a
// pre-trained embedding vector. Lookups are total; text outside the
// vocabulary still receives its content hash together with a shared all-zero
// vector and a cleared InVocab flag.
//
// A Lexicon is populated once (typically by the model package) and is then
// safe for concurrent lookup without locking.
package lexicon
