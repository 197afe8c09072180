// Package document defines the owner-tagged object model produced by the
// tokenization pipeline: Doc, an ordered, indexable, iterable collection of
// tokens over one immutable text buffer, and Token, a lightweight zero-copy
// view over a single span. Every object carries an opaque Owner tag naming
// the execution context responsible for it; the tag is stored, propagated,
// and compared, never interpreted.
package document
