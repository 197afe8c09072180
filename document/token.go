package document

import (
	"sync/atomic"

	"github.com/viant/lexvec/lexicon"
	"github.com/viant/lexvec/tokenizer"
	"github.com/viant/lexvec/vector"
)

// Token is a view over one span of its document's text buffer. It copies no
// text; accessors slice the shared buffer on demand. Identity and vector
// lookups are delegated to the lexicon and memoized on first access. The
// memo is written with a single atomic store; because lookups are pure,
// concurrent recomputation is idempotent and no lock is needed.
type Token struct {
	doc  *Doc
	span tokenizer.Span
	memo atomic.Pointer[lexicon.Lexeme]
}

// Text returns the token's text as a zero-copy substring of the document
// buffer.
func (t *Token) Text() string { return t.doc.text[t.span.ByteStart:t.span.ByteEnd] }

// Bounds returns the token's codepoint offsets (end exclusive) in the
// original text.
func (t *Token) Bounds() (start, end int) { return t.span.Start, t.span.End }

// HasTrailingSpace reports whether the token was followed by a single space
// in the source text.
func (t *Token) HasTrailingSpace() bool { return t.span.TrailingSpace }

// IsWhitespace reports whether the token covers an irregular whitespace run.
func (t *Token) IsWhitespace() bool { return t.span.Whitespace }

func (t *Token) lexeme() *lexicon.Lexeme {
	if lx := t.memo.Load(); lx != nil {
		return lx
	}
	var lx lexicon.Lexeme
	if t.doc.lex != nil {
		lx = t.doc.lex.Lookup(t.Text())
	} else {
		lx = lexicon.Lexeme{Text: t.Text(), Hash: lexicon.Hash(t.Text())}
	}
	t.memo.Store(&lx)
	return &lx
}

// Hash returns the token's deterministic 64-bit lexical identity. The hash
// is assigned to out-of-vocabulary text as well; see InVocab.
func (t *Token) Hash() uint64 { return t.lexeme().Hash }

// Vector returns the token's embedding. Out-of-vocabulary tokens yield the
// all-zero fallback vector. The slice is shared and must not be mutated.
func (t *Token) Vector() []float32 { return t.lexeme().Vector }

// InVocab reports whether the token's text is present in the loaded
// vocabulary.
func (t *Token) InVocab() bool { return t.lexeme().InVocab }

// Similarity returns the cosine similarity between this token's embedding
// and another's. Out-of-vocabulary tokens carry zero vectors, for which an
// error is returned.
func (t *Token) Similarity(other *Token) (float64, error) {
	return vector.CosineSimilarity(t.Vector(), other.Vector())
}
