package document

import (
	"fmt"
	"iter"
	"strings"

	"github.com/viant/lexvec/lexicon"
	"github.com/viant/lexvec/tokenizer"
)

// Owner is an opaque identifier of the execution context that is logically
// responsible for an object. The core never dereferences it; equality
// comparison is the only supported operation.
type Owner string

// Doc is an ordered collection of tokens produced from one input text. It
// exclusively owns its text buffer (immutable after construction) and its
// token sequence, and holds a read-only back-reference to the lexicon of the
// model that produced it. Slicing creates views that share the buffer.
type Doc struct {
	text   string
	owner  Owner
	lex    *lexicon.Lexicon
	tokens []Token
}

// New builds a document over text from pre-computed spans. The lexicon may
// be shared across any number of documents; it is only read.
func New(text string, spans []tokenizer.Span, lex *lexicon.Lexicon, owner Owner) *Doc {
	d := &Doc{text: text, owner: owner, lex: lex, tokens: make([]Token, len(spans))}
	for i := range spans {
		d.tokens[i].doc = d
		d.tokens[i].span = spans[i]
	}
	return d
}

// Len returns the number of tokens. Input whose whitespace is anything
// other than single spaces between chunks produces whitespace spans (see
// tokenizer.Span.Whitespace) that count toward the length; Token.IsWhitespace
// distinguishes them.
func (d *Doc) Len() int { return len(d.tokens) }

// Owner returns the document's owner tag.
func (d *Doc) Owner() Owner { return d.owner }

// SetOwner reassigns the owner tag. The tag is metadata; the document's
// content remains immutable.
func (d *Doc) SetOwner(o Owner) { d.owner = o }

// TokenAt returns the i-th token in span order.
func (d *Doc) TokenAt(i int) (*Token, error) {
	if i < 0 || i >= len(d.tokens) {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(d.tokens))
	}
	return &d.tokens[i], nil
}

// Tokens returns a lazy, restartable iterator over the tokens in span order.
func (d *Doc) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for i := range d.tokens {
			if !yield(&d.tokens[i]) {
				return
			}
		}
	}
}

// Slice returns a view over tokens [start, end). The view shares the text
// buffer and lexicon with the parent and starts out with the parent's owner
// tag; use SetOwner to reassign it. Cached lexeme lookups carry over.
func (d *Doc) Slice(start, end int) (*Doc, error) {
	if start > end || start < 0 || end > len(d.tokens) {
		return nil, fmt.Errorf("%w: [%d, %d) of length %d", ErrInvalidRange, start, end, len(d.tokens))
	}
	view := &Doc{text: d.text, owner: d.owner, lex: d.lex, tokens: make([]Token, end-start)}
	for i := range view.tokens {
		src := &d.tokens[start+i]
		view.tokens[i].doc = view
		view.tokens[i].span = src.span
		if lx := src.memo.Load(); lx != nil {
			view.tokens[i].memo.Store(lx)
		}
	}
	return view, nil
}

// Text reconstructs the exact source text covered by the document's tokens,
// honoring trailing-space flags. For a document built from a full input it
// returns that input byte-for-byte (whitespace-only input, which produces
// zero tokens, is the one exception).
func (d *Doc) Text() string {
	var b strings.Builder
	for i := range d.tokens {
		t := &d.tokens[i]
		b.WriteString(t.Text())
		if t.span.TrailingSpace {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Vector returns the mean of the document's token embedding vectors,
// skipping whitespace spans. A document with no contributing tokens (or no
// lexicon) yields an all-zero vector of the lexicon's dimensionality.
func (d *Doc) Vector() []float32 {
	if d.lex == nil {
		return nil
	}
	out := make([]float32, d.lex.Dim())
	n := 0
	for i := range d.tokens {
		t := &d.tokens[i]
		if t.span.Whitespace {
			continue
		}
		for j, v := range t.Vector() {
			out[j] += v
		}
		n++
	}
	if n > 0 {
		inv := 1 / float32(n)
		for j := range out {
			out[j] *= inv
		}
	}
	return out
}
