package tokenizer

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidEncoding reports input that is not well-formed UTF-8. It is
// returned before any segmentation takes place.
var ErrInvalidEncoding = errors.New("tokenizer: input is not valid UTF-8")

// Span identifies one token's location in the source text. Start and End are
// codepoint offsets (End exclusive); ByteStart and ByteEnd are the
// corresponding byte offsets into the same buffer, kept so token text can be
// sliced without re-scanning.
type Span struct {
	Start, End         int
	ByteStart, ByteEnd int

	// TrailingSpace records that the span was followed by a single ASCII
	// space in the source. Whitespace runs of any other shape are emitted as
	// their own spans so that reconstruction stays byte-exact.
	TrailingSpace bool

	// Whitespace marks spans that cover an irregular whitespace run.
	Whitespace bool
}

// Tokenizer segments raw text into ordered spans using a fixed rule table.
// It is stateless across calls and safe for concurrent use.
type Tokenizer struct {
	rules    *Rules
	prefixes []string
	suffixes []string
}

// New creates a tokenizer for the given rule table. A nil table selects
// DefaultRules. Prefix and suffix lists are ordered longest-first at
// construction so matching priority is deterministic.
func New(rules *Rules) *Tokenizer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Tokenizer{
		rules:    rules,
		prefixes: byDescendingLength(rules.Prefixes),
		suffixes: byDescendingLength(rules.Suffixes),
	}
}

func byDescendingLength(pieces []string) []string {
	out := append([]string(nil), pieces...)
	sort.SliceStable(out, func(a, b int) bool { return len(out[a]) > len(out[b]) })
	return out
}

// Segment splits text into ordered, non-overlapping spans. Empty input and
// input consisting only of whitespace yield zero spans. For any other input,
// concatenating the span texts with their trailing-space flags reconstructs
// the input exactly.
func (t *Tokenizer) Segment(text string) ([]Span, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidEncoding
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var spans []Span
	b, r := 0, 0 // byte and codepoint cursors
	for b < len(text) {
		c, size := utf8.DecodeRuneInString(text[b:])
		if unicode.IsSpace(c) {
			startB, startR := b, r
			for b < len(text) {
				c, size = utf8.DecodeRuneInString(text[b:])
				if !unicode.IsSpace(c) {
					break
				}
				b += size
				r++
			}
			if text[startB:b] == " " && len(spans) > 0 {
				spans[len(spans)-1].TrailingSpace = true
				continue
			}
			spans = append(spans, Span{
				Start: startR, End: r, ByteStart: startB, ByteEnd: b, Whitespace: true,
			})
			continue
		}

		startB, startR := b, r
		for b < len(text) {
			c, size = utf8.DecodeRuneInString(text[b:])
			if unicode.IsSpace(c) {
				break
			}
			b += size
			r++
		}
		spans = t.splitChunk(spans, text, startB, b, startR, r)
	}
	return spans, nil
}

// splitChunk applies the exception rules to one whitespace-delimited chunk,
// appending the resulting spans in ascending order. The first matching rule
// wins; already-emitted spans are never revisited.
func (t *Tokenizer) splitChunk(spans []Span, text string, b0, b1, r0, r1 int) []Span {
	if b0 >= b1 {
		return spans
	}
	chunk := text[b0:b1]
	if t.rules.Specials[chunk] {
		return append(spans, Span{Start: r0, End: r1, ByteStart: b0, ByteEnd: b1})
	}
	for _, p := range t.prefixes {
		if len(p) < len(chunk) && strings.HasPrefix(chunk, p) {
			pr := utf8.RuneCountInString(p)
			spans = append(spans, Span{Start: r0, End: r0 + pr, ByteStart: b0, ByteEnd: b0 + len(p)})
			return t.splitChunk(spans, text, b0+len(p), b1, r0+pr, r1)
		}
	}
	for _, s := range t.suffixes {
		if len(s) < len(chunk) && strings.HasSuffix(chunk, s) {
			sr := utf8.RuneCountInString(s)
			spans = t.splitChunk(spans, text, b0, b1-len(s), r0, r1-sr)
			return append(spans, Span{Start: r1 - sr, End: r1, ByteStart: b1 - len(s), ByteEnd: b1})
		}
	}
	return append(spans, Span{Start: r0, End: r1, ByteStart: b0, ByteEnd: b1})
}
