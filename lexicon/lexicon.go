package lexicon

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the deterministic 64-bit identity of token text. The hash is
// content-derived and stable across runs and machines; it is a
// content-addressing key, not a secure digest. The same function is applied
// to in-vocabulary and out-of-vocabulary text, so hash equality does not
// imply vocabulary membership; use Lexeme.InVocab for that distinction.
func Hash(text string) uint64 { return xxhash.Sum64String(text) }

// Lexeme is the result of a lexicon lookup.
type Lexeme struct {
	// Text is the looked-up token text.
	Text string

	// Hash is the deterministic identity of Text.
	Hash uint64

	// Vector is the embedding for Text. For out-of-vocabulary text it is an
	// all-zero vector of the lexicon's dimensionality. The slice is shared
	// with the lexicon and must not be mutated.
	Vector []float32

	// InVocab reports whether Text is present in the loaded vocabulary.
	InVocab bool
}

// Lexicon maps token text to (hash, vector) pairs for one loaded model.
// It is append-only during load via Add and read-only afterwards; concurrent
// Lookup calls require no locking once loading has finished.
type Lexicon struct {
	dim     int
	entries map[string][]float32
	zero    []float32

	indexOnce sync.Once
	index     *knnIndex
}

// New creates an empty lexicon whose vectors have the given dimensionality.
// The dimensionality must be positive; model loading enforces this before
// constructing a lexicon.
func New(dim int) *Lexicon {
	return &Lexicon{
		dim:     dim,
		entries: make(map[string][]float32),
		zero:    make([]float32, dim),
	}
}

// Add inserts an entry into the lexicon. It returns an error if the vector's
// dimensionality disagrees with the lexicon's. Add is not safe to call
// concurrently with Lookup; populate the lexicon fully before sharing it.
func (l *Lexicon) Add(text string, vec []float32) error {
	if len(vec) != l.dim {
		return fmt.Errorf("lexicon: vector for %q has dim %d, lexicon dim %d", text, len(vec), l.dim)
	}
	l.entries[text] = vec
	return nil
}

// Lookup resolves token text to its lexeme. It is a total function: text
// absent from the vocabulary yields its content hash, the shared zero
// vector, and InVocab=false.
func (l *Lexicon) Lookup(text string) Lexeme {
	if vec, ok := l.entries[text]; ok {
		return Lexeme{Text: text, Hash: Hash(text), Vector: vec, InVocab: true}
	}
	return Lexeme{Text: text, Hash: Hash(text), Vector: l.zero}
}

// Contains reports whether text is present in the vocabulary.
func (l *Lexicon) Contains(text string) bool {
	_, ok := l.entries[text]
	return ok
}

// Dim returns the vector dimensionality of the loaded model.
func (l *Lexicon) Dim() int { return l.dim }

// Len returns the number of vocabulary entries.
func (l *Lexicon) Len() int { return len(l.entries) }
