package model

import (
	"errors"

	"github.com/viant/lexvec/lexicon"
	"github.com/viant/lexvec/tokenizer"
)

var (
	// ErrNotFound reports that the model identifier is unknown or its
	// backing database cannot be read.
	ErrNotFound = errors.New("model: model not found")

	// ErrCorrupt reports a readable model whose contents are inconsistent:
	// missing or invalid metadata, undecodable embedding BLOBs, or vectors
	// whose dimensionality disagrees with the declared one.
	ErrCorrupt = errors.New("model: model data corrupt")
)

// Model is a fully loaded language model: a read-only lexicon plus the
// segmentation rules it was packaged with.
type Model struct {
	// Name is the model's declared identifier (model_meta key "name").
	Name string

	// Dim is the embedding dimensionality shared by every lexeme.
	Dim int

	// Lexicon maps token text to (hash, vector) pairs.
	Lexicon *lexicon.Lexicon

	// Rules is the segmentation exception table. Models packaged without
	// rule rows fall back to tokenizer.DefaultRules.
	Rules *tokenizer.Rules
}
