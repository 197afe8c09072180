package language

import (
	"context"
	"fmt"

	"github.com/viant/lexvec/document"
	"github.com/viant/lexvec/lexicon"
	"github.com/viant/lexvec/model"
	"github.com/viant/lexvec/tokenizer"
)

// TaggedText is an input value that already carries an owner tag, typically
// assigned by a placement collaborator. Processing it produces a document
// owned by that tag rather than by the controller's default owner.
type TaggedText struct {
	Text  string
	Owner document.Owner
}

// Language orchestrates the segmenter and the lexical store. It holds a
// reference to exactly one lexicon and one rule set and keeps no mutable
// state across invocations.
type Language struct {
	name  string
	owner document.Owner
	lex   *lexicon.Lexicon
	tok   *tokenizer.Tokenizer
}

// Load reads the model identified by modelID (a model-file path) and
// constructs a controller whose documents default to the given owner. Model
// errors (model.ErrNotFound, model.ErrCorrupt) are propagated unchanged.
func Load(ctx context.Context, modelID string, owner document.Owner) (*Language, error) {
	m, err := model.Load(ctx, modelID)
	if err != nil {
		return nil, err
	}
	return FromModel(m, owner)
}

// FromModel constructs a controller from an already-loaded model, for
// callers whose model-loading collaborator supplies the data directly.
func FromModel(m *model.Model, owner document.Owner) (*Language, error) {
	if m == nil || m.Lexicon == nil {
		return nil, fmt.Errorf("language: model is nil or has no lexicon")
	}
	return &Language{
		name:  m.Name,
		owner: owner,
		lex:   m.Lexicon,
		tok:   tokenizer.New(m.Rules),
	}, nil
}

// Name returns the loaded model's identifier.
func (l *Language) Name() string { return l.name }

// Owner returns the controller's default owner tag.
func (l *Language) Owner() document.Owner { return l.owner }

// Process segments text into a document tagged with the controller's
// default owner. Either a complete document or an error is returned, never
// a partial result.
func (l *Language) Process(text string) (*document.Doc, error) {
	return l.process(text, l.owner)
}

// ProcessOwned is Process with an explicit owner overriding the default.
func (l *Language) ProcessOwned(text string, owner document.Owner) (*document.Doc, error) {
	return l.process(text, owner)
}

// ProcessTagged segments an owner-tagged input value. The produced document
// inherits the value's owner; an empty tag falls back to the controller's
// default. To override the tag instead, use ProcessOwned with the raw text.
func (l *Language) ProcessTagged(t TaggedText) (*document.Doc, error) {
	owner := t.Owner
	if owner == "" {
		owner = l.owner
	}
	return l.process(t.Text, owner)
}

func (l *Language) process(text string, owner document.Owner) (*document.Doc, error) {
	spans, err := l.tok.Segment(text)
	if err != nil {
		return nil, err
	}
	return document.New(text, spans, l.lex, owner), nil
}
