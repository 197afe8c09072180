package document

import "errors"

var (
	// ErrIndexOutOfRange reports a token index outside [0, Len).
	ErrIndexOutOfRange = errors.New("document: token index out of range")

	// ErrInvalidRange reports a slice whose bounds are inverted or outside
	// the document.
	ErrInvalidRange = errors.New("document: invalid slice range")
)
