package document

import "errors"

// Errors returned by document operations.
var (
	// ErrPositionOutOfRange indicates a position outside the document.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrLineOutOfRange indicates a line index at or beyond the line count.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrEmptyDocument indicates an erase was attempted on an empty document.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrIteratorExhausted is the panic value when an iterator is used past its end.
	ErrIteratorExhausted = errors.New("iterator advanced past end")
)
