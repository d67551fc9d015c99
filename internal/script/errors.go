package script

import (
	"errors"
	"fmt"
)

// Errors returned by script operations.
var (
	// ErrInvalidOp indicates a malformed operation.
	ErrInvalidOp = errors.New("invalid operation")

	// ErrUnknownFormat indicates a script file with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown script format")
)

// OpError reports the operation that failed.
type OpError struct {
	// Index is the 0-based position of the operation in the script.
	Index int
	// Op is the operation name.
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("op %d (%s): %v", e.Index, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}
