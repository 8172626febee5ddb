package environment

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is wrapped by every error reporting that a state,
// action, or lever index lies outside of its table
var ErrInvalidIndex = errors.New("invalid index")

// IndexError implements errors for out of range table indices
type IndexError struct {
	Op    string
	Kind  string
	Index int
	Bound int
}

// Error satisifes the error interface
func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: %v: %v index %d not in [0, %d)", e.Op,
		ErrInvalidIndex, e.Kind, e.Index, e.Bound)
}

// Unwrap returns ErrInvalidIndex
func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}

// IsInvalidIndex returns whether or not an error reports an out of
// range index
func IsInvalidIndex(err error) bool {
	return errors.Is(err, ErrInvalidIndex)
}
