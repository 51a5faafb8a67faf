package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNotArray is returned when the document is not a JSON array.
	ErrRootNotArray = errors.New("document root is not an array")

	// ErrMalformedRecord is returned when an array item is not an object.
	ErrMalformedRecord = errors.New("record is not an object")

	// ErrMissingField matches any *MissingFieldError.
	ErrMissingField = errors.New("missing field")
)

// A MissingFieldError is returned when a record has no usable value at Path.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Path)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// A RecordError is a failure to extract a record from the array item at
// Index (0-based).
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
