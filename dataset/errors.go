package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField indicates a required input field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrNoObjectStore indicates an s3:// location was used without an object store.
	ErrNoObjectStore = errors.New("object store not configured")

	// ErrInvalidLocation indicates a location string could not be parsed.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInconsistentDimensions indicates result vectors of different lengths.
	ErrInconsistentDimensions = errors.New("inconsistent vector dimensions")
)

// LoadError reports why input could not be loaded. Line is 1-based; zero
// means the input could not be opened or read at all.
type LoadError struct {
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("load: %v", e.Err)
	}
	return fmt.Sprintf("load: line %d: %v", e.Line, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WriteError reports a failure while producing output.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write output: %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
