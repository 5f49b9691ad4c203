package enrich

import (
	"errors"
	"fmt"
)

var (
	// ErrClassifierRequired is returned when a classifier is not provided.
	ErrClassifierRequired = errors.New("classifier required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrVectorCountMismatch indicates the embedder returned a different
	// number of vectors than it was sent texts.
	ErrVectorCountMismatch = errors.New("vector count does not match batch size")

	// ErrDimensionMismatch indicates a vector of unexpected length.
	ErrDimensionMismatch = errors.New("unexpected vector dimensionality")

	// ErrClassifierPanic indicates a classifier call panicked.
	ErrClassifierPanic = errors.New("classifier panicked")
)

// ClassificationError is the failure of a single record's classifier call.
// It is logged and the record is dropped; it never aborts a run.
type ClassificationError struct {
	Index int
	Err   error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify record %d: %v", e.Index, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// EmbeddingError is the failure of the batched embedding call. It aborts
// the run.
type EmbeddingError struct {
	Count int
	Err   error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embed batch of %d: %v", e.Count, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}
