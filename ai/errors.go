package ai

import "errors"

var (
	// ErrClassification is wrapped by every classifier failure: transport
	// errors, service errors and unusable responses alike.
	ErrClassification = errors.New("classification failed")

	// ErrMalformedResponse indicates the classifier answered with something
	// that is not a JSON object carrying a boolean "political" field.
	ErrMalformedResponse = errors.New("malformed classifier response")

	// ErrEmbedding is wrapped by embedder failures.
	ErrEmbedding = errors.New("embedding failed")
)
