package mock

import (
	"context"
	"hash/fnv"
	"sync/atomic"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields and is safe for
// concurrent use.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses default deterministic behavior.
	ClassifyFunc func(ctx context.Context, text string) (bool, error)

	callCount atomic.Int64
}

// NewMockClassifier creates a mock classifier with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify labels text by the parity of its hash unless ClassifyFunc is set.
func (m *MockClassifier) Classify(ctx context.Context, text string) (bool, error) {
	m.callCount.Add(1)

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	h := fnv.New32a()
	h.Write([]byte(text))
	return h.Sum32()%2 == 1, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockClassifier) Reset() {
	m.callCount.Store(0)
	m.ClassifyFunc = nil
}
