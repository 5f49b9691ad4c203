// Package storage provides the storage abstraction layer for tweetlabel.
//
// The only persistent state is an optional response cache: classifier labels
// and embedding vectors keyed by a content id derived from the model, the
// requested dimensions and the tweet text. Re-running the labeler over an
// overlapping dataset then only pays for records it has not seen.
//
// # Constructor Return Type Pattern
//
// Public constructors return the ResponseCache interface:
//
//	cache, err := badger.NewCache("/path/to/cache")  // returns storage.ResponseCache
//
// Use in tests with in-memory storage:
//
//	cache, err := badger.NewMemoryCache()
//
// # Encoding
//
// Labels are one byte. Vectors are a uvarint length followed by little-endian
// float32 values.
//
// # Thread Safety
//
// All cache implementations must be thread-safe and support concurrent access
// from multiple goroutines.
package storage
