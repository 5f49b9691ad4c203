// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"context"

	"github.com/poiesic/tweetlabel/core"
)

// ResponseCache memoizes classifier labels and embedding vectors by content id.
// Implementations must be thread-safe and support concurrent access.
type ResponseCache interface {
	// GetLabel returns the cached label for key.
	// found is false when the key has never been stored.
	GetLabel(ctx context.Context, key core.ID) (label bool, found bool, err error)

	// PutLabel stores a label, replacing any previous value.
	PutLabel(ctx context.Context, key core.ID, label bool) error

	// GetVectors looks up several vectors in one read transaction.
	// The result has one entry per key, in key order; misses are nil.
	GetVectors(ctx context.Context, keys ...core.ID) ([][]float32, error)

	// PutVectors stores vectors keyed by content id in one write transaction.
	PutVectors(ctx context.Context, entries map[core.ID][]float32) error

	// Close releases resources held by the cache.
	Close() error
}
