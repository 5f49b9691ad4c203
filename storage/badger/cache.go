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


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tweetlabel/core"
	"github.com/poiesic/tweetlabel/storage"
)

// CacheRepository implements storage.ResponseCache for BadgerDB.
type CacheRepository struct {
	backend     *Backend
	ownsBackend bool
}

var _ storage.ResponseCache = (*CacheRepository)(nil)

// NewCacheRepository creates a CacheRepository on a shared backend.
// Closing the repository leaves the backend open.
func NewCacheRepository(backend *Backend) (*CacheRepository, error) {
	return &CacheRepository{
		backend: backend,
	}, nil
}

// NewCache opens (or creates) a cache directory at path.
// Closing the returned cache closes the underlying database.
func NewCache(path string) (storage.ResponseCache, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &CacheRepository{
		backend:     backend,
		ownsBackend: true,
	}, nil
}

// Close releases resources.
func (r *CacheRepository) Close() error {
	if r.ownsBackend {
		return r.backend.Close()
	}
	return nil
}

// GetLabel returns the cached label for key.
func (r *CacheRepository) GetLabel(ctx context.Context, key core.ID) (bool, bool, error) {
	if err := ctx.Err(); err != nil {
		return false, false, err
	}

	var label, found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeLabelKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			label, err = storage.UnmarshalLabel(val)
			found = err == nil
			return err
		})
	}, false)

	return label, found, err
}

// PutLabel stores a label.
func (r *CacheRepository) PutLabel(ctx context.Context, key core.ID, label bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeLabelKey(key), storage.MarshalLabel(label)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetVectors looks up several vectors; misses are nil.
func (r *CacheRepository) GetVectors(ctx context.Context, keys ...core.ID) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(keys))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for i, key := range keys {
			item, err := tx.Get(makeVectorKey(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				vectors[i], err = storage.UnmarshalVector(val)
				return err
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return vectors, nil
}

// PutVectors stores vectors in a single write batch.
func (r *CacheRepository) PutVectors(ctx context.Context, entries map[core.ID][]float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	wb := r.backend.db.NewWriteBatch()
	defer wb.Cancel()
	for key, vector := range entries {
		if err := wb.Set(makeVectorKey(key), storage.MarshalVector(vector)); err != nil {
			return err
		}
	}
	return wb.Flush()
}
