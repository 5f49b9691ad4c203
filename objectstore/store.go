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


package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound indicates the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// Store streams whole objects to and from one S3-compatible endpoint.
type Store struct {
	client *minio.Client
}

func NewStore(cfg Config) (*Store, error) {
	client, err := NewMinIOClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

func NewStoreWithClient(client *minio.Client) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("minio client is required")
	}
	return &Store{client: client}, nil
}

// Open returns a reader over bucket/key.
func (s *Store) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if _, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, bucket, key)
		}
		return nil, err
	}
	return s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
}

// Create returns a writer that uploads to bucket/key as data is written.
// The object becomes visible only when Close returns nil; Abort cancels the
// upload.
func (s *Store) Create(ctx context.Context, bucket, key, contentType string) (*Upload, error) {
	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := s.client.PutObject(gctx, bucket, key, pr, -1, minio.PutObjectOptions{ContentType: contentType})
		_ = pr.CloseWithError(err)
		return err
	})

	return &Upload{pw: pw, group: g}, nil
}

// Upload is an in-progress streaming object write.
type Upload struct {
	pw       *io.PipeWriter
	group    *errgroup.Group
	finished atomic.Bool
}

func (u *Upload) Write(p []byte) (int, error) {
	return u.pw.Write(p)
}

// Close finishes the upload and waits for the object store to acknowledge it.
func (u *Upload) Close() error {
	if !u.finished.CompareAndSwap(false, true) {
		return errors.New("already closed")
	}
	if err := u.pw.Close(); err != nil {
		return err
	}
	return u.group.Wait()
}

// Abort cancels the upload. Nothing is written to the bucket.
func (u *Upload) Abort() error {
	if !u.finished.CompareAndSwap(false, true) {
		return nil
	}
	_ = u.pw.CloseWithError(errors.New("upload aborted"))
	_ = u.group.Wait()
	return nil
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound" || code == "NoSuchBucket"
}
