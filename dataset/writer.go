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


package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/poiesic/tweetlabel/core"
)

// ErrWriterClosed is returned by writes after Close or Abort.
var ErrWriterClosed = errors.New("writer is closed")

// sink is where encoded output ends up. Nothing is visible at the final
// location until Commit succeeds.
type sink interface {
	io.Writer
	Commit() error
	Abort() error
}

// Writer writes enriched records as JSON lines in the order it receives them.
// It is not safe for concurrent use.
type Writer struct {
	sink       sink
	compressor io.WriteCloser
	buf        *bufio.Writer
	count      int
	done       bool
}

// Create opens location for writing. The output only appears at location
// once Close succeeds.
func Create(ctx context.Context, location string, opts ...Option) (*Writer, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, &WriteError{Op: "create", Err: err}
	}
	o := buildOptions(opts)

	var s sink
	switch loc.Scheme {
	case SchemeStdio:
		s = streamSink{w: o.stdout}
	case SchemeObject:
		if o.store == nil {
			return nil, &WriteError{Op: "create", Err: ErrNoObjectStore}
		}
		upload, err := o.store.Create(ctx, loc.Bucket, loc.Key, contentType(loc.Compression))
		if err != nil {
			return nil, &WriteError{Op: "create", Err: err}
		}
		s = uploadSink{upload}
	default:
		fs, err := newFileSink(loc.Path)
		if err != nil {
			return nil, &WriteError{Op: "create", Err: err}
		}
		s = fs
	}

	w, err := newWriter(s, loc.Compression)
	if err != nil {
		_ = s.Abort()
		return nil, &WriteError{Op: "create", Err: err}
	}
	return w, nil
}

// NewWriter writes uncompressed JSON lines to w. Close flushes but does not
// close w.
func NewWriter(w io.Writer) *Writer {
	out, _ := newWriter(streamSink{w: w}, CompressionNone)
	return out
}

func newWriter(s sink, c Compression) (*Writer, error) {
	w := &Writer{sink: s}

	var dst io.Writer = s
	switch c {
	case CompressionGzip:
		w.compressor = gzip.NewWriter(s)
		dst = w.compressor
	case CompressionZstd:
		enc, err := zstd.NewWriter(s)
		if err != nil {
			return nil, err
		}
		w.compressor = enc
		dst = enc
	}

	w.buf = bufio.NewWriterSize(dst, 256<<10)
	return w, nil
}

// Write appends one record as a [text, label, vector] line.
func (w *Writer) Write(rec *core.EnrichedRecord) error {
	if w.done {
		return &WriteError{Op: "write", Err: ErrWriterClosed}
	}

	line, err := EncodeLine(rec)
	if err != nil {
		return &WriteError{Op: "encode", Err: fmt.Errorf("record %d: %w", recordIndex(rec), err)}
	}
	if _, err := w.buf.Write(line); err != nil {
		return &WriteError{Op: "write", Err: err}
	}
	w.count++
	return nil
}

// WriteAll writes records in slice order, stopping at the first error.
func (w *Writer) WriteAll(recs []core.EnrichedRecord) error {
	for i := range recs {
		if err := w.Write(&recs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of lines written so far.
func (w *Writer) Count() int {
	return w.count
}

// Close flushes buffered output and commits it to its location.
// On failure, partial output is discarded.
func (w *Writer) Close() error {
	if w.done {
		return nil
	}
	w.done = true

	if err := w.buf.Flush(); err != nil {
		_ = w.sink.Abort()
		return &WriteError{Op: "flush", Err: err}
	}
	if w.compressor != nil {
		if err := w.compressor.Close(); err != nil {
			_ = w.sink.Abort()
			return &WriteError{Op: "flush", Err: err}
		}
	}
	if err := w.sink.Commit(); err != nil {
		_ = w.sink.Abort()
		return &WriteError{Op: "commit", Err: err}
	}
	return nil
}

// Abort discards everything written so far.
func (w *Writer) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	return w.sink.Abort()
}

// EncodeLine renders rec as a newline-terminated JSON array.
func EncodeLine(rec *core.EnrichedRecord) ([]byte, error) {
	vector := rec.Vector
	if vector == nil {
		vector = []float32{}
	}
	line, err := json.Marshal([]any{rec.Text(), rec.Label, vector})
	if err != nil {
		return nil, err
	}
	return append(line, '\n'), nil
}

func recordIndex(rec *core.EnrichedRecord) int {
	if rec.Record == nil {
		return -1
	}
	return rec.Record.Index
}

func contentType(c Compression) string {
	switch c {
	case CompressionGzip:
		return "application/gzip"
	case CompressionZstd:
		return "application/zstd"
	default:
		return "application/x-ndjson"
	}
}

// fileSink writes to a temporary sibling of path and renames it into place.
type fileSink struct {
	f    *os.File
	path string
}

func newFileSink(path string) (*fileSink, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, err
	}
	return &fileSink{f: f, path: path}, nil
}

func (s *fileSink) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

func (s *fileSink) Commit() error {
	if err := s.f.Sync(); err != nil {
		return err
	}
	if err := s.f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(s.f.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(s.f.Name(), s.path)
}

func (s *fileSink) Abort() error {
	_ = s.f.Close()
	err := os.Remove(s.f.Name())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// streamSink writes straight through; there is nothing to commit or undo.
type streamSink struct {
	w io.Writer
}

func (s streamSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s streamSink) Commit() error               { return nil }
func (s streamSink) Abort() error                { return nil }

// uploadSink streams to the object store; the object is committed when the
// upload completes.
type uploadSink struct {
	upload interface {
		io.WriteCloser
		Abort() error
	}
}

func (s uploadSink) Write(p []byte) (int, error) { return s.upload.Write(p) }
func (s uploadSink) Commit() error               { return s.upload.Close() }
func (s uploadSink) Abort() error                { return s.upload.Abort() }
