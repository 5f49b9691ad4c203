package dataset

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// openReader opens loc for reading and strips its compression.
func openReader(ctx context.Context, loc Location, o options) (io.ReadCloser, error) {
	var base io.ReadCloser
	switch loc.Scheme {
	case SchemeStdio:
		base = io.NopCloser(o.stdin)
	case SchemeObject:
		if o.store == nil {
			return nil, ErrNoObjectStore
		}
		rc, err := o.store.Open(ctx, loc.Bucket, loc.Key)
		if err != nil {
			return nil, err
		}
		base = rc
	default:
		f, err := os.Open(loc.Path)
		if err != nil {
			return nil, err
		}
		base = f
	}

	return decompress(base, loc.Compression)
}

func decompress(base io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(base)
		if err != nil {
			base.Close()
			return nil, err
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, base}}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(base)
		if err != nil {
			base.Close()
			return nil, err
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), base}}, nil
	default:
		return base, nil
	}
}

// stackedReader reads from the outermost layer and closes every layer.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
