package dataset

import (
	"io"
	"os"

	"github.com/poiesic/tweetlabel/objectstore"
)

// Option configures how locations are opened.
type Option func(*options)

type options struct {
	store  *objectstore.Store
	stdin  io.Reader
	stdout io.Writer
}

// WithObjectStore enables s3://bucket/key locations.
func WithObjectStore(store *objectstore.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithStdio replaces the streams used for the "-" location.
func WithStdio(stdin io.Reader, stdout io.Writer) Option {
	return func(o *options) {
		o.stdin = stdin
		o.stdout = stdout
	}
}

func buildOptions(opts []Option) options {
	o := options{stdin: os.Stdin, stdout: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
