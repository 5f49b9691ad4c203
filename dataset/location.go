package dataset

import (
	"fmt"
	"strings"
)

// Scheme is the kind of storage a location refers to.
type Scheme int

const (
	SchemeFile Scheme = iota
	SchemeStdio
	SchemeObject
)

// Compression is the transparent compression applied to a location.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

// Location is a parsed input or output location.
type Location struct {
	Scheme      Scheme
	Path        string // local path for SchemeFile
	Bucket      string // for SchemeObject
	Key         string // for SchemeObject
	Compression Compression
}

const objectPrefix = "s3://"

// ParseLocation parses a local path, "-", or s3://bucket/key.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty location", ErrInvalidLocation)
	}
	if raw == "-" {
		return Location{Scheme: SchemeStdio}, nil
	}

	loc := Location{Compression: compressionFor(raw)}
	if !strings.HasPrefix(raw, objectPrefix) {
		loc.Scheme = SchemeFile
		loc.Path = raw
		return loc, nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(raw, objectPrefix), "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("%w: %q is not s3://bucket/key", ErrInvalidLocation, raw)
	}
	loc.Scheme = SchemeObject
	loc.Bucket = bucket
	loc.Key = key
	return loc, nil
}

func (l Location) String() string {
	switch l.Scheme {
	case SchemeStdio:
		return "-"
	case SchemeObject:
		return objectPrefix + l.Bucket + "/" + l.Key
	default:
		return l.Path
	}
}

func compressionFor(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(name, ".zst"):
		return CompressionZstd
	default:
		return CompressionNone
	}
}
