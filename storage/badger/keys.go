package badger

import (
	"github.com/poiesic/tweetlabel/core"
	"github.com/poiesic/tweetlabel/storage"
)

// Key prefixes for different data types
const (
	labelPrefix  = "lbl"
	vectorPrefix = "vec"
)

// makeKey generates a key of the form prefix:id.
func makeKey(prefix string, id core.ID) []byte {
	encoded := storage.MarshalID(id)
	buf := make([]byte, 0, len(prefix)+1+len(encoded))
	buf = append(buf, prefix...)
	buf = append(buf, ':')
	return append(buf, encoded...)
}

// makeLabelKey generates a key for a cached classifier label.
func makeLabelKey(id core.ID) []byte {
	return makeKey(labelPrefix, id)
}

// makeVectorKey generates a key for a cached embedding vector.
func makeVectorKey(id core.ID) []byte {
	return makeKey(vectorPrefix, id)
}
