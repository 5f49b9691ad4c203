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
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/tweetlabel/core"
)

// IDMUS serializes a core.ID as a fixed-width 8 byte value, so every key
// built from an ID has the same length.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v core.ID, bs []byte) (n int) {
	return raw.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v core.ID, n int, err error) {
	tmp, n, err := raw.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = core.ID(tmp)
	return
}

func (s idMUS) Size(v core.ID) (size int) {
	return raw.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return raw.Uint64.Skip(bs)
}

// vectorMUS writes a varint length followed by raw float32 values.
var vectorMUS = ord.NewSliceSer[float32](raw.Float32)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrTruncatedData, err)
	}
	return id, nil
}

// MarshalLabel serializes a classifier label to a single byte.
func MarshalLabel(label bool) []byte {
	buf := make([]byte, ord.Bool.Size(label))
	ord.Bool.Marshal(label, buf)
	return buf
}

// UnmarshalLabel deserializes a classifier label.
func UnmarshalLabel(data []byte) (bool, error) {
	label, n, err := ord.Bool.Unmarshal(data)
	if err != nil {
		return false, fmt.Errorf("%w: label: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return false, fmt.Errorf("%w: label has %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return label, nil
}

// MarshalVector serializes a vector.
func MarshalVector(vector []float32) []byte {
	buf := make([]byte, vectorMUS.Size(vector))
	vectorMUS.Marshal(vector, buf)
	return buf
}

// UnmarshalVector deserializes a vector written by MarshalVector.
// The declared length is checked against the data before anything is
// allocated.
func UnmarshalVector(data []byte) ([]float32, error) {
	length, n, err := varint.PositiveInt.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: vector length: %w", ErrSerializationFailed, err)
	}
	width := raw.Float32.Size(0)
	body := len(data) - n
	if length < 0 || length > body/width || body != length*width {
		return nil, fmt.Errorf("%w: vector of %d values has %d bytes", ErrTruncatedData, length, body)
	}

	vector, _, err := vectorMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: vector: %w", ErrSerializationFailed, err)
	}
	return vector, nil
}
