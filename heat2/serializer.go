// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package heat2

import (
	"bytes"
	"io"

	"github.com/blazekit/tdf"
)

// Serializer is the Heat2 [tdf.Serializer]. It holds only options, so one
// Serializer may be shared by many goroutines.
type Serializer struct {
	opts []Option
}

var _ tdf.Serializer = (*Serializer)(nil)

// New returns a Heat2 serializer.
func New(opts ...Option) *Serializer {
	return &Serializer{opts: opts}
}

// Name implements [tdf.Serializer].
func (s *Serializer) Name() string {
	return "Heat2"
}

// Serialize implements [tdf.Serializer].
func (s *Serializer) Serialize(w io.Writer, r tdf.Record) error {
	return NewEncoder(w, s.opts...).Encode(r)
}

// Deserialize implements [tdf.Serializer].
func (s *Serializer) Deserialize(r io.Reader, rec tdf.Record) (valid bool, err error) {
	return NewDecoder(r, s.opts...).Decode(rec)
}

// Marshal encodes r into a new buffer.
func Marshal(r tdf.Record, opts ...Option) ([]byte, error) {
	return AppendRecord(nil, r, opts...)
}

// AppendRecord appends the encoding of r to b. On error, b is returned
// unchanged.
func AppendRecord(b []byte, r tdf.Record, opts ...Option) ([]byte, error) {
	e := Encoder{opts: newOptions(opts)}
	out, err := e.append(b, r)
	if err != nil {
		return b, err
	}
	return out, nil
}

// Unmarshal decodes data into rec; see [Decoder.Decode]. Bytes after the
// record's terminator are ignored.
//
// The returned error joins the problems found in the data, so it is non-nil
// whenever valid is false.
func Unmarshal(data []byte, rec tdf.Record, opts ...Option) (valid bool, err error) {
	d := NewDecoder(bytes.NewReader(data), opts...)
	valid, err = d.Decode(rec)
	if err != nil {
		return false, err
	}
	return valid, d.Err()
}
