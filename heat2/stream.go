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

	"github.com/blazekit/tdf/internal/sync2"
)

// smallString is the largest string payload decoded into a stack buffer.
const smallString = 512

// maxPooled is the largest buffer returned to a pool.
const maxPooled = 1 << 20

var (
	encodeBuffers = &sync2.Pool[[]byte]{
		New: func() *[]byte {
			b := make([]byte, 0, 256)
			return &b
		},
		Reset:  func(b *[]byte) { *b = (*b)[:0] },
		Cap:    func(b *[]byte) int { return cap(*b) },
		MaxCap: maxPooled,
	}

	stringBuffers = &sync2.Pool[bytes.Buffer]{
		Reset:  (*bytes.Buffer).Reset,
		Cap:    (*bytes.Buffer).Cap,
		MaxCap: maxPooled,
	}
)

// reader adapts an io.Reader for decoding. It never reads past the end of
// the record being decoded, so the caller may keep using the underlying
// reader afterwards, and it tracks the stream offset for errors.
type reader struct {
	r   io.Reader
	br  io.ByteReader // r, if it is one.
	off int64
	one [1]byte
}

func (r *reader) reset(src io.Reader) {
	r.r = src
	r.br, _ = src.(io.ByteReader)
	r.off = 0
}

// ReadByte implements [io.ByteReader].
func (r *reader) ReadByte() (byte, error) {
	if r.br != nil {
		c, err := r.br.ReadByte()
		if err == nil {
			r.off++
		}
		return c, err
	}

	n, err := io.ReadFull(r.r, r.one[:])
	if n == 1 {
		r.off++
		return r.one[0], nil
	}
	return 0, err
}

// Read implements [io.Reader].
func (r *reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.off += int64(n)
	return n, err
}

// readFull fills p. Running out of input is always io.ErrUnexpectedEOF,
// since p is part of a value that was promised.
func (r *reader) readFull(p []byte) error {
	n, err := io.ReadFull(r.r, p)
	r.off += int64(n)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// discard skips n bytes.
func (r *reader) discard(n int64) error {
	_, err := io.CopyN(io.Discard, r, n)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}
