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

// Package varint implements the sign-and-continuation varint used by Heat2.
//
// The first byte of an encoded value is laid out as [cont][sign][6 bits];
// every following byte is [cont][7 bits], least significant group first.
// Magnitudes are stored, not two's complement, so math.MinInt64 (which has
// no positive counterpart) is written as a lone "negative zero" byte, 0x40.
package varint

import (
	"errors"
	"io"
	"math"
)

// MaxLen is the longest valid encoding: 6 bits in the first byte plus nine
// 7-bit groups covers all 64 bits.
const MaxLen = 10

const (
	contBit  = 0x80
	signBit  = 0x40
	lowBits  = 0x3f
	groupBit = 0x7f

	// The last group lands at bit 62; anything above it overflows a
	// 63-bit magnitude.
	lastGroup = 0x01
)

// Error codes returned by [Consume] in place of a length.
const (
	ErrCodeTruncated = -1
	ErrCodeMalformed = -2
)

var (
	// ErrTruncated is returned when the input ends in the middle of a value.
	ErrTruncated = io.ErrUnexpectedEOF
	// ErrMalformed is returned when continuation bits run past [MaxLen].
	ErrMalformed = errors.New("malformed varint")
)

// Append appends the encoding of v to b.
func Append(b []byte, v int64) []byte {
	switch v {
	case 0:
		return append(b, 0)
	case math.MinInt64:
		return append(b, signBit)
	}

	var cur byte
	if v > 0 {
		cur = byte(v&lowBits) | contBit
	} else {
		v = -v
		cur = byte(v&lowBits) | contBit | signBit
	}

	for i := v >> 6; i > 0; i >>= 7 {
		b = append(b, cur)
		cur = byte(i) | contBit
	}
	return append(b, cur&groupBit)
}

// Size returns the number of bytes [Append] would write for v.
func Size(v int64) int {
	if v == 0 || v == math.MinInt64 {
		return 1
	}
	if v < 0 {
		v = -v
	}
	n := 1
	for i := v >> 6; i > 0; i >>= 7 {
		n++
	}
	return n
}

// Consume parses a value from the front of b, returning it and the number of
// bytes read. On failure n is one of the ErrCode constants.
func Consume(b []byte) (v int64, n int) {
	if len(b) == 0 {
		return 0, ErrCodeTruncated
	}

	first := b[0]
	mag := uint64(first & lowBits)
	shift := uint(6)
	n = 1
	for c := first; c&contBit != 0; {
		if n == MaxLen {
			return 0, ErrCodeMalformed
		}
		if n == len(b) {
			return 0, ErrCodeTruncated
		}
		c = b[n]
		n++
		if n == MaxLen && c&groupBit > lastGroup {
			return 0, ErrCodeMalformed
		}
		mag |= uint64(c&groupBit) << shift
		shift += 7
	}

	return apply(first, mag), n
}

// Read parses a value from r, returning it and the number of bytes read.
func Read(r io.ByteReader) (v int64, n int, err error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, 0, eof(err)
	}

	mag := uint64(first & lowBits)
	shift := uint(6)
	n = 1
	for c := first; c&contBit != 0; {
		if n == MaxLen {
			return 0, n, ErrMalformed
		}
		if c, err = r.ReadByte(); err != nil {
			return 0, n, eof(err)
		}
		n++
		if n == MaxLen && c&groupBit > lastGroup {
			return 0, n, ErrMalformed
		}
		mag |= uint64(c&groupBit) << shift
		shift += 7
	}

	return apply(first, mag), n, nil
}

// Skip discards one value from r without assembling it.
func Skip(r io.ByteReader) (n int, err error) {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return n, eof(err)
		}
		n++
		if n == MaxLen && c > lastGroup {
			return n, ErrMalformed
		}
		if c&contBit == 0 {
			return n, nil
		}
	}
}

// Error converts an error code from [Consume] into an error.
func Error(code int) error {
	switch code {
	case ErrCodeTruncated:
		return ErrTruncated
	case ErrCodeMalformed:
		return ErrMalformed
	default:
		return nil
	}
}

func apply(first byte, mag uint64) int64 {
	if first&signBit == 0 {
		return int64(mag)
	}
	if mag == 0 {
		return math.MinInt64
	}
	return -int64(mag)
}

// eof maps a clean end of input to ErrTruncated; a value was expected.
func eof(err error) error {
	if err == io.EOF {
		return ErrTruncated
	}
	return err
}
