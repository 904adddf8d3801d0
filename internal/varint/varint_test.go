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

package varint_test

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazekit/tdf/internal/varint"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []int64{
		0, 1, -1, 2, -2, 63, -63, 64, -64, 65,
		127, 128, 300, -300, 8191, 8192, -8192,
		0x7fff, -0x8000, 0x7fffffff, -0x80000000,
		math.MaxInt64, math.MinInt64, math.MinInt64 + 1,
	}
	for shift := range 63 {
		tests = append(tests, 1<<shift, -(1 << shift), 1<<shift-1)
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%#x", tt), func(t *testing.T) {
			t.Parallel()

			b := varint.Append(nil, tt)
			assert.Len(t, b, varint.Size(tt))
			assert.LessOrEqual(t, len(b), varint.MaxLen)

			v, n := varint.Consume(b)
			assert.Equal(t, len(b), n)
			assert.Equal(t, tt, v)

			v, n, err := varint.Read(bytes.NewReader(b))
			require.NoError(t, err)
			assert.Equal(t, len(b), n)
			assert.Equal(t, tt, v)

			n, err = varint.Skip(bytes.NewReader(b))
			require.NoError(t, err)
			assert.Equal(t, len(b), n)
		})
	}
}

func TestEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0x41}},
		{63, []byte{0x3f}},
		{-63, []byte{0x7f}},
		{64, []byte{0x80, 0x01}},
		{-64, []byte{0xc0, 0x01}},
		{300, []byte{0xac, 0x04}},
		{-300, []byte{0xec, 0x04}},
		{math.MinInt64, []byte{0x40}},
		{math.MaxInt64, []byte{0xbf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.v), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, varint.Append(nil, tt.v))
		})
	}
}

func TestMinInt64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x40}, varint.Append(nil, math.MinInt64))

	v, n := varint.Consume([]byte{0x40})
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(math.MinInt64), v)
}

func TestMalformed(t *testing.T) {
	t.Parallel()

	// Ten bytes that all claim another byte follows.
	long := bytes.Repeat([]byte{0xff}, varint.MaxLen+1)

	_, n := varint.Consume(long)
	assert.Equal(t, varint.ErrCodeMalformed, n)
	assert.ErrorIs(t, varint.Error(n), varint.ErrMalformed)

	_, _, err := varint.Read(bytes.NewReader(long))
	assert.ErrorIs(t, err, varint.ErrMalformed)

	_, err = varint.Skip(bytes.NewReader(long))
	assert.ErrorIs(t, err, varint.ErrMalformed)
}

func TestOverflow(t *testing.T) {
	t.Parallel()

	// MaxInt64 with its last group bumped past bit 63, positive and negative.
	maxInt := varint.Append(nil, math.MaxInt64)
	for _, last := range []byte{0x02, 0x03, 0x7f} {
		for _, first := range []byte{0xbf, 0xff} {
			b := bytes.Clone(maxInt)
			b[0], b[len(b)-1] = first, last

			_, n := varint.Consume(b)
			assert.Equal(t, varint.ErrCodeMalformed, n, "%x", b)

			_, _, err := varint.Read(bytes.NewReader(b))
			assert.ErrorIs(t, err, varint.ErrMalformed, "%x", b)

			_, err = varint.Skip(bytes.NewReader(b))
			assert.ErrorIs(t, err, varint.ErrMalformed, "%x", b)
		}
	}

	// -MaxInt64 still fits.
	v, n := varint.Consume(varint.Append(nil, -math.MaxInt64))
	assert.Equal(t, varint.MaxLen, n)
	assert.Equal(t, int64(-math.MaxInt64), v)
}

func TestTruncated(t *testing.T) {
	t.Parallel()

	for _, b := range [][]byte{nil, {0x80}, {0xec}, {0x80, 0x80}} {
		_, n := varint.Consume(b)
		assert.Equal(t, varint.ErrCodeTruncated, n, "%x", b)

		_, _, err := varint.Read(bytes.NewReader(b))
		assert.ErrorIs(t, err, varint.ErrTruncated, "%x", b)

		_, err = varint.Skip(bytes.NewReader(b))
		assert.ErrorIs(t, err, varint.ErrTruncated, "%x", b)
	}
}
