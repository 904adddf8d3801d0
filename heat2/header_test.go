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

package heat2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blazekit/tdf"
	"github.com/blazekit/tdf/heat2"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  tdf.Tag
		wire tdf.WireType
		want []byte
	}{
		{0x000001, tdf.WireInt, []byte{0x00, 0x00, 0x01, 0x01}},
		{0xba1b65, tdf.WireString, []byte{0xba, 0x1b, 0x65, 0x02}},
		{tdf.MaxTag, tdf.WireTimeValue, []byte{0xff, 0xff, 0xff, 0x0c}},
	}
	for _, tt := range tests {
		b := heat2.AppendHeader(nil, tt.tag, tt.wire)
		assert.Equal(t, tt.want, b)

		tag, wire, n := heat2.ConsumeHeader(b)
		assert.Equal(t, heat2.HeaderSize, n)
		assert.Equal(t, tt.tag, tag)
		assert.Equal(t, tt.wire, wire)
	}

	_, _, n := heat2.ConsumeHeader([]byte{0xba, 0x1b, 0x65})
	assert.Equal(t, -1, n)
}

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	for wire := tdf.WireInt; wire <= tdf.WireTimeValue; wire++ {
		for tag := tdf.Tag(1); tag <= tdf.MaxTag; tag = tag*3 + 1 {
			b := heat2.AppendHeader([]byte{0xaa}, tag, wire)
			got, gotWire, n := heat2.ConsumeHeader(b[1:])
			assert.Equal(t, heat2.HeaderSize, n)
			assert.Equal(t, tag, got)
			assert.Equal(t, wire, gotWire)
		}
	}
}
