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

package xunsafe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blazekit/tdf/internal/xunsafe"
)

type color int16

type label string

func TestBitCast(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int16(-3), xunsafe.BitCast[int16](color(-3)))
	assert.Equal(t, color(7), xunsafe.BitCast[color](int16(7)))
	assert.Equal(t, "abc", xunsafe.BitCast[string](label("abc")))
	assert.Equal(t, uint64(1<<63), xunsafe.BitCast[uint64](int64(-1<<63)))

	assert.True(t, xunsafe.SameSize[int16, color]())
	assert.True(t, xunsafe.SameSize[string, label]())
	assert.False(t, xunsafe.SameSize[int8, int64]())
}
