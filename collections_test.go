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

package tdf_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blazekit/tdf"
)

func TestOrderedMap(t *testing.T) {
	t.Parallel()

	var m tdf.OrderedMap[string, int]
	assert.Zero(t, m.Len())

	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	m.Set("a", 4)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"c", "a", "b"}, slices.Collect(m.Keys()))

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	assert.True(t, m.Delete("c"))
	assert.False(t, m.Delete("c"))
	assert.Equal(t, []string{"a", "b"}, slices.Collect(m.Keys()))

	v, ok = m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = m.Get("c")
	assert.False(t, ok)
}

func TestMapOf(t *testing.T) {
	t.Parallel()

	m := tdf.MapOf(
		tdf.Entry[int32, string]{3, "three"},
		tdf.Entry[int32, string]{1, "one"},
	)

	var got []int32
	for k := range m.All() {
		got = append(got, k)
	}
	assert.Equal(t, []int32{3, 1}, got)
}
