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

package xsync_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blazekit/tdf/internal/xsync"
)

func TestLoadOrStore(t *testing.T) {
	t.Parallel()

	var m xsync.Map[string, *int]
	_, ok := m.Load("a")
	assert.False(t, ok)

	one := 1
	v, loaded := m.LoadOrStore("a", func() *int { return &one })
	assert.False(t, loaded)
	assert.Same(t, &one, v)

	v, loaded = m.LoadOrStore("a", func() *int {
		t.Error("make called for a present key")
		return nil
	})
	assert.True(t, loaded)
	assert.Same(t, &one, v)
	assert.Equal(t, 1, m.Len())
}

func TestLoadOrStoreRace(t *testing.T) {
	t.Parallel()

	var m xsync.Map[int, *int]
	const n = 16

	got := make([]*int, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], _ = m.LoadOrStore(0, func() *int { return new(int) })
		}()
	}
	wg.Wait()

	for _, p := range got {
		assert.Same(t, got[0], p)
	}
	assert.Equal(t, 1, m.Len())
}
