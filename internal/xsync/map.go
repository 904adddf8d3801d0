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

// Package xsync contains typed concurrency primitives.
package xsync

import (
	"iter"
	"sync"
)

// Map is an insert-only, strongly-typed wrapper over sync.Map.
//
// Entries are never removed or replaced once inserted, which is what makes it
// suitable for caches whose values are derived purely from their keys.
type Map[K comparable, V any] struct {
	impl sync.Map
}

// Load forwards to [sync.Map.Load].
func (m *Map[K, V]) Load(k K) (V, bool) {
	v, ok := m.impl.Load(k)
	if !ok {
		var z V
		return z, false
	}
	return v.(V), true //nolint:errcheck
}

// LoadOrStore returns the value for k if present. Otherwise it constructs one
// with make and inserts it, unless another goroutine got there first, in which
// case the other goroutine's value is returned.
//
// make may be called even though its result is discarded, so it must not have
// side effects beyond building the value. make runs without any lock held,
// and may itself call LoadOrStore on other keys.
func (m *Map[K, V]) LoadOrStore(k K, make func() V) (actual V, loaded bool) {
	if v, ok := m.Load(k); ok {
		return v, true
	}
	w, ok := m.impl.LoadOrStore(k, make())
	return w.(V), ok //nolint:errcheck
}

// Len counts the entries in the map. It is linear in the size of the map.
func (m *Map[K, V]) Len() int {
	var n int
	for range m.All() {
		n++
	}
	return n
}

// All returns an iterator over the entries in this map, using
// [sync.Map.Range].
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.impl.Range(func(key, value any) bool {
			return yield(key.(K), value.(V)) //nolint:errcheck
		})
	}
}
