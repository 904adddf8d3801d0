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

package tdf

import "iter"

// Vec is a list value. Lists nested in other containers, such as the
// elements of a List[Vec[int32]], must use Vec rather than a plain slice so
// that the dispatch cache can resolve their element type.
type Vec[T any] []T

func (Vec[T]) shape() (any, error) { return listCodec[T]() }

// OrderedMap is a map that iterates in insertion order, which is the order
// its entries are written in. The zero value is an empty map.
type OrderedMap[K comparable, V any] struct {
	keys  []K
	vals  []V
	index map[K]int
}

func (OrderedMap[K, V]) shape() (any, error) { return mapCodec[K, V]() }

// Entry is a key-value pair.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// MapOf builds an OrderedMap from entries, in order.
func MapOf[K comparable, V any](entries ...Entry[K, V]) OrderedMap[K, V] {
	var m OrderedMap[K, V]
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

// Get looks up an entry.
func (m *OrderedMap[K, V]) Get(k K) (v V, ok bool) {
	i, ok := m.index[k]
	if !ok {
		return v, false
	}
	return m.vals[i], true
}

// Set inserts an entry at the end, or replaces the value of an existing
// entry in place.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.vals[i] = v
		return
	}
	if m.index == nil {
		m.index = make(map[K]int)
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// Delete removes an entry, preserving the order of the others.
func (m *OrderedMap[K, V]) Delete(k K) bool {
	i, ok := m.index[k]
	if !ok {
		return false
	}
	delete(m.index, k)
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
	return true
}

// All iterates over the entries in insertion order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// Keys iterates over the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}
