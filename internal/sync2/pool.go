// Copyright 2020-2025 Buf Technologies, Inc.
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

// Package sync2 contains typed wrappers over package sync.
package sync2

import "sync"

// Pool is a strongly typed sync.Pool.
//
// Values larger than MaxCap (as reported by Cap) are dropped instead of being
// returned to the pool, so that one huge record does not pin its buffer for
// the rest of the process.
type Pool[T any] struct {
	New   func() *T    // Called to construct new values.
	Reset func(*T)     // Called to reset values before re-use.
	Cap   func(*T) int // Reports the retained size of a value; optional.

	MaxCap int

	impl sync.Pool
}

// Get returns a cached value of type T, and a function that must be called
// exactly once when the value is no longer in use.
//
// Use like this:
//
//	buf, drop := pool.Get()
//	defer drop()
func (p *Pool[T]) Get() (v *T, drop func()) {
	v, _ = p.impl.Get().(*T)
	if v == nil {
		if p.New != nil {
			v = p.New()
		} else {
			v = new(T)
		}
	}

	return v, func() {
		if p.Cap != nil && p.MaxCap > 0 && p.Cap(v) > p.MaxCap {
			return
		}
		if p.Reset != nil {
			p.Reset(v)
		}
		p.impl.Put(v)
	}
}
