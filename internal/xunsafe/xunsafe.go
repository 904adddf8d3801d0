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

// Package xunsafe provides a more convenient interface for performing unsafe
// operations than Go's built-in package unsafe.
package xunsafe

import "unsafe"

// BitCast performs an unsafe bitcast from one type to another.
//
// To and From must have the same size. This is used to move between a named
// type and its underlying type (an enum and its integer, say) in generic code,
// where a plain conversion is not expressible.
func BitCast[To, From any](v From) To {
	return *(*To)(unsafe.Pointer(&v))
}

// SameSize reports whether a [BitCast] between To and From is well-defined.
func SameSize[To, From any]() bool {
	var (
		to   To
		from From
	)
	return unsafe.Sizeof(to) == unsafe.Sizeof(from)
}
