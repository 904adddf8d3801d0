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

import (
	"cmp"
	"fmt"
	"time"
)

// ObjectType identifies a kind of object owned by a component.
//
// ObjectTypes are totally ordered by their 32-bit form, component first.
type ObjectType struct {
	Component uint16
	Type      uint16
}

// ObjectTypeFromUint32 unpacks the 32-bit form of an ObjectType.
func ObjectTypeFromUint32(v uint32) ObjectType {
	return ObjectType{Component: uint16(v >> 16), Type: uint16(v)}
}

// Uint32 packs this ObjectType with the component in the high bits.
func (o ObjectType) Uint32() uint32 {
	return uint32(o.Component)<<16 | uint32(o.Type)
}

// Compare returns -1, 0, or +1 as o sorts before, equal to, or after other.
func (o ObjectType) Compare(other ObjectType) int {
	return cmp.Compare(o.Uint32(), other.Uint32())
}

// String implements [fmt.Stringer].
func (o ObjectType) String() string {
	return fmt.Sprintf("%d/%d", o.Component, o.Type)
}

// ObjectId identifies a single object: its type plus a 64-bit id.
type ObjectId struct {
	Type ObjectType
	Id   int64
}

// Compare orders ObjectIds by type, then by id.
func (o ObjectId) Compare(other ObjectId) int {
	if c := o.Type.Compare(other.Type); c != 0 {
		return c
	}
	return cmp.Compare(o.Id, other.Id)
}

// String implements [fmt.Stringer].
func (o ObjectId) String() string {
	return fmt.Sprintf("%v/%d", o.Type, o.Id)
}

// TimeValue is a signed count of microseconds. Depending on the member it is
// either a duration or a time since the Unix epoch.
type TimeValue int64

// TimeValueOf truncates d to microseconds.
func TimeValueOf(d time.Duration) TimeValue {
	return TimeValue(d.Microseconds())
}

// TimeValueFromTime returns the microseconds between the Unix epoch and t.
func TimeValueFromTime(t time.Time) TimeValue {
	return TimeValue(t.UnixMicro())
}

// Duration interprets this value as a duration.
func (t TimeValue) Duration() time.Duration {
	return time.Duration(t) * time.Microsecond
}

// Time interprets this value as an offset from the Unix epoch.
func (t TimeValue) Time() time.Time {
	return time.UnixMicro(int64(t))
}

// String implements [fmt.Stringer], formatting the value as a duration.
func (t TimeValue) String() string {
	return t.Duration().String()
}
