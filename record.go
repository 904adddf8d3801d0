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
	"fmt"
	"io"
)

// Record is a typed record: a fixed set of members described by a [Schema].
//
// Implementations are usually pointers to structs whose fields are member
// types such as [Int32] and [List]; the zero value of such a struct is an
// empty record with no members set.
type Record interface {
	// Schema returns the record's schema. It must return the same value every
	// time it is called.
	Schema() *Schema
	// Member returns the member with the given declaration index.
	Member(index int) Member
}

// NoActiveMember is the union index of a union with no active member.
const NoActiveMember uint8 = 0xff

// UnionRecord is a record where at most one member, selected by
// ActiveIndex, is meaningful.
type UnionRecord interface {
	Record

	// ActiveIndex returns the declaration index of the active member, or
	// [NoActiveMember].
	ActiveIndex() uint8
	SetActiveIndex(index uint8)
}

// UnionState implements the active-index half of [UnionRecord]. Embed it in
// a union struct; its zero value has no active member.
type UnionState struct {
	// Stored off by one so that the zero value wraps around to NoActiveMember.
	selected uint8
}

// ActiveIndex implements [UnionRecord].
func (u *UnionState) ActiveIndex() uint8 { return u.selected - 1 }

// SetActiveIndex implements [UnionRecord].
func (u *UnionState) SetActiveIndex(index uint8) { u.selected = index + 1 }

// Active returns the active member of u, or nil if no member is active or the
// index is out of range.
func Active(u UnionRecord) (Member, *MemberInfo) {
	idx := u.ActiveIndex()
	s := u.Schema()
	if idx == NoActiveMember || s == nil || int(idx) >= s.Len() {
		return nil, nil
	}
	info := s.Member(int(idx))
	return u.Member(info.Index), info
}

// Registry maps records to the schemas used to encode and decode them.
//
// The codec only reads from a Registry, and may do so from many goroutines
// at once.
type Registry interface {
	SchemaOf(r Record) (*Schema, error)
}

// RegistryFunc adapts a function into a [Registry].
type RegistryFunc func(r Record) (*Schema, error)

// SchemaOf implements [Registry].
func (f RegistryFunc) SchemaOf(r Record) (*Schema, error) { return f(r) }

// DefaultRegistry uses each record's own [Record.Schema].
var DefaultRegistry Registry = RegistryFunc(func(r Record) (*Schema, error) {
	if s := r.Schema(); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("tdf: %T has no schema", r)
})

// Serializer is a wire encoding for records.
type Serializer interface {
	// Name identifies the encoding, e.g. "Heat2".
	Name() string
	// Serialize writes one complete record to w.
	Serialize(w io.Writer, r Record) error
	// Deserialize reads one record from r into rec, which must already be
	// allocated. valid is false if the stream was degraded; see the driver's
	// documentation for which problems are returned as errors instead.
	Deserialize(r io.Reader, rec Record) (valid bool, err error)
}
