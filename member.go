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

// Member is one member of a record.
//
// Member values are owned by their record; the zero value of every member
// type is an unset member holding the zero value of its type.
type Member interface {
	// IsSet returns whether a value was explicitly assigned (or decoded).
	// Encoders only write set members.
	IsSet() bool
	// Reset clears the member back to its zero value and unsets it.
	Reset()
	// Accept calls the method of v that corresponds to this member's kind.
	//
	// info is this member's description in parent's schema. visitHeader is
	// true when the member is a headered field of parent.
	Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error
}

// scalar is the storage shared by every member type.
type scalar[T any] struct {
	value T
	set   bool
}

// Get returns the member's value, which is the zero value if unset.
func (s *scalar[T]) Get() T { return s.value }

// Set assigns a value and marks the member as set.
func (s *scalar[T]) Set(v T) {
	s.value = v
	s.set = true
}

// IsSet implements [Member].
func (s *scalar[T]) IsSet() bool { return s.set }

// Reset implements [Member].
func (s *scalar[T]) Reset() { *s = scalar[T]{} }

type (
	// Bool is a boolean member, written as an Int of 0 or 1.
	Bool struct{ scalar[bool] }

	Int8   struct{ scalar[int8] }
	Int16  struct{ scalar[int16] }
	Int32  struct{ scalar[int32] }
	Int64  struct{ scalar[int64] }
	UInt8  struct{ scalar[uint8] }
	UInt16 struct{ scalar[uint16] }
	UInt32 struct{ scalar[uint32] }
	// UInt64 is written as the int64 with the same bits.
	UInt64 struct{ scalar[uint64] }

	// Float is a 32-bit float member.
	Float struct{ scalar[float32] }

	String struct{ scalar[string] }
	Blob   struct{ scalar[[]byte] }

	ObjectTypeField struct{ scalar[ObjectType] }
	ObjectIdField   struct{ scalar[ObjectId] }
	TimeValueField  struct{ scalar[TimeValue] }

	// Variable is a slot that may hold a record of any type.
	//
	// Its wire representation is not implemented: encoding a set Variable
	// fails with [ErrUnsupportedType], and since its payload cannot be
	// skipped, a Variable in a stream ends decoding.
	Variable struct{ scalar[Record] }
)

func (m *Bool) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitBool(m, info, parent, visitHeader)
}

func (m *Int8) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitInt8(m, info, parent, visitHeader)
}

func (m *Int16) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitInt16(m, info, parent, visitHeader)
}

func (m *Int32) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitInt32(m, info, parent, visitHeader)
}

func (m *Int64) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitInt64(m, info, parent, visitHeader)
}

func (m *UInt8) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitUInt8(m, info, parent, visitHeader)
}

func (m *UInt16) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitUInt16(m, info, parent, visitHeader)
}

func (m *UInt32) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitUInt32(m, info, parent, visitHeader)
}

func (m *UInt64) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitUInt64(m, info, parent, visitHeader)
}

func (m *Float) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitFloat(m, info, parent, visitHeader)
}

func (m *String) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitString(m, info, parent, visitHeader)
}

func (m *Blob) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitBlob(m, info, parent, visitHeader)
}

func (m *ObjectTypeField) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitObjectType(m, info, parent, visitHeader)
}

func (m *ObjectIdField) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitObjectId(m, info, parent, visitHeader)
}

func (m *TimeValueField) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitTimeValue(m, info, parent, visitHeader)
}

func (m *Variable) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitVariable(m, info, parent, visitHeader)
}
