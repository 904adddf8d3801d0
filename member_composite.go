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

import "reflect"

// ValueMember is a member whose payload is produced and consumed by the
// dispatch cache codec for its value type, rather than by the driver
// directly.
type ValueMember interface {
	Member

	// EncodeValue writes the member's payload, without a header.
	EncodeValue(e ValueEncoder) error
	// DecodeValue reads a payload into the member and marks it as set.
	DecodeValue(d ValueDecoder) error
	// Value returns the member's value as an any.
	Value() any
}

// ListMember is implemented by [List].
type ListMember interface {
	ValueMember
	Len() int
	ElemWireType() (WireType, error)
}

// MapMember is implemented by [Map].
type MapMember interface {
	ValueMember
	Len() int
	KeyWireType() (WireType, error)
	ValueWireType() (WireType, error)
}

// StructMember is implemented by [Struct].
type StructMember interface {
	ValueMember
	// Record returns the nested record, or nil if there is none.
	Record() Record
}

// UnionMember is implemented by [Union].
type UnionMember interface {
	ValueMember
	// Union returns the nested union, or nil if there is none.
	Union() UnionRecord
}

// EnumMember is implemented by [Enum].
type EnumMember interface {
	ValueMember
	Int64() int64
}

// List is a list member.
type List[T any] struct{ scalar[Vec[T]] }

// Append appends to the list and marks it as set.
func (m *List[T]) Append(v ...T) {
	m.value = append(m.value, v...)
	m.set = true
}

// Len returns the number of elements.
func (m *List[T]) Len() int { return len(m.value) }

// ElemWireType returns the wire type of the list's elements.
func (m *List[T]) ElemWireType() (WireType, error) { return WireTypeOf[T]() }

func (m *List[T]) EncodeValue(e ValueEncoder) error { return encodeWith(e, m.value) }

func (m *List[T]) DecodeValue(d ValueDecoder) error { return decodeInto(d, &m.scalar) }

func (m *List[T]) Value() any { return m.value }

func (m *List[T]) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitList(m, info, parent, visitHeader)
}

// Map is a map member. Entries keep their insertion order.
type Map[K comparable, V any] struct{ scalar[OrderedMap[K, V]] }

// Put inserts or replaces an entry and marks the map as set.
func (m *Map[K, V]) Put(k K, v V) {
	m.value.Set(k, v)
	m.set = true
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.value.Len() }

func (m *Map[K, V]) KeyWireType() (WireType, error)   { return WireTypeOf[K]() }
func (m *Map[K, V]) ValueWireType() (WireType, error) { return WireTypeOf[V]() }

func (m *Map[K, V]) EncodeValue(e ValueEncoder) error { return encodeWith(e, m.value) }

func (m *Map[K, V]) DecodeValue(d ValueDecoder) error { return decodeInto(d, &m.scalar) }

func (m *Map[K, V]) Value() any { return m.value }

func (m *Map[K, V]) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitMap(m, info, parent, visitHeader)
}

// Struct is a nested record member. T must be a pointer type.
type Struct[T Record] struct{ scalar[T] }

// Mutable returns the nested record, allocating it if necessary, and marks
// the member as set.
func (m *Struct[T]) Mutable() T {
	if isNil(m.value) {
		m.value = newRecord[T]()
	}
	m.set = true
	return m.value
}

func (m *Struct[T]) Record() Record {
	if isNil(m.value) {
		return nil
	}
	return m.value
}

func (m *Struct[T]) EncodeValue(e ValueEncoder) error { return encodeWith(e, m.value) }

func (m *Struct[T]) DecodeValue(d ValueDecoder) error { return decodeInto(d, &m.scalar) }

func (m *Struct[T]) Value() any { return m.value }

func (m *Struct[T]) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitStruct(m, info, parent, visitHeader)
}

// Union is a nested union member. T must be a pointer type.
type Union[T UnionRecord] struct{ scalar[T] }

// Mutable returns the nested union, allocating it if necessary, and marks
// the member as set.
func (m *Union[T]) Mutable() T {
	if isNil(m.value) {
		m.value = newRecord[T]()
	}
	m.set = true
	return m.value
}

func (m *Union[T]) Union() UnionRecord {
	if isNil(m.value) {
		return nil
	}
	return m.value
}

func (m *Union[T]) EncodeValue(e ValueEncoder) error { return encodeWith(e, m.value) }

func (m *Union[T]) DecodeValue(d ValueDecoder) error { return decodeInto(d, &m.scalar) }

func (m *Union[T]) Value() any { return m.value }

func (m *Union[T]) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitUnion(m, info, parent, visitHeader)
}

// Enum is a member whose value is a named integer type. It is written as an
// Int, and decoding rejects values that do not fit T.
type Enum[T Integer] struct{ scalar[T] }

// Int64 returns the value converted to int64.
func (m *Enum[T]) Int64() int64 { return int64(m.value) }

func (m *Enum[T]) EncodeValue(e ValueEncoder) error { return encodeWith(e, m.value) }

func (m *Enum[T]) DecodeValue(d ValueDecoder) error { return decodeInto(d, &m.scalar) }

func (m *Enum[T]) Value() any { return m.value }

func (m *Enum[T]) Accept(v Visitor, info *MemberInfo, parent Record, visitHeader bool) error {
	return v.VisitEnum(m, info, parent, visitHeader)
}

// encodeWith writes v with the cached codec for T.
func encodeWith[T any](e ValueEncoder, v T) error {
	c, err := CodecFor[T]()
	if err != nil {
		return err
	}
	return c.Encode(e, v)
}

// decodeInto reads into s with the cached codec for T. s is marked as set
// before decoding, so a value cut short by a decoding problem stays visible.
func decodeInto[T any](d ValueDecoder, s *scalar[T]) error {
	c, err := CodecFor[T]()
	if err != nil {
		return err
	}
	s.set = true
	return c.Decode(d, &s.value)
}

// isNil returns whether v is nil or a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// newRecord allocates the record a pointer type T points to.
func newRecord[T any]() T {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Pointer {
		var z T
		return z
	}
	return reflect.New(rt.Elem()).Interface().(T) //nolint:errcheck
}
