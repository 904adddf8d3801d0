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

// Visitor is a driver that walks a record: an encoder, a decoder, a printer.
//
// Each member's Accept calls exactly one of the Visit methods below, so a
// driver handles every member kind without knowing the concrete member types
// behind [ListMember], [MapMember] and friends.
type Visitor interface {
	// VisitRecord visits the members of a record. What that means is up to
	// the driver: an encoder visits the set members with [VisitMembers], a
	// decoder visits whichever members the stream contains.
	VisitRecord(r Record) error

	VisitBool(m *Bool, info *MemberInfo, parent Record, visitHeader bool) error
	VisitInt8(m *Int8, info *MemberInfo, parent Record, visitHeader bool) error
	VisitInt16(m *Int16, info *MemberInfo, parent Record, visitHeader bool) error
	VisitInt32(m *Int32, info *MemberInfo, parent Record, visitHeader bool) error
	VisitInt64(m *Int64, info *MemberInfo, parent Record, visitHeader bool) error
	VisitUInt8(m *UInt8, info *MemberInfo, parent Record, visitHeader bool) error
	VisitUInt16(m *UInt16, info *MemberInfo, parent Record, visitHeader bool) error
	VisitUInt32(m *UInt32, info *MemberInfo, parent Record, visitHeader bool) error
	VisitUInt64(m *UInt64, info *MemberInfo, parent Record, visitHeader bool) error
	VisitFloat(m *Float, info *MemberInfo, parent Record, visitHeader bool) error
	VisitString(m *String, info *MemberInfo, parent Record, visitHeader bool) error
	VisitBlob(m *Blob, info *MemberInfo, parent Record, visitHeader bool) error
	VisitObjectType(m *ObjectTypeField, info *MemberInfo, parent Record, visitHeader bool) error
	VisitObjectId(m *ObjectIdField, info *MemberInfo, parent Record, visitHeader bool) error
	VisitTimeValue(m *TimeValueField, info *MemberInfo, parent Record, visitHeader bool) error
	VisitList(m ListMember, info *MemberInfo, parent Record, visitHeader bool) error
	VisitMap(m MapMember, info *MemberInfo, parent Record, visitHeader bool) error
	VisitStruct(m StructMember, info *MemberInfo, parent Record, visitHeader bool) error
	VisitUnion(m UnionMember, info *MemberInfo, parent Record, visitHeader bool) error
	VisitEnum(m EnumMember, info *MemberInfo, parent Record, visitHeader bool) error
	VisitVariable(m *Variable, info *MemberInfo, parent Record, visitHeader bool) error
}

// VisitMembers visits every set member of r in ascending tag order, with
// visitHeader set.
func VisitMembers(v Visitor, r Record, s *Schema) error {
	for _, info := range s.Members() {
		m := r.Member(info.Index)
		if m == nil || !m.IsSet() {
			continue
		}
		if err := m.Accept(v, info, r, true); err != nil {
			return err
		}
	}
	return nil
}

// ValueEncoder is the payload-writing half of an encoding driver. Codecs
// from [CodecFor] write values through it.
//
// None of these write a field header.
type ValueEncoder interface {
	EncodeInt(v int64) error
	EncodeFloat(v float32) error
	EncodeString(v string) error
	EncodeBlob(v []byte) error
	EncodeObjectType(v ObjectType) error
	EncodeObjectId(v ObjectId) error
	EncodeTimeValue(v TimeValue) error

	// EncodeRecord writes r's members and a terminator. A nil r is written as
	// an empty record.
	EncodeRecord(r Record) error
	// EncodeUnion writes u's index, active member and a terminator. A nil u
	// is written as a union with no active member.
	EncodeUnion(u UnionRecord) error

	// EncodeListHeader starts a list of n elements of type elem; the caller
	// then encodes exactly n elements.
	EncodeListHeader(elem WireType, n int) error
	// EncodeMapHeader starts a map of n entries; the caller then encodes
	// exactly n key-value pairs.
	EncodeMapHeader(key, value WireType, n int) error
}

// ValueDecoder is the payload-reading half of a decoding driver.
//
// Errors returned by ValueDecoder methods must be propagated as-is. Problems
// with the data that do not prevent decoding from continuing are instead
// reported to [ValueDecoder.Degrade], and the offending value is dropped.
type ValueDecoder interface {
	DecodeInt() (int64, error)
	DecodeFloat() (float32, error)
	DecodeString() (string, error)
	DecodeBlob() ([]byte, error)
	DecodeObjectType() (ObjectType, error)
	DecodeObjectId() (ObjectId, error)
	DecodeTimeValue() (TimeValue, error)

	// DecodeRecord reads members into r until a terminator.
	DecodeRecord(r Record) error
	// DecodeUnion reads an index and members into u until a terminator.
	DecodeUnion(u UnionRecord) error

	// DecodeListHeader reads a list header, returning the element count. If
	// the elements on the wire are not of type elem, the driver skips them
	// and returns zero.
	DecodeListHeader(elem WireType) (int, error)
	// DecodeMapHeader is like DecodeListHeader, for maps.
	DecodeMapHeader(key, value WireType) (int, error)

	// Degrade records a recoverable problem with the data.
	Degrade(err error)
}
