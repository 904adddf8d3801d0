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

import "fmt"

// WireType is the one-byte marker that says how a value is framed on the
// wire.
type WireType byte

const (
	WireUnknown WireType = iota
	WireInt
	WireString
	WireBlob
	WireStruct
	WireList
	WireMap
	WireUnion
	WireFloat
	WireVariable
	WireObjectType
	WireObjectId
	WireTimeValue

	wireCount
)

var wireNames = [...]string{
	WireUnknown:    "Unknown",
	WireInt:        "Int",
	WireString:     "String",
	WireBlob:       "Blob",
	WireStruct:     "Struct",
	WireList:       "List",
	WireMap:        "Map",
	WireUnion:      "Union",
	WireFloat:      "Float",
	WireVariable:   "Variable",
	WireObjectType: "ObjectType",
	WireObjectId:   "ObjectId",
	WireTimeValue:  "TimeValue",
}

// Valid returns whether this is a wire type that may follow a tag.
// WireUnknown is not valid: a zero byte in header position is a terminator.
func (w WireType) Valid() bool {
	return w > WireUnknown && w < wireCount
}

// Misencodable returns whether this wire type is relabeled as WireStruct when
// it appears as a list element type in Heat1 compatibility mode.
func (w WireType) Misencodable() bool {
	return w == WireUnion || w == WireList || w == WireMap
}

// Kind returns the canonical logical kind for values of this wire type. All
// integer kinds share WireInt; its canonical kind is KindInt64.
func (w WireType) Kind() Kind {
	switch w {
	case WireInt:
		return KindInt64
	case WireString:
		return KindString
	case WireBlob:
		return KindBlob
	case WireStruct:
		return KindStruct
	case WireList:
		return KindList
	case WireMap:
		return KindMap
	case WireUnion:
		return KindUnion
	case WireFloat:
		return KindFloat
	case WireVariable:
		return KindVariable
	case WireObjectType:
		return KindObjectType
	case WireObjectId:
		return KindObjectId
	case WireTimeValue:
		return KindTimeValue
	default:
		return KindInvalid
	}
}

// String implements [fmt.Stringer].
func (w WireType) String() string {
	if int(w) < len(wireNames) {
		return wireNames[w]
	}
	return fmt.Sprintf("WireType(%d)", byte(w))
}

// Kind is the logical type of a record member. Several kinds may share a
// wire type; they differ in how wide a value the decoder accepts.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindFloat
	KindString
	KindBlob
	KindEnum
	KindObjectType
	KindObjectId
	KindTimeValue
	KindList
	KindMap
	KindStruct
	KindUnion
	KindVariable

	kindCount
)

var kinds = [...]struct {
	name string
	wire WireType
}{
	KindInvalid:    {"Invalid", WireUnknown},
	KindBool:       {"Bool", WireInt},
	KindInt8:       {"Int8", WireInt},
	KindInt16:      {"Int16", WireInt},
	KindInt32:      {"Int32", WireInt},
	KindInt64:      {"Int64", WireInt},
	KindUInt8:      {"UInt8", WireInt},
	KindUInt16:     {"UInt16", WireInt},
	KindUInt32:     {"UInt32", WireInt},
	KindUInt64:     {"UInt64", WireInt},
	KindFloat:      {"Float", WireFloat},
	KindString:     {"String", WireString},
	KindBlob:       {"Blob", WireBlob},
	KindEnum:       {"Enum", WireInt},
	KindObjectType: {"ObjectType", WireObjectType},
	KindObjectId:   {"ObjectId", WireObjectId},
	KindTimeValue:  {"TimeValue", WireTimeValue},
	KindList:       {"List", WireList},
	KindMap:        {"Map", WireMap},
	KindStruct:     {"Struct", WireStruct},
	KindUnion:      {"Union", WireUnion},
	KindVariable:   {"Variable", WireVariable},
}

// WireType returns the wire type values of this kind are written with.
//
// Returns an [*UnsupportedTypeError] for KindInvalid and out-of-range kinds.
func (k Kind) WireType() (WireType, error) {
	if k == KindInvalid || k >= kindCount {
		return WireUnknown, &UnsupportedTypeError{Shape: k.String(), Reason: "no wire type for kind"}
	}
	return kinds[k].wire, nil
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k < kindCount {
		return kinds[k].name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
