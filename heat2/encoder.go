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

package heat2

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/blazekit/tdf"
	"github.com/blazekit/tdf/internal/debug"
	"github.com/blazekit/tdf/internal/varint"
)

// Encoder writes records to a stream.
//
// Each call to [Encoder.Encode] builds the whole record in a pooled buffer
// and then writes it with a single call to the underlying writer. An Encoder
// is not safe for concurrent use.
type Encoder struct {
	w     io.Writer
	opts  options
	buf   []byte
	depth int
}

var (
	_ tdf.Visitor      = (*Encoder)(nil)
	_ tdf.ValueEncoder = (*Encoder)(nil)
)

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: newOptions(opts)}
}

// Encode writes r, followed by a terminator, to the stream.
//
// Only set members are written, in ascending tag order. Errors are about the
// record's types (such as a set [tdf.Variable]) or the stream; when an error
// is returned nothing has been written.
func (e *Encoder) Encode(r tdf.Record) error {
	buf, drop := encodeBuffers.Get()
	defer drop()

	b, err := e.append(*buf, r)
	*buf = b
	if err != nil {
		return err
	}
	_, err = e.w.Write(b)
	return err
}

// append encodes r onto the end of b.
func (e *Encoder) append(b []byte, r tdf.Record) ([]byte, error) {
	if isNil(r) {
		return b, fmt.Errorf("heat2: %w", tdf.ErrNilRecord)
	}

	e.buf, e.depth = b, 0
	err := e.EncodeRecord(r)
	b, e.buf = e.buf, nil
	if debug.Enabled {
		debug.Log(nil, "encode", "%s: %v", tdf.Sprint(r), err)
	}
	return b, err
}

// header writes a member header if one is called for.
func (e *Encoder) header(info *tdf.MemberInfo, wire tdf.WireType, visitHeader bool) {
	debug.Assert(info.WireType() == wire, "%v declared as %v, but is a %v member", info, info.Kind, wire)
	if visitHeader {
		e.buf = AppendHeader(e.buf, info.Tag, wire)
	}
}

func (e *Encoder) enter() error {
	if e.depth >= e.opts.maxDepth {
		return fmt.Errorf("heat2: %w: %d", tdf.ErrRecursionDepth, e.opts.maxDepth)
	}
	e.depth++
	return nil
}

// VisitRecord implements [tdf.Visitor].
func (e *Encoder) VisitRecord(r tdf.Record) error {
	s, err := e.opts.registry.SchemaOf(r)
	if err != nil {
		return fmt.Errorf("heat2: %w", err)
	}
	return tdf.VisitMembers(e, r, s)
}

func (e *Encoder) VisitBool(m *tdf.Bool, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireInt, visitHeader)
	var v int64
	if m.Get() {
		v = 1
	}
	return e.EncodeInt(v)
}

func (e *Encoder) VisitInt8(m *tdf.Int8, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireInt, visitHeader)
	return e.EncodeInt(int64(m.Get()))
}

func (e *Encoder) VisitInt16(m *tdf.Int16, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireInt, visitHeader)
	return e.EncodeInt(int64(m.Get()))
}

func (e *Encoder) VisitInt32(m *tdf.Int32, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireInt, visitHeader)
	return e.EncodeInt(int64(m.Get()))
}

func (e *Encoder) VisitInt64(m *tdf.Int64, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireInt, visitHeader)
	return e.EncodeInt(m.Get())
}

func (e *Encoder) VisitUInt8(m *tdf.UInt8, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireInt, visitHeader)
	return e.EncodeInt(int64(m.Get()))
}

func (e *Encoder) VisitUInt16(m *tdf.UInt16, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireInt, visitHeader)
	return e.EncodeInt(int64(m.Get()))
}

func (e *Encoder) VisitUInt32(m *tdf.UInt32, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireInt, visitHeader)
	return e.EncodeInt(int64(m.Get()))
}

func (e *Encoder) VisitUInt64(m *tdf.UInt64, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireInt, visitHeader)
	return e.EncodeInt(int64(m.Get())) //nolint:gosec // Written as its bit pattern.
}

func (e *Encoder) VisitFloat(m *tdf.Float, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireFloat, visitHeader)
	return e.EncodeFloat(m.Get())
}

func (e *Encoder) VisitString(m *tdf.String, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireString, visitHeader)
	return e.EncodeString(m.Get())
}

func (e *Encoder) VisitBlob(m *tdf.Blob, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireBlob, visitHeader)
	return e.EncodeBlob(m.Get())
}

func (e *Encoder) VisitObjectType(m *tdf.ObjectTypeField, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireObjectType, visitHeader)
	return e.EncodeObjectType(m.Get())
}

func (e *Encoder) VisitObjectId(m *tdf.ObjectIdField, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireObjectId, visitHeader)
	return e.EncodeObjectId(m.Get())
}

func (e *Encoder) VisitTimeValue(m *tdf.TimeValueField, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	e.header(info, tdf.WireTimeValue, visitHeader)
	return e.EncodeTimeValue(m.Get())
}

func (e *Encoder) VisitList(m tdf.ListMember, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	return e.value(m, info, tdf.WireList, visitHeader)
}

func (e *Encoder) VisitMap(m tdf.MapMember, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	return e.value(m, info, tdf.WireMap, visitHeader)
}

func (e *Encoder) VisitStruct(m tdf.StructMember, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	return e.value(m, info, tdf.WireStruct, visitHeader)
}

func (e *Encoder) VisitUnion(m tdf.UnionMember, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	return e.value(m, info, tdf.WireUnion, visitHeader)
}

func (e *Encoder) VisitEnum(m tdf.EnumMember, info *tdf.MemberInfo, _ tdf.Record, visitHeader bool) error {
	return e.value(m, info, tdf.WireInt, visitHeader)
}

func (e *Encoder) VisitVariable(_ *tdf.Variable, info *tdf.MemberInfo, parent tdf.Record, _ bool) error {
	return fmt.Errorf("heat2: %s.%s: %w", parent.Schema().Name(), info.Name, &tdf.UnsupportedTypeError{
		Shape:  "tdf.Variable",
		Reason: "variable members have no Heat2 encoding",
	})
}

func (e *Encoder) value(m tdf.ValueMember, info *tdf.MemberInfo, wire tdf.WireType, visitHeader bool) error {
	e.header(info, wire, visitHeader)
	return m.EncodeValue(e)
}

// EncodeInt implements [tdf.ValueEncoder].
func (e *Encoder) EncodeInt(v int64) error {
	e.buf = varint.Append(e.buf, v)
	return nil
}

// EncodeFloat implements [tdf.ValueEncoder].
func (e *Encoder) EncodeFloat(v float32) error {
	e.buf = binary.BigEndian.AppendUint32(e.buf, math.Float32bits(v))
	return nil
}

// EncodeString implements [tdf.ValueEncoder]. The length prefix counts the
// trailing NUL.
func (e *Encoder) EncodeString(v string) error {
	e.buf = varint.Append(e.buf, int64(len(v))+1)
	e.buf = append(e.buf, v...)
	e.buf = append(e.buf, 0)
	return nil
}

// EncodeBlob implements [tdf.ValueEncoder].
func (e *Encoder) EncodeBlob(v []byte) error {
	e.buf = varint.Append(e.buf, int64(len(v)))
	e.buf = append(e.buf, v...)
	return nil
}

// EncodeObjectType implements [tdf.ValueEncoder].
func (e *Encoder) EncodeObjectType(v tdf.ObjectType) error {
	e.buf = varint.Append(e.buf, int64(v.Component))
	e.buf = varint.Append(e.buf, int64(v.Type))
	return nil
}

// EncodeObjectId implements [tdf.ValueEncoder].
func (e *Encoder) EncodeObjectId(v tdf.ObjectId) error {
	_ = e.EncodeObjectType(v.Type)
	e.buf = varint.Append(e.buf, v.Id)
	return nil
}

// EncodeTimeValue implements [tdf.ValueEncoder].
func (e *Encoder) EncodeTimeValue(v tdf.TimeValue) error {
	e.buf = varint.Append(e.buf, int64(v))
	return nil
}

// EncodeRecord implements [tdf.ValueEncoder].
func (e *Encoder) EncodeRecord(r tdf.Record) error {
	if !isNil(r) {
		if err := e.enter(); err != nil {
			return err
		}
		err := e.VisitRecord(r)
		e.depth--
		if err != nil {
			return err
		}
	}
	e.buf = append(e.buf, Terminator)
	return nil
}

// EncodeUnion implements [tdf.ValueEncoder].
func (e *Encoder) EncodeUnion(u tdf.UnionRecord) error {
	if isNil(u) {
		e.buf = append(e.buf, tdf.NoActiveMember, Terminator)
		return nil
	}

	if err := e.enter(); err != nil {
		return err
	}
	defer func() { e.depth-- }()

	idx := u.ActiveIndex()
	e.buf = append(e.buf, idx)
	if idx != tdf.NoActiveMember {
		s, err := e.opts.registry.SchemaOf(u)
		if err != nil {
			return fmt.Errorf("heat2: %w", err)
		}
		if int(idx) >= s.Len() {
			return fmt.Errorf("heat2: %w: %d in %s, which has %d members",
				tdf.ErrInvalidUnionIndex, idx, s.Name(), s.Len())
		}

		info := s.Member(int(idx))
		m := u.Member(info.Index)
		if m == nil {
			return fmt.Errorf("heat2: %s has no member %d (%s)", s.Name(), info.Index, info.Name)
		}
		if err := m.Accept(e, info, u, true); err != nil {
			return err
		}
	}

	e.buf = append(e.buf, Terminator)
	return nil
}

// EncodeListHeader implements [tdf.ValueEncoder].
func (e *Encoder) EncodeListHeader(elem tdf.WireType, n int) error {
	if e.opts.heat1 && elem.Misencodable() {
		elem = tdf.WireStruct
	}
	e.buf = append(e.buf, byte(elem))
	e.buf = varint.Append(e.buf, int64(n))
	return nil
}

// EncodeMapHeader implements [tdf.ValueEncoder].
func (e *Encoder) EncodeMapHeader(key, value tdf.WireType, n int) error {
	e.buf = append(e.buf, byte(key), byte(value))
	e.buf = varint.Append(e.buf, int64(n))
	return nil
}

// isNil returns whether r is nil or wraps a nil pointer.
func isNil(r any) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
