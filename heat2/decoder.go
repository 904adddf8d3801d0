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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/blazekit/tdf"
	"github.com/blazekit/tdf/internal/debug"
	"github.com/blazekit/tdf/internal/varint"
)

// errStop unwinds the decoder after a fatal problem has been recorded. It
// never escapes [Decoder.Decode].
var errStop = errors.New("heat2: decoding stopped")

// Decoder reads records from a stream.
//
// A Decoder reads exactly as many bytes as the record occupies, so several
// records may be decoded back to back from the same stream. It is not safe
// for concurrent use.
type Decoder struct {
	r     reader
	opts  options
	depth int

	// The header most recently read. Visit methods check pending against the
	// member's wire type before reading a payload.
	pending tdf.WireType
	tag     tdf.Tag

	problems []error
	skipped  []UnknownField
}

var (
	_ tdf.Visitor      = (*Decoder)(nil)
	_ tdf.ValueDecoder = (*Decoder)(nil)
)

// NewDecoder returns a decoder that reads from r.
//
// Decoding issues one read per byte unless r implements [io.ByteReader];
// wrap unbuffered readers in a [bufio.Reader].
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	d := &Decoder{opts: newOptions(opts)}
	d.r.reset(r)
	return d
}

// Decode reads one record into rec, which must already be allocated.
// Members present in the stream are overwritten; other members are left as
// they are.
//
// valid is false if any problem was found in the data; the problems are
// available from [Decoder.Err]. err is non-nil only for problems that are
// not about the data: unsupported member types, registry failures, a nil
// rec, and I/O errors other than running out of input.
//
// The end of the input in place of the top-level terminator is accepted as
// the end of the record.
func (d *Decoder) Decode(rec tdf.Record) (valid bool, err error) {
	d.problems = d.problems[:0]
	d.skipped = d.skipped[:0]
	d.depth = 1 // The root record counts as a level, as when encoding.
	d.tag, d.pending = 0, tdf.WireUnknown

	if isNil(rec) {
		return false, fmt.Errorf("heat2: %w", tdf.ErrNilRecord)
	}

	start := d.r.off
	err = d.record(rec, true)
	if debug.Enabled {
		debug.Log(nil, "decode", "[%d:%d] %s: %v, %v", start, d.r.off, tdf.Sprint(rec), d.problems, err)
	}
	if err == errStop {
		err = nil
	}
	if err != nil {
		return false, err
	}
	return len(d.problems) == 0, nil
}

// Err returns the problems found by the last call to [Decoder.Decode],
// joined with [errors.Join], or nil if there were none. Each problem is a
// [*DecodeError].
func (d *Decoder) Err() error {
	return errors.Join(d.problems...)
}

// Skipped returns the unknown fields skipped by the last call to
// [Decoder.Decode].
func (d *Decoder) Skipped() []UnknownField {
	return d.skipped
}

// Offset returns the number of bytes consumed from the stream so far.
func (d *Decoder) Offset() int64 {
	return d.r.off
}

// VisitRecord implements [tdf.Visitor].
func (d *Decoder) VisitRecord(r tdf.Record) error {
	return d.record(r, false)
}

func (d *Decoder) record(r tdf.Record, root bool) error {
	s, err := d.opts.registry.SchemaOf(r)
	if err != nil {
		return fmt.Errorf("heat2: %w", err)
	}
	return d.fields(r, s, root)
}

// fields reads headers and dispatches members until a terminator.
func (d *Decoder) fields(r tdf.Record, s *tdf.Schema, root bool) error {
	var seen map[tdf.Tag]int // Occurrences of repeated tags.
	for {
		off := d.r.off
		tag, wire, end, err := readHeader(&d.r)
		switch {
		case err == io.EOF && root:
			return nil
		case err != nil:
			return d.fail(err)
		case end:
			return nil
		}

		d.tag, d.pending = tag, wire
		if debug.Enabled {
			debug.Log([]any{"%s", s.Name()}, "header", "%v:%v at %d", tag, wire, off)
		}
		if !wire.Valid() {
			return d.fatal(errCodeUnskippable, nil)
		}

		info := s.Lookup(tag, 0)
		if info != nil && !info.Unique {
			if seen == nil {
				seen = make(map[tdf.Tag]int)
			}
			info = s.Lookup(tag, seen[tag])
			seen[tag]++
		}
		if info == nil {
			if err := d.unknown(s, tag, wire, off); err != nil {
				return err
			}
			continue
		}

		m := r.Member(info.Index)
		if m == nil {
			return fmt.Errorf("heat2: %s has no member %d (%s)", s.Name(), info.Index, info.Name)
		}
		if err := m.Accept(d, info, r, true); err != nil {
			return err
		}
	}
}

// unknown records and skips a field that is not in the schema.
func (d *Decoder) unknown(s *tdf.Schema, tag tdf.Tag, wire tdf.WireType, off int64) error {
	d.skipped = append(d.skipped, UnknownField{
		Record:   s.Name(),
		Tag:      tag,
		WireType: wire,
		Offset:   off,
	})
	d.opts.logger.Debug("heat2: skipping unknown field",
		slog.String("record", s.Name()),
		slog.String("tag", tag.String()),
		slog.String("wire", wire.String()),
		slog.Int64("offset", off),
	)
	return d.skip(wire)
}

// skip discards a payload of the given wire type.
func (d *Decoder) skip(wire tdf.WireType) error {
	if err := skipValue(&d.r, wire, d.opts.maxDepth-d.depth); err != nil {
		return d.fail(err)
	}
	return nil
}

// expect checks the pending header's wire type. On a mismatch the payload is
// skipped and the stream degraded; ok is false and err is non-nil only if
// skipping failed.
func (d *Decoder) expect(want tdf.WireType) (ok bool, err error) {
	if d.pending == want {
		return true, nil
	}
	d.Degrade(fmt.Errorf("%w: got %v, want %v", tdf.ErrWireTypeMismatch, d.pending, want))
	return false, d.skip(d.pending)
}

func (d *Decoder) enter() error {
	if d.depth >= d.opts.maxDepth {
		return d.fatal(errCodeDepth, nil)
	}
	d.depth++
	return nil
}

// fail converts an error from the reader into a fatal problem, or an I/O
// error into a returned error.
func (d *Decoder) fail(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if code := codeOf(err); code.fatal() {
		return d.fatal(code, nil)
	}
	return fmt.Errorf("heat2: read failed at offset %d: %w", d.r.off, err)
}

// fatal records a problem that ends decoding, and returns errStop.
func (d *Decoder) fatal(code errCode, cause error) error {
	d.problem(code, cause)
	return errStop
}

func (d *Decoder) problem(code errCode, cause error) {
	err := &DecodeError{
		code:   code,
		offset: d.r.off,
		tag:    d.tag,
		wire:   d.pending,
		cause:  cause,
	}
	d.problems = append(d.problems, err)
	d.opts.logger.Warn("heat2: degraded stream",
		slog.Int64("offset", err.offset),
		slog.String("tag", err.tag.String()),
		slog.Bool("fatal", code.fatal()),
		slog.Any("error", err.Unwrap()),
	)
}

// Degrade implements [tdf.ValueDecoder].
func (d *Decoder) Degrade(err error) {
	d.problem(codeOf(err), err)
}

func (d *Decoder) VisitBool(m *tdf.Bool, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	if ok, err := d.expect(tdf.WireInt); !ok {
		return err
	}
	x, err := d.DecodeInt()
	if err != nil {
		return err
	}
	m.Set(x != 0)
	return nil
}

func (d *Decoder) VisitInt8(m *tdf.Int8, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeInt(d, m.Set)
}

func (d *Decoder) VisitInt16(m *tdf.Int16, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeInt(d, m.Set)
}

func (d *Decoder) VisitInt32(m *tdf.Int32, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeInt(d, m.Set)
}

func (d *Decoder) VisitInt64(m *tdf.Int64, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeInt(d, m.Set)
}

func (d *Decoder) VisitUInt8(m *tdf.UInt8, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeInt(d, m.Set)
}

func (d *Decoder) VisitUInt16(m *tdf.UInt16, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeInt(d, m.Set)
}

func (d *Decoder) VisitUInt32(m *tdf.UInt32, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeInt(d, m.Set)
}

func (d *Decoder) VisitUInt64(m *tdf.UInt64, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeInt(d, m.Set)
}

func (d *Decoder) VisitFloat(m *tdf.Float, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeAs(d, tdf.WireFloat, d.DecodeFloat, m.Set)
}

func (d *Decoder) VisitString(m *tdf.String, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeAs(d, tdf.WireString, d.DecodeString, m.Set)
}

func (d *Decoder) VisitBlob(m *tdf.Blob, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeAs(d, tdf.WireBlob, d.DecodeBlob, m.Set)
}

func (d *Decoder) VisitObjectType(m *tdf.ObjectTypeField, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeAs(d, tdf.WireObjectType, d.DecodeObjectType, m.Set)
}

func (d *Decoder) VisitObjectId(m *tdf.ObjectIdField, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeAs(d, tdf.WireObjectId, d.DecodeObjectId, m.Set)
}

func (d *Decoder) VisitTimeValue(m *tdf.TimeValueField, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return decodeAs(d, tdf.WireTimeValue, d.DecodeTimeValue, m.Set)
}

func (d *Decoder) VisitList(m tdf.ListMember, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return d.value(m, tdf.WireList)
}

func (d *Decoder) VisitMap(m tdf.MapMember, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return d.value(m, tdf.WireMap)
}

func (d *Decoder) VisitStruct(m tdf.StructMember, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return d.value(m, tdf.WireStruct)
}

func (d *Decoder) VisitUnion(m tdf.UnionMember, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return d.value(m, tdf.WireUnion)
}

func (d *Decoder) VisitEnum(m tdf.EnumMember, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	return d.value(m, tdf.WireInt)
}

// VisitVariable implements [tdf.Visitor]. Variable payloads cannot be
// decoded or skipped, so a matching header ends the stream.
func (d *Decoder) VisitVariable(_ *tdf.Variable, _ *tdf.MemberInfo, _ tdf.Record, _ bool) error {
	if ok, err := d.expect(tdf.WireVariable); !ok {
		return err
	}
	return d.fatal(errCodeUnskippable, nil)
}

func (d *Decoder) value(m tdf.ValueMember, want tdf.WireType) error {
	if ok, err := d.expect(want); !ok {
		return err
	}
	return m.DecodeValue(d)
}

func decodeInt[T tdf.Integer](d *Decoder, set func(T)) error {
	if ok, err := d.expect(tdf.WireInt); !ok {
		return err
	}
	x, err := d.DecodeInt()
	if err != nil {
		return err
	}
	// uint64 members accept every value; they are written as int64 bits.
	if int64(T(x)) != x {
		var z T
		d.Degrade(fmt.Errorf("%w: %d does not fit %T", tdf.ErrIntegerRange, x, z))
		return nil
	}
	set(T(x))
	return nil
}

func decodeAs[T any](d *Decoder, want tdf.WireType, read func() (T, error), set func(T)) error {
	if ok, err := d.expect(want); !ok {
		return err
	}
	v, err := read()
	if err != nil {
		return err
	}
	set(v)
	return nil
}

// length reads a non-negative varint length prefix.
func (d *Decoder) length() (int64, error) {
	n, _, err := varint.Read(&d.r)
	if err != nil {
		return 0, d.fail(err)
	}
	if n < 0 {
		return 0, d.fatal(errCodeLength, fmt.Errorf("%w: %d", tdf.ErrInvalidLength, n))
	}
	return n, nil
}

// DecodeInt implements [tdf.ValueDecoder].
func (d *Decoder) DecodeInt() (int64, error) {
	v, _, err := varint.Read(&d.r)
	if err != nil {
		return 0, d.fail(err)
	}
	return v, nil
}

// DecodeFloat implements [tdf.ValueDecoder].
func (d *Decoder) DecodeFloat() (float32, error) {
	var b [4]byte
	if err := d.r.readFull(b[:]); err != nil {
		return 0, d.fail(err)
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b[:])), nil
}

// DecodeString implements [tdf.ValueDecoder].
func (d *Decoder) DecodeString() (string, error) {
	n, err := d.length()
	if err != nil {
		return "", err
	}
	if n == 0 {
		// The prefix counts the NUL, so it is at least one.
		return "", d.fatal(errCodeLength, fmt.Errorf("%w: empty string prefix", tdf.ErrInvalidLength))
	}

	var s string
	if n <= smallString {
		var stack [smallString]byte
		b := stack[:n]
		if err := d.r.readFull(b); err != nil {
			return "", d.fail(err)
		}
		s = string(trimNUL(b))
	} else {
		buf, drop := stringBuffers.Get()
		defer drop()

		if _, err := buf.ReadFrom(io.LimitReader(&d.r, n)); err != nil {
			return "", d.fail(err)
		}
		if int64(buf.Len()) < n {
			return "", d.fatal(errCodeTruncated, nil)
		}
		s = string(trimNUL(buf.Bytes()))
	}

	if !d.opts.allowInvalidUTF8 && !utf8.ValidString(s) {
		d.Degrade(fmt.Errorf("%w: %q", tdf.ErrInvalidUTF8, s))
	}
	return s, nil
}

func trimNUL(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == 0 {
		return b[:len(b)-1]
	}
	return b
}

// DecodeBlob implements [tdf.ValueDecoder].
func (d *Decoder) DecodeBlob() ([]byte, error) {
	n, err := d.length()
	if err != nil || n == 0 {
		return nil, err
	}

	b, err := io.ReadAll(io.LimitReader(&d.r, n))
	if err != nil {
		return nil, d.fail(err)
	}
	if int64(len(b)) < n {
		return nil, d.fatal(errCodeTruncated, nil)
	}
	return b, nil
}

// DecodeObjectType implements [tdf.ValueDecoder].
func (d *Decoder) DecodeObjectType() (tdf.ObjectType, error) {
	c, err := d.DecodeInt()
	if err != nil {
		return tdf.ObjectType{}, err
	}
	t, err := d.DecodeInt()
	if err != nil {
		return tdf.ObjectType{}, err
	}
	if c != int64(uint16(c)) || t != int64(uint16(t)) {
		d.Degrade(fmt.Errorf("%w: object type %d/%d", tdf.ErrIntegerRange, c, t))
		return tdf.ObjectType{}, nil
	}
	return tdf.ObjectType{Component: uint16(c), Type: uint16(t)}, nil
}

// DecodeObjectId implements [tdf.ValueDecoder].
func (d *Decoder) DecodeObjectId() (tdf.ObjectId, error) {
	ot, err := d.DecodeObjectType()
	if err != nil {
		return tdf.ObjectId{}, err
	}
	id, err := d.DecodeInt()
	if err != nil {
		return tdf.ObjectId{}, err
	}
	return tdf.ObjectId{Type: ot, Id: id}, nil
}

// DecodeTimeValue implements [tdf.ValueDecoder].
func (d *Decoder) DecodeTimeValue() (tdf.TimeValue, error) {
	v, err := d.DecodeInt()
	return tdf.TimeValue(v), err
}

// DecodeRecord implements [tdf.ValueDecoder].
func (d *Decoder) DecodeRecord(r tdf.Record) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer func() { d.depth-- }()
	return d.record(r, false)
}

// DecodeUnion implements [tdf.ValueDecoder].
func (d *Decoder) DecodeUnion(u tdf.UnionRecord) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer func() { d.depth-- }()

	idx, err := d.r.ReadByte()
	if err != nil {
		return d.fail(err)
	}
	s, err := d.opts.registry.SchemaOf(u)
	if err != nil {
		return fmt.Errorf("heat2: %w", err)
	}

	switch {
	case idx == tdf.NoActiveMember:
		u.SetActiveIndex(tdf.NoActiveMember)
	case int(idx) >= s.Len():
		d.Degrade(fmt.Errorf("%w: %d in %s, which has %d members", tdf.ErrInvalidUnionIndex, idx, s.Name(), s.Len()))
		u.SetActiveIndex(tdf.NoActiveMember)
	default:
		u.SetActiveIndex(idx)
	}
	return d.fields(u, s, false)
}

// DecodeListHeader implements [tdf.ValueDecoder].
//
// A list labeled WireStruct is accepted for union, list and map elements,
// since that is how Heat1-compatible encoders write them.
func (d *Decoder) DecodeListHeader(elem tdf.WireType) (int, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, d.fail(err)
	}
	n, err := d.length()
	if err != nil {
		return 0, err
	}

	wire := tdf.WireType(b)
	if accepts(elem, wire) {
		return int(n), nil
	}

	d.Degrade(fmt.Errorf("%w: list of %v, want %v", tdf.ErrWireTypeMismatch, wire, elem))
	for range n {
		if err := d.skip(wire); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

// DecodeMapHeader implements [tdf.ValueDecoder].
func (d *Decoder) DecodeMapHeader(key, value tdf.WireType) (int, error) {
	var b [2]byte
	if err := d.r.readFull(b[:]); err != nil {
		return 0, d.fail(err)
	}
	n, err := d.length()
	if err != nil {
		return 0, err
	}

	k, v := tdf.WireType(b[0]), tdf.WireType(b[1])
	if accepts(key, k) && accepts(value, v) {
		return int(n), nil
	}

	d.Degrade(fmt.Errorf("%w: map of %v to %v, want %v to %v", tdf.ErrWireTypeMismatch, k, v, key, value))
	for range n {
		if err := d.skip(k); err != nil {
			return 0, err
		}
		if err := d.skip(v); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

// accepts returns whether a container element labeled got can be decoded as
// want.
func accepts(want, got tdf.WireType) bool {
	return got == want || (got == tdf.WireStruct && want.Misencodable())
}
