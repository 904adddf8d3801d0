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
	"errors"
	"fmt"

	"github.com/blazekit/tdf"
)

const (
	errCodeOk errCode = iota

	// Fatal: the rest of the stream cannot be located.
	errCodeTruncated
	errCodeVarInt
	errCodeLength
	errCodeUnskippable
	errCodeDepth

	// Recoverable: the value is dropped and decoding continues.
	errCodeMismatch
	errCodeRange
	errCodeUnionIndex
	errCodeUTF8

	errCodeOther
)

type errCode int

// ErrUnskippable is a member whose wire type has no known length, such as
// [tdf.WireVariable] or a byte that is not a wire type at all. Decoding
// cannot continue past one.
var ErrUnskippable = errors.New("cannot skip wire type")

var errs = [...]error{
	errCodeOk:          nil,
	errCodeTruncated:   tdf.ErrUnexpectedEOF,
	errCodeVarInt:      tdf.ErrMalformedVarInt,
	errCodeLength:      tdf.ErrInvalidLength,
	errCodeUnskippable: ErrUnskippable,
	errCodeDepth:       tdf.ErrRecursionDepth,
	errCodeMismatch:    tdf.ErrWireTypeMismatch,
	errCodeRange:       tdf.ErrIntegerRange,
	errCodeUnionIndex:  tdf.ErrInvalidUnionIndex,
	errCodeUTF8:        tdf.ErrInvalidUTF8,
	errCodeOther:       nil,
}

// fatal returns whether decoding stops after an error with this code.
func (c errCode) fatal() bool {
	return c >= errCodeTruncated && c <= errCodeDepth
}

// codeOf finds the code for an error reported through
// [tdf.ValueDecoder.Degrade].
func codeOf(err error) errCode {
	for code, sentinel := range errs {
		if sentinel != nil && errors.Is(err, sentinel) {
			return errCode(code)
		}
	}
	return errCodeOther
}

// DecodeError is a problem found while decoding. [Decoder.Err] joins all of
// the problems found in a stream.
type DecodeError struct {
	code   errCode
	offset int64
	tag    tdf.Tag
	wire   tdf.WireType
	cause  error
}

// Offset returns the offset in the stream at which the problem was found.
func (e *DecodeError) Offset() int64 {
	return e.offset
}

// Tag returns the tag of the member being decoded, or zero if the problem is
// not specific to a member.
func (e *DecodeError) Tag() tdf.Tag {
	return e.tag
}

// Fatal returns whether this problem stopped decoding.
func (e *DecodeError) Fatal() bool {
	return e.code.fatal()
}

// Unwrap implements error unwrapping viz [errors.Unwrap].
func (e *DecodeError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return errs[e.code]
}

// Error implements [error].
func (e *DecodeError) Error() string {
	if e.tag == 0 {
		return fmt.Sprintf("heat2: decode error at offset %d/%#x: %v", e.offset, e.offset, e.Unwrap())
	}
	return fmt.Sprintf("heat2: decode error at offset %d/%#x in %v (%v): %v",
		e.offset, e.offset, e.tag, e.wire, e.Unwrap())
}

// UnknownField is a member that was skipped because its tag is not in the
// schema being decoded into. Skipping is not a failure; see
// [Decoder.Skipped].
type UnknownField struct {
	Record   string // Name of the schema the field was found in.
	Tag      tdf.Tag
	WireType tdf.WireType
	Offset   int64 // Offset of the field's header.
}

// Unwrap returns [tdf.ErrUnknownFieldSkipped].
func (u *UnknownField) Unwrap() error {
	return tdf.ErrUnknownFieldSkipped
}

// Error implements [error].
func (u *UnknownField) Error() string {
	return fmt.Sprintf("heat2: skipped unknown field %s.%v (%#06x, %v) at offset %d",
		u.Record, u.Tag, uint32(u.Tag), u.WireType, u.Offset)
}
