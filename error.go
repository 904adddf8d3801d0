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
	"errors"
	"fmt"
	"io"

	"github.com/blazekit/tdf/internal/varint"
)

// Sentinel errors. Errors produced by this module and its drivers wrap one of
// these, so callers should test for them with [errors.Is].
var (
	// ErrMalformedVarInt is a varint whose continuation bits run past ten
	// bytes.
	ErrMalformedVarInt = varint.ErrMalformed
	// ErrUnexpectedEOF is a stream that ended in the middle of a field.
	ErrUnexpectedEOF = io.ErrUnexpectedEOF
	// ErrUnsupportedType is a shape with no wire representation.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrUnknownFieldSkipped marks a field that was skipped because its tag is
	// not in the target schema. It is informational, not a failure.
	ErrUnknownFieldSkipped = errors.New("unknown field skipped")
	// ErrInvalidUnionIndex is a union index outside the union's members.
	ErrInvalidUnionIndex = errors.New("invalid union index")

	ErrWireTypeMismatch = errors.New("wire type does not match member")
	ErrIntegerRange     = errors.New("integer out of range for member")
	ErrInvalidUTF8      = errors.New("invalid UTF-8 in string")
	ErrInvalidLength    = errors.New("invalid length prefix")
	ErrRecursionDepth   = errors.New("exceeded maximum recursion depth")
	ErrInvalidTag       = errors.New("invalid tag")
	ErrNilRecord        = errors.New("nil record")
)

// UnsupportedTypeError is returned when a shape cannot be serialized. The
// error is about the type, not the data: the same shape fails with the same
// error every time it is used.
type UnsupportedTypeError struct {
	Shape  string // The offending type, as printed by reflect or a kind name.
	Reason string
}

// Unwrap implements error unwrapping viz [errors.Unwrap].
func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// Error implements [error].
func (e *UnsupportedTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("tdf: unsupported type %s", e.Shape)
	}
	return fmt.Sprintf("tdf: unsupported type %s: %s", e.Shape, e.Reason)
}
