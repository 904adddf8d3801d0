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

import "github.com/blazekit/tdf"

// HeaderSize is the size of a member header: three tag bytes and a wire
// type byte.
const HeaderSize = 4

// Terminator ends a record or union. It occupies the position of the first
// byte of a header.
const Terminator byte = 0x00

// AppendHeader appends a member header to b. Only the low 24 bits of tag are
// written.
func AppendHeader(b []byte, tag tdf.Tag, wire tdf.WireType) []byte {
	return append(b, byte(tag>>16), byte(tag>>8), byte(tag), byte(wire))
}

// ConsumeHeader parses a header from the front of b, returning the number of
// bytes read, or -1 if b is too short.
//
// This is pure framing: it does not interpret a leading zero byte as a
// terminator. Stream decoders check for [Terminator] before reading a full
// header.
func ConsumeHeader(b []byte) (tag tdf.Tag, wire tdf.WireType, n int) {
	if len(b) < HeaderSize {
		return 0, tdf.WireUnknown, -1
	}
	tag = tdf.Tag(b[0])<<16 | tdf.Tag(b[1])<<8 | tdf.Tag(b[2])
	return tag, tdf.WireType(b[3]), HeaderSize
}

// readHeader reads the next header from r. end is true, and nothing past
// the terminator byte is consumed, if the record ends here.
//
// If r is exhausted before the first byte, the error is io.EOF; if it is
// exhausted inside the header, it is io.ErrUnexpectedEOF.
func readHeader(r *reader) (tag tdf.Tag, wire tdf.WireType, end bool, err error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, 0, false, err
	}
	if first == Terminator {
		return 0, 0, true, nil
	}

	var rest [HeaderSize - 1]byte
	if err := r.readFull(rest[:]); err != nil {
		return 0, 0, false, err
	}
	tag = tdf.Tag(first)<<16 | tdf.Tag(rest[0])<<8 | tdf.Tag(rest[1])
	return tag, tdf.WireType(rest[2]), false, nil
}
