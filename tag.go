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
	"strings"
)

// Tag identifies a member within a record. It is 24 bits wide.
//
// Tags are conventionally derived from up to four characters, each stored as
// six bits (the character minus 0x20), first character in the high bits. See
// [ParseTag] and [Tag.String].
type Tag uint32

// MinTag is the smallest usable tag. A tag whose high byte is zero would
// start its header with a terminator byte.
const MinTag Tag = 1 << 16

// MaxTag is the largest representable tag.
const MaxTag Tag = 1<<24 - 1

const (
	tagChars    = 4
	tagCharBits = 6
	tagCharMask = 1<<tagCharBits - 1
)

// Valid returns whether t is a 24-bit tag with a non-zero high byte.
func (t Tag) Valid() bool {
	return t >= MinTag && t <= MaxTag
}

// ParseTag converts a one to four character name into a tag.
//
// Lowercase letters are folded to uppercase. Every character must be in the
// range 0x20 to 0x5f after folding, and the first may not be a space, so the
// high byte of a parsed tag is never zero.
func ParseTag(name string) (Tag, error) {
	if name == "" || len(name) > tagChars {
		return 0, fmt.Errorf("%w: %q must be 1 to %d characters", ErrInvalidTag, name, tagChars)
	}
	if name[0] == ' ' {
		return 0, fmt.Errorf("%w: %q starts with a space", ErrInvalidTag, name)
	}

	var t Tag
	for i := range tagChars {
		c := byte(' ')
		if i < len(name) {
			c = name[i]
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 0x20 || c > 0x5f {
			return 0, fmt.Errorf("%w: %q has unencodable character %q", ErrInvalidTag, name, c)
		}
		t |= Tag(c-0x20) << (tagCharBits * (tagChars - 1 - i))
	}
	return t, nil
}

// MustParseTag is like [ParseTag], but panics on failure. It is intended for
// package-level schema declarations.
func MustParseTag(name string) Tag {
	t, err := ParseTag(name)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the character form of this tag, with trailing spaces
// trimmed.
func (t Tag) String() string {
	var buf [tagChars]byte
	for i := range buf {
		shift := tagCharBits * (tagChars - 1 - i)
		buf[i] = byte(t>>shift)&tagCharMask + 0x20
	}
	return strings.TrimRight(string(buf[:]), " ")
}
