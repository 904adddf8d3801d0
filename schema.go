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
	"slices"
)

// MemberInfo describes one member of a record.
type MemberInfo struct {
	Name string
	Tag  Tag
	Kind Kind

	// Index is the position of the member in declaration order, which is what
	// [Record.Member] is called with. Set by [NewSchema].
	Index int
	// Unique is false if another member of the same record shares this tag.
	// Set by [NewSchema].
	Unique bool
}

// Field is a convenience constructor for a [MemberInfo] with a character
// tag. It panics if tag is not a valid tag name.
func Field(name, tag string, kind Kind) MemberInfo {
	return MemberInfo{Name: name, Tag: MustParseTag(tag), Kind: kind}
}

// WireType returns the wire type of this member's kind.
func (mi *MemberInfo) WireType() WireType {
	w, _ := mi.Kind.WireType() // Validated by NewSchema.
	return w
}

// Schema is the read-only description of a record type: its members, their
// tags and kinds.
//
// A Schema is immutable once constructed and may be shared between
// goroutines.
type Schema struct {
	name    string
	byTag   []*MemberInfo // Ascending tag, then declaration order.
	byIndex []MemberInfo
}

// NewSchema builds a schema from member descriptions given in declaration
// order.
//
// Tags must be valid 24-bit tags and kinds must have a wire type. Tags may
// repeat; repeated tags are matched to members in declaration order when
// decoding.
func NewSchema(name string, members ...MemberInfo) (*Schema, error) {
	s := &Schema{
		name:    name,
		byIndex: slices.Clone(members),
		byTag:   make([]*MemberInfo, len(members)),
	}

	counts := make(map[Tag]int, len(members))
	for i := range s.byIndex {
		mi := &s.byIndex[i]
		if !mi.Tag.Valid() {
			return nil, fmt.Errorf("%w: %s.%s has tag %#x", ErrInvalidTag, name, mi.Name, uint32(mi.Tag))
		}
		if _, err := mi.Kind.WireType(); err != nil {
			return nil, fmt.Errorf("tdf: %s.%s: %w", name, mi.Name, err)
		}
		mi.Index = i
		counts[mi.Tag]++
		s.byTag[i] = mi
	}
	for _, mi := range s.byTag {
		mi.Unique = counts[mi.Tag] == 1
	}

	slices.SortStableFunc(s.byTag, func(a, b *MemberInfo) int {
		return int(a.Tag) - int(b.Tag)
	})
	return s, nil
}

// MustSchema is like [NewSchema], but panics on failure.
func MustSchema(name string, members ...MemberInfo) *Schema {
	s, err := NewSchema(name, members...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the record type's name.
func (s *Schema) Name() string { return s.name }

// Len returns the number of members.
func (s *Schema) Len() int { return len(s.byIndex) }

// Members returns the members in ascending tag order, which is the order they
// are encoded in. The returned slice must not be modified.
func (s *Schema) Members() []*MemberInfo { return s.byTag }

// Member returns the i-th member in declaration order.
func (s *Schema) Member(i int) *MemberInfo { return &s.byIndex[i] }

// Lookup returns the member for the given tag, or nil if there is none.
//
// occurrence selects among members that share a tag: 0 is the first declared,
// 1 the second, and so on.
func (s *Schema) Lookup(tag Tag, occurrence int) *MemberInfo {
	i, ok := slices.BinarySearchFunc(s.byTag, tag, func(mi *MemberInfo, t Tag) int {
		return int(mi.Tag) - int(t)
	})
	if !ok {
		return nil
	}
	i += occurrence
	if occurrence < 0 || i >= len(s.byTag) || s.byTag[i].Tag != tag {
		return nil
	}
	return s.byTag[i]
}
