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

	"github.com/blazekit/tdf/internal/dbg"
)

// Stringer implementations for records and members. These are for debugging
// and test failure messages; the format is not stable.

// Sprint renders a record as Name{TAG: value, ...}, listing only set
// members in ascending tag order. Unions render as Name#index{TAG: value}.
func Sprint(r Record) string {
	return recordFormatter(r).String()
}

func recordFormatter(r Record) dbg.Formatter {
	return dbg.Formatter(func(s fmt.State) {
		if isNil(r) {
			fmt.Fprint(s, "<nil>")
			return
		}
		schema := r.Schema()
		if schema == nil {
			fmt.Fprintf(s, "%T{?}", r)
			return
		}

		if u, ok := r.(UnionRecord); ok {
			prefix := fmt.Sprintf("%s#%d", schema.Name(), u.ActiveIndex())
			if m, info := Active(u); m != nil {
				dbg.Dict(prefix, info.Tag, m).Format(s, 'v')
			} else {
				dbg.Dict(prefix).Format(s, 'v')
			}
			return
		}

		var kv []any
		for _, info := range schema.Members() {
			if m := r.Member(info.Index); m != nil && m.IsSet() {
				kv = append(kv, info.Tag, m)
			}
		}
		dbg.Dict(schema.Name(), kv...).Format(s, 'v')
	})
}

func formatValue(s fmt.State, v any) {
	switch v := v.(type) {
	case Record:
		recordFormatter(v).Format(s, 'v')
	case string:
		fmt.Fprintf(s, "%q", v)
	case []byte:
		dbg.Hex(v, 32).Format(s, 'v')
	default:
		fmt.Fprintf(s, "%v", v)
	}
}

func (m *scalar[T]) Format(s fmt.State, verb rune) {
	formatValue(s, m.value)
}

func (v Vec[T]) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, "[")
	for i, x := range v {
		if i > 0 {
			fmt.Fprint(s, ", ")
		}
		formatValue(s, x)
	}
	fmt.Fprint(s, "]")
}

func (m OrderedMap[K, V]) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, "{")
	for i, k := range m.keys {
		if i > 0 {
			fmt.Fprint(s, ", ")
		}
		formatValue(s, k)
		fmt.Fprint(s, ": ")
		formatValue(s, m.vals[i])
	}
	fmt.Fprint(s, "}")
}

func (c *Codec[T]) Format(s fmt.State, verb rune) {
	dbg.Dict(
		dbg.Fprintf("%p", c),
		"wire", c.WireType,
		"encode", dbg.Func(c.encode),
		"decode", dbg.Func(c.decode),
	).Format(s, verb)
}

func (mi *MemberInfo) Format(s fmt.State, verb rune) {
	dbg.Dict(
		mi.Name,
		"tag", dbg.Fprintf("%v:%#06x", mi.Tag, uint32(mi.Tag)),
		"kind", mi.Kind,
		"index", mi.Index,
		"unique", mi.Unique,
	).Format(s, verb)
}

func (s *Schema) Format(st fmt.State, verb rune) {
	kv := make([]any, 0, 2*len(s.byTag))
	for _, mi := range s.byTag {
		kv = append(kv, mi.Tag, mi)
	}
	dbg.Dict(s.name, kv...).Format(st, verb)
}
