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

package heat2_test

import (
	"slices"

	"github.com/blazekit/tdf"
	"github.com/blazekit/tdf/heat2"
	"github.com/blazekit/tdf/internal/varint"
)

// Helpers for building streams by hand.

func hdr(tag string, wire tdf.WireType) []byte {
	return heat2.AppendHeader(nil, tdf.MustParseTag(tag), wire)
}

func vint(v int64) []byte {
	return varint.Append(nil, v)
}

func str(s string) []byte {
	return append(append(vint(int64(len(s))+1), s...), 0)
}

func join(parts ...any) []byte {
	var out []byte
	for _, p := range parts {
		switch p := p.(type) {
		case []byte:
			out = append(out, p...)
		case byte:
			out = append(out, p)
		case tdf.WireType:
			out = append(out, byte(p))
		case string:
			out = append(out, p...)
		default:
			panic("join: unexpected part")
		}
	}
	return slices.Clip(out)
}

const end = heat2.Terminator
