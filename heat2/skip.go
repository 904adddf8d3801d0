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
	"github.com/blazekit/tdf"
	"github.com/blazekit/tdf/internal/varint"
)

// skipValue discards one payload of the given wire type from r. depth is the
// number of nested records, unions, lists and maps that may still be entered.
func skipValue(r *reader, wire tdf.WireType, depth int) error {
	switch wire {
	case tdf.WireInt, tdf.WireTimeValue:
		_, err := varint.Skip(r)
		return err

	case tdf.WireString, tdf.WireBlob:
		n, _, err := varint.Read(r)
		if err != nil {
			return err
		}
		if n < 0 {
			return tdf.ErrInvalidLength
		}
		return r.discard(n)

	case tdf.WireFloat:
		return r.discard(4)

	case tdf.WireObjectType:
		return skipVarints(r, 2)

	case tdf.WireObjectId:
		return skipVarints(r, 3)

	case tdf.WireStruct:
		if depth <= 0 {
			return tdf.ErrRecursionDepth
		}
		return skipFields(r, depth-1)

	case tdf.WireUnion:
		if depth <= 0 {
			return tdf.ErrRecursionDepth
		}
		if _, err := r.ReadByte(); err != nil {
			return err
		}
		return skipFields(r, depth-1)

	case tdf.WireList:
		if depth <= 0 {
			return tdf.ErrRecursionDepth
		}
		elem, err := r.ReadByte()
		if err != nil {
			return err
		}
		n, err := count(r)
		if err != nil {
			return err
		}
		for range n {
			if err := skipValue(r, tdf.WireType(elem), depth-1); err != nil {
				return err
			}
		}
		return nil

	case tdf.WireMap:
		if depth <= 0 {
			return tdf.ErrRecursionDepth
		}
		var kv [2]byte
		if err := r.readFull(kv[:]); err != nil {
			return err
		}
		n, err := count(r)
		if err != nil {
			return err
		}
		for range n {
			if err := skipValue(r, tdf.WireType(kv[0]), depth-1); err != nil {
				return err
			}
			if err := skipValue(r, tdf.WireType(kv[1]), depth-1); err != nil {
				return err
			}
		}
		return nil

	default:
		// Variable payloads carry no length, and anything else is not a
		// wire type at all.
		return ErrUnskippable
	}
}

// skipFields discards headered members up to and including a terminator.
func skipFields(r *reader, depth int) error {
	for {
		_, wire, end, err := readHeader(r)
		if err != nil {
			return err
		}
		if end {
			return nil
		}
		if err := skipValue(r, wire, depth); err != nil {
			return err
		}
	}
}

func skipVarints(r *reader, n int) error {
	for range n {
		if _, err := varint.Skip(r); err != nil {
			return err
		}
	}
	return nil
}

func count(r *reader) (int64, error) {
	n, _, err := varint.Read(r)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, tdf.ErrInvalidLength
	}
	return n, nil
}
