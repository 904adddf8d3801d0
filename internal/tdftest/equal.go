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

package tdftest

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blazekit/tdf"
)

// Equal validates that two records have the same observable value: the same
// schema, the same set of set members, and equal values in each.
func Equal(t testing.TB, expect, got tdf.Record) {
	t.Helper()
	e := &equal{TB: t}

	panicked := true
	defer func() {
		if panicked {
			t.Errorf("panicked at %s", e.formatPath())
		}
	}()

	e.record(expect, got)
	panicked = false
}

type equal struct {
	testing.TB
	path []any
}

func (e *equal) record(a, b tdf.Record) {
	e.Helper()

	switch {
	case a == nil && b == nil:
		return
	case a == nil || b == nil:
		e.fail("expected %s, got %s", tdf.Sprint(a), tdf.Sprint(b))
		return
	}

	sa, sb := a.Schema(), b.Schema()
	if sa != sb {
		e.fail("expected schema %s, got %s", sa.Name(), sb.Name())
		return
	}

	if ua, ok := a.(tdf.UnionRecord); ok {
		ub := b.(tdf.UnionRecord) //nolint:errcheck // Same schema, same type.
		if ua.ActiveIndex() != ub.ActiveIndex() {
			e.fail("expected active index %d, got %d", ua.ActiveIndex(), ub.ActiveIndex())
			return
		}
		ma, info := tdf.Active(ua)
		if info == nil {
			return
		}
		mb, _ := tdf.Active(ub)
		e.path = append(e.path, info.Tag)
		e.member(ma, mb)
		e.path = e.path[:len(e.path)-1]
		return
	}

	for _, info := range sa.Members() {
		e.path = append(e.path, info.Tag)
		e.member(a.Member(info.Index), b.Member(info.Index))
		e.path = e.path[:len(e.path)-1]
	}
}

func (e *equal) member(a, b tdf.Member) {
	e.Helper()

	if a.IsSet() != b.IsSet() {
		e.fail("unequal IsSet: want %v, got %v", a.IsSet(), b.IsSet())
		return
	}
	if !a.IsSet() {
		return
	}

	switch a := a.(type) {
	case tdf.StructMember:
		e.record(a.Record(), b.(tdf.StructMember).Record()) //nolint:errcheck
	case tdf.UnionMember:
		e.record(a.Union(), b.(tdf.UnionMember).Union()) //nolint:errcheck
	case tdf.ListMember, tdf.MapMember:
		// Nil and empty lists are the same value on the wire.
		if want, got := fmt.Sprint(a), fmt.Sprint(b); want != got {
			e.fail("expected %s, got %s", want, got)
		}
	case *tdf.Blob:
		if want, got := a.Get(), b.(*tdf.Blob).Get(); !bytes.Equal(want, got) { //nolint:errcheck
			e.fail("expected %x, got %x", want, got)
		}
	default:
		if !assert.ObjectsAreEqual(a, b) {
			e.fail("expected %v, got %v (%T)", a, b, b)
		}
	}
}

func (e *equal) formatPath() string {
	var buf strings.Builder
	for i, p := range e.path {
		if i > 0 {
			buf.WriteByte('.')
		}
		fmt.Fprint(&buf, p)
	}
	return buf.String()
}

func (e *equal) fail(format string, args ...any) {
	e.Helper()
	e.Errorf("%s: %s", e.formatPath(), fmt.Sprintf(format, args...))
}
