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

package tdf_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blazekit/tdf"
)

func TestObjectType(t *testing.T) {
	t.Parallel()

	ot := tdf.ObjectType{Component: 0x0004, Type: 0x0001}
	assert.Equal(t, uint32(0x00040001), ot.Uint32())
	assert.Equal(t, ot, tdf.ObjectTypeFromUint32(0x00040001))
	assert.Equal(t, "4/1", ot.String())

	assert.Equal(t, -1, tdf.ObjectType{Component: 1, Type: 0xffff}.Compare(tdf.ObjectType{Component: 2}))
	assert.Equal(t, 1, tdf.ObjectType{Component: 1, Type: 2}.Compare(tdf.ObjectType{Component: 1, Type: 1}))
	assert.Zero(t, ot.Compare(ot))
}

func TestObjectId(t *testing.T) {
	t.Parallel()

	a := tdf.ObjectId{Type: tdf.ObjectType{Component: 1, Type: 2}, Id: 5}
	b := tdf.ObjectId{Type: tdf.ObjectType{Component: 1, Type: 2}, Id: 6}
	c := tdf.ObjectId{Type: tdf.ObjectType{Component: 1, Type: 3}, Id: -9}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(c))
	assert.Equal(t, 1, c.Compare(a))
	assert.Equal(t, "1/2/5", a.String())
}

func TestTimeValue(t *testing.T) {
	t.Parallel()

	tv := tdf.TimeValueOf(1500 * time.Millisecond)
	assert.Equal(t, tdf.TimeValue(1_500_000), tv)
	assert.Equal(t, 1500*time.Millisecond, tv.Duration())
	assert.Equal(t, "1.5s", tv.String())

	// Sub-microsecond precision is dropped.
	assert.Equal(t, tdf.TimeValue(1), tdf.TimeValueOf(1999*time.Nanosecond))

	now := time.Date(2024, 3, 1, 12, 0, 0, 123456000, time.UTC)
	assert.True(t, now.Equal(tdf.TimeValueFromTime(now).Time()))
}
