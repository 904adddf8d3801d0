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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazekit/tdf"
	"github.com/blazekit/tdf/heat2"
	"github.com/blazekit/tdf/internal/tdftest"
	"github.com/blazekit/tdf/internal/varint"
)

func TestEncodeExample(t *testing.T) {
	t.Parallel()

	b := heat2.AppendHeader(nil, 0x000001, tdf.WireInt)
	b = varint.Append(b, -300)
	b = append(b, heat2.Terminator)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x01, 0xec, 0x04, 0x00}, b)

	// The same member at a usable tag, through the encoder.
	p := new(tdftest.Player)
	p.Level.Set(-300)
	b, err := heat2.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, join(hdr("LVL", tdf.WireInt), []byte{0xec, 0x04}, end), b)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(p *tdftest.Player)
		want  []byte
	}{
		{
			name:  "empty",
			build: func(*tdftest.Player) {},
			want:  []byte{end},
		},
		{
			name:  "string",
			build: func(p *tdftest.Player) { p.Name.Set("hi") },
			want:  join(hdr("NAME", tdf.WireString), byte(0x03), "hi", end, end),
		},
		{
			name:  "empty-string",
			build: func(p *tdftest.Player) { p.Name.Set("") },
			want:  join(hdr("NAME", tdf.WireString), byte(0x01), end, end),
		},
		{
			name:  "bool",
			build: func(p *tdftest.Player) { p.Alive.Set(true) },
			want:  join(hdr("LIVE", tdf.WireInt), byte(0x01), end),
		},
		{
			name:  "uint64",
			build: func(p *tdftest.Player) { p.Score.Set(1 << 63) },
			want:  join(hdr("SCOR", tdf.WireInt), byte(0x40), end),
		},
		{
			name:  "float",
			build: func(p *tdftest.Player) { p.Speed.Set(1.5) },
			want:  join(hdr("SPED", tdf.WireFloat), []byte{0x3f, 0xc0, 0x00, 0x00}, end),
		},
		{
			name:  "blob",
			build: func(p *tdftest.Player) { p.Avatar.Set([]byte{0xde, 0xad}) },
			want:  join(hdr("AVTR", tdf.WireBlob), []byte{0x02, 0xde, 0xad}, end),
		},
		{
			name: "object-id",
			build: func(p *tdftest.Player) {
				p.Owner.Set(tdf.ObjectId{Type: tdf.ObjectType{Component: 4, Type: 1}, Id: 300})
			},
			want: join(hdr("OWNR", tdf.WireObjectId), []byte{0x04, 0x01, 0xac, 0x04}, end),
		},
		{
			name:  "time-value",
			build: func(p *tdftest.Player) { p.Seen.Set(-1) },
			want:  join(hdr("SEEN", tdf.WireTimeValue), byte(0x41), end),
		},
		{
			name:  "enum",
			build: func(p *tdftest.Player) { p.Class.Set(tdftest.ClassRogue) },
			want:  join(hdr("CLAS", tdf.WireInt), byte(0x03), end),
		},
		{
			name:  "list",
			build: func(p *tdftest.Player) { p.Items.Append("a", "") },
			want:  join(hdr("ITEM", tdf.WireList), tdf.WireString, byte(0x02), str("a"), str(""), end),
		},
		{
			name: "map",
			build: func(p *tdftest.Player) {
				p.Stats.Put("str", 18)
				p.Stats.Put("dex", -2)
			},
			want: join(hdr("STAT", tdf.WireMap), tdf.WireString, tdf.WireInt, byte(0x02),
				str("str"), byte(0x12), str("dex"), byte(0x42), end),
		},
		{
			name:  "struct",
			build: func(p *tdftest.Player) { p.Home.Mutable().Zip.Set(7) },
			want:  join(hdr("ADDR", tdf.WireStruct), hdr("ZIP", tdf.WireInt), byte(0x07), end, end),
		},
		{
			name:  "empty-struct",
			build: func(p *tdftest.Player) { p.Home.Mutable() },
			want:  join(hdr("ADDR", tdf.WireStruct), end, end),
		},
		{
			name: "union",
			build: func(p *tdftest.Player) {
				g := p.Gear.Mutable()
				g.SetActiveIndex(0)
				g.Weapon.Set("bow")
			},
			want: join(hdr("GEAR", tdf.WireUnion), byte(0x00), hdr("WEAP", tdf.WireString), str("bow"), end, end),
		},
		{
			name:  "inactive-union",
			build: func(p *tdftest.Player) { p.Gear.Mutable() },
			want:  join(hdr("GEAR", tdf.WireUnion), tdf.NoActiveMember, end, end),
		},
		{
			name: "order",
			build: func(p *tdftest.Player) {
				p.Name.Set("x")
				p.Level.Set(1)
				p.Home.Mutable()
			},
			want: join(
				hdr("ADDR", tdf.WireStruct), end,
				hdr("LVL", tdf.WireInt), byte(0x01),
				hdr("NAME", tdf.WireString), str("x"),
				end,
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := new(tdftest.Player)
			tt.build(p)

			b, err := heat2.Marshal(p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b, "%x", b)

			var buf bytes.Buffer
			require.NoError(t, heat2.NewEncoder(&buf).Encode(p))
			assert.Equal(t, tt.want, buf.Bytes())
		})
	}
}

func TestHeat1Compat(t *testing.T) {
	t.Parallel()

	p := new(tdftest.Player)
	slot := new(tdftest.Loadout)
	slot.SetActiveIndex(1)
	slot.Slot.Set(3)
	p.Loadouts.Append(slot, nil)

	body := func(elem tdf.WireType) []byte {
		return join(
			hdr("LOUT", tdf.WireList), elem, byte(0x02),
			byte(0x01), hdr("SLOT", tdf.WireInt), byte(0x03), end,
			tdf.NoActiveMember, end,
			end,
		)
	}

	b, err := heat2.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, body(tdf.WireStruct), b, "%x", b)

	b, err = heat2.Marshal(p, heat2.WithHeat1Compat(false))
	require.NoError(t, err)
	assert.Equal(t, body(tdf.WireUnion), b, "%x", b)

	// Either label decodes.
	for _, label := range []tdf.WireType{tdf.WireStruct, tdf.WireUnion} {
		got := new(tdftest.Player)
		valid, err := heat2.Unmarshal(body(label), got)
		require.NoError(t, err)
		assert.True(t, valid)
		require.Equal(t, 2, got.Loadouts.Len())
		assert.Equal(t, `Player{LOUT: [Loadout#1{SLOT: 3}, Loadout#255{}]}`, tdf.Sprint(got))
	}
}

func TestHeat1NestedLists(t *testing.T) {
	t.Parallel()

	p := new(tdftest.Player)
	p.Grid.Append(tdf.Vec[int32]{1, -1})

	b, err := heat2.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, join(
		hdr("GRID", tdf.WireList), tdf.WireStruct, byte(0x01),
		tdf.WireInt, byte(0x02), byte(0x01), byte(0x41),
		end,
	), b)

	got := new(tdftest.Player)
	valid, err := heat2.Unmarshal(b, got)
	require.NoError(t, err)
	assert.True(t, valid)
	tdftest.Equal(t, p, got)
}

func TestEncodeVariable(t *testing.T) {
	t.Parallel()

	s := new(tdftest.Script)
	s.Name.Set("x")
	s.Vars.Set(new(tdftest.Address))

	var buf bytes.Buffer
	err := heat2.NewEncoder(&buf).Encode(s)
	require.ErrorIs(t, err, tdf.ErrUnsupportedType)
	assert.Zero(t, buf.Len(), "nothing should be written on error")

	// Unset, it is simply not written.
	s.Vars.Reset()
	require.NoError(t, heat2.NewEncoder(&buf).Encode(s))
	assert.Equal(t, join(hdr("NAME", tdf.WireString), str("x"), end), buf.Bytes())
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()

	_, err := heat2.Marshal(nil)
	require.ErrorIs(t, err, tdf.ErrNilRecord)
	_, err = heat2.Marshal((*tdftest.Player)(nil))
	require.ErrorIs(t, err, tdf.ErrNilRecord)

	p := new(tdftest.Player)
	p.Gear.Mutable().SetActiveIndex(9)
	_, err = heat2.Marshal(p)
	require.ErrorIs(t, err, tdf.ErrInvalidUnionIndex)

	_, err = heat2.Marshal(tdftest.NewTree(heat2.DefaultMaxDepth + 1))
	require.ErrorIs(t, err, tdf.ErrRecursionDepth)
	_, err = heat2.Marshal(tdftest.NewTree(heat2.DefaultMaxDepth))
	require.NoError(t, err)

	_, err = heat2.Marshal(tdftest.NewTree(3), heat2.WithMaxDepth(2))
	require.ErrorIs(t, err, tdf.ErrRecursionDepth)
}

func TestEncodeRegistry(t *testing.T) {
	t.Parallel()

	broken := errors.New("no schema today")
	reg := tdf.RegistryFunc(func(tdf.Record) (*tdf.Schema, error) { return nil, broken })

	_, err := heat2.Marshal(new(tdftest.Player), heat2.WithRegistry(reg))
	require.ErrorIs(t, err, broken)
}

func TestAppendRecord(t *testing.T) {
	t.Parallel()

	r := new(tdftest.Player)
	r.Level.Set(1)

	b, err := heat2.AppendRecord([]byte("prefix"), r)
	require.NoError(t, err)
	assert.Equal(t, join("prefix", hdr("LVL", tdf.WireInt), byte(0x01), end), b)

	b, err = heat2.AppendRecord([]byte("prefix"), nil)
	require.Error(t, err)
	assert.Equal(t, []byte("prefix"), b)
}
