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

// Package tdftest contains sample records and helpers for testing code that
// handles TDF records.
package tdftest

import (
	"fmt"

	"github.com/blazekit/tdf"
)

// Class is an enum member type.
type Class int32

const (
	ClassNone Class = iota
	ClassWarrior
	ClassMage
	ClassRogue
)

// Address is a small nested record.
type Address struct {
	Street tdf.String
	Zip    tdf.UInt16
}

var addressSchema = tdf.MustSchema("Address",
	tdf.Field("Street", "STRT", tdf.KindString),
	tdf.Field("Zip", "ZIP", tdf.KindUInt16),
)

func (a *Address) Schema() *tdf.Schema { return addressSchema }
func (a *Address) Member(i int) tdf.Member {
	switch i {
	case 0:
		return &a.Street
	case 1:
		return &a.Zip
	}
	return nil
}

// Loadout is a union: at most one of its members is active.
type Loadout struct {
	tdf.UnionState

	Weapon tdf.String
	Slot   tdf.Int32
	Home   tdf.Struct[*Address]
}

var loadoutSchema = tdf.MustSchema("Loadout",
	tdf.Field("Weapon", "WEAP", tdf.KindString),
	tdf.Field("Slot", "SLOT", tdf.KindInt32),
	tdf.Field("Home", "HOME", tdf.KindStruct),
)

func (l *Loadout) Schema() *tdf.Schema { return loadoutSchema }
func (l *Loadout) Member(i int) tdf.Member {
	switch i {
	case 0:
		return &l.Weapon
	case 1:
		return &l.Slot
	case 2:
		return &l.Home
	}
	return nil
}

// Player exercises every member kind except Variable.
type Player struct {
	Name     tdf.String
	Level    tdf.Int32
	Alive    tdf.Bool
	Rank     tdf.UInt8
	Speed    tdf.Float
	Avatar   tdf.Blob
	Kind     tdf.ObjectTypeField
	Owner    tdf.ObjectIdField
	Seen     tdf.TimeValueField
	Class    tdf.Enum[Class]
	Items    tdf.List[string]
	Stats    tdf.Map[string, int32]
	Home     tdf.Struct[*Address]
	Gear     tdf.Union[*Loadout]
	Loadouts tdf.List[*Loadout]
	Grid     tdf.List[tdf.Vec[int32]]
	Score    tdf.UInt64
	Delta    tdf.Int64
	Flags    tdf.Map[string, bool]
}

var playerSchema = tdf.MustSchema("Player",
	tdf.Field("Name", "NAME", tdf.KindString),
	tdf.Field("Level", "LVL", tdf.KindInt32),
	tdf.Field("Alive", "LIVE", tdf.KindBool),
	tdf.Field("Rank", "RANK", tdf.KindUInt8),
	tdf.Field("Speed", "SPED", tdf.KindFloat),
	tdf.Field("Avatar", "AVTR", tdf.KindBlob),
	tdf.Field("Kind", "KIND", tdf.KindObjectType),
	tdf.Field("Owner", "OWNR", tdf.KindObjectId),
	tdf.Field("Seen", "SEEN", tdf.KindTimeValue),
	tdf.Field("Class", "CLAS", tdf.KindEnum),
	tdf.Field("Items", "ITEM", tdf.KindList),
	tdf.Field("Stats", "STAT", tdf.KindMap),
	tdf.Field("Home", "ADDR", tdf.KindStruct),
	tdf.Field("Gear", "GEAR", tdf.KindUnion),
	tdf.Field("Loadouts", "LOUT", tdf.KindList),
	tdf.Field("Grid", "GRID", tdf.KindList),
	tdf.Field("Score", "SCOR", tdf.KindUInt64),
	tdf.Field("Delta", "DLTA", tdf.KindInt64),
	tdf.Field("Flags", "FLAG", tdf.KindMap),
)

func (p *Player) Schema() *tdf.Schema { return playerSchema }
func (p *Player) Member(i int) tdf.Member {
	switch i {
	case 0:
		return &p.Name
	case 1:
		return &p.Level
	case 2:
		return &p.Alive
	case 3:
		return &p.Rank
	case 4:
		return &p.Speed
	case 5:
		return &p.Avatar
	case 6:
		return &p.Kind
	case 7:
		return &p.Owner
	case 8:
		return &p.Seen
	case 9:
		return &p.Class
	case 10:
		return &p.Items
	case 11:
		return &p.Stats
	case 12:
		return &p.Home
	case 13:
		return &p.Gear
	case 14:
		return &p.Loadouts
	case 15:
		return &p.Grid
	case 16:
		return &p.Score
	case 17:
		return &p.Delta
	case 18:
		return &p.Flags
	}
	return nil
}

// PlayerV1 is an older revision of [Player] that knows only a few of its
// members.
type PlayerV1 struct {
	Name  tdf.String
	Level tdf.Int32
	Rank  tdf.UInt8
}

var playerV1Schema = tdf.MustSchema("Player",
	tdf.Field("Name", "NAME", tdf.KindString),
	tdf.Field("Level", "LVL", tdf.KindInt32),
	tdf.Field("Rank", "RANK", tdf.KindUInt8),
)

func (p *PlayerV1) Schema() *tdf.Schema { return playerV1Schema }
func (p *PlayerV1) Member(i int) tdf.Member {
	switch i {
	case 0:
		return &p.Name
	case 1:
		return &p.Level
	case 2:
		return &p.Rank
	}
	return nil
}

// Tree is a recursive record, for nesting limits.
type Tree struct {
	Value tdf.Int32
	Child tdf.Struct[*Tree]
}

var treeSchema = tdf.MustSchema("Tree",
	tdf.Field("Value", "VAL", tdf.KindInt32),
	tdf.Field("Child", "KID", tdf.KindStruct),
)

func (t *Tree) Schema() *tdf.Schema { return treeSchema }
func (t *Tree) Member(i int) tdf.Member {
	switch i {
	case 0:
		return &t.Value
	case 1:
		return &t.Child
	}
	return nil
}

// NewTree returns a chain of depth nested trees, valued 1 through depth.
func NewTree(depth int) *Tree {
	root := new(Tree)
	t := root
	for i := 1; i <= depth; i++ {
		t.Value.Set(int32(i))
		if i < depth {
			t = t.Child.Mutable()
		}
	}
	return root
}

// Script holds a Variable member, which has no wire representation.
type Script struct {
	Name tdf.String
	Vars tdf.Variable
}

var scriptSchema = tdf.MustSchema("Script",
	tdf.Field("Name", "NAME", tdf.KindString),
	tdf.Field("Vars", "VARS", tdf.KindVariable),
)

func (s *Script) Schema() *tdf.Schema { return scriptSchema }
func (s *Script) Member(i int) tdf.Member {
	switch i {
	case 0:
		return &s.Name
	case 1:
		return &s.Vars
	}
	return nil
}

// Types are constructors for the sample records, by name.
var Types = map[string]func() tdf.Record{
	"Address":  func() tdf.Record { return new(Address) },
	"Loadout":  func() tdf.Record { return new(Loadout) },
	"Player":   func() tdf.Record { return new(Player) },
	"PlayerV1": func() tdf.Record { return new(PlayerV1) },
	"Tree":     func() tdf.Record { return new(Tree) },
	"Script":   func() tdf.Record { return new(Script) },
}

// New returns a new empty record of the named sample type.
func New(name string) (tdf.Record, error) {
	f, ok := Types[name]
	if !ok {
		return nil, fmt.Errorf("tdftest: no sample record named %q", name)
	}
	return f(), nil
}

// FullPlayer returns a Player with every member set.
func FullPlayer() *Player {
	p := new(Player)
	p.Name.Set("Ash")
	p.Level.Set(-300)
	p.Alive.Set(true)
	p.Rank.Set(200)
	p.Speed.Set(1.5)
	p.Avatar.Set([]byte{0xde, 0xad, 0xbe, 0xef})
	p.Kind.Set(tdf.ObjectType{Component: 4, Type: 1})
	p.Owner.Set(tdf.ObjectId{Type: tdf.ObjectType{Component: 4, Type: 1}, Id: 1 << 40})
	p.Seen.Set(tdf.TimeValue(1_700_000_000_000_000))
	p.Class.Set(ClassMage)
	p.Items.Append("sword", "", "shield")
	p.Stats.Put("str", 18)
	p.Stats.Put("dex", -2)

	home := p.Home.Mutable()
	home.Street.Set("Route 1")
	home.Zip.Set(65535)

	gear := p.Gear.Mutable()
	gear.SetActiveIndex(0)
	gear.Weapon.Set("bow")

	slot := new(Loadout)
	slot.SetActiveIndex(1)
	slot.Slot.Set(3)
	p.Loadouts.Append(slot, new(Loadout))

	p.Grid.Append(tdf.Vec[int32]{1, 2}, nil, tdf.Vec[int32]{-64})
	p.Score.Set(1 << 63)
	p.Delta.Set(-1)
	p.Flags.Put("hardcore", true)
	p.Flags.Put("muted", false)
	return p
}
