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

	"github.com/stretchr/testify/assert"

	"github.com/blazekit/tdf"
	"github.com/blazekit/tdf/internal/tdftest"
)

func TestSprint(t *testing.T) {
	t.Parallel()

	p := new(tdftest.Player)
	assert.Equal(t, "Player{}", tdf.Sprint(p))

	p.Name.Set("Ash")
	p.Level.Set(3)
	p.Home.Mutable().Street.Set("Route 1")
	assert.Equal(t, `Player{ADDR: Address{STRT: "Route 1"}, LVL: 3, NAME: "Ash"}`, tdf.Sprint(p))

	p = new(tdftest.Player)
	p.Items.Append("a", "b")
	p.Stats.Put("str", 18)
	p.Avatar.Set([]byte{0xde, 0xad})
	assert.Equal(t, `Player{AVTR: de ad, ITEM: ["a", "b"], STAT: {"str": 18}}`, tdf.Sprint(p))

	assert.Equal(t, "<nil>", tdf.Sprint(nil))
	assert.Equal(t, "<nil>", tdf.Sprint((*tdftest.Player)(nil)))
}

func TestSprintUnion(t *testing.T) {
	t.Parallel()

	u := new(tdftest.Loadout)
	assert.Equal(t, "Loadout#255{}", tdf.Sprint(u))

	u.SetActiveIndex(0)
	u.Weapon.Set("bow")
	u.Slot.Set(3) // Inactive, so not printed.
	assert.Equal(t, `Loadout#0{WEAP: "bow"}`, tdf.Sprint(u))
}

func TestUnionState(t *testing.T) {
	t.Parallel()

	u := new(tdftest.Loadout)
	assert.Equal(t, tdf.NoActiveMember, u.ActiveIndex())
	m, info := tdf.Active(u)
	assert.Nil(t, m)
	assert.Nil(t, info)

	u.SetActiveIndex(2)
	m, info = tdf.Active(u)
	assert.Equal(t, "Home", info.Name)
	assert.Same(t, &u.Home, m)

	u.SetActiveIndex(7)
	m, _ = tdf.Active(u)
	assert.Nil(t, m)
}
