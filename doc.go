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

// Package tdf is the data model of the Tagged Data Format: records whose
// members are identified by 24-bit tags, and the machinery wire drivers use
// to walk them.
//
// A record is a struct of member fields together with a [Schema]:
//
//	type Player struct {
//		Name  tdf.String
//		Level tdf.Int32
//		Items tdf.List[string]
//	}
//
//	var playerSchema = tdf.MustSchema("Player",
//		tdf.Field("Name", "NAME", tdf.KindString),
//		tdf.Field("Level", "LVL", tdf.KindInt32),
//		tdf.Field("Items", "ITEM", tdf.KindList),
//	)
//
//	func (p *Player) Schema() *tdf.Schema { return playerSchema }
//	func (p *Player) Member(i int) tdf.Member {
//		switch i {
//		case 0:
//			return &p.Name
//		case 1:
//			return &p.Level
//		case 2:
//			return &p.Items
//		}
//		return nil
//	}
//
// Drivers implement [Visitor]; each member dispatches to the Visit method for
// its kind. Values nested in containers (list elements, map entries, nested
// records) go through a [Codec] obtained from [CodecFor], which is built once
// per Go type and cached for the life of the process.
//
// The binary encoding lives in package heat2.
package tdf
