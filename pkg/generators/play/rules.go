// Zaparoo Configgen
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Configgen.
//
// Zaparoo Configgen is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Configgen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Configgen.  If not, see <http://www.gnu.org/licenses/>.

package play

// MutationOp is the kind of change a game rule makes to a mapping.
type MutationOp int

const (
	// OpSet binds an action to a base key, adding the action if needed.
	OpSet MutationOp = iota
	// OpRemove unbinds an action.
	OpRemove
)

func (op MutationOp) String() string {
	switch op {
	case OpSet:
		return "set"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Mutation is a single change to an ActionMapping. Key is ignored for
// OpRemove.
type Mutation struct {
	Action LogicalAction
	Key    BaseKey
	Op     MutationOp
}

func set(action LogicalAction, key BaseKey) Mutation {
	return Mutation{Op: OpSet, Action: action, Key: key}
}

func remove(action LogicalAction) Mutation {
	return Mutation{Op: OpRemove, Action: action}
}

// GameRule adjusts the base mapping for titles whose control scheme
// differs from the default layout. A rule matches when any of its
// substrings appears in the ROM path.
type GameRule struct {
	Name       string
	Substrings []string
	Mutations  []Mutation
}

// Apply returns m with the rule's mutations applied in order.
func (r GameRule) Apply(m ActionMapping) ActionMapping {
	for _, mut := range r.Mutations {
		switch mut.Op {
		case OpSet:
			m = m.Set(mut.Action, mut.Key)
		case OpRemove:
			m = m.Remove(mut.Action)
		}
	}
	return m
}

// Matches reports whether the rule applies to a ROM path.
func (r GameRule) Matches(rom string) bool {
	return containsAny(rom, r.Substrings)
}

// gameRules returns the game rules in match order. Only the first
// matching rule is applied.
func gameRules() []GameRule {
	return []GameRule{
		{
			Name:       "prdgp03",
			Substrings: []string{"prdgp03"},
			Mutations: []Mutation{
				set(ActionR1, KeyY),
				remove(ActionSquare),
			},
		},
		{
			Name:       "fghtjam",
			Substrings: []string{"fghtjam"},
			Mutations: []Mutation{
				set(ActionTriangle, KeyL2),
				set(ActionSquare, KeyX),
				set(ActionR3, KeyY),
			},
		},
		{
			Name:       "superdbz",
			Substrings: []string{"superdbz"},
			Mutations: []Mutation{
				set(ActionSquare, KeyX),
				set(ActionR3, KeyY),
			},
		},
		{
			Name:       "tekken",
			Substrings: []string{"tekken"},
			Mutations: []Mutation{
				set(ActionSquare, KeyX),
				set(ActionR3, KeyY),
			},
		},
		{
			Name:       "pedals",
			Substrings: []string{"acedriv3", "wangan"},
			Mutations: []Mutation{
				set(ActionAnalogLeftY, KeyJoystick1UpPedal),
				remove(ActionL1),
				remove(ActionR1),
			},
		},
	}
}

// MatchRule returns the first game rule matching a ROM path.
func MatchRule(rom string) (GameRule, bool) {
	for _, r := range gameRules() {
		if r.Matches(rom) {
			return r, true
		}
	}
	return GameRule{}, false
}
