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

import (
	"strings"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
	"github.com/rs/zerolog/log"
)

// LogicalAction is a Play! pad control.
type LogicalAction string

const (
	ActionSquare       LogicalAction = "square"
	ActionTriangle     LogicalAction = "triangle"
	ActionCircle       LogicalAction = "circle"
	ActionCross        LogicalAction = "cross"
	ActionStart        LogicalAction = "start"
	ActionSelect       LogicalAction = "select"
	ActionL2           LogicalAction = "l2"
	ActionR2           LogicalAction = "r2"
	ActionAnalogLeftX  LogicalAction = "analog_left_x"
	ActionAnalogLeftY  LogicalAction = "analog_left_y"
	ActionAnalogRightX LogicalAction = "analog_right_x"
	ActionAnalogRightY LogicalAction = "analog_right_y"
	ActionDpadUp       LogicalAction = "dpad_up"
	ActionDpadDown     LogicalAction = "dpad_down"
	ActionDpadLeft     LogicalAction = "dpad_left"
	ActionDpadRight    LogicalAction = "dpad_right"
	ActionL1           LogicalAction = "l1"
	ActionR1           LogicalAction = "r1"
	ActionL3           LogicalAction = "l3"
	ActionR3           LogicalAction = "r3"
)

// ActionBinding assigns a pad action to a base key.
type ActionBinding struct {
	Action LogicalAction
	Key    BaseKey
}

// ActionMapping is an ordered action to base key mapping. Order decides
// the order records are written in.
type ActionMapping []ActionBinding

// baseMapping returns a fresh copy of the default arcade layout:
// cross is button 1, circle 2, triangle 3, square 4, r3 5 and r2 6.
func baseMapping() ActionMapping {
	return ActionMapping{
		{ActionSquare, KeyY},
		{ActionTriangle, KeyX},
		{ActionCircle, KeyB},
		{ActionCross, KeyA},
		{ActionStart, KeyStart},
		{ActionSelect, KeySelect},
		{ActionL2, KeyPageUp},
		{ActionR2, KeyPageDown},
		{ActionAnalogLeftX, KeyJoystick1Left},
		{ActionAnalogLeftY, KeyJoystick1Up},
		{ActionAnalogRightX, KeyJoystick2Left},
		{ActionAnalogRightY, KeyJoystick2Up},
		{ActionDpadUp, KeyUp},
		{ActionDpadDown, KeyDown},
		{ActionDpadLeft, KeyLeft},
		{ActionDpadRight, KeyRight},
		{ActionL1, KeyL2},
		{ActionR1, KeyR2},
		{ActionL3, KeyL3},
		{ActionR3, KeyR3},
	}
}

// Lookup returns the base key bound to an action.
func (m ActionMapping) Lookup(action LogicalAction) (BaseKey, bool) {
	for _, b := range m {
		if b.Action == action {
			return b.Key, true
		}
	}
	return "", false
}

// Set returns a mapping with action bound to key, replaced in place when
// already bound and appended otherwise. The receiver is not modified.
func (m ActionMapping) Set(action LogicalAction, key BaseKey) ActionMapping {
	out := make(ActionMapping, len(m), len(m)+1)
	copy(out, m)
	for i := range out {
		if out[i].Action == action {
			out[i].Key = key
			return out
		}
	}
	return append(out, ActionBinding{Action: action, Key: key})
}

// Remove returns a mapping without action. The receiver is not modified.
func (m ActionMapping) Remove(action LogicalAction) ActionMapping {
	out := make(ActionMapping, 0, len(m))
	for _, b := range m {
		if b.Action != action {
			out = append(out, b)
		}
	}
	return out
}

// MappingForROM returns the action mapping for a ROM path: the base
// mapping with the first matching game rule applied, if any.
func MappingForROM(rom string) ActionMapping {
	m := baseMapping()
	rule, ok := MatchRule(rom)
	if !ok {
		return m
	}
	log.Debug().Str("rule", rule.Name).Str("rom", rom).Msg("applying game mapping rule")
	return rule.Apply(m)
}

// ResolvedBinding is an action bound to a player's key codes.
type ResolvedBinding struct {
	Action LogicalAction
	Key    BaseKey
	Codes  []int
}

// PlayerMapping holds the resolved bindings for one player slot.
type PlayerMapping struct {
	Bindings []ResolvedBinding
	Player   int
}

// ResolvePlayers resolves bindings for each connected controller, in
// connection order, up to MaxPlayers. Actions bound to a base key missing
// from the player's key table are skipped.
func ResolvePlayers(controllers []configgen.Controller, rom string) []PlayerMapping {
	n := min(len(controllers), MaxPlayers)
	if len(controllers) > MaxPlayers {
		log.Debug().
			Int("connected", len(controllers)).
			Int("max", MaxPlayers).
			Msg("ignoring extra controllers")
	}

	mapping := MappingForROM(rom)
	players := make([]PlayerMapping, 0, n)
	for i := range n {
		player := i + 1
		table := KeyTableFor(player)
		log.Debug().Int("player", player).Stringer("keys", table).Msg("resolved player key table")
		pm := PlayerMapping{Player: player}
		for _, b := range mapping {
			codes, ok := table[b.Key]
			if !ok {
				continue
			}
			pm.Bindings = append(pm.Bindings, ResolvedBinding{
				Action: b.Action,
				Key:    b.Key,
				Codes:  codes,
			})
		}
		players = append(players, pm)
	}
	return players
}

// containsAny reports whether s contains any of substrs.
func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
