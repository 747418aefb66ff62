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
	"fmt"
	"maps"
	"slices"
	"strings"

	evdev "github.com/gvalkov/golang-evdev"
)

// MaxPlayers is the number of controller slots Play! is configured for.
// Controllers connected beyond this are ignored.
const MaxPlayers = 2

// playerKeyOffset is the spacing between player key ranges on the evmapy
// virtual keyboard.
const playerKeyOffset = 14

// BaseKey names a control on the evmapy pad profile.
type BaseKey string

const (
	KeyA                BaseKey = "a"
	KeyB                BaseKey = "b"
	KeyX                BaseKey = "x"
	KeyY                BaseKey = "y"
	KeyStart            BaseKey = "start"
	KeySelect           BaseKey = "select"
	KeyPageUp           BaseKey = "pageup"
	KeyPageDown         BaseKey = "pagedown"
	KeyJoystick1Left    BaseKey = "joystick1left"
	KeyJoystick1Up      BaseKey = "joystick1up"
	KeyJoystick1UpPedal BaseKey = "joystick1up_pedal"
	KeyJoystick2Left    BaseKey = "joystick2left"
	KeyJoystick2Up      BaseKey = "joystick2up"
	KeyUp               BaseKey = "up"
	KeyDown             BaseKey = "down"
	KeyLeft             BaseKey = "left"
	KeyRight            BaseKey = "right"
	KeyL2               BaseKey = "l2"
	KeyR2               BaseKey = "r2"
	KeyL3               BaseKey = "l3"
	KeyR3               BaseKey = "r3"
)

// KeyTable maps a base key to the keyboard codes evmapy emits for it. A
// single code is a digital binding, two codes are the negative and
// positive ends of a simulated axis.
type KeyTable map[BaseKey][]int

// baseKeyTable returns a fresh copy of the player 1 key table.
func baseKeyTable() KeyTable {
	return KeyTable{
		KeyA:                {evdev.KEY_Q},
		KeyB:                {evdev.KEY_W},
		KeyX:                {evdev.KEY_E},
		KeyY:                {evdev.KEY_R},
		KeyStart:            {evdev.KEY_1},
		KeySelect:           {evdev.KEY_5},
		KeyPageUp:           {evdev.KEY_T},
		KeyPageDown:         {evdev.KEY_U},
		KeyJoystick1Left:    {evdev.KEY_LEFT, evdev.KEY_RIGHT},
		KeyJoystick1Up:      {evdev.KEY_UP, evdev.KEY_DOWN},
		KeyJoystick1UpPedal: {evdev.KEY_I, evdev.KEY_Y},
		KeyUp:               {evdev.KEY_UP},
		KeyDown:             {evdev.KEY_DOWN},
		KeyLeft:             {evdev.KEY_LEFT},
		KeyRight:            {evdev.KEY_RIGHT},
		KeyL2:               {evdev.KEY_Y},
		KeyR2:               {evdev.KEY_I},
		KeyL3:               {evdev.KEY_O},
		KeyR3:               {evdev.KEY_P},
	}
}

// PlayerOffset returns the code offset for a 1-based player slot.
func PlayerOffset(player int) int {
	if player < 1 {
		return 0
	}
	return (player - 1) * playerKeyOffset
}

// KeyTableFor returns the key table of a 1-based player slot.
func KeyTableFor(player int) KeyTable {
	offset := PlayerOffset(player)
	table := baseKeyTable()
	for k, codes := range table {
		shifted := make([]int, len(codes))
		for i, c := range codes {
			shifted[i] = c + offset
		}
		table[k] = shifted
	}
	return table
}

// Keys returns the table's base keys in sorted order.
func (t KeyTable) Keys() []BaseKey {
	return slices.Sorted(maps.Keys(t))
}

// String renders the table in key order, e.g. "a=[16] b=[17]".
func (t KeyTable) String() string {
	var sb strings.Builder
	for i, k := range t.Keys() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", k, t[k])
	}
	return sb.String()
}
