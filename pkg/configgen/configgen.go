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

// Package configgen holds the contract shared by emulator generators: the
// inputs a generator is given for one launch and the command it returns.
package configgen

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrUnknownEmulator is returned by Registry.Get for unregistered names.
var ErrUnknownEmulator = errors.New("unknown emulator")

// Command is the process invocation produced by a generator. Env is added
// on top of the launcher's environment and Unset names variables which
// must be removed from the inherited environment.
type Command struct {
	Env   map[string]string
	Array []string
	Unset []string
}

// Environ merges the command's variables into base, a list in os.Environ
// form. Output is sorted for the variables the command sets.
func (c Command) Environ(base []string) []string {
	out := make([]string, 0, len(base)+len(c.Env))
	for _, kv := range base {
		name, _, _ := strings.Cut(kv, "=")
		if slices.Contains(c.Unset, name) {
			continue
		}
		if _, ok := c.Env[name]; ok {
			continue
		}
		out = append(out, kv)
	}
	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		out = append(out, k+"="+c.Env[k])
	}
	return out
}

func (c Command) String() string {
	return strings.Join(c.Array, " ")
}

// Controller is a connected input device assigned to a player slot.
type Controller struct {
	GUID       string
	Name       string
	DevicePath string
	// SDLMapping is the SDL game controller mapping for this device,
	// without the leading GUID and name fields.
	SDLMapping string
	Player     int
	Index      int
	NbButtons  int
	NbHats     int
	NbAxes     int
}

// HotkeysContext describes the hotkey actions a generator exposes to the
// front-end's hotkey daemon.
type HotkeysContext struct {
	Keys map[string][]string `json:"keys"`
	Name string              `json:"name"`
}

// GenerateArgs is everything a generator needs for one launch.
type GenerateArgs struct {
	System      *SystemConfig
	Paths       Paths
	ROM         string
	Controllers []Controller
}

// Generator translates a launch request into on-disk emulator
// configuration and a Command to run.
type Generator interface {
	Generate(ctx context.Context, args GenerateArgs) (Command, error)
	HotkeysContext() HotkeysContext
	// InGameRatio is the aspect ratio the game renders at.
	InGameRatio(sys *SystemConfig) float64
	// MouseMode reports whether the game needs a visible mouse pointer.
	MouseMode(sys *SystemConfig) bool
}

// DefaultRatio is the aspect ratio of generators with no widescreen mode.
const DefaultRatio = 4.0 / 3.0

// Registry maps emulator names to generators.
type Registry struct {
	generators map[string]Generator
}

func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

func (r *Registry) Register(name string, g Generator) {
	r.generators[name] = g
}

func (r *Registry) Get(name string) (Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEmulator, name)
	}
	return g, nil
}

// Names returns registered emulator names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.generators))
}

// SDLGameControllerConfig renders controllers in SDL_GAMECONTROLLERCONFIG
// form, one "guid,name,mapping," line per controller. Controllers without
// a GUID or a mapping are left to SDL's built-in database.
func SDLGameControllerConfig(controllers []Controller) string {
	lines := make([]string, 0, len(controllers))
	for _, c := range controllers {
		mapping := strings.TrimSuffix(c.SDLMapping, ",")
		if c.GUID == "" || mapping == "" {
			continue
		}
		lines = append(lines, c.GUID+","+c.Name+","+mapping+",")
	}
	return strings.Join(lines, "\n")
}
