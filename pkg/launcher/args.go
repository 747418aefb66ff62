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

package launcher

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
)

// MaxArgPlayers is the number of player slots the front-end passes on the
// command line.
const MaxArgPlayers = 8

var ErrMissingArg = errors.New("missing required argument")

// Args is a parsed emulator launch request.
type Args struct {
	System      string
	ROM         string
	Emulator    string
	Core        string
	Controllers []configgen.Controller
}

type playerFlags struct {
	guid       *string
	name       *string
	devicePath *string
	sdlMapping *string
	index      *int
	nbButtons  *int
	nbHats     *int
	nbAxes     *int
}

// ParseArgs reads the front-end's emulatorlauncher arguments, excluding
// the program name. Players without a device path are skipped.
func ParseArgs(args []string) (Args, error) {
	fs := flag.NewFlagSet("namco2x6", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var out Args
	fs.StringVar(&out.System, "system", "", "system name")
	fs.StringVar(&out.ROM, "rom", "", "rom path")
	fs.StringVar(&out.Emulator, "emulator", "", "emulator override")
	fs.StringVar(&out.Core, "core", "", "core override")

	// accepted for compatibility, not used by these generators
	for _, name := range []string{
		"systemname", "gameinfoxml", "state_slot", "state_filename",
		"netplaymode", "netplaypass", "netplayip", "netplayport", "netplaysession",
	} {
		fs.String(name, "", "ignored")
	}
	for _, name := range []string{"autosave", "lightgun", "wheel", "trackball", "spinner"} {
		fs.Bool(name, false, "ignored")
	}

	players := make([]playerFlags, MaxArgPlayers)
	for i := range players {
		p := "p" + strconv.Itoa(i+1)
		players[i] = playerFlags{
			index:      fs.Int(p+"index", -1, "device index"),
			guid:       fs.String(p+"guid", "", "device guid"),
			name:       fs.String(p+"name", "", "device name"),
			devicePath: fs.String(p+"devicepath", "", "device path"),
			sdlMapping: fs.String(p+"sdlmapping", "", "SDL game controller mapping"),
			nbButtons:  fs.Int(p+"nbbuttons", 0, "button count"),
			nbHats:     fs.Int(p+"nbhats", 0, "hat count"),
			nbAxes:     fs.Int(p+"nbaxes", 0, "axis count"),
		}
	}

	if err := fs.Parse(args); err != nil {
		return Args{}, fmt.Errorf("failed to parse arguments: %w", err)
	}
	if out.System == "" {
		return Args{}, fmt.Errorf("%w: -system", ErrMissingArg)
	}
	if out.ROM == "" {
		return Args{}, fmt.Errorf("%w: -rom", ErrMissingArg)
	}

	for i, p := range players {
		if *p.devicePath == "" {
			continue
		}
		out.Controllers = append(out.Controllers, configgen.Controller{
			Player:     i + 1,
			Index:      *p.index,
			GUID:       *p.guid,
			Name:       *p.name,
			DevicePath: *p.devicePath,
			SDLMapping: *p.sdlMapping,
			NbButtons:  *p.nbButtons,
			NbHats:     *p.nbHats,
			NbAxes:     *p.nbAxes,
		})
	}

	return out, nil
}
