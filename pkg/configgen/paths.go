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

package configgen

import "path/filepath"

const (
	DefaultUserdataDir = "/userdata"
	DefaultDefaultsDir = "/usr/share/batocera/configgen"
)

// Paths are the well-known Batocera locations generators read and write.
type Paths struct {
	Configs      string
	Saves        string
	Cache        string
	Roms         string
	BatoceraConf string
	// Defaults are YAML option defaults, applied in order.
	Defaults []string
}

// PathsFromUserdata lays out Paths under a userdata root and a configgen
// defaults directory.
func PathsFromUserdata(userdata, defaultsDir string) Paths {
	system := filepath.Join(userdata, "system")
	return Paths{
		Configs:      filepath.Join(system, "configs"),
		Saves:        filepath.Join(userdata, "saves"),
		Cache:        filepath.Join(system, ".cache"),
		Roms:         filepath.Join(userdata, "roms"),
		BatoceraConf: filepath.Join(system, "batocera.conf"),
		Defaults: []string{
			filepath.Join(defaultsDir, "configgen-defaults.yml"),
			filepath.Join(defaultsDir, "configgen-defaults-arch.yml"),
		},
	}
}

func DefaultPaths() Paths {
	return PathsFromUserdata(DefaultUserdataDir, DefaultDefaultsDir)
}
