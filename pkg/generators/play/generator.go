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

// Package play generates configuration and launch commands for the Play!
// PlayStation 2 emulator running Namco System 246/256 arcade games.
//
// Each launch merges the managed settings into Play!'s config.xml, writes
// a fresh keyboard input profile for up to two players driven through
// evmapy, and returns the AppImage invocation.
package play

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	EmulatorName    = "play"
	DefaultAppImage = "/userdata/system/dcg/namco2x6/appimage/play.AppImage"
	dataFilesDir    = "Play Data Files"
	configureROM    = "config"
)

// ConfigDir returns the Play! configuration directory.
func ConfigDir(paths configgen.Paths) string {
	return filepath.Join(paths.Configs, EmulatorName)
}

// SavesDir returns the Play! saves directory.
func SavesDir(paths configgen.Paths) string {
	return filepath.Join(paths.Saves, EmulatorName)
}

// ConfigFile returns the path of Play!'s config.xml.
func ConfigFile(paths configgen.Paths) string {
	return filepath.Join(ConfigDir(paths), dataFilesDir, "config.xml")
}

// InputProfileFile returns the path of the default input profile.
func InputProfileFile(paths configgen.Paths) string {
	return filepath.Join(ConfigDir(paths), dataFilesDir, "inputprofiles", "default.xml")
}

type Options struct {
	Fs         afero.Fs
	OpenDevice DeviceOpener
	AppImage   string
}

type Generator struct {
	fs         afero.Fs
	openDevice DeviceOpener
	appImage   string
}

// NewGenerator returns a Play! generator. Unset options fall back to the
// OS filesystem, evdev device probing and the default AppImage location.
//
//nolint:gocritic // options struct copied for immutability
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		fs:         opts.Fs,
		openDevice: opts.OpenDevice,
		appImage:   opts.AppImage,
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.openDevice == nil {
		g.openDevice = OpenEvdevDevice
	}
	if g.appImage == "" {
		g.appImage = DefaultAppImage
	}
	return g
}

func (*Generator) HotkeysContext() configgen.HotkeysContext {
	return configgen.HotkeysContext{
		Name: EmulatorName,
		Keys: map[string][]string{
			"exit": {"KEY_LEFTALT", "KEY_F4"},
		},
	}
}

// Generate writes config.xml and the input profile, then returns the
// Play! command for the ROM.
//
//nolint:gocritic // args struct copied for immutability
func (g *Generator) Generate(_ context.Context, args configgen.GenerateArgs) (configgen.Command, error) {
	cfgDir := ConfigDir(args.Paths)
	for _, dir := range []string{cfgDir, SavesDir(args.Paths)} {
		if err := g.fs.MkdirAll(dir, 0o750); err != nil {
			return configgen.Command{}, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	err := WriteConfig(g.fs, ConfigFile(args.Paths), args.System, args.Paths.Roms)
	if err != nil {
		return configgen.Command{}, err
	}

	players := ResolvePlayers(args.Controllers, args.ROM)
	for i, pm := range players {
		path := args.Controllers[i].DevicePath
		if err := g.openDevice(path); err != nil {
			return configgen.Command{}, fmt.Errorf("player %d: %w", pm.Player, err)
		}
	}

	if err := WriteInputProfile(g.fs, InputProfileFile(args.Paths), players); err != nil {
		return configgen.Command{}, err
	}
	log.Info().Int("players", len(players)).Msg("wrote play input profile")

	return configgen.Command{
		Array: g.commandArray(args.ROM),
		Env: map[string]string{
			"XDG_CONFIG_HOME": cfgDir,
			"XDG_DATA_HOME":   cfgDir,
			"XDG_CACHE_HOME":  args.Paths.Cache,
			"QT_QPA_PLATFORM": "xcb",
		},
	}, nil
}

// commandArray boots zipped arcade sets by name and anything else as a
// disc image. The configure request opens Play! without a game.
func (g *Generator) commandArray(rom string) []string {
	array := []string{g.appImage, "--fullscreen"}
	if filepath.Clean(rom) == configureROM {
		return array
	}

	ext := filepath.Ext(rom)
	if strings.EqualFold(ext, ".zip") {
		stem := strings.TrimSuffix(filepath.Base(rom), ext)
		return append(array, "--arcade", stem)
	}
	return append(array, "--disc", rom)
}

// InGameRatio returns 16:9 when widescreen rendering or the stretched
// presentation mode is selected.
func (*Generator) InGameRatio(opts *configgen.SystemConfig) float64 {
	if opts.Get("play_widescreen") == "true" || opts.Get("play_mode") == "0" {
		return 16.0 / 9.0
	}
	return configgen.DefaultRatio
}

// MouseMode is always off, Play! is driven by the evmapy keyboard.
func (*Generator) MouseMode(*configgen.SystemConfig) bool {
	return false
}
