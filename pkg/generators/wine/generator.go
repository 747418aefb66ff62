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

// Package wine generates launch commands for Windows games run through the
// batocera-wine wrapper.
package wine

import (
	"context"
	"errors"
	"strings"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/helpers/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	EmulatorName     = "wine"
	DefaultBinary    = "/userdata/system/dcg/bin/batocera-wine"
	DefaultPrimeFlag = "/var/tmp/nvidia.prime"
	InstallerSystem  = "windows_installers"
	fallbackLanguage = "en_US"
	nvidiaICDFiles   = "/usr/share/vulkan/icd.d/nvidia_icd.x86_64.json:" +
		"/usr/share/vulkan/icd.d/nvidia_icd.i686.json"
)

// ErrNoSystem is returned when a launch request carries no system config.
var ErrNoSystem = errors.New("no system config")

// primeOffloadVars are dropped from the inherited environment so Vulkan
// picks the NVIDIA ICD directly.
var primeOffloadVars = []string{
	"__NV_PRIME_RENDER_OFFLOAD",
	"__VK_LAYER_NV_optimus",
	"__GLX_VENDOR_LIBRARY_NAME",
}

type Options struct {
	Fs        afero.Fs
	Exec      command.Executor
	Binary    string
	PrimeFlag string
}

type Generator struct {
	fs        afero.Fs
	exec      command.Executor
	binary    string
	primeFlag string
}

//nolint:gocritic // options struct copied for immutability
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		fs:        opts.Fs,
		exec:      opts.Exec,
		binary:    opts.Binary,
		primeFlag: opts.PrimeFlag,
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.exec == nil {
		g.exec = &command.RealExecutor{}
	}
	if g.binary == "" {
		g.binary = DefaultBinary
	}
	if g.primeFlag == "" {
		g.primeFlag = DefaultPrimeFlag
	}
	return g
}

func (g *Generator) HotkeysContext() configgen.HotkeysContext {
	return configgen.HotkeysContext{
		Name: EmulatorName,
		Keys: map[string][]string{
			"exit": {g.binary + " windows stop"},
		},
	}
}

// Generate returns the batocera-wine invocation. Installer ROMs run the
// install action without any extra environment.
//
//nolint:gocritic // args struct copied for immutability
func (g *Generator) Generate(ctx context.Context, args configgen.GenerateArgs) (configgen.Command, error) {
	if args.System == nil {
		return configgen.Command{}, ErrNoSystem
	}

	system := args.System.Name
	if system == InstallerSystem {
		return configgen.Command{
			Array: []string{g.binary, "windows", "install", args.ROM},
		}, nil
	}

	log.Info().Str("system", system).Str("rom", args.ROM).Msg("launching through batocera-wine")

	env := make(map[string]string)
	if lang := g.language(ctx); lang != "" {
		env["LANG"] = lang + ".UTF-8"
		env["LC_ALL"] = lang + ".UTF-8"
	}

	if args.System.GetBool("sdl_config", true) {
		env["SDL_GAMECONTROLLERCONFIG"] = configgen.SDLGameControllerConfig(args.Controllers)
		env["SDL_JOYSTICK_HIDAPI"] = "0"
	}

	var unset []string
	prime, err := afero.Exists(g.fs, g.primeFlag)
	if err != nil {
		log.Warn().Err(err).Str("path", g.primeFlag).Msg("failed to check nvidia prime flag")
	}
	if prime {
		unset = append(unset, primeOffloadVars...)
		env["VK_ICD_FILENAMES"] = nvidiaICDFiles
	}

	return configgen.Command{
		Array: []string{g.binary, system, "play", args.ROM},
		Env:   env,
		Unset: unset,
	}, nil
}

// language returns the front-end's configured locale. A failing settings
// lookup falls back to en_US while an empty setting means no locale.
func (g *Generator) language(ctx context.Context) string {
	out, err := g.exec.Output(ctx, "batocera-settings-get", "system.language")
	if err != nil {
		log.Debug().Err(err).Msg("failed to read system language")
		return fallbackLanguage
	}
	return strings.TrimSpace(string(out))
}

func (*Generator) InGameRatio(*configgen.SystemConfig) float64 {
	return configgen.DefaultRatio
}

// MouseMode reports whether the front-end should show the mouse pointer.
func (*Generator) MouseMode(opts *configgen.SystemConfig) bool {
	return opts.GetBool("force_mouse", false)
}
