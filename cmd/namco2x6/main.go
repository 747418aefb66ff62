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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/config"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/generators/play"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/generators/wine"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/launcher"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	if len(argv) == 1 && (argv[0] == "-version" || argv[0] == "--version") {
		_, _ = fmt.Printf("%s %s\n", config.AppName, config.AppVersion)
		return nil
	}

	args, err := launcher.ParseArgs(argv)
	if errors.Is(err, flag.ErrHelp) {
		_, _ = fmt.Println("usage: namco2x6 -system <name> -rom <path> [-emulator <name>] [-core <name>] [-pN<field> <value>]")
		return nil
	} else if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	cfg, err := config.NewConfig(fs, config.DefaultConfigDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	err = helpers.InitLogging(
		cfg.LogDir(),
		cfg.DebugLogging(),
		zerolog.ConsoleWriter{Out: os.Stderr},
	)
	if err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	log.Info().Msgf("%s v%s", config.AppName, config.AppVersion)
	log.Debug().Str("path", cfg.Path()).Msg("loaded config")

	exec := &command.RealExecutor{}
	registry := configgen.NewRegistry()
	registry.Register(play.EmulatorName, play.NewGenerator(play.Options{
		Fs:       fs,
		AppImage: cfg.PlayAppImage(),
	}))
	registry.Register(wine.EmulatorName, wine.NewGenerator(wine.Options{
		Fs:        fs,
		Exec:      exec,
		Binary:    cfg.WineBinary(),
		PrimeFlag: cfg.NvidiaPrimeFlag(),
	}))

	keysSrc, keysDir := cfg.EvmapyKeys()
	l := launcher.New(launcher.Options{
		Fs:         fs,
		Exec:       exec,
		Registry:   registry,
		Paths:      cfg.GenPaths(),
		KeysSource: keysSrc,
		KeysDir:    keysDir,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := l.Launch(ctx, args); err != nil {
		log.Error().Err(err).Msg("launch failed")
		return err
	}
	return nil
}
