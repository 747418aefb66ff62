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

// Package launcher runs one emulator launch: it assembles the system
// configuration, asks the selected generator for a command and runs it.
package launcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/helpers/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DefaultHotkeygen is the front-end's hotkey daemon control command.
const DefaultHotkeygen = "hotkeygen"

var ErrEmptyCommand = errors.New("generator returned an empty command")

type Options struct {
	Fs       afero.Fs
	Exec     command.Executor
	Registry *configgen.Registry
	// Environ returns the environment the emulator inherits. Defaults to
	// os.Environ.
	Environ    func() []string
	KeysSource string
	KeysDir    string
	// Hotkeygen is the command given each generator's hotkey context.
	// Defaults to DefaultHotkeygen.
	Hotkeygen string
	Paths     configgen.Paths
}

type Launcher struct {
	fs         afero.Fs
	exec       command.Executor
	registry   *configgen.Registry
	environ    func() []string
	keysSource string
	keysDir    string
	hotkeygen  string
	paths      configgen.Paths
}

//nolint:gocritic // options struct copied for immutability
func New(opts Options) *Launcher {
	l := &Launcher{
		fs:         opts.Fs,
		exec:       opts.Exec,
		registry:   opts.Registry,
		environ:    opts.Environ,
		keysSource: opts.KeysSource,
		keysDir:    opts.KeysDir,
		hotkeygen:  opts.Hotkeygen,
		paths:      opts.Paths,
	}
	if l.fs == nil {
		l.fs = afero.NewOsFs()
	}
	if l.exec == nil {
		l.exec = &command.RealExecutor{}
	}
	if l.registry == nil {
		l.registry = configgen.NewRegistry()
	}
	if l.environ == nil {
		l.environ = os.Environ
	}
	if l.hotkeygen == "" {
		l.hotkeygen = DefaultHotkeygen
	}
	return l
}

// SystemConfig loads the merged options for the request. Emulator and
// core given on the command line take precedence over configured ones.
//
//nolint:gocritic // args struct copied for immutability
func (l *Launcher) SystemConfig(args Args) (*configgen.SystemConfig, error) {
	sys, err := configgen.LoadSystemConfig(l.fs, l.paths, args.System, args.ROM)
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	if args.Emulator == "" && args.Core == "" {
		return sys, nil
	}

	opts := sys.Options()
	if args.Emulator != "" {
		opts[configgen.OptionEmulator] = args.Emulator
	}
	if args.Core != "" {
		opts[configgen.OptionCore] = args.Core
	}
	return configgen.NewSystemConfig(sys.Name, opts), nil
}

// Session is a generated launch, ready to run.
type Session struct {
	Hotkeys  configgen.HotkeysContext
	Emulator string
	Command  configgen.Command
	Ratio    float64
	Mouse    bool
}

// Prepare writes the emulator configuration for the request and returns
// the command to run along with the generator's display and hotkey hints.
//
//nolint:gocritic // args struct copied for immutability
func (l *Launcher) Prepare(ctx context.Context, args Args) (*Session, error) {
	EnsureKeys(l.fs, l.keysSource, l.keysDir)

	sys, err := l.SystemConfig(args)
	if err != nil {
		return nil, err
	}

	emulator := sys.Emulator()
	gen, err := l.registry.Get(emulator)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("system", sys.Name).
		Str("emulator", emulator).
		Str("rom", args.ROM).
		Int("controllers", len(args.Controllers)).
		Msg("selected generator")

	cmd, err := gen.Generate(ctx, configgen.GenerateArgs{
		System:      sys,
		Paths:       l.paths,
		ROM:         args.ROM,
		Controllers: args.Controllers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s config: %w", emulator, err)
	}
	if len(cmd.Array) == 0 {
		return nil, ErrEmptyCommand
	}

	s := &Session{
		Emulator: emulator,
		Command:  cmd,
		Hotkeys:  gen.HotkeysContext(),
		Ratio:    gen.InGameRatio(sys),
		Mouse:    gen.MouseMode(sys),
	}
	log.Info().
		Str("hotkeys", s.Hotkeys.Name).
		Float64("ratio", s.Ratio).
		Bool("mouse", s.Mouse).
		Msg("generated launch")
	return s, nil
}

// Launch prepares the request and blocks until the emulator exits. The
// hotkey daemon is switched to the generator's context for the duration
// of the run.
//
//nolint:gocritic // args struct copied for immutability
func (l *Launcher) Launch(ctx context.Context, args Args) error {
	s, err := l.Prepare(ctx, args)
	if err != nil {
		return err
	}

	l.setHotkeys(ctx, s.Hotkeys)
	defer l.resetHotkeys(context.WithoutCancel(ctx))

	cmd := s.Command
	log.Info().Str("command", cmd.String()).Msg("running emulator")
	err = l.exec.RunWithEnv(ctx, cmd.Environ(l.environ()), cmd.Array[0], cmd.Array[1:]...)
	if err != nil {
		return fmt.Errorf("emulator exited with error: %w", err)
	}
	log.Info().Msg("emulator exited")
	return nil
}

// setHotkeys hands the generator's hotkey context to the hotkey daemon.
// Failures only lose emulator specific hotkeys and are logged.
func (l *Launcher) setHotkeys(ctx context.Context, hk configgen.HotkeysContext) {
	keys, err := json.Marshal(hk.Keys)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode hotkeys context")
		return
	}
	_, err = l.exec.Output(ctx, l.hotkeygen, "--new-context", hk.Name, string(keys))
	if err != nil {
		log.Warn().Err(err).Str("context", hk.Name).Msg("failed to set hotkeys context")
	}
}

func (l *Launcher) resetHotkeys(ctx context.Context) {
	if _, err := l.exec.Output(ctx, l.hotkeygen, "--default-context"); err != nil {
		log.Warn().Err(err).Msg("failed to reset hotkeys context")
	}
}
