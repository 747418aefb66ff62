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

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	OptionEmulator = "emulator"
	OptionCore     = "core"
	globalPrefix   = "global."
	defaultSection = "default"
)

// SystemConfig is the resolved option set for one system and ROM. Values
// are kept as the raw text found in the option sources.
type SystemConfig struct {
	options map[string]string
	Name    string
}

// NewSystemConfig returns a SystemConfig over a copy of options.
func NewSystemConfig(name string, options map[string]string) *SystemConfig {
	opts := make(map[string]string, len(options))
	maps.Copy(opts, options)
	return &SystemConfig{Name: name, options: opts}
}

// Lookup returns an option's raw value and whether it is set. A nil
// SystemConfig has no options.
func (s *SystemConfig) Lookup(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.options[key]
	return v, ok
}

// Get returns an option's raw value, or "" if unset.
func (s *SystemConfig) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// GetBool interprets an option as a boolean. Unset options return def,
// set options are true only for 1, true, on or enabled.
func (s *SystemConfig) GetBool(key string, def bool) bool {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "enabled":
		return true
	default:
		return false
	}
}

func (s *SystemConfig) Emulator() string {
	return s.Get(OptionEmulator)
}

func (s *SystemConfig) Core() string {
	return s.Get(OptionCore)
}

// Options returns a copy of all options.
func (s *SystemConfig) Options() map[string]string {
	if s == nil {
		return map[string]string{}
	}
	return maps.Clone(s.options)
}

type systemDefaults struct {
	Options  map[string]string `yaml:"options"`
	Emulator string            `yaml:"emulator"`
	Core     string            `yaml:"core"`
}

// LoadSystemConfig assembles the options for a system and ROM. Sources are
// applied lowest priority first: the YAML defaults files (default section
// then the system's section), then batocera.conf global.* keys, system.*
// keys and finally system["<rom file name>"].* keys. Missing files are
// skipped, unreadable or malformed ones are errors.
func LoadSystemConfig(fs afero.Fs, paths Paths, system, rom string) (*SystemConfig, error) {
	opts := make(map[string]string)

	for _, p := range paths.Defaults {
		if err := applyDefaults(fs, p, system, opts); err != nil {
			return nil, err
		}
	}

	if err := applyBatoceraConf(fs, paths.BatoceraConf, system, rom, opts); err != nil {
		return nil, err
	}

	log.Debug().
		Str("system", system).
		Str("rom", rom).
		Int("options", len(opts)).
		Msg("loaded system config")

	return &SystemConfig{Name: system, options: opts}, nil
}

func readOptional(fs afero.Fs, path string) ([]byte, bool, error) {
	if path == "" {
		return nil, false, nil
	}
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

func applyDefaults(fs afero.Fs, path, system string, opts map[string]string) error {
	data, ok, err := readOptional(fs, path)
	if err != nil {
		return err
	} else if !ok {
		log.Debug().Str("path", path).Msg("skipping missing defaults file")
		return nil
	}

	var defs map[string]systemDefaults
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("failed to parse defaults file %s: %w", path, err)
	}

	for _, section := range []string{defaultSection, system} {
		d, ok := defs[section]
		if !ok {
			continue
		}
		if d.Emulator != "" {
			opts[OptionEmulator] = d.Emulator
		}
		if d.Core != "" {
			opts[OptionCore] = d.Core
		}
		maps.Copy(opts, d.Options)
	}

	return nil
}

func applyBatoceraConf(fs afero.Fs, path, system, rom string, opts map[string]string) error {
	data, ok, err := readOptional(fs, path)
	if err != nil || !ok {
		return err
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		KeyValueDelimiters:      "=",
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	keys := cfg.Section(ini.DefaultSection).Keys()
	prefixes := []string{globalPrefix, system + "."}
	if rom != "" {
		prefixes = append(prefixes, system+`["`+filepath.Base(rom)+`"].`)
	}

	for _, prefix := range prefixes {
		for _, key := range keys {
			name, found := strings.CutPrefix(key.Name(), prefix)
			if !found || name == "" {
				continue
			}
			opts[name] = key.Value()
		}
	}

	return nil
}
