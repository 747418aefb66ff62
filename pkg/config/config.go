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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "ZAPAROO_CONFIGGEN_CFG"
)

var ErrSchemaMismatch = errors.New("schema version mismatch")

type Values struct {
	Paths        Paths  `toml:"paths"`
	Play         Play   `toml:"play"`
	Wine         Wine   `toml:"wine"`
	Evmapy       Evmapy `toml:"evmapy"`
	ConfigSchema int    `toml:"config_schema"`
	DebugLogging bool   `toml:"debug_logging"`
}

type Paths struct {
	Userdata string `toml:"userdata" validate:"required"`
	Defaults string `toml:"defaults" validate:"required"`
	Logs     string `toml:"logs" validate:"required"`
}

type Play struct {
	AppImage string `toml:"appimage" validate:"required"`
}

type Wine struct {
	Binary      string `toml:"binary" validate:"required"`
	NvidiaPrime string `toml:"nvidia_prime,omitempty"`
}

type Evmapy struct {
	KeysSource string `toml:"keys_source,omitempty"`
	KeysDir    string `toml:"keys_dir,omitempty" validate:"required_with=KeysSource"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Paths: Paths{
		Userdata: configgen.DefaultUserdataDir,
		Defaults: configgen.DefaultDefaultsDir,
		Logs:     "/userdata/system/logs",
	},
	Play: Play{
		AppImage: "/userdata/system/dcg/namco2x6/appimage/play.AppImage",
	},
	Wine: Wine{
		Binary:      "/userdata/system/dcg/bin/batocera-wine",
		NvidiaPrime: "/var/tmp/nvidia.prime",
	},
	Evmapy: Evmapy{
		KeysSource: "/userdata/system/dcg/namco2x6/evmapy/namco2x6.keys",
		KeysDir:    "/userdata/system/configs/evmapy",
	},
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
}

// NewConfig loads the config file from configDir, or the path in the
// ZAPAROO_CONFIGGEN_CFG environment variable. A missing file leaves the
// defaults in place.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		log.Info().Str("path", cfgPath).Msg("no config file found, using defaults")
		if err := cfg.check(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	prev := c.vals
	c.vals = newVals
	if err := c.check(); err != nil {
		c.vals = prev
		return err
	}

	return nil
}

func (c *Instance) check() error {
	if c.vals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			c.vals.ConfigSchema,
			SchemaVersion,
		)
		return ErrSchemaMismatch
	}

	if err := validate.Struct(c.vals); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	return c.vals.DebugLogging
}

func (c *Instance) LogDir() string {
	return c.vals.Paths.Logs
}

// GenPaths returns the Batocera locations generators work with.
func (c *Instance) GenPaths() configgen.Paths {
	return configgen.PathsFromUserdata(c.vals.Paths.Userdata, c.vals.Paths.Defaults)
}

func (c *Instance) PlayAppImage() string {
	return c.vals.Play.AppImage
}

func (c *Instance) WineBinary() string {
	return c.vals.Wine.Binary
}

// NvidiaPrimeFlag is the file whose presence marks an NVIDIA PRIME
// offload setup.
func (c *Instance) NvidiaPrimeFlag() string {
	return c.vals.Wine.NvidiaPrime
}

// EvmapyKeys returns the bundled evmapy keys file and the directory it is
// installed to. An empty source disables the install.
func (c *Instance) EvmapyKeys() (src, dstDir string) {
	return c.vals.Evmapy.KeysSource, c.vals.Evmapy.KeysDir
}
