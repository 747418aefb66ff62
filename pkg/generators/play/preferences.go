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
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen/prefdoc"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// PreferenceSpec is a Play! setting the generator manages. Its type never
// changes between runs.
type PreferenceSpec struct {
	Name    string
	Type    prefdoc.ValueType
	Default string
}

// preferenceSpecs returns the managed settings in write order. romsDir is
// the parent of the namco2x6 arcade ROM directory.
func preferenceSpecs(romsDir string) []PreferenceSpec {
	return []PreferenceSpec{
		{"ps2.arcaderoms.directory", prefdoc.TypePath, filepath.Join(romsDir, "namco2x6")},
		{"ui.showexitconfirmation", prefdoc.TypeBoolean, "false"},
		{"ui.pausewhenfocuslost", prefdoc.TypeBoolean, "false"},
		{"ui.showeecpuusage", prefdoc.TypeBoolean, "false"},
		{"ps2.limitframerate", prefdoc.TypeBoolean, "true"},
		{"renderer.widescreen", prefdoc.TypeBoolean, "false"},
		{"system.language", prefdoc.TypeInteger, "1"},
		{"video.gshandler", prefdoc.TypeInteger, "0"},
		{"renderer.opengl.resfactor", prefdoc.TypeInteger, "1"},
		{"renderer.presentationmode", prefdoc.TypeInteger, "1"},
		{"renderer.opengl.forcebilineartextures", prefdoc.TypeBoolean, "false"},
	}
}

// overrideOptions maps a managed setting to the system option that
// overrides it.
var overrideOptions = map[string]string{
	"ps2.limitframerate":                    "play_vsync",
	"renderer.widescreen":                   "play_widescreen",
	"system.language":                       "play_language",
	"video.gshandler":                       "play_api",
	"renderer.opengl.resfactor":             "play_scale",
	"renderer.presentationmode":             "play_mode",
	"renderer.opengl.forcebilineartextures": "play_filter",
}

// OverrideOption returns the system option overriding a setting.
func OverrideOption(name string) (string, bool) {
	opt, ok := overrideOptions[name]
	return opt, ok
}

// resolveValue returns the override text when its option is set and
// non-empty, otherwise the default. Override text is not validated
// against the setting's type.
func resolveValue(spec PreferenceSpec, opts *configgen.SystemConfig) string {
	opt, ok := OverrideOption(spec.Name)
	if !ok || opts == nil {
		return spec.Default
	}
	if v := opts.Get(opt); v != "" {
		return v
	}
	return spec.Default
}

// BuildPreferences writes every managed setting into doc. Type and value
// are reasserted on every run, other entries are left untouched.
func BuildPreferences(doc *prefdoc.Document, opts *configgen.SystemConfig, romsDir string) {
	for _, spec := range preferenceSpecs(romsDir) {
		value := resolveValue(spec, opts)
		if created := doc.Upsert(spec.Name, spec.Type, value); created {
			log.Debug().Str("name", spec.Name).Str("value", value).Msg("added play preference")
		}
	}
}

// WriteConfig merges the managed settings into the Play! config document
// at path. A malformed existing document is an error and is left as is.
func WriteConfig(fs afero.Fs, path string, opts *configgen.SystemConfig, romsDir string) error {
	doc, err := prefdoc.Load(fs, path)
	if err != nil {
		return fmt.Errorf("failed to load play config: %w", err)
	}

	BuildPreferences(doc, opts, romsDir)

	if err := doc.Save(fs, path); err != nil {
		return fmt.Errorf("failed to save play config: %w", err)
	}
	return nil
}
