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
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// EnsureKeys installs the evmapy keys file into dstDir unless a copy is
// already there. Failures are logged and never stop a launch.
func EnsureKeys(fs afero.Fs, src, dstDir string) {
	if src == "" || dstDir == "" {
		return
	}
	dst := filepath.Join(dstDir, filepath.Base(src))

	exists, err := afero.Exists(fs, dst)
	if err != nil {
		log.Error().Err(err).Str("path", dst).Msg("failed to check evmapy keys")
		return
	}
	if exists {
		return
	}

	exists, err = afero.Exists(fs, src)
	if err != nil || !exists {
		log.Warn().Err(err).Str("path", src).Msg("source keys file missing")
		return
	}

	if err := copyKeys(fs, src, dst); err != nil {
		log.Error().Err(err).Msg("failed to install evmapy keys")
		return
	}
	log.Info().Str("path", dst).Msg("installed evmapy keys")
}

func copyKeys(fs afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return fmt.Errorf("failed to read source keys: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("failed to create keys dir: %w", err)
	}
	if err := afero.WriteFile(fs, dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write keys: %w", err)
	}
	return nil
}
