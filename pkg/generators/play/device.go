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
	"errors"
	"fmt"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog/log"
)

// ErrDeviceAccess is returned when a controller's input device can't be
// opened.
var ErrDeviceAccess = errors.New("controller device not accessible")

// DeviceOpener checks that a controller's input device can be opened.
type DeviceOpener func(path string) error

// OpenEvdevDevice opens and closes an evdev input device node.
func OpenEvdevDevice(path string) error {
	dev, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDeviceAccess, path, err)
	}
	log.Debug().Str("path", path).Str("name", dev.Name).Msg("opened controller device")
	if err := dev.File.Close(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("error closing controller device")
	}
	return nil
}
