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
	"testing"

	testhelpers "github.com/ZaparooProject/zaparoo-configgen/pkg/testing/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeysSrc = "/userdata/system/dcg/namco2x6/evmapy/namco2x6.keys"
	testKeysDir = "/userdata/system/configs/evmapy"
	testKeysDst = testKeysDir + "/namco2x6.keys"
)

func TestEnsureKeys_Copies(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	require.NoError(t, fsh.WriteFile(testKeysSrc, []byte(`{"actions_player1":[]}`), 0o644))

	EnsureKeys(fsh.Fs, testKeysSrc, testKeysDir)

	data, err := fsh.ReadFile(testKeysDst)
	require.NoError(t, err)
	assert.JSONEq(t, `{"actions_player1":[]}`, string(data))
}

func TestEnsureKeys_KeepsExisting(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	require.NoError(t, fsh.WriteFile(testKeysSrc, []byte("bundled"), 0o644))
	require.NoError(t, fsh.WriteFile(testKeysDst, []byte("user edited"), 0o644))

	EnsureKeys(fsh.Fs, testKeysSrc, testKeysDir)

	data, err := fsh.ReadFile(testKeysDst)
	require.NoError(t, err)
	assert.Equal(t, "user edited", string(data))
}

func TestEnsureKeys_MissingSource(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	EnsureKeys(fsh.Fs, testKeysSrc, testKeysDir)

	assert.False(t, fsh.FileExists(testKeysDst))
}

func TestEnsureKeys_Disabled(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	require.NoError(t, fsh.WriteFile(testKeysSrc, []byte("bundled"), 0o644))

	EnsureKeys(fsh.Fs, "", testKeysDir)
	EnsureKeys(fsh.Fs, testKeysSrc, "")

	assert.False(t, fsh.FileExists(testKeysDst))
}
