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

package helpers

import (
	"strings"
	"testing"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen/prefdoc"
	"github.com/stretchr/testify/require"
)

// AssertValidCommand validates that a generated Command can be executed.
// This helper catches common bugs like an empty program or malformed
// environment names. Use this in tests that receive a Command from a
// generator.
func AssertValidCommand(t *testing.T, cmd configgen.Command) {
	t.Helper()

	require.NotEmpty(t, cmd.Array, "Command.Array must name a program")
	require.NotEmpty(t, cmd.Array[0], "Command.Array[0] must not be empty")

	for name := range cmd.Env {
		require.NotEmpty(t, name, "Command.Env has an empty variable name")
		require.NotContains(t, name, "=", "Command.Env name %q contains '='", name)
	}
	for _, name := range cmd.Unset {
		require.NotContains(t, cmd.Env, name, "variable %q is both set and unset", name)
	}
}

// AssertValidPreferences validates every record of a preference document:
// names must be set and types must be ones Play! understands.
func AssertValidPreferences(t *testing.T, doc *prefdoc.Document) {
	t.Helper()

	require.NotNil(t, doc, "Document should not be nil")

	seen := make(map[string]bool, doc.Len())
	for _, p := range doc.Preferences() {
		require.NotEmpty(t, p.Name, "Preference.Name is required")
		require.Equal(t, strings.TrimSpace(p.Name), p.Name, "Preference.Name has surrounding space")
		require.False(t, seen[p.Name], "duplicate preference %q", p.Name)
		seen[p.Name] = true

		switch p.Type {
		case prefdoc.TypeBoolean, prefdoc.TypeInteger, prefdoc.TypeFloat,
			prefdoc.TypeString, prefdoc.TypePath:
		default:
			require.Failf(t, "invalid preference type", "%q has type %q", p.Name, p.Type)
		}
	}
}
