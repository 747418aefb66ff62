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

package command

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Output(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("returns_stdout", func(t *testing.T) {
		t.Parallel()

		out, err := executor.Output(context.Background(), "echo", "en_US")

		require.NoError(t, err)
		assert.Equal(t, "en_US\n", string(out))
	})

	t.Run("returns_error_for_failed_command", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Output(context.Background(), "false")

		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
	})

	t.Run("returns_error_for_nonexistent_command", func(t *testing.T) {
		t.Parallel()

		_, err := executor.Output(context.Background(), "nonexistent_command_that_should_not_exist_12345")

		require.Error(t, err)
	})
}

func TestRealExecutor_RunWithEnv(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("passes_environment", func(t *testing.T) {
		t.Parallel()

		env := []string{"PATH=/usr/bin:/bin", "QT_QPA_PLATFORM=xcb"}
		err := executor.RunWithEnv(context.Background(), env, "sh", "-c", `test "$QT_QPA_PLATFORM" = xcb`)

		assert.NoError(t, err)
	})

	t.Run("does_not_inherit_unlisted_variables", func(t *testing.T) {
		t.Parallel()

		env := []string{"PATH=/usr/bin:/bin"}
		err := executor.RunWithEnv(context.Background(), env, "sh", "-c", `test -z "$HOME"`)

		assert.NoError(t, err)
	})

	t.Run("returns_error_for_failed_command", func(t *testing.T) {
		t.Parallel()

		err := executor.RunWithEnv(context.Background(), nil, "false")

		assert.Error(t, err)
	})

	t.Run("returns_error_when_context_cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := executor.RunWithEnv(ctx, nil, "true")

		require.Error(t, err)
	})
}

func TestExecutor_Interface(t *testing.T) {
	t.Parallel()

	// Verify that RealExecutor implements Executor
	var _ Executor = (*RealExecutor)(nil)
}
