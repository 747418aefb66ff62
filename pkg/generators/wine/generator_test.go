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

package wine

import (
	"context"
	"errors"
	"testing"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen"
	testhelpers "github.com/ZaparooProject/zaparoo-configgen/pkg/testing/helpers"
	"github.com/ZaparooProject/zaparoo-configgen/pkg/testing/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testROM = "/userdata/roms/windows/Game.wine"

func languageExec(out string, err error) *mocks.MockCommandExecutor {
	cmd := &mocks.MockCommandExecutor{}
	cmd.On("Output", mock.Anything, "batocera-settings-get", []string{"system.language"}).
		Return([]byte(out), err)
	return cmd
}

func newTestGenerator(fs afero.Fs, cmd *mocks.MockCommandExecutor) *Generator {
	return NewGenerator(Options{
		Fs:     fs,
		Exec:   cmd,
		Binary: DefaultBinary,
	})
}

func testControllers() []configgen.Controller {
	return []configgen.Controller{
		{
			GUID:       "030000005e0400008e02000010010000",
			Name:       "Xbox 360 Controller",
			SDLMapping: "a:b0,b:b1,x:b2,y:b3",
			Player:     1,
		},
	}
}

func TestGenerate_Installer(t *testing.T) {
	t.Parallel()

	cmd := &mocks.MockCommandExecutor{}
	g := newTestGenerator(afero.NewMemMapFs(), cmd)

	out, err := g.Generate(context.Background(), configgen.GenerateArgs{
		System: configgen.NewSystemConfig(InstallerSystem, nil),
		ROM:    "/userdata/roms/windows_installers/setup.exe",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		DefaultBinary, "windows", "install", "/userdata/roms/windows_installers/setup.exe",
	}, out.Array)
	assert.Empty(t, out.Env)
	assert.Empty(t, out.Unset)
	cmd.AssertNotCalled(t, "Output", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_Play(t *testing.T) {
	t.Parallel()

	cmd := languageExec("fr_FR\n", nil)
	g := newTestGenerator(afero.NewMemMapFs(), cmd)

	out, err := g.Generate(context.Background(), configgen.GenerateArgs{
		System:      configgen.NewSystemConfig("windows", nil),
		ROM:         testROM,
		Controllers: testControllers(),
	})
	require.NoError(t, err)
	testhelpers.AssertValidCommand(t, out)

	assert.Equal(t, []string{DefaultBinary, "windows", "play", testROM}, out.Array)
	assert.Equal(t, map[string]string{
		"LANG":                     "fr_FR.UTF-8",
		"LC_ALL":                   "fr_FR.UTF-8",
		"SDL_GAMECONTROLLERCONFIG": "030000005e0400008e02000010010000,Xbox 360 Controller,a:b0,b:b1,x:b2,y:b3,",
		"SDL_JOYSTICK_HIDAPI":      "0",
	}, out.Env)
	assert.Empty(t, out.Unset)
	cmd.AssertExpectations(t)
}

func TestGenerate_Language(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		name     string
		output   string
		wantLang string
		wantSet  bool
	}{
		{
			name:     "configured language",
			output:   "de_DE\n",
			wantLang: "de_DE.UTF-8",
			wantSet:  true,
		},
		{
			name:     "lookup failure falls back",
			err:      errors.New("exit status 1"),
			wantLang: "en_US.UTF-8",
			wantSet:  true,
		},
		{
			name:    "empty setting sets nothing",
			output:  "  \n",
			wantSet: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newTestGenerator(afero.NewMemMapFs(), languageExec(tt.output, tt.err))
			out, err := g.Generate(context.Background(), configgen.GenerateArgs{
				System: configgen.NewSystemConfig("windows", nil),
				ROM:    testROM,
			})
			require.NoError(t, err)

			lang, ok := out.Env["LANG"]
			assert.Equal(t, tt.wantSet, ok)
			assert.Equal(t, tt.wantLang, lang)
			assert.Equal(t, out.Env["LANG"], out.Env["LC_ALL"])
		})
	}
}

func TestGenerate_SDLConfigDisabled(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(afero.NewMemMapFs(), testhelpers.NewMockCommandExecutor())
	out, err := g.Generate(context.Background(), configgen.GenerateArgs{
		System: configgen.NewSystemConfig("windows", map[string]string{
			"sdl_config": "0",
		}),
		ROM:         testROM,
		Controllers: testControllers(),
	})
	require.NoError(t, err)

	assert.Empty(t, out.Env)
}

func TestGenerate_NvidiaPrime(t *testing.T) {
	t.Parallel()

	fsHelper := testhelpers.NewMemoryFS()
	require.NoError(t, fsHelper.WriteFile(DefaultPrimeFlag, []byte{}, 0o644))

	g := newTestGenerator(fsHelper.Fs, languageExec("en_US", nil))
	out, err := g.Generate(context.Background(), configgen.GenerateArgs{
		System: configgen.NewSystemConfig("windows", nil),
		ROM:    testROM,
	})
	require.NoError(t, err)
	testhelpers.AssertValidCommand(t, out)

	assert.Equal(t, nvidiaICDFiles, out.Env["VK_ICD_FILENAMES"])
	assert.Equal(t, []string{
		"__NV_PRIME_RENDER_OFFLOAD",
		"__VK_LAYER_NV_optimus",
		"__GLX_VENDOR_LIBRARY_NAME",
	}, out.Unset)

	env := out.Environ([]string{
		"HOME=/userdata/system",
		"__NV_PRIME_RENDER_OFFLOAD=1",
		"__GLX_VENDOR_LIBRARY_NAME=nvidia",
	})
	assert.Contains(t, env, "HOME=/userdata/system")
	assert.NotContains(t, env, "__NV_PRIME_RENDER_OFFLOAD=1")
	assert.NotContains(t, env, "__GLX_VENDOR_LIBRARY_NAME=nvidia")
	assert.Contains(t, env, "VK_ICD_FILENAMES="+nvidiaICDFiles)
}

func TestGenerate_NoSystem(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(afero.NewMemMapFs(), &mocks.MockCommandExecutor{})
	_, err := g.Generate(context.Background(), configgen.GenerateArgs{ROM: testROM})
	require.ErrorIs(t, err, ErrNoSystem)
}

func TestNewGenerator_Defaults(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Options{})
	assert.Equal(t, DefaultBinary, g.binary)
	assert.Equal(t, DefaultPrimeFlag, g.primeFlag)
	assert.NotNil(t, g.fs)
	assert.NotNil(t, g.exec)
}

func TestHotkeysContext(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Options{Binary: "/usr/bin/batocera-wine"})
	ctx := g.HotkeysContext()
	assert.Equal(t, EmulatorName, ctx.Name)
	assert.Equal(t, []string{"/usr/bin/batocera-wine windows stop"}, ctx.Keys["exit"])
}

func TestMouseMode(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Options{})
	assert.False(t, g.MouseMode(nil))
	assert.False(t, g.MouseMode(configgen.NewSystemConfig("windows", nil)))
	assert.True(t, g.MouseMode(configgen.NewSystemConfig("windows", map[string]string{
		"force_mouse": "true",
	})))
}

func TestInGameRatio(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Options{})
	assert.InDelta(t, configgen.DefaultRatio, g.InGameRatio(configgen.NewSystemConfig("windows", nil)), 1e-9)
}
