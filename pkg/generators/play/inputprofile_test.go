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
	"strconv"
	"strings"
	"testing"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen/prefdoc"
	testhelpers "github.com/ZaparooProject/zaparoo-configgen/pkg/testing/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordValues(records []ProfileRecord) map[string]string {
	out := make(map[string]string, len(records))
	for _, r := range records {
		out[r.Name()] = r.Value
	}
	return out
}

func TestProfileRecord_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		want   string
		record ProfileRecord
	}{
		{
			record: ProfileRecord{Pad: 1, Attribute: AttrSensitivity},
			want:   "input.pad1.analog.sensitivity",
		},
		{
			record: ProfileRecord{Pad: 2, Action: ActionDpadUp, Attribute: AttrHatValue},
			want:   "input.pad2.dpad_up.povhatbinding.refvalue",
		},
		{
			record: ProfileRecord{Pad: 1, Action: ActionCross, Target: 2, Attribute: AttrKeyID},
			want:   "input.pad1.cross.bindingtarget2.keyId",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.record.Name())
	}
}

func TestBindingType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, BindingType([]int{16}))
	assert.Equal(t, 2, BindingType([]int{105, 106}))
}

func TestHatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, HatValue(ActionDpadUp))
	assert.Equal(t, 4, HatValue(ActionDpadLeft))
	assert.Equal(t, 0, HatValue(ActionDpadDown))
	assert.Equal(t, 0, HatValue(ActionDpadRight))
	for _, b := range baseMapping() {
		if strings.HasPrefix(string(b.Action), "dpad_") {
			continue
		}
		assert.Equal(t, -1, HatValue(b.Action), b.Action)
	}
}

func TestProfileRecords_SinglePlayer(t *testing.T) {
	t.Parallel()

	records := ProfileRecords(ResolvePlayers(controllers(1), "vf4.zip"))

	// 1 sensitivity + 18 actions * 2 + 20 key codes * 4
	require.Len(t, records, 117)

	first := records[0]
	assert.Equal(t, "input.pad1.analog.sensitivity", first.Name())
	assert.Equal(t, prefdoc.TypeFloat, first.Type)
	assert.Equal(t, "1.0", first.Value)

	names := make([]string, 0, 7)
	for _, r := range records[1:7] {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{
		"input.pad1.square.bindingtype",
		"input.pad1.square.povhatbinding.refvalue",
		"input.pad1.square.bindingtarget1.deviceId",
		"input.pad1.square.bindingtarget1.keyId",
		"input.pad1.square.bindingtarget1.keyType",
		"input.pad1.square.bindingtarget1.providerId",
	}, names)

	got := recordValues(records)
	assert.Equal(t, "1", got["input.pad1.square.bindingtype"])
	assert.Equal(t, "-1", got["input.pad1.square.povhatbinding.refvalue"])
	assert.Equal(t, "1:0:1:0:1:0", got["input.pad1.square.bindingtarget1.deviceId"])
	assert.Equal(t, "19", got["input.pad1.square.bindingtarget1.keyId"])
	assert.Equal(t, "0", got["input.pad1.square.bindingtarget1.keyType"])
	assert.Equal(t, "1702257782", got["input.pad1.square.bindingtarget1.providerId"])

	assert.Equal(t, "2", got["input.pad1.analog_left_x.bindingtype"])
	assert.Equal(t, "105", got["input.pad1.analog_left_x.bindingtarget1.keyId"])
	assert.Equal(t, "106", got["input.pad1.analog_left_x.bindingtarget2.keyId"])

	assert.Equal(t, "4", got["input.pad1.dpad_up.povhatbinding.refvalue"])
	assert.Equal(t, "4", got["input.pad1.dpad_left.povhatbinding.refvalue"])
	assert.Equal(t, "0", got["input.pad1.dpad_down.povhatbinding.refvalue"])
	assert.Equal(t, "0", got["input.pad1.dpad_right.povhatbinding.refvalue"])

	assert.NotContains(t, got, "input.pad1.analog_right_x.bindingtype")
}

func TestProfileRecords_PlayerTwoKeyIDs(t *testing.T) {
	t.Parallel()

	got := recordValues(ProfileRecords(ResolvePlayers(controllers(2), "vf4.zip")))

	for _, b := range baseMapping() {
		codes, ok := KeyTableFor(1)[b.Key]
		if !ok {
			continue
		}
		for i, code := range codes {
			p1 := ProfileRecord{Pad: 1, Action: b.Action, Target: i + 1, Attribute: AttrKeyID}
			p2 := ProfileRecord{Pad: 2, Action: b.Action, Target: i + 1, Attribute: AttrKeyID}
			assert.Equal(t, strconv.Itoa(code), got[p1.Name()])
			assert.Equal(t, strconv.Itoa(code+14), got[p2.Name()])
		}
	}
}

func TestProfileRecords_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ProfileRecords(nil))
	assert.Equal(t, 0, InputProfile(nil).Len())
}

func TestWriteInputProfile_Overwrites(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	path := "/userdata/system/configs/play/Play Data Files/inputprofiles/default.xml"
	stale := `<Config><Preference Name="input.pad3.cross.bindingtype" Type="integer" Value="1" /></Config>`
	require.NoError(t, fsh.WriteFile(path, []byte(stale), 0o644))

	players := ResolvePlayers(controllers(1), "vf4.zip")
	require.NoError(t, WriteInputProfile(fsh.Fs, path, players))

	data, err := fsh.ReadFile(path)
	require.NoError(t, err)
	doc, err := prefdoc.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 117, doc.Len())
	_, ok := doc.Get("input.pad3.cross.bindingtype")
	assert.False(t, ok)
}

func TestWriteInputProfile_Deterministic(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	path := "/play/default.xml"
	players := ResolvePlayers(controllers(2), "acedriv3.zip")

	require.NoError(t, WriteInputProfile(fsh.Fs, path, players))
	first, err := fsh.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteInputProfile(fsh.Fs, path, ResolvePlayers(controllers(2), "acedriv3.zip")))
	second, err := fsh.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
