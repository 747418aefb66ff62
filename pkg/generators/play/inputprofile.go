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
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-configgen/pkg/configgen/prefdoc"
	"github.com/spf13/afero"
)

const (
	// padDeviceID is the evmapy virtual keyboard as Play! identifies it.
	padDeviceID = "1:0:1:0:1:0"
	// keyboardProviderID is Play!'s evdev input provider.
	keyboardProviderID = 1702257782
	keyTypeKey         = 0
	analogSensitivity  = "1.0"
)

// Binding types written for an action.
const (
	BindingSimple        = 1
	BindingSimulatedAxis = 2
)

// Attributes of a profile record.
const (
	AttrSensitivity = "analog.sensitivity"
	AttrBindingType = "bindingtype"
	AttrHatValue    = "povhatbinding.refvalue"
	AttrDeviceID    = "deviceId"
	AttrKeyID       = "keyId"
	AttrKeyType     = "keyType"
	AttrProviderID  = "providerId"
)

// ProfileRecord is one entry of the input profile. Action is empty for pad
// level records and Target is 0 for action level records.
type ProfileRecord struct {
	Action    LogicalAction
	Attribute string
	Type      prefdoc.ValueType
	Value     string
	Pad       int
	Target    int
}

// Name renders the record's preference name, for example
// input.pad1.cross.bindingtarget1.keyId.
func (r ProfileRecord) Name() string {
	var sb strings.Builder
	sb.WriteString("input.pad")
	sb.WriteString(strconv.Itoa(r.Pad))
	if r.Action != "" {
		sb.WriteString(".")
		sb.WriteString(string(r.Action))
	}
	if r.Target > 0 {
		sb.WriteString(".bindingtarget")
		sb.WriteString(strconv.Itoa(r.Target))
	}
	sb.WriteString(".")
	sb.WriteString(r.Attribute)
	return sb.String()
}

func (r ProfileRecord) Preference() prefdoc.Preference {
	return prefdoc.Preference{Name: r.Name(), Type: r.Type, Value: r.Value}
}

// BindingType returns the binding type for a code sequence.
func BindingType(codes []int) int {
	if len(codes) > 1 {
		return BindingSimulatedAxis
	}
	return BindingSimple
}

// HatValue returns the POV hat reference value for an action.
func HatValue(action LogicalAction) int {
	switch action {
	case ActionDpadUp, ActionDpadLeft:
		return 4
	case ActionDpadDown, ActionDpadRight:
		return 0
	default:
		return -1
	}
}

func intRecord(pad int, action LogicalAction, target int, attr string, v int) ProfileRecord {
	return ProfileRecord{
		Pad:       pad,
		Action:    action,
		Target:    target,
		Attribute: attr,
		Type:      prefdoc.TypeInteger,
		Value:     strconv.Itoa(v),
	}
}

// ProfileRecords returns the input profile records for resolved players,
// ordered by player, then binding, then key code.
func ProfileRecords(players []PlayerMapping) []ProfileRecord {
	var records []ProfileRecord
	for _, pm := range players {
		pad := pm.Player
		records = append(records, ProfileRecord{
			Pad:       pad,
			Attribute: AttrSensitivity,
			Type:      prefdoc.TypeFloat,
			Value:     analogSensitivity,
		})

		for _, b := range pm.Bindings {
			records = append(records,
				intRecord(pad, b.Action, 0, AttrBindingType, BindingType(b.Codes)),
				intRecord(pad, b.Action, 0, AttrHatValue, HatValue(b.Action)),
			)
			for i, code := range b.Codes {
				target := i + 1
				records = append(records,
					ProfileRecord{
						Pad:       pad,
						Action:    b.Action,
						Target:    target,
						Attribute: AttrDeviceID,
						Type:      prefdoc.TypeString,
						Value:     padDeviceID,
					},
					intRecord(pad, b.Action, target, AttrKeyID, code),
					intRecord(pad, b.Action, target, AttrKeyType, keyTypeKey),
					intRecord(pad, b.Action, target, AttrProviderID, keyboardProviderID),
				)
			}
		}
	}
	return records
}

// InputProfile builds a fresh input profile document.
func InputProfile(players []PlayerMapping) *prefdoc.Document {
	doc := prefdoc.New()
	for _, r := range ProfileRecords(players) {
		doc.Append(r.Preference())
	}
	return doc
}

// WriteInputProfile replaces the input profile at path.
func WriteInputProfile(fs afero.Fs, path string, players []PlayerMapping) error {
	if err := InputProfile(players).Save(fs, path); err != nil {
		return fmt.Errorf("failed to save play input profile: %w", err)
	}
	return nil
}
