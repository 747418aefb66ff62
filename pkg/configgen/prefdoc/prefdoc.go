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

// Package prefdoc reads and writes the preference documents used by the
// Play! emulator. A document is a flat list of named, typed attribute
// records under a single <Config> root:
//
//	<Config>
//	    <Preference Name="ps2.limitframerate" Type="boolean" Value="true"></Preference>
//	</Config>
//
// Documents are held in memory keyed by preference name so callers can
// either merge into an existing file (Upsert) or build a fresh one (Append).
package prefdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrMalformed is returned when an existing document cannot be parsed.
var ErrMalformed = errors.New("malformed preference document")

// ValueType is the declared type of a preference value.
type ValueType string

const (
	TypeBoolean ValueType = "boolean"
	TypeInteger ValueType = "integer"
	TypeFloat   ValueType = "float"
	TypeString  ValueType = "string"
	TypePath    ValueType = "path"
)

// Preference is a single <Preference> record. Attributes other than Name,
// Type and Value are kept in Extra and written back unchanged.
type Preference struct {
	XMLName xml.Name   `xml:"Preference"`
	Name    string     `xml:"Name,attr"`
	Type    ValueType  `xml:"Type,attr"`
	Value   string     `xml:"Value,attr"`
	Extra   []xml.Attr `xml:",any,attr"`
}

// rawElement holds any non-Preference child of the root verbatim.
type rawElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
}

type configXML struct {
	XMLName     xml.Name     `xml:"Config"`
	Preferences []Preference `xml:"Preference"`
	Other       []rawElement `xml:",any"`
}

// Document is an in-memory preference document. The zero value is not
// usable, use New, Parse or Load.
type Document struct {
	index map[string]int
	prefs []Preference
	other []rawElement
}

// New returns an empty document.
func New() *Document {
	return &Document{
		index: make(map[string]int),
	}
}

// Parse decodes a document. Any decoding failure is reported as
// ErrMalformed.
func Parse(data []byte) (*Document, error) {
	var raw configXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	doc := New()
	doc.other = raw.Other
	for _, p := range raw.Preferences {
		// first occurrence wins lookups, later duplicates are carried as-is
		if _, ok := doc.index[p.Name]; !ok {
			doc.index[p.Name] = len(doc.prefs)
		}
		doc.prefs = append(doc.prefs, p)
	}

	return doc, nil
}

// Load reads the document at path. A missing file yields an empty
// document.
func Load(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("preference document not found, starting empty")
		return New(), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read preference document: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Len returns the number of records in the document.
func (d *Document) Len() int {
	return len(d.prefs)
}

// Get returns the first record with the given name.
func (d *Document) Get(name string) (Preference, bool) {
	i, ok := d.index[name]
	if !ok {
		return Preference{}, false
	}
	return d.prefs[i], true
}

// Preferences returns a copy of all records in document order.
func (d *Document) Preferences() []Preference {
	out := make([]Preference, len(d.prefs))
	copy(out, d.prefs)
	return out
}

// Upsert sets the type and value of the named record, creating it at the
// end of the document if it doesn't exist. Extra attributes of an existing
// record are preserved. Reports whether a new record was created.
func (d *Document) Upsert(name string, typ ValueType, value string) bool {
	if i, ok := d.index[name]; ok {
		d.prefs[i].Type = typ
		d.prefs[i].Value = value
		return false
	}
	d.Append(Preference{Name: name, Type: typ, Value: value})
	return true
}

// Append adds a record to the end of the document.
func (d *Document) Append(p Preference) {
	if _, ok := d.index[p.Name]; !ok {
		d.index[p.Name] = len(d.prefs)
	}
	d.prefs = append(d.prefs, p)
}

// Marshal encodes the document with a 4-space indent. Preference records
// come first in document order, followed by any other elements found when
// the document was parsed.
func (d *Document) Marshal() ([]byte, error) {
	raw := configXML{
		Preferences: d.prefs,
		Other:       d.other,
	}
	data, err := xml.MarshalIndent(raw, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference document: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	out = append(out, '\n')
	return out, nil
}

// Save writes the document to path, creating parent directories and
// replacing any existing file.
func (d *Document) Save(fs afero.Fs, path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create preference document directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preference document: %w", err)
	}
	return nil
}
