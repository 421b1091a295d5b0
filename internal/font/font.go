// Package font provides the hexadecimal glyph sets of historical CHIP-8 interpreters.
package font

import (
	"errors"
	"fmt"
	"strings"
)

// GlyphSize is the number of bytes, and therefore rows, of a single glyph.
const GlyphSize = 5

// ID identifies a glyph set.
type ID int

// Supported glyph sets.
const (
	CHIP48 ID = iota
	COSMACVIP
	DREAM6800
	ETI660

	count
)

// Default is the glyph set loaded when nothing else is configured.
const Default = CHIP48

// ErrUnknownFont is returned for an id or name that has no glyph set.
var ErrUnknownFont = errors.New("unknown font")

// Set is a named glyph set for the digits 0-F.
type Set struct {
	ID   ID
	Name string
	Data []byte
}

var sets = [count]Set{
	CHIP48: {
		ID:   CHIP48,
		Name: "chip48",
		Data: []byte{
			0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
			0x20, 0x60, 0x20, 0x20, 0x70, // 1
			0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
			0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
			0x90, 0x90, 0xF0, 0x10, 0x10, // 4
			0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
			0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
			0xF0, 0x10, 0x20, 0x40, 0x40, // 7
			0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
			0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
			0xF0, 0x90, 0xF0, 0x90, 0x90, // A
			0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
			0xF0, 0x80, 0x80, 0x80, 0xF0, // C
			0xE0, 0x90, 0x90, 0x90, 0xE0, // D
			0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
			0xF0, 0x80, 0xF0, 0x80, 0x80, // F
		},
	},
	COSMACVIP: {
		ID:   COSMACVIP,
		Name: "cosmacvip",
		Data: []byte{
			0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
			0x60, 0x20, 0x20, 0x20, 0x70, // 1
			0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
			0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
			0xA0, 0xA0, 0xF0, 0x20, 0x20, // 4
			0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
			0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
			0xF0, 0x10, 0x10, 0x10, 0x10, // 7
			0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
			0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
			0xF0, 0x90, 0xF0, 0x90, 0x90, // A
			0xF0, 0x50, 0x70, 0x50, 0xF0, // B
			0xF0, 0x80, 0x80, 0x80, 0xF0, // C
			0xF0, 0x50, 0x50, 0x50, 0xF0, // D
			0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
			0xF0, 0x80, 0xF0, 0x80, 0x80, // F
		},
	},
	DREAM6800: {
		ID:   DREAM6800,
		Name: "dream6800",
		Data: []byte{
			0xE0, 0xA0, 0xA0, 0xA0, 0xE0, // 0
			0x40, 0x40, 0x40, 0x40, 0x40, // 1
			0xE0, 0x20, 0xE0, 0x80, 0xE0, // 2
			0xE0, 0x20, 0xE0, 0x20, 0xE0, // 3
			0x80, 0xA0, 0xA0, 0xE0, 0x20, // 4
			0xE0, 0x80, 0xE0, 0x20, 0xE0, // 5
			0xE0, 0x80, 0xE0, 0xA0, 0xE0, // 6
			0xE0, 0x20, 0x20, 0x20, 0x20, // 7
			0xE0, 0xA0, 0xE0, 0xA0, 0xE0, // 8
			0xE0, 0xA0, 0xE0, 0x20, 0xE0, // 9
			0xE0, 0xA0, 0xE0, 0xA0, 0xA0, // A
			0xC0, 0xA0, 0xE0, 0xA0, 0xC0, // B
			0xE0, 0x80, 0x80, 0x80, 0xE0, // C
			0xC0, 0xA0, 0xA0, 0xA0, 0xC0, // D
			0xE0, 0x80, 0xE0, 0x80, 0xE0, // E
			0xE0, 0x80, 0xC0, 0x80, 0x80, // F
		},
	},
	ETI660: {
		ID:   ETI660,
		Name: "eti660",
		Data: []byte{
			0xE0, 0xA0, 0xA0, 0xA0, 0xE0, // 0
			0x20, 0x20, 0x20, 0x20, 0x20, // 1
			0xE0, 0x20, 0xE0, 0x80, 0xE0, // 2
			0xE0, 0x20, 0xE0, 0x20, 0xE0, // 3
			0xA0, 0xA0, 0xE0, 0x20, 0x20, // 4
			0xE0, 0x80, 0xE0, 0x20, 0xE0, // 5
			0xE0, 0x80, 0xE0, 0xA0, 0xE0, // 6
			0xE0, 0x20, 0x20, 0x20, 0x20, // 7
			0xE0, 0xA0, 0xE0, 0xA0, 0xE0, // 8
			0xE0, 0xA0, 0xE0, 0x20, 0xE0, // 9
			0xE0, 0xA0, 0xE0, 0xA0, 0xA0, // A
			0x80, 0x80, 0xE0, 0xA0, 0xE0, // B
			0xE0, 0x80, 0x80, 0x80, 0xE0, // C
			0x20, 0x20, 0xE0, 0xA0, 0xE0, // D
			0xE0, 0x80, 0xE0, 0x80, 0xE0, // E
			0xE0, 0x80, 0xC0, 0x80, 0x80, // F
		},
	},
}

// Get returns the glyph set for the given id. The returned data is a copy.
func Get(id ID) (Set, error) {
	if id < 0 || id >= count {
		return Set{}, fmt.Errorf("%w: %d", ErrUnknownFont, id)
	}
	set := sets[id]
	set.Data = append([]byte(nil), set.Data...)
	return set, nil
}

// ByName returns the id of the glyph set with the given case insensitive name.
func ByName(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, set := range sets {
		if set.Name == name {
			return set.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: '%s'", ErrUnknownFont, name)
}

// Names returns the names of all glyph sets.
func Names() []string {
	names := make([]string, 0, len(sets))
	for _, set := range sets {
		names = append(names, set.Name)
	}
	return names
}

// String returns the name of the glyph set.
func (id ID) String() string {
	if id < 0 || id >= count {
		return fmt.Sprintf("font(%d)", int(id))
	}
	return sets[id].Name
}
