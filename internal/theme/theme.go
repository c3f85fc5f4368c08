// Package theme holds the fixed colour tables behind each palette choice.
//
// A Selection (palette key plus light/dark flag) resolves to a Colors table by
// plain lookup; nothing is derived.
package theme

import (
	"fmt"
	"strings"
)

// Key names a colour palette.
type Key string

const (
	Mono   Key = "mono"
	Linen  Key = "linen"
	Ice    Key = "ice"
	Azalea Key = "azalea"
	Rose   Key = "rose"
	Lilac  Key = "lilac"
)

// DefaultKey is the palette used before the user picks one.
const DefaultKey = Linen

// Colors is one resolved palette. Values are CSS hex strings, some with an
// alpha byte (#RRGGBBAA).
type Colors struct {
	Bg          string `json:"bg"`
	Text        string `json:"text"`
	SubText     string `json:"subText"`
	Border      string `json:"border"`
	ModalBg     string `json:"modalBg"`
	InputBg     string `json:"inputBg"`
	Accent      string `json:"accent"`
	WeekText    string `json:"weekText"`
	SundayText  string `json:"sundayText"`
	CellBg      string `json:"cellBg"`
	Placeholder string `json:"placeholder"`
	ActiveMenu  string `json:"activeMenu"`
}

// Selection is the persisted theme choice.
type Selection struct {
	Key  Key
	Dark bool
}

type palette struct {
	swatch string
	light  Colors
	dark   Colors
}

var order = []Key{Mono, Linen, Ice, Azalea, Rose, Lilac}

var palettes = map[Key]palette{
	Mono: {
		swatch: "#52525B",
		light: Colors{
			Bg: "#FAFAFA", Text: "#333333", SubText: "#A1A1AA", Border: "#E4E4E7",
			ModalBg: "#FFFFFF", InputBg: "#F4F4F5", Accent: "#3F3F46", WeekText: "#D4D4D8",
			SundayText: "#FCA5A5", CellBg: "#FFFFFF", Placeholder: "#F4F4F5", ActiveMenu: "#18181B",
		},
		dark: Colors{
			Bg: "#18181B", Text: "#E4E4E7", SubText: "#71717A", Border: "#27272A",
			ModalBg: "#18181B", InputBg: "#27272A", Accent: "#FAFAFA", WeekText: "#3F3F46",
			SundayText: "#9F1239", CellBg: "#18181B", Placeholder: "#27272A", ActiveMenu: "#E4E4E7",
		},
	},
	Linen: {
		swatch: "#FAEEE5",
		light: Colors{
			Bg: "#FAEEE5", Text: "#5D4037", SubText: "#A1887F", Border: "#E6D0C5",
			ModalBg: "#FFFAF8", InputBg: "#FFF5F0", Accent: "#8D6E63", WeekText: "#BCAAA4",
			SundayText: "#B0898880", CellBg: "#FFFFFF", Placeholder: "#FFF5F0", ActiveMenu: "#5D4037",
		},
		dark: Colors{
			Bg: "#3E2723", Text: "#D7CCC8", SubText: "#A1887F", Border: "#5D4037",
			ModalBg: "#4E342E", InputBg: "#5D4037", Accent: "#BCAAA4", WeekText: "#5D4037",
			SundayText: "#B0898880", CellBg: "#2D1B18", Placeholder: "#4E342E", ActiveMenu: "#D7CCC8",
		},
	},
	Ice: {
		swatch: "#C9E6EE",
		light: Colors{
			Bg: "#C9E6EE", Text: "#37474F", SubText: "#78909C", Border: "#B0D4DE",
			ModalBg: "#E3F2F6", InputBg: "#E1F5FE", Accent: "#546E7A", WeekText: "#90A4AE",
			SundayText: "#9FA6B080", CellBg: "#FFFFFF", Placeholder: "#E1F5FE", ActiveMenu: "#263238",
		},
		dark: Colors{
			Bg: "#263238", Text: "#ECEFF1", SubText: "#90A4AE", Border: "#37474F",
			ModalBg: "#37474F", InputBg: "#455A64", Accent: "#80CBC4", WeekText: "#455A64",
			SundayText: "#B0A0A080", CellBg: "#1F292E", Placeholder: "#37474F", ActiveMenu: "#80CBC4",
		},
	},
	Azalea: {
		swatch: "#FAD1D8",
		light: Colors{
			Bg: "#FAD1D8", Text: "#880E4F", SubText: "#BC477B", Border: "#F4B0C0",
			ModalBg: "#FFF0F5", InputBg: "#FFEBEE", Accent: "#C2185B", WeekText: "#F06292",
			SundayText: "#B0889080", CellBg: "#FFFFFF", Placeholder: "#FFEBEE", ActiveMenu: "#880E4F",
		},
		dark: Colors{
			Bg: "#4A081F", Text: "#F8BBD0", SubText: "#D81B60", Border: "#880E4F",
			ModalBg: "#650F2C", InputBg: "#880E4F", Accent: "#F48FB1", WeekText: "#880E4F",
			SundayText: "#D8A0B080", CellBg: "#380617", Placeholder: "#650F2C", ActiveMenu: "#F8BBD0",
		},
	},
	Rose: {
		swatch: "#F2C4D6",
		light: Colors{
			Bg: "#F2C4D6", Text: "#4A4A4A", SubText: "#8D6E63", Border: "#E1A4BC",
			ModalBg: "#FFF5F8", InputBg: "#FCE4EC", Accent: "#BA68C8", WeekText: "#BA68C8",
			SundayText: "#B0889080", CellBg: "#FFFFFF", Placeholder: "#FCE4EC", ActiveMenu: "#4A4A4A",
		},
		dark: Colors{
			Bg: "#29181D", Text: "#F2C4D6", SubText: "#BA68C8", Border: "#4A2A36",
			ModalBg: "#3D222A", InputBg: "#4A2A36", Accent: "#F48FB1", WeekText: "#4A2A36",
			SundayText: "#D8A0B080", CellBg: "#1F1216", Placeholder: "#3D222A", ActiveMenu: "#F2C4D6",
		},
	},
	Lilac: {
		swatch: "#DBC0E7",
		light: Colors{
			Bg: "#DBC0E7", Text: "#4A148C", SubText: "#7B1FA2", Border: "#C09ADB",
			ModalBg: "#F3E5F5", InputBg: "#F3E5F5", Accent: "#8E24AA", WeekText: "#AB47BC",
			SundayText: "#A090B080", CellBg: "#FFFFFF", Placeholder: "#F3E5F5", ActiveMenu: "#4A148C",
		},
		dark: Colors{
			Bg: "#200A2E", Text: "#E1BEE7", SubText: "#9C27B0", Border: "#4A148C",
			ModalBg: "#311045", InputBg: "#4A148C", Accent: "#CE93D8", WeekText: "#4A148C",
			SundayText: "#C0B0D080", CellBg: "#15061F", Placeholder: "#311045", ActiveMenu: "#E1BEE7",
		},
	},
}

// Keys returns every palette key in menu order.
func Keys() []Key {
	return append([]Key(nil), order...)
}

// ParseKey validates a palette name.
func ParseKey(value string) (Key, error) {
	key := Key(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := palettes[key]; !ok {
		return "", fmt.Errorf("unknown theme %q", value)
	}
	return key, nil
}

// NextKey cycles to the following palette, wrapping around. Unknown keys
// restart at the first palette.
func NextKey(key Key) Key {
	for i, k := range order {
		if k == key {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// Swatch returns the colour shown for the palette in a picker.
func Swatch(key Key) string {
	return palettes[key].swatch
}

// Resolve returns the colour table for a selection. Unknown keys resolve to
// DefaultKey.
func Resolve(sel Selection) Colors {
	p, ok := palettes[sel.Key]
	if !ok {
		p = palettes[DefaultKey]
	}
	if sel.Dark {
		return p.dark
	}
	return p.light
}

// Solid strips the alpha byte from an 8-digit hex colour so terminals, which
// cannot blend, still get a usable colour.
func Solid(hex string) string {
	if len(hex) == 9 && strings.HasPrefix(hex, "#") {
		return hex[:7]
	}
	return hex
}
