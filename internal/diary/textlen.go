package diary

import "unicode/utf8"

// TextLength counts text the way the entry limit and the cell sizing rules
// do: in UTF-16 code units, so characters outside the Basic Multilingual
// Plane (most emoji) count as two.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

// ClipText returns the longest prefix of s whose TextLength is at most limit.
// A character that would straddle the limit is dropped whole.
func ClipText(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i, r := range s {
		n += runeUnits(r)
		if n > limit {
			return s[:i]
		}
	}
	return s
}

func runeUnits(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}
