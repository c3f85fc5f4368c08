package calendar

import (
	"strings"

	"github.com/treykane/cli-diary/internal/diary"
)

// TextAlign is the horizontal alignment of entry text inside a cell.
type TextAlign string

const (
	AlignCenter TextAlign = "center"
	AlignLeft   TextAlign = "left"
)

// Style is the font size, line height and alignment used for a cell's text.
// Sizes are in layout points.
type Style struct {
	FontSize   float64
	LineHeight float64
	Align      TextAlign
}

// DefaultStyle applies to cells with no text.
var DefaultStyle = Style{FontSize: 10, LineHeight: 10, Align: AlignCenter}

// MinimumFontScale is how far a forced single-line cell may shrink its font to
// fit, relative to the computed size.
const MinimumFontScale = 0.5

// singleLineMaxLen is the longest text that is pinned to a single line.
const singleLineMaxLen = 7

// PresentationStyle picks a style that keeps diary text of any length
// balanced within a fixed-size cell. Newline count is checked first, then
// length. Length is diary.TextLength, newlines included, so most emoji count
// as two.
func PresentationStyle(text string) Style {
	newlines := strings.Count(text, "\n")
	length := diary.TextLength(text)

	switch {
	case newlines >= 3:
		return Style{FontSize: 5, LineHeight: 6.5, Align: AlignCenter}
	case newlines >= 2:
		return Style{FontSize: 6.5, LineHeight: 8, Align: AlignCenter}
	case length <= 7:
		return Style{FontSize: 9, LineHeight: 12, Align: AlignCenter}
	case length <= 16:
		return Style{FontSize: 8, LineHeight: 11, Align: AlignCenter}
	case length <= 25:
		return Style{FontSize: 7, LineHeight: 10, Align: AlignCenter}
	default:
		return Style{FontSize: 6, LineHeight: 8, Align: AlignCenter}
	}
}

// CellStyle is what a cell renderer calls: empty text gets DefaultStyle,
// anything else goes through PresentationStyle.
func CellStyle(text string) Style {
	if text == "" {
		return DefaultStyle
	}
	return PresentationStyle(text)
}

// ForceSingleLine reports whether text must render on exactly one line,
// shrinking down to MinimumFontScale instead of wrapping.
func ForceSingleLine(text string) bool {
	return diary.TextLength(text) <= singleLineMaxLen && !strings.Contains(text, "\n")
}

// SizeBoost is the extra font size and line height the larger grid modes
// give their cells.
func SizeBoost(mode GridMode) float64 {
	switch mode {
	case ModeWeekly:
		return 2.5
	case ModeSequential:
		return 1
	default:
		return 0
	}
}

// Boosted returns s enlarged for the given grid mode.
func (s Style) Boosted(mode GridMode) Style {
	boost := SizeBoost(mode)
	s.FontSize += boost
	s.LineHeight += boost
	return s
}

// MinFontSize is the smallest size a forced single-line cell may shrink to.
func (s Style) MinFontSize() float64 {
	return s.FontSize * MinimumFontScale
}
