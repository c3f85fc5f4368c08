package calendar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresentationStyle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Style
	}{
		{name: "empty", text: "", want: Style{FontSize: 9, LineHeight: 12, Align: AlignCenter}},
		{name: "seven chars", text: "sunrise", want: Style{FontSize: 9, LineHeight: 12, Align: AlignCenter}},
		{name: "eight chars", text: "sunrises", want: Style{FontSize: 8, LineHeight: 11, Align: AlignCenter}},
		{name: "sixteen chars", text: strings.Repeat("a", 16), want: Style{FontSize: 8, LineHeight: 11, Align: AlignCenter}},
		{name: "seventeen chars", text: strings.Repeat("a", 17), want: Style{FontSize: 7, LineHeight: 10, Align: AlignCenter}},
		{name: "twenty five chars", text: strings.Repeat("a", 25), want: Style{FontSize: 7, LineHeight: 10, Align: AlignCenter}},
		{name: "twenty six chars", text: strings.Repeat("a", 26), want: Style{FontSize: 6, LineHeight: 8, Align: AlignCenter}},
		{name: "three newlines", text: "A\nB\nC\nD", want: Style{FontSize: 5, LineHeight: 6.5, Align: AlignCenter}},
		{name: "three newlines long", text: strings.Repeat("x", 40) + "\n\n\n", want: Style{FontSize: 5, LineHeight: 6.5, Align: AlignCenter}},
		{name: "two newlines", text: "A\nB\nC", want: Style{FontSize: 6.5, LineHeight: 8, Align: AlignCenter}},
		{name: "one newline counts as a character", text: "abc\ndefg", want: Style{FontSize: 8, LineHeight: 11, Align: AlignCenter}},
		{name: "one newline short", text: "abc\ndef", want: Style{FontSize: 9, LineHeight: 12, Align: AlignCenter}},
		{name: "multibyte counted as characters", text: "今日は晴れでした", want: Style{FontSize: 8, LineHeight: 11, Align: AlignCenter}},
		{name: "seven multibyte", text: "今日は晴れだね", want: Style{FontSize: 9, LineHeight: 12, Align: AlignCenter}},
		{name: "four emoji count as eight", text: "😀😀😀😀", want: Style{FontSize: 8, LineHeight: 11, Align: AlignCenter}},
		{name: "three emoji count as six", text: "😀😀😀", want: Style{FontSize: 9, LineHeight: 12, Align: AlignCenter}},
		{name: "thirteen emoji count as twenty six", text: strings.Repeat("🌸", 13), want: Style{FontSize: 6, LineHeight: 8, Align: AlignCenter}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PresentationStyle(tt.text))
		})
	}
}

func TestCellStyleUsesDefaultForEmptyText(t *testing.T) {
	assert.Equal(t, DefaultStyle, CellStyle(""))
	assert.Equal(t, Style{FontSize: 10, LineHeight: 10, Align: AlignCenter}, CellStyle(""))
	// Both call sites agree for any non-empty text.
	for _, text := range []string{"a", "hello world", "A\nB\nC\nD"} {
		assert.Equal(t, PresentationStyle(text), CellStyle(text))
	}
}

func TestForceSingleLine(t *testing.T) {
	assert.True(t, ForceSingleLine(""))
	assert.True(t, ForceSingleLine("1234567"))
	assert.False(t, ForceSingleLine("12345678"))
	assert.False(t, ForceSingleLine("a\nb"))
	assert.True(t, ForceSingleLine("今日は晴れだね"))
	assert.True(t, ForceSingleLine("😀😀😀"))
	assert.False(t, ForceSingleLine("😀😀😀😀"))
	assert.False(t, ForceSingleLine("sunny☀️🌈"))

	style := PresentationStyle("1234567")
	assert.Equal(t, 9.0, style.FontSize)
	assert.Equal(t, 12.0, style.LineHeight)
	assert.Equal(t, 4.5, style.MinFontSize())
}

func TestBoosted(t *testing.T) {
	base := PresentationStyle("sunrise")
	assert.Equal(t, base, base.Boosted(ModeStandard))
	assert.Equal(t, Style{FontSize: 10, LineHeight: 13, Align: AlignCenter}, base.Boosted(ModeSequential))
	assert.Equal(t, Style{FontSize: 11.5, LineHeight: 14.5, Align: AlignCenter}, base.Boosted(ModeWeekly))
}
