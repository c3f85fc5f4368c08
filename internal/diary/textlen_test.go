package diary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextLength(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"sunrise", 7},
		{"a\nb", 3},
		{"今日は晴れ", 5},
		{"😀", 2},
		{"😀😀😀😀", 8},
		{"tea 🍵", 6},
		{"👍🏽", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TextLength(tt.text), "%q", tt.text)
	}
}

func TestClipText(t *testing.T) {
	assert.Equal(t, "abc", ClipText("abcdef", 3))
	assert.Equal(t, "abcdef", ClipText("abcdef", 30))
	assert.Equal(t, "", ClipText("abc", 0))
	assert.Equal(t, "日日日", ClipText("日日日日", 3))
	// An emoji that would cross the limit is dropped whole.
	assert.Equal(t, "ab", ClipText("ab😀", 3))
	assert.Equal(t, "ab😀", ClipText("ab😀c", 4))

	long := strings.Repeat("😀", MaxTextLength)
	assert.Equal(t, MaxTextLength, TextLength(ClipText(long, MaxTextLength)))
}
