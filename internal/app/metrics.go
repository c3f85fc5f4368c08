package app

import (
	"fmt"
	"strings"

	"github.com/treykane/cli-diary/internal/diary"
)

type entryMetrics struct {
	words int
	chars int
	lines int
}

// currentTextForMetrics is the editor buffer while editing, otherwise the
// stored text of the selected entry.
func (m *Model) currentTextForMetrics() string {
	if m.state.Modal == ModalEditText {
		return m.editor.Value()
	}
	entry, _ := m.state.SelectedEntry()
	return entry.Text
}

func computeEntryMetrics(content string) entryMetrics {
	if content == "" {
		return entryMetrics{}
	}
	return entryMetrics{
		words: len(strings.Fields(content)),
		chars: diary.TextLength(content),
		lines: strings.Count(content, "\n") + 1,
	}
}

// entryMetricsSummary reports length against the text limit, e.g.
// "C:12/30 W:3 L:1".
func (m *Model) entryMetricsSummary() string {
	content := m.currentTextForMetrics()
	if content == "" && m.state.Modal != ModalEditText {
		return ""
	}
	metrics := computeEntryMetrics(content)
	return fmt.Sprintf("C:%d/%d W:%d L:%d", metrics.chars, diary.MaxTextLength, metrics.words, metrics.lines)
}
