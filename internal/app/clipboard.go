package app

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/treykane/cli-diary/internal/diary"
)

// copySelectedEntryText copies the selected day's text to the system
// clipboard.
func (m *Model) copySelectedEntryText() {
	entry, _ := m.state.SelectedEntry()
	if entry.Text == "" {
		m.status = "No text to copy on " + displayDate(m.state.SelectedKey())
		return
	}
	if err := m.clipboardWrite(entry.Text); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.status = fmt.Sprintf("Copied entry text (%d chars)", diary.TextLength(entry.Text))
}

// pasteIntoEditor inserts clipboard text at the editor cursor, cut to the
// room left under diary.MaxTextLength.
func (m *Model) pasteIntoEditor() {
	value, err := m.clipboardRead()
	if err != nil {
		m.setStatusError("Clipboard paste failed", err)
		return
	}
	if value == "" {
		m.status = "Clipboard is empty"
		return
	}
	before := m.editor.Value()
	clipped := diary.ClipText(value, m.editorRoom())
	if clipped == "" {
		m.status = fmt.Sprintf("Text is at the %d character limit", diary.MaxTextLength)
		return
	}
	m.editor.InsertString(clipped)
	m.recordDiscreteEdit(before, m.editor.Value())
	m.status = "Pasted from clipboard"
	if clipped != value {
		m.status += fmt.Sprintf(" (cut to %d characters)", diary.MaxTextLength)
	}
}

func systemClipboardWrite(text string) error {
	return clipboard.WriteAll(text)
}

func systemClipboardRead() (string, error) {
	return clipboard.ReadAll()
}
