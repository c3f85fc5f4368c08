package app

import (
	"time"
)

const typingBurstIdleWindow = 750 * time.Millisecond

// maxEditorUndo bounds the undo stack. Entries are short, so this is plenty.
const maxEditorUndo = 64

func (m *Model) resetEditHistory() {
	m.editorUndo = nil
	m.editorRedo = nil
	m.typingBurstActive = false
	m.typingBurstLastInputAt = time.Time{}
}

func (m *Model) pushUndo(value string) {
	m.editorUndo = append(m.editorUndo, value)
	if len(m.editorUndo) > maxEditorUndo {
		m.editorUndo = m.editorUndo[len(m.editorUndo)-maxEditorUndo:]
	}
	// Any forward edit invalidates the redo chain.
	m.editorRedo = nil
}

func (m *Model) finalizeTypingBurstBoundary() {
	m.typingBurstActive = false
	m.typingBurstLastInputAt = time.Time{}
}

// recordDiscreteEdit stores one undo step for an edit such as a paste.
func (m *Model) recordDiscreteEdit(before, after string) {
	if before == after {
		return
	}
	m.finalizeTypingBurstBoundary()
	m.pushUndo(before)
}

// recordTypingEdit coalesces keystrokes typed within typingBurstIdleWindow of
// each other into a single undo step.
func (m *Model) recordTypingEdit(before, after string, now time.Time) {
	if before == after {
		return
	}
	if !m.typingBurstActive || now.Sub(m.typingBurstLastInputAt) > typingBurstIdleWindow {
		m.pushUndo(before)
	}
	m.typingBurstActive = true
	m.typingBurstLastInputAt = now
}

func (m *Model) undoEditorChange() {
	m.finalizeTypingBurstBoundary()
	if len(m.editorUndo) == 0 {
		m.status = "Nothing to undo"
		return
	}
	last := m.editorUndo[len(m.editorUndo)-1]
	m.editorUndo = m.editorUndo[:len(m.editorUndo)-1]
	m.editorRedo = append(m.editorRedo, m.editor.Value())
	m.editor.SetValue(last)
	m.status = "Undid edit"
}

func (m *Model) redoEditorChange() {
	m.finalizeTypingBurstBoundary()
	if len(m.editorRedo) == 0 {
		m.status = "Nothing to redo"
		return
	}
	next := m.editorRedo[len(m.editorRedo)-1]
	m.editorRedo = m.editorRedo[:len(m.editorRedo)-1]
	m.editorUndo = append(m.editorUndo, m.editor.Value())
	m.editor.SetValue(next)
	m.status = "Redid edit"
}
