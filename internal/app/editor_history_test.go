package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func newFocusedEditModel(t *testing.T, value string) *Model {
	t.Helper()
	m := newTestModel(t, nil)
	m.startEditText()
	m.editor.SetValue(value)
	return m
}

func TestTypingBurstCoalescesIntoSingleUndoStep(t *testing.T) {
	m := newFocusedEditModel(t, "x")

	typeText(t, m, "ab")
	if got := len(m.editorUndo); got != 1 {
		t.Fatalf("expected one undo snapshot for typing burst, got %d", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.editor.Value(); got != "x" {
		t.Fatalf("expected undo to remove burst edits, got %q", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.editor.Value(); got != "xab" {
		t.Fatalf("expected redo to restore burst edits, got %q", got)
	}
}

func TestTypingBurstSplitsAfterIdleWindow(t *testing.T) {
	m := newFocusedEditModel(t, "x")
	clock := testNow
	m.now = func() time.Time { return clock }

	typeText(t, m, "a")
	clock = clock.Add(typingBurstIdleWindow + time.Millisecond)
	typeText(t, m, "b")

	if got := len(m.editorUndo); got != 2 {
		t.Fatalf("expected two undo snapshots after idle gap, got %d", got)
	}
	m.undoEditorChange()
	if got := m.editor.Value(); got != "xa" {
		t.Fatalf("expected first undo to remove only the second burst, got %q", got)
	}
}

func TestUndoRedoEmptyStacks(t *testing.T) {
	m := newFocusedEditModel(t, "")

	m.undoEditorChange()
	if m.status != "Nothing to undo" {
		t.Fatalf("unexpected status %q", m.status)
	}
	m.redoEditorChange()
	if m.status != "Nothing to redo" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestNewEditClearsRedoChain(t *testing.T) {
	m := newFocusedEditModel(t, "x")
	typeText(t, m, "a")
	m.undoEditorChange()
	typeText(t, m, "b")

	if len(m.editorRedo) != 0 {
		t.Fatalf("expected redo chain to be cleared, got %d entries", len(m.editorRedo))
	}
}

func TestStartEditResetsHistory(t *testing.T) {
	m := newFocusedEditModel(t, "x")
	typeText(t, m, "a")
	m.dispatch(CloseModal{})

	m.startEditText()
	if len(m.editorUndo) != 0 || len(m.editorRedo) != 0 {
		t.Fatal("expected a fresh edit to start with empty history")
	}
}

func TestUndoStackIsBounded(t *testing.T) {
	m := newFocusedEditModel(t, "")
	for i := 0; i < maxEditorUndo+10; i++ {
		m.recordDiscreteEdit("a", "b")
	}
	if got := len(m.editorUndo); got != maxEditorUndo {
		t.Fatalf("expected %d undo entries, got %d", maxEditorUndo, got)
	}
}
