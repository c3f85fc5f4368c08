package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-diary/internal/diary"
)

// handleBrowseKey routes key presses while no modal is open.
func (m *Model) handleBrowseKey(key string) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch m.actionForKey(key) {
		case actionHelp:
			m.showHelp = false
			return m, nil
		case actionQuit:
			return m, tea.Quit
		}
		if key == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	cols := m.state.Settings.GridMode.Columns()
	switch m.actionForKey(key) {
	case actionQuit:
		return m, tea.Quit
	case actionHelp:
		m.showHelp = true
		return m, nil
	case actionMoveLeft:
		return m.moveSelection(-1)
	case actionMoveRight:
		return m.moveSelection(1)
	case actionMoveUp:
		return m.moveSelection(-cols)
	case actionMoveDown:
		return m.moveSelection(cols)
	case actionPrevMonth:
		return m.changeMonth(PrevMonth{})
	case actionNextMonth:
		return m.changeMonth(NextMonth{})
	case actionToday:
		now := m.now()
		m.dispatch(JumpMonth{Year: now.Year(), Month: now.Month()})
		m.dispatch(SelectDay{Day: now.Day()})
		m.status = "Today"
		return m, m.requestDetailRender()
	case actionJumpMonth:
		return m, m.startJumpMonth()
	case actionGridMode:
		m.dispatch(CycleGridMode{})
		m.persistSettings()
		m.updateLayout()
		m.status = "Grid: " + m.state.Settings.GridMode.Label()
		return m, nil
	case actionTheme:
		m.dispatch(CycleTheme{})
		m.persistSettings()
		applyEditorTheme(&m.editor, m.styles())
		m.status = "Theme: " + string(m.state.Settings.Theme)
		return m, nil
	case actionDark:
		m.dispatch(ToggleDark{})
		m.persistSettings()
		applyEditorTheme(&m.editor, m.styles())
		m.status = "Dark mode " + onOff(m.state.Settings.DarkMode)
		return m, nil
	case actionPhotoOnly:
		m.dispatch(TogglePhotoOnly{})
		m.persistSettings()
		m.status = "Photo-only " + onOff(m.state.Settings.PhotoOnly)
		return m, nil
	case actionEditText:
		return m.startEditText()
	case actionEditImage:
		return m, m.startEditImage()
	case actionDelete:
		if _, ok := m.state.SelectedEntry(); !ok {
			m.status = "Nothing to delete on " + displayDate(m.state.SelectedKey())
			return m, nil
		}
		m.dispatch(OpenModal{Modal: ModalConfirmDelete})
		m.status = "Delete entry for " + displayDate(m.state.SelectedKey()) + "? (y/n)"
		return m, nil
	case actionCopy:
		m.copySelectedEntryText()
		return m, nil
	case actionExportHTML:
		return m.startExport(false)
	case actionExportPDF:
		return m.startExport(true)
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) (tea.Model, tea.Cmd) {
	before := m.state.Day
	m.dispatch(MoveSelection{Delta: delta})
	if m.state.Day == before {
		return m, nil
	}
	return m, m.requestDetailRender()
}

func (m *Model) changeMonth(a Action) (tea.Model, tea.Cmd) {
	m.dispatch(a)
	m.updateLayout()
	m.status = fmt.Sprintf("%s %d", m.state.Month, m.state.Year)
	return m, m.requestDetailRender()
}

func (m *Model) startEditText() (tea.Model, tea.Cmd) {
	entry, _ := m.state.SelectedEntry()
	m.dispatch(OpenModal{Modal: ModalEditText})
	m.editor.Reset()
	m.editor.SetValue(entry.Text)
	m.resetEditHistory()
	m.status = "Editing " + displayDate(m.state.SelectedKey())
	return m, m.editor.Focus()
}

func (m *Model) startEditImage() tea.Cmd {
	entry, _ := m.state.SelectedEntry()
	m.dispatch(OpenModal{Modal: ModalEditImage})
	m.input.Reset()
	m.input.CharLimit = ImageCharLimit
	m.input.Placeholder = "https://... or /path/to/photo.jpg"
	m.input.SetValue(entry.Image)
	m.input.CursorEnd()
	m.status = "Image for " + displayDate(m.state.SelectedKey())
	return m.input.Focus()
}

func (m *Model) startJumpMonth() tea.Cmd {
	m.dispatch(OpenModal{Modal: ModalJumpMonth})
	m.input.Reset()
	m.input.CharLimit = MonthCharLimit
	m.input.Placeholder = "YYYY-MM"
	m.input.SetValue(fmt.Sprintf("%04d-%02d", m.state.Year, int(m.state.Month)))
	m.input.CursorEnd()
	m.status = "Jump to month"
	return m.input.Focus()
}

// handleEditTextKey drives the text editor modal.
func (m *Model) handleEditTextKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.saveText(m.editor.Value())
	case "esc":
		m.editor.Blur()
		m.dispatch(CloseModal{})
		m.status = "Edit cancelled"
		return m, nil
	case "ctrl+z":
		m.undoEditorChange()
		return m, nil
	case "ctrl+y":
		m.redoEditorChange()
		return m, nil
	case "ctrl+v":
		m.pasteIntoEditor()
		return m, nil
	}
	msg, ok := m.limitEditorInput(msg)
	if !ok {
		return m, nil
	}
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if diary.TextLength(m.editor.Value()) > diary.MaxTextLength {
		m.editor.SetValue(diary.ClipText(m.editor.Value(), diary.MaxTextLength))
	}
	m.recordTypingEdit(before, m.editor.Value(), m.now())
	return m, cmd
}

// editorRoom is how much more text the editor accepts, by diary.TextLength.
func (m *Model) editorRoom() int {
	return max(0, diary.MaxTextLength-diary.TextLength(m.editor.Value()))
}

// limitEditorInput cuts typed or pasted runes to the room left in the editor.
// ok is false when the key would only add text and there is no room.
func (m *Model) limitEditorInput(msg tea.KeyMsg) (tea.KeyMsg, bool) {
	room := m.editorRoom()
	switch msg.Type {
	case tea.KeyRunes:
		clipped := diary.ClipText(string(msg.Runes), room)
		if clipped == "" {
			return msg, false
		}
		msg.Runes = []rune(clipped)
	case tea.KeySpace, tea.KeyEnter:
		if room == 0 {
			return msg, false
		}
	}
	return msg, true
}

// handleEditImageKey drives the image reference modal.
func (m *Model) handleEditImageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "ctrl+s":
		return m.saveImage(strings.TrimSpace(m.input.Value()))
	case "esc":
		m.input.Blur()
		m.dispatch(CloseModal{})
		m.status = "Image unchanged"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleJumpMonthKey drives the jump-to-month modal.
func (m *Model) handleJumpMonthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		year, month, err := parseYearMonth(m.input.Value())
		if err != nil {
			m.status = "Use YYYY-MM, e.g. 2025-03"
			return m, nil
		}
		m.input.Blur()
		m.dispatch(JumpMonth{Year: year, Month: month})
		m.updateLayout()
		m.status = fmt.Sprintf("%s %d", m.state.Month, m.state.Year)
		return m, m.requestDetailRender()
	case "esc":
		m.input.Blur()
		m.dispatch(CloseModal{})
		m.status = "Jump cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleConfirmDeleteKey asks before removing the selected entry.
func (m *Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.deleteSelectedEntry()
	case "n", "N", "esc":
		m.dispatch(CloseModal{})
		m.status = "Delete cancelled"
	}
	return m, nil
}

func (m *Model) saveText(text string) (tea.Model, tea.Cmd) {
	entry, _ := m.state.SelectedEntry()
	entry = entry.Clone()
	entry.Text = text
	return m.commitEntry(entry, "Saved "+displayDate(m.state.SelectedKey()))
}

func (m *Model) saveImage(image string) (tea.Model, tea.Cmd) {
	entry, _ := m.state.SelectedEntry()
	entry = entry.Clone()
	entry.Image = image
	status := "Image set for " + displayDate(m.state.SelectedKey())
	if image == "" {
		status = "Image cleared for " + displayDate(m.state.SelectedKey())
	}
	return m.commitEntry(entry, status)
}

// commitEntry validates and stores entry for the selected day. An entry left
// with neither text nor image is removed instead of stored.
func (m *Model) commitEntry(entry diary.Entry, status string) (tea.Model, tea.Cmd) {
	key := m.state.SelectedKey()
	if entry.IsEmpty() {
		if _, ok := m.state.SelectedEntry(); !ok {
			m.editor.Blur()
			m.input.Blur()
			m.dispatch(CloseModal{})
			m.status = "Nothing to save"
			return m, nil
		}
		return m.deleteSelectedEntry()
	}
	if err := entry.Validate(); err != nil {
		m.setStatusError("Entry not saved: "+err.Error(), err, "key", key)
		return m, nil
	}
	if err := m.store.Put(key, entry); err != nil {
		m.setStatusError("Error saving entry", err, "key", key)
		return m, nil
	}
	m.syncFileWatch()
	m.editor.Blur()
	m.input.Blur()
	m.dispatch(EntrySaved{Key: key, Entry: entry})
	m.status = status
	return m, m.requestDetailRender()
}

func (m *Model) deleteSelectedEntry() (tea.Model, tea.Cmd) {
	key := m.state.SelectedKey()
	if err := m.store.Delete(key); err != nil {
		m.dispatch(CloseModal{})
		m.setStatusError("Error deleting entry", err, "key", key)
		return m, nil
	}
	m.syncFileWatch()
	m.editor.Blur()
	m.input.Blur()
	m.dispatch(EntryDeleted{Key: key})
	m.status = "Deleted " + displayDate(key)
	return m, m.requestDetailRender()
}

// parseYearMonth accepts "YYYY-MM" or "YYYY-M".
func parseYearMonth(value string) (int, time.Month, error) {
	yearPart, monthPart, ok := strings.Cut(strings.TrimSpace(value), "-")
	if !ok {
		return 0, 0, fmt.Errorf("want YYYY-MM, got %q", value)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil || len(yearPart) != 4 {
		return 0, 0, fmt.Errorf("invalid year %q", yearPart)
	}
	month, err := strconv.Atoi(monthPart)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %q", monthPart)
	}
	return year, time.Month(month), nil
}

func displayDate(key diary.DateKey) string {
	t, ok := key.Time()
	if !ok {
		return string(key)
	}
	return t.Format("Mon 2 Jan 2006")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
