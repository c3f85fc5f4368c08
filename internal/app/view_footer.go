package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	style := m.styles().status
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, style.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

// buildStatusRows packs the key hints, context and status message into at
// most rowLimit rows of width columns. fit is false when something had to be
// cut.
func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	context := m.statusContextSegments()
	status := m.statusMessageSegment()

	segments := make([]string, 0, len(help)+len(context)+2)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}
	if len(context) > 0 {
		segments = append(segments, "Context: "+context[0])
		segments = append(segments, context[1:]...)
	}
	if status != "" {
		segments = append(segments, "Status: "+status)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segment := seg
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		if rows[rowIndex] == "" {
			rows[rowIndex] = truncateWithEllipsis(segment, width)
		} else {
			rows[rowIndex] = truncateWithEllipsis(rows[rowIndex]+" | "+segment, width)
		}
		break
	}
	return rows, fit
}

func (m *Model) statusHelpSegments() []string {
	switch m.state.Modal {
	case ModalEditText:
		return []string{"Ctrl+S save", "Esc cancel", "Ctrl+Z/Ctrl+Y undo/redo", "Ctrl+V paste", "30 characters max"}
	case ModalEditImage, ModalJumpMonth:
		return []string{"Enter/Ctrl+S save", "Esc cancel"}
	case ModalConfirmDelete:
		return []string{"y confirm delete", "n/Esc cancel"}
	}
	if m.showHelp {
		return []string{m.primaryActionKey(actionHelp, "?") + " close help", "Esc close"}
	}
	return []string{
		m.allActionKeys(actionMoveLeft, "←") + "/" + m.allActionKeys(actionMoveRight, "→") + " day",
		m.allActionKeys(actionMoveUp, "↑") + "/" + m.allActionKeys(actionMoveDown, "↓") + " row",
		m.primaryActionKey(actionPrevMonth, "[") + "/" + m.primaryActionKey(actionNextMonth, "]") + " month",
		m.allActionKeys(actionEditText, "e") + " edit",
		m.primaryActionKey(actionEditImage, "i") + " photo",
		m.primaryActionKey(actionDelete, "x") + " delete",
		m.primaryActionKey(actionCopy, "y") + " copy",
		m.primaryActionKey(actionGridMode, "g") + " grid",
		m.primaryActionKey(actionTheme, "t") + " theme",
		m.primaryActionKey(actionExportHTML, "E") + "/" + m.primaryActionKey(actionExportPDF, "P") + " export",
		m.primaryActionKey(actionHelp, "?") + " help",
		m.primaryActionKey(actionQuit, "q") + " quit",
	}
}

// statusContextSegments describes the active settings and the selected
// entry's length.
func (m *Model) statusContextSegments() []string {
	s := m.state.Settings
	parts := []string{
		s.GridMode.Label(),
		string(s.Theme),
	}
	if s.DarkMode {
		parts = append(parts, "dark")
	}
	if s.PhotoOnly {
		parts = append(parts, "photo-only")
	}
	if metrics := m.entryMetricsSummary(); metrics != "" {
		parts = append(parts, metrics)
	}
	return parts
}

func (m *Model) statusMessageSegment() string {
	status := strings.TrimSpace(m.status)
	if m.exporting {
		return m.spinner.View() + " " + status
	}
	return status
}

// renderHelp lists every action with its current keys.
func (m *Model) renderHelp(width, height int) string {
	p := m.styles()
	entry := func(action, fallback, description string) string {
		keys := m.allActionKeys(action, fallback)
		return "  " + keys + strings.Repeat(" ", max(1, 18-lipgloss.Width(keys))) + description
	}
	lines := []string{
		p.title.Render("Keyboard Shortcuts"),
		"",
		"Calendar",
		entry(actionMoveLeft, "←", "Previous day"),
		entry(actionMoveRight, "→", "Next day"),
		entry(actionMoveUp, "↑", "Up one row"),
		entry(actionMoveDown, "↓", "Down one row"),
		entry(actionPrevMonth, "[", "Previous month"),
		entry(actionNextMonth, "]", "Next month"),
		entry(actionJumpMonth, "m", "Jump to month (YYYY-MM)"),
		entry(actionToday, ".", "Jump to today"),
		"",
		"Entries",
		entry(actionEditText, "e", "Edit text (30 characters max)"),
		entry(actionEditImage, "i", "Set or clear the photo reference"),
		entry(actionDelete, "x", "Delete entry (with confirmation)"),
		entry(actionCopy, "y", "Copy entry text to the clipboard"),
		"",
		"Display",
		entry(actionGridMode, "g", "Cycle grid mode: Standard, Sequential, Weekly"),
		entry(actionTheme, "t", "Cycle theme"),
		entry(actionDark, "D", "Toggle dark mode"),
		entry(actionPhotoOnly, "o", "Toggle photo-only cells"),
		"",
		"Export",
		entry(actionExportHTML, "E", "Write the month as printable HTML"),
		entry(actionExportPDF, "P", "Write HTML, then PDF through pandoc"),
		"",
		"Editing",
		"  Ctrl+S            Save",
		"  Ctrl+Z / Ctrl+Y   Undo / redo",
		"  Ctrl+V            Paste from the clipboard",
		"  Esc               Cancel",
		"",
		entry(actionHelp, "?", "Toggle help"),
		entry(actionQuit, "q", "Quit"),
	}

	visible := min(height, len(lines))
	out := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		out = append(out, truncate(lines[i], width))
	}
	return strings.Join(out, "\n")
}
