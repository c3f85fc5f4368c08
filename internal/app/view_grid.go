package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-diary/internal/calendar"
	"github.com/treykane/cli-diary/internal/theme"
)

// photoMarker flags a day that has an image reference.
const photoMarker = "◆"

var weekdayNames = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// showWeekdayHeader reports whether the grid gets a weekday header row. Only
// standard mode aligns columns to weekdays.
func (m *Model) showWeekdayHeader() bool {
	return m.state.Settings.GridMode == calendar.ModeStandard
}

// renderGridPane draws the title, the optional weekday header and the month
// grid.
func (m *Model) renderGridPane(layout LayoutDimensions) string {
	lines := []string{m.renderTitle(layout.GridWidth)}
	if m.showWeekdayHeader() {
		lines = append(lines, m.renderWeekdayHeader(layout.CellWidth))
	}

	mode := m.state.Settings.GridMode
	for _, row := range calendar.Rows(m.state.Slots(), mode) {
		cells := make([]string, 0, len(row))
		for _, slot := range row {
			cells = append(cells, m.renderCell(slot, layout.CellWidth, layout.CellHeight))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return joinLines(lines...)
}

func (m *Model) renderWeekdayHeader(cellWidth int) string {
	p := m.styles()
	var b strings.Builder
	for i, name := range weekdayNames {
		style := p.weekday
		if i == 0 {
			style = p.sunday
		}
		// Each cell is cellWidth plus its two border columns.
		b.WriteString(style.Render(centerLine(name, cellWidth+2)))
	}
	return b.String()
}

// renderCell draws one bordered grid cell at exactly width x height content.
func (m *Model) renderCell(slot calendar.Slot, width, height int) string {
	p := m.styles()
	switch slot.Kind {
	case calendar.SlotWeekLabel:
		lines := make([]string, height)
		lines[(height-1)/2] = centerLine(slot.Label(), width)
		return p.weekLabel.Width(width).Height(height).Render(joinLines(lines...))
	case calendar.SlotDay:
		style := p.cell
		if slot.Day == m.state.Day {
			style = p.selected
		}
		return style.Width(width).Height(height).Render(m.dayCellContent(slot, width, height))
	default:
		return p.empty.Width(width).Height(height).Render("")
	}
}

// dayCellContent is the date line followed by the entry text. Photo-only mode
// shows the date and photo marker alone.
func (m *Model) dayCellContent(slot calendar.Slot, width, height int) string {
	p := m.styles()
	date := strconv.Itoa(slot.Day)
	dateStyle := p.date

	var text string
	hasImage := false
	if slot.Entry != nil && !slot.Entry.IsEmpty() {
		text = slot.Entry.Text
		hasImage = slot.Entry.HasImage()
		if slot.Entry.DateColor != "" {
			dateStyle = dateStyle.Foreground(lipgloss.Color(theme.Solid(slot.Entry.DateColor)))
		}
	}
	if hasImage {
		dateStyle = p.photoDate
		date = truncate(date+" "+photoMarker, width)
	}
	lines := []string{dateStyle.Render(truncate(date, width))}

	textLines := height - 1
	if m.state.Settings.PhotoOnly || text == "" || textLines <= 0 {
		return joinLines(lines...)
	}

	textStyle := p.cellText
	if slot.Entry.TextColor != "" {
		textStyle = textStyle.Foreground(lipgloss.Color(theme.Solid(slot.Entry.TextColor)))
	}
	var body []string
	if calendar.ForceSingleLine(text) {
		body = []string{truncateWithEllipsis(text, width)}
	} else {
		body = wrapCellText(text, width, textLines)
	}
	for _, line := range body {
		lines = append(lines, textStyle.Render(centerLine(line, width)))
	}
	return joinLines(lines...)
}
