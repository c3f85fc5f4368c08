package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View draws the full UI: month title and grid on the left, the entry detail
// pane (or the open modal) on the right, and the status footer.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footerHeight := m.footerHeightForWidth(m.width)
	layout := m.calculateLayout()

	var row string
	if m.showHelp {
		row = m.renderHelp(m.width, layout.ContentHeight)
	} else {
		grid := padBlock(m.renderGridPane(layout), layout.GridWidth, layout.ContentHeight)
		right := m.renderRightPane(layout)
		row = lipgloss.JoinHorizontal(lipgloss.Top, grid, right)
	}
	row = padBlock(row, m.width, layout.ContentHeight)

	view := row + "\n" + m.renderStatus(m.width, footerHeight)
	return padBlock(view, m.width, m.height)
}

// renderTitle is the line above the grid, e.g. "March 2025  ·  Standard".
func (m *Model) renderTitle(width int) string {
	p := m.styles()
	title := fmt.Sprintf("%s %d", m.state.Month, m.state.Year)
	mode := p.muted.Render("  ·  " + m.state.Settings.GridMode.Label())
	if m.state.Settings.PhotoOnly {
		mode += p.muted.Render("  ·  photos")
	}
	return truncate(p.title.Render(title)+mode, width)
}

// renderRightPane shows the modal when one is open, otherwise the detail
// viewport.
func (m *Model) renderRightPane(layout LayoutDimensions) string {
	if layout.DetailWidth <= 0 {
		return ""
	}
	p := m.styles()
	innerWidth := layout.ViewportWidth
	innerHeight := layout.ViewportHeight

	var body string
	pane := p.detailPane
	switch m.state.Modal {
	case ModalEditText, ModalEditImage, ModalJumpMonth, ModalConfirmDelete:
		body = m.renderModal(innerWidth)
		pane = p.modalPane
	default:
		body = m.viewport.View()
	}
	body = padBlock(body, innerWidth, innerHeight)
	return pane.Width(innerWidth + pane.GetHorizontalPadding()).Render(body)
}

// joinLines is strings.Join for the common newline case.
func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
