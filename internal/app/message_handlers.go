package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// handleSpinnerTick keeps the spinner moving while a render or export runs.
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.rendering && !m.exporting {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.rendering {
		m.viewport.SetContent(m.spinner.View() + " Rendering...")
	}
	return m, cmd
}

// handleWindowResize updates layout dimensions after terminal resize.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.updateLayout()
	return m, m.requestDetailRender()
}

// handleRenderRequest starts the render a debounce timer scheduled, unless a
// newer request superseded it.
func (m *Model) handleRenderRequest(msg renderRequestMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.renderSeq || msg.key != m.pendingKey || msg.width != m.pendingWidth {
		return m, nil
	}
	return m, renderDetailCmd(msg)
}

// handleRenderResult caches a finished render and shows it if it is still
// the one the pane is waiting for.
func (m *Model) handleRenderResult(msg renderResultMsg) (tea.Model, tea.Cmd) {
	m.renderCache[msg.key] = renderCacheEntry{
		source:  msg.source,
		width:   msg.width,
		content: msg.content,
	}
	if msg.seq != m.renderSeq || msg.key != m.state.SelectedKey() {
		return m, nil
	}
	if msg.width == renderWidthBucket(m.viewport.Width) {
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		m.rendering = false
	}
	return m, nil
}
