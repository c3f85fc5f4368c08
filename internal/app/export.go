package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-diary/internal/export"
)

type exportResultMsg struct {
	path string
	pdf  bool
	err  error
}

// startExport renders the visible month to the export directory in the
// background. The command works on a copy of the state, so edits made while
// it runs do not race with it.
func (m *Model) startExport(pdf bool) (tea.Model, tea.Cmd) {
	if m.exporting {
		m.status = "Export already running"
		return m, nil
	}
	dir := strings.TrimSpace(m.cfg.ExportDir)
	if dir == "" {
		m.status = "Export failed: no export directory configured"
		return m, nil
	}
	m.exporting = true
	m.status = "Exporting..."
	return m, tea.Batch(m.spinner.Tick, exportMonthCmd(m.exportParams(), dir, pdf))
}

func (m *Model) exportParams() export.Params {
	return export.Params{
		Year:      m.state.Year,
		Month:     m.state.Month,
		Mode:      m.state.Settings.GridMode,
		Entries:   m.state.Entries.Clone(),
		Theme:     m.state.ThemeSelection(),
		PhotoOnly: m.state.Settings.PhotoOnly,
	}
}

func exportMonthCmd(params export.Params, dir string, pdf bool) tea.Cmd {
	return func() tea.Msg {
		base := filepath.Join(dir, export.FileName(params.Year, params.Month))
		htmlPath := base + ".html"
		if err := export.WriteFile(htmlPath, params); err != nil {
			return exportResultMsg{path: htmlPath, err: err}
		}
		if !pdf {
			return exportResultMsg{path: htmlPath}
		}
		ctx, cancel := context.WithTimeout(context.Background(), ExportTimeout)
		defer cancel()
		pdfPath := base + ".pdf"
		if err := export.PDF(ctx, htmlPath, pdfPath); err != nil {
			return exportResultMsg{path: pdfPath, pdf: true, err: err}
		}
		return exportResultMsg{path: pdfPath, pdf: true}
	}
}

func (m *Model) handleExportResult(msg exportResultMsg) (tea.Model, tea.Cmd) {
	m.exporting = false
	switch {
	case errors.Is(msg.err, export.ErrPandocMissing):
		m.status = "PDF export unavailable: install pandoc (HTML was written)"
	case msg.err != nil:
		m.setStatusError("Export failed", msg.err, "path", msg.path)
	case msg.pdf:
		m.status = "Exported PDF: " + msg.path
	default:
		m.status = "Exported HTML: " + msg.path
	}
	return m, nil
}
