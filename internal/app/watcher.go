// watcher.go polls the entries file for changes made by other processes,
// such as `diary entry set` or an import run in another terminal.
//
// Every FileWatchInterval the file is stat'ed and its modification time and
// size are compared with the last observation. On a difference the store
// re-reads the file and the UI state receives the new snapshot through
// EntriesLoaded. After the model's own writes the observation is refreshed so
// they are not reported as external changes.
//
// An open text editor keeps its buffer; only the grid and detail pane
// refresh underneath it.
package app

import (
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-diary/internal/diary"
)

// fileWatchTickMsg is emitted by the poll timer.
type fileWatchTickMsg struct{}

// fileWatchEntry is what one poll observes about the entries file.
type fileWatchEntry struct {
	Exists  bool
	ModNano int64
	Size    int64
}

// scheduleFileWatchTick queues the next poll.
func (m *Model) scheduleFileWatchTick() tea.Cmd {
	return tea.Tick(m.effectiveFileWatchInterval(), func(time.Time) tea.Msg {
		return fileWatchTickMsg{}
	})
}

func (m *Model) effectiveFileWatchInterval() time.Duration {
	if m.fileWatchInterval <= 0 {
		return FileWatchInterval
	}
	return m.fileWatchInterval
}

// handleFileWatchTick compares the entries file with the last observation and
// reloads on change. The first tick only records a baseline.
func (m *Model) handleFileWatchTick(_ fileWatchTickMsg) (tea.Model, tea.Cmd) {
	path := m.store.Path()
	observed, err := statFileWatchEntry(path)
	if err != nil {
		appLog.Warn("stat entries file", "path", path, "error", err)
		return m, m.scheduleFileWatchTick()
	}

	if !m.fileWatchStarted {
		m.fileWatchStarted = true
		m.fileWatch = observed
		return m, m.scheduleFileWatchTick()
	}
	if observed == m.fileWatch {
		return m, m.scheduleFileWatchTick()
	}

	m.fileWatch = observed
	return m, tea.Batch(m.handleExternalEntriesChange(), m.scheduleFileWatchTick())
}

// syncFileWatch records the current state of the entries file after a write
// made by this model.
func (m *Model) syncFileWatch() {
	if !m.fileWatchStarted {
		return
	}
	if observed, err := statFileWatchEntry(m.store.Path()); err == nil {
		m.fileWatch = observed
	}
}

func statFileWatchEntry(path string) (fileWatchEntry, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fileWatchEntry{}, nil
	}
	if err != nil {
		return fileWatchEntry{}, err
	}
	return fileWatchEntry{
		Exists:  true,
		ModNano: info.ModTime().UnixNano(),
		Size:    info.Size(),
	}, nil
}

// handleExternalEntriesChange reloads the store and refreshes the views.
func (m *Model) handleExternalEntriesChange() tea.Cmd {
	if err := m.store.Reload(); err != nil {
		m.setStatusError("Entries changed on disk but could not be reloaded", err)
		return nil
	}
	m.dispatch(EntriesLoaded{Entries: m.store.Snapshot()})
	m.renderCache = map[diary.DateKey]renderCacheEntry{}
	m.status = "Reloaded entries (changed on disk)"
	return m.requestDetailRender()
}
