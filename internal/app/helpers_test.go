package app

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/treykane/cli-diary/internal/calendar"
	"github.com/treykane/cli-diary/internal/config"
	"github.com/treykane/cli-diary/internal/diary"
	"github.com/treykane/cli-diary/internal/store"
	"github.com/treykane/cli-diary/internal/theme"
)

// testNow is the clock every test model opens on: Friday 14 March 2025.
var testNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// newTestModel builds a 120x40 model over a temp-dir store seeded with
// entries. Settings writes are discarded.
func newTestModel(t *testing.T, entries diary.Entries) *Model {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "entries.json")

	s, err := store.Open(path)
	require.NoError(t, err)
	for key, entry := range entries {
		require.NoError(t, s.Put(key, entry))
	}

	m, err := New(Options{
		Config: config.Config{
			EntriesPath: path,
			GridMode:    calendar.ModeStandard,
			Theme:       theme.Linen,
			ExportDir:   filepath.Join(dir, "exports"),
		},
		Store:      s,
		SaveConfig: func(config.Config) error { return nil },
		Now:        func() time.Time { return testNow },
	})
	require.NoError(t, err)

	m.width, m.height = 120, 40
	m.updateLayout()
	return m
}

// captureSettings records every config the model tries to save.
func captureSettings(m *Model) *[]config.Config {
	saved := &[]config.Config{}
	m.saveConfig = func(cfg config.Config) error {
		*saved = append(*saved, cfg)
		return nil
	}
	return saved
}

var specialKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"pgup":   tea.KeyPgUp,
	"pgdown": tea.KeyPgDown,
	"ctrl+s": tea.KeyCtrlS,
	"ctrl+c": tea.KeyCtrlC,
}

func keyMsg(key string) tea.KeyMsg {
	if kt, ok := specialKeys[key]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends each key to the model in order and returns the last command.
func press(t *testing.T, m *Model, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, key := range keys {
		_, cmd = m.Update(keyMsg(key))
	}
	return cmd
}

// typeText sends text one rune at a time.
func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// storedEntries reads the store behind m.
func storedEntries(m *Model) diary.Entries {
	return m.store.Snapshot()
}
