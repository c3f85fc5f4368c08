package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treykane/cli-diary/internal/calendar"
	"github.com/treykane/cli-diary/internal/config"
	"github.com/treykane/cli-diary/internal/diary"
	"github.com/treykane/cli-diary/internal/store"
)

// setupHome points HOME at a temp dir and pins the clock to 14 March 2025.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	prev := now
	now = func() time.Time { return time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })
	return home
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	require.NoError(t, err, out)
	return out
}

func entriesPath(t *testing.T) string {
	t.Helper()
	path, err := config.DefaultEntriesPath()
	require.NoError(t, err)
	return path
}

func TestGridDefaultsToCurrentMonth(t *testing.T) {
	setupHome(t)
	mustRun(t, "entry", "set", "2025-03-14", "--text", "pi day")
	mustRun(t, "entry", "set", "2025-03-15", "--image", "/ides.jpg")

	out := mustRun(t, "grid")
	assert.Contains(t, out, "March 2025 · Standard")
	assert.Contains(t, out, "SUN")
	assert.Contains(t, out, "14*")
	assert.Contains(t, out, "15+")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, `2025-03-14  "pi day"`)
	assert.Contains(t, out, "[/ides.jpg]")
}

func TestGridWeeklyMode(t *testing.T) {
	setupHome(t)
	out := mustRun(t, "grid", "2025-02", "--mode", "weekly")
	assert.Contains(t, out, "February 2025 · Weekly (4x2)")
	assert.Contains(t, out, "Week 4")
	assert.NotContains(t, out, "Week 5")
	assert.NotContains(t, out, "SUN")
}

func TestGridRejectsBadInput(t *testing.T) {
	setupHome(t)
	_, err := runCLI(t, "grid", "March")
	assert.Error(t, err)
	_, err = runCLI(t, "grid", "--mode", "diagonal")
	assert.Error(t, err)
}

func TestStyleCommand(t *testing.T) {
	setupHome(t)

	out := mustRun(t, "style", "sunny")
	assert.Contains(t, out, "presentation: font 9pt, line 12pt, center")
	assert.Contains(t, out, "single line:  yes (shrinks to 4.5pt)")

	out = mustRun(t, "style", `one\ntwo\nthree\nfour`)
	assert.Contains(t, out, "font 5pt, line 6.5pt")
	assert.Contains(t, out, "single line:  no")

	out = mustRun(t, "style", "", "--mode", "weekly")
	assert.Contains(t, out, "cell:         font 10pt, line 10pt, center")
	assert.Contains(t, out, "weekly:       font 12.5pt, line 12.5pt")
}

func TestEntrySetShowDelete(t *testing.T) {
	setupHome(t)

	out := mustRun(t, "entry", "set", "2025-3-14", "--text", "pi day", "--img-scale", "1.5", "--filter", "black", "--filter-opacity", "0.4")
	assert.Equal(t, "saved 2025-03-14\n", out)

	out = mustRun(t, "entry", "show", "2025-03-14")
	assert.Contains(t, out, `"text": "pi day"`)
	assert.Contains(t, out, `"imgScale": 1.5`)
	assert.Contains(t, out, `"filterColor": "black"`)
	assert.NotContains(t, out, "imgX", "flags not given stay unset")

	mustRun(t, "entry", "set", "2025-03-14", "--image", "/pie.jpg")
	out = mustRun(t, "entry", "show", "2025-03-14")
	assert.Contains(t, out, `"text": "pi day"`)
	assert.Contains(t, out, `"image": "/pie.jpg"`)

	out = mustRun(t, "entry", "delete", "2025-03-14")
	assert.Equal(t, "deleted 2025-03-14\n", out)
	_, err := runCLI(t, "entry", "show", "2025-03-14")
	assert.Error(t, err)
}

func TestEntrySetValidates(t *testing.T) {
	setupHome(t)

	_, err := runCLI(t, "entry", "set", "2025-03-14", "--text", "this text is far too long for one day")
	assert.ErrorIs(t, err, diary.ErrInvalidEntry)

	_, err = runCLI(t, "entry", "set", "2025-03-14", "--filter", "sepia")
	assert.ErrorIs(t, err, diary.ErrInvalidEntry)

	_, err = runCLI(t, "entry", "set", "2025-02-30", "--text", "nope")
	assert.ErrorIs(t, err, diary.ErrInvalidDateKey)
}

func TestEntryWritesRefuseCorruptFile(t *testing.T) {
	setupHome(t)
	path := entriesPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := runCLI(t, "entry", "set", "2025-03-14", "--text", "hi")
	assert.ErrorIs(t, err, store.ErrCorrupt)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))

	out := mustRun(t, "grid")
	assert.Contains(t, out, "March 2025")
}

func TestEntryImportMerges(t *testing.T) {
	setupHome(t)
	mustRun(t, "entry", "set", "2025-03-01", "--text", "local")

	file := filepath.Join(t.TempDir(), "remote.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
  "2025-3-1": {"text": "remote"},
  "2025-03-02": {"text": "new"},
  "2025-03-03": {"text": "this text is far too long for one day"}
}`), 0o600))

	out := mustRun(t, "entry", "import", file)
	assert.Equal(t, "merged 2 of 3 entries\n", out)

	s, err := store.Open(entriesPath(t))
	require.NoError(t, err)
	got, _ := s.Get("2025-03-01")
	assert.Equal(t, "remote", got.Text)
	_, ok := s.Get("2025-03-03")
	assert.False(t, ok)
}

func TestSettingsCommand(t *testing.T) {
	home := setupHome(t)

	out := mustRun(t, "settings")
	assert.Contains(t, out, "grid mode:   standard")
	assert.Contains(t, out, "theme:       linen")
	exists, err := config.Exists()
	require.NoError(t, err)
	assert.False(t, exists, "showing settings must not create a config file")

	out = mustRun(t, "settings", "--mode", "weekly", "--dark", "--export-dir", "~/prints")
	assert.Contains(t, out, "grid mode:   weekly")
	assert.Contains(t, out, "dark:        true")
	assert.Contains(t, out, "export dir:  "+filepath.Join(home, "prints"))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.DarkMode)

	_, err = runCLI(t, "settings", "--theme", "plaid")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	setupHome(t)
	mustRun(t, "entry", "set", "2025-03-14", "--text", "pi day")
	dir := t.TempDir()

	out := mustRun(t, "export", "2025-03", "--out", dir, "--mode", "sequential")
	htmlPath := filepath.Join(dir, "diary-2025-03.html")
	assert.Equal(t, htmlPath+"\n", out)

	data, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pi day")
	assert.Contains(t, string(data), "repeat(6, 1fr)")
}

func TestExportPDFWithoutPandoc(t *testing.T) {
	setupHome(t)
	t.Setenv("PATH", t.TempDir())
	dir := t.TempDir()

	_, err := runCLI(t, "export", "--out", dir, "--pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pandoc")
	assert.FileExists(t, filepath.Join(dir, "diary-2025-03.html"))
}

func TestParseMonthArg(t *testing.T) {
	setupHome(t)

	year, month, err := parseMonthArg(nil)
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.March, month)

	year, month, err = parseMonthArg([]string{"1999-12"})
	require.NoError(t, err)
	assert.Equal(t, 1999, year)
	assert.Equal(t, time.December, month)

	for _, bad := range []string{"1999", "1999-13", "99-01", "abcd-01"} {
		_, _, err := parseMonthArg([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestGridModeValue(t *testing.T) {
	var v gridModeValue
	assert.False(t, v.IsSet())
	assert.Equal(t, calendar.DefaultMode, v.resolve(config.Config{}))
	assert.Equal(t, calendar.ModeWeekly, v.resolve(config.Config{GridMode: calendar.ModeWeekly}))

	require.NoError(t, v.Set(" Sequential "))
	assert.Equal(t, "sequential", v.String())
	assert.Equal(t, calendar.ModeSequential, v.resolve(config.Config{GridMode: calendar.ModeWeekly}))

	assert.Error(t, v.Set("diagonal"))
	assert.Equal(t, calendar.ModeSequential, v.mode, "a rejected value leaves the flag unchanged")
}

func TestSettingsRejectsUnknownMode(t *testing.T) {
	setupHome(t)
	_, err := runCLI(t, "settings", "--mode", "diagonal")
	assert.Error(t, err)
	out := mustRun(t, "settings")
	assert.Contains(t, out, "grid mode:   standard")
}

func TestEntryLinesShortensLongImageReferences(t *testing.T) {
	long := "https://photos.example.com/" + strings.Repeat("a", 80) + ".jpg"
	lines := entryLines(diary.Entries{
		"2025-03-02": {Image: long},
		"2025-03-01": {Text: "first", Image: "/short.jpg"},
	})
	require.Len(t, lines, 2)
	assert.Equal(t, `2025-03-01  "first"  [/short.jpg]`, lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "…]"), lines[1])
	assert.NotContains(t, lines[1], ".jpg")
}

func TestEntrySetDeletesEntryLeftEmpty(t *testing.T) {
	setupHome(t)

	out := mustRun(t, "entry", "set", "2025-03-14", "--img-scale", "2")
	assert.Equal(t, "nothing to save for 2025-03-14\n", out)

	mustRun(t, "entry", "set", "2025-03-14", "--text", "pi day", "--img-scale", "2")
	out = mustRun(t, "entry", "set", "2025-03-14", "--text", "")
	assert.Equal(t, "deleted 2025-03-14 (no text or photo left)\n", out)

	_, err := runCLI(t, "entry", "show", "2025-03-14")
	assert.Error(t, err)

	_, err = runCLI(t, "entry", "set", "2025-03-15", "--filter-opacity", "2")
	assert.ErrorIs(t, err, diary.ErrInvalidEntry, "range errors are reported even when nothing would be saved")
}
