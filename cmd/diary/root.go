package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-diary/internal/app"
	"github.com/treykane/cli-diary/internal/config"
	"github.com/treykane/cli-diary/internal/logging"
	"github.com/treykane/cli-diary/internal/store"
)

var cliLog = logging.New("cli")

// now is swapped in tests.
var now = time.Now

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "diary",
		Short: "A diary calendar for the terminal",
		Long: `diary shows a month grid where each day holds a photo reference and up to
30 characters of text. Run it without a subcommand to open the calendar.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runCalendar,
	}
	root.AddCommand(
		newGridCmd(),
		newStyleCmd(),
		newEntryCmd(),
		newSettingsCmd(),
		newExportCmd(),
	)
	return root
}

// runCalendar starts the Bubble Tea UI.
func runCalendar(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}
	s, status, err := openStoreForReading(cfg)
	if err != nil {
		return err
	}

	m, err := app.New(app.Options{Config: cfg, Store: s, Status: status})
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run calendar: %w", err)
	}
	return nil
}

// openStoreForReading opens the entries file. A corrupt file is reported and
// the store starts empty, leaving the file alone until the first write.
func openStoreForReading(cfg config.Config) (*store.Store, string, error) {
	s, err := store.Open(cfg.EntriesPath)
	if errors.Is(err, store.ErrCorrupt) {
		cliLog.Warn("entries file is corrupt, starting empty", "path", cfg.EntriesPath, "error", err)
		return s, "Entries file is corrupt; starting empty. Saving will overwrite it.", nil
	}
	if err != nil {
		return nil, "", err
	}
	return s, "", nil
}

// openStoreForWriting refuses a corrupt file so a write cannot replace it.
func openStoreForWriting(cfg config.Config) (*store.Store, error) {
	s, err := store.Open(cfg.EntriesPath)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// parseMonthArg reads an optional YYYY-MM argument, defaulting to the
// current month.
func parseMonthArg(args []string) (int, time.Month, error) {
	if len(args) == 0 {
		t := now()
		return t.Year(), t.Month(), nil
	}
	yearPart, monthPart, ok := strings.Cut(strings.TrimSpace(args[0]), "-")
	year, yerr := strconv.Atoi(yearPart)
	month, merr := strconv.Atoi(monthPart)
	if !ok || yerr != nil || merr != nil || len(yearPart) != 4 || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %q: want YYYY-MM", args[0])
	}
	return year, time.Month(month), nil
}
