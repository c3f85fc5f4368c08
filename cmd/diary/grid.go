package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-diary/internal/calendar"
	"github.com/treykane/cli-diary/internal/config"
	"github.com/treykane/cli-diary/internal/diary"
)

// imageColumnWidth caps how much of an image reference entryLines prints.
const imageColumnWidth = 48

var weekdayHeaders = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

func newGridCmd() *cobra.Command {
	var mode gridModeValue
	cmd := &cobra.Command{
		Use:   "grid [YYYY-MM]",
		Short: "Print a month's grid layout",
		Long: `Print the slots of a month as a table. Days with an entry are marked with
"*", and days with a photo with "+". Entries for the month are listed below.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArg(args)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			gridMode := mode.resolve(cfg)
			s, _, err := openStoreForReading(cfg)
			if err != nil {
				return err
			}

			entries := s.Month(year, month)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d · %s\n", month, year, gridMode.Label())
			fmt.Fprintln(out, renderGridTable(year, month, gridMode, entries))
			for _, line := range entryLines(entries) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	addModeFlag(cmd.Flags(), &mode, "grid mode: standard, sequential or weekly (default from settings)")
	return cmd
}

func renderGridTable(year int, month time.Month, mode calendar.GridMode, entries diary.Entries) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true)
	if mode == calendar.ModeStandard {
		t = t.Headers(weekdayHeaders...)
	}
	for _, row := range calendar.Rows(calendar.Layout(year, month, mode, entries), mode) {
		cells := make([]string, 0, len(row))
		for _, slot := range row {
			cells = append(cells, slotLabel(slot))
		}
		t = t.Row(cells...)
	}
	return t.Render()
}

func slotLabel(slot calendar.Slot) string {
	switch slot.Kind {
	case calendar.SlotWeekLabel:
		return slot.Label()
	case calendar.SlotDay:
		label := strconv.Itoa(slot.Day)
		if slot.Entry == nil || slot.Entry.IsEmpty() {
			return label
		}
		if slot.Entry.HasImage() {
			label += "+"
		}
		if slot.Entry.Text != "" {
			label += "*"
		}
		return label
	default:
		return ""
	}
}

// entryLines lists non-empty entries in date order.
func entryLines(entries diary.Entries) []string {
	keys := make([]diary.DateKey, 0, len(entries))
	for key, entry := range entries {
		if !entry.IsEmpty() {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		entry := entries[key]
		line := fmt.Sprintf("%s  %q", key, entry.Text)
		if entry.HasImage() {
			line += "  [" + runewidth.Truncate(entry.Image, imageColumnWidth, "…") + "]"
		}
		lines = append(lines, line)
	}
	return lines
}
