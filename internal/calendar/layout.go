// Package calendar computes what a month grid shows: the ordered cell
// sequence for each grid mode, and the text style each cell uses.
//
// Everything here is a pure function of its arguments and is safe to call from
// any number of goroutines.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/treykane/cli-diary/internal/diary"
)

// GridMode selects how the days of a month are arranged.
type GridMode string

const (
	// ModeStandard is a 7-column grid aligned to weekdays, Sunday first.
	ModeStandard GridMode = "standard"
	// ModeSequential is a 6-column grid of days in order, with no weekday
	// alignment.
	ModeSequential GridMode = "sequential"
	// ModeWeekly is a 4-column grid where each "Week N" label is followed by
	// seven day cells.
	ModeWeekly GridMode = "weekly"
)

// DefaultMode is used when no mode has been chosen.
const DefaultMode = ModeStandard

// weekLength is the number of day slots following every weekly label.
const weekLength = 7

var modeOrder = []GridMode{ModeStandard, ModeSequential, ModeWeekly}

// Modes returns every grid mode in menu order.
func Modes() []GridMode {
	return append([]GridMode(nil), modeOrder...)
}

// ParseGridMode parses a mode name case-insensitively.
func ParseGridMode(value string) (GridMode, error) {
	mode := GridMode(strings.ToLower(strings.TrimSpace(value)))
	for _, m := range modeOrder {
		if m == mode {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown grid mode %q (want standard, sequential or weekly)", value)
}

// Valid reports whether m is a known mode.
func (m GridMode) Valid() bool {
	_, err := ParseGridMode(string(m))
	return err == nil
}

// Columns returns the number of grid columns the mode renders.
func (m GridMode) Columns() int {
	switch m {
	case ModeSequential:
		return 6
	case ModeWeekly:
		return 4
	default:
		return 7
	}
}

// Next cycles standard -> sequential -> weekly -> standard.
func (m GridMode) Next() GridMode {
	for i, mode := range modeOrder {
		if mode == m {
			return modeOrder[(i+1)%len(modeOrder)]
		}
	}
	return DefaultMode
}

// Label is the human-readable menu name.
func (m GridMode) Label() string {
	switch m {
	case ModeSequential:
		return "Sequential (6x6)"
	case ModeWeekly:
		return "Weekly (4x2)"
	default:
		return "Standard"
	}
}

// SlotKind distinguishes the three kinds of grid cell.
type SlotKind int

const (
	SlotEmpty SlotKind = iota
	SlotDay
	SlotWeekLabel
)

// Slot is one cell of a rendered month grid.
type Slot struct {
	Kind SlotKind
	// Day is 1..31 for SlotDay and zero otherwise.
	Day int
	// Week is the 1-based label number for SlotWeekLabel.
	Week int
	// Key is the date key for SlotDay.
	Key diary.DateKey
	// Entry is the stored entry for the day, if any.
	Entry *diary.Entry
}

// IsDay reports whether the slot holds a real day.
func (s Slot) IsDay() bool {
	return s.Kind == SlotDay
}

// Label returns the text of a week-label slot.
func (s Slot) Label() string {
	if s.Kind != SlotWeekLabel {
		return ""
	}
	return fmt.Sprintf("Week %d", s.Week)
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first of the month, Sunday = 0.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// Normalize folds an out-of-range month into the proper year, so month 13 of
// 2025 becomes January 2026.
func Normalize(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Layout enumerates the slots a grid view must render for the month, in
// reading order. entries may be nil.
func Layout(year int, month time.Month, mode GridMode, entries diary.Entries) []Slot {
	year, month = Normalize(year, month)
	days := DaysIn(year, month)

	switch mode {
	case ModeSequential:
		return layoutPadded(year, month, days, 0, 6, entries)
	case ModeWeekly:
		return layoutWeekly(year, month, days, entries)
	default:
		return layoutPadded(year, month, days, FirstWeekday(year, month), 7, entries)
	}
}

func layoutPadded(year int, month time.Month, days, leading, columns int, entries diary.Entries) []Slot {
	total := leading + days
	total += (columns - total%columns) % columns
	slots := make([]Slot, 0, total)

	for i := 0; i < leading; i++ {
		slots = append(slots, Slot{Kind: SlotEmpty})
	}
	for day := 1; day <= days; day++ {
		slots = append(slots, daySlot(year, month, day, entries))
	}
	for len(slots) < total {
		slots = append(slots, Slot{Kind: SlotEmpty})
	}
	return slots
}

func layoutWeekly(year int, month time.Month, days int, entries diary.Entries) []Slot {
	weeks := (days + weekLength - 1) / weekLength
	slots := make([]Slot, 0, weeks*(weekLength+1))

	day := 1
	for week := 1; day <= days; week++ {
		slots = append(slots, Slot{Kind: SlotWeekLabel, Week: week})
		for i := 0; i < weekLength; i++ {
			if day <= days {
				slots = append(slots, daySlot(year, month, day, entries))
				day++
				continue
			}
			slots = append(slots, Slot{Kind: SlotEmpty})
		}
	}
	return slots
}

func daySlot(year int, month time.Month, day int, entries diary.Entries) Slot {
	key := diary.NewDateKey(year, month, day)
	slot := Slot{Kind: SlotDay, Day: day, Key: key}
	if entry, ok := entries[key]; ok {
		e := entry
		slot.Entry = &e
	}
	return slot
}

// Rows splits a slot sequence into display rows of the mode's column count.
// The final row is short only if slots did not come from Layout.
func Rows(slots []Slot, mode GridMode) [][]Slot {
	cols := mode.Columns()
	rows := make([][]Slot, 0, (len(slots)+cols-1)/cols)
	for start := 0; start < len(slots); start += cols {
		end := min(start+cols, len(slots))
		rows = append(rows, slots[start:end])
	}
	return rows
}

// IndexOfDay returns the slot index holding day, or -1.
func IndexOfDay(slots []Slot, day int) int {
	for i, s := range slots {
		if s.Kind == SlotDay && s.Day == day {
			return i
		}
	}
	return -1
}
