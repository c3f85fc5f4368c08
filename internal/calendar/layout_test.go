package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treykane/cli-diary/internal/diary"
)

func forEachMonth(t *testing.T, fn func(t *testing.T, year int, month time.Month)) {
	t.Helper()
	for year := 1999; year <= 2031; year++ {
		for month := time.January; month <= time.December; month++ {
			fn(t, year, month)
		}
	}
}

func TestDaysInAndFirstWeekday(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2025, time.February))
	assert.Equal(t, 28, DaysIn(1900, time.February))
	assert.Equal(t, 29, DaysIn(2000, time.February))
	assert.Equal(t, 31, DaysIn(2025, time.December))
	assert.Equal(t, 30, DaysIn(2025, time.April))

	assert.Equal(t, 4, FirstWeekday(2029, time.February))
	assert.Equal(t, 0, FirstWeekday(2026, time.February))
	assert.Equal(t, 3, FirstWeekday(2025, time.January))
}

func TestStandardLayoutProperties(t *testing.T) {
	forEachMonth(t, func(t *testing.T, year int, month time.Month) {
		slots := Layout(year, month, ModeStandard, nil)
		first := FirstWeekday(year, month)
		days := DaysIn(year, month)

		require.Zero(t, len(slots)%7, "%d-%02d length %d", year, month, len(slots))
		for i := 0; i < first; i++ {
			require.Equal(t, SlotEmpty, slots[i].Kind)
		}
		for day := 1; day <= days; day++ {
			slot := slots[first+day-1]
			require.Equal(t, SlotDay, slot.Kind)
			require.Equal(t, day, slot.Day)
		}
		for i := first + days; i < len(slots); i++ {
			require.Equal(t, SlotEmpty, slots[i].Kind)
		}
		require.Less(t, len(slots)-first-days, 7)
	})
}

func TestSequentialLayoutProperties(t *testing.T) {
	forEachMonth(t, func(t *testing.T, year int, month time.Month) {
		slots := Layout(year, month, ModeSequential, nil)
		days := DaysIn(year, month)

		require.Zero(t, len(slots)%6)
		require.Equal(t, SlotDay, slots[0].Kind)
		require.Equal(t, 1, slots[0].Day)
		for day := 1; day <= days; day++ {
			require.Equal(t, day, slots[day-1].Day)
		}
		for i := days; i < len(slots); i++ {
			require.Equal(t, SlotEmpty, slots[i].Kind)
		}
	})
}

func TestWeeklyLayoutProperties(t *testing.T) {
	forEachMonth(t, func(t *testing.T, year int, month time.Month) {
		slots := Layout(year, month, ModeWeekly, nil)
		days := DaysIn(year, month)
		weeks := (days + 6) / 7

		require.Len(t, slots, weeks*8)
		day := 1
		for w := 0; w < weeks; w++ {
			group := slots[w*8 : (w+1)*8]
			require.Equal(t, SlotWeekLabel, group[0].Kind)
			require.Equal(t, w+1, group[0].Week)
			for _, s := range group[1:] {
				if day <= days {
					require.Equal(t, SlotDay, s.Kind)
					require.Equal(t, day, s.Day)
					day++
					continue
				}
				require.Equal(t, SlotEmpty, s.Kind)
			}
		}

		last := slots[(weeks-1)*8+1:]
		realDays := 0
		for _, s := range last {
			if s.IsDay() {
				realDays++
			}
		}
		want := days % 7
		if want == 0 {
			want = 7
		}
		require.Equal(t, want, realDays)
	})
}

func TestStandardFebruaryStartingThursday(t *testing.T) {
	// February 2029 has 28 days and starts on a Thursday.
	slots := Layout(2029, time.February, ModeStandard, nil)
	require.Len(t, slots, 35)
	assert.Equal(t, SlotDay, slots[31].Kind)
	assert.Equal(t, 28, slots[31].Day)
	for _, i := range []int{32, 33, 34} {
		assert.Equal(t, SlotEmpty, slots[i].Kind)
	}
}

func TestStandardFebruaryStartingSundayHasNoPadding(t *testing.T) {
	slots := Layout(2026, time.February, ModeStandard, nil)
	require.Len(t, slots, 28)
	assert.Equal(t, 1, slots[0].Day)
	assert.Equal(t, 28, slots[27].Day)
}

func TestWeeklyLabels(t *testing.T) {
	slots := Layout(2025, time.March, ModeWeekly, nil)
	require.Len(t, slots, 40)
	assert.Equal(t, "Week 1", slots[0].Label())
	assert.Equal(t, "Week 5", slots[32].Label())
	assert.Equal(t, 29, slots[33].Day)
	assert.Equal(t, 31, slots[35].Day)
	assert.Equal(t, SlotEmpty, slots[36].Kind)
	assert.Equal(t, "", slots[1].Label())
}

func TestLayoutAttachesEntries(t *testing.T) {
	entries := diary.Entries{
		diary.NewDateKey(2025, time.March, 3): {Text: "dentist"},
		diary.NewDateKey(2025, time.April, 3): {Text: "other month"},
	}
	for _, mode := range Modes() {
		slots := Layout(2025, time.March, mode, entries)
		idx := IndexOfDay(slots, 3)
		require.NotEqual(t, -1, idx)
		require.NotNil(t, slots[idx].Entry)
		assert.Equal(t, "dentist", slots[idx].Entry.Text)
		assert.Equal(t, diary.DateKey("2025-03-03"), slots[idx].Key)
		assert.Nil(t, slots[IndexOfDay(slots, 4)].Entry)
	}
}

func TestLayoutEntryIsACopy(t *testing.T) {
	key := diary.NewDateKey(2025, time.March, 3)
	entries := diary.Entries{key: {Text: "a"}}
	slots := Layout(2025, time.March, ModeStandard, entries)
	slots[IndexOfDay(slots, 3)].Entry.Text = "b"
	assert.Equal(t, "a", entries[key].Text)
}

func TestLayoutNormalizesOutOfRangeMonth(t *testing.T) {
	assert.NotPanics(t, func() {
		got := Layout(2025, 13, ModeStandard, nil)
		want := Layout(2026, time.January, ModeStandard, nil)
		assert.Equal(t, want, got)
		Layout(2025, 0, ModeWeekly, nil)
		Layout(2025, -40, ModeSequential, nil)
	})
}

func TestUnknownModeFallsBackToStandard(t *testing.T) {
	assert.Equal(t, Layout(2025, time.May, ModeStandard, nil), Layout(2025, time.May, GridMode("bogus"), nil))
}

func TestRows(t *testing.T) {
	for _, mode := range Modes() {
		slots := Layout(2025, time.August, mode, nil)
		rows := Rows(slots, mode)
		total := 0
		for _, row := range rows {
			require.Len(t, row, mode.Columns())
			total += len(row)
		}
		assert.Equal(t, len(slots), total)
	}
}

func TestGridModeCycleAndParse(t *testing.T) {
	assert.Equal(t, ModeSequential, ModeStandard.Next())
	assert.Equal(t, ModeWeekly, ModeSequential.Next())
	assert.Equal(t, ModeStandard, ModeWeekly.Next())
	assert.Equal(t, ModeStandard, GridMode("").Next())

	mode, err := ParseGridMode(" Weekly ")
	require.NoError(t, err)
	assert.Equal(t, ModeWeekly, mode)
	_, err = ParseGridMode("grid")
	require.Error(t, err)

	assert.Equal(t, 7, ModeStandard.Columns())
	assert.Equal(t, 6, ModeSequential.Columns())
	assert.Equal(t, 4, ModeWeekly.Columns())
}
