// state.go holds the diary UI state as a plain serializable value and the
// pure reducer that advances it.
//
// Everything the screen shows is derived from State: the visible month, the
// selected day, the persisted display settings, a snapshot of the entry store,
// and which modal is open. Reduce never performs I/O; the Model applies an
// action, then persists whatever the action changed (entries through the
// store, settings through config).
package app

import (
	"time"

	"github.com/treykane/cli-diary/internal/calendar"
	"github.com/treykane/cli-diary/internal/config"
	"github.com/treykane/cli-diary/internal/diary"
	"github.com/treykane/cli-diary/internal/theme"
)

// Modal identifies the input surface currently capturing keys.
type Modal string

const (
	ModalBrowse        Modal = "browse"
	ModalEditText      Modal = "edit_text"
	ModalEditImage     Modal = "edit_image"
	ModalJumpMonth     Modal = "jump_month"
	ModalConfirmDelete Modal = "confirm_delete"
)

// Settings are the display preferences persisted in config.json.
type Settings struct {
	GridMode  calendar.GridMode `json:"grid_mode"`
	DarkMode  bool              `json:"dark_mode"`
	PhotoOnly bool              `json:"photo_only"`
	Theme     theme.Key         `json:"theme"`
}

// SettingsFromConfig extracts the display settings from a loaded config.
func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		GridMode:  cfg.GridMode,
		DarkMode:  cfg.DarkMode,
		PhotoOnly: cfg.PhotoOnly,
		Theme:     cfg.Theme,
	}
}

// Apply writes the settings back into cfg.
func (s Settings) Apply(cfg config.Config) config.Config {
	cfg.GridMode = s.GridMode
	cfg.DarkMode = s.DarkMode
	cfg.PhotoOnly = s.PhotoOnly
	cfg.Theme = s.Theme
	return cfg
}

// State is the complete UI state.
type State struct {
	Year     int           `json:"year"`
	Month    time.Month    `json:"month"`
	Day      int           `json:"day"`
	Settings Settings      `json:"settings"`
	Entries  diary.Entries `json:"entries"`
	Modal    Modal         `json:"modal"`
}

// NewState opens on the month containing now with that day selected.
func NewState(now time.Time, settings Settings, entries diary.Entries) State {
	if !settings.GridMode.Valid() {
		settings.GridMode = calendar.DefaultMode
	}
	if entries == nil {
		entries = diary.Entries{}
	}
	return State{
		Year:     now.Year(),
		Month:    now.Month(),
		Day:      now.Day(),
		Settings: settings,
		Entries:  entries,
		Modal:    ModalBrowse,
	}
}

// SelectedKey is the date key of the selected day.
func (s State) SelectedKey() diary.DateKey {
	return diary.NewDateKey(s.Year, s.Month, s.Day)
}

// SelectedEntry returns the entry stored for the selected day.
func (s State) SelectedEntry() (diary.Entry, bool) {
	e, ok := s.Entries[s.SelectedKey()]
	return e, ok
}

// Slots lays out the visible month in the current grid mode.
func (s State) Slots() []calendar.Slot {
	return calendar.Layout(s.Year, s.Month, s.Settings.GridMode, s.Entries)
}

// ThemeSelection resolves the palette choice.
func (s State) ThemeSelection() theme.Selection {
	return theme.Selection{Key: s.Settings.Theme, Dark: s.Settings.DarkMode}
}

// Action is an input to Reduce.
type Action interface {
	isAction()
}

type (
	PrevMonth struct{}
	NextMonth struct{}
	JumpMonth struct {
		Year  int
		Month time.Month
	}
	// MoveSelection moves by Delta slots in layout order. Callers pass
	// ±1 for left/right and ±Columns for up/down.
	MoveSelection struct{ Delta int }
	SelectDay     struct{ Day int }

	CycleGridMode   struct{}
	CycleTheme      struct{}
	ToggleDark      struct{}
	TogglePhotoOnly struct{}

	OpenModal  struct{ Modal Modal }
	CloseModal struct{}

	EntrySaved struct {
		Key   diary.DateKey
		Entry diary.Entry
	}
	EntryDeleted  struct{ Key diary.DateKey }
	EntriesLoaded struct{ Entries diary.Entries }
)

func (PrevMonth) isAction()       {}
func (NextMonth) isAction()       {}
func (JumpMonth) isAction()       {}
func (MoveSelection) isAction()   {}
func (SelectDay) isAction()       {}
func (CycleGridMode) isAction()   {}
func (CycleTheme) isAction()      {}
func (ToggleDark) isAction()      {}
func (TogglePhotoOnly) isAction() {}
func (OpenModal) isAction()       {}
func (CloseModal) isAction()      {}
func (EntrySaved) isAction()      {}
func (EntryDeleted) isAction()    {}
func (EntriesLoaded) isAction()   {}

// Reduce returns the state that results from applying a to s. It does not
// modify s, including the entries map.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case PrevMonth:
		return withMonth(s, s.Year, s.Month-1)
	case NextMonth:
		return withMonth(s, s.Year, s.Month+1)
	case JumpMonth:
		s = withMonth(s, a.Year, a.Month)
		s.Modal = ModalBrowse
		return s
	case MoveSelection:
		slots := s.Slots()
		from := calendar.IndexOfDay(slots, s.Day)
		if from < 0 {
			return s
		}
		s.Day = slots[moveTarget(slots, from, a.Delta)].Day
		return s
	case SelectDay:
		s.Day = clamp(a.Day, 1, calendar.DaysIn(s.Year, s.Month))
		return s
	case CycleGridMode:
		s.Settings.GridMode = s.Settings.GridMode.Next()
		return s
	case CycleTheme:
		s.Settings.Theme = theme.NextKey(s.Settings.Theme)
		return s
	case ToggleDark:
		s.Settings.DarkMode = !s.Settings.DarkMode
		return s
	case TogglePhotoOnly:
		s.Settings.PhotoOnly = !s.Settings.PhotoOnly
		return s
	case OpenModal:
		if a.Modal == ModalConfirmDelete {
			if _, ok := s.SelectedEntry(); !ok {
				return s
			}
		}
		s.Modal = a.Modal
		return s
	case CloseModal:
		s.Modal = ModalBrowse
		return s
	case EntrySaved:
		entries := s.Entries.Clone()
		entries[a.Key] = a.Entry.Clone()
		s.Entries = entries
		s.Modal = ModalBrowse
		return s
	case EntryDeleted:
		entries := s.Entries.Clone()
		delete(entries, a.Key)
		s.Entries = entries
		s.Modal = ModalBrowse
		return s
	case EntriesLoaded:
		s.Entries = a.Entries.Clone()
		return s
	}
	return s
}

// withMonth moves to a month, normalizing overflow and clamping the selected
// day into range.
func withMonth(s State, year int, month time.Month) State {
	s.Year, s.Month = calendar.Normalize(year, month)
	s.Day = clamp(s.Day, 1, calendar.DaysIn(s.Year, s.Month))
	return s
}

// moveTarget finds the day slot reached by moving delta from index from.
// Moves that leave the grid stay put. Landing on padding or a week label
// continues in the direction of travel, then falls back toward the origin.
func moveTarget(slots []calendar.Slot, from, delta int) int {
	target := from + delta
	if delta == 0 || target < 0 || target >= len(slots) {
		return from
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	for i := target; i >= 0 && i < len(slots); i += step {
		if slots[i].IsDay() {
			return i
		}
	}
	for i := target - step; i != from; i -= step {
		if slots[i].IsDay() {
			return i
		}
	}
	return from
}
