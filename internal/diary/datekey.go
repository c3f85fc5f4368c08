package diary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// keyLayout is the canonical on-disk date key: zero-padded ISO date with a
// 1-indexed month.
const keyLayout = "2006-01-02"

// ErrInvalidDateKey is returned when a key is neither canonical nor a legacy
// unpadded year-month-day triple naming a real date.
var ErrInvalidDateKey = errors.New("invalid date key")

// DateKey indexes the entry store by calendar date.
type DateKey string

// NewDateKey builds the canonical key for a date. Out-of-range month or day
// values are normalized the way time.Date normalizes them.
func NewDateKey(year int, month time.Month, day int) DateKey {
	return DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(keyLayout))
}

// KeyFor returns the canonical key for the calendar date of t.
func KeyFor(t time.Time) DateKey {
	return NewDateKey(t.Year(), t.Month(), t.Day())
}

// ParseDateKey accepts a canonical key ("2025-02-07") or the legacy unpadded
// form ("2025-2-7") and returns the canonical key.
func ParseDateKey(value string) (DateKey, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(keyLayout, value); err == nil {
		return KeyFor(t), nil
	}

	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, value)
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, value)
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, value)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return "", fmt.Errorf("%w: %q does not exist", ErrInvalidDateKey, value)
	}
	return KeyFor(t), nil
}

// IsCanonical reports whether the key is already in canonical form.
func (k DateKey) IsCanonical() bool {
	t, err := time.Parse(keyLayout, string(k))
	return err == nil && t.Format(keyLayout) == string(k)
}

// Date splits a canonical key into its components. ok is false for keys that
// are not canonical.
func (k DateKey) Date() (year int, month time.Month, day int, ok bool) {
	t, err := time.Parse(keyLayout, string(k))
	if err != nil {
		return 0, 0, 0, false
	}
	return t.Year(), t.Month(), t.Day(), true
}

// Time returns midnight UTC of the key's date.
func (k DateKey) Time() (time.Time, bool) {
	t, err := time.Parse(keyLayout, string(k))
	return t, err == nil
}

func (k DateKey) String() string {
	return string(k)
}
