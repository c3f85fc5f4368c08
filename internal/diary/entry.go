// Package diary defines the user-authored content attached to calendar days
// and the canonical key used to index it.
package diary

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxTextLength is the longest entry text the editor accepts, measured by
// TextLength.
const MaxTextLength = 30

// ErrInvalidEntry is wrapped by every error returned from Entry.Validate.
var ErrInvalidEntry = errors.New("invalid diary entry")

// FilterColor is the flat colour overlay drawn on top of an entry image.
type FilterColor string

const (
	FilterNone  FilterColor = "none"
	FilterBlack FilterColor = "black"
	FilterWhite FilterColor = "white"
)

// ParseFilterColor parses a filter name. The empty string means no filter.
func ParseFilterColor(value string) (FilterColor, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FilterNone):
		return FilterNone, nil
	case string(FilterBlack):
		return FilterBlack, nil
	case string(FilterWhite):
		return FilterWhite, nil
	default:
		return "", fmt.Errorf("%w: unknown filter color %q", ErrInvalidEntry, value)
	}
}

// Entry is the record stored for one calendar date.
//
// The presentation fields are written by whatever editor produced them and are
// stored verbatim; nothing in this module interprets them except the export
// template. Pointer fields distinguish "unset" from an explicit zero.
type Entry struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`

	ImgScale    *float64 `json:"imgScale,omitempty"`
	ImgX        *float64 `json:"imgX,omitempty"`
	ImgY        *float64 `json:"imgY,omitempty"`
	ImgRotation *float64 `json:"imgRotation,omitempty"`

	TextX     *float64 `json:"textX,omitempty"`
	TextY     *float64 `json:"textY,omitempty"`
	TextScale *float64 `json:"textScale,omitempty"`

	TextColor string `json:"textColor,omitempty"`
	DateColor string `json:"dateColor,omitempty"`

	FilterColor   FilterColor `json:"filterColor,omitempty"`
	FilterOpacity *float64    `json:"filterOpacity,omitempty"`
}

// Entries is a snapshot of the entry store.
type Entries map[DateKey]Entry

// IsEmpty reports whether the entry carries neither text nor an image. Such an
// entry displays exactly like a missing one.
func (e Entry) IsEmpty() bool {
	return e.Text == "" && e.Image == ""
}

// HasImage reports whether an image reference is set.
func (e Entry) HasImage() bool {
	return e.Image != ""
}

// Validate checks the ranges the editor enforces.
func (e Entry) Validate() error {
	if n := TextLength(e.Text); n > MaxTextLength {
		return fmt.Errorf("%w: text is %d characters, limit is %d", ErrInvalidEntry, n, MaxTextLength)
	}
	for name, v := range e.scalars() {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidEntry, name)
		}
	}
	if e.ImgScale != nil && *e.ImgScale < 0 {
		return fmt.Errorf("%w: image scale must be >= 0", ErrInvalidEntry)
	}
	if e.TextScale != nil && *e.TextScale < 0 {
		return fmt.Errorf("%w: text scale must be >= 0", ErrInvalidEntry)
	}
	if e.FilterOpacity != nil && (*e.FilterOpacity < 0 || *e.FilterOpacity > 1) {
		return fmt.Errorf("%w: filter opacity must be within [0,1]", ErrInvalidEntry)
	}
	if _, err := ParseFilterColor(string(e.FilterColor)); err != nil {
		return err
	}
	return nil
}

func (e Entry) scalars() map[string]*float64 {
	return map[string]*float64{
		"imgScale":      e.ImgScale,
		"imgX":          e.ImgX,
		"imgY":          e.ImgY,
		"imgRotation":   e.ImgRotation,
		"textX":         e.TextX,
		"textY":         e.TextY,
		"textScale":     e.TextScale,
		"filterOpacity": e.FilterOpacity,
	}
}

// Filter returns the effective filter colour, treating unset as none.
func (e Entry) Filter() FilterColor {
	if e.FilterColor == "" {
		return FilterNone
	}
	return e.FilterColor
}

// Float returns a pointer to v, for filling optional fields.
func Float(v float64) *float64 {
	return &v
}

// Value dereferences an optional field, returning fallback when unset.
func Value(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

// Clone returns a deep copy so callers can mutate the result freely.
func (e Entry) Clone() Entry {
	out := e
	out.ImgScale = clonePtr(e.ImgScale)
	out.ImgX = clonePtr(e.ImgX)
	out.ImgY = clonePtr(e.ImgY)
	out.ImgRotation = clonePtr(e.ImgRotation)
	out.TextX = clonePtr(e.TextX)
	out.TextY = clonePtr(e.TextY)
	out.TextScale = clonePtr(e.TextScale)
	out.FilterOpacity = clonePtr(e.FilterOpacity)
	return out
}

// Clone copies the snapshot and every entry in it.
func (es Entries) Clone() Entries {
	out := make(Entries, len(es))
	for k, v := range es {
		out[k] = v.Clone()
	}
	return out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
