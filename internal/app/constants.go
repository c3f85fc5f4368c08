package app

import "time"

// Layout constants define the default dimensions of the two-pane UI.
const (
	// DetailPaneWidth is the widest the entry detail pane grows.
	DetailPaneWidth = 44

	// DetailWidthDivider caps the detail pane at terminal_width / this value
	// on narrow terminals.
	DetailWidthDivider = 3

	// MinCellWidth and MinCellHeight keep grid cells legible on small
	// terminals; the grid is clipped rather than shrunk further.
	MinCellWidth  = 5
	MinCellHeight = 2

	// MaxCellHeight stops cells from growing past what their content needs.
	MaxCellHeight = 6

	// HeaderRows is the month title line above the grid.
	HeaderRows = 1

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3
)

// Input limits for the modal widgets.
const (
	// ImageCharLimit bounds the image URI input.
	ImageCharLimit = 1024

	// MonthCharLimit bounds the jump-to-month input ("YYYY-MM").
	MonthCharLimit = 7
)

// Rendering constants control detail-pane render timing and caching.
const (
	// RenderDebounce is the delay before rendering the detail pane after
	// the selection moves.
	RenderDebounce = 120 * time.Millisecond

	// RenderWidthBucket is the granularity for width-based render caching.
	RenderWidthBucket = 4

	// ExportTimeout bounds a PDF conversion.
	ExportTimeout = 2 * time.Minute
)

// Watcher constants
const (
	// FileWatchInterval is the poll interval for changes other processes make
	// to the entries file.
	FileWatchInterval = 2 * time.Second
)
