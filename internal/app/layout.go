// layout.go centralizes the terminal layout math for the calendar UI.
//
// The screen is a month grid on the left and an entry detail pane on the
// right, with a month title above the grid and an adaptive two- or three-row
// footer. Grid cells are bordered boxes, so each column costs its content
// width plus two border columns; the same holds for rows.
package app

// LayoutDimensions holds everything View needs to size its parts.
type LayoutDimensions struct {
	GridWidth      int // width of the grid pane
	DetailWidth    int // width of the detail pane, including its border
	ContentHeight  int // height above the footer
	CellWidth      int // content width inside one cell's border
	CellHeight     int // content height inside one cell's border
	ViewportWidth  int // usable width inside the detail pane
	ViewportHeight int // usable height inside the detail pane
}

// calculateLayout derives the dimensions from the terminal size and the
// current grid mode. Cells share the grid width evenly and share the height
// left after the title and (standard mode) weekday header rows.
func (m *Model) calculateLayout() LayoutDimensions {
	detailWidth := min(DetailPaneWidth, m.width/DetailWidthDivider)
	gridWidth := max(0, m.width-detailWidth)
	contentHeight := max(0, m.height-m.footerHeightForWidth(m.width))

	mode := m.state.Settings.GridMode
	cols := mode.Columns()
	rows := max(1, (len(m.state.Slots())+cols-1)/cols)

	headerRows := HeaderRows
	if m.showWeekdayHeader() {
		headerRows++
	}

	cellWidth := max(MinCellWidth, gridWidth/cols-2)
	cellHeight := clamp((contentHeight-headerRows)/rows-2, MinCellHeight, MaxCellHeight)

	pane := m.styles().detailPane
	return LayoutDimensions{
		GridWidth:      gridWidth,
		DetailWidth:    detailWidth,
		ContentHeight:  contentHeight,
		CellWidth:      cellWidth,
		CellHeight:     cellHeight,
		ViewportWidth:  max(0, detailWidth-pane.GetHorizontalFrameSize()),
		ViewportHeight: max(0, contentHeight-pane.GetVerticalFrameSize()),
	}
}

// footerHeightForWidth prefers FooterMinRows and expands to FooterMaxRows
// when the footer segments cannot fit.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout resizes the widgets that depend on the layout.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.viewport.Width = layout.ViewportWidth
	m.viewport.Height = layout.ViewportHeight
	m.editor.SetWidth(max(10, layout.ViewportWidth-2))
	m.editor.SetHeight(4)
	m.input.Width = max(10, layout.ViewportWidth-4)
}
