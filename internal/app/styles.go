package app

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/cli-diary/internal/theme"
)

// palette is the set of lipgloss styles derived from one resolved theme.
type palette struct {
	colors theme.Colors

	title      lipgloss.Style
	muted      lipgloss.Style
	status     lipgloss.Style
	weekday    lipgloss.Style
	sunday     lipgloss.Style
	cell       lipgloss.Style
	selected   lipgloss.Style
	empty      lipgloss.Style
	weekLabel  lipgloss.Style
	date       lipgloss.Style
	photoDate  lipgloss.Style
	cellText   lipgloss.Style
	detailPane lipgloss.Style
	modalPane  lipgloss.Style
	errorText  lipgloss.Style
}

func color(hex string) lipgloss.Color {
	return lipgloss.Color(theme.Solid(hex))
}

func newPalette(sel theme.Selection) palette {
	c := theme.Resolve(sel)
	cellBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color(c.Border)).
		Background(color(c.CellBg)).
		Foreground(color(c.Text))

	return palette{
		colors:    c,
		title:     lipgloss.NewStyle().Bold(true).Foreground(color(c.Accent)),
		muted:     lipgloss.NewStyle().Foreground(color(c.SubText)),
		status:    lipgloss.NewStyle().Foreground(color(c.SubText)),
		weekday:   lipgloss.NewStyle().Bold(true).Foreground(color(c.WeekText)),
		sunday:    lipgloss.NewStyle().Bold(true).Foreground(color(c.SundayText)),
		cell:      cellBase,
		selected:  cellBase.Border(lipgloss.ThickBorder()).BorderForeground(color(c.Accent)),
		empty:     cellBase.Background(color(c.Placeholder)),
		weekLabel: cellBase.Background(color(c.WeekText)).Foreground(color(c.Bg)).Bold(true),
		date:      lipgloss.NewStyle().Foreground(color(c.SubText)),
		photoDate: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		cellText:  lipgloss.NewStyle().Foreground(color(c.Text)),
		detailPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(c.Border)).
			Padding(0, 1),
		modalPane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(color(c.Accent)).
			Background(color(c.ModalBg)).
			Padding(0, 1),
		errorText: lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
	}
}

// applyEditorTheme styles the entry text editor with the active palette.
func applyEditorTheme(editor *textarea.Model, p palette) {
	focused, blurred := textarea.DefaultStyles()

	base := lipgloss.NewStyle().Foreground(color(p.colors.Text)).Background(color(p.colors.InputBg))
	prompt := lipgloss.NewStyle().Foreground(color(p.colors.Accent))
	placeholder := lipgloss.NewStyle().Foreground(color(p.colors.SubText))

	focused.Base = base
	focused.Text = base
	focused.CursorLine = base
	focused.Prompt = prompt
	focused.Placeholder = placeholder

	blurred.Base = base
	blurred.Text = placeholder
	blurred.CursorLine = base
	blurred.Prompt = prompt
	blurred.Placeholder = placeholder

	editor.FocusedStyle = focused
	editor.BlurredStyle = blurred
	editor.Prompt = "│ "
	editor.EndOfBufferCharacter = ' '
	editor.ShowLineNumbers = false
}
