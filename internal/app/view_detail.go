package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/treykane/cli-diary/internal/diary"
)

// detailMarkdown is the markdown shown in the detail pane for one day: the
// date, the entry text and whatever presentation values are stored.
func detailMarkdown(key diary.DateKey, entry diary.Entry, ok bool) string {
	var b strings.Builder
	b.WriteString("## " + displayDate(key) + "\n\n")
	if !ok || entry.IsEmpty() {
		b.WriteString("_No entry yet._\n")
		return b.String()
	}

	if entry.Text != "" {
		// Single newlines are kept as hard breaks.
		b.WriteString(strings.ReplaceAll(entry.Text, "\n", "  \n"))
		b.WriteString("\n\n")
	}

	rows := detailRows(entry)
	if len(rows) > 0 {
		b.WriteString("| Field | Value |\n|---|---|\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "| %s | %s |\n", row[0], escapeTableCell(row[1]))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "_%d/%d characters_\n", diary.TextLength(entry.Text), diary.MaxTextLength)
	return b.String()
}

// detailRows lists the stored fields worth showing, skipping unset ones.
func detailRows(entry diary.Entry) [][2]string {
	var rows [][2]string
	add := func(name, value string) {
		if value != "" {
			rows = append(rows, [2]string{name, value})
		}
	}
	num := func(p *float64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatFloat(*p, 'g', -1, 64)
	}

	add("image", entry.Image)
	add("imgScale", num(entry.ImgScale))
	add("imgX", num(entry.ImgX))
	add("imgY", num(entry.ImgY))
	add("imgRotation", num(entry.ImgRotation))
	add("textX", num(entry.TextX))
	add("textY", num(entry.TextY))
	add("textScale", num(entry.TextScale))
	add("textColor", entry.TextColor)
	add("dateColor", entry.DateColor)
	if entry.Filter() != diary.FilterNone {
		add("filter", string(entry.Filter()))
		add("filterOpacity", num(entry.FilterOpacity))
	}
	return rows
}

func escapeTableCell(value string) string {
	return strings.ReplaceAll(value, "|", `\|`)
}

// renderModal draws the body of the open modal at the given inner width.
func (m *Model) renderModal(width int) string {
	p := m.styles()
	date := displayDate(m.state.SelectedKey())

	switch m.state.Modal {
	case ModalEditText:
		count := diary.TextLength(m.editor.Value())
		counter := p.muted.Render(fmt.Sprintf("%d/%d", count, diary.MaxTextLength))
		return joinLines(
			p.title.Render(truncate("Edit text · "+date, width)),
			"",
			m.editor.View(),
			"",
			counter,
		)
	case ModalEditImage:
		return joinLines(
			p.title.Render(truncate("Photo · "+date, width)),
			"",
			m.input.View(),
			"",
			p.muted.Render(truncate("Empty clears the photo", width)),
		)
	case ModalJumpMonth:
		return joinLines(
			p.title.Render("Jump to month"),
			"",
			m.input.View(),
		)
	case ModalConfirmDelete:
		return joinLines(
			p.errorText.Render(truncate("Delete entry for "+date+"?", width)),
			"",
			p.muted.Render("y delete · n cancel"),
		)
	}
	return ""
}
