// Package export renders a month of diary entries as a printable HTML page
// and, when pandoc is installed, converts that page to PDF.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/treykane/cli-diary/internal/calendar"
	"github.com/treykane/cli-diary/internal/diary"
	"github.com/treykane/cli-diary/internal/logging"
	"github.com/treykane/cli-diary/internal/theme"
)

// ErrPandocMissing is returned by PDF when pandoc is not on PATH.
var ErrPandocMissing = errors.New("pandoc not found on PATH")

const filePermission = 0o600

var exportLog = logging.New("export")

// Params selects what Month renders.
type Params struct {
	Year      int
	Month     time.Month
	Mode      calendar.GridMode
	Entries   diary.Entries
	Theme     theme.Selection
	PhotoOnly bool
}

var weekdays = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

type page struct {
	Title       string
	Columns     int
	AspectRatio string
	DateSize    string
	// MinFontScale is how far single-line text may shrink to fit.
	MinFontScale string
	Colors       pageColors
	Weekdays     []weekdayHeader
	Cells        []cell
}

type pageColors struct {
	Bg, Text, SubText, Border, CellBg, Placeholder, WeekText template.CSS
}

type weekdayHeader struct {
	Name  string
	Color template.CSS
}

type cell struct {
	Kind       string
	Label      string
	Day        int
	DateStyle  template.CSS
	Image      template.URL
	ImageStyle template.CSS
	Filter     template.CSS
	Text       template.HTML
	TextStyle  template.CSS
	SingleLine bool
	MinFont    string
}

// Month writes the month described by p to w as a self-contained HTML
// document sized for A4 paper.
func Month(w io.Writer, p Params) error {
	year, month := calendar.Normalize(p.Year, p.Month)
	mode := p.Mode
	if !mode.Valid() {
		mode = calendar.DefaultMode
	}
	colors := theme.Resolve(p.Theme)

	pg := page{
		Title:        fmt.Sprintf("%s %d", month, year),
		Columns:      mode.Columns(),
		AspectRatio:  num(aspectRatio(mode, p.PhotoOnly)),
		DateSize:     "9pt",
		MinFontScale: num(calendar.MinimumFontScale),
		Colors: pageColors{
			Bg:          cssColor(colors.Bg, "#FFFFFF"),
			Text:        cssColor(colors.Text, "#000000"),
			SubText:     cssColor(colors.SubText, "#777777"),
			Border:      cssColor(colors.Border, "#CCCCCC"),
			CellBg:      cssColor(colors.CellBg, "#FFFFFF"),
			Placeholder: cssColor(colors.Placeholder, "#F4F4F4"),
			WeekText:    cssColor(colors.WeekText, "#999999"),
		},
	}
	if mode != calendar.ModeStandard {
		pg.DateSize = "13pt"
	}
	if mode == calendar.ModeStandard {
		for i, name := range weekdays {
			c := pg.Colors.WeekText
			if i == 0 {
				c = cssColor(colors.SundayText, string(c))
			}
			pg.Weekdays = append(pg.Weekdays, weekdayHeader{Name: name, Color: c})
		}
	}

	for _, slot := range calendar.Layout(year, month, mode, p.Entries) {
		c, err := buildCell(slot, mode, p.PhotoOnly, colors)
		if err != nil {
			return err
		}
		pg.Cells = append(pg.Cells, c)
	}

	if err := pageTemplate.Execute(w, pg); err != nil {
		return fmt.Errorf("render month: %w", err)
	}
	return nil
}

func buildCell(slot calendar.Slot, mode calendar.GridMode, photoOnly bool, colors theme.Colors) (cell, error) {
	if slot.Kind == calendar.SlotWeekLabel {
		return cell{Kind: "week", Label: slot.Label()}, nil
	}
	if !slot.IsDay() {
		return cell{Kind: "empty"}, nil
	}

	c := cell{Kind: "day", Day: slot.Day}
	var entry diary.Entry
	if slot.Entry != nil {
		entry = *slot.Entry
	}

	if entry.HasImage() {
		c.DateStyle = "color: #FFFFFF; text-shadow: 0 1px 3px rgba(0,0,0,0.6);"
		if src, ok := imageURL(entry.Image); ok {
			c.Image = src
			c.ImageStyle = template.CSS(fmt.Sprintf("transform: translate(%spx, %spx) rotate(%srad) scale(%s);",
				num(diary.Value(entry.ImgX, 0)),
				num(diary.Value(entry.ImgY, 0)),
				num(diary.Value(entry.ImgRotation, 0)),
				num(diary.Value(entry.ImgScale, 1)),
			))
		} else {
			exportLog.Warn("skip image with unsupported scheme", "key", slot.Key)
		}
		if f := entry.Filter(); f != diary.FilterNone {
			c.Filter = template.CSS(fmt.Sprintf("background: %s; opacity: %s;",
				string(f), num(clamp01(diary.Value(entry.FilterOpacity, 0)))))
		}
	} else {
		c.DateStyle = template.CSS("color: " + string(cssColor(entry.DateColor, string(cssColor(colors.SubText, "#777777")))) + ";")
	}

	if photoOnly || entry.Text == "" {
		return c, nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(entry.Text), &buf); err != nil {
		return cell{}, fmt.Errorf("convert entry text for %s: %w", slot.Key, err)
	}
	c.Text = template.HTML(buf.String())

	style := calendar.CellStyle(entry.Text).Boosted(mode)
	c.SingleLine = calendar.ForceSingleLine(entry.Text)
	c.MinFont = num(style.MinFontSize())
	css := fmt.Sprintf("font-size: %spt; line-height: %spt; text-align: %s; color: %s; transform: translate(%spx, %spx) scale(%s);",
		num(style.FontSize),
		num(style.LineHeight),
		style.Align,
		cssColor(entry.TextColor, string(cssColor(colors.Text, "#000000"))),
		num(diary.Value(entry.TextX, 0)),
		num(diary.Value(entry.TextY, 0)),
		num(diary.Value(entry.TextScale, 1)),
	)
	if c.SingleLine {
		css += " white-space: nowrap;"
	}
	c.TextStyle = template.CSS(css)
	return c, nil
}

func aspectRatio(mode calendar.GridMode, photoOnly bool) float64 {
	switch {
	case photoOnly:
		return 1
	case mode == calendar.ModeWeekly:
		return 0.7
	default:
		return 0.6
	}
}

// cssColor returns value when it is a hex or named colour, else fallback.
func cssColor(value, fallback string) template.CSS {
	v := strings.TrimSpace(value)
	if hexColor.MatchString(v) || namedColor.MatchString(v) {
		return template.CSS(v)
	}
	return template.CSS(fallback)
}

func imageURL(raw string) (template.URL, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, prefix := range []string{"https://", "http://", "file://", "data:image/"} {
		if strings.HasPrefix(lower, prefix) {
			return template.URL(strings.TrimSpace(raw)), true
		}
	}
	if filepath.IsAbs(raw) {
		return template.URL("file://" + filepath.ToSlash(raw)), true
	}
	return "", false
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FileName is the default export file name for a month, without extension.
func FileName(year int, month time.Month) string {
	year, month = calendar.Normalize(year, month)
	return fmt.Sprintf("diary-%04d-%02d", year, int(month))
}

// WriteFile renders the month to path, creating parent directories.
func WriteFile(path string, p Params) error {
	var out bytes.Buffer
	if err := Month(&out, p); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, out.Bytes(), filePermission); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	exportLog.Info("exported month", "path", path)
	return nil
}

// PDF converts an exported HTML page to PDF with pandoc.
func PDF(ctx context.Context, htmlPath, pdfPath string) error {
	if _, err := exec.LookPath("pandoc"); err != nil {
		return ErrPandocMissing
	}
	cmd := exec.CommandContext(ctx, "pandoc", "-f", "html", "-o", pdfPath, htmlPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		line := strings.TrimSpace(stderr.String())
		if line == "" {
			line = err.Error()
		}
		return fmt.Errorf("pandoc: %s", line)
	}
	exportLog.Info("exported pdf", "path", pdfPath)
	return nil
}
