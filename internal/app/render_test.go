package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/treykane/cli-diary/internal/calendar"
	"github.com/treykane/cli-diary/internal/diary"
	"github.com/treykane/cli-diary/internal/theme"
)

func newRenderModel(entries diary.Entries) *Model {
	return &Model{
		state:       NewState(testNow, Settings{GridMode: calendar.ModeStandard, Theme: theme.Linen}, entries),
		viewport:    viewport.New(81, 5), // width bucket is 80
		spinner:     spinner.New(),
		renderCache: map[diary.DateKey]renderCacheEntry{},
	}
}

func TestRequestDetailRenderUsesCacheWhenSourceAndWidthMatch(t *testing.T) {
	entries := diary.Entries{"2025-03-14": {Text: "pi day"}}
	m := newRenderModel(entries)
	m.renderSeq = 9
	key := diary.DateKey("2025-03-14")
	m.renderCache[key] = renderCacheEntry{
		source:  detailMarkdown(key, entries[key], true),
		width:   80,
		content: "cached-render-output",
	}

	if cmd := m.requestDetailRender(); cmd != nil {
		t.Fatal("expected no render command on cache hit")
	}
	if !strings.Contains(m.viewport.View(), "cached-render-output") {
		t.Fatalf("expected cached content in viewport, got %q", m.viewport.View())
	}
	if m.rendering {
		t.Fatal("expected rendering to be false on cache hit")
	}
	if m.renderSeq != 9 {
		t.Fatalf("expected renderSeq to stay 9, got %d", m.renderSeq)
	}
}

func TestRequestDetailRenderMissesWhenEntryChanged(t *testing.T) {
	m := newRenderModel(diary.Entries{"2025-03-14": {Text: "edited"}})
	key := diary.DateKey("2025-03-14")
	m.renderCache[key] = renderCacheEntry{
		source:  detailMarkdown(key, diary.Entry{Text: "original"}, true),
		width:   80,
		content: "stale",
	}

	if cmd := m.requestDetailRender(); cmd == nil {
		t.Fatal("expected a render command when the cached source is stale")
	}
	if strings.Contains(m.viewport.View(), "stale") {
		t.Fatal("stale cache content must not be shown")
	}
}

func TestRequestDetailRenderStartsAsyncRenderWhenCacheMissing(t *testing.T) {
	m := newRenderModel(nil)

	cmd := m.requestDetailRender()
	if cmd == nil {
		t.Fatal("expected render command on cache miss")
	}
	if !m.rendering {
		t.Fatal("expected rendering to be true on cache miss")
	}
	if m.pendingKey != "2025-03-14" {
		t.Fatalf("expected pendingKey 2025-03-14, got %q", m.pendingKey)
	}
	if m.pendingWidth != 80 {
		t.Fatalf("expected pendingWidth 80, got %d", m.pendingWidth)
	}
	if m.renderSeq != 1 {
		t.Fatalf("expected render sequence 1, got %d", m.renderSeq)
	}
	if !strings.Contains(m.viewport.View(), "Rendering...") {
		t.Fatalf("expected rendering indicator in viewport, got %q", m.viewport.View())
	}
}

func TestRenderMarkdownProducesText(t *testing.T) {
	resetRendererCacheForTests()
	t.Setenv("CLI_DIARY_GLAMOUR_STYLE", "notty")

	out := renderMarkdown(detailMarkdown("2025-03-14", diary.Entry{Text: "pi day"}, true), 60)
	if !strings.Contains(out, "pi day") {
		t.Fatalf("expected entry text in render, got %q", out)
	}
	if !strings.Contains(out, "Fri 14 Mar 2025") {
		t.Fatalf("expected date heading in render, got %q", out)
	}
}

func TestGetRendererEvictsOldestWidth(t *testing.T) {
	resetRendererCacheForTests()
	t.Cleanup(resetRendererCacheForTests)

	for width := 20; width < 20+maxRendererCacheEntries+2; width++ {
		if _, err := getRenderer(width); err != nil {
			t.Fatalf("getRenderer(%d): %v", width, err)
		}
	}
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if len(rendererCache) != maxRendererCacheEntries {
		t.Fatalf("expected %d cached renderers, got %d", maxRendererCacheEntries, len(rendererCache))
	}
	if _, ok := rendererCache[20]; ok {
		t.Fatal("expected the oldest width to be evicted")
	}
}

func TestDetailMarkdown(t *testing.T) {
	t.Run("no entry", func(t *testing.T) {
		got := detailMarkdown("2025-03-15", diary.Entry{}, false)
		if !strings.Contains(got, "## Sat 15 Mar 2025") || !strings.Contains(got, "_No entry yet._") {
			t.Fatalf("unexpected markdown %q", got)
		}
	})

	t.Run("text keeps line breaks", func(t *testing.T) {
		got := detailMarkdown("2025-03-14", diary.Entry{Text: "one\ntwo"}, true)
		if !strings.Contains(got, "one  \ntwo") {
			t.Fatalf("expected hard break, got %q", got)
		}
		if !strings.Contains(got, "_7/30 characters_") {
			t.Fatalf("expected character count, got %q", got)
		}
		if strings.Contains(got, "| Field |") {
			t.Fatalf("expected no table without stored fields, got %q", got)
		}
	})

	t.Run("stored fields", func(t *testing.T) {
		got := detailMarkdown("2025-03-14", diary.Entry{
			Image:         "/a|b.jpg",
			ImgRotation:   diary.Float(0.25),
			TextScale:     diary.Float(1),
			FilterColor:   diary.FilterBlack,
			FilterOpacity: diary.Float(0.4),
		}, true)
		for _, want := range []string{
			`| image | /a\|b.jpg |`,
			"| imgRotation | 0.25 |",
			"| textScale | 1 |",
			"| filter | black |",
			"| filterOpacity | 0.4 |",
		} {
			if !strings.Contains(got, want) {
				t.Fatalf("expected %q in %q", want, got)
			}
		}
		if strings.Contains(got, "imgX") {
			t.Fatalf("unset fields must be skipped, got %q", got)
		}
	})
}
