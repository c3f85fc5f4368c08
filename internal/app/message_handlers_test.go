package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-diary/internal/diary"
)

func TestHandleWindowResizeUpdatesLayout(t *testing.T) {
	m := newTestModel(t, nil)

	m.Update(tea.WindowSizeMsg{Width: 150, Height: 50})

	if m.width != 150 || m.height != 50 {
		t.Fatalf("expected size 150x50, got %dx%d", m.width, m.height)
	}
	layout := m.calculateLayout()
	if m.viewport.Width != layout.ViewportWidth || m.viewport.Height != layout.ViewportHeight {
		t.Fatalf("viewport %dx%d does not match layout %dx%d",
			m.viewport.Width, m.viewport.Height, layout.ViewportWidth, layout.ViewportHeight)
	}
}

func TestHandleRenderRequestDropsSupersededRequests(t *testing.T) {
	m := newTestModel(t, nil)
	m.requestDetailRender()
	stale := renderRequestMsg{key: m.pendingKey, width: m.pendingWidth, seq: m.renderSeq - 1}

	if _, cmd := m.Update(stale); cmd != nil {
		t.Fatal("expected superseded render request to be dropped")
	}

	current := renderRequestMsg{key: m.pendingKey, width: m.pendingWidth, seq: m.renderSeq, source: "x"}
	if _, cmd := m.Update(current); cmd == nil {
		t.Fatal("expected current render request to start a render")
	}
}

func TestHandleRenderResultShowsCurrentAndCachesAll(t *testing.T) {
	m := newTestModel(t, nil)
	m.requestDetailRender()
	key := m.state.SelectedKey()
	width := renderWidthBucket(m.viewport.Width)

	m.Update(renderResultMsg{key: "2025-03-01", source: "other", width: width, seq: m.renderSeq, content: "other-day"})
	if strings.Contains(m.viewport.View(), "other-day") {
		t.Fatal("result for another day must not be shown")
	}
	if _, ok := m.renderCache["2025-03-01"]; !ok {
		t.Fatal("expected result for another day to be cached")
	}

	m.Update(renderResultMsg{key: key, source: "src", width: width, seq: m.renderSeq, content: "rendered-entry"})
	if !strings.Contains(m.viewport.View(), "rendered-entry") {
		t.Fatalf("expected rendered content, got %q", m.viewport.View())
	}
	if m.rendering {
		t.Fatal("expected rendering to finish")
	}
}

func TestHandleSpinnerTickIdleIsNoop(t *testing.T) {
	m := newTestModel(t, nil)
	m.rendering = false
	m.exporting = false
	if _, cmd := m.Update(spinner.TickMsg{}); cmd != nil {
		t.Fatal("expected idle spinner tick to stop")
	}
}

func TestSelectionChangeRequestsRender(t *testing.T) {
	m := newTestModel(t, diary.Entries{"2025-03-15": {Text: "ides eve"}})
	before := m.renderSeq
	if cmd := press(t, m, "l"); cmd == nil {
		t.Fatal("expected a render command after moving")
	}
	if m.renderSeq != before+1 || m.pendingKey != "2025-03-15" {
		t.Fatalf("expected pending render for 2025-03-15, got seq %d key %q", m.renderSeq, m.pendingKey)
	}
}
