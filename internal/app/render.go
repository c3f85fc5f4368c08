// render.go renders the selected entry into the detail pane through Glamour.
//
// Rendering is debounced and cached. Moving the selection bumps renderSeq and
// schedules a render after RenderDebounce, so holding an arrow key only
// renders where the cursor stops. Finished renders are cached per date key
// together with the markdown source and width bucket they were made from;
// a cache entry is reused only when both still match.
//
// Glamour renderers are cached per width bucket behind a mutex, since
// renders run on background goroutines. The style comes from
// CLI_DIARY_GLAMOUR_STYLE or GLAMOUR_STYLE and defaults to "dark".
package app

import (
	"container/list"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/treykane/cli-diary/internal/diary"
)

type renderCacheEntry struct {
	source  string // markdown the render was made from
	width   int    // width bucket used for word wrapping
	content string // ANSI output, ready for the viewport
}

type renderRequestMsg struct {
	key    diary.DateKey
	source string
	width  int
	seq    int
}

type renderResultMsg struct {
	key     diary.DateKey
	source  string
	width   int
	seq     int
	content string
}

var (
	maxRendererCacheEntries = 8

	rendererCacheMu    sync.Mutex
	rendererCache      = map[int]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[int]*list.Element{}
)

// requestDetailRender shows the selected entry in the detail pane, from
// cache when possible, otherwise via a debounced background render.
func (m *Model) requestDetailRender() tea.Cmd {
	key := m.state.SelectedKey()
	entry, ok := m.state.SelectedEntry()
	source := detailMarkdown(key, entry, ok)
	width := renderWidthBucket(m.viewport.Width)

	if cached, hit := m.renderCache[key]; hit && cached.width == width && cached.source == source {
		m.viewport.SetContent(cached.content)
		m.viewport.GotoTop()
		m.rendering = false
		return nil
	}

	m.rendering = true
	m.viewport.SetContent(m.spinner.View() + " Rendering...")
	m.renderSeq++
	seq := m.renderSeq
	m.pendingKey = key
	m.pendingWidth = width
	return tea.Tick(RenderDebounce, func(time.Time) tea.Msg {
		return renderRequestMsg{key: key, source: source, width: width, seq: seq}
	})
}

// renderDetailCmd runs Glamour off the UI goroutine.
func renderDetailCmd(req renderRequestMsg) tea.Cmd {
	return func() tea.Msg {
		return renderResultMsg{
			key:     req.key,
			source:  req.source,
			width:   req.width,
			seq:     req.seq,
			content: renderMarkdown(req.source, req.width),
		}
	}
}

// renderMarkdown converts markdown to ANSI. If Glamour fails the source is
// returned as-is so the pane still shows something.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(width)
	if err != nil {
		appLog.Error("create markdown renderer", "width", width, "error", err)
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		appLog.Error("render markdown content", "width", width, "error", err)
		return content
	}
	return out
}

func getRenderer(width int) (*glamour.TermRenderer, error) {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if renderer, ok := rendererCache[width]; ok {
		if node, ok := rendererCacheNodes[width]; ok {
			rendererCacheOrder.MoveToBack(node)
		}
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[width] = renderer
	rendererCacheNodes[width] = rendererCacheOrder.PushBack(width)
	for len(rendererCache) > maxRendererCacheEntries && rendererCacheOrder.Len() > 0 {
		oldest := rendererCacheOrder.Front()
		w, _ := oldest.Value.(int)
		rendererCacheOrder.Remove(oldest)
		delete(rendererCache, w)
		delete(rendererCacheNodes, w)
	}
	return renderer, nil
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache = map[int]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[int]*list.Element{}
}

// glamourStyleOption resolves the style from CLI_DIARY_GLAMOUR_STYLE, then
// GLAMOUR_STYLE, then "dark". "auto" asks Glamour to query the terminal.
func glamourStyleOption() glamour.TermRendererOption {
	style := strings.ToLower(strings.TrimSpace(os.Getenv("CLI_DIARY_GLAMOUR_STYLE")))
	if style == "" {
		style = strings.ToLower(strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")))
	}
	switch style {
	case "auto":
		return glamour.WithAutoStyle()
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}
