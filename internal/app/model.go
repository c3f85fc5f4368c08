package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-diary/internal/config"
	"github.com/treykane/cli-diary/internal/diary"
	"github.com/treykane/cli-diary/internal/theme"
)

// EntryStore is the persistence the UI writes entries through.
type EntryStore interface {
	Put(key diary.DateKey, entry diary.Entry) error
	Delete(key diary.DateKey) error
	Snapshot() diary.Entries
	Reload() error
	Path() string
}

// Options configures New.
type Options struct {
	Config config.Config
	Store  EntryStore
	// SaveConfig persists settings changes. Defaults to config.Save.
	SaveConfig func(config.Config) error
	// Now picks the month the UI opens on. Defaults to time.Now.
	Now func() time.Time
	// Status is the footer message shown on start. Defaults to "Ready".
	Status string
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	state      State
	cfg        config.Config
	store      EntryStore
	saveConfig func(config.Config) error
	now        func() time.Time

	// Key bindings
	keyForAction map[string][]string
	keyToAction  map[string]string

	// UI widgets
	viewport viewport.Model
	editor   textarea.Model
	input    textinput.Model
	spinner  spinner.Model
	status   string
	showHelp bool

	debugInput bool

	// Layout sizing
	width  int
	height int

	// Cached styles for the active theme selection
	palette    palette
	paletteFor theme.Selection
	hasPalette bool

	// Background export
	exporting bool

	// Text editor undo/redo
	editorUndo             []string
	editorRedo             []string
	typingBurstActive      bool
	typingBurstLastInputAt time.Time

	// System clipboard access, replaceable in tests
	clipboardWrite func(string) error
	clipboardRead  func() (string, error)

	// Entries file polling
	fileWatchInterval time.Duration
	fileWatch         fileWatchEntry
	fileWatchStarted  bool

	// Debounced detail render bookkeeping
	renderSeq    int
	pendingKey   diary.DateKey
	pendingWidth int
	rendering    bool
	renderCache  map[diary.DateKey]renderCacheEntry
}

// New prepares the initial UI model.
func New(opts Options) (*Model, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("app: entry store is required")
	}
	if opts.SaveConfig == nil {
		opts.SaveConfig = config.Save
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Status == "" {
		opts.Status = "Ready"
	}

	vp := viewport.New(0, 0)

	input := textinput.New()
	input.CharLimit = ImageCharLimit

	editor := textarea.New()
	editor.Placeholder = "A few words for the day..."
	// The textarea limit counts display columns; entry length is enforced
	// by limitEditorInput instead.
	editor.CharLimit = 0

	spin := spinner.New()
	spin.Spinner = spinner.Line

	m := &Model{
		state:       NewState(opts.Now(), SettingsFromConfig(opts.Config), opts.Store.Snapshot()),
		cfg:         opts.Config,
		store:       opts.Store,
		saveConfig:  opts.SaveConfig,
		now:         opts.Now,
		viewport:    vp,
		editor:      editor,
		input:       input,
		spinner:     spin,
		status:      opts.Status,
		renderCache: map[diary.DateKey]renderCacheEntry{},
		debugInput:  os.Getenv("CLI_DIARY_DEBUG_INPUT") != "",

		clipboardWrite:    systemClipboardWrite,
		clipboardRead:     systemClipboardRead,
		fileWatchInterval: FileWatchInterval,
	}
	if secs := opts.Config.FileWatchIntervalSeconds; secs > 0 {
		m.fileWatchInterval = time.Duration(secs) * time.Second
	}
	m.loadKeybindings(opts.Config)
	applyEditorTheme(&m.editor, m.styles())
	return m, nil
}

// State returns a copy of the current UI state.
func (m *Model) State() State {
	return m.state
}

// Init starts the spinner, renders the first detail pane and begins polling
// the entries file.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.requestDetailRender(), m.scheduleFileWatchTick())
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case renderRequestMsg:
		return m.handleRenderRequest(msg)
	case renderResultMsg:
		return m.handleRenderResult(msg)
	case exportResultMsg:
		return m.handleExportResult(msg)
	case fileWatchTickMsg:
		return m.handleFileWatchTick(msg)
	case tea.KeyMsg:
		if m.shouldIgnoreInput(msg) {
			return m, nil
		}
		switch m.state.Modal {
		case ModalEditText:
			return m.handleEditTextKey(msg)
		case ModalEditImage:
			return m.handleEditImageKey(msg)
		case ModalJumpMonth:
			return m.handleJumpMonthKey(msg)
		case ModalConfirmDelete:
			return m.handleConfirmDeleteKey(msg)
		default:
			return m.handleBrowseKey(msg.String())
		}
	}
	return m, nil
}

// dispatch applies an action and keeps derived widgets in step.
func (m *Model) dispatch(a Action) {
	m.state = Reduce(m.state, a)
}

// styles returns the palette for the current theme selection, rebuilding it
// only when the selection changed.
func (m *Model) styles() palette {
	sel := m.state.ThemeSelection()
	if !m.hasPalette || sel != m.paletteFor {
		m.palette = newPalette(sel)
		m.paletteFor = sel
		m.hasPalette = true
	}
	return m.palette
}

// updateLayout recomputes the layout and resizes widgets to fit.
func (m *Model) updateLayout() {
	m.applyLayout(m.calculateLayout())
}

// persistSettings writes the display settings after a settings action.
func (m *Model) persistSettings() {
	m.cfg = m.state.Settings.Apply(m.cfg)
	if err := m.saveConfig(m.cfg); err != nil {
		m.setStatusError("Settings changed but could not be saved", err)
	}
}

// shouldIgnoreInput drops rune events that are really terminal replies or
// control sequences leaking into the key stream, such as the OSC 11
// background-colour response some terminals send after a query.
func (m *Model) shouldIgnoreInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	sequence := msg.String()
	if isOSCColorResponse(sequence) || containsControlRunes(sequence) {
		if m.debugInput {
			m.status = fmt.Sprintf("Ignored input: %q", sequence)
		}
		return true
	}
	return false
}

func isOSCColorResponse(sequence string) bool {
	index := strings.Index(sequence, "rgb:")
	if index == -1 {
		return false
	}
	parts := strings.SplitN(sequence[index+len("rgb:"):], "/", 3)
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		part = strings.TrimRight(part, "\x1b\\\a")
		if len(part) < 2 || !isHex(part) {
			return false
		}
	}
	return true
}

func containsControlRunes(sequence string) bool {
	for _, r := range sequence {
		switch {
		case r == '\n' || r == '\t':
			continue
		case r < 32 || r == 127:
			return true
		}
	}
	return false
}

func isHex(value string) bool {
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
