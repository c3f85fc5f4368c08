package app

import (
	"slices"
	"sort"
	"strings"

	"github.com/treykane/cli-diary/internal/config"
)

// Browse-mode actions. A key press is looked up in keyToAction and the
// resulting action is dispatched in handleBrowseKey. Defaults live in
// defaultActionKeys and can be overridden per action through the
// "keybindings" object in config.json.
const (
	actionMoveLeft   = "cursor.left"
	actionMoveRight  = "cursor.right"
	actionMoveUp     = "cursor.up"
	actionMoveDown   = "cursor.down"
	actionPrevMonth  = "month.prev"
	actionNextMonth  = "month.next"
	actionJumpMonth  = "month.jump"
	actionToday      = "month.today"
	actionGridMode   = "grid.mode.cycle"
	actionTheme      = "theme.cycle"
	actionDark       = "theme.dark.toggle"
	actionPhotoOnly  = "grid.photo_only.toggle"
	actionEditText   = "entry.edit.text"
	actionEditImage  = "entry.edit.image"
	actionDelete     = "entry.delete"
	actionCopy       = "entry.copy"
	actionExportHTML = "export.html"
	actionExportPDF  = "export.pdf"
	actionHelp       = "help.toggle"
	actionQuit       = "app.quit"
)

// defaultActionKeys maps each action to its default keys, in Bubble Tea key
// notation. Shifted letters are written "shift+x"; normalizeKeyString maps
// the uppercase rune a terminal reports onto that form.
var defaultActionKeys = map[string][]string{
	actionMoveLeft:   {"left", "h"},
	actionMoveRight:  {"right", "l"},
	actionMoveUp:     {"up", "k"},
	actionMoveDown:   {"down", "j"},
	actionPrevMonth:  {"[", "pgup"},
	actionNextMonth:  {"]", "pgdown"},
	actionJumpMonth:  {"m"},
	actionToday:      {"."},
	actionGridMode:   {"g"},
	actionTheme:      {"t"},
	actionDark:       {"shift+d"},
	actionPhotoOnly:  {"o"},
	actionEditText:   {"e", "enter"},
	actionEditImage:  {"i"},
	actionDelete:     {"x"},
	actionCopy:       {"y"},
	actionExportHTML: {"shift+e"},
	actionExportPDF:  {"shift+p"},
	actionHelp:       {"?"},
	actionQuit:       {"q", "ctrl+c"},
}

// loadKeybindings builds the key maps from the defaults plus cfg overrides.
// An override replaces the action's whole default key set. Unknown actions
// and key conflicts are logged and ignored; on conflict the first action in
// sorted order keeps the key.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}
	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}
	m.rebuildActionKeyIndex()
}

func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

func (m *Model) rebuildActionKeyIndex() {
	actions := make([]string, 0, len(m.keyForAction))
	for action := range m.keyForAction {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	m.keyToAction = map[string]string{}
	for _, action := range actions {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// normalizeKeyString lowercases a key and rewrites a lone uppercase letter
// ("Y") as "shift+y", so either spelling works in config and both match
// what Bubble Tea reports.
func normalizeKeyString(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey returns the action bound to key, or "".
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" || slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (m *Model) primaryActionKey(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return keys[0]
}

func (m *Model) allActionKeys(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, "/")
}

var specialKeyLabels = map[string]string{
	"up":     "↑",
	"down":   "↓",
	"left":   "←",
	"right":  "→",
	"enter":  "Enter",
	"esc":    "Esc",
	"tab":    "Tab",
	"pgup":   "PgUp",
	"pgdown": "PgDn",
	"space":  "Space",
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	if normalized == "+" {
		return "+"
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := specialKeyLabels[part]; ok {
				parts[i] = label
				continue
			}
			runes := []rune(part)
			if len(runes) == 1 && runes[0] >= 'a' && runes[0] <= 'z' {
				parts[i] = part
			} else if part != "" {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
	}
	label := strings.Join(parts, "+")
	// "Shift+d" reads better as the letter the user types.
	if len(parts) == 2 && parts[0] == "Shift" && len([]rune(parts[1])) == 1 {
		return strings.ToUpper(parts[1])
	}
	return label
}
