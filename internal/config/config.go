package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/cli-diary/internal/calendar"
	"github.com/treykane/cli-diary/internal/logging"
	"github.com/treykane/cli-diary/internal/theme"
)

const (
	configDirName   = ".cli-diary"
	configFileName  = "config.json"
	entriesFileName = "entries.json"
	exportDirName   = "exports"
)

var ErrNotConfigured = errors.New("cli-diary is not configured")

var log = logging.New("config")

// Config stores the persisted cli-diary settings.
type Config struct {
	EntriesPath string            `json:"entries_path"`
	GridMode    calendar.GridMode `json:"grid_mode"`
	DarkMode    bool              `json:"dark_mode"`
	PhotoOnly   bool              `json:"photo_only"`
	Theme       theme.Key         `json:"theme"`
	ExportDir   string            `json:"export_dir,omitempty"`
	Keybindings map[string]string `json:"keybindings,omitempty"`
	// FileWatchIntervalSeconds is how often the calendar checks the entries
	// file for outside changes. Zero means the default of two seconds.
	FileWatchIntervalSeconds int `json:"file_watch_interval_seconds,omitempty"`
}

// ThemeSelection returns the palette choice stored in the config.
func (c Config) ThemeSelection() theme.Selection {
	return theme.Selection{Key: c.Theme, Dark: c.DarkMode}
}

// Dir returns ~/.cli-diary.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DefaultEntriesPath returns where entries live unless configured otherwise.
func DefaultEntriesPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, entriesFileName), nil
}

// DefaultExportDir returns where month exports are written by default.
func DefaultExportDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, exportDirName), nil
}

// Default returns the settings a fresh install starts with.
func Default() (Config, error) {
	entries, err := DefaultEntriesPath()
	if err != nil {
		return Config{}, err
	}
	exports, err := DefaultExportDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		EntriesPath: entries,
		GridMode:    calendar.DefaultMode,
		Theme:       theme.DefaultKey,
		ExportDir:   exports,
	}, nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads and normalizes the saved configuration.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg, err = normalize(cfg)
	if err != nil {
		return Config{}, err
	}
	log.Debug("loaded config", "path", path)
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing config file yields Default.
func LoadOrDefault() (Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotConfigured) {
		return Default()
	}
	return cfg, err
}

// Save writes configuration to disk.
func Save(cfg Config) error {
	cfg, err := normalize(cfg)
	if err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// normalize fills defaults and replaces values that no longer parse.
func normalize(cfg Config) (Config, error) {
	defaults, err := Default()
	if err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.EntriesPath) == "" {
		cfg.EntriesPath = defaults.EntriesPath
	}
	entries, err := NormalizePath(cfg.EntriesPath)
	if err != nil {
		return Config{}, fmt.Errorf("invalid entries_path: %w", err)
	}
	cfg.EntriesPath = entries

	if strings.TrimSpace(cfg.ExportDir) == "" {
		cfg.ExportDir = defaults.ExportDir
	}
	exports, err := NormalizePath(cfg.ExportDir)
	if err != nil {
		return Config{}, fmt.Errorf("invalid export_dir: %w", err)
	}
	cfg.ExportDir = exports

	if cfg.GridMode == "" {
		cfg.GridMode = defaults.GridMode
	} else if mode, err := calendar.ParseGridMode(string(cfg.GridMode)); err != nil {
		log.Warn("unknown grid_mode, using default", "grid_mode", cfg.GridMode, "default", defaults.GridMode)
		cfg.GridMode = defaults.GridMode
	} else {
		cfg.GridMode = mode
	}

	if cfg.Theme == "" {
		cfg.Theme = defaults.Theme
	} else if key, err := theme.ParseKey(string(cfg.Theme)); err != nil {
		log.Warn("unknown theme, using default", "theme", cfg.Theme, "default", defaults.Theme)
		cfg.Theme = defaults.Theme
	} else {
		cfg.Theme = key
	}

	if cfg.FileWatchIntervalSeconds < 0 {
		cfg.FileWatchIntervalSeconds = 0
	}

	return cfg, nil
}

// NormalizePath expands ~ and returns a clean absolute path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
