// Package logging provides the shared structured logger for cli-diary.
//
// Every component derives its logger from one slog base logger so output and
// level stay consistent. The level comes from CLI_DIARY_LOG_LEVEL (debug,
// info, warn, error) and defaults to info. Output goes to stderr, keeping the
// terminal UI on stdout clean.
//
//	log := logging.New("store")
//	log.Warn("dropped entry", "key", key)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "CLI_DIARY_LOG_LEVEL"

var (
	initLogger sync.Once
	baseLogger *slog.Logger
)

// New returns a logger tagged with component="<component>". An empty
// component returns the base logger. The base logger is created lazily on the
// first call.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = newBase(os.Stderr, os.Getenv(LevelEnv))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

func newBase(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

// parseLevel maps a case-insensitive level name to a slog.Level. Unknown
// values mean info.
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
