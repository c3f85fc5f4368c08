package app

import (
	"log/slog"

	"github.com/treykane/cli-diary/internal/logging"
)

// appLog is the package logger. Output goes to stderr so it never mixes with
// the alt-screen UI.
var appLog = logging.New("app")

// setStatusError shows status in the footer and logs it with err and any
// extra slog key-value attrs.
//
//	m.setStatusError("Save failed", err, "key", key)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
