// Package logging builds the console logger used by the command-line tool.
package logging

import (
	"io"
	"log/slog"
	"strings"

	console "github.com/phsym/console-slog"
)

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// BuildLogger creates a console logger writing to w at the given level.
// Colors are disabled unless color is true.
func BuildLogger(level string, w io.Writer, color bool) *slog.Logger {
	handler := console.NewHandler(w, &console.HandlerOptions{
		Level:   ParseLevel(level),
		NoColor: !color,
	})
	return slog.New(handler)
}
