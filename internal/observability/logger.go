package observability

import (
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig is the subset of settings the logger needs.
type LoggerConfig interface {
	LoggingLevel() string
	LoggingFormat() string
}

// NewLogger builds the process logger: JSON or text handler at the configured
// level. Unknown levels fall back to info.
func NewLogger(cfg LoggerConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LoggingLevel()) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.LoggingFormat()) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
