package log

import (
	"io"
	"log/slog"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Setup initializes the global logger writing JSON records to w.
// logic: default to INFO. If level is invalid, fallback to INFO.
// stdout and stderr belong to the contract protocol, so callers pick the sink.
func Setup(w io.Writer, level string) {
	once.Do(func() {
		if w == nil {
			w = io.Discard
		}
		opts := &slog.HandlerOptions{
			Level: ParseLevel(level),
		}
		logger = slog.New(slog.NewJSONHandler(w, opts))
	})
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the configured logger, or a discarding one if Setup hasn't been called.
func Get() *slog.Logger {
	if logger == nil {
		Setup(io.Discard, "INFO")
	}
	return logger
}

// WithComponent returns a logger with the component field set.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}
