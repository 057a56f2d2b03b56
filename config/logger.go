package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a slog.Logger configured from GO_ENV and LOG_LEVEL, writing to stdout.
func NewLogger() *slog.Logger {
	return newLogger(os.Stdout, os.Getenv("GO_ENV"), os.Getenv("LOG_LEVEL"))
}

// NewCLILogger is NewLogger for the terminal client: logs go to stderr so
// they never mix with table output.
func NewCLILogger() *slog.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	return newLogger(os.Stderr, os.Getenv("GO_ENV"), level)
}

// Production uses JSON handler; otherwise text handler.
// LOG_LEVEL may be: debug, info, warn, error (default: info).
func newLogger(w io.Writer, env, levelName string) *slog.Logger {
	if env == "" {
		env = "development"
	}
	opts := &slog.HandlerOptions{Level: parseLevel(levelName)}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
