package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/learning-oracle/internal/config"
)

// NewLogger creates the process logger writing to stderr and installs it as
// the slog default. Every record carries the build version.
//
// Format "json" is meant for production, anything else yields text with
// source locations. Level is debug, info, warn or error (case-insensitive)
// and defaults to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := slog.New(newHandler(os.Stderr, cfg)).With(slog.String("version", Version))
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	text := !strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}
	if text {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
