package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger for cfg. Production uses a JSON handler,
// anything else a text handler. LogLevel may be debug, info, warn or error;
// unknown values mean info. Debug level also records the source location.
func NewLogger(cfg *Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	if opts.Level == slog.LevelDebug {
		opts.AddSource = true
	}
	var h slog.Handler
	if cfg.Environment == "production" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("env", cfg.Environment)
}

func parseLevel(s string) slog.Level {
	switch s {
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
