// Package logger provides structured logging configuration using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string // "text" or "json"
	Output io.Writer
}

// NewLogger creates a configured slog.Logger. Output defaults to stderr.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps DEBUG, INFO, WARN, WARNING and ERROR (any case) to a slog level.
// The second result is false for anything else.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// DefaultConfig returns the default logger configuration.
// WAVESCOPE_LOG_LEVEL overrides the INFO default.
func DefaultConfig() Config {
	level := slog.LevelInfo
	if env := os.Getenv("WAVESCOPE_LOG_LEVEL"); env != "" {
		if l, ok := ParseLevel(env); ok {
			level = l
		}
	}

	return Config{
		Level:  level,
		Format: "text",
	}
}
