package logger

import (
	"log/slog"
	"os"
)

// NewTestLogger returns a logger for tests, quiet at WARN unless
// WAVESCOPE_TEST_LOG names another level (for example "debug").
func NewTestLogger() *slog.Logger {
	level := slog.LevelWarn
	if l, ok := ParseLevel(os.Getenv("WAVESCOPE_TEST_LOG")); ok {
		level = l
	}
	return NewLogger(Config{Level: level, Format: "text", Output: os.Stdout})
}
