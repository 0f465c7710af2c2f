package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  slog.Level
		known bool
	}{
		{"debug", slog.LevelDebug, true},
		{" INFO ", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, false},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, level)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestNewLogger_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Level: slog.LevelWarn, Format: "json", Output: &buf})

	log.Info("hidden")
	log.Warn("shown", slog.String("component", "engine"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "engine", entry["component"])
}

func TestNewLogger_TextIsDefault(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Level: slog.LevelInfo, Output: &buf})

	log.Info("visualizer started")

	assert.Contains(t, buf.String(), "msg=\"visualizer started\"")
}

func TestDefaultConfig_EnvironmentLevel(t *testing.T) {
	t.Setenv("WAVESCOPE_LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, DefaultConfig().Level)

	t.Setenv("WAVESCOPE_LOG_LEVEL", "nonsense")
	assert.Equal(t, slog.LevelInfo, DefaultConfig().Level)
}
