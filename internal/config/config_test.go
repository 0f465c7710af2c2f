package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wavescope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Setenv("WAVESCOPE_LOG_LEVEL", "")
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "bars", cfg.Mode)
	assert.Equal(t, 128, cfg.BufferLength)
	assert.Equal(t, 100, cfg.ParticleCount)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	engine, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeBars, engine.Mode)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
mode: Particles
particle_count: 250
seed: 7
analyser:
  smoothing: 0.5
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.ParticleCount)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 128, cfg.BufferLength, "unset keys keep defaults")
	assert.Equal(t, 60, cfg.FrameRate)
	assert.InDelta(t, 0.5, cfg.Analyser.Smoothing, 1e-12)
	assert.InDelta(t, -100, cfg.Analyser.MinDecibels, 1e-12)

	engine, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeParticles, engine.Mode)
	assert.Equal(t, uint64(7), engine.Seed)

	lc := cfg.LoggerConfig()
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.Equal(t, "json", lc.Format)

	ac := cfg.AnalyserConfig()
	assert.Equal(t, 128, ac.BufferLength)
	assert.InDelta(t, -30, ac.MaxDecibels, 1e-12)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"unknown mode", "mode: spiral", "mode"},
		{"zero buffer", "buffer_length: 0", "buffer_length"},
		{"negative particles", "particle_count: -1", "particle_count"},
		{"frame rate too high", "frame_rate: 1000", "frame_rate"},
		{"zero width", "width: 0", "width"},
		{"zero height", "height: 0", "height"},
		{"smoothing one", "analyser:\n  smoothing: 1", "analyser.smoothing"},
		{"inverted decibels", "analyser:\n  min_decibels: -10", "analyser.min_decibels"},
		{"bad level", "log:\n  level: loud", "log.level"},
		{"bad format", "log:\n  format: xml", "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.yaml))

			require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			var cfgErr *domain.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeFile(t, "mode: [bars"))

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestSave_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "radial"
	cfg.Width = 1024
	path := filepath.Join(t.TempDir(), "out.yaml")

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
}
