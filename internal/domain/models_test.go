package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpectrum_Clamps(t *testing.T) {
	s := NewSpectrum([]float64{-4, 0, 12.7, 255, 300, math.NaN()})

	assert.Equal(t, Spectrum{0, 0, 12, 255, 255, 0}, s)
}

func TestSpectrum_FillReusesBuffer(t *testing.T) {
	s := make(Spectrum, 3)
	s.Fill([]float64{1, 1000, -1, 7})
	assert.Equal(t, Spectrum{1, 255, 0}, s)

	s.Fill([]float64{9})
	assert.Equal(t, Spectrum{9, 255, 0}, s)
}

func TestSpectrum_Mean(t *testing.T) {
	assert.Equal(t, 0.0, Spectrum{}.Mean())
	assert.Equal(t, 128.0, Spectrum{0, 256 - 1, 129}.Mean())
}

func TestSpectrum_Level(t *testing.T) {
	s := Spectrum{0, 51, 255}
	assert.Equal(t, 0.0, s.Level(0))
	assert.InDelta(t, 0.2, s.Level(1), 1e-9)
	assert.Equal(t, 1.0, s.Level(2))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		want Mode
	}{
		{"bars", ModeBars},
		{"Radial", ModeRadial},
		{" WAVE ", ModeWave},
		{"particles", ModeParticles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMode(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestParseMode_Unknown(t *testing.T) {
	_, err := ParseMode("plasma")
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "mode", cfgErr.Field)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestMode_StringAndValid(t *testing.T) {
	for _, info := range Modes() {
		assert.True(t, info.Mode.Valid())
		parsed, err := ParseMode(info.Mode.String())
		require.NoError(t, err)
		assert.Equal(t, info.Mode, parsed)
	}

	assert.False(t, ModeCount.Valid())
	assert.False(t, Mode(-1).Valid())
	assert.Equal(t, "unknown", Mode(42).String())
}

func TestTrack_DisplayName(t *testing.T) {
	assert.Equal(t, "Song", Track{Title: "Song"}.DisplayName())
	assert.Equal(t, "Band - Song", Track{Title: "Song", Artist: "Band"}.DisplayName())
}

func TestFrameError_Unwrap(t *testing.T) {
	err := NewFrameError("sample", "wrong length", ErrSpectrumUnavailable)

	assert.ErrorIs(t, err, ErrSpectrumUnavailable)
	assert.Contains(t, err.Error(), "wrong length")
}
