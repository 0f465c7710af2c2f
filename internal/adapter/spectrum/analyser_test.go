package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
)

func sine(cycles, amplitude float64) SampleFunc {
	return func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = amplitude * math.Sin(2*math.Pi*cycles*float64(i)/float64(n))
		}
		return out
	}
}

func silence(n int) []float64 {
	return make([]float64, n)
}

func argmax(v []float64) int {
	best := 0
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func TestAnalyser_SilenceIsZero(t *testing.T) {
	a, err := NewAnalyser(SampleFunc(silence), DefaultConfig())
	require.NoError(t, err)

	out, err := a.Sample()
	require.NoError(t, err)

	assert.Len(t, out, 128)
	for _, v := range out {
		assert.Zero(t, v)
	}
	assert.Equal(t, 256, a.FFTSize())
}

func TestAnalyser_SinePeaksAtItsBin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Smoothing = 0
	// Quiet enough that the peak stays below the 255 ceiling.
	a, err := NewAnalyser(sine(20, 0.01), cfg)
	require.NoError(t, err)

	out, err := a.Sample()
	require.NoError(t, err)

	assert.Equal(t, 20, argmax(out))
	assert.Less(t, out[20], 255.0)
	assert.Greater(t, out[20], out[19])
	assert.Greater(t, out[20], out[21])
	for _, v := range out {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 255.0)
	}
}

func TestAnalyser_SmoothingDecaysGradually(t *testing.T) {
	playing := true
	provider := SampleFunc(func(n int) []float64 {
		if playing {
			return sine(10, 1)(n)
		}
		return silence(n)
	})

	smooth, err := NewAnalyser(provider, DefaultConfig())
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Smoothing = 0
	sharp, err := NewAnalyser(provider, cfg)
	require.NoError(t, err)

	for range 10 {
		_, _ = smooth.Sample()
		_, _ = sharp.Sample()
	}

	playing = false
	s, _ := smooth.Sample()
	h, _ := sharp.Sample()

	assert.Positive(t, s[10], "history keeps the bin alive")
	assert.Zero(t, h[10])

	smooth.Reset()
	s, _ = smooth.Sample()
	assert.Zero(t, s[10])
}

func TestAnalyser_LoudInputSaturates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Smoothing = 0
	a, err := NewAnalyser(sine(8, 1), cfg)
	require.NoError(t, err)

	out, err := a.Sample()
	require.NoError(t, err)
	assert.Equal(t, 255.0, out[8])
}

func TestAnalyser_ShortInputIsPadded(t *testing.T) {
	a, err := NewAnalyser(SampleFunc(func(int) []float64 { return []float64{1, -1, 1} }), DefaultConfig())
	require.NoError(t, err)

	out, err := a.Sample()
	require.NoError(t, err)
	assert.Len(t, out, 128)
}

func TestAnalyser_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{"buffer", func(c *Config) { c.BufferLength = 0 }, "buffer_length"},
		{"smoothing", func(c *Config) { c.Smoothing = 1 }, "analyser.smoothing"},
		{"decibels", func(c *Config) { c.MinDecibels = -10 }, "analyser.min_decibels"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(&cfg)
			_, err := NewAnalyser(SampleFunc(silence), cfg)
			var cfgErr *domain.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	_, err := NewAnalyser(nil, DefaultConfig())
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}
