// Package spectrum turns recently played PCM samples into the byte-scaled
// frequency data the visualization engine consumes.
package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// Config controls the analysis.
type Config struct {
	BufferLength int     // Output bins; the FFT size is twice this
	Smoothing    float64 // Weight of the previous frame, in [0, 1)
	MinDecibels  float64 // Maps to 0
	MaxDecibels  float64 // Maps to 255
}

// DefaultConfig mirrors the usual web audio analyser defaults for a 256-point FFT.
func DefaultConfig() Config {
	return Config{
		BufferLength: 128,
		Smoothing:    0.8,
		MinDecibels:  -100,
		MaxDecibels:  -30,
	}
}

// Validate returns a *domain.ConfigurationError for the first bad field.
func (c Config) Validate() error {
	if c.BufferLength <= 0 {
		return domain.NewConfigurationError("buffer_length", c.BufferLength, "must be positive")
	}
	if c.Smoothing < 0 || c.Smoothing >= 1 {
		return domain.NewConfigurationError("analyser.smoothing", c.Smoothing, "must be in [0, 1)")
	}
	if c.MinDecibels >= c.MaxDecibels {
		return domain.NewConfigurationError("analyser.min_decibels", c.MinDecibels, "must be below max_decibels")
	}
	return nil
}

// SampleFunc adapts a function to ports.SampleProvider.
type SampleFunc func(n int) []float64

// Samples implements ports.SampleProvider.
func (f SampleFunc) Samples(n int) []float64 {
	return f(n)
}

// Analyser is a SpectrumSource computing a windowed FFT over the most recent
// samples, smoothing magnitudes over time and mapping them from decibels onto
// [0, 255].
//
// Thread-safety: This implementation is thread-safe.
type Analyser struct {
	provider ports.SampleProvider
	cfg      Config
	size     int

	mu       sync.Mutex
	window   []float64
	input    []float64
	smoothed []float64
}

// NewAnalyser creates an analyser reading from provider.
func NewAnalyser(provider ports.SampleProvider, cfg Config) (*Analyser, error) {
	if provider == nil {
		return nil, domain.NewConfigurationError("sample_provider", nil, "is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	size := cfg.BufferLength * 2
	return &Analyser{
		provider: provider,
		cfg:      cfg,
		size:     size,
		window:   window.Blackman(size),
		input:    make([]float64, size),
		smoothed: make([]float64, cfg.BufferLength),
	}, nil
}

// FFTSize returns the number of samples analysed per call.
func (a *Analyser) FFTSize() int {
	return a.size
}

// Sample implements ports.SpectrumSource. Fewer samples than the FFT size are
// treated as preceded by silence.
func (a *Analyser) Sample() ([]float64, error) {
	samples := a.provider.Samples(a.size)

	a.mu.Lock()
	defer a.mu.Unlock()

	if len(samples) > a.size {
		samples = samples[len(samples)-a.size:]
	}
	pad := a.size - len(samples)
	clear(a.input[:pad])
	copy(a.input[pad:], samples)
	for i := range a.input {
		a.input[i] *= a.window[i]
	}

	bins := fft.FFTReal(a.input)

	out := make([]float64, a.cfg.BufferLength)
	scale := domain.MaxAmplitude / (a.cfg.MaxDecibels - a.cfg.MinDecibels)
	tau := a.cfg.Smoothing

	for k := range out {
		mag := cmplx.Abs(bins[k]) / float64(a.size)
		if math.IsNaN(mag) || math.IsInf(mag, 0) {
			mag = 0
		}
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*mag

		if a.smoothed[k] <= 0 {
			continue
		}
		db := 20 * math.Log10(a.smoothed[k])
		out[k] = math.Max(0, math.Min(domain.MaxAmplitude, (db-a.cfg.MinDecibels)*scale))
	}

	return out, nil
}

// Reset forgets the smoothing history, e.g. when a new track starts.
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.smoothed)
}

var _ ports.SpectrumSource = (*Analyser)(nil)
