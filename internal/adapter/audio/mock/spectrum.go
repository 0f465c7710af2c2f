package mock

import (
	"math"
	"sync"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// Spectrum is a programmable SpectrumSource.
//
// By default it returns the bins set with SetBins. With a clock attached
// (NewSyntheticSpectrum) it generates a moving test pattern instead.
//
// Thread-safety: This implementation is thread-safe.
type Spectrum struct {
	mu    sync.Mutex
	bins  []float64
	err   error
	clock ports.Clock
	calls int
}

// NewSpectrum returns a source that always yields a copy of bins.
func NewSpectrum(bins []float64) *Spectrum {
	s := &Spectrum{}
	s.SetBins(bins)
	return s
}

// NewUniformSpectrum returns n bins all holding v.
func NewUniformSpectrum(n int, v float64) *Spectrum {
	bins := make([]float64, n)
	for i := range bins {
		bins[i] = v
	}
	return NewSpectrum(bins)
}

// NewSyntheticSpectrum returns an n-bin source whose values roll with clock:
// a low-frequency hump that pulses about twice per second.
func NewSyntheticSpectrum(n int, clock ports.Clock) *Spectrum {
	return &Spectrum{bins: make([]float64, n), clock: clock}
}

// SetBins replaces the returned bins.
func (s *Spectrum) SetBins(bins []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bins = append(s.bins[:0], bins...)
}

// SetError makes Sample fail with err until cleared with nil.
func (s *Spectrum) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls returns how many times Sample was invoked.
func (s *Spectrum) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Sample implements ports.SpectrumSource.
func (s *Spectrum) Sample() ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.clock != nil {
		s.synthesize()
	}

	out := make([]float64, len(s.bins))
	copy(out, s.bins)
	return out, nil
}

func (s *Spectrum) synthesize() {
	t := s.clock.Now().Seconds()
	n := float64(len(s.bins))
	pulse := 0.6 + 0.4*math.Abs(math.Sin(t*2*math.Pi))
	for i := range s.bins {
		x := float64(i) / n
		hump := math.Exp(-x * 3)
		ripple := 0.5 + 0.5*math.Sin(x*24-t*6)
		s.bins[i] = domain.MaxAmplitude * pulse * (0.7*hump + 0.3*ripple*hump)
	}
}

var _ ports.SpectrumSource = (*Spectrum)(nil)
