package beepengine

import (
	"sync"

	"github.com/faiface/beep"

	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// DefaultTapSize holds a little over 40ms at 48kHz, enough for a 2048-point FFT.
const DefaultTapSize = 2048

// Tap is a pass-through streamer that keeps the most recently streamed samples,
// mixed down to mono, in a ring buffer for spectrum analysis.
//
// Thread-safety: This implementation is thread-safe. The speaker goroutine
// streams while the engine reads Samples.
type Tap struct {
	mu     sync.RWMutex
	source beep.Streamer
	ring   []float64
	next   int
	filled bool
	total  int
}

// NewTap creates a tap remembering up to size samples.
func NewTap(size int) *Tap {
	if size <= 0 {
		size = DefaultTapSize
	}
	return &Tap{ring: make([]float64, size)}
}

// SetSource replaces the upstream streamer and forgets the recorded history.
func (t *Tap) SetSource(s beep.Streamer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.source = s
	t.next, t.filled, t.total = 0, false, 0
	clear(t.ring)
}

// Stream implements beep.Streamer.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	t.mu.RLock()
	src := t.source
	t.mu.RUnlock()
	if src == nil {
		return 0, false
	}

	n, ok := src.Stream(samples)
	if n > 0 {
		t.record(samples[:n])
	}
	return n, ok
}

func (t *Tap) record(samples [][2]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range samples {
		t.ring[t.next] = (s[0] + s[1]) / 2
		t.next++
		if t.next == len(t.ring) {
			t.next = 0
			t.filled = true
		}
	}
	t.total += len(samples)
}

// Err implements beep.Streamer.
func (t *Tap) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.source == nil {
		return nil
	}
	return t.source.Err()
}

// Samples implements ports.SampleProvider: up to n of the latest samples,
// oldest first.
func (t *Tap) Samples(n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	have := t.next
	if t.filled {
		have = len(t.ring)
	}
	n = min(n, have)

	out := make([]float64, n)
	start := t.next - n
	if start < 0 {
		start += len(t.ring)
	}
	for i := range out {
		out[i] = t.ring[(start+i)%len(t.ring)]
	}
	return out
}

// Streamed returns the number of samples that went through since the last SetSource.
func (t *Tap) Streamed() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

var (
	_ beep.Streamer        = (*Tap)(nil)
	_ ports.SampleProvider = (*Tap)(nil)
)
