package beepengine

import (
	"sync"
	"time"

	"github.com/faiface/beep"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// Offline decodes a file without an audio device, advancing through it in step
// with a frame clock. The headless renderer uses it so PNG frames follow the
// music exactly.
//
// Thread-safety: This implementation is thread-safe.
type Offline struct {
	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	tap      *Tap
	track    domain.Track
	consumed int
	ended    bool
	scratch  [][2]float64
}

// OpenOffline decodes path for offline analysis.
func OpenOffline(path string, tapSize int) (*Offline, error) {
	streamer, format, err := Decode(path)
	if err != nil {
		return nil, err
	}
	tap := NewTap(tapSize)
	tap.SetSource(streamer)

	return &Offline{
		streamer: streamer,
		format:   format,
		tap:      tap,
		track:    readTrack(path, format.SampleRate.D(streamer.Len())),
		scratch:  make([][2]float64, 512),
	}, nil
}

// Track returns the decoded track's description.
func (o *Offline) Track() domain.Track {
	return o.track
}

// Tap returns the sample tap to analyse.
func (o *Offline) Tap() *Tap {
	return o.tap
}

// AdvanceTo streams samples until the position reaches t. Earlier times are ignored.
func (o *Offline) AdvanceTo(t time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	want := o.format.SampleRate.N(t) - o.consumed
	for want > 0 && !o.ended {
		chunk := o.scratch[:min(want, len(o.scratch))]
		n, ok := o.tap.Stream(chunk)
		o.consumed += n
		want -= n
		if !ok || n == 0 {
			o.ended = true
		}
	}
}

// IsPlaying implements ports.PlaybackState: true until the stream is exhausted.
func (o *Offline) IsPlaying() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return !o.ended
}

// Position returns how far decoding has progressed.
func (o *Offline) Position() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.format.SampleRate.D(o.consumed)
}

// Close releases the decoder.
func (o *Offline) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ended = true
	return o.streamer.Close()
}

var _ ports.PlaybackState = (*Offline)(nil)
