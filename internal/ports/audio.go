// Package ports define interfaces for dependency inversion.
// These interfaces keep the visualization engine independent of audio libraries,
// windowing toolkits and timers.
package ports

import (
	"time"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
)

// SpectrumSource supplies the frequency spectrum of the audio playing right now.
//
// Sample is pull-based and synchronous: it returns the latest amplitude array
// (one value per frequency bin, nominally in [0, 255]) and must not block.
// The returned slice may be reused by the source on the next call.
type SpectrumSource interface {
	Sample() ([]float64, error)
}

// PlaybackState exposes whether audio is currently playing.
// The playback collaborator is the sole writer; the engine reads it once per tick.
type PlaybackState interface {
	IsPlaying() bool
}

// Player is the playback collaborator used by hosts.
// It owns decoding and output; the engine only sees it through PlaybackState.
//
// Implementations must be thread-safe as they may be called from multiple goroutines.
type Player interface {
	PlaybackState

	// Load decodes a file and prepares it for playback, replacing any previous track.
	Load(path string) (domain.Track, error)

	// Play starts or resumes playback of the loaded track.
	Play() error

	// Pause pauses playback, preserving the position.
	Pause() error

	// Position returns the current playback position.
	Position() time.Duration

	// Duration returns the total length of the loaded track.
	Duration() time.Duration

	// Close releases the decoder and the output device.
	Close() error
}

// SampleProvider exposes recently played PCM samples (mono, chronological order).
// It is what a SpectrumSource analyses.
type SampleProvider interface {
	Samples(n int) []float64
}
