// Package domain contains core visualization models and logic with no external dependencies.
// This package defines the fundamental entities of the wavescope engine.
package domain

import (
	"math"
	"strings"
	"time"
)

// MaxAmplitude is the largest value a spectrum bin can hold.
const MaxAmplitude = 255

// Spectrum is one tick's snapshot of per-bin amplitude magnitudes in [0, 255].
// The engine only ever reads it.
type Spectrum []uint8

// NewSpectrum converts raw analyser output into a Spectrum.
// Values outside [0, 255] are clamped and NaN becomes 0, since an analyser
// implementation may hand back slightly out-of-range data.
func NewSpectrum(raw []float64) Spectrum {
	s := make(Spectrum, len(raw))
	s.Fill(raw)
	return s
}

// Fill overwrites s in place from raw with the same clamping as NewSpectrum.
// Only min(len(s), len(raw)) bins are written.
func (s Spectrum) Fill(raw []float64) {
	for i := range min(len(s), len(raw)) {
		v := raw[i]
		switch {
		case math.IsNaN(v) || v <= 0:
			s[i] = 0
		case v >= MaxAmplitude:
			s[i] = MaxAmplitude
		default:
			s[i] = uint8(v)
		}
	}
}

// Mean returns the arithmetic mean of all bins (0 for an empty spectrum).
func (s Spectrum) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	var sum int
	for _, v := range s {
		sum += int(v)
	}
	return float64(sum) / float64(len(s))
}

// Level returns bin i normalized to [0, 1].
func (s Spectrum) Level(i int) float64 {
	return float64(s[i]) / MaxAmplitude
}

// Mode selects the active rendering algorithm.
type Mode int

// Available visualization modes.
const (
	ModeBars Mode = iota
	ModeRadial
	ModeWave
	ModeParticles

	// ModeCount is the number of modes. It is not a valid mode itself.
	ModeCount
)

var modeNames = [ModeCount]string{
	ModeBars:      "bars",
	ModeRadial:    "radial",
	ModeWave:      "wave",
	ModeParticles: "particles",
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return modeNames[m]
}

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool {
	return m >= 0 && m < ModeCount
}

// ParseMode resolves a mode by its configuration name (case-insensitive).
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for m, n := range modeNames {
		if n == key {
			return Mode(m), nil
		}
	}
	return 0, NewConfigurationError("mode", name, "unknown visualization mode")
}

// ModeInfo contains display information about a mode.
type ModeInfo struct {
	Mode Mode
	Name string
}

// Modes returns all available modes with their display names.
func Modes() []ModeInfo {
	return []ModeInfo{
		{ModeBars, "Bars"},
		{ModeRadial, "Radial"},
		{ModeWave, "Wave"},
		{ModeParticles, "Particles"},
	}
}

// EngineState is the two-state lifecycle of the visualization engine.
type EngineState int

const (
	// StateStopped means no frame is pending and the surface has been cleared or left idle.
	StateStopped EngineState = iota

	// StateRunning means a frame request is outstanding and each tick reschedules the next.
	StateRunning
)

// String returns a human-readable representation of the state.
func (s EngineState) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// Track describes the audio file currently feeding the visualizer.
type Track struct {
	// Path is the file the track was loaded from
	Path string

	// Title is the song title (from tags or filename)
	Title string

	// Artist is the performing artist name
	Artist string

	// Album is the album name
	Album string

	// Format is the lowercase file extension without the dot (mp3, wav, flac)
	Format string

	// Duration is the total length of the track
	Duration time.Duration
}

// DisplayName returns "Artist - Title", or just the title when the artist is unknown.
func (t Track) DisplayName() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}

// FrameStats counts ticks processed by the engine.
type FrameStats struct {
	Rendered uint64
	Skipped  uint64
}
