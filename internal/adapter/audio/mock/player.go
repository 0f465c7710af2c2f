// Package mock provides in-memory playback and spectrum collaborators.
// They let the engine, the application wiring and the headless renderer run
// without an audio device.
package mock

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// DefaultTrackDuration is the length reported for every loaded track.
const DefaultTrackDuration = 3 * time.Minute

var supportedFormats = map[string]bool{"mp3": true, "wav": true, "flac": true}

// Player simulates playback state without producing sound.
//
// Thread-safety: This implementation is thread-safe.
type Player struct {
	logger *slog.Logger

	mu       sync.RWMutex
	track    *domain.Track
	playing  bool
	position time.Duration
	closed   bool

	// Behavior configuration (for testing error scenarios)
	failLoad bool
	failPlay bool
}

// NewPlayer creates a mock player with nothing loaded.
func NewPlayer() *Player {
	return &Player{}
}

// SetLogger sets the logger for this player.
func (p *Player) SetLogger(logger *slog.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = logger
}

// SetFailLoad makes Load fail (for testing).
func (p *Player) SetFailLoad(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failLoad = fail
}

// SetFailPlay makes Play fail (for testing).
func (p *Player) SetFailPlay(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failPlay = fail
}

// SetPlaying forces the playback flag, e.g. to simulate the end of a track.
func (p *Player) SetPlaying(playing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = playing
}

// SetPosition moves the simulated playback position.
func (p *Player) SetPosition(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = pos
}

// IsPlaying implements ports.PlaybackState.
func (p *Player) IsPlaying() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.playing
}

// Load implements ports.Player. Only the extension is inspected.
func (p *Player) Load(path string) (domain.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failLoad {
		return domain.Track{}, domain.NewAudioError("load", path, "mock load failed", nil)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !supportedFormats[format] {
		return domain.Track{}, domain.NewAudioError("load", path, "unsupported format", domain.ErrUnsupportedFormat)
	}

	base := filepath.Base(path)
	track := domain.Track{
		Path:     path,
		Title:    strings.TrimSuffix(base, filepath.Ext(base)),
		Format:   format,
		Duration: DefaultTrackDuration,
	}
	p.track = &track
	p.playing = false
	p.position = 0

	if p.logger != nil {
		p.logger.Debug("mock track loaded", slog.String("path", path))
	}
	return track, nil
}

// Play implements ports.Player.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.track == nil {
		return domain.ErrNoTrackLoaded
	}
	if p.failPlay {
		return domain.NewAudioError("play", p.track.Path, "mock play failed", nil)
	}
	p.playing = true
	return nil
}

// Pause implements ports.Player.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.track == nil {
		return domain.ErrNoTrackLoaded
	}
	p.playing = false
	return nil
}

// Position implements ports.Player.
func (p *Player) Position() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.position
}

// Duration implements ports.Player.
func (p *Player) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.track == nil {
		return 0
	}
	return p.track.Duration
}

// Close implements ports.Player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.playing = false
	p.track = nil
	return nil
}

// Closed reports whether Close was called.
func (p *Player) Closed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

var _ ports.Player = (*Player)(nil)
