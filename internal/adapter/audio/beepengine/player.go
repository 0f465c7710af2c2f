package beepengine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

const (
	// OutputSampleRate is the rate the speaker is opened with. Tracks at other
	// rates are resampled.
	OutputSampleRate beep.SampleRate = 44100

	resampleQuality = 4
	speakerLatency  = time.Second / 20
)

// Player plays one track at a time through the system audio device.
//
// The chain is decoder -> resampler -> tap -> pause control -> speaker. The tap
// sits before the pause control so a paused track leaves the last samples in
// the ring.
//
// Thread-safety: This implementation is thread-safe.
type Player struct {
	logger *slog.Logger
	tap    *Tap

	mu          sync.RWMutex
	initialized bool
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	track       *domain.Track

	// Written from the speaker goroutine, which holds the speaker lock; they are
	// atomics so the end callback never needs p.mu.
	playing    atomic.Bool
	ended      atomic.Bool
	generation atomic.Int64 // Bumped per Load so a stale end callback is ignored
}

// NewPlayer creates a player. The audio device is opened on the first Load.
func NewPlayer(logger *slog.Logger, tapSize int) *Player {
	return &Player{
		logger: logger.With(slog.String("component", "beep_player")),
		tap:    NewTap(tapSize),
	}
}

// Tap returns the sample tap feeding the spectrum analyser.
func (p *Player) Tap() *Tap {
	return p.tap
}

// Load implements ports.Player. Any previous track is stopped and closed.
func (p *Player) Load(path string) (domain.Track, error) {
	streamer, format, err := Decode(path)
	if err != nil {
		return domain.Track{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		if err := speaker.Init(OutputSampleRate, OutputSampleRate.N(speakerLatency)); err != nil {
			_ = streamer.Close()
			return domain.Track{}, domain.NewAudioError("init", path, "cannot open audio device", err)
		}
		p.initialized = true
	}

	p.stopLocked()

	var src beep.Streamer = streamer
	if format.SampleRate != OutputSampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, OutputSampleRate, streamer)
	}
	p.tap.SetSource(src)

	gen := p.generation.Add(1)
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: p.tap, Paused: true}

	track := readTrack(path, format.SampleRate.D(streamer.Len()))
	p.track = &track

	p.ended.Store(false)
	p.queueLocked(gen)

	p.logger.Info("track loaded",
		slog.String("path", path),
		slog.Int("sample_rate", int(format.SampleRate)),
		slog.Duration("duration", track.Duration))

	return track, nil
}

func (p *Player) queueLocked(gen int64) {
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() { p.finished(gen) })))
}

// finished runs on the speaker goroutine when the stream is exhausted.
func (p *Player) finished(gen int64) {
	if p.generation.Load() != gen {
		return
	}
	p.playing.Store(false)
	p.ended.Store(true)
	p.logger.Debug("track finished")
}

// Play implements ports.Player.
func (p *Player) Play() error {
	return p.setPaused(false)
}

// Pause implements ports.Player.
func (p *Player) Pause() error {
	return p.setPaused(true)
}

func (p *Player) setPaused(paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return domain.ErrNoTrackLoaded
	}

	// A finished track restarts from the beginning.
	if !paused && p.ended.Load() {
		speaker.Lock()
		err := p.streamer.Seek(0)
		speaker.Unlock()
		if err != nil {
			return domain.NewAudioError("play", p.track.Path, "cannot rewind", err)
		}
		p.ended.Store(false)
		p.queueLocked(p.generation.Load())
	}

	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()

	p.playing.Store(!paused)
	return nil
}

// IsPlaying implements ports.PlaybackState.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}

// Position implements ports.Player.
func (p *Player) Position() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
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

// Close implements ports.Player. It stops playback and releases the decoder;
// the speaker stays open for the life of the process.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

func (p *Player) stopLocked() {
	if p.initialized {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	if p.streamer != nil {
		if err := p.streamer.Close(); err != nil {
			p.logger.Warn("failed to close stream", slog.Any("error", err))
		}
	}
	p.streamer = nil
	p.ctrl = nil
	p.track = nil
	p.playing.Store(false)
	p.tap.SetSource(nil)
}

var _ ports.Player = (*Player)(nil)
