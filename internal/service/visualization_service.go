// Package service provides the visualization engine and the playback
// orchestration around it.
package service

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
	"github.com/tejashwikalptaru/wavescope/internal/render"
)

// skipLogEvery throttles debug logging while frames keep being skipped.
const skipLogEvery = 120

// EngineConfig holds the fixed parameters of a visualization engine.
type EngineConfig struct {
	Mode          domain.Mode
	BufferLength  int    // Number of spectrum bins per sample
	ParticleCount int    // Size of the particle field
	Seed          uint64 // Particle RNG seed; 0 picks a random one
}

// DefaultEngineConfig returns the stock engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Mode:          domain.ModeBars,
		BufferLength:  128,
		ParticleCount: 100,
	}
}

// Validate checks the configuration and returns a *domain.ConfigurationError
// for the first invalid field.
func (c EngineConfig) Validate() error {
	if !c.Mode.Valid() {
		return domain.NewConfigurationError("mode", int(c.Mode), "unknown visualization mode")
	}
	if c.BufferLength <= 0 {
		return domain.NewConfigurationError("buffer_length", c.BufferLength, "must be positive")
	}
	if c.ParticleCount <= 0 {
		return domain.NewConfigurationError("particle_count", c.ParticleCount, "must be positive")
	}
	return nil
}

// Dependencies are the collaborators the engine is wired to.
// Bus and Surface are optional; a surface can also be attached later.
type Dependencies struct {
	Spectrum  ports.SpectrumSource
	Playback  ports.PlaybackState
	Scheduler ports.FrameScheduler
	Clock     ports.Clock
	Bus       ports.EventBus
	Surface   ports.Surface
}

func (d Dependencies) validate() error {
	switch {
	case d.Spectrum == nil:
		return domain.NewConfigurationError("spectrum", nil, "spectrum source is required")
	case d.Playback == nil:
		return domain.NewConfigurationError("playback", nil, "playback state is required")
	case d.Scheduler == nil:
		return domain.NewConfigurationError("scheduler", nil, "frame scheduler is required")
	case d.Clock == nil:
		return domain.NewConfigurationError("clock", nil, "clock is required")
	}
	return nil
}

// VisualizationService is the animation engine. It owns the particle field and
// the active mode, and runs one render per scheduled frame while playback is on.
//
// The loop is self-terminating: a tick that finds playback stopped moves the
// engine to Stopped without requesting another frame.
//
// Thread-safety: All methods are thread-safe. A tick holds the engine lock for
// its whole duration, so Start, Stop and SetMode never interleave with a render.
// Events are published after the lock is released.
type VisualizationService struct {
	// Dependencies (injected)
	logger    *slog.Logger
	spectrum  ports.SpectrumSource
	playback  ports.PlaybackState
	scheduler ports.FrameScheduler
	clock     ports.Clock
	bus       ports.EventBus

	cfg EngineConfig

	mu        sync.Mutex
	state     domain.EngineState
	mode      domain.Mode
	surface   ports.Surface
	field     *render.Field
	table     *render.Table
	rng       *rand.Rand
	needsSeed bool // Field exists but has not seen a usable surface size yet
	sessionID string
	frameID   ports.FrameID
	buf       domain.Spectrum
	stats     domain.FrameStats
	skipRun   uint64
}

// NewVisualizationService creates a stopped engine. Invalid configuration or
// missing dependencies fail with a *domain.ConfigurationError.
func NewVisualizationService(logger *slog.Logger, cfg EngineConfig, deps Dependencies) (*VisualizationService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	s := &VisualizationService{
		logger:    logger.With(slog.String("service", "visualization")),
		spectrum:  deps.Spectrum,
		playback:  deps.Playback,
		scheduler: deps.Scheduler,
		clock:     deps.Clock,
		bus:       deps.Bus,
		cfg:       cfg,
		state:     domain.StateStopped,
		mode:      cfg.Mode,
		surface:   deps.Surface,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		buf:       make(domain.Spectrum, cfg.BufferLength),
	}

	s.logger.Debug("visualization service initialized",
		slog.String("mode", cfg.Mode.String()),
		slog.Int("buffer_length", cfg.BufferLength),
		slog.Int("particle_count", cfg.ParticleCount))

	return s, nil
}

// Start moves the engine to Running and requests the first frame.
// The particle field is created on the first Start. Starting a running engine
// does nothing.
func (s *VisualizationService) Start() error {
	s.mu.Lock()

	if s.state == domain.StateRunning {
		s.mu.Unlock()
		return nil
	}

	var events []domain.Event
	if s.field == nil {
		ev, err := s.createFieldLocked()
		if err != nil {
			s.mu.Unlock()
			return err
		}
		events = append(events, ev)
	}

	s.state = domain.StateRunning
	s.skipRun = 0
	s.frameID = s.scheduler.RequestFrame(s.tick)
	events = append(events, domain.NewVisualizerStartedEvent(s.sessionID, s.mode))
	mode := s.mode
	s.mu.Unlock()

	s.logger.Info("visualizer started", slog.String("mode", mode.String()))
	s.publish(events...)
	return nil
}

// Stop cancels the pending frame, moves the engine to Stopped and clears the
// surface to transparent. It is safe to call repeatedly.
func (s *VisualizationService) Stop() {
	s.mu.Lock()

	s.scheduler.CancelFrame(s.frameID)
	s.frameID = 0

	wasRunning := s.state == domain.StateRunning
	s.state = domain.StateStopped

	if s.surface != nil {
		s.surface.Clear()
	}

	ev := domain.NewVisualizerStoppedEvent(s.sessionID, domain.StopRequested, s.stats)
	s.mu.Unlock()

	if wasRunning {
		s.logger.Info("visualizer stopped", slog.String("reason", string(domain.StopRequested)))
		s.publish(ev)
	}
}

// SetMode switches the rendering algorithm from the next tick on. The particle
// field is left untouched.
func (s *VisualizationService) SetMode(m domain.Mode) error {
	if !m.Valid() {
		return domain.NewConfigurationError("mode", int(m), "unknown visualization mode")
	}

	s.mu.Lock()
	prev := s.mode
	s.mode = m
	s.mu.Unlock()

	if prev == m {
		return nil
	}

	s.logger.Info("visualization mode changed",
		slog.String("from", prev.String()),
		slog.String("to", m.String()))
	s.publish(domain.NewModeChangedEvent(prev, m))
	return nil
}

// SetModeByName resolves a mode name such as "radial" and applies it.
func (s *VisualizationService) SetModeByName(name string) error {
	m, err := domain.ParseMode(name)
	if err != nil {
		return err
	}
	return s.SetMode(m)
}

// Mode returns the active mode.
func (s *VisualizationService) Mode() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// State returns the lifecycle state.
func (s *VisualizationService) State() domain.EngineState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Field returns the particle field, or nil before the first Start.
// Hosts must treat it as read-only; use Particles for a consistent copy.
func (s *VisualizationService) Field() *render.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field
}

// Particles returns a copy of the particle field taken between ticks.
func (s *VisualizationService) Particles() []render.Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.field == nil {
		return nil
	}
	return s.field.Snapshot()
}

// SessionID identifies the current particle field seeding.
func (s *VisualizationService) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Stats returns the rendered and skipped frame counters.
func (s *VisualizationService) Stats() domain.FrameStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// AttachSurface sets the drawing target used from the next tick on.
func (s *VisualizationService) AttachSurface(surface ports.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = surface
}

// DetachSurface removes the drawing target. Ticks are skipped until another
// surface is attached.
func (s *VisualizationService) DetachSurface() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = nil
}

// Resize reallocates the attached surface's backing store. Mode and particle
// field are not affected.
func (s *VisualizationService) Resize(width, height float64) error {
	if !(width > 0) {
		return domain.NewConfigurationError("width", width, "must be positive")
	}
	if !(height > 0) {
		return domain.NewConfigurationError("height", height, "must be positive")
	}

	s.mu.Lock()
	if s.surface == nil {
		s.mu.Unlock()
		return domain.ErrSurfaceUnavailable
	}
	rs, ok := s.surface.(ports.ResizableSurface)
	if !ok {
		s.mu.Unlock()
		return domain.ErrNotResizable
	}
	rs.Resize(width, height)
	s.mu.Unlock()

	s.logger.Debug("surface resized", slog.Float64("width", width), slog.Float64("height", height))
	s.publish(domain.NewSurfaceResizedEvent(width, height))
	return nil
}

// ResetParticles re-seeds the particle field under a new session id, creating
// the field first if the engine has never started.
func (s *VisualizationService) ResetParticles() error {
	s.mu.Lock()

	if s.field == nil {
		ev, err := s.createFieldLocked()
		s.mu.Unlock()
		if err != nil {
			return err
		}
		s.publish(ev)
		return nil
	}

	ev := s.seedLocked()
	s.mu.Unlock()

	s.publish(ev)
	return nil
}

// createFieldLocked allocates the particle field and the renderer table.
func (s *VisualizationService) createFieldLocked() (domain.Event, error) {
	field, err := render.NewField(s.cfg.ParticleCount)
	if err != nil {
		return nil, err
	}
	s.field = field
	s.table = render.NewTable(field)
	return s.seedLocked(), nil
}

// seedLocked scatters the particles over the current surface. Without a usable
// surface the seeding is deferred to the first tick that has one.
func (s *VisualizationService) seedLocked() domain.Event {
	s.sessionID = uuid.NewString()

	w, h := s.surfaceSizeLocked()
	if w > 0 && h > 0 {
		s.field.Seed(s.rng, w, h)
		s.needsSeed = false
	} else {
		s.needsSeed = true
	}

	s.logger.Debug("particle field seeded",
		slog.String("session_id", s.sessionID),
		slog.Int("count", s.field.Len()),
		slog.Bool("deferred", s.needsSeed))

	return domain.NewParticlesReseededEvent(s.sessionID, s.field.Len())
}

func (s *VisualizationService) surfaceSizeLocked() (float64, float64) {
	if s.surface == nil {
		return 0, 0
	}
	return s.surface.Size()
}

// tick is the frame callback. Time for the frame is read from the injected
// clock rather than the scheduler timestamp.
func (s *VisualizationService) tick(time.Duration) {
	var events []domain.Event

	s.mu.Lock()
	defer func() {
		s.mu.Unlock()
		s.publish(events...)
	}()

	if s.state != domain.StateRunning {
		return
	}
	s.frameID = 0

	if !s.playback.IsPlaying() {
		s.state = domain.StateStopped
		s.logger.Info("visualizer stopped", slog.String("reason", string(domain.StopPlaybackEnded)))
		events = append(events, domain.NewVisualizerStoppedEvent(s.sessionID, domain.StopPlaybackEnded, s.stats))
		return
	}

	s.frameID = s.scheduler.RequestFrame(s.tick)

	if err := s.renderLocked(); err != nil {
		s.stats.Skipped++
		s.skipRun++
		if s.skipRun == 1 || s.skipRun%skipLogEvery == 0 {
			s.logger.Debug("frame skipped", slog.Any("error", err), slog.Uint64("consecutive", s.skipRun))
		}
		if s.bus != nil && s.bus.HasSubscribers(domain.EventFrameSkipped) {
			events = append(events, domain.NewFrameSkippedEvent(err))
		}
		return
	}

	s.stats.Rendered++
	s.skipRun = 0
}

func (s *VisualizationService) renderLocked() error {
	surface := s.surface
	if surface == nil {
		return domain.NewFrameError("surface", "no surface attached", domain.ErrSurfaceUnavailable)
	}

	// Size is read once; every renderer works from this snapshot.
	w, h := surface.Size()
	if !(w > 0 && h > 0) {
		return domain.NewFrameError("surface", fmt.Sprintf("unusable size %gx%g", w, h), domain.ErrSurfaceUnavailable)
	}

	if s.needsSeed {
		s.field.Seed(s.rng, w, h)
		s.needsSeed = false
	}

	raw, err := s.spectrum.Sample()
	if err != nil {
		return domain.NewFrameError("sample", "spectrum source failed", fmt.Errorf("%w: %w", domain.ErrSpectrumUnavailable, err))
	}
	if len(raw) != len(s.buf) {
		return domain.NewFrameError("sample",
			fmt.Sprintf("got %d bins, want %d", len(raw), len(s.buf)),
			domain.ErrSpectrumUnavailable)
	}
	s.buf.Fill(raw)

	frame := render.Frame{
		Spectrum: s.buf,
		Width:    w,
		Height:   h,
		TimeMs:   float64(s.clock.Now()) / float64(time.Millisecond),
	}
	return s.drawLocked(s.table.Renderer(s.mode), surface, frame)
}

// drawLocked runs one renderer, turning a panic into a skipped frame.
func (s *VisualizationService) drawLocked(r render.Renderer, dst ports.Surface, f render.Frame) (err error) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("renderer panicked",
				slog.Any("panic", p),
				slog.String("mode", s.mode.String()))
			err = domain.NewFrameError("draw", fmt.Sprint(p), nil)
		}
	}()

	r.Draw(dst, f)
	return nil
}

func (s *VisualizationService) publish(events ...domain.Event) {
	if s.bus == nil {
		return
	}
	for _, ev := range events {
		if ev != nil {
			s.bus.Publish(ev)
		}
	}
}
