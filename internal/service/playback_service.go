package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// DefaultProgressInterval is how often progress events are published.
const DefaultProgressInterval = 250 * time.Millisecond

// Visualizer is the part of the visualization engine that playback drives.
// *VisualizationService satisfies it.
type Visualizer interface {
	Start() error
	Stop()
}

// PlaybackStatus is a point-in-time view of the player.
type PlaybackStatus struct {
	Track    *domain.Track
	Playing  bool
	Position time.Duration
	Duration time.Duration
}

// PlaybackService orchestrates the player and the visualizer.
// Playing a track starts the visualizer; pausing or reaching the end of a track
// lets the visualizer stop itself on its next tick.
//
// Thread-safety: All operations are thread-safe via sync.RWMutex. Events are
// published and the visualizer is driven after the lock is released, so event
// handlers may call back into the service.
type PlaybackService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	player     ports.Player
	bus        ports.EventBus
	visualizer Visualizer

	updateInterval time.Duration

	// State
	mu            sync.RWMutex
	track         *domain.Track
	wasPlaying    bool // Playback was started by a caller and has not been paused since
	stopUpdate    chan struct{}
	updateRunning bool
	updateWg      sync.WaitGroup
	shutdown      bool
}

// NewPlaybackService creates a playback service and starts its progress
// routine. bus and visualizer may be nil. A non-positive interval selects
// DefaultProgressInterval.
func NewPlaybackService(
	logger *slog.Logger,
	player ports.Player,
	bus ports.EventBus,
	visualizer Visualizer,
	interval time.Duration,
) *PlaybackService {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	s := &PlaybackService{
		logger:         logger.With(slog.String("service", "playback")),
		player:         player,
		bus:            bus,
		visualizer:     visualizer,
		updateInterval: interval,
		stopUpdate:     make(chan struct{}),
	}

	s.logger.Debug("playback service initialized", slog.Duration("progress_interval", interval))
	s.startUpdateRoutine()

	return s
}

// LoadTrack decodes path and makes it the current track, replacing and
// pausing whatever was loaded before. The visualizer is stopped.
func (s *PlaybackService) LoadTrack(path string) (domain.Track, error) {
	s.mu.Lock()

	if s.shutdown {
		s.mu.Unlock()
		return domain.Track{}, domain.ErrServiceShutdown
	}

	s.logger.Debug("loading track", slog.String("path", path))

	track, err := s.player.Load(path)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("failed to load track", slog.String("path", path), slog.Any("error", err))
		s.publish(domain.NewTrackErrorEvent(path, err))
		return domain.Track{}, err
	}

	s.track = &track
	s.wasPlaying = false
	s.mu.Unlock()

	if s.visualizer != nil {
		s.visualizer.Stop()
	}

	s.logger.Info("track loaded",
		slog.String("title", track.Title),
		slog.String("format", track.Format),
		slog.Duration("duration", track.Duration))
	s.publish(domain.NewTrackLoadedEvent(track))

	return track, nil
}

// Play starts or resumes the current track and starts the visualizer.
func (s *PlaybackService) Play() error {
	s.mu.Lock()

	if s.shutdown {
		s.mu.Unlock()
		return domain.ErrServiceShutdown
	}
	if s.track == nil {
		s.mu.Unlock()
		return domain.ErrNoTrackLoaded
	}

	path := s.track.Path
	if err := s.player.Play(); err != nil {
		s.mu.Unlock()
		s.logger.Warn("failed to play track", slog.Any("error", err))
		s.publish(domain.NewTrackErrorEvent(path, err))
		return err
	}
	s.wasPlaying = true
	s.mu.Unlock()

	s.publish(domain.NewPlaybackChangedEvent(true))

	if s.visualizer != nil {
		if err := s.visualizer.Start(); err != nil {
			return fmt.Errorf("start visualizer: %w", err)
		}
	}
	return nil
}

// Pause pauses the current track. The visualizer stops itself on its next
// tick and keeps the last frame on screen.
func (s *PlaybackService) Pause() error {
	s.mu.Lock()

	if s.track == nil {
		s.mu.Unlock()
		return domain.ErrNoTrackLoaded
	}
	if err := s.player.Pause(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.wasPlaying = false
	s.mu.Unlock()

	s.publish(domain.NewPlaybackChangedEvent(false))
	return nil
}

// TogglePlayback pauses a playing track and plays a paused one.
func (s *PlaybackService) TogglePlayback() error {
	if s.player.IsPlaying() {
		return s.Pause()
	}
	return s.Play()
}

// CurrentTrack returns the loaded track, if any.
func (s *PlaybackService) CurrentTrack() (domain.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.track == nil {
		return domain.Track{}, false
	}
	return *s.track, true
}

// Status returns the current playback status.
func (s *PlaybackService) Status() PlaybackStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := PlaybackStatus{}
	if s.track == nil {
		return status
	}

	track := *s.track
	status.Track = &track
	status.Playing = s.player.IsPlaying()
	status.Position = s.player.Position()
	status.Duration = s.player.Duration()
	return status
}

// Shutdown stops the progress routine, the visualizer and the player.
// Calling it again does nothing.
func (s *PlaybackService) Shutdown() error {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return nil
	}
	s.shutdown = true

	// Stop update routine
	if s.updateRunning {
		close(s.stopUpdate)
		s.updateRunning = false
	}

	// Release lock before waiting for goroutine to exit (to avoid deadlock)
	s.mu.Unlock()

	s.updateWg.Wait()

	if s.visualizer != nil {
		s.visualizer.Stop()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.track = nil
	s.wasPlaying = false
	s.logger.Debug("playback service shut down")

	return s.player.Close()
}

// startUpdateRoutine starts a goroutine that periodically publishes progress events.
func (s *PlaybackService) startUpdateRoutine() {
	s.mu.Lock()
	if s.updateRunning {
		s.mu.Unlock()
		return
	}
	s.updateRunning = true
	s.updateWg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.updateWg.Done()
		ticker := time.NewTicker(s.updateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopUpdate:
				return

			case <-ticker.C:
				s.publishProgressUpdate()
			}
		}
	}()
}

// publishProgressUpdate publishes progress for the loaded track and detects a
// track that ran out while playing.
func (s *PlaybackService) publishProgressUpdate() {
	s.mu.Lock()

	if s.track == nil {
		s.mu.Unlock()
		return
	}

	playing := s.player.IsPlaying()
	position := s.player.Position()
	duration := s.player.Duration()

	var finished *domain.Track
	if s.wasPlaying && !playing {
		s.wasPlaying = false
		track := *s.track
		finished = &track
	}
	s.mu.Unlock()

	if s.bus != nil && s.bus.HasSubscribers(domain.EventTrackProgress) {
		s.bus.Publish(domain.NewTrackProgressEvent(position, duration))
	}
	if finished != nil {
		s.logger.Info("track finished", slog.String("title", finished.Title))
		s.publish(domain.NewTrackFinishedEvent(*finished))
	}
}

func (s *PlaybackService) publish(ev domain.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}

var _ Visualizer = (*VisualizationService)(nil)
