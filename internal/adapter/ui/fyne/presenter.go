// Package fyne provides the Fyne desktop host for the visualization engine.
package fyne

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
	"github.com/tejashwikalptaru/wavescope/internal/service"
)

// UIView defines the interface for UI updates.
// MainWindow implements it; tests substitute a recording fake.
type UIView interface {
	SetPlayState(playing bool)
	SetTrackInfo(title, artist string)
	SetTotalTime(seconds float64)
	SetProgress(position, duration float64)
	SetCurrentTime(seconds float64)
	SetMode(mode domain.Mode)
	SetStatus(text string)
	SetRecentFiles(paths []string)
	RefreshVisualizer()
	ShowNotification(title, message string)
}

// Presenter coordinates the services and the window (MVP).
//
// Responsibilities:
// - Subscribe to events from the event bus
// - Map domain events to view updates
// - Translate view commands to service calls
//
// Thread-safety: All operations are thread-safe via sync.RWMutex. Views must
// marshal updates onto the UI goroutine themselves.
type Presenter struct {
	logger *slog.Logger

	// Services (injected)
	playback   *service.PlaybackService
	visualizer *service.VisualizationService
	prefs      *service.PreferenceService
	bus        ports.EventBus

	view UIView

	mu           sync.RWMutex
	subs         []domain.SubscriptionID
	running      bool
	shutdownOnce sync.Once
}

// NewPresenter creates a presenter and subscribes it to the bus.
// prefs may be nil, in which case no file history is kept.
func NewPresenter(
	logger *slog.Logger,
	playback *service.PlaybackService,
	visualizer *service.VisualizationService,
	prefs *service.PreferenceService,
	bus ports.EventBus,
	view UIView,
) *Presenter {
	p := &Presenter{
		logger:     logger.With(slog.String("component", "presenter")),
		playback:   playback,
		visualizer: visualizer,
		prefs:      prefs,
		bus:        bus,
		view:       view,
	}

	p.subscribeToEvents()
	p.syncInitialState()

	return p
}

func (p *Presenter) subscribeToEvents() {
	subscriptions := []struct {
		typ     domain.EventType
		handler domain.EventHandler
	}{
		// Playback events
		{domain.EventTrackLoaded, p.onTrackLoaded},
		{domain.EventTrackError, p.onTrackError},
		{domain.EventPlaybackChanged, p.onPlaybackChanged},
		{domain.EventTrackProgress, p.onTrackProgress},
		{domain.EventTrackFinished, p.onTrackFinished},

		// Engine events
		{domain.EventModeChanged, p.onModeChanged},
		{domain.EventVisualizerStarted, p.onVisualizerStarted},
		{domain.EventVisualizerStopped, p.onVisualizerStopped},
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range subscriptions {
		p.subs = append(p.subs, p.bus.Subscribe(s.typ, s.handler))
	}
}

// syncInitialState pushes the current service state into the view.
func (p *Presenter) syncInitialState() {
	p.view.SetMode(p.visualizer.Mode())
	if p.prefs != nil {
		p.view.SetRecentFiles(p.prefs.RecentFiles())
	}

	status := p.playback.Status()
	p.view.SetPlayState(status.Playing)
	if status.Track == nil {
		p.view.SetTrackInfo("", "")
		p.view.SetStatus("Open a file to start")
		return
	}

	p.view.SetTrackInfo(status.Track.Title, status.Track.Artist)
	p.view.SetTotalTime(status.Duration.Seconds())
	p.view.SetProgress(status.Position.Seconds(), status.Duration.Seconds())
	p.view.SetCurrentTime(status.Position.Seconds())
}

// Event handlers

func (p *Presenter) onTrackLoaded(event domain.Event) {
	e, ok := event.(domain.TrackLoadedEvent)
	if !ok {
		return
	}

	p.view.SetTrackInfo(e.Track.Title, e.Track.Artist)
	p.view.SetTotalTime(e.Track.Duration.Seconds())
	p.view.SetProgress(0, e.Track.Duration.Seconds())
	p.view.SetCurrentTime(0)
	p.view.SetPlayState(false)
}

func (p *Presenter) onTrackError(event domain.Event) {
	e, ok := event.(domain.TrackErrorEvent)
	if !ok {
		return
	}

	message := e.Error.Error()
	if errors.Is(e.Error, domain.ErrUnsupportedFormat) {
		message = "Only MP3, WAV and FLAC files can be played"
	}
	p.view.ShowNotification("Cannot play file", message)
}

func (p *Presenter) onPlaybackChanged(event domain.Event) {
	e, ok := event.(domain.PlaybackChangedEvent)
	if !ok {
		return
	}
	p.view.SetPlayState(e.Playing)
}

func (p *Presenter) onTrackProgress(event domain.Event) {
	e, ok := event.(domain.TrackProgressEvent)
	if !ok {
		return
	}
	p.view.SetProgress(e.Position.Seconds(), e.Duration.Seconds())
	p.view.SetCurrentTime(e.Position.Seconds())
}

func (p *Presenter) onTrackFinished(domain.Event) {
	p.view.SetPlayState(false)
}

func (p *Presenter) onModeChanged(event domain.Event) {
	e, ok := event.(domain.ModeChangedEvent)
	if !ok {
		return
	}
	p.view.SetMode(e.Current)
}

func (p *Presenter) onVisualizerStarted(event domain.Event) {
	e, ok := event.(domain.VisualizerStartedEvent)
	if !ok {
		return
	}

	p.mu.Lock()
	p.running = true
	p.mu.Unlock()

	p.view.SetStatus(fmt.Sprintf("Visualizing: %s", modeName(e.Mode)))
}

func (p *Presenter) onVisualizerStopped(event domain.Event) {
	e, ok := event.(domain.VisualizerStoppedEvent)
	if !ok {
		return
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	p.view.SetStatus(fmt.Sprintf("Stopped (%d frames, %d skipped)", e.Stats.Rendered, e.Stats.Skipped))

	// An explicit stop clears the surface outside any frame, so nothing else repaints it.
	if e.Reason == domain.StopRequested {
		p.view.RefreshVisualizer()
	}
}

// Commands from the view

// OnPlayClicked toggles playback of the loaded track.
func (p *Presenter) OnPlayClicked() {
	if err := p.playback.TogglePlayback(); err != nil {
		if errors.Is(err, domain.ErrNoTrackLoaded) {
			p.view.ShowNotification("Nothing to play", "Open a file first")
			return
		}
		p.logger.Error("failed to toggle playback", slog.Any("error", err))
		p.view.ShowNotification("Playback error", err.Error())
	}
}

// OnFileOpened loads a file and starts playing it.
func (p *Presenter) OnFileOpened(path string) error {
	if _, err := p.playback.LoadTrack(path); err != nil {
		return err
	}
	if p.prefs != nil {
		if err := p.prefs.RememberFile(path); err != nil {
			p.logger.Warn("failed to remember file", slog.Any("error", err))
		}
		p.view.SetRecentFiles(p.prefs.RecentFiles())
	}
	return p.playback.Play()
}

// LastFolder returns the folder to start the file dialog in, or "".
func (p *Presenter) LastFolder() string {
	if p.prefs == nil {
		return ""
	}
	return p.prefs.LastFolder()
}

// OnModeSelected switches the visualization mode by display or config name.
func (p *Presenter) OnModeSelected(name string) {
	for _, info := range domain.Modes() {
		if info.Name == name {
			name = info.Mode.String()
			break
		}
	}
	if err := p.visualizer.SetModeByName(name); err != nil {
		p.logger.Warn("mode rejected", slog.String("mode", name), slog.Any("error", err))
	}
}

// OnNextModeRequested cycles to the following mode.
func (p *Presenter) OnNextModeRequested() {
	next := (p.visualizer.Mode() + 1) % domain.ModeCount
	if err := p.visualizer.SetMode(next); err != nil {
		p.logger.Warn("mode rejected", slog.Any("error", err))
	}
}

// OnReseedClicked scatters a fresh particle field.
func (p *Presenter) OnReseedClicked() {
	if err := p.visualizer.ResetParticles(); err != nil {
		p.logger.Debug("reseed skipped", slog.Any("error", err))
	}
}

// IsVisualizing reports whether the engine was last seen running.
func (p *Presenter) IsVisualizing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Shutdown unsubscribes the presenter from the bus. Safe to call repeatedly.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		subs := p.subs
		p.subs = nil
		p.mu.Unlock()

		for _, id := range subs {
			p.bus.Unsubscribe(id)
		}
		p.logger.Debug("presenter shut down")
	})
}

func modeName(m domain.Mode) string {
	for _, info := range domain.Modes() {
		if info.Mode == m {
			return info.Name
		}
	}
	return m.String()
}
