// Package domain defines events for the event-driven architecture.
// Events let hosts react to engine lifecycle changes without polling.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Engine lifecycle events
	EventVisualizerStarted EventType = "visualizer.started"
	EventVisualizerStopped EventType = "visualizer.stopped"
	EventModeChanged       EventType = "visualizer.mode_changed"
	EventFrameSkipped      EventType = "visualizer.frame_skipped"
	EventParticlesReseeded EventType = "visualizer.particles_reseeded"
	EventSurfaceResized    EventType = "visualizer.resized"

	// Playback events
	EventTrackLoaded     EventType = "track.loaded"
	EventTrackError      EventType = "track.error"
	EventPlaybackChanged EventType = "track.playback_changed"
	EventTrackProgress   EventType = "track.progress"
	EventTrackFinished   EventType = "track.finished"
)

// StopReason explains why the animation loop ended.
type StopReason string

const (
	// StopRequested means Stop was called explicitly.
	StopRequested StopReason = "requested"

	// StopPlaybackEnded means a tick observed that playback was no longer running.
	StopPlaybackEnded StopReason = "playback_ended"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// VisualizerStartedEvent is published when the engine enters the running state.
type VisualizerStartedEvent struct {
	baseEvent
	SessionID string
	Mode      Mode
}

// Type returns the event type.
func (e VisualizerStartedEvent) Type() EventType {
	return EventVisualizerStarted
}

// NewVisualizerStartedEvent creates a new VisualizerStartedEvent.
func NewVisualizerStartedEvent(sessionID string, mode Mode) VisualizerStartedEvent {
	return VisualizerStartedEvent{
		baseEvent: newBaseEvent(),
		SessionID: sessionID,
		Mode:      mode,
	}
}

// VisualizerStoppedEvent is published when the engine leaves the running state.
type VisualizerStoppedEvent struct {
	baseEvent
	SessionID string
	Reason    StopReason
	Stats     FrameStats
}

// Type returns the event type.
func (e VisualizerStoppedEvent) Type() EventType {
	return EventVisualizerStopped
}

// NewVisualizerStoppedEvent creates a new VisualizerStoppedEvent.
func NewVisualizerStoppedEvent(sessionID string, reason StopReason, stats FrameStats) VisualizerStoppedEvent {
	return VisualizerStoppedEvent{
		baseEvent: newBaseEvent(),
		SessionID: sessionID,
		Reason:    reason,
		Stats:     stats,
	}
}

// ModeChangedEvent is published when the active mode is replaced.
type ModeChangedEvent struct {
	baseEvent
	Previous Mode
	Current  Mode
}

// Type returns the event type.
func (e ModeChangedEvent) Type() EventType {
	return EventModeChanged
}

// NewModeChangedEvent creates a new ModeChangedEvent.
func NewModeChangedEvent(previous, current Mode) ModeChangedEvent {
	return ModeChangedEvent{
		baseEvent: newBaseEvent(),
		Previous:  previous,
		Current:   current,
	}
}

// FrameSkippedEvent is published when a tick could not draw.
type FrameSkippedEvent struct {
	baseEvent
	Error error
}

// Type returns the event type.
func (e FrameSkippedEvent) Type() EventType {
	return EventFrameSkipped
}

// NewFrameSkippedEvent creates a new FrameSkippedEvent.
func NewFrameSkippedEvent(err error) FrameSkippedEvent {
	return FrameSkippedEvent{
		baseEvent: newBaseEvent(),
		Error:     err,
	}
}

// ParticlesReseededEvent is published when a new particle field is seeded.
type ParticlesReseededEvent struct {
	baseEvent
	SessionID string
	Count     int
}

// Type returns the event type.
func (e ParticlesReseededEvent) Type() EventType {
	return EventParticlesReseeded
}

// NewParticlesReseededEvent creates a new ParticlesReseededEvent.
func NewParticlesReseededEvent(sessionID string, count int) ParticlesReseededEvent {
	return ParticlesReseededEvent{
		baseEvent: newBaseEvent(),
		SessionID: sessionID,
		Count:     count,
	}
}

// SurfaceResizedEvent is published after the surface backing changes size.
type SurfaceResizedEvent struct {
	baseEvent
	Width  float64
	Height float64
}

// Type returns the event type.
func (e SurfaceResizedEvent) Type() EventType {
	return EventSurfaceResized
}

// NewSurfaceResizedEvent creates a new SurfaceResizedEvent.
func NewSurfaceResizedEvent(width, height float64) SurfaceResizedEvent {
	return SurfaceResizedEvent{
		baseEvent: newBaseEvent(),
		Width:     width,
		Height:    height,
	}
}

// TrackLoadedEvent is published when a track is decoded and ready to play.
type TrackLoadedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackLoadedEvent) Type() EventType {
	return EventTrackLoaded
}

// NewTrackLoadedEvent creates a new TrackLoadedEvent.
func NewTrackLoadedEvent(track Track) TrackLoadedEvent {
	return TrackLoadedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}

// TrackErrorEvent is published when loading or playing a track fails.
type TrackErrorEvent struct {
	baseEvent
	Path  string
	Error error
}

// Type returns the event type.
func (e TrackErrorEvent) Type() EventType {
	return EventTrackError
}

// NewTrackErrorEvent creates a new TrackErrorEvent.
func NewTrackErrorEvent(path string, err error) TrackErrorEvent {
	return TrackErrorEvent{
		baseEvent: newBaseEvent(),
		Path:      path,
		Error:     err,
	}
}

// PlaybackChangedEvent is published when playback is started or paused by a caller.
type PlaybackChangedEvent struct {
	baseEvent
	Playing bool
}

// Type returns the event type.
func (e PlaybackChangedEvent) Type() EventType {
	return EventPlaybackChanged
}

// NewPlaybackChangedEvent creates a new PlaybackChangedEvent.
func NewPlaybackChangedEvent(playing bool) PlaybackChangedEvent {
	return PlaybackChangedEvent{
		baseEvent: newBaseEvent(),
		Playing:   playing,
	}
}

// TrackProgressEvent is published periodically while a track is loaded.
type TrackProgressEvent struct {
	baseEvent
	Position time.Duration
	Duration time.Duration
}

// Type returns the event type.
func (e TrackProgressEvent) Type() EventType {
	return EventTrackProgress
}

// NewTrackProgressEvent creates a new TrackProgressEvent.
func NewTrackProgressEvent(position, duration time.Duration) TrackProgressEvent {
	return TrackProgressEvent{
		baseEvent: newBaseEvent(),
		Position:  position,
		Duration:  duration,
	}
}

// TrackFinishedEvent is published when a playing track runs out on its own.
type TrackFinishedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackFinishedEvent) Type() EventType {
	return EventTrackFinished
}

// NewTrackFinishedEvent creates a new TrackFinishedEvent.
func NewTrackFinishedEvent(track Track) TrackFinishedEvent {
	return TrackFinishedEvent{
		baseEvent: newBaseEvent(),
		Track:     track,
	}
}
