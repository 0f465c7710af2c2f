package fyne

import (
	"sync"
	"time"

	fyneapp "fyne.io/fyne/v2"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// AnimationScheduler delivers frames from a repeating fyne.Animation, so
// callbacks run on the Fyne main goroutine once per display refresh.
//
// Thread-safety: This implementation is thread-safe. Frames may be requested
// from any goroutine.
type AnimationScheduler struct {
	frames *scheduler.ManualScheduler
	clock  ports.Clock
	anim   *fyneapp.Animation

	mu      sync.Mutex
	running bool
	onFrame func()
}

// NewAnimationScheduler creates a stopped scheduler. onFrame, if not nil, runs
// after every frame that delivered at least one callback; the visualizer
// widget uses it to repaint.
func NewAnimationScheduler(clock ports.Clock, onFrame func()) *AnimationScheduler {
	s := &AnimationScheduler{
		frames:  scheduler.NewManualScheduler(),
		clock:   clock,
		onFrame: onFrame,
	}
	s.anim = &fyneapp.Animation{
		Duration:    time.Second,
		RepeatCount: fyneapp.AnimationRepeatForever,
		Tick:        func(float32) { s.frame() },
	}
	return s
}

// RequestFrame implements ports.FrameScheduler.
func (s *AnimationScheduler) RequestFrame(cb ports.FrameCallback) ports.FrameID {
	return s.frames.RequestFrame(cb)
}

// CancelFrame implements ports.FrameScheduler.
func (s *AnimationScheduler) CancelFrame(id ports.FrameID) {
	s.frames.CancelFrame(id)
}

// Start begins ticking. It must be called once the Fyne app is running.
func (s *AnimationScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.anim.Start()
}

// Stop halts ticking. Pending requests stay queued for the next Start.
func (s *AnimationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.anim.Stop()
}

func (s *AnimationScheduler) frame() {
	if s.frames.Step(s.clock.Now()) > 0 && s.onFrame != nil {
		s.onFrame()
	}
}

var _ ports.FrameScheduler = (*AnimationScheduler)(nil)
