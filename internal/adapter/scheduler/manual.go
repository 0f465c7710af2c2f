package scheduler

import (
	"time"

	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// ManualScheduler runs frame callbacks only when Step is called, on the
// caller's goroutine. The headless renderer and engine tests use it to produce
// an exact number of frames.
//
// Thread-safety: This implementation is thread-safe; Step must not be called
// concurrently with itself.
type ManualScheduler struct {
	q queue
}

// NewManualScheduler creates an idle scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestFrame implements ports.FrameScheduler.
func (s *ManualScheduler) RequestFrame(cb ports.FrameCallback) ports.FrameID {
	return s.q.add(cb)
}

// CancelFrame implements ports.FrameScheduler.
func (s *ManualScheduler) CancelFrame(id ports.FrameID) {
	s.q.cancel(id)
}

// Step delivers one frame at time now and returns how many callbacks ran.
func (s *ManualScheduler) Step(now time.Duration) int {
	reqs := s.q.take()
	for _, r := range reqs {
		r.cb(now)
	}
	return len(reqs)
}

// Pending returns the number of outstanding frame requests.
func (s *ManualScheduler) Pending() int {
	return s.q.len()
}

var _ ports.FrameScheduler = (*ManualScheduler)(nil)
