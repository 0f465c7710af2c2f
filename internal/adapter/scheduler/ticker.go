package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// DefaultFrameRate is used when a non-positive rate is configured.
const DefaultFrameRate = 60

// TickerScheduler delivers frames from a time.Ticker on its own goroutine.
// It stands in for display refresh when there is no window toolkit.
//
// Thread-safety: This implementation is thread-safe. Callbacks run one after
// another on the ticker goroutine.
type TickerScheduler struct {
	logger   *slog.Logger
	clock    ports.Clock
	interval time.Duration

	q queue

	mu      sync.Mutex
	stop    chan struct{}
	running bool
	wg      sync.WaitGroup
}

// NewTickerScheduler creates a scheduler ticking frameRate times per second
// and starts its goroutine. Call Close to stop it.
func NewTickerScheduler(logger *slog.Logger, clock ports.Clock, frameRate int) *TickerScheduler {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	s := &TickerScheduler{
		logger:   logger.With(slog.String("component", "ticker_scheduler")),
		clock:    clock,
		interval: time.Second / time.Duration(frameRate),
		stop:     make(chan struct{}),
	}
	s.start()
	return s
}

// Interval returns the time between frames.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// RequestFrame implements ports.FrameScheduler.
func (s *TickerScheduler) RequestFrame(cb ports.FrameCallback) ports.FrameID {
	return s.q.add(cb)
}

// CancelFrame implements ports.FrameScheduler.
func (s *TickerScheduler) CancelFrame(id ports.FrameID) {
	s.q.cancel(id)
}

func (s *TickerScheduler) start() {
	s.mu.Lock()
	s.running = true
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.frame()
			}
		}
	}()

	s.logger.Debug("ticker scheduler started", slog.Duration("interval", s.interval))
}

func (s *TickerScheduler) frame() {
	reqs := s.q.take()
	if len(reqs) == 0 {
		return
	}
	now := s.clock.Now()
	for _, r := range reqs {
		r.cb(now)
	}
}

// Close stops the ticker goroutine and waits for an in-flight frame to finish.
// Pending requests are dropped. Calling Close again is a no-op.
func (s *TickerScheduler) Close() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
	s.q.take()

	s.logger.Debug("ticker scheduler stopped")
	return nil
}

var _ ports.FrameScheduler = (*TickerScheduler)(nil)
