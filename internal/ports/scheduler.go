package ports

import (
	"time"
)

// FrameID identifies a pending frame request.
// The zero value never identifies a request, so cancelling it is a no-op.
type FrameID uint64

// FrameCallback runs once for the frame it was requested for.
type FrameCallback func(now time.Duration)

// FrameScheduler delivers one callback per display refresh.
//
// RequestFrame registers cb to be called once on the next frame; a callback that
// wants to keep animating must request again. Callbacks are never run concurrently
// with one another.
type FrameScheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

// Clock is a monotonic time source. Renders read time only through it so frames
// are reproducible in tests.
type Clock interface {
	// Now returns the elapsed time since the clock's origin.
	Now() time.Duration
}
