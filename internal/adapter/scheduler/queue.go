package scheduler

import (
	"sync"

	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

type request struct {
	id ports.FrameID
	cb ports.FrameCallback
}

// queue holds pending frame requests in request order.
type queue struct {
	mu      sync.Mutex
	lastID  ports.FrameID
	pending []request
}

func (q *queue) add(cb ports.FrameCallback) ports.FrameID {
	if cb == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.lastID++
	q.pending = append(q.pending, request{id: q.lastID, cb: cb})
	return q.lastID
}

func (q *queue) cancel(id ports.FrameID) {
	if id == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i:i], q.pending[i+1:]...)
			return
		}
	}
}

// take removes and returns everything requested so far. Requests made while the
// returned callbacks run belong to the next frame.
func (q *queue) take() []request {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
