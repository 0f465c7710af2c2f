// Package recorder provides a Surface that records drawing operations instead of
// rasterising them. It is used to test render modes and the engine without pixels.
package recorder

import (
	"sync"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// OpKind identifies a recorded drawing call.
type OpKind string

// Recorded operation kinds.
const (
	OpFillRect       OpKind = "fill_rect"
	OpStrokeLine     OpKind = "stroke_line"
	OpStrokePolyline OpKind = "stroke_polyline"
	OpStrokeCircle   OpKind = "stroke_circle"
	OpFillCircle     OpKind = "fill_circle"
	OpClear          OpKind = "clear"
	OpResize         OpKind = "resize"
)

// Op is one recorded call. Only the fields relevant to Kind are set:
// rectangles use X, Y, W, H; lines use X, Y, X2, Y2; circles use X, Y, R.
type Op struct {
	Kind      OpKind
	X, Y      float64
	X2, Y2    float64
	W, H      float64
	R         float64
	Points    []ports.Point
	Paint     domain.Paint
	LineWidth float64
}

// Surface records every call made on it.
//
// Thread-safety: This implementation is thread-safe.
type Surface struct {
	mu     sync.Mutex
	width  float64
	height float64
	ops    []Op
}

// New creates a recording surface of the given logical size.
func New(width, height float64) *Surface {
	return &Surface{width: width, height: height}
}

// Size implements ports.Surface.
func (s *Surface) Size() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// FillRect implements ports.Surface.
func (s *Surface) FillRect(x, y, w, h float64, paint domain.Paint) {
	s.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Paint: paint})
}

// StrokeLine implements ports.Surface.
func (s *Surface) StrokeLine(x1, y1, x2, y2 float64, paint domain.Paint, width float64) {
	s.record(Op{Kind: OpStrokeLine, X: x1, Y: y1, X2: x2, Y2: y2, Paint: paint, LineWidth: width})
}

// StrokePolyline implements ports.Surface. The points are copied.
func (s *Surface) StrokePolyline(points []ports.Point, paint domain.Paint, width float64) {
	pts := make([]ports.Point, len(points))
	copy(pts, points)
	s.record(Op{Kind: OpStrokePolyline, Points: pts, Paint: paint, LineWidth: width})
}

// StrokeCircle implements ports.Surface.
func (s *Surface) StrokeCircle(cx, cy, r float64, paint domain.Paint, width float64) {
	s.record(Op{Kind: OpStrokeCircle, X: cx, Y: cy, R: r, Paint: paint, LineWidth: width})
}

// FillCircle implements ports.Surface.
func (s *Surface) FillCircle(cx, cy, r float64, paint domain.Paint) {
	s.record(Op{Kind: OpFillCircle, X: cx, Y: cy, R: r, Paint: paint})
}

// Clear implements ports.Surface.
func (s *Surface) Clear() {
	s.record(Op{Kind: OpClear})
}

// Resize implements ports.ResizableSurface.
func (s *Surface) Resize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
	s.ops = append(s.ops, Op{Kind: OpResize, W: width, H: height})
}

// Ops returns a copy of every recorded operation in call order.
func (s *Surface) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Op, len(s.ops))
	copy(out, s.ops)
	return out
}

// OpsOf returns the recorded operations of one kind in call order.
func (s *Surface) OpsOf(kind OpKind) []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Op
	for _, op := range s.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Cleared reports whether the surface has been cleared and not drawn on since.
func (s *Surface) Cleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ops) > 0 && s.ops[len(s.ops)-1].Kind == OpClear
}

// Reset forgets all recorded operations.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = nil
}

func (s *Surface) record(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op)
}

// Verify interface implementation at compile time.
var _ ports.ResizableSurface = (*Surface)(nil)
