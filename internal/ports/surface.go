package ports

import (
	"github.com/tejashwikalptaru/wavescope/internal/domain"
)

// Point is a position in logical (density-independent) surface coordinates.
type Point struct {
	X, Y float64
}

// Surface is the drawing target of the render modes.
//
// Coordinates are logical; pixel density is the host's concern. Gradients are
// passed as domain.Paint values, so a surface only needs to know how to ask a
// paint for the colour at a point.
//
// Thread-safety: the engine calls these methods from one tick at a time.
// Implementations shared with a render thread must guard their own buffers.
type Surface interface {
	// Size returns the logical width and height.
	Size() (width, height float64)

	// FillRect fills the axis-aligned rectangle with its top-left corner at (x, y).
	FillRect(x, y, w, h float64, paint domain.Paint)

	// StrokeLine draws a segment from (x1, y1) to (x2, y2).
	StrokeLine(x1, y1, x2, y2 float64, paint domain.Paint, width float64)

	// StrokePolyline draws an open path through points in order
	// (move to the first point, line to every following one).
	StrokePolyline(points []Point, paint domain.Paint, width float64)

	// StrokeCircle draws the outline of a full circle.
	StrokeCircle(cx, cy, r float64, paint domain.Paint, width float64)

	// FillCircle fills a disc.
	FillCircle(cx, cy, r float64, paint domain.Paint)

	// Clear resets every pixel to fully transparent.
	Clear()
}

// ResizableSurface is a Surface whose backing store can be reallocated.
type ResizableSurface interface {
	Surface

	// Resize reallocates the backing store; the content is cleared.
	Resize(width, height float64)
}
