// Package raster implements ports.Surface on an in-memory RGBA image.
//
// Shapes are turned into polygons and filled with the anti-aliasing rasterizer
// from golang.org/x/image/vector using source-over compositing, so translucent
// fades accumulate the way a 2D canvas does.
//
// Drawing coordinates are logical units. A scale factor maps them onto device
// pixels so shapes keep their on-screen size on high-density displays.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/vector"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

const (
	minCircleSegments = 16
	maxCircleSegments = 256
)

// Surface is a pixel surface. One logical unit covers Scale() pixels along
// each axis; the scale starts at 1.
//
// Thread-safety: This implementation is thread-safe. Drawing takes the write
// lock; Snapshot and Size may be called from a render thread concurrently.
type Surface struct {
	mu    sync.RWMutex
	img   *image.RGBA
	scale float64
	z     *vector.Rasterizer
}

// New creates a fully transparent surface of width×height pixels at scale 1.
func New(width, height int) *Surface {
	return &Surface{img: newImage(width, height), scale: 1}
}

func newImage(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// pixels converts a logical length to whole pixels, rounding up. The small
// tolerance keeps w/scale*scale from gaining a pixel to float error.
func pixels(v, scale float64) int {
	return int(math.Ceil(v*scale - 1e-9))
}

// Size implements ports.Surface. The size is in logical units.
func (s *Surface) Size() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.img.Bounds()
	return float64(b.Dx()) / s.scale, float64(b.Dy()) / s.scale
}

// Scale returns the number of pixels per logical unit.
func (s *Surface) Scale() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale
}

// SetScale changes the number of pixels per logical unit. The logical size is
// kept and the backing image is replaced by a transparent one. Non-positive or
// non-finite scales are treated as 1.
func (s *Surface) SetScale(scale float64) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if scale == s.scale {
		return
	}
	b := s.img.Bounds()
	w, h := float64(b.Dx())/s.scale, float64(b.Dy())/s.scale
	s.scale = scale
	s.img = newImage(pixels(w, scale), pixels(h, scale))
}

// Resize implements ports.ResizableSurface. width and height are logical; the
// backing image is replaced by a transparent one rounded up to whole pixels.
func (s *Surface) Resize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = newImage(pixels(width, s.scale), pixels(height, s.scale))
}

// Clear implements ports.Surface.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.img.Pix)
}

// FillRect implements ports.Surface.
func (s *Surface) FillRect(x, y, w, h float64, paint domain.Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	s.fill(paint, []ports.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}})
}

// StrokeLine implements ports.Surface.
func (s *Surface) StrokeLine(x1, y1, x2, y2 float64, paint domain.Paint, width float64) {
	if quad := segment(ports.Point{X: x1, Y: y1}, ports.Point{X: x2, Y: y2}, width); quad != nil {
		s.fill(paint, quad)
	}
}

// StrokePolyline implements ports.Surface. All segments are rasterized in one
// pass so joints are not painted twice.
func (s *Surface) StrokePolyline(points []ports.Point, paint domain.Paint, width float64) {
	polys := make([][]ports.Point, 0, len(points))
	for i := 1; i < len(points); i++ {
		if quad := segment(points[i-1], points[i], width); quad != nil {
			polys = append(polys, quad)
		}
	}
	s.fill(paint, polys...)
}

// StrokeCircle implements ports.Surface.
func (s *Surface) StrokeCircle(cx, cy, r float64, paint domain.Paint, width float64) {
	if r <= 0 || width <= 0 {
		return
	}
	scale := s.Scale()
	outer := circle(cx, cy, r+width/2, scale, false)
	inner := r - width/2
	if inner <= 0 {
		s.fill(paint, outer)
		return
	}
	// Opposite winding cuts the hole.
	s.fill(paint, outer, circle(cx, cy, inner, scale, true))
}

// FillCircle implements ports.Surface.
func (s *Surface) FillCircle(cx, cy, r float64, paint domain.Paint) {
	if r <= 0 {
		return
	}
	s.fill(paint, circle(cx, cy, r, s.Scale(), false))
}

// Snapshot returns a copy of the current pixels at device resolution.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// WritePNG encodes the current pixels as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.Snapshot())
}

// fill rasterizes polys, given in logical units, in device pixels.
func (s *Surface) fill(paint domain.Paint, polys ...[]ports.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scale := s.scale
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			if !finite(p.X) || !finite(p.Y) {
				return
			}
			minX, maxX = math.Min(minX, p.X*scale), math.Max(maxX, p.X*scale)
			minY, maxY = math.Min(minY, p.Y*scale), math.Max(maxY, p.Y*scale)
		}
	}
	if math.IsInf(minX, 1) {
		return
	}

	r := boundsOf(minX, minY, maxX, maxY).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}

	// The rasterizer covers only r; path coordinates are shifted accordingly.
	if s.z == nil {
		s.z = vector.NewRasterizer(r.Dx(), r.Dy())
	} else {
		s.z.Reset(r.Dx(), r.Dy())
	}
	s.z.DrawOp = draw.Over

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		s.z.MoveTo(float32(poly[0].X*scale-ox), float32(poly[0].Y*scale-oy))
		for _, p := range poly[1:] {
			s.z.LineTo(float32(p.X*scale-ox), float32(p.Y*scale-oy))
		}
		s.z.ClosePath()
	}

	s.z.Draw(s.img, r, source(paint, scale), r.Min)
}

func boundsOf(minX, minY, maxX, maxY float64) image.Rectangle {
	const limit = 1 << 24
	clampInt := func(v float64) int {
		return int(math.Max(-limit, math.Min(limit, v)))
	}
	return image.Rect(
		clampInt(math.Floor(minX)), clampInt(math.Floor(minY)),
		clampInt(math.Ceil(maxX)), clampInt(math.Ceil(maxY)),
	)
}

// segment returns the quad covering a straight stroke of the given width, or
// nil for a degenerate segment.
func segment(a, b ports.Point, width float64) []ports.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return nil
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	return []ports.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}
}

// circle approximates a circle in logical units. pixelsPerUnit only picks the
// segment count.
func circle(cx, cy, r, pixelsPerUnit float64, reverse bool) []ports.Point {
	n := int(math.Ceil(2 * math.Pi * r * pixelsPerUnit / 2))
	n = min(max(n, minCircleSegments), maxCircleSegments)

	pts := make([]ports.Point, n)
	for i := range n {
		a := float64(i) / float64(n) * 2 * math.Pi
		if reverse {
			a = -a
		}
		pts[i] = ports.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// source adapts a paint to an image.Image sampled in pixels. Solid colours
// become *image.Uniform so the rasterizer takes its fast path.
func source(p domain.Paint, scale float64) image.Image {
	switch c := p.(type) {
	case domain.RGBA:
		return image.NewUniform(c.Color())
	case domain.HSLA:
		return image.NewUniform(c.RGBA().Color())
	case nil:
		return image.Transparent
	}
	return paintImage{paint: p, scale: scale}
}

// paintImage samples a paint at pixel centres, converted back to logical units.
type paintImage struct {
	paint domain.Paint
	scale float64
}

func (paintImage) ColorModel() color.Model { return color.NRGBAModel }

func (paintImage) Bounds() image.Rectangle {
	const limit = 1 << 24
	return image.Rect(-limit, -limit, limit, limit)
}

func (i paintImage) At(x, y int) color.Color {
	return i.paint.At((float64(x)+0.5)/i.scale, (float64(y)+0.5)/i.scale).Color()
}

var _ ports.ResizableSurface = (*Surface)(nil)
