// Package widgets provides custom Fyne widgets for wavescope.
package widgets

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/surface/raster"
)

// Visualizer shows the pixels of a raster surface that the visualization
// engine draws into. It does not render anything itself; the engine draws and
// then calls Refresh.
type Visualizer struct {
	widget.BaseWidget

	surface *raster.Surface
	raster  *canvas.Raster

	mu        sync.Mutex
	onResize  func(width, height float64)
	lastW     int
	lastH     int
	lastScale float64
}

// NewVisualizer creates a widget displaying surface.
func NewVisualizer(surface *raster.Surface) *Visualizer {
	v := &Visualizer{surface: surface}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// SetOnResize registers a callback receiving the logical size of the widget
// whenever it changes. The application forwards it to the engine so the
// surface backing follows the window.
func (v *Visualizer) SetOnResize(fn func(width, height float64)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onResize = fn
}

// CreateRenderer implements fyne.Widget.
func (v *Visualizer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize returns a minimal size so the widget expands to fill available space.
func (v *Visualizer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

// draw is the raster generator. w and h are in device pixels; the surface is
// kept at the matching scale and the engine is given logical units.
func (v *Visualizer) draw(w, h int) image.Image {
	scale := v.pixelScale(w)

	v.mu.Lock()
	changed := w != v.lastW || h != v.lastH || scale != v.lastScale
	if changed {
		v.lastW, v.lastH, v.lastScale = w, h, scale
	}
	onResize := v.onResize
	v.mu.Unlock()

	if changed && w > 0 && h > 0 {
		v.surface.SetScale(scale)
		width, height := float64(w)/scale, float64(h)/scale
		if onResize != nil {
			onResize(width, height)
		} else {
			v.surface.Resize(width, height)
		}
	}

	return v.surface.Snapshot()
}

// pixelScale is the device pixels per logical unit, measured against the
// widget's own size. A widget that has not been laid out yet counts as 1.
func (v *Visualizer) pixelScale(w int) float64 {
	size := v.Size()
	if size.Width <= 0 || w <= 0 {
		return 1
	}
	return float64(w) / float64(size.Width)
}
