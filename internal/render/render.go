// Package render provides the drawing algorithms of the visualization engine.
// Each mode turns one spectrum snapshot into drawing calls on a ports.Surface.
package render

import (
	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// Frame is everything a renderer may read during one tick.
// Width and Height are snapshotted once at tick start and must be used instead
// of querying the surface again.
type Frame struct {
	Spectrum domain.Spectrum
	Width    float64
	Height   float64
	TimeMs   float64
}

// Renderer draws one frame. Implementations hold no per-call state except the
// particle field owned by the Particles renderer.
type Renderer interface {
	Draw(dst ports.Surface, f Frame)
}

// Table maps every mode to its renderer. Dispatch is an array lookup.
type Table struct {
	renderers [domain.ModeCount]Renderer
	particles *Particles
}

// NewTable builds the renderer set. field is handed to the Particles renderer only.
func NewTable(field *Field) *Table {
	particles := NewParticles(field)

	t := &Table{particles: particles}
	t.renderers[domain.ModeBars] = Bars{}
	t.renderers[domain.ModeRadial] = Radial{}
	t.renderers[domain.ModeWave] = Wave{}
	t.renderers[domain.ModeParticles] = particles

	return t
}

// Renderer returns the renderer for m, or nil when m is not a valid mode.
func (t *Table) Renderer(m domain.Mode) Renderer {
	if !m.Valid() {
		return nil
	}
	return t.renderers[m]
}

// Particles returns the Particles renderer.
func (t *Table) Particles() *Particles {
	return t.particles
}

// fade paints a translucent black rectangle over the whole frame, leaving a trail
// of previous frames instead of a hard clear.
func fade(dst ports.Surface, f Frame, alpha float64) {
	dst.FillRect(0, 0, f.Width, f.Height, domain.Black(alpha))
}

// binHue spreads the bins of a spectrum across the colour wheel.
func binHue(i, n int) float64 {
	return float64(i) / float64(n) * 360
}
