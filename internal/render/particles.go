package render

import (
	"math"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

const (
	particlesFadeAlpha = 0.2
	particlesBaseline  = 128 // Mean amplitude that moves particles at their nominal speed
	particlesGrowth    = 2   // Rendered radius reaches (1+growth)×base at full intensity
	particlesHueRate   = 50  // Milliseconds per degree of hue drift
	particlesLinkRange = 100 // Link distance at full intensity
	particlesLinkAlpha = 0.3
	particlesLinkWidth = 1
)

// Link is a pair of particle indices connected during a frame. From < To.
type Link struct {
	From, To int
}

// Particles moves the particle field with the music and draws each particle as
// a glowing disc, linking particles that come close to each other.
//
// The field is the only state shared between ticks and no other renderer sees it.
type Particles struct {
	field *Field
	links []Link
}

// NewParticles creates the renderer for field.
func NewParticles(field *Field) *Particles {
	return &Particles{field: field}
}

// EnergyScale returns the speed multiplier for a spectrum: its mean amplitude
// relative to the baseline, so moderate volume gives roughly 1.
func EnergyScale(s domain.Spectrum) float64 {
	return s.Mean() / particlesBaseline
}

// BinFor maps particle idx of m particles onto one of n spectrum bins.
func BinFor(idx, m, n int) int {
	return idx * n / m
}

// Draw implements Renderer.
//
// Particles are processed in index order. Particle idx moves and is drawn before
// it is compared with every j > idx; those later particles have not moved yet in
// this frame. The link threshold uses idx's intensity only.
func (r *Particles) Draw(dst ports.Surface, f Frame) {
	fade(dst, f, particlesFadeAlpha)
	r.links = r.links[:0]

	n := len(f.Spectrum)
	if r.field == nil || n == 0 {
		return
	}

	m := r.field.Len()
	scale := EnergyScale(f.Spectrum)
	drift := f.TimeMs / particlesHueRate

	for idx := range m {
		p := r.field.At(idx)
		intensity := f.Spectrum.Level(BinFor(idx, m, n))

		p.Move(scale, f.Width, f.Height)

		size := p.BaseRadius * (1 + intensity*particlesGrowth)
		hue := math.Mod(p.Hue+drift, 360)

		dst.FillCircle(p.X, p.Y, size, domain.RadialGradient{
			CX: p.X, CY: p.Y,
			R0: 0, R1: size,
			Stops: []domain.ColorStop{
				{Offset: 0, Color: domain.HSLA{H: hue, S: 100, L: 50, A: intensity}},
				{Offset: 1, Color: domain.HSLA{H: hue, S: 100, L: 50, A: 0}},
			},
		})

		threshold := particlesLinkRange * intensity
		linkPaint := domain.HSLA{H: hue, S: 100, L: 50, A: intensity * particlesLinkAlpha}

		for j := idx + 1; j < m; j++ {
			q := r.field.At(j)
			if math.Hypot(p.X-q.X, p.Y-q.Y) < threshold {
				dst.StrokeLine(p.X, p.Y, q.X, q.Y, linkPaint, particlesLinkWidth)
				r.links = append(r.links, Link{From: idx, To: j})
			}
		}
	}
}

// Links returns the pairs linked during the last Draw.
func (r *Particles) Links() []Link {
	out := make([]Link, len(r.links))
	copy(out, r.links)
	return out
}

var _ Renderer = (*Particles)(nil)
