package render

import (
	"math"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

const (
	radialFadeAlpha   = 0.1 // Slower fade than bars
	radialMaxBar      = 100 // Fixed length of a full-scale bin, not surface relative
	radialLineWidth   = 2
	radialCircleAlpha = 0.3
)

// Radial draws one spoke per bin radiating outward from a base circle.
type Radial struct{}

// RadialBase returns the centre and base radius used for a surface of the given size.
func RadialBase(width, height float64) (cx, cy, r float64) {
	return width / 2, height / 2, math.Min(width, height) / 4
}

// Draw implements Renderer.
func (Radial) Draw(dst ports.Surface, f Frame) {
	fade(dst, f, radialFadeAlpha)

	cx, cy, base := RadialBase(f.Width, f.Height)
	n := len(f.Spectrum)

	for i := range n {
		angle := float64(i) / float64(n) * 2 * math.Pi
		barHeight := f.Spectrum.Level(i) * radialMaxBar
		cos, sin := math.Cos(angle), math.Sin(angle)

		dst.StrokeLine(
			cx+cos*base, cy+sin*base,
			cx+cos*(base+barHeight), cy+sin*(base+barHeight),
			domain.HSLA{H: binHue(i, n), S: 100, L: 50, A: 0.8},
			radialLineWidth,
		)
	}

	dst.StrokeCircle(cx, cy, base, domain.White(radialCircleAlpha), radialLineWidth)
}

var _ Renderer = Radial{}
