package render

import (
	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

const (
	barsFadeAlpha   = 0.2
	barsWidthFactor = 2.5 // Bars are wider than width/N so the low bins fill the view
	barsHeightRatio = 0.8 // Fraction of the height a full-scale bin reaches
	barsGap         = 1
	barsCapHeight   = 5
)

// Bars draws the classic vertical spectrum: one gradient bar per bin with a
// translucent cap strip on top.
//
// The layout is not clamped to the surface. With the 2.5 width factor the bars
// for the highest bins run past the right edge, which is intended.
type Bars struct{}

// BarWidth returns the width of a single bar for n bins on a surface of the given width.
func BarWidth(width float64, n int) float64 {
	return width / float64(n) * barsWidthFactor
}

// Draw implements Renderer.
func (Bars) Draw(dst ports.Surface, f Frame) {
	fade(dst, f, barsFadeAlpha)

	n := len(f.Spectrum)
	if n == 0 {
		return
	}

	barWidth := BarWidth(f.Width, n)
	x := 0.0

	for i := range n {
		barHeight := f.Spectrum.Level(i) * f.Height * barsHeightRatio
		hue := binHue(i, n)
		top := f.Height - barHeight

		gradient := domain.LinearGradient{
			X0: x, Y0: top,
			X1: x, Y1: f.Height,
			Stops: []domain.ColorStop{
				{Offset: 0, Color: domain.HSLA{H: hue, S: 100, L: 50, A: 0.8}},
				{Offset: 1, Color: domain.HSLA{H: hue, S: 100, L: 70, A: 0.6}},
			},
		}
		dst.FillRect(x, top, barWidth, barHeight, gradient)
		dst.FillRect(x, top-barsCapHeight, barWidth, barsCapHeight, domain.HSLA{H: hue, S: 100, L: 80, A: 0.3})

		x += barWidth + barsGap
	}
}

var _ Renderer = Bars{}
