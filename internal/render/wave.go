package render

import (
	"math"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

const (
	waveFadeAlpha   = 0.15
	waveLayers      = 3
	waveLayerOffset = 30  // Vertical shift and sine phase shift between layers
	waveHueOffset   = 120 // Hue distance between layers
	waveHueRate     = 50  // Milliseconds per degree of hue drift
	waveFrequency   = 0.1
	waveLineWidth   = 3
)

// Wave draws three overlapping polylines whose amplitude follows the spectrum.
// Each layer is shifted in phase, height and hue so they separate visually.
type Wave struct{}

// WaveLayers is the number of polylines drawn per frame.
const WaveLayers = waveLayers

// WavePoint returns the position of bin i in the given layer.
func WavePoint(s domain.Spectrum, i, layer int, width, height float64) ports.Point {
	v := s.Level(i)
	phase := float64(i+layer*waveLayerOffset) * waveFrequency
	return ports.Point{
		X: float64(i) * (width / float64(len(s))),
		Y: height/2 + v*(height/3)*math.Sin(phase) - float64(layer*waveLayerOffset),
	}
}

// WaveHue returns the hue of a layer at the given time.
func WaveHue(layer int, timeMs float64) float64 {
	return math.Mod(timeMs/waveHueRate+float64(layer*waveHueOffset), 360)
}

// Draw implements Renderer.
func (Wave) Draw(dst ports.Surface, f Frame) {
	fade(dst, f, waveFadeAlpha)

	n := len(f.Spectrum)
	if n == 0 {
		return
	}

	for layer := range waveLayers {
		points := make([]ports.Point, n)
		for i := range n {
			points[i] = WavePoint(f.Spectrum, i, layer, f.Width, f.Height)
		}
		hue := WaveHue(layer, f.TimeMs)
		dst.StrokePolyline(points, domain.HSLA{H: hue, S: 100, L: 50, A: 0.8}, waveLineWidth)
	}
}

var _ Renderer = Wave{}
