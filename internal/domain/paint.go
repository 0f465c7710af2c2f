package domain

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// Paint is anything that can colour a point of a surface.
type Paint interface {
	// At returns the colour at logical coordinate (x, y).
	At(x, y float64) RGBA
}

// RGBA is a straight-alpha colour with all channels in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// At implements Paint.
func (c RGBA) At(_, _ float64) RGBA {
	return c
}

// Color converts c to a non-premultiplied image/color value.
func (c RGBA) Color() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Lerp interpolates between c and o by t in [0, 1].
func (c RGBA) Lerp(o RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Black returns black with the given opacity.
func Black(alpha float64) RGBA {
	return RGBA{A: alpha}
}

// White returns white with the given opacity.
func White(alpha float64) RGBA {
	return RGBA{R: 1, G: 1, B: 1, A: alpha}
}

// HSLA is a colour in hue (degrees), saturation and lightness (percent) plus alpha (0-1).
type HSLA struct {
	H, S, L, A float64
}

// At implements Paint.
func (c HSLA) At(_, _ float64) RGBA {
	return c.RGBA()
}

// RGBA converts the colour to RGB space.
func (c HSLA) RGBA() RGBA {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := HSLToRGB(h/360, clamp01(c.S/100), clamp01(c.L/100))
	return RGBA{R: r, G: g, B: b, A: clamp01(c.A)}
}

// String renders the CSS form, e.g. hsla(120,100%,50%,0.8).
func (c HSLA) String() string {
	return fmt.Sprintf("hsla(%s,%s%%,%s%%,%s)", ftoa(c.H), ftoa(c.S), ftoa(c.L), ftoa(c.A))
}

// ColorStop is one stop of a gradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  HSLA
}

// LinearGradient interpolates its stops along the segment (X0,Y0)-(X1,Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

// At implements Paint.
func (g LinearGradient) At(x, y float64) RGBA {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	den := dx*dx + dy*dy
	if den == 0 {
		return stopsAt(g.Stops, 0)
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / den
	return stopsAt(g.Stops, t)
}

// RadialGradient interpolates its stops between an inner and an outer circle
// sharing the centre (CX, CY).
type RadialGradient struct {
	CX, CY float64
	R0, R1 float64
	Stops  []ColorStop
}

// At implements Paint.
func (g RadialGradient) At(x, y float64) RGBA {
	span := g.R1 - g.R0
	if span <= 0 {
		return stopsAt(g.Stops, 1)
	}
	d := math.Hypot(x-g.CX, y-g.CY)
	return stopsAt(g.Stops, (d-g.R0)/span)
}

func stopsAt(stops []ColorStop, t float64) RGBA {
	if len(stops) == 0 {
		return RGBA{}
	}
	t = clamp01(t)
	if t <= stops[0].Offset {
		return stops[0].Color.RGBA()
	}
	for i := 1; i < len(stops); i++ {
		prev, next := stops[i-1], stops[i]
		if t <= next.Offset {
			span := next.Offset - prev.Offset
			if span <= 0 {
				return next.Color.RGBA()
			}
			return prev.Color.RGBA().Lerp(next.Color.RGBA(), (t-prev.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color.RGBA()
}

// HSLToRGB converts HSL to RGB (h, s, l in 0-1 range).
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r = hueToRGB(p, q, h+1.0/3.0)
	g = hueToRGB(p, q, h)
	b = hueToRGB(p, q, h-1.0/3.0)

	return r, g, b
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 0.5 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
