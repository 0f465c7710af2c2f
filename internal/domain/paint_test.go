package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSLA_RGBA(t *testing.T) {
	tests := []struct {
		name string
		in   HSLA
		want RGBA
	}{
		{"red", HSLA{0, 100, 50, 1}, RGBA{1, 0, 0, 1}},
		{"green", HSLA{120, 100, 50, 0.5}, RGBA{0, 1, 0, 0.5}},
		{"blue wraps", HSLA{240 + 360, 100, 50, 1}, RGBA{0, 0, 1, 1}},
		{"negative hue", HSLA{-120, 100, 50, 1}, RGBA{0, 0, 1, 1}},
		{"grey", HSLA{77, 0, 50, 1}, RGBA{0.5, 0.5, 0.5, 1}},
		{"white", HSLA{0, 100, 100, 1}, RGBA{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.RGBA()
			assert.InDelta(t, tt.want.R, got.R, 1e-9)
			assert.InDelta(t, tt.want.G, got.G, 1e-9)
			assert.InDelta(t, tt.want.B, got.B, 1e-9)
			assert.InDelta(t, tt.want.A, got.A, 1e-9)
		})
	}
}

func TestHSLA_String(t *testing.T) {
	assert.Equal(t, "hsla(180,100%,50%,0.8)", HSLA{180, 100, 50, 0.8}.String())
	assert.Equal(t, "hsla(22.5,100%,70%,0.6)", HSLA{22.5, 100, 70, 0.6}.String())
}

func TestLinearGradient_At(t *testing.T) {
	g := LinearGradient{
		X0: 0, Y0: 0, X1: 0, Y1: 100,
		Stops: []ColorStop{
			{Offset: 0, Color: HSLA{0, 0, 0, 1}},
			{Offset: 1, Color: HSLA{0, 0, 100, 0}},
		},
	}

	top := g.At(10, 0)
	mid := g.At(10, 50)
	bottom := g.At(10, 100)
	past := g.At(10, 500)

	assert.InDelta(t, 0, top.R, 1e-9)
	assert.InDelta(t, 1, top.A, 1e-9)
	assert.InDelta(t, 0.5, mid.R, 1e-9)
	assert.InDelta(t, 0.5, mid.A, 1e-9)
	assert.InDelta(t, 1, bottom.R, 1e-9)
	assert.Equal(t, bottom, past)
}

func TestLinearGradient_Degenerate(t *testing.T) {
	g := LinearGradient{Stops: []ColorStop{{Offset: 0, Color: HSLA{0, 100, 50, 1}}}}
	assert.Equal(t, RGBA{1, 0, 0, 1}, g.At(3, 4))
}

func TestRadialGradient_At(t *testing.T) {
	g := RadialGradient{
		CX: 10, CY: 10, R0: 0, R1: 10,
		Stops: []ColorStop{
			{Offset: 0, Color: HSLA{0, 100, 50, 1}},
			{Offset: 1, Color: HSLA{0, 100, 50, 0}},
		},
	}

	assert.InDelta(t, 1, g.At(10, 10).A, 1e-9)
	assert.InDelta(t, 0.5, g.At(15, 10).A, 1e-9)
	assert.InDelta(t, 0, g.At(20, 10).A, 1e-9)
	assert.InDelta(t, 0, g.At(40, 40).A, 1e-9)
}

func TestRGBA_Color(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: -1, A: 2}.Color()
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
}
