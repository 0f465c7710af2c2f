package render

import (
	"math/rand/v2"

	"github.com/tejashwikalptaru/wavescope/internal/domain"
)

const (
	particleMinRadius   = 1
	particleRadiusRange = 3
	particleMaxSpeed    = 1 // Initial speed per axis lies in [-max, max)
)

// Particle is one self-propelled, audio-reactive point.
// BaseRadius and Hue never change after seeding. Speed only flips sign on a
// boundary collision; the per-frame energy factor scales displacement, not speed.
type Particle struct {
	X, Y           float64
	BaseRadius     float64
	SpeedX, SpeedY float64
	Hue            float64
}

// Move advances the particle by its speed scaled by the energy factor, reflects
// off the surface edges and clamps the position into [0,width]×[0,height].
// Reflection is decided on the unclamped position.
func (p *Particle) Move(scale, width, height float64) {
	p.X += p.SpeedX * scale
	p.Y += p.SpeedY * scale

	if p.X < 0 || p.X > width {
		p.SpeedX = -p.SpeedX
	}
	if p.Y < 0 || p.Y > height {
		p.SpeedY = -p.SpeedY
	}

	p.X = clamp(p.X, 0, width)
	p.Y = clamp(p.Y, 0, height)
}

// Field is a fixed-size set of particles. The backing array is allocated once;
// re-seeding overwrites it in place and the count never changes.
type Field struct {
	particles []Particle
}

// NewField allocates a field of count particles. They are all zero until Seed is called.
func NewField(count int) (*Field, error) {
	if count <= 0 {
		return nil, domain.NewConfigurationError("particle_count", count, "must be positive")
	}
	return &Field{particles: make([]Particle, count)}, nil
}

// Seed scatters every particle uniformly over a width×height surface with a
// random radius, speed and base hue drawn from rng.
func (f *Field) Seed(rng *rand.Rand, width, height float64) {
	for i := range f.particles {
		f.particles[i] = Particle{
			X:          rng.Float64() * width,
			Y:          rng.Float64() * height,
			BaseRadius: rng.Float64()*particleRadiusRange + particleMinRadius,
			SpeedX:     (rng.Float64() - 0.5) * 2 * particleMaxSpeed,
			SpeedY:     (rng.Float64() - 0.5) * 2 * particleMaxSpeed,
			Hue:        rng.Float64() * 360,
		}
	}
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// At returns the particle at index i for in-place mutation.
func (f *Field) At(i int) *Particle {
	return &f.particles[i]
}

// Snapshot returns a copy of the particles.
func (f *Field) Snapshot() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
