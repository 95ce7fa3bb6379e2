package game

import (
	"math"
	"math/rand"
)

// Fly is one buzzing target. Dead flies stay in the level's slice, frozen.
type Fly struct {
	ID          int
	X, Y        float64
	VX, VY      float64
	Angle       float64 // heading, radians
	Size        float64
	Speed       float64
	Erraticness float64
	Alive       bool
}

// steer perturbs the heading of an erratic fly and re-derives its velocity.
func (f *Fly) steer(rng *rand.Rand) {
	if f.Erraticness <= 0 {
		return
	}
	f.Angle += (rng.Float64() - 0.5) * f.Erraticness * jitterScale
	f.VX = math.Cos(f.Angle) * f.Speed
	f.VY = math.Sin(f.Angle) * f.Speed
}

// integrate advances the fly one frame.
func (f *Fly) integrate() {
	f.X += f.VX
	f.Y += f.VY
}

// wrap teleports a fly that left the viewport (padded by its size) to the
// opposite edge. Each axis wraps independently.
func (f *Fly) wrap(width, height float64) {
	if f.X < -f.Size {
		f.X = width + f.Size
	}
	if f.X > width+f.Size {
		f.X = -f.Size
	}
	if f.Y < -f.Size {
		f.Y = height + f.Size
	}
	if f.Y > height+f.Size {
		f.Y = -f.Size
	}
}

// withinPaddedViewport reports whether the fly satisfies the wrap invariant.
func (f *Fly) withinPaddedViewport(width, height float64) bool {
	return f.X >= -f.Size && f.X <= width+f.Size &&
		f.Y >= -f.Size && f.Y <= height+f.Size
}
