package game

import (
	"image/color"
	"math"
	"math/rand"
)

// Splat is the mark a squashed fly leaves for the rest of the level.
type Splat struct {
	X, Y     float64
	Size     float64
	Rotation float64
	Color    color.NRGBA
}

// splatPalette holds the gut colours.
var splatPalette = [...]color.NRGBA{
	{R: 173, G: 255, B: 47, A: 230}, // green-yellow
	{R: 0, G: 255, B: 0, A: 204},    // lime
	{R: 255, G: 20, B: 147, A: 217}, // deep pink
	{R: 255, G: 255, B: 0, A: 230},  // yellow
	{R: 0, G: 255, B: 255, A: 204},  // cyan
}

func newSplat(f *Fly, rng *rand.Rand) Splat {
	return Splat{
		X:        f.X,
		Y:        f.Y,
		Size:     f.Size * splatScale,
		Rotation: rng.Float64() * 2 * math.Pi,
		Color:    splatPalette[rng.Intn(len(splatPalette))],
	}
}
