package game

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	backgroundVariants = 4
	hairlineSpacing    = 8
	streakSpacing      = 120
	streakOverscan     = 200
	streakSegments     = 32
	speckCount         = 500
)

var woodBase = rgba(249, 234, 211, 1)

// backgroundCache keeps a few pre-drawn wood-grain variants for the current
// viewport. Picking one at random each frame gives the table its flicker
// without redrawing hundreds of strokes per frame.
type backgroundCache struct {
	w, h     int
	variants []*ebiten.Image

	// build and free default to drawing a wood-grain image and deallocating it.
	build func(w, h int, rng *rand.Rand) *ebiten.Image
	free  func(*ebiten.Image)
}

func newWoodGrain(w, h int, rng *rand.Rand) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	drawWoodGrain(img, float64(w), float64(h), rng)
	return img
}

// get returns a variant for a w x h viewport, rebuilding the set on resize.
func (bc *backgroundCache) get(w, h int, rng *rand.Rand) *ebiten.Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	if bc.w != w || bc.h != h || len(bc.variants) == 0 {
		bc.w, bc.h = w, h
		bc.release()
		build := bc.build
		if build == nil {
			build = newWoodGrain
		}
		for i := 0; i < backgroundVariants; i++ {
			bc.variants = append(bc.variants, build(w, h, rng))
		}
	}
	return bc.variants[rng.Intn(len(bc.variants))]
}

// release frees the GPU memory of every variant.
func (bc *backgroundCache) release() {
	for _, img := range bc.variants {
		if bc.free != nil {
			bc.free(img)
		} else {
			img.Deallocate()
		}
	}
	bc.variants = bc.variants[:0]
}

// drawWoodGrain paints the cream table: hairline grain, long brown streaks
// and scattered specks.
func drawWoodGrain(dst *ebiten.Image, w, h float64, rng *rand.Rand) {
	dst.Fill(woodBase)

	for y := 0.0; y < h; y += hairlineSpacing {
		r := rng.Float64()
		vector.StrokeLine(dst, 0, float32(y), float32(w), float32(y+(r-0.5)*5),
			1.5, rgba(160, 120, 90, 0.03+r*0.05), true)
	}

	for y := -float64(streakOverscan); y < h+streakOverscan; y += streakSpacing {
		pts := bezierPoints(
			[2]float64{0, y},
			[2]float64{w / 4, y + 80},
			[2]float64{w / 1.5, y - 120},
			[2]float64{w, y + 40},
			streakSegments,
		)
		strokePolyline(dst, pts, 2, rgba(139, 90, 43, 0.04+rng.Float64()*0.04))
	}

	speck := rgba(80, 50, 20, 0.03)
	for i := 0; i < speckCount; i++ {
		vector.FillRect(dst, float32(rng.Float64()*w), float32(rng.Float64()*h), 1.5, 0.8, speck, false)
	}
}
