package game

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Fly-Squasher/internal/level"
)

const (
	splatDroplets   = 8
	wingFlapRate    = 0.1 // radians per millisecond
	swatterGridDivs = 8
	swatterAlpha    = 0.7
)

var (
	flyBodyColor = rgba(10, 10, 10, 1)
	flyWingColor = rgba(200, 200, 200, 0.4)
	flyEyeColor  = rgba(255, 0, 0, 1)
	flyEyeGlow   = rgba(255, 0, 0, 0.25)
	swatterFrame = rgba(26, 26, 26, swatterAlpha)
	swatterMesh  = rgba(0, 0, 0, 0.4*swatterAlpha)
)

// View is a read-only snapshot of everything the renderer draws.
type View struct {
	Width, Height int
	Flies         []Fly
	Splats        []Splat
	Shake         float64
	CursorX       float64
	CursorY       float64
	SwatterSize   float64
	Slamming      bool
	Now           time.Time
}

// View snapshots the driver for rendering at now.
func (d *Driver) View(now time.Time) View {
	width, height := d.Engine.Viewport()
	cx, cy := d.Input.Cursor()
	return View{
		Width:       int(width),
		Height:      int(height),
		Flies:       d.Engine.Flies(),
		Splats:      d.Engine.Splats(),
		Shake:       d.Engine.ShakeMagnitude(),
		CursorX:     cx,
		CursorY:     cy,
		SwatterSize: width * level.MustConfig(d.Session.Level()).SwatterSizeScale,
		Slamming:    d.Input.Slamming(now),
		Now:         now,
	}
}

// Renderer draws the table, splats, flies and the swatter. It never
// mutates the world.
type Renderer struct {
	rng      *rand.Rand
	bg       backgroundCache
	worldBuf *ebiten.Image
}

// NewRenderer creates a renderer. rng drives purely cosmetic randomness.
func NewRenderer(rng *rand.Rand) *Renderer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- cosmetic
	}
	return &Renderer{rng: rng}
}

// Draw renders v onto screen. The world is drawn into an offscreen buffer
// and blitted with the shake offset so everything jitters together.
func (r *Renderer) Draw(screen *ebiten.Image, v View) {
	if v.Width <= 0 || v.Height <= 0 {
		return
	}
	if r.worldBuf == nil || r.worldBuf.Bounds().Dx() != v.Width || r.worldBuf.Bounds().Dy() != v.Height {
		if r.worldBuf != nil {
			r.worldBuf.Deallocate()
		}
		r.worldBuf = ebiten.NewImage(v.Width, v.Height)
	}
	buf := r.worldBuf
	buf.Clear()

	if bg := r.bg.get(v.Width, v.Height, r.rng); bg != nil {
		buf.DrawImage(bg, nil)
	}
	for i := range v.Splats {
		r.drawSplat(buf, &v.Splats[i])
	}
	flap := math.Sin(float64(v.Now.UnixMilli()) * wingFlapRate)
	for i := range v.Flies {
		if v.Flies[i].Alive {
			drawFly(buf, &v.Flies[i], flap)
		}
	}
	drawSwatter(buf, v)

	ox, oy := shakeOffset(r.rng, v.Shake)
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(ox, oy)
	screen.Fill(color.Black)
	screen.DrawImage(buf, opts)
}

// shakeOffset draws a per-axis jitter for magnitude m.
func shakeOffset(rng *rand.Rand, m float64) (dx, dy float64) {
	if m <= 0 {
		return 0, 0
	}
	return (rng.Float64() - 0.5) * m, (rng.Float64() - 0.5) * m
}

// drawSplat draws the gut blob and its droplets. Droplet distances are
// re-rolled every frame so splats quiver.
func (r *Renderer) drawSplat(dst *ebiten.Image, s *Splat) {
	f := newFrame(s.X, s.Y, s.Rotation)
	fillEllipse(dst, f, 0, 0, s.Size, s.Size*0.7, s.Color)
	for i := 0; i < splatDroplets; i++ {
		a := float64(i) / splatDroplets * 2 * math.Pi
		dist := s.Size * (0.8 + r.rng.Float64()*0.8)
		x, y := f.at(math.Cos(a)*dist, math.Sin(a)*dist)
		vector.FillCircle(dst, float32(x), float32(y), float32(s.Size*0.15), s.Color, true)
	}
}

// drawFly draws a living fly facing along its heading: two flapping wings,
// a dark body and two glowing red eyes.
func drawFly(dst *ebiten.Image, fl *Fly, flap float64) {
	s := fl.Size
	f := newFrame(fl.X, fl.Y, fl.Angle+math.Pi/2)
	spread := flap * s * 0.5

	fillEllipse(dst, f, -s*0.4, 0, s*0.4, math.Max(s*0.8+spread, 1), flyWingColor)
	fillEllipse(dst, f, s*0.4, 0, s*0.4, math.Max(s*0.8+spread, 1), flyWingColor)
	fillEllipse(dst, f, 0, 0, s*0.4, s*0.7, flyBodyColor)

	for _, side := range [2]float64{-1, 1} {
		x, y := f.at(side*s*0.2, -s*0.5)
		vector.FillCircle(dst, float32(x), float32(y), float32(s*0.3), flyEyeGlow, true)
		vector.FillCircle(dst, float32(x), float32(y), float32(s*0.15), flyEyeColor, true)
	}
}

// drawSwatter draws the translucent square swatter at the cursor, shrunk
// while slamming.
func drawSwatter(dst *ebiten.Image, v View) {
	size := v.SwatterSize
	if v.Slamming {
		size *= slamShrink
	}
	if size <= 0 {
		return
	}
	half := size / 2
	x0, y0 := float32(v.CursorX-half), float32(v.CursorY-half)
	x1, y1 := float32(v.CursorX+half), float32(v.CursorY+half)

	for _, off := range swatterGrid(size) {
		vx, hy := float32(v.CursorX+off), float32(v.CursorY+off)
		vector.StrokeLine(dst, vx, y0, vx, y1, 2, swatterMesh, true)
		vector.StrokeLine(dst, x0, hy, x1, hy, 2, swatterMesh, true)
	}
	vector.StrokeRect(dst, x0, y0, float32(size), float32(size), 6, swatterFrame, true)
}

// swatterGrid returns the mesh line offsets from the swatter centre.
func swatterGrid(size float64) []float64 {
	step := size / swatterGridDivs
	offs := make([]float64, 0, swatterGridDivs+1)
	for i := 0; i <= swatterGridDivs; i++ {
		offs = append(offs, -size/2+float64(i)*step)
	}
	return offs
}
