package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const ellipseSegments = 28

// frame2D is a rotated local coordinate system centred at (cx, cy).
type frame2D struct {
	cx, cy   float64
	cos, sin float64
}

func newFrame(cx, cy, rot float64) frame2D {
	return frame2D{cx: cx, cy: cy, cos: math.Cos(rot), sin: math.Sin(rot)}
}

// at maps local (lx, ly) into world space.
func (f frame2D) at(lx, ly float64) (x, y float64) {
	return f.cx + lx*f.cos - ly*f.sin, f.cy + lx*f.sin + ly*f.cos
}

// ellipsePoints returns the outline of an ellipse with radii (rx, ry) centred
// at local (lx, ly) in frame f.
func ellipsePoints(f frame2D, lx, ly, rx, ry float64, segments int) [][2]float32 {
	pts := make([][2]float32, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x, y := f.at(lx+math.Cos(a)*rx, ly+math.Sin(a)*ry)
		pts[i] = [2]float32{float32(x), float32(y)}
	}
	return pts
}

// bezierPoints samples a cubic Bezier curve at segments+1 points.
func bezierPoints(p0, c1, c2, p1 [2]float64, segments int) [][2]float32 {
	pts := make([][2]float32, segments+1)
	for i := range pts {
		t := float64(i) / float64(segments)
		u := 1 - t
		a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		pts[i] = [2]float32{
			float32(a*p0[0] + b*c1[0] + c*c2[0] + d*p1[0]),
			float32(a*p0[1] + b*c1[1] + c*c2[1] + d*p1[1]),
		}
	}
	return pts
}

// fillPolygon fills the closed polygon pts with clr.
func fillPolygon(dst *ebiten.Image, pts [][2]float32, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		path.LineTo(p[0], p[1])
	}
	path.Close()

	opts := &vector.DrawPathOptions{AntiAlias: true}
	opts.ColorScale.ScaleWithColor(clr)
	vector.FillPath(dst, &path, &vector.FillOptions{}, opts)
}

// fillEllipse fills a rotated ellipse.
func fillEllipse(dst *ebiten.Image, f frame2D, lx, ly, rx, ry float64, clr color.Color) {
	fillPolygon(dst, ellipsePoints(f, lx, ly, rx, ry, ellipseSegments), clr)
}

// strokePolyline draws an open polyline.
func strokePolyline(dst *ebiten.Image, pts [][2]float32, width float32, clr color.Color) {
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(dst, pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], width, clr, true)
	}
}

// rgba builds a non-premultiplied colour from 0-255 channels and a 0-1 alpha.
func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(a) * 255))}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
