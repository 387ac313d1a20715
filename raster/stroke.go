package raster

import (
	"image"
	"image/color"
	"iter"
	"math"

	"gioui.org/f32"
	"golang.org/x/image/vector"
	"honnef.co/go/curve"

	"git.sr.ht/~whereswaldon/curvegraph/graph"
)

// tolerance is the largest distance in pixels between a curve and the
// lines it is flattened into.
const tolerance = 0.1

func toPoint(p f32.Point) curve.Point {
	return curve.Pt(float64(p.X), float64(p.Y))
}

// bezPath converts p for use with the curve package.
func bezPath(p graph.Path) curve.BezPath {
	var b curve.BezPath
	for _, cmd := range p.Cmds {
		switch cmd.Verb {
		case graph.MoveTo:
			b.MoveTo(toPoint(cmd.Pts[0]))
		case graph.LineTo:
			b.LineTo(toPoint(cmd.Pts[0]))
		case graph.CubeTo:
			b.CubicTo(toPoint(cmd.Pts[0]), toPoint(cmd.Pts[1]), toPoint(cmd.Pts[2]))
		case graph.Close:
			b.ClosePath()
		}
	}
	return b
}

// outline expands a stroke of p into a path to be filled. Joins are round.
func outline(p curve.BezPath, width float32, caps curve.Cap) iter.Seq[curve.PathElement] {
	style := curve.DefaultStroke.WithWidth(float64(width)).WithCaps(caps)
	return curve.StrokePath(p.Elements(), style, curve.StrokeOpts{}, tolerance)
}

// addPath flattens elems onto z, closing every sub-path.
func addPath(z *vector.Rasterizer, elems iter.Seq[curve.PathElement]) {
	open := false
	for el := range curve.Flatten(elems, tolerance) {
		switch el.Kind {
		case curve.MoveToKind:
			if open {
				z.ClosePath()
			}
			z.MoveTo(float32(el.P0.X), float32(el.P0.Y))
			open = true
		case curve.LineToKind:
			z.LineTo(float32(el.P0.X), float32(el.P0.Y))
		case curve.ClosePathKind:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
}

// gradient is an unbounded image shading a graph.LinearGradient.
type gradient struct {
	graph.LinearGradient
}

var _ image.Image = gradient{}

func (g gradient) ColorModel() color.Model {
	return color.NRGBAModel
}

func (g gradient) Bounds() image.Rectangle {
	const inf = 1 << 24
	return image.Rect(-inf, -inf, inf, inf)
}

func (g gradient) At(x, y int) color.Color {
	axis := g.Stop2.Sub(g.Stop1)
	length := axis.X*axis.X + axis.Y*axis.Y
	if length == 0 {
		return g.Color1
	}
	p := f32.Pt(float32(x)+.5, float32(y)+.5).Sub(g.Stop1)
	t := (p.X*axis.X + p.Y*axis.Y) / length
	t = min(max(t, 0), 1)
	return lerp(g.Color1, g.Color2, t)
}

func lerp(a, b color.NRGBA, t float32) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(float32(x) + (float32(y)-float32(x))*t)))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
