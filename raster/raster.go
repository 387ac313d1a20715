// Package raster draws graphs into in-memory images, for rendering charts
// without a window.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"gioui.org/f32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"honnef.co/go/curve"

	"git.sr.ht/~whereswaldon/curvegraph/graph"
)

// Canvas is a graph.Surface backed by an NRGBA image.
type Canvas struct {
	img   *image.NRGBA
	font  *opentype.Font
	faces map[float32]font.Face
}

var _ graph.Surface = (*Canvas)(nil)

// New returns a transparent canvas of the given size using the Go Regular
// font for text.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed parsing font: %w", err)
	}
	return &Canvas{
		img:   image.NewNRGBA(image.Rect(0, 0, width, height)),
		font:  fnt,
		faces: make(map[float32]font.Face),
	}, nil
}

// Image returns the image drawn so far.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() f32.Point {
	b := c.img.Bounds()
	return f32.Pt(float32(b.Dx()), float32(b.Dy()))
}

// EncodePNG writes the image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// Close releases the font faces.
func (c *Canvas) Close() error {
	var err error
	for size, face := range c.faces {
		err = errors.Join(err, face.Close())
		delete(c.faces, size)
	}
	return err
}

func (c *Canvas) face(size float32) font.Face {
	if face, ok := c.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Only reachable with a nonsensical size; fall back to no text.
		return nil
	}
	c.faces[size] = face
	return face
}

func (c *Canvas) Measure(text string, size float32) f32.Point {
	face := c.face(size)
	if face == nil {
		return f32.Point{}
	}
	m := face.Metrics()
	width := font.MeasureString(face, text)
	return f32.Pt(fromFixed(width), fromFixed(m.Ascent+m.Descent))
}

func (c *Canvas) DrawText(text string, topLeft f32.Point, style graph.TextStyle) {
	face := c.face(style.Size)
	if face == nil {
		return
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(style.Color),
		Face: face,
		Dot: fixed.Point26_6{
			X: toFixed(topLeft.X),
			Y: toFixed(topLeft.Y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
}

func (c *Canvas) DrawRect(r graph.Rect, col color.NRGBA) {
	rect := image.Rect(
		int(math.Floor(float64(r.Min.X))),
		int(math.Floor(float64(r.Min.Y))),
		int(math.Ceil(float64(r.Max.X))),
		int(math.Ceil(float64(r.Max.Y))),
	)
	draw.Draw(c.img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *Canvas) DrawLine(from, to f32.Point, style graph.LineStyle) {
	if style.Width <= 0 {
		return
	}
	var p curve.BezPath
	p.MoveTo(toPoint(from))
	p.LineTo(toPoint(to))
	z := c.rasterizer()
	addPath(z, outline(p, style.Width, curve.ButtCap))
	c.paint(z, image.NewUniform(style.Color))
}

func (c *Canvas) DrawCircle(center f32.Point, radius float32, col color.NRGBA) {
	c.DrawPath(graph.CirclePath(center, radius), graph.Paint{Color: col})
}

func (c *Canvas) DrawPath(p graph.Path, paint graph.Paint) {
	var src image.Image = image.NewUniform(paint.Color)
	if paint.Gradient != nil {
		src = gradient{*paint.Gradient}
	}
	path := bezPath(p)
	z := c.rasterizer()
	if paint.Width > 0 {
		addPath(z, outline(path, paint.Width, curve.RoundCap))
	} else {
		addPath(z, path.Elements())
	}
	c.paint(z, src)
}

func (c *Canvas) rasterizer() *vector.Rasterizer {
	b := c.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z
}

func (c *Canvas) paint(z *vector.Rasterizer, src image.Image) {
	z.Draw(c.img, c.img.Bounds(), src, image.Point{})
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * 64))
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
