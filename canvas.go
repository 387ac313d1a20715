package main

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"git.sr.ht/~whereswaldon/curvegraph/graph"
)

// surface draws graph primitives into a Gio frame. Text is measured into
// scratch so that measuring leaves nothing behind in the frame.
type surface struct {
	gtx     C
	th      *material.Theme
	scratch *op.Ops
}

var _ graph.Surface = surface{}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

// label lays out text at size pixels, ignoring the incoming constraints.
func (s surface) label(text string, size float32, col color.NRGBA) (D, op.CallOp) {
	gtx := s.gtx
	gtx.Constraints = layout.Constraints{Max: image.Pt(math.MaxInt32/2, math.MaxInt32/2)}
	pxPerSp := gtx.Metric.PxPerSp
	if pxPerSp == 0 {
		pxPerSp = 1
	}
	l := material.Label(s.th, unit.Sp(size/pxPerSp), text)
	l.MaxLines = 1
	l.Color = col
	return rec(gtx, l.Layout)
}

func (s surface) Measure(text string, size float32) f32.Point {
	if s.scratch == nil {
		s.scratch = new(op.Ops)
	}
	s.scratch.Reset()
	s.gtx.Ops = s.scratch
	dims, _ := s.label(text, size, color.NRGBA{})
	return layout.FPt(dims.Size)
}

func (s surface) DrawText(text string, topLeft f32.Point, style graph.TextStyle) {
	_, call := s.label(text, style.Size, style.Color)
	defer op.Offset(image.Pt(round(topLeft.X), round(topLeft.Y))).Push(s.gtx.Ops).Pop()
	call.Add(s.gtx.Ops)
}

func (s surface) DrawRect(r graph.Rect, col color.NRGBA) {
	rect := image.Rect(round(r.Min.X), round(r.Min.Y), round(r.Max.X), round(r.Max.Y))
	paint.FillShape(s.gtx.Ops, col, clip.Rect(rect).Op())
}

func (s surface) DrawLine(from, to f32.Point, style graph.LineStyle) {
	var p clip.Path
	p.Begin(s.gtx.Ops)
	p.MoveTo(from)
	p.LineTo(to)
	paint.FillShape(s.gtx.Ops, style.Color, clip.Stroke{
		Path:  p.End(),
		Width: style.Width,
	}.Op())
}

func (s surface) DrawCircle(center f32.Point, radius float32, col color.NRGBA) {
	s.DrawPath(graph.CirclePath(center, radius), graph.Paint{Color: col})
}

func (s surface) DrawPath(gp graph.Path, pt graph.Paint) {
	if gp.Empty() {
		return
	}
	var p clip.Path
	p.Begin(s.gtx.Ops)
	for _, cmd := range gp.Cmds {
		switch cmd.Verb {
		case graph.MoveTo:
			p.MoveTo(cmd.Pts[0])
		case graph.LineTo:
			p.LineTo(cmd.Pts[0])
		case graph.CubeTo:
			p.CubeTo(cmd.Pts[0], cmd.Pts[1], cmd.Pts[2])
		case graph.Close:
			p.Close()
		}
	}
	spec := p.End()
	var stack clip.Stack
	if pt.Width > 0 {
		stack = clip.Stroke{Path: spec, Width: pt.Width}.Op().Push(s.gtx.Ops)
	} else {
		stack = clip.Outline{Path: spec}.Op().Push(s.gtx.Ops)
	}
	defer stack.Pop()
	if g := pt.Gradient; g != nil {
		paint.LinearGradientOp{
			Stop1:  g.Stop1,
			Color1: g.Color1,
			Stop2:  g.Stop2,
			Color2: g.Color2,
		}.Add(s.gtx.Ops)
	} else {
		paint.ColorOp{Color: pt.Color}.Add(s.gtx.Ops)
	}
	paint.PaintOp{}.Add(s.gtx.Ops)
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}
