package graph

import (
	"image/color"

	"gioui.org/f32"
)

type opKind uint8

const (
	opLine opKind = iota
	opRect
	opFill
	opStroke
	opCircle
	opText
)

type recordedOp struct {
	kind  opKind
	text  string
	pts   []f32.Point
	path  Path
	paint Paint
	color color.NRGBA
}

// recorder is a Surface that remembers every call. Text is measured as
// half an em per rune and one em tall.
type recorder struct {
	ops []recordedOp
}

var _ Surface = (*recorder)(nil)

func (r *recorder) Measure(text string, size float32) f32.Point {
	return f32.Pt(float32(len([]rune(text)))*size/2, size)
}

func (r *recorder) DrawLine(from, to f32.Point, style LineStyle) {
	r.ops = append(r.ops, recordedOp{kind: opLine, pts: []f32.Point{from, to}, color: style.Color})
}

func (r *recorder) DrawRect(rect Rect, c color.NRGBA) {
	r.ops = append(r.ops, recordedOp{kind: opRect, pts: []f32.Point{rect.Min, rect.Max}, color: c})
}

func (r *recorder) DrawPath(p Path, paint Paint) {
	kind := opFill
	if paint.Width > 0 {
		kind = opStroke
	}
	r.ops = append(r.ops, recordedOp{kind: kind, path: p, paint: paint})
}

func (r *recorder) DrawCircle(center f32.Point, radius float32, c color.NRGBA) {
	r.ops = append(r.ops, recordedOp{kind: opCircle, pts: []f32.Point{center}, color: c})
}

func (r *recorder) DrawText(text string, topLeft f32.Point, style TextStyle) {
	r.ops = append(r.ops, recordedOp{kind: opText, text: text, pts: []f32.Point{topLeft}, color: style.Color})
}

func (r *recorder) count(kind opKind) int {
	n := 0
	for _, op := range r.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.kind == opText {
			out = append(out, op.text)
		}
	}
	return out
}

// first and last return the index of the first and last op of a kind, or
// -1.
func (r *recorder) first(kind opKind) int {
	for i, op := range r.ops {
		if op.kind == kind {
			return i
		}
	}
	return -1
}

func (r *recorder) last(kind opKind) int {
	for i := len(r.ops) - 1; i >= 0; i-- {
		if r.ops[i].kind == kind {
			return i
		}
	}
	return -1
}
