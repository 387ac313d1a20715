package graph

import "gioui.org/f32"

// Verb identifies a path command.
type Verb uint8

const (
	MoveTo Verb = iota
	LineTo
	CubeTo
	Close
)

func (v Verb) String() string {
	switch v {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case CubeTo:
		return "C"
	case Close:
		return "Z"
	default:
		return "?"
	}
}

// Cmd is one path command. MoveTo and LineTo use Pts[0]; CubeTo uses
// Pts[0] and Pts[1] as control points and Pts[2] as the end point.
type Cmd struct {
	Verb Verb
	Pts  [3]f32.Point
}

// Path is a list of commands that surfaces replay onto their own path
// representation.
type Path struct {
	Cmds []Cmd
}

func (p *Path) MoveTo(to f32.Point) {
	p.Cmds = append(p.Cmds, Cmd{Verb: MoveTo, Pts: [3]f32.Point{to}})
}

func (p *Path) LineTo(to f32.Point) {
	p.Cmds = append(p.Cmds, Cmd{Verb: LineTo, Pts: [3]f32.Point{to}})
}

func (p *Path) CubeTo(ctrl0, ctrl1, to f32.Point) {
	p.Cmds = append(p.Cmds, Cmd{Verb: CubeTo, Pts: [3]f32.Point{ctrl0, ctrl1, to}})
}

func (p *Path) Close() {
	p.Cmds = append(p.Cmds, Cmd{Verb: Close})
}

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool {
	return len(p.Cmds) == 0
}

// kappa is the control point distance for approximating a quarter circle
// with a cubic Bezier curve.
const kappa = 0.5522847498

// CirclePath returns a closed circle made of four cubic arcs.
func CirclePath(center f32.Point, radius float32) Path {
	k := radius * kappa
	c := center
	var p Path
	p.MoveTo(f32.Pt(c.X+radius, c.Y))
	p.CubeTo(f32.Pt(c.X+radius, c.Y+k), f32.Pt(c.X+k, c.Y+radius), f32.Pt(c.X, c.Y+radius))
	p.CubeTo(f32.Pt(c.X-k, c.Y+radius), f32.Pt(c.X-radius, c.Y+k), f32.Pt(c.X-radius, c.Y))
	p.CubeTo(f32.Pt(c.X-radius, c.Y-k), f32.Pt(c.X-k, c.Y-radius), f32.Pt(c.X, c.Y-radius))
	p.CubeTo(f32.Pt(c.X+k, c.Y-radius), f32.Pt(c.X+radius, c.Y-k), f32.Pt(c.X+radius, c.Y))
	p.Close()
	return p
}
