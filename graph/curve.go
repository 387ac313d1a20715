package graph

import "gioui.org/f32"

// Segment is one cubic Bezier curve between two consecutive data points.
type Segment struct {
	P0, P1, P2, P3 f32.Point
}

// NewSegment joins p0 and p3 with control points on horizontal tangents at
// their horizontal midpoint, so every segment leaves and enters its end
// points moving horizontally.
func NewSegment(p0, p3 f32.Point) Segment {
	midX := (p0.X + p3.X) / 2
	return Segment{
		P0: p0,
		P1: f32.Pt(midX, p0.Y),
		P2: f32.Pt(midX, p3.Y),
		P3: p3,
	}
}

// At evaluates the curve at t in [0, 1].
func (s Segment) At(t float32) f32.Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return f32.Pt(
		a*s.P0.X+b*s.P1.X+c*s.P2.X+d*s.P3.X,
		a*s.P0.Y+b*s.P1.Y+c*s.P2.Y+d*s.P3.Y,
	)
}

// Vertex is a data point projected to pixels. Vertices that are not Present
// are gaps.
type Vertex struct {
	Pt      f32.Point
	Present bool
}

// Curve is the line through a series plus the area beneath it.
type Curve struct {
	Segments []Segment
	// Stroke holds one open sub-path per unbroken run of vertices.
	Stroke Path
	// Fill holds one closed sub-path per segment, down to the baseline.
	// Neighbouring sub-paths share their vertical edges.
	Fill Path
}

// BuildCurve connects each pair of adjacent present vertices. No segment
// spans a gap.
func BuildCurve(vertices []Vertex, baseline float32) Curve {
	var c Curve
	running := false
	for i := 0; i+1 < len(vertices); i++ {
		v0, v3 := vertices[i], vertices[i+1]
		if !v0.Present || !v3.Present {
			running = false
			continue
		}
		seg := NewSegment(v0.Pt, v3.Pt)
		c.Segments = append(c.Segments, seg)

		if !running {
			c.Stroke.MoveTo(seg.P0)
			running = true
		}
		c.Stroke.CubeTo(seg.P1, seg.P2, seg.P3)

		c.Fill.MoveTo(seg.P0)
		c.Fill.CubeTo(seg.P1, seg.P2, seg.P3)
		c.Fill.LineTo(f32.Pt(seg.P3.X, baseline))
		c.Fill.LineTo(f32.Pt(seg.P0.X, baseline))
		c.Fill.Close()
	}
	return c
}
