package graph

import (
	"fmt"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/unit"
)

// TextMeasurer reports the width and height of text rendered at size
// pixels.
type TextMeasurer interface {
	Measure(text string, size float32) f32.Point
}

// Rect is an axis aligned pixel rectangle.
type Rect struct {
	Min, Max f32.Point
}

// Surface is an immediate mode 2D canvas. Every call carries its complete
// style.
type Surface interface {
	TextMeasurer
	DrawLine(from, to f32.Point, style LineStyle)
	DrawRect(r Rect, c color.NRGBA)
	DrawPath(p Path, paint Paint)
	DrawCircle(center f32.Point, radius float32, c color.NRGBA)
	// DrawText draws text with its top left corner at the given position.
	DrawText(text string, topLeft f32.Point, style TextStyle)
}

// AutoDecimals derives the label precision from the axis initial value and
// step.
const AutoDecimals = -1

// AxisConfig configures the milestones of one axis.
type AxisConfig struct {
	Initial float64
	Step    float64
	// AutoInitial replaces Initial with the largest multiple of Step below
	// the smallest value. Categorical x-axes ignore it.
	AutoInitial bool
	// Decimals is the number of fraction digits in labels, or AutoDecimals.
	Decimals int
}

// Chart is everything needed to render a series once.
type Chart struct {
	Points []Point
	X, Y   AxisConfig
	Style  Style
	// Format defaults to PlainFormatter.
	Format Formatter
}

// Tick is one milestone of an axis, with its label already measured.
type Tick struct {
	Value float64
	Label string
	Pos   float32
	Size  f32.Point
}

// Geometry is the fully computed layout of a chart in pixels.
type Geometry struct {
	Canvas         f32.Point
	Bounds         Bounds
	Insets         Insets
	XScale, YScale Scale
	XTicks, YTicks []Tick
	Vertices       []Vertex
	Curve          Curve

	style Style
	px    pixels
}

// Markers returns the positions of every present data point.
func (g Geometry) Markers() []f32.Point {
	var out []f32.Point
	for _, v := range g.Vertices {
		if v.Present {
			out = append(out, v.Pt)
		}
	}
	return out
}

// Render lays the chart out on a canvas of the given pixel size and draws
// it onto s.
func (c Chart) Render(s Surface, canvas f32.Point, m unit.Metric) error {
	g, err := c.Layout(canvas, m, s)
	if err != nil {
		return err
	}
	g.Draw(s)
	return nil
}

// Layout computes the geometry of the chart without drawing anything.
func (c Chart) Layout(canvas f32.Point, m unit.Metric, tm TextMeasurer) (Geometry, error) {
	cat, err := categorical(c.Points)
	if err != nil {
		return Geometry{}, err
	}
	format := c.Format
	if format == nil {
		format = PlainFormatter{}
	}
	px := c.Style.pixels(m)

	xAxis := Axis{Initial: c.X.Initial, Step: c.X.Step}
	xDecimals := c.X.Decimals
	var xHi float64
	if cat {
		xAxis = Axis{Initial: 0, Step: 1}
		xHi = float64(len(c.Points) - 1)
	} else if lo, hi, ok := xRange(c.Points); ok {
		if err := xAxis.Validate(); err != nil {
			return Geometry{}, fmt.Errorf("x axis: %w", err)
		}
		if c.X.AutoInitial {
			xAxis.Initial = AutoInitial(lo, xAxis.Step)
		}
		xHi = hi
	} else {
		xHi = xAxis.Initial
	}
	xCount, err := xAxis.MilestoneCount(xHi)
	if err != nil {
		return Geometry{}, fmt.Errorf("x axis: %w", err)
	}

	yAxis := Axis{Initial: c.Y.Initial, Step: c.Y.Step}
	if err := yAxis.Validate(); err != nil {
		return Geometry{}, fmt.Errorf("y axis: %w", err)
	}
	yLo, yHi, anyY := yRange(c.Points)
	if c.Y.AutoInitial && anyY {
		yAxis.Initial = AutoInitial(yLo, yAxis.Step)
	}
	if !anyY {
		yHi = yAxis.Initial
	}
	yCount, err := yAxis.MilestoneCount(yHi)
	if err != nil {
		return Geometry{}, fmt.Errorf("y axis: %w", err)
	}

	g := Geometry{Canvas: canvas, style: c.Style, px: px}

	g.XTicks = make([]Tick, xCount)
	for i := range g.XTicks {
		t := Tick{Value: xAxis.TickValue(i)}
		if cat {
			t.Label = c.Points[i].X.Label()
		} else {
			t.Label = format.Format(t.Value, decimalsFor(xAxis, xDecimals))
		}
		t.Size = tm.Measure(t.Label, px.xText)
		g.Insets.XLabel = maxSize(g.Insets.XLabel, t.Size)
		g.XTicks[i] = t
	}
	g.YTicks = make([]Tick, yCount)
	for i := range g.YTicks {
		t := Tick{Value: yAxis.TickValue(i)}
		t.Label = format.Format(t.Value, decimalsFor(yAxis, c.Y.Decimals))
		t.Size = tm.Measure(t.Label, px.yText)
		g.Insets.YLabel = maxSize(g.Insets.YLabel, t.Size)
		g.YTicks[i] = t
	}

	g.Insets.XTick, g.Insets.YTick = px.xTick, px.yTick
	g.Insets.XPadding, g.Insets.YPadding = px.xPad, px.yPad
	g.Insets.PointRadius = px.radius
	g.Bounds, err = Area(canvas, g.Insets)
	if err != nil {
		return Geometry{}, err
	}
	b := g.Bounds

	if g.XScale, err = NewScale(xAxis, xCount, b.StartX, b.EndX, false); err != nil {
		return Geometry{}, fmt.Errorf("x axis: %w", err)
	}
	if g.YScale, err = NewScale(yAxis, yCount, b.StartY, b.EndY, true); err != nil {
		return Geometry{}, fmt.Errorf("y axis: %w", err)
	}
	for i := range g.XTicks {
		g.XTicks[i].Pos = g.XScale.TickPixel(i)
	}
	for i := range g.YTicks {
		g.YTicks[i].Pos = g.YScale.TickPixel(i)
	}

	g.Vertices = make([]Vertex, len(c.Points))
	for i, p := range c.Points {
		y, ok := p.Y.Get()
		if !ok {
			continue
		}
		x := float64(i)
		if !cat {
			x, _ = p.X.Value()
		}
		g.Vertices[i] = Vertex{
			Pt:      f32.Pt(g.XScale.Pixel(x), g.YScale.Pixel(y)),
			Present: true,
		}
	}
	g.Curve = BuildCurve(g.Vertices, b.EndY)
	return g, nil
}

// Draw issues the draw calls of the chart: axes and grid first, then the
// area, the line and finally the markers on top.
func (g Geometry) Draw(s Surface) {
	st, px, b := g.style, g.px, g.Bounds

	if st.Background.A != 0 {
		s.DrawRect(Rect{Max: g.Canvas}, st.Background)
	}

	if st.X.Grid {
		for _, t := range g.XTicks {
			s.DrawLine(f32.Pt(t.Pos, b.StartY), f32.Pt(t.Pos, b.EndY), LineStyle{Color: st.X.GridColor, Width: px.xGridW})
		}
	}
	if st.Y.Grid {
		for _, t := range g.YTicks {
			s.DrawLine(f32.Pt(b.StartX, t.Pos), f32.Pt(b.EndX, t.Pos), LineStyle{Color: st.Y.GridColor, Width: px.yGridW})
		}
	}

	s.DrawLine(f32.Pt(b.StartX, b.EndY), f32.Pt(b.EndX, b.EndY), LineStyle{Color: st.X.LineColor, Width: px.xLineW})
	s.DrawLine(f32.Pt(b.StartX, b.StartY), f32.Pt(b.StartX, b.EndY), LineStyle{Color: st.Y.LineColor, Width: px.yLineW})

	xLabelTop := b.EndY + max(px.xTick, px.radius) + px.xPad
	for _, t := range g.XTicks {
		s.DrawLine(f32.Pt(t.Pos, b.EndY), f32.Pt(t.Pos, b.EndY+px.xTick), LineStyle{Color: st.X.TickColor, Width: px.xTickW})
		s.DrawText(t.Label, f32.Pt(t.Pos-t.Size.X/2, xLabelTop), TextStyle{Size: px.xText, Color: st.X.TextColor})
	}
	for _, t := range g.YTicks {
		s.DrawLine(f32.Pt(b.StartX-px.yTick, t.Pos), f32.Pt(b.StartX, t.Pos), LineStyle{Color: st.Y.TickColor, Width: px.yTickW})
		// Labels are right aligned against the widest one.
		s.DrawText(t.Label, f32.Pt(g.Insets.YLabel.X-t.Size.X, t.Pos-t.Size.Y/2), TextStyle{Size: px.yText, Color: st.Y.TextColor})
	}

	if !g.Curve.Fill.Empty() {
		s.DrawPath(g.Curve.Fill, Paint{Gradient: &LinearGradient{
			Stop1:  f32.Pt(b.StartX, b.StartY),
			Stop2:  f32.Pt(b.StartX, b.EndY),
			Color1: st.Area.From,
			Color2: st.Area.To,
		}})
	}
	if !g.Curve.Stroke.Empty() {
		s.DrawPath(g.Curve.Stroke, Paint{Color: st.LineColor, Width: px.lineWidth})
	}
	for _, pt := range g.Markers() {
		s.DrawCircle(pt, px.radius, st.PointColor)
	}
}

func maxSize(a, b f32.Point) f32.Point {
	return f32.Pt(max(a.X, b.X), max(a.Y, b.Y))
}

// decimalsFor resolves AutoDecimals to the fewest fraction digits that show
// every milestone of the axis exactly.
func decimalsFor(a Axis, decimals int) int {
	if decimals >= 0 {
		return decimals
	}
	const maxDecimals = 6
	for d := 0; d < maxDecimals; d++ {
		scale := math.Pow10(d)
		if integral(a.Initial*scale) && integral(a.Step*scale) {
			return d
		}
	}
	return maxDecimals
}

func integral(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9
}
