package graph

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/unit"
)

// AxisStyle holds the look of one axis.
type AxisStyle struct {
	TextSize    unit.Sp
	TextColor   color.NRGBA
	TextPadding unit.Dp
	TickLength  unit.Dp
	TickWidth   unit.Dp
	TickColor   color.NRGBA
	LineColor   color.NRGBA
	LineWidth   unit.Dp
	Grid        bool
	GridColor   color.NRGBA
	GridWidth   unit.Dp
}

// Gradient is a two stop linear gradient. For the area fill it runs from the
// top of the drawable area (From) down to the baseline (To).
type Gradient struct {
	From, To color.NRGBA
}

// Style is the complete look of a chart. Start from DefaultStyle and
// override fields; Style values are never mutated while drawing.
type Style struct {
	Background  color.NRGBA
	X, Y        AxisStyle
	PointRadius unit.Dp
	PointColor  color.NRGBA
	LineWidth   unit.Dp
	LineColor   color.NRGBA
	Area        Gradient
}

var (
	black = color.NRGBA{A: 0xff}
	grey  = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
)

// DefaultAxisStyle returns the default look of an axis.
func DefaultAxisStyle() AxisStyle {
	return AxisStyle{
		TextSize:    12,
		TextColor:   black,
		TextPadding: 4,
		TickLength:  4,
		TickWidth:   1,
		TickColor:   black,
		LineColor:   black,
		LineWidth:   1,
		Grid:        false,
		GridColor:   grey,
		GridWidth:   1,
	}
}

// DefaultStyle returns a black line over a cyan to yellow area on a
// transparent background.
func DefaultStyle() Style {
	return Style{
		X:           DefaultAxisStyle(),
		Y:           DefaultAxisStyle(),
		PointRadius: 4,
		PointColor:  black,
		LineWidth:   2.5,
		LineColor:   black,
		Area: Gradient{
			From: color.NRGBA{G: 0xff, B: 0xff, A: 0xff},
			To:   color.NRGBA{R: 0xff, G: 0xff, A: 0xff},
		},
	}
}

// LineStyle is the explicit style of a straight line draw call.
type LineStyle struct {
	Color color.NRGBA
	Width float32
}

// Paint is the explicit style of a path draw call. A zero Width fills the
// path; a positive Width strokes it. A non-nil Gradient replaces Color.
type Paint struct {
	Color    color.NRGBA
	Width    float32
	Gradient *LinearGradient
}

// LinearGradient shades from Color1 at Stop1 to Color2 at Stop2 along the
// line between them. Beyond either stop the stop's color continues.
type LinearGradient struct {
	Stop1, Stop2   f32.Point
	Color1, Color2 color.NRGBA
}

// TextStyle is the explicit style of a text draw call. Size is in pixels.
type TextStyle struct {
	Size  float32
	Color color.NRGBA
}

// pixels converts the unit based sizes of a style once per render.
type pixels struct {
	xText, yText      float32
	xPad, yPad        float32
	xTick, yTick      float32
	xTickW, yTickW    float32
	xLineW, yLineW    float32
	xGridW, yGridW    float32
	radius, lineWidth float32
}

func (s Style) pixels(m unit.Metric) pixels {
	sp := func(v unit.Sp) float32 { return float32(v) * nonZero(m.PxPerSp) }
	dp := func(v unit.Dp) float32 { return float32(v) * nonZero(m.PxPerDp) }
	return pixels{
		xText:     sp(s.X.TextSize),
		yText:     sp(s.Y.TextSize),
		xPad:      dp(s.X.TextPadding),
		yPad:      dp(s.Y.TextPadding),
		xTick:     dp(s.X.TickLength),
		yTick:     dp(s.Y.TickLength),
		xTickW:    dp(s.X.TickWidth),
		yTickW:    dp(s.Y.TickWidth),
		xLineW:    dp(s.X.LineWidth),
		yLineW:    dp(s.Y.LineWidth),
		xGridW:    dp(s.X.GridWidth),
		yGridW:    dp(s.Y.GridWidth),
		radius:    dp(s.PointRadius),
		lineWidth: dp(s.LineWidth),
	}
}

// nonZero treats an unset metric as one pixel per unit.
func nonZero(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}
