package graph

import (
	"fmt"

	"gioui.org/f32"
)

// Bounds is the pixel rectangle data geometry is plotted in.
type Bounds struct {
	StartX, EndX float32
	StartY, EndY float32
}

// Width of the drawable area.
func (b Bounds) Width() float32 { return b.EndX - b.StartX }

// Height of the drawable area.
func (b Bounds) Height() float32 { return b.EndY - b.StartY }

// Insets holds everything that eats into the canvas around the plot. Label
// sizes are the largest measured tick label on each axis.
type Insets struct {
	XLabel, YLabel     f32.Point
	XTick, YTick       float32
	XPadding, YPadding float32
	PointRadius        float32
}

// Area computes the drawable rectangle of a canvas so that labels, tick
// marks and markers stay inside it. The insets are fixed; very large labels
// on a tiny canvas can still clip.
func Area(canvas f32.Point, in Insets) (Bounds, error) {
	r := in.PointRadius
	b := Bounds{
		StartX: in.YLabel.X + max(in.YTick, r) + in.YPadding,
		EndX:   canvas.X - max(in.XLabel.X/2, r),
		StartY: max(in.YLabel.Y/2, r),
		EndY:   canvas.Y - (in.XLabel.Y + max(in.XTick, r) + in.XPadding),
	}
	if b.EndX <= b.StartX || b.EndY <= b.StartY {
		return b, fmt.Errorf("%w: canvas %vx%v leaves %vx%v", ErrDegenerateArea, canvas.X, canvas.Y, b.Width(), b.Height())
	}
	return b, nil
}
