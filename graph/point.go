package graph

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Numeric is any value that can be plotted on a numeric axis.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// X is the horizontal category of a point. It is either a number or a
// free-form label; a series must not mix the two.
type X struct {
	label   string
	value   float64
	numeric bool
}

// At returns a numeric X. The value is converted to float64 here and nowhere
// else.
func At[T Numeric](v T) X {
	return X{value: float64(v), numeric: true}
}

// Label returns a categorical X.
func Label(s string) X {
	return X{label: s}
}

// Value returns the numeric value of x, or false for a label.
func (x X) Value() (float64, bool) {
	return x.value, x.numeric
}

// Label returns the label of a categorical x, or the empty string.
func (x X) Label() string {
	return x.label
}

// Y is an optional vertical value. The zero value is a gap.
type Y struct {
	value   float64
	present bool
}

// Gap is a missing value. It breaks the line and has no marker.
var Gap = Y{}

// Some returns a present Y. NaN is treated as a gap.
func Some[T Numeric](v T) Y {
	f := float64(v)
	if math.IsNaN(f) {
		return Gap
	}
	return Y{value: f, present: true}
}

// Get returns the value and whether it is present.
func (y Y) Get() (float64, bool) {
	return y.value, y.present
}

// Point is a single datum of a series.
type Point struct {
	X X
	Y Y
}

// P is shorthand for a fully numeric point.
func P[TX, TY Numeric](x TX, y TY) Point {
	return Point{X: At(x), Y: Some(y)}
}

// categorical reports whether the series uses labels on the x-axis.
// Empty series are numeric.
func categorical(points []Point) (bool, error) {
	if len(points) == 0 {
		return false, nil
	}
	_, first := points[0].X.Value()
	for i, p := range points[1:] {
		if _, ok := p.X.Value(); ok != first {
			return false, mixedError(i + 1)
		}
	}
	return !first, nil
}

// yRange returns the extrema of the present y values.
func yRange(points []Point) (lo, hi float64, ok bool) {
	for _, p := range points {
		v, present := p.Y.Get()
		if !present {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, ok
}

// xRange returns the extrema of the numeric x values.
func xRange(points []Point) (lo, hi float64, ok bool) {
	for _, p := range points {
		v, numeric := p.X.Value()
		if !numeric {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, ok
}
