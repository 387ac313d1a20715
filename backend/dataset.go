package backend

import (
	"math"

	"git.sr.ht/~whereswaldon/curvegraph/graph"
)

// Dataset is the series loaded from one point file.
type Dataset struct {
	Headings [2]string
	Points   []graph.Point

	yMin, yMax float64
	present    int
}

// Initialized reports whether the header row has been seen.
func (d *Dataset) Initialized() bool {
	return d.Headings != [2]string{}
}

// SetHeadings names the x and y columns. Missing names default to "x" and "y".
func (d *Dataset) SetHeadings(headings []string) {
	d.Headings = [2]string{"x", "y"}
	for i := 0; i < len(headings) && i < 2; i++ {
		if headings[i] != "" {
			d.Headings[i] = headings[i]
		}
	}
}

// Insert appends a point and updates the y range.
func (d *Dataset) Insert(p graph.Point) {
	d.Points = append(d.Points, p)
	y, ok := p.Y.Get()
	if !ok {
		return
	}
	if d.present == 0 {
		d.yMin, d.yMax = y, y
	}
	d.yMin = math.Min(d.yMin, y)
	d.yMax = math.Max(d.yMax, y)
	d.present++
}

// YRange returns the smallest and largest y values. ok is false when
// every point is a gap.
func (d *Dataset) YRange() (lo, hi float64, ok bool) {
	return d.yMin, d.yMax, d.present > 0
}

// Gaps returns the number of points without a y value.
func (d *Dataset) Gaps() int {
	return len(d.Points) - d.present
}

// Clone returns a copy that shares nothing with d.
func (d *Dataset) Clone() Dataset {
	c := *d
	c.Points = append([]graph.Point(nil), d.Points...)
	return c
}
