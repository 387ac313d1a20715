package main

import (
	"image/color"
	"strconv"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget/material"
	"gioui.org/x/component"

	"git.sr.ht/~whereswaldon/curvegraph/backend"
	"git.sr.ht/~whereswaldon/curvegraph/graph"
)

// ChartData draws the points of a dataset as a smoothed graph next to a
// table of the raw values.
type ChartData struct {
	*backend.Dataset
	Chart    graph.Chart
	keyTable component.GridState
	measure  op.Ops
	// err is the most recent failure to lay out the graph.
	err error
}

func NewChart(ds *backend.Dataset, chart graph.Chart) *ChartData {
	return &ChartData{
		Dataset: ds,
		Chart:   chart,
	}
}

// Err returns the error of the last layout, if any.
func (c *ChartData) Err() error {
	return c.err
}

func (c *ChartData) Layout(gtx C, th *material.Theme) D {
	return layout.Flex{}.Layout(gtx,
		layout.Flexed(.7, func(gtx C) D {
			return c.layoutPlot(gtx, th)
		}),
		layout.Flexed(.3, func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
				return c.layoutTable(gtx, th)
			})
		}),
	)
}

func (c *ChartData) layoutPlot(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	chart := c.Chart
	chart.Points = c.Points
	c.err = chart.Render(surface{gtx: gtx, th: th, scratch: &c.measure}, layout.FPt(size), gtx.Metric)
	if c.err != nil {
		l := material.Body1(th, c.err.Error())
		l.Color = color.NRGBA{R: 150, A: 255}
		l.Alignment = text.Middle
		layout.Center.Layout(gtx, l.Layout)
	}
	return D{Size: size}
}

func (c *ChartData) layoutTable(gtx C, th *material.Theme) D {
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	indexColWidth := gtx.Dp(40)
	valueColWidth := (gtx.Constraints.Max.X - indexColWidth - gtx.Dp(table.VScrollbarStyle.Width())) / 2
	rowHeight := gtx.Sp(20)
	const (
		indexCol = iota
		xCol
		yCol
		numCols
	)
	return table.Layout(gtx, len(c.Points), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			size := valueColWidth
			if index == indexCol {
				size = indexColWidth
			}
			return min(max(size, 0), constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case indexCol:
				l = material.Body1(th, "#")
			case xCol:
				l = material.Body1(th, c.Headings[0])
			case yCol:
				l = material.Body1(th, c.Headings[1])
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			l.MaxLines = 1
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			p := c.Points[row]
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				var l material.LabelStyle
				switch col {
				case indexCol:
					l = material.Body2(th, strconv.Itoa(row))
				case xCol:
					l = material.Body2(th, formatX(p.X))
				case yCol:
					y, ok := p.Y.Get()
					if ok {
						l = material.Body2(th, strconv.FormatFloat(y, 'g', -1, 64))
					} else {
						l = material.Body2(th, "gap")
						l.Color.A = 100
					}
					l.Alignment = text.End
				}
				l.MaxLines = 1
				return l.Layout(gtx)
			})
			if row&1 != 0 {
				paint.FillShape(gtx.Ops, color.NRGBA{A: 15}, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}

func formatX(x graph.X) string {
	if v, ok := x.Value(); ok {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return x.Label()
}
