// Package config reads chart styles and axis settings from TOML files.
//
// A file only needs to mention what it changes:
//
//	background = "white"
//	line_color = "#1e88e5"
//
//	[area]
//	from = "#1e88e540"
//	to = "transparent"
//
//	[y]
//	step = 10.0
//	auto_initial = true
//	grid = true
//
// Sizes are floats in dp (sp for text_size). Colors are #rrggbb, #rrggbbaa,
// or a CSS color name.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gioui.org/unit"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"

	"git.sr.ht/~whereswaldon/curvegraph/graph"
)

// File is the decoded contents of a configuration file.
type File struct {
	X, Y  graph.AxisConfig
	Style graph.Style
}

// Default returns the configuration used when no file is given: one unit
// steps on both axes, each starting at the smallest data value. An axis
// spanning more than graph.MaxMilestones steps needs a larger step.
func Default() File {
	return File{
		X:     graph.AxisConfig{Initial: 0, Step: 1, AutoInitial: true, Decimals: graph.AutoDecimals},
		Y:     graph.AxisConfig{Initial: 0, Step: 1, AutoInitial: true, Decimals: graph.AutoDecimals},
		Style: graph.DefaultStyle(),
	}
}

// Load reads the file at path on top of Default.
func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed reading config: %w", err)
	}
	f, err := Decode(bytes.NewReader(b))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode reads TOML from r on top of Default. Unknown keys are an error.
func Decode(r io.Reader) (File, error) {
	doc := fromFile(Default())
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, len(strict.Errors))
			for i := range strict.Errors {
				keys[i] = strings.Join(strict.Errors[i].Key(), ".")
			}
			return File{}, fmt.Errorf("failed decoding config: unknown keys %s: %w", strings.Join(keys, ", "), err)
		}
		return File{}, fmt.Errorf("failed decoding config: %w", err)
	}
	f := doc.toFile()
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks the axis settings.
func (f File) Validate() error {
	var err error
	if vErr := (graph.Axis{Initial: f.X.Initial, Step: f.X.Step}).Validate(); vErr != nil {
		err = errors.Join(err, fmt.Errorf("x: %w", vErr))
	}
	if vErr := (graph.Axis{Initial: f.Y.Initial, Step: f.Y.Step}).Validate(); vErr != nil {
		err = errors.Join(err, fmt.Errorf("y: %w", vErr))
	}
	return err
}

// Color is a color.NRGBA written as text in TOML.
type Color color.NRGBA

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	col, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = Color(col)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(FormatColor(color.NRGBA(c))), nil
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa and CSS color names.
// "transparent" is fully transparent black.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return color.NRGBA{}, nil
	}
	if !strings.HasPrefix(s, "#") {
		named, ok := colornames.Map[s]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
		}
		return color.NRGBAModel.Convert(named).(color.NRGBA), nil
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor writes c as #rrggbb, or #rrggbbaa when it is translucent.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

type axisDoc struct {
	Initial     float64 `toml:"initial"`
	Step        float64 `toml:"step"`
	AutoInitial bool    `toml:"auto_initial"`
	Decimals    int     `toml:"decimals"`

	TextSize    float64 `toml:"text_size"`
	TextColor   Color   `toml:"text_color"`
	TextPadding float64 `toml:"text_padding"`
	TickLength  float64 `toml:"tick_length"`
	TickWidth   float64 `toml:"tick_width"`
	TickColor   Color   `toml:"tick_color"`
	LineColor   Color   `toml:"line_color"`
	LineWidth   float64 `toml:"line_width"`
	Grid        bool    `toml:"grid"`
	GridColor   Color   `toml:"grid_color"`
	GridWidth   float64 `toml:"grid_width"`
}

type areaDoc struct {
	From Color `toml:"from"`
	To   Color `toml:"to"`
}

type document struct {
	Background  Color   `toml:"background"`
	PointRadius float64 `toml:"point_radius"`
	PointColor  Color   `toml:"point_color"`
	LineWidth   float64 `toml:"line_width"`
	LineColor   Color   `toml:"line_color"`
	Area        areaDoc `toml:"area"`
	X           axisDoc `toml:"x"`
	Y           axisDoc `toml:"y"`
}

func fromAxis(a graph.AxisConfig, s graph.AxisStyle) axisDoc {
	return axisDoc{
		Initial:     a.Initial,
		Step:        a.Step,
		AutoInitial: a.AutoInitial,
		Decimals:    a.Decimals,
		TextSize:    float64(s.TextSize),
		TextColor:   Color(s.TextColor),
		TextPadding: float64(s.TextPadding),
		TickLength:  float64(s.TickLength),
		TickWidth:   float64(s.TickWidth),
		TickColor:   Color(s.TickColor),
		LineColor:   Color(s.LineColor),
		LineWidth:   float64(s.LineWidth),
		Grid:        s.Grid,
		GridColor:   Color(s.GridColor),
		GridWidth:   float64(s.GridWidth),
	}
}

func (d axisDoc) toAxis() (graph.AxisConfig, graph.AxisStyle) {
	return graph.AxisConfig{
			Initial:     d.Initial,
			Step:        d.Step,
			AutoInitial: d.AutoInitial,
			Decimals:    d.Decimals,
		}, graph.AxisStyle{
			TextSize:    unit.Sp(d.TextSize),
			TextColor:   color.NRGBA(d.TextColor),
			TextPadding: unit.Dp(d.TextPadding),
			TickLength:  unit.Dp(d.TickLength),
			TickWidth:   unit.Dp(d.TickWidth),
			TickColor:   color.NRGBA(d.TickColor),
			LineColor:   color.NRGBA(d.LineColor),
			LineWidth:   unit.Dp(d.LineWidth),
			Grid:        d.Grid,
			GridColor:   color.NRGBA(d.GridColor),
			GridWidth:   unit.Dp(d.GridWidth),
		}
}

func fromFile(f File) document {
	s := f.Style
	return document{
		Background:  Color(s.Background),
		PointRadius: float64(s.PointRadius),
		PointColor:  Color(s.PointColor),
		LineWidth:   float64(s.LineWidth),
		LineColor:   Color(s.LineColor),
		Area:        areaDoc{From: Color(s.Area.From), To: Color(s.Area.To)},
		X:           fromAxis(f.X, s.X),
		Y:           fromAxis(f.Y, s.Y),
	}
}

func (d document) toFile() File {
	var f File
	f.X, f.Style.X = d.X.toAxis()
	f.Y, f.Style.Y = d.Y.toAxis()
	f.Style.Background = color.NRGBA(d.Background)
	f.Style.PointRadius = unit.Dp(d.PointRadius)
	f.Style.PointColor = color.NRGBA(d.PointColor)
	f.Style.LineWidth = unit.Dp(d.LineWidth)
	f.Style.LineColor = color.NRGBA(d.LineColor)
	f.Style.Area = graph.Gradient{From: color.NRGBA(d.Area.From), To: color.NRGBA(d.Area.To)}
	return f
}

// Encode writes f as TOML, listing every setting.
func Encode(w io.Writer, f File) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(fromFile(f)); err != nil {
		return fmt.Errorf("failed encoding config: %w", err)
	}
	return nil
}

// Chart returns a chart of points drawn with the configured style and
// axes.
func (f File) Chart(points []graph.Point, format graph.Formatter) graph.Chart {
	return graph.Chart{
		Points: points,
		X:      f.X,
		Y:      f.Y,
		Style:  f.Style,
		Format: format,
	}
}
