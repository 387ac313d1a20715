package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/curvegraph/graph"
)

// ErrNoPoints is returned when the input does not even hold a header row.
var ErrNoPoints = errors.New("no point data")

// PointReader decodes points from CSV. The first row is a header naming
// the columns. In every following row the first field is x, either a number
// or a category label, and the second is y. An empty y, "-", "null", "NaN"
// or an infinite y is a gap. Rows with an infinite or NaN x are skipped.
// Further fields are ignored.
type PointReader struct {
	csv     *csv.Reader
	headers []string
	row     int
}

func NewPointReader(r io.Reader) *PointReader {
	c := csv.NewReader(r)
	c.TrimLeadingSpace = true
	c.FieldsPerRecord = -1
	c.Comment = '#'
	c.ReuseRecord = true
	return &PointReader{csv: c}
}

// Headers returns the column names, reading the header row if needed.
func (p *PointReader) Headers() ([]string, error) {
	if p.headers != nil {
		return p.headers, nil
	}
	rec, err := p.csv.Read()
	if err != nil {
		return nil, err
	}
	p.headers = append([]string(nil), rec...)
	return p.headers, nil
}

// Next returns the next point. It returns io.EOF at the end of the
// currently available input; reading may resume once more is written.
func (p *PointReader) Next() (graph.Point, error) {
	if _, err := p.Headers(); err != nil {
		return graph.Point{}, err
	}
	for {
		rec, err := p.csv.Read()
		if err != nil {
			return graph.Point{}, err
		}
		p.row++
		if pt, ok := parseRow(rec, p.row); ok {
			return pt, nil
		}
	}
}

// ReadPoints reads a complete CSV point file.
func ReadPoints(r io.Reader) (headers []string, points []graph.Point, err error) {
	pr := NewPointReader(r)
	headers, err = pr.Headers()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrNoPoints
		}
		return nil, nil, fmt.Errorf("failed reading headers: %w", err)
	}
	for {
		pt, err := pr.Next()
		if errors.Is(err, io.EOF) {
			return headers, points, nil
		} else if err != nil {
			return headers, points, fmt.Errorf("failed reading points: %w", err)
		}
		points = append(points, pt)
	}
}

// parseLine decodes a single unterminated line, such as the tail of a file
// still being written.
func parseLine(line []byte, row int) (graph.Point, bool) {
	c := csv.NewReader(strings.NewReader(string(line)))
	c.TrimLeadingSpace = true
	c.FieldsPerRecord = -1
	rec, err := c.Read()
	if err != nil {
		return graph.Point{}, false
	}
	return parseRow(rec, row)
}

// parseRow decodes a record. Rows whose x is not finite are skipped, and y
// values that are not finite become gaps.
func parseRow(rec []string, row int) (graph.Point, bool) {
	var pt graph.Point
	if len(rec) > 0 {
		field := strings.TrimSpace(rec[0])
		if v, err := strconv.ParseFloat(field, 64); err != nil {
			pt.X = graph.Label(field)
		} else if math.IsNaN(v) || math.IsInf(v, 0) {
			log.Printf("skipping row %d, x=%q is not finite", row, field)
			return graph.Point{}, false
		} else {
			pt.X = graph.At(v)
		}
	}
	if len(rec) < 2 {
		log.Printf("row %d has no y value, treating as a gap", row)
		return pt, true
	}
	field := strings.TrimSpace(rec[1])
	switch strings.ToLower(field) {
	case "", "-", "null", "nan":
		return pt, true
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		log.Printf("failed parsing y[%d]=%q, treating as a gap: %v", row, field, err)
		return pt, true
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		log.Printf("y[%d]=%q is not finite, treating as a gap", row, field)
		return pt, true
	}
	pt.Y = graph.Some(v)
	return pt, true
}
