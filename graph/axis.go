package graph

import (
	"fmt"
	"math"
)

// Axis describes evenly spaced milestones starting at Initial.
type Axis struct {
	Initial float64
	Step    float64
}

// Validate rejects axes whose geometry would not be finite.
func (a Axis) Validate() error {
	switch {
	case math.IsNaN(a.Step) || math.IsInf(a.Step, 0):
		return fmt.Errorf("%w: step %v is not finite", ErrInvalidAxis, a.Step)
	case a.Step <= 0:
		return fmt.Errorf("%w: step %v must be positive", ErrInvalidAxis, a.Step)
	case math.IsNaN(a.Initial) || math.IsInf(a.Initial, 0):
		return fmt.Errorf("%w: initial value %v is not finite", ErrInvalidAxis, a.Initial)
	}
	return nil
}

// MaxMilestones bounds the number of milestones on one axis.
const MaxMilestones = 10_000

// MilestoneCount returns how many milestones are needed for the axis to reach
// maxValue. The result is never less than one, and the last milestone is
// always >= maxValue. Axes needing more than MaxMilestones are rejected.
func (a Axis) MilestoneCount(maxValue float64) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(maxValue) || math.IsInf(maxValue, 0) {
		return 0, fmt.Errorf("%w: max value %v is not finite", ErrInvalidAxis, maxValue)
	}
	steps := math.Ceil((maxValue - a.Initial) / a.Step)
	if steps <= 0 {
		return 1, nil
	}
	// The +1 accounts for the initial milestone itself.
	if steps+1 > MaxMilestones {
		return 0, fmt.Errorf("%w: too many milestones from %v to %v in steps of %v (limit %d)",
			ErrInvalidAxis, a.Initial, maxValue, a.Step, MaxMilestones)
	}
	return int(steps) + 1, nil
}

// TickValue returns the data value of milestone i.
func (a Axis) TickValue(i int) float64 {
	return a.Initial + float64(i)*a.Step
}

// AutoInitial returns the largest multiple of step that is <= minValue.
func AutoInitial(minValue, step float64) float64 {
	return math.Floor(minValue/step) * step
}

// Scale maps an axis with a fixed number of milestones onto a pixel span.
// Inverted scales grow from End towards Start, which is what a vertical axis
// needs since pixel rows grow downward.
type Scale struct {
	Axis
	Count      int
	Start, End float32
	Inverted   bool
}

// NewScale binds an axis to the pixel span [start, end].
func NewScale(axis Axis, count int, start, end float32, inverted bool) (Scale, error) {
	if err := axis.Validate(); err != nil {
		return Scale{}, err
	}
	if count < 1 {
		return Scale{}, fmt.Errorf("%w: milestone count %d", ErrInvalidAxis, count)
	}
	return Scale{
		Axis:     axis,
		Count:    count,
		Start:    start,
		End:      end,
		Inverted: inverted,
	}, nil
}

// Last returns the value of the last milestone.
func (s Scale) Last() float64 {
	return s.TickValue(s.Count - 1)
}

// span returns the number of data units covered by the scale.
func (s Scale) span() float64 {
	return float64(s.Count-1) * s.Step
}

// TickPixel returns the pixel offset of milestone i. A single milestone sits
// at the origin of the axis.
func (s Scale) TickPixel(i int) float32 {
	if s.Count < 2 {
		return s.origin()
	}
	space := (s.End - s.Start) / float32(s.Count-1)
	if s.Inverted {
		return s.End - float32(i)*space
	}
	return s.Start + float32(i)*space
}

// Pixel maps a data value to its pixel offset.
func (s Scale) Pixel(v float64) float32 {
	span := s.span()
	if span == 0 {
		return s.origin()
	}
	offset := float32((v - s.Initial) * float64(s.End-s.Start) / span)
	if s.Inverted {
		return s.End - offset
	}
	return s.Start + offset
}

// Value is the inverse of Pixel.
func (s Scale) Value(px float32) float64 {
	length := float64(s.End - s.Start)
	if s.Count < 2 || length == 0 {
		return s.Initial
	}
	offset := float64(px - s.Start)
	if s.Inverted {
		offset = float64(s.End - px)
	}
	return s.Initial + offset*s.span()/length
}

func (s Scale) origin() float32 {
	if s.Inverted {
		return s.End
	}
	return s.Start
}
