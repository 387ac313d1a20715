package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAxis is returned when an axis cannot produce finite geometry,
	// such as a non-positive step.
	ErrInvalidAxis = errors.New("invalid axis configuration")
	// ErrDegenerateArea is returned when the canvas is too small to leave a
	// drawable rectangle after the label and marker insets.
	ErrDegenerateArea = errors.New("degenerate drawable area")
	// ErrMixedCategories is returned for a series that mixes numeric and
	// label x values.
	ErrMixedCategories = errors.New("series mixes numeric and label x values")
)

func mixedError(index int) error {
	return fmt.Errorf("point %d: %w", index, ErrMixedCategories)
}
