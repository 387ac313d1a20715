package graph

import (
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArea(t *testing.T) {
	b, err := Area(f32.Pt(200, 100), Insets{
		XLabel:      f32.Pt(20, 10),
		YLabel:      f32.Pt(30, 12),
		XTick:       4,
		YTick:       6,
		XPadding:    2,
		YPadding:    3,
		PointRadius: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, Bounds{
		StartX: 30 + 6 + 3,
		EndX:   200 - 10,
		StartY: 6,
		EndY:   100 - (10 + 5 + 2),
	}, b)
	assert.Equal(t, float32(151), b.Width())
	assert.Equal(t, float32(77), b.Height())
}

func TestAreaMarkerRadiusDominates(t *testing.T) {
	b, err := Area(f32.Pt(100, 100), Insets{PointRadius: 8})
	require.NoError(t, err)
	assert.Equal(t, Bounds{StartX: 8, EndX: 92, StartY: 8, EndY: 92}, b)
}

func TestAreaDegenerate(t *testing.T) {
	_, err := Area(f32.Pt(10, 10), Insets{YLabel: f32.Pt(20, 4), PointRadius: 2})
	assert.ErrorIs(t, err, ErrDegenerateArea)
	_, err = Area(f32.Pt(0, 0), Insets{})
	assert.ErrorIs(t, err, ErrDegenerateArea)
}
