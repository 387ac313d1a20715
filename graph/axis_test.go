package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneCount(t *testing.T) {
	for _, tc := range []struct {
		name      string
		axis      Axis
		maxValue  float64
		wantCount int
	}{
		{name: "exact multiple", axis: Axis{Initial: 1, Step: 1}, maxValue: 3, wantCount: 3},
		{name: "rounds up", axis: Axis{Initial: 10, Step: 10}, maxValue: 32, wantCount: 4},
		{name: "fractional step", axis: Axis{Initial: 0, Step: 0.5}, maxValue: 1.2, wantCount: 4},
		{name: "max equals initial", axis: Axis{Initial: 5, Step: 2}, maxValue: 5, wantCount: 1},
		{name: "max below initial", axis: Axis{Initial: 5, Step: 2}, maxValue: -20, wantCount: 1},
		{name: "negative range", axis: Axis{Initial: -30, Step: 10}, maxValue: -5, wantCount: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tc.axis.MilestoneCount(tc.maxValue)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCount, count)
		})
	}
}

func TestMilestoneCountCoversMax(t *testing.T) {
	for _, initial := range []float64{-7, 0, 1, 3.5} {
		for _, step := range []float64{0.1, 0.25, 1, 3, 10} {
			for _, span := range []float64{0, 0.01, 1, 9.99, 10, 123.4} {
				maxValue := initial + span
				a := Axis{Initial: initial, Step: step}
				count, err := a.MilestoneCount(maxValue)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, count, 1)
				last := a.TickValue(count - 1)
				assert.GreaterOrEqual(t, last+1e-9, maxValue, "axis %+v max %v", a, maxValue)
			}
		}
	}
}

func TestMilestoneCountLimit(t *testing.T) {
	for _, maxValue := range []float64{1.7e9, 1e300, MaxMilestones} {
		_, err := Axis{Initial: 0, Step: 1}.MilestoneCount(maxValue)
		assert.ErrorIs(t, err, ErrInvalidAxis, "max %v", maxValue)
	}
	_, err := Axis{Initial: -1e308, Step: 1e-300}.MilestoneCount(1e308)
	assert.ErrorIs(t, err, ErrInvalidAxis)

	count, err := Axis{Initial: 0, Step: 1}.MilestoneCount(MaxMilestones - 1)
	require.NoError(t, err)
	assert.Equal(t, MaxMilestones, count)

	count, err = Axis{Initial: 1e300, Step: 1}.MilestoneCount(0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInvalidAxis(t *testing.T) {
	for _, a := range []Axis{
		{Initial: 0, Step: 0},
		{Initial: 0, Step: -1},
		{Initial: 0, Step: math.NaN()},
		{Initial: 0, Step: math.Inf(1)},
		{Initial: math.NaN(), Step: 1},
	} {
		_, err := a.MilestoneCount(10)
		assert.ErrorIs(t, err, ErrInvalidAxis, "axis %+v", a)
		_, err = NewScale(a, 3, 0, 100, false)
		assert.ErrorIs(t, err, ErrInvalidAxis, "axis %+v", a)
	}
	_, err := Axis{Step: 1}.MilestoneCount(math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidAxis)
	_, err = NewScale(Axis{Step: 1}, 0, 0, 100, false)
	assert.ErrorIs(t, err, ErrInvalidAxis)
}

func TestAutoInitial(t *testing.T) {
	assert.Equal(t, 10.0, AutoInitial(12, 10))
	assert.Equal(t, 10.0, AutoInitial(10, 10))
	assert.Equal(t, -10.0, AutoInitial(-3, 10))
	assert.Equal(t, 0.5, AutoInitial(0.7, 0.5))
}

func TestTickPixelsEvenlySpaced(t *testing.T) {
	for _, inverted := range []bool{false, true} {
		s, err := NewScale(Axis{Initial: 10, Step: 10}, 5, 20, 180, inverted)
		require.NoError(t, err)
		gap := s.TickPixel(1) - s.TickPixel(0)
		if inverted {
			assert.Less(t, gap, float32(0))
			assert.Equal(t, float32(180), s.TickPixel(0))
			assert.Equal(t, float32(20), s.TickPixel(4))
		} else {
			assert.Greater(t, gap, float32(0))
			assert.Equal(t, float32(20), s.TickPixel(0))
			assert.Equal(t, float32(180), s.TickPixel(4))
		}
		for i := 1; i < s.Count; i++ {
			assert.InDelta(t, gap, s.TickPixel(i)-s.TickPixel(i-1), 1e-4)
		}
	}
}

func TestPixelMatchesTicks(t *testing.T) {
	s, err := NewScale(Axis{Initial: 1, Step: 2}, 4, 0, 90, true)
	require.NoError(t, err)
	for i := 0; i < s.Count; i++ {
		assert.InDelta(t, s.TickPixel(i), s.Pixel(s.TickValue(i)), 1e-4)
	}
	assert.Equal(t, 7.0, s.Last())
}

func TestPixelRoundTrip(t *testing.T) {
	for _, inverted := range []bool{false, true} {
		s, err := NewScale(Axis{Initial: -5, Step: 2.5}, 9, 13, 377, inverted)
		require.NoError(t, err)
		for _, v := range []float64{-5, -1.3, 0, 4.2, 12.75, 15} {
			assert.InDelta(t, v, s.Value(s.Pixel(v)), 1e-4, "value %v inverted %v", v, inverted)
		}
	}
}

func TestSingleMilestoneScale(t *testing.T) {
	s, err := NewScale(Axis{Initial: 3, Step: 1}, 1, 10, 50, false)
	require.NoError(t, err)
	assert.Equal(t, float32(10), s.TickPixel(0))
	assert.Equal(t, float32(10), s.Pixel(3))
	assert.Equal(t, 3.0, s.Value(42))

	s.Inverted = true
	assert.Equal(t, float32(50), s.TickPixel(0))
	assert.Equal(t, float32(50), s.Pixel(3))
	assert.False(t, math.IsNaN(float64(s.Pixel(100))))
}
