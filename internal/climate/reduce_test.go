package climate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/travelcast/travelcast/internal/climate"
)

func fp(v float64) *float64 { return &v }

func TestReduce2PMAverage_AveragesOnly2PMEntries(t *testing.T) {
	s := climate.HourlySeries{
		Times: []string{
			"2026-08-27T13:00",
			"2026-08-27T14:00",
			"2026-08-28T14:00",
			"2026-08-28T15:00",
			"2026-08-29T14:00",
		},
		Values: []*float64{fp(99), fp(25.0), fp(26.0), fp(99), fp(24.5)},
	}

	avg, ok := climate.Reduce2PMAverage(s)
	assert.True(t, ok)
	assert.InDelta(t, 25.167, avg, 0.0001)
}

func TestReduce2PMAverage_RoundsToThreeDecimals(t *testing.T) {
	s := climate.HourlySeries{
		Times:  []string{"2026-08-27T14:00", "2026-08-28T14:00", "2026-08-29T14:00"},
		Values: []*float64{fp(1), fp(1), fp(2)},
	}

	avg, ok := climate.Reduce2PMAverage(s)
	assert.True(t, ok)
	assert.Equal(t, 1.333, avg)
}

func TestReduce2PMAverage_SkipsAbsentValues(t *testing.T) {
	s := climate.HourlySeries{
		Times:  []string{"2026-08-27T14:00", "2026-08-28T14:00", "2026-08-29T14:00"},
		Values: []*float64{fp(40.0), nil, fp(42.0)},
	}

	avg, ok := climate.Reduce2PMAverage(s)
	assert.True(t, ok)
	assert.Equal(t, 41.0, avg)
}

func TestReduce2PMAverage_SkipsNonFiniteValues(t *testing.T) {
	s := climate.HourlySeries{
		Times:  []string{"2026-08-27T14:00", "2026-08-28T14:00"},
		Values: []*float64{fp(math.NaN()), fp(30.0)},
	}

	avg, ok := climate.Reduce2PMAverage(s)
	assert.True(t, ok)
	assert.Equal(t, 30.0, avg)
}

func TestReduce2PMAverage_NoValue(t *testing.T) {
	tests := []struct {
		name   string
		series climate.HourlySeries
	}{
		{
			name:   "empty series",
			series: climate.HourlySeries{},
		},
		{
			name: "empty values",
			series: climate.HourlySeries{
				Times: []string{"2026-08-27T14:00"},
			},
		},
		{
			name: "unequal lengths",
			series: climate.HourlySeries{
				Times:  []string{"2026-08-27T14:00", "2026-08-28T14:00"},
				Values: []*float64{fp(25.0)},
			},
		},
		{
			name: "no 2pm entries",
			series: climate.HourlySeries{
				Times:  []string{"2026-08-27T13:00", "2026-08-27T15:00"},
				Values: []*float64{fp(25.0), fp(26.0)},
			},
		},
		{
			name: "all 2pm entries absent",
			series: climate.HourlySeries{
				Times:  []string{"2026-08-27T14:00", "2026-08-28T14:00"},
				Values: []*float64{nil, nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := climate.Reduce2PMAverage(tt.series)
			assert.False(t, ok)
		})
	}
}

func TestReduceAtHour_CustomHour(t *testing.T) {
	s := climate.HourlySeries{
		Times:  []string{"2026-08-27T09:00", "2026-08-27T14:00"},
		Values: []*float64{fp(20.0), fp(30.0)},
	}

	avg, ok := climate.ReduceAtHour(s, "09:00")
	assert.True(t, ok)
	assert.Equal(t, 20.0, avg)
}
