package climate

import (
	"math"
	"strings"
)

// TwoPMClockHour is the local time-of-day used as the comparison point for
// all climate-comfort decisions. Matches the data source's hourly grid.
const TwoPMClockHour = "14:00"

// Reduce2PMAverage reduces a multi-day hourly series to the average of its
// 2 PM readings. See ReduceAtHour.
func Reduce2PMAverage(s HourlySeries) (float64, bool) {
	return ReduceAtHour(s, TwoPMClockHour)
}

// ReduceAtHour averages the readings observed at the given local clock-hour
// ("HH:MM") across the series, rounded to 3 decimals.
//
// The boolean is false when no average is computable: empty timestamp or
// value sequence, unequal sequence lengths, or no surviving entries after
// filtering. Callers must treat that as "insufficient data for this
// location", not as a fault. Absent (nil) and non-finite readings are
// discarded rather than failing the reduction.
func ReduceAtHour(s HourlySeries, clockHour string) (float64, bool) {
	if len(s.Times) == 0 || len(s.Values) == 0 || len(s.Times) != len(s.Values) {
		return 0, false
	}

	suffix := "T" + clockHour
	var sum float64
	var n int
	for i, ts := range s.Times {
		if !strings.HasSuffix(ts, suffix) {
			continue
		}
		v := s.Values[i]
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		sum += *v
		n++
	}

	if n == 0 {
		return 0, false
	}
	return round3(sum / float64(n)), true
}

// round3 rounds to 3 decimal places.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Round1 rounds to 1 decimal place. Used by the recommendation decision
// rule when comparing instant readings.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
