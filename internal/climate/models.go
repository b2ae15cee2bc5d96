// Package climate defines the data-source contract and time-series types
// shared by the metrics aggregator and the recommendation engine.
package climate

import (
	"context"
	"errors"
	"time"
)

// Climate data errors.
var (
	// ErrSourceUnavailable indicates a transport failure, a non-success
	// response, or a malformed payload from the climate data source.
	ErrSourceUnavailable = errors.New("climate data source unavailable")

	// ErrShapeMismatch indicates the source returned a different number of
	// series than coordinates requested. The index-aligned contract is the
	// only integrity check available, so this is fatal for the call.
	ErrShapeMismatch = errors.New("climate source response shape mismatch")
)

// Metric identifies an hourly metric exposed by the data source.
// Values double as the Open-Meteo hourly variable names.
type Metric string

const (
	MetricTemperature Metric = "temperature_2m"
	MetricPM25        Metric = "pm2_5"
)

// Coordinate is a geographic point in signed degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// HourlySeries holds parallel sequences of ISO-8601 local timestamps
// (e.g. "2026-08-27T14:00") and numeric-or-absent readings for one metric.
// A nil value means the reading is absent for that hour. Series whose
// sequences differ in length are unusable and reduce to no value.
type HourlySeries struct {
	Times  []string
	Values []*float64
}

// DataSource provides hourly climate data for sets of coordinates.
//
// Both methods follow an index-aligned contract: entry i of the response
// corresponds to coordinate i of the request. Implementations must preserve
// order end-to-end; callers validate by comparing lengths.
type DataSource interface {
	// BatchDaily returns one hourly series per coordinate for the given
	// metric, covering today plus the following days-1 forecast days.
	BatchDaily(ctx context.Context, metric Metric, coords []Coordinate, days int) ([]HourlySeries, error)

	// PairedInstant returns the metric value observed at the given instant
	// for each coordinate. A nil entry means the source had no reading at
	// that instant for that coordinate.
	PairedInstant(ctx context.Context, metric Metric, coords []Coordinate, at time.Time) ([]*float64, error)
}
