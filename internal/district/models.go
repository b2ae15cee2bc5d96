// Package district provides the district catalog, metrics aggregation, and
// comfort ranking services.
package district

import (
	"errors"
	"time"
)

// Service and repository errors.
var (
	ErrDistrictNotFound = errors.New("district not found")

	// ErrRefreshInProgress is returned when a metrics refresh is rejected
	// because another refresh is still running.
	ErrRefreshInProgress = errors.New("metrics refresh already in progress")
)

// District is one entry of the district catalog. Name is unique and is the
// upsert key for catalog loads.
type District struct {
	ID         int64
	Name       string
	NameBN     string
	Lat        float64
	Lon        float64
	DivisionID int64
}

// MetricSnapshot holds the derived comfort metrics for one district: the
// 7-day averages of the 2 PM temperature and PM2.5 readings, both rounded to
// 3 decimals. At most one snapshot exists per district and it is never
// partial; a district with insufficient data simply has no snapshot.
type MetricSnapshot struct {
	DistrictID   int64
	DistrictName string
	AvgTemp2PM   float64
	AvgPM25      float64
	UpdatedAt    time.Time
}

// RankedDistrict is a snapshot with its comfort rank. Ranks are 1-based and
// dense: districts with identical averages share a rank.
type RankedDistrict struct {
	Rank       int
	DistrictID int64
	Name       string
	AvgTemp2PM float64
	AvgPM25    float64
	UpdatedAt  time.Time
}
