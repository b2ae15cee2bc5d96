// Package recommendation decides whether traveling from the user's current
// location to a destination district is advisable on a given date, based on
// the 2 PM temperature and PM2.5 readings at both points.
package recommendation

import (
	"errors"
	"time"
)

// ErrMissingInstantData indicates the data source responded but had no 2 PM
// reading for at least one of the four required values. The decision rule
// has no meaningful fallback with missing inputs, so this is a hard failure.
var ErrMissingInstantData = errors.New("missing 2 PM data for temperature or PM2.5")

// Status is the travel verdict.
type Status string

const (
	StatusRecommended    Status = "Recommended"
	StatusNotRecommended Status = "Not Recommended"
)

// Reading is one location's 2 PM instant snapshot.
type Reading struct {
	Temperature2PM float64
	PM25           float64
}

// DestinationReading is the destination's snapshot with its identity.
type DestinationReading struct {
	DistrictID int64
	District   string
	Reading
}

// Result is the outcome of one recommendation request. It is transient and
// never persisted.
type Result struct {
	Status      Status
	Reason      string
	TravelDate  time.Time
	Current     Reading
	Destination DestinationReading
}
