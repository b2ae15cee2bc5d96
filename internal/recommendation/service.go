package recommendation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelcast/travelcast/internal/climate"
	"github.com/travelcast/travelcast/internal/district"
)

// TwoPMHour is the local clock-hour every comparison is made at.
const TwoPMHour = 14

// ServiceConfig holds configuration for the recommendation service.
type ServiceConfig struct {
	// Source is the climate data source.
	Source climate.DataSource

	// Logger for service operations.
	Logger zerolog.Logger

	// Location is the timezone the 2 PM instant is interpreted in
	// (default: Asia/Dhaka).
	Location *time.Location
}

// Service produces travel recommendations. It is stateless; requests are
// independent and safe to run in parallel.
type Service struct {
	source   climate.DataSource
	logger   zerolog.Logger
	location *time.Location
}

// NewService creates a new recommendation service.
func NewService(cfg ServiceConfig) *Service {
	location := cfg.Location
	if location == nil {
		var err error
		location, err = time.LoadLocation("Asia/Dhaka")
		if err != nil {
			location = time.UTC
		}
	}

	return &Service{
		source:   cfg.Source,
		logger:   cfg.Logger,
		location: location,
	}
}

// Recommend compares the 2 PM conditions at the current location and the
// destination on the travel date, and applies the comfort decision rule.
// Each metric is fetched with exactly one paired call carrying both
// coordinates (index 0 = current, index 1 = destination).
func (s *Service) Recommend(ctx context.Context, currentLat, currentLon float64, dest *district.District, travelDate time.Time) (*Result, error) {
	at := time.Date(travelDate.Year(), travelDate.Month(), travelDate.Day(), TwoPMHour, 0, 0, 0, s.location)
	coords := []climate.Coordinate{
		{Lat: currentLat, Lon: currentLon},
		{Lat: dest.Lat, Lon: dest.Lon},
	}

	currentTemp, destTemp, err := s.fetchPair(ctx, climate.MetricTemperature, coords, at)
	if err != nil {
		return nil, err
	}

	currentPM, destPM, err := s.fetchPair(ctx, climate.MetricPM25, coords, at)
	if err != nil {
		return nil, err
	}

	status, reason := decide(currentTemp, currentPM, destTemp, destPM)

	return &Result{
		Status:     status,
		Reason:     reason,
		TravelDate: at,
		Current: Reading{
			Temperature2PM: currentTemp,
			PM25:           currentPM,
		},
		Destination: DestinationReading{
			DistrictID: dest.ID,
			District:   dest.Name,
			Reading: Reading{
				Temperature2PM: destTemp,
				PM25:           destPM,
			},
		},
	}, nil
}

// fetchPair issues one paired-coordinate call and validates the response
// shape and completeness.
func (s *Service) fetchPair(ctx context.Context, metric climate.Metric, coords []climate.Coordinate, at time.Time) (float64, float64, error) {
	values, err := s.source.PairedInstant(ctx, metric, coords, at)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch %s: %w", metric, err)
	}
	if len(values) != 2 {
		return 0, 0, fmt.Errorf("%s: got %d entries for 2 coordinates: %w",
			metric, len(values), climate.ErrShapeMismatch)
	}
	if values[0] == nil || values[1] == nil {
		s.logger.Warn().
			Str("metric", string(metric)).
			Time("at", at).
			Bool("current_present", values[0] != nil).
			Bool("destination_present", values[1] != nil).
			Msg("no 2 PM reading for requested instant")
		return 0, 0, ErrMissingInstantData
	}
	return *values[0], *values[1], nil
}

// decide applies the comfort rule: strictly cooler AND cleaner means
// Recommended; otherwise the reason names what is worse, preferring the
// combined message, then temperature, then air quality. Equal or mixed
// conditions fall through to a neutral reason.
func decide(currentTemp, currentPM, destTemp, destPM float64) (Status, string) {
	tempDiff := climate.Round1(destTemp - currentTemp)
	pmDiff := climate.Round1(destPM - currentPM)

	if destTemp < currentTemp && destPM < currentPM {
		reason := fmt.Sprintf("Your destination is %.1f°C cooler and has better air quality.", -tempDiff)
		return StatusRecommended, reason
	}

	switch {
	case tempDiff > 0 && pmDiff > 0:
		return StatusNotRecommended, fmt.Sprintf("Your destination is %.1f°C hotter and has worse air quality.", tempDiff)
	case tempDiff > 0:
		return StatusNotRecommended, fmt.Sprintf("Your destination is %.1f°C hotter than your current location.", tempDiff)
	case pmDiff > 0:
		return StatusNotRecommended, fmt.Sprintf("Your destination has worse air quality (+%.1f µg/m³ PM2.5).", pmDiff)
	default:
		return StatusNotRecommended, "Conditions at the destination offer no clear advantage over your current location."
	}
}
