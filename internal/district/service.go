package district

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelcast/travelcast/internal/climate"
)

// DefaultForecastDays is the window over which 2 PM averages are computed.
const DefaultForecastDays = 7

// DefaultTopN is how many districts TopDistricts returns when no count is
// given.
const DefaultTopN = 10

// ServiceConfig holds configuration for the district service.
type ServiceConfig struct {
	// Repository is the district and metrics store.
	Repository Repository

	// Source is the climate data source.
	Source climate.DataSource

	// Logger for service operations.
	Logger zerolog.Logger

	// ForecastDays is the averaging window (default: DefaultForecastDays).
	ForecastDays int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service provides catalog access, metrics aggregation, and comfort ranking.
type Service struct {
	repo         Repository
	source       climate.DataSource
	logger       zerolog.Logger
	forecastDays int
	now          func() time.Time

	refreshing atomic.Bool
}

// NewService creates a new district service.
func NewService(cfg ServiceConfig) *Service {
	forecastDays := cfg.ForecastDays
	if forecastDays <= 0 {
		forecastDays = DefaultForecastDays
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo:         cfg.Repository,
		source:       cfg.Source,
		logger:       cfg.Logger,
		forecastDays: forecastDays,
		now:          now,
	}
}

// ListDistricts returns the full catalog.
func (s *Service) ListDistricts(ctx context.Context) ([]*District, error) {
	return s.repo.ListDistricts(ctx)
}

// GetDistrict returns one district by ID.
func (s *Service) GetDistrict(ctx context.Context, id int64) (*District, error) {
	return s.repo.GetDistrict(ctx, id)
}

// RefreshAllMetrics recomputes the 2 PM averages for every catalog district
// and persists them in a single transaction. It makes exactly one batched
// data-source call per metric regardless of catalog size. Districts with
// insufficient data are skipped and keep their previous snapshot. Returns
// how many snapshots were created versus updated.
//
// Only one refresh runs at a time; an overlapping call fails fast with
// ErrRefreshInProgress instead of queueing.
func (s *Service) RefreshAllMetrics(ctx context.Context) (int, int, error) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return 0, 0, ErrRefreshInProgress
	}
	defer s.refreshing.Store(false)

	districts, err := s.repo.ListDistricts(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list districts: %w", err)
	}
	if len(districts) == 0 {
		return 0, 0, nil
	}

	coords := make([]climate.Coordinate, 0, len(districts))
	for _, d := range districts {
		coords = append(coords, climate.Coordinate{Lat: d.Lat, Lon: d.Lon})
	}

	tempSeries, err := s.fetchSeries(ctx, climate.MetricTemperature, coords, len(districts))
	if err != nil {
		return 0, 0, err
	}

	pmSeries, err := s.fetchSeries(ctx, climate.MetricPM25, coords, len(districts))
	if err != nil {
		return 0, 0, err
	}

	updatedAt := s.now().UTC()
	snapshots := make([]*MetricSnapshot, 0, len(districts))
	for i, d := range districts {
		avgTemp, tempOK := climate.Reduce2PMAverage(tempSeries[i])
		avgPM25, pmOK := climate.Reduce2PMAverage(pmSeries[i])
		if !tempOK || !pmOK {
			s.logger.Warn().
				Int64("district_id", d.ID).
				Str("district", d.Name).
				Bool("has_temperature", tempOK).
				Bool("has_pm25", pmOK).
				Msg("insufficient 2 PM data, keeping previous snapshot")
			continue
		}

		snapshots = append(snapshots, &MetricSnapshot{
			DistrictID:   d.ID,
			DistrictName: d.Name,
			AvgTemp2PM:   avgTemp,
			AvgPM25:      avgPM25,
			UpdatedAt:    updatedAt,
		})
	}

	created, updated, err := s.repo.UpsertSnapshots(ctx, snapshots)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert snapshots: %w", err)
	}

	s.logger.Info().
		Int("districts", len(districts)).
		Int("created", created).
		Int("updated", updated).
		Int("skipped", len(districts)-len(snapshots)).
		Msg("metrics refresh complete")

	return created, updated, nil
}

// fetchSeries fetches one batched multi-day series per coordinate and
// enforces the index-aligned response contract.
func (s *Service) fetchSeries(ctx context.Context, metric climate.Metric, coords []climate.Coordinate, want int) ([]climate.HourlySeries, error) {
	series, err := s.source.BatchDaily(ctx, metric, coords, s.forecastDays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", metric, err)
	}
	if len(series) != want {
		return nil, fmt.Errorf("%s: got %d series for %d districts: %w",
			metric, len(series), want, climate.ErrShapeMismatch)
	}
	return series, nil
}

// TopDistricts returns the n most comfortable districts: coolest first by
// average 2 PM temperature, then cleanest by average PM2.5. n <= 0 means
// DefaultTopN; fewer snapshots than n returns all of them.
func (s *Service) TopDistricts(ctx context.Context, n int) ([]*RankedDistrict, error) {
	if n <= 0 {
		n = DefaultTopN
	}

	snapshots, err := s.repo.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].AvgTemp2PM != snapshots[j].AvgTemp2PM {
			return snapshots[i].AvgTemp2PM < snapshots[j].AvgTemp2PM
		}
		if snapshots[i].AvgPM25 != snapshots[j].AvgPM25 {
			return snapshots[i].AvgPM25 < snapshots[j].AvgPM25
		}
		return snapshots[i].DistrictName < snapshots[j].DistrictName
	})

	if len(snapshots) > n {
		snapshots = snapshots[:n]
	}

	ranked := make([]*RankedDistrict, 0, len(snapshots))
	rank := 0
	for i, snap := range snapshots {
		// Dense ranking: equal averages share a rank.
		if i == 0 || snap.AvgTemp2PM != snapshots[i-1].AvgTemp2PM || snap.AvgPM25 != snapshots[i-1].AvgPM25 {
			rank++
		}
		ranked = append(ranked, &RankedDistrict{
			Rank:       rank,
			DistrictID: snap.DistrictID,
			Name:       snap.DistrictName,
			AvgTemp2PM: snap.AvgTemp2PM,
			AvgPM25:    snap.AvgPM25,
			UpdatedAt:  snap.UpdatedAt,
		})
	}

	return ranked, nil
}
