// Package worker provides background job processing for TravelCast.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelcast/travelcast/internal/district"
)

// MetricsRefresher rebuilds the district snapshot table.
type MetricsRefresher interface {
	RefreshAllMetrics(ctx context.Context) (created, updated int, err error)
}

// RefreshConfig holds configuration for the snapshot refresh job.
type RefreshConfig struct {
	// Interval between scheduled runs. Default: 1 hour.
	Interval time.Duration

	// Timeout for a single run. A full-catalog refresh is two provider
	// calls, so this stays well under the interval. Default: 2 minutes.
	Timeout time.Duration
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Interval: 1 * time.Hour,
		Timeout:  2 * time.Minute,
	}
}

// RefreshJob runs the district snapshot refresh and tracks its statistics.
type RefreshJob struct {
	config  RefreshConfig
	logger  zerolog.Logger
	service MetricsRefresher

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRuns      int64
	SuccessfulRuns int64
	FailedRuns     int64
	SkippedRuns    int64

	// Last run
	LastRunAt       time.Time
	LastRunDuration time.Duration
	LastCreated     int
	LastUpdated     int

	TotalDuration time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config  RefreshConfig
	Logger  zerolog.Logger
	Service MetricsRefresher
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.Interval <= 0 {
		config.Interval = DefaultRefreshConfig().Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRefreshConfig().Timeout
	}

	return &RefreshJob{
		config:  config,
		logger:  cfg.Logger,
		service: cfg.Service,
		metrics: &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Created   int
	Updated   int
	Skipped   bool
	Err       error
}

// Run executes one snapshot refresh.
//
// A run that finds another refresh already in flight counts as skipped, not
// failed; the in-flight run will produce the snapshots this one would have.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{StartTime: startTime}

	j.logger.Info().
		Dur("timeout", j.config.Timeout).
		Msg("starting snapshot refresh job")

	runCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	created, updated, err := j.service.RefreshAllMetrics(runCtx)

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)
	result.Created = created
	result.Updated = updated

	switch {
	case errors.Is(err, district.ErrRefreshInProgress):
		result.Skipped = true
		j.logger.Warn().Msg("refresh already in progress, skipping run")
	case err != nil:
		result.Err = err
		j.logger.Error().
			Err(err).
			Dur("duration", result.Duration).
			Msg("snapshot refresh job failed")
	default:
		j.logger.Info().
			Dur("duration", result.Duration).
			Int("created", created).
			Int("updated", updated).
			Msg("snapshot refresh job completed")
	}

	j.updateMetrics(result)

	return result
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	switch {
	case result.Skipped:
		j.metrics.SkippedRuns++
	case result.Err != nil:
		j.metrics.FailedRuns++
	default:
		j.metrics.SuccessfulRuns++
		j.metrics.LastCreated = result.Created
		j.metrics.LastUpdated = result.Updated
	}
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		SuccessfulRuns:  j.metrics.SuccessfulRuns,
		FailedRuns:      j.metrics.FailedRuns,
		SkippedRuns:     j.metrics.SkippedRuns,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		LastCreated:     j.metrics.LastCreated,
		LastUpdated:     j.metrics.LastUpdated,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"successful_runs":   m.SuccessfulRuns,
		"failed_runs":       m.FailedRuns,
		"skipped_runs":      m.SkippedRuns,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"last_created":      m.LastCreated,
		"last_updated":      m.LastUpdated,
		"total_duration":    m.TotalDuration.String(),
	}
}
