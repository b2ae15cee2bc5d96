package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/travelcast/travelcast/internal/district"
	"github.com/travelcast/travelcast/internal/worker"
)

// fakeRefresher scripts the outcome of RefreshAllMetrics.
type fakeRefresher struct {
	created int
	updated int
	err     error
	calls   int
}

func (f *fakeRefresher) RefreshAllMetrics(context.Context) (int, int, error) {
	f.calls++
	return f.created, f.updated, f.err
}

func TestDefaultRefreshConfig(t *testing.T) {
	cfg := worker.DefaultRefreshConfig()

	assert.Equal(t, 1*time.Hour, cfg.Interval)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestRefreshJob_Run_Success(t *testing.T) {
	refresher := &fakeRefresher{created: 64, updated: 0}
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.Nop(),
		Service: refresher,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 1, refresher.calls)
	assert.NoError(t, result.Err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 64, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestRefreshJob_Run_Failure(t *testing.T) {
	refresher := &fakeRefresher{err: errors.New("provider down")}
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.Nop(),
		Service: refresher,
	})

	result := job.Run(context.Background())

	assert.Error(t, result.Err)
	assert.False(t, result.Skipped)

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(1), metrics.FailedRuns)
	assert.Equal(t, int64(0), metrics.SuccessfulRuns)
}

func TestRefreshJob_Run_SkippedWhenInProgress(t *testing.T) {
	refresher := &fakeRefresher{err: district.ErrRefreshInProgress}
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.Nop(),
		Service: refresher,
	})

	result := job.Run(context.Background())

	assert.True(t, result.Skipped)
	assert.NoError(t, result.Err)

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.SkippedRuns)
	assert.Equal(t, int64(0), metrics.FailedRuns)
}

func TestRefreshJob_GetMetrics(t *testing.T) {
	refresher := &fakeRefresher{created: 10, updated: 54}
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.Nop(),
		Service: refresher,
	})

	_ = job.Run(context.Background())
	_ = job.Run(context.Background())

	metrics := job.GetMetrics()
	assert.Equal(t, int64(2), metrics.TotalRuns)
	assert.Equal(t, int64(2), metrics.SuccessfulRuns)
	assert.Equal(t, 10, metrics.LastCreated)
	assert.Equal(t, 54, metrics.LastUpdated)
	assert.NotZero(t, metrics.LastRunAt)
	assert.Greater(t, metrics.TotalDuration, time.Duration(0))
}

func TestRefreshJob_MetricsSnapshot(t *testing.T) {
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.Nop(),
		Service: &fakeRefresher{},
	})

	_ = job.Run(context.Background())

	snapshot := job.MetricsSnapshot()

	assert.Contains(t, snapshot, "total_runs")
	assert.Contains(t, snapshot, "successful_runs")
	assert.Contains(t, snapshot, "failed_runs")
	assert.Contains(t, snapshot, "skipped_runs")
	assert.Contains(t, snapshot, "last_run_at")
	assert.Contains(t, snapshot, "last_run_duration")
}

func TestNewRefreshJob_DefaultConfig(t *testing.T) {
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:  worker.RefreshConfig{}, // Empty
		Logger:  zerolog.Nop(),
		Service: &fakeRefresher{},
	})

	metrics := job.GetMetrics()
	assert.Equal(t, int64(0), metrics.TotalRuns) // Not run yet
}
