package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Scheduler runs the refresh job on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       *RefreshJob
	logger    zerolog.Logger
}

// NewScheduler creates a scheduler for the given refresh job.
func NewScheduler(job *RefreshJob, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		job:       job,
		logger:    logger,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// The first run fires immediately so the snapshot table is populated on boot.
func (s *Scheduler) Start(ctx context.Context) error {
	interval := s.job.config.Interval

	_, err := s.scheduler.Every(interval).StartImmediately().Do(func() {
		s.job.Run(ctx)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Dur("interval", interval).
		Msg("refresh scheduler started")

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.logger.Info().Msg("refresh scheduler stopped")
}
