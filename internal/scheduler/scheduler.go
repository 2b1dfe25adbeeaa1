package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"rentalmarket-backend/internal/jobs"
	"rentalmarket-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// UTC timezone, seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.VoidExpiredBookings, s.jobs.VoidExpiredBookings)
	if err != nil {
		logger.Error("Failed to register VoidExpiredBookings job", "error", err, "schedule", cfg.VoidExpiredBookings)
		return
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if any job is registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
