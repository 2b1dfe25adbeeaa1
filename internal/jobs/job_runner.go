package jobs

import (
	"fmt"
	"time"

	"rentalmarket-backend/internal/config"
	"rentalmarket-backend/internal/logger"
	"rentalmarket-backend/internal/repository"
)

const JobVoidExpiredBookings = "void-expired-bookings"

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookings repository.BookingRepository
	config   *config.Config
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(bookings repository.BookingRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		bookings: bookings,
		config:   cfg,
		now:      time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunJob runs a single job by name (for manual execution)
func (jr *JobRunner) RunJob(name string) error {
	switch name {
	case JobVoidExpiredBookings:
		jr.VoidExpiredBookings()
	case "all":
		jr.RunAll()
	default:
		return fmt.Errorf("unknown job: %s", name)
	}
	return nil
}

// RunAll runs every job once
func (jr *JobRunner) RunAll() {
	jr.VoidExpiredBookings()
}
