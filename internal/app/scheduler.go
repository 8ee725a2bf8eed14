/**
 * @description
 * Cron scheduler setup for the background jobs.
 */
package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// SchedulerConfig holds the cron expressions for the background jobs.
type SchedulerConfig struct {
	SessionPurgeSchedule  string
	CustomerSweepSchedule string
}

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron   *cron.Cron
	jobs   *Jobs
	logger *slog.Logger
	config SchedulerConfig
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(jobs *Jobs, logger *slog.Logger, cfg SchedulerConfig) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:   c,
		jobs:   jobs,
		logger: logger,
		config: cfg,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.config.SessionPurgeSchedule, s.jobs.PurgeExpiredSessions); err != nil {
		s.logger.Error("failed to schedule session purge job", "error", err)
	} else {
		s.logger.Info("scheduled session purge job", "schedule", s.config.SessionPurgeSchedule)
	}

	if _, err := s.cron.AddFunc(s.config.CustomerSweepSchedule, s.jobs.SweepPendingCustomers); err != nil {
		s.logger.Error("failed to schedule customer sweep job", "error", err)
	} else {
		s.logger.Info("scheduled customer sweep job", "schedule", s.config.CustomerSweepSchedule)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
