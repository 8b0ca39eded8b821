// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/michalkratky/slovicka/internal/usecase"
)

const defaultRunAt = "03:30"

// Scheduler runs the daily session-stats consolidation.
type Scheduler struct {
	scheduler *gocron.Scheduler
	stats     usecase.StatsUsecase
	logger    *logrus.Logger
	runAt     string
}

// New creates the scheduler; runAt is the daily HH:MM run time in the
// server's local timezone.
func New(stats usecase.StatsUsecase, logger *logrus.Logger, runAt string) *Scheduler {
	if runAt == "" {
		runAt = defaultRunAt
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		stats:     stats,
		logger:    logger,
		runAt:     runAt,
	}
}

// Start schedules the maintenance job and begins running it in the
// background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.runAt).Do(s.consolidate); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Infof("maintenance scheduler started, daily at %s", s.runAt)
	return nil
}

// Stop terminates the scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) consolidate() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	report, err := s.stats.Consolidate(ctx)
	if err != nil {
		s.logger.WithError(err).Error("scheduled session-stats consolidation failed")
		return
	}
	if report.ConsolidatedDates > 0 {
		s.logger.WithField("dates", report.ConsolidatedDates).Info("scheduled consolidation collapsed duplicate session stats")
	}
}
