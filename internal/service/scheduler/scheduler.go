// Package scheduler owns the cron registrations. All expressions run in the
// application timezone, and a job that is still running when its next tick
// arrives is skipped rather than doubled up.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/astaka-hr/hrms-backend-go/internal/service/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/service/driversync"
	"github.com/astaka-hr/hrms-backend-go/internal/service/notification"
	"github.com/astaka-hr/hrms-backend-go/internal/service/resignation"
)

// The nightly and daytime job schedule.
const (
	autoClockOutSpec      = "5 0 * * *"
	resignationStatusSpec = "30 0 * * *"
	driverSyncEarlySpec   = "30 3 * * *"
	driverSyncLateSpec    = "0 10 * * *"
	holidayNotifierSpec   = "0 9 * * *"
)

type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	autoClockOut      *attendance.AutoClockOutJob
	resignationStatus *resignation.StatusUpdaterJob
	driverSync        *driversync.DriverSyncService
	holidayNotifier   *notification.HolidayNotifierJob
}

func New(
	loc *time.Location,
	logger *slog.Logger,
	autoClockOut *attendance.AutoClockOutJob,
	resignationStatus *resignation.StatusUpdaterJob,
	driverSync *driversync.DriverSyncService,
	holidayNotifier *notification.HolidayNotifierJob,
) *Scheduler {
	cronLogger := &slogAdapter{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(
				cron.Recover(cronLogger),
				cron.SkipIfStillRunning(cronLogger),
			),
		),
		logger:            logger,
		autoClockOut:      autoClockOut,
		resignationStatus: resignationStatus,
		driverSync:        driverSync,
		holidayNotifier:   holidayNotifier,
	}
}

// Start registers every job and begins ticking. Registration failures are
// programming errors (bad cron expressions), so they are returned rather
// than logged away.
func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		run  func(ctx context.Context) error
	}{
		{autoClockOutSpec, "auto_clock_out", func(ctx context.Context) error {
			_, err := s.autoClockOut.Run(ctx)
			return err
		}},
		{resignationStatusSpec, "resignation_status_updater", func(ctx context.Context) error {
			_, err := s.resignationStatus.Run(ctx)
			return err
		}},
		{driverSyncEarlySpec, "driver_sync_early", s.runDriverSync},
		{driverSyncLateSpec, "driver_sync_late", s.runDriverSync},
		{holidayNotifierSpec, "holiday_notifier", func(ctx context.Context) error {
			_, err := s.holidayNotifier.Run(ctx)
			return err
		}},
	}

	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() {
			if err := job.run(context.Background()); err != nil {
				s.logger.Error("scheduled job failed", "job", job.name, "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(jobs))
	return nil
}

// Stop halts the ticker and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runDriverSync(ctx context.Context) error {
	if !s.driverSync.Configured() {
		s.logger.Warn("driver sync skipped: upstream not configured")
		return nil
	}
	_, err := s.driverSync.Run(ctx)
	return err
}

// slogAdapter bridges robfig/cron's logger to slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, keysAndValues...)
}

func (a *slogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, append(keysAndValues, "error", err)...)
}
