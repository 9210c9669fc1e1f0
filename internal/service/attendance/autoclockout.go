package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
)

const autoCloseNote = "Auto-closed at midnight"

// AutoClockOutResult summarises one run of the nightly close job.
type AutoClockOutResult struct {
	Date      string `json:"date"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}

// AutoClockOutJob closes yesterday's records that were never clocked out.
// Each record is closed in its own transaction so one bad row cannot abort
// the whole run; the is_auto_clock_out flag makes reruns no-ops.
type AutoClockOutJob struct {
	db        *database.DB
	clocks    attendance.ClockRecordRepository
	schedules schedule.ScheduleRepository
	companies company.CompanyRepository
	loc       *time.Location
	logger    *slog.Logger
}

func NewAutoClockOutJob(
	db *database.DB,
	clocks attendance.ClockRecordRepository,
	schedules schedule.ScheduleRepository,
	companies company.CompanyRepository,
	loc *time.Location,
	logger *slog.Logger,
) *AutoClockOutJob {
	return &AutoClockOutJob{
		db:        db,
		clocks:    clocks,
		schedules: schedules,
		companies: companies,
		loc:       loc,
		logger:    logger,
	}
}

// Run closes all open records for yesterday.
func (j *AutoClockOutJob) Run(ctx context.Context) (AutoClockOutResult, error) {
	yesterday := dateutil.DateOf(time.Now().In(j.loc).AddDate(0, 0, -1))
	return j.RunForDate(ctx, yesterday)
}

// RunForDate closes all open records for the given work date.
func (j *AutoClockOutJob) RunForDate(ctx context.Context, date time.Time) (AutoClockOutResult, error) {
	result := AutoClockOutResult{Date: date.Format(dateutil.DateLayout)}

	records, err := j.clocks.ListOpenForDate(ctx, date)
	if err != nil {
		return result, err
	}

	regimes := make(map[int64]string)

	for _, rec := range records {
		regime, ok := regimes[rec.CompanyID]
		if !ok {
			comp, err := j.companies.GetByID(ctx, rec.CompanyID)
			if err != nil {
				j.logger.Error("auto clock-out: company lookup failed",
					"company_id", rec.CompanyID, "record_id", rec.ID, "error", err)
				result.Failed++
				continue
			}
			regime = comp.Regime
			regimes[rec.CompanyID] = regime
		}

		if err := j.closeRecord(ctx, rec, regime); err != nil {
			j.logger.Error("auto clock-out: record close failed",
				"record_id", rec.ID, "employee_id", rec.EmployeeID, "error", err)
			result.Failed++
			continue
		}
		result.Processed++
	}

	j.logger.Info("auto clock-out run finished",
		"date", result.Date, "processed", result.Processed, "failed", result.Failed)
	return result, nil
}

func (j *AutoClockOutJob) closeRecord(ctx context.Context, rec attendance.ClockRecord, regime string) error {
	return postgresql.WithTransaction(ctx, j.db, func(txCtx context.Context) error {
		sched, err := j.schedules.GetByEmployeeAndDate(txCtx, rec.EmployeeID, rec.WorkDate, rec.CompanyID)
		if err != nil {
			return err
		}

		closeAt, err := j.closeTime(rec, sched, regime)
		if err != nil {
			return err
		}

		if rec.ClockOut1 == nil {
			rec.ClockOut1 = closeAt
		} else {
			// Zero-length break when the afternoon session never started.
			if rec.ClockIn2 == nil {
				rec.ClockIn2 = rec.ClockOut1
			}
			rec.ClockOut2 = closeAt
		}

		rec.IsAutoClockOut = true
		rec.NeedsAdminReview = true
		note := autoCloseNote
		rec.Notes = &note

		shiftStart := NoShiftStart
		if sched != nil && sched.Status != schedule.StatusOff {
			rec.HasSchedule = true
			if sched.StartTime != nil {
				if m, ok := dateutil.ParseClock(*sched.StartTime); ok {
					shiftStart = m
				}
			}
		}
		totals := ComputeTotals(regime, rec, shiftStart)
		rec.TotalWorkMinutes = totals.WorkMinutes
		rec.TotalBreakMinutes = totals.BreakMinutes
		rec.OTMinutes = totals.OTMinutes

		return j.clocks.Update(txCtx, rec)
	})
}

// closeTime picks the terminal clock value: the scheduled shift end when one
// exists, otherwise a standard workday from clock_in_1.
func (j *AutoClockOutJob) closeTime(rec attendance.ClockRecord, sched *schedule.Schedule, regime string) (*time.Time, error) {
	if sched != nil && sched.EndTime != nil && sched.Status != schedule.StatusOff {
		return clockOnDate(rec.WorkDate, *sched.EndTime)
	}

	end := rec.ClockIn1.Add(time.Duration(company.StandardWorkMinutes(regime)) * time.Minute)
	return &end, nil
}
