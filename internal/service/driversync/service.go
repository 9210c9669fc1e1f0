// Package driversync mirrors driver attendance from the AA Alive upstream
// into clock records. The upstream is read-only; the sync is idempotent on
// the (employee, work_date) pair so both scheduled runs and manual triggers
// can repeat safely.
package driversync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/aaalive"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
	attendancesvc "github.com/astaka-hr/hrms-backend-go/internal/service/attendance"
)

// ErrNotConfigured is returned when the upstream credentials are absent.
var ErrNotConfigured = errors.New("driver sync upstream is not configured")

const syncNote = "Synced from AA Alive"

// SyncResult summarises one run over one or more dates.
type SyncResult struct {
	Dates     []string `json:"dates"`
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
}

// DriverSyncService pulls upstream shifts and upserts them as clock records
// for every company on the AA Alive regime. Drivers are matched by normalised
// IC; unmatched rows are counted as skipped, never failed.
type DriverSyncService struct {
	client    *aaalive.Client
	companies company.CompanyRepository
	outlets   company.OutletRepository
	employees employee.EmployeeRepository
	clocks    attendance.ClockRecordRepository
	loc       *time.Location
	logger    *slog.Logger
}

func NewDriverSyncService(
	client *aaalive.Client,
	companies company.CompanyRepository,
	outlets company.OutletRepository,
	employees employee.EmployeeRepository,
	clocks attendance.ClockRecordRepository,
	loc *time.Location,
	logger *slog.Logger,
) *DriverSyncService {
	return &DriverSyncService{
		client:    client,
		companies: companies,
		outlets:   outlets,
		employees: employees,
		clocks:    clocks,
		loc:       loc,
		logger:    logger,
	}
}

// Configured reports whether the upstream can be reached at all.
func (s *DriverSyncService) Configured() bool {
	return s.client.Configured()
}

// Test verifies upstream connectivity and credentials.
func (s *DriverSyncService) Test(ctx context.Context) error {
	if !s.client.Configured() {
		return ErrNotConfigured
	}
	return s.client.Test(ctx)
}

// Drivers lists the drivers registered upstream.
func (s *DriverSyncService) Drivers(ctx context.Context) ([]aaalive.Driver, error) {
	if !s.client.Configured() {
		return nil, ErrNotConfigured
	}
	return s.client.Drivers(ctx)
}

// Shifts returns the raw upstream attendance rows for one date.
func (s *DriverSyncService) Shifts(ctx context.Context, date string) ([]aaalive.Shift, error) {
	if !s.client.Configured() {
		return nil, ErrNotConfigured
	}
	if _, err := dateutil.ParseDate(date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return s.client.Shifts(ctx, date)
}

// Run pulls yesterday and today, the window the scheduled job covers.
func (s *DriverSyncService) Run(ctx context.Context) (SyncResult, error) {
	today := dateutil.DateOf(time.Now().In(s.loc))
	return s.SyncRange(ctx, today.AddDate(0, 0, -1), today)
}

// SyncDate syncs a single calendar date.
func (s *DriverSyncService) SyncDate(ctx context.Context, date time.Time) (SyncResult, error) {
	return s.SyncRange(ctx, date, date)
}

// SyncRange syncs every date from start through end inclusive. A failed
// upstream fetch or record write is logged and counted; it never aborts the
// remaining dates.
func (s *DriverSyncService) SyncRange(ctx context.Context, start, end time.Time) (SyncResult, error) {
	if !s.client.Configured() {
		return SyncResult{}, ErrNotConfigured
	}

	start = dateutil.DateOf(start)
	end = dateutil.DateOf(end)
	if end.Before(start) {
		return SyncResult{}, fmt.Errorf("sync range ends before it starts")
	}

	targets, err := s.driverCompanies(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	if len(targets) == 0 {
		s.logger.Warn("driver sync: no company on the aaalive regime, nothing to do")
		return result, nil
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(dateutil.DateLayout)
		result.Dates = append(result.Dates, dateStr)

		shifts, err := s.client.Shifts(ctx, dateStr)
		if err != nil {
			s.logger.Warn("driver sync: upstream fetch failed",
				"date", dateStr, "error", err)
			result.Failed++
			continue
		}

		for _, sh := range shifts {
			switch err := s.syncShift(ctx, targets, sh, d); {
			case err == nil:
				result.Processed++
			case errors.Is(err, errUnmatched):
				result.Skipped++
			default:
				s.logger.Error("driver sync: shift upsert failed",
					"date", dateStr, "driver_id", sh.DriverID, "error", err)
				result.Failed++
			}
		}
	}

	s.logger.Info("driver sync run finished",
		"dates", result.Dates, "processed", result.Processed,
		"skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

// errUnmatched marks an upstream row with no corresponding employee.
var errUnmatched = errors.New("no matching employee for upstream driver")

type syncTarget struct {
	company company.Company
	outlets map[string]int64
}

// driverCompanies resolves the companies to sync into, with their outlets
// indexed by lowercased name for the upstream's outlet field.
func (s *DriverSyncService) driverCompanies(ctx context.Context) ([]syncTarget, error) {
	comps, err := s.companies.List(ctx)
	if err != nil {
		return nil, err
	}

	var targets []syncTarget
	for _, comp := range comps {
		if comp.Regime != company.RegimeAAAlive {
			continue
		}
		t := syncTarget{company: comp, outlets: make(map[string]int64)}
		outlets, err := s.outlets.List(ctx, comp.ID)
		if err != nil {
			return nil, err
		}
		for _, o := range outlets {
			t.outlets[strings.ToLower(strings.TrimSpace(o.Name))] = o.ID
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// syncShift matches the upstream row to an employee by IC and upserts the
// day's clock record. Existing afternoon events and admin notes survive a
// rerun; only the morning session comes from upstream.
func (s *DriverSyncService) syncShift(ctx context.Context, targets []syncTarget, sh aaalive.Shift, date time.Time) error {
	ic := employee.NormalizeIC(sh.IC)
	if ic == "" {
		return errUnmatched
	}

	for _, t := range targets {
		emp, err := s.employees.GetByIC(ctx, ic, t.company.ID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				continue
			}
			return err
		}
		return s.upsertRecord(ctx, t, emp, sh, date)
	}
	return errUnmatched
}

func (s *DriverSyncService) upsertRecord(ctx context.Context, t syncTarget, emp employee.Employee, sh aaalive.Shift, date time.Time) error {
	clockIn, err := s.clockOnDate(date, sh.ClockIn)
	if err != nil {
		return err
	}
	var clockOut *time.Time
	if strings.TrimSpace(sh.ClockOut) != "" {
		clockOut, err = s.clockOnDate(date, sh.ClockOut)
		if err != nil {
			return err
		}
	}

	existing, err := s.clocks.GetByEmployeeAndDate(ctx, emp.ID, date, t.company.ID)
	if err != nil {
		return err
	}

	var rec attendance.ClockRecord
	if existing != nil {
		rec = *existing
	} else {
		rec = attendance.ClockRecord{
			CompanyID:                t.company.ID,
			EmployeeID:               emp.ID,
			WorkDate:                 date,
			Status:                   attendance.StatusPending,
			MediaRetentionEligibleAt: date.AddDate(0, attendance.MediaRetentionMonths, 0),
		}
	}

	rec.ClockIn1 = clockIn
	rec.ClockOut1 = clockOut
	if outletID, ok := t.outlets[strings.ToLower(strings.TrimSpace(sh.Outlet))]; ok {
		rec.OutletID = &outletID
	}
	if rec.Notes == nil {
		note := syncNote
		rec.Notes = &note
	}

	totals := attendancesvc.ComputeTotals(company.RegimeAAAlive, rec, attendancesvc.NoShiftStart)
	rec.TotalWorkMinutes = totals.WorkMinutes
	rec.TotalBreakMinutes = totals.BreakMinutes
	rec.OTMinutes = totals.OTMinutes

	_, err = s.clocks.Upsert(ctx, rec)
	return err
}

// clockOnDate combines a work date with an upstream HH:MM value.
func (s *DriverSyncService) clockOnDate(date time.Time, value string) (*time.Time, error) {
	m, ok := dateutil.ParseClock(strings.TrimSpace(value))
	if !ok {
		return nil, fmt.Errorf("unparseable clock value %q", value)
	}
	at := time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, s.loc)
	return &at, nil
}
