package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.ClockRecordRepository
	employee.EmployeeRepository
	schedule.ScheduleRepository
	schedule.ShiftTemplateRepository
	company.CompanyRepository
	company.HolidayRepository
	payrollRuns payroll.RunRepository
	fs          storage.FileStorage
	defaultLoc  *time.Location
}

func NewAttendanceService(
	db *database.DB,
	clockRepo attendance.ClockRecordRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	templateRepo schedule.ShiftTemplateRepository,
	companyRepo company.CompanyRepository,
	holidayRepo company.HolidayRepository,
	payrollRuns payroll.RunRepository,
	fs storage.FileStorage,
	defaultLoc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                      db,
		ClockRecordRepository:   clockRepo,
		EmployeeRepository:      employeeRepo,
		ScheduleRepository:      scheduleRepo,
		ShiftTemplateRepository: templateRepo,
		CompanyRepository:       companyRepo,
		HolidayRepository:       holidayRepo,
		payrollRuns:             payrollRuns,
		fs:                      fs,
		defaultLoc:              defaultLoc,
	}
}

// companyNow returns the current server time in the company's timezone.
func (s *AttendanceServiceImpl) companyNow(ctx context.Context, companyID int64) (time.Time, string, error) {
	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to get company %d: %w", companyID, err)
	}

	loc := s.defaultLoc
	if comp.Timezone != "" {
		if l, err := time.LoadLocation(comp.Timezone); err == nil {
			loc = l
		}
	}
	return time.Now().In(loc), comp.Regime, nil
}

// verifyEmployee resolves and authenticates an employee by code + IC.
func (s *AttendanceServiceImpl) verifyEmployee(ctx context.Context, code, ic string, companyID int64) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByCode(ctx, code, companyID)
	if err != nil {
		return employee.Employee{}, err
	}
	if employee.NormalizeIC(ic) != emp.ICNumber {
		return employee.Employee{}, attendance.ErrICMismatch
	}
	if emp.Status != employee.StatusActive {
		return employee.Employee{}, attendance.ErrEmployeeInactive
	}
	return emp, nil
}

// shiftStartMinute returns the scheduled start minute for the record's day,
// or NoShiftStart. The second return reports whether any schedule exists.
func (s *AttendanceServiceImpl) shiftStartMinute(ctx context.Context, rec attendance.ClockRecord) (int, bool, error) {
	sched, err := s.ScheduleRepository.GetByEmployeeAndDate(ctx, rec.EmployeeID, rec.WorkDate, rec.CompanyID)
	if err != nil {
		return NoShiftStart, false, fmt.Errorf("failed to get schedule: %w", err)
	}
	if sched == nil || sched.Status == schedule.StatusOff {
		return NoShiftStart, false, nil
	}
	if sched.StartTime == nil {
		return NoShiftStart, true, nil
	}
	if m, ok := dateutil.ParseClock(*sched.StartTime); ok {
		return m, true, nil
	}
	return NoShiftStart, true, nil
}

// recompute refreshes the derived totals on a record in place.
func (s *AttendanceServiceImpl) recompute(ctx context.Context, rec *attendance.ClockRecord, regime string) error {
	shiftStart, hasSchedule, err := s.shiftStartMinute(ctx, *rec)
	if err != nil {
		return err
	}
	rec.HasSchedule = hasSchedule

	totals := ComputeTotals(regime, *rec, shiftStart)
	rec.TotalWorkMinutes = totals.WorkMinutes
	rec.TotalBreakMinutes = totals.BreakMinutes
	rec.OTMinutes = totals.OTMinutes
	return nil
}

// Clock implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Clock(ctx context.Context, req attendance.ClockActionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now, regime, err := s.companyNow(ctx, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.verifyEmployee(ctx, req.EmployeeCode, req.ICNumber, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	today := dateutil.DateOf(now)
	rec, err := s.ClockRecordRepository.GetByEmployeeAndDate(ctx, emp.ID, today, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var photoKey *string
	if req.Photo != nil && *req.Photo != "" {
		key, err := storage.SaveBase64(ctx, s.fs, "attendance", *req.Photo)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to store clock photo: %w", err)
		}
		photoKey = &key
	}

	var location *string
	if req.Lat != nil && req.Lng != nil {
		l := *req.Lat + "," + *req.Lng
		location = &l
	}

	if rec == nil {
		if req.Action != attendance.ActionClockIn1 {
			return attendance.RecordResponse{}, attendance.ErrMustClockInFirst
		}

		outletID := req.OutletID
		if outletID == nil {
			outletID = emp.OutletID
		}

		newRec := attendance.ClockRecord{
			CompanyID:                sess.CompanyID,
			EmployeeID:               emp.ID,
			OutletID:                 outletID,
			WorkDate:                 today,
			ClockIn1:                 &now,
			ClockIn1Location:         location,
			ClockIn1Photo:            photoKey,
			Status:                   attendance.StatusPending,
			MediaRetentionEligibleAt: today.AddDate(0, attendance.MediaRetentionMonths, 0),
		}
		if err := s.recompute(ctx, &newRec, regime); err != nil {
			return attendance.RecordResponse{}, err
		}

		created, err := s.ClockRecordRepository.Create(ctx, newRec)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		return toResponse(created), nil
	}

	if rec.Event(req.Action) != nil {
		return attendance.RecordResponse{}, attendance.ErrEventAlreadySet
	}
	for _, a := range attendance.Actions {
		if a == req.Action {
			break
		}
		if rec.Event(a) == nil {
			return attendance.RecordResponse{}, attendance.ErrEventOutOfOrder
		}
	}

	rec.SetEvent(req.Action, &now)
	switch req.Action {
	case attendance.ActionClockOut1:
		rec.ClockOut1Location = location
		if photoKey != nil {
			rec.ClockOut1Photo = photoKey
		}
	case attendance.ActionClockIn2:
		rec.ClockIn2Location = location
		if photoKey != nil {
			rec.ClockIn2Photo = photoKey
		}
	case attendance.ActionClockOut2:
		rec.ClockOut2Location = location
		if photoKey != nil {
			rec.ClockOut2Photo = photoKey
		}
	}

	if err := s.recompute(ctx, rec, regime); err != nil {
		return attendance.RecordResponse{}, err
	}
	if err := s.ClockRecordRepository.Update(ctx, *rec); err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(*rec), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, req attendance.HistoryRequest) (*attendance.RecordResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	now, _, err := s.companyNow(ctx, sess.CompanyID)
	if err != nil {
		return nil, err
	}

	emp, err := s.verifyEmployee(ctx, req.EmployeeCode, req.ICNumber, sess.CompanyID)
	if err != nil {
		return nil, err
	}

	rec, err := s.ClockRecordRepository.GetByEmployeeAndDate(ctx, emp.ID, dateutil.DateOf(now), sess.CompanyID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	resp := toResponse(*rec)
	return &resp, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, req attendance.HistoryRequest) ([]attendance.RecordResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	emp, err := s.verifyEmployee(ctx, req.EmployeeCode, req.ICNumber, sess.CompanyID)
	if err != nil {
		return nil, err
	}

	records, err := s.ClockRecordRepository.List(ctx, attendance.Filter{
		EmployeeID: &emp.ID,
		Month:      &req.Month,
		Year:       &req.Year,
	}, sess.CompanyID)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.RecordResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.ClockRecordRepository.List(ctx, filter, sess.CompanyID)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// AdminUpsert implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AdminUpsert(ctx context.Context, req attendance.AdminUpsertRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	_, regime, err := s.companyNow(ctx, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	workDate, err := dateutil.ParseDate(req.WorkDate)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("invalid work_date: %w", err)
	}

	outletID := req.OutletID
	if outletID == nil {
		outletID = emp.OutletID
	}

	rec := attendance.ClockRecord{
		CompanyID:                sess.CompanyID,
		EmployeeID:               emp.ID,
		OutletID:                 outletID,
		WorkDate:                 workDate,
		Status:                   attendance.StatusPending,
		Notes:                    req.Notes,
		MediaRetentionEligibleAt: workDate.AddDate(0, attendance.MediaRetentionMonths, 0),
	}

	for action, clock := range map[string]*string{
		attendance.ActionClockIn1:  req.ClockIn1,
		attendance.ActionClockOut1: req.ClockOut1,
		attendance.ActionClockIn2:  req.ClockIn2,
		attendance.ActionClockOut2: req.ClockOut2,
	} {
		if clock == nil {
			continue
		}
		t, err := clockOnDate(workDate, *clock)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		rec.SetEvent(action, t)
	}

	if err := s.recompute(ctx, &rec, regime); err != nil {
		return attendance.RecordResponse{}, err
	}

	saved, err := s.ClockRecordRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(saved), nil
}

// AdminSetAction implements attendance.AttendanceService. Unlike the
// employee path, admins may backfill or correct events out of order.
func (s *AttendanceServiceImpl) AdminSetAction(ctx context.Context, req attendance.AdminActionRequest) (attendance.RecordResponse, error) {
	if !attendance.IsValidAction(req.Action) {
		return attendance.RecordResponse{}, attendance.ErrInvalidAction
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	_, regime, err := s.companyNow(ctx, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.ClockRecordRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	t, err := clockOnDate(rec.WorkDate, req.Time)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	rec.SetEvent(req.Action, t)

	if req.Photo != nil && *req.Photo != "" {
		key, err := storage.SaveBase64(ctx, s.fs, "attendance", *req.Photo)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to store clock photo: %w", err)
		}
		switch req.Action {
		case attendance.ActionClockIn1:
			rec.ClockIn1Photo = &key
		case attendance.ActionClockOut1:
			rec.ClockOut1Photo = &key
		case attendance.ActionClockIn2:
			rec.ClockIn2Photo = &key
		case attendance.ActionClockOut2:
			rec.ClockOut2Photo = &key
		}
	}

	if err := s.recompute(ctx, &rec, regime); err != nil {
		return attendance.RecordResponse{}, err
	}
	if err := s.ClockRecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.ClockRecordRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec.Status != attendance.StatusPending {
		return attendance.RecordResponse{}, attendance.ErrAlreadyProcessed
	}

	now := time.Now()
	rec.Status = attendance.StatusApproved
	rec.ApprovedBy = &sess.EmployeeID
	rec.ApprovedAt = &now

	if err := s.ClockRecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

// Reject implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reject(ctx context.Context, req attendance.RejectRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.ClockRecordRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec.Status != attendance.StatusPending {
		return attendance.RecordResponse{}, attendance.ErrAlreadyProcessed
	}

	now := time.Now()
	rec.Status = attendance.StatusRejected
	rec.ApprovedBy = &sess.EmployeeID
	rec.ApprovedAt = &now
	rec.RejectReason = &req.Reason

	if err := s.ClockRecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

// ApproveWithSchedule implements attendance.AttendanceService. The roster
// entry is created from a shift template and the record re-derived against
// the new schedule, all in one transaction.
func (s *AttendanceServiceImpl) ApproveWithSchedule(ctx context.Context, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
	if req.ShiftTemplateID == nil {
		return attendance.RecordResponse{}, fmt.Errorf("shift_template_id is required")
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	_, regime, err := s.companyNow(ctx, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var rec attendance.ClockRecord
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		rec, err = s.ClockRecordRepository.GetByID(txCtx, req.ID, sess.CompanyID)
		if err != nil {
			return err
		}
		if rec.Status != attendance.StatusPending {
			return attendance.ErrAlreadyProcessed
		}

		tpl, err := s.ShiftTemplateRepository.GetByID(txCtx, *req.ShiftTemplateID, sess.CompanyID)
		if err != nil {
			return err
		}

		isPH, err := s.HolidayRepository.IsPublicHoliday(txCtx, sess.CompanyID, rec.WorkDate)
		if err != nil {
			return err
		}

		status := schedule.StatusScheduled
		if tpl.IsOff {
			status = schedule.StatusOff
		}
		_, err = s.ScheduleRepository.Upsert(txCtx, schedule.Schedule{
			CompanyID:       sess.CompanyID,
			EmployeeID:      rec.EmployeeID,
			OutletID:        rec.OutletID,
			ScheduleDate:    rec.WorkDate,
			ShiftTemplateID: &tpl.ID,
			StartTime:       &tpl.StartTime,
			EndTime:         &tpl.EndTime,
			IsPublicHoliday: isPH,
			Status:          status,
			CreatedBy:       &sess.EmployeeID,
		})
		if err != nil {
			return err
		}

		if err := s.recompute(txCtx, &rec, regime); err != nil {
			return err
		}

		now := time.Now()
		rec.Status = attendance.StatusApproved
		rec.ApprovedBy = &sess.EmployeeID
		rec.ApprovedAt = &now
		return s.ClockRecordRepository.Update(txCtx, rec)
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

// ApproveWithoutSchedule implements attendance.AttendanceService. Admin
// totals, when given, are taken verbatim.
func (s *AttendanceServiceImpl) ApproveWithoutSchedule(ctx context.Context, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.ClockRecordRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec.Status != attendance.StatusPending {
		return attendance.RecordResponse{}, attendance.ErrAlreadyProcessed
	}

	if req.WorkMinutes != nil {
		rec.TotalWorkMinutes = *req.WorkMinutes
	}
	if req.OTMinutes != nil {
		rec.OTMinutes = *req.OTMinutes
	}

	now := time.Now()
	rec.Status = attendance.StatusApproved
	rec.ApprovedBy = &sess.EmployeeID
	rec.ApprovedAt = &now

	if err := s.ClockRecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

// ApproveOT implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ApproveOT(ctx context.Context, id int64) (attendance.RecordResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.ClockRecordRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec.OTApproved != nil {
		return attendance.RecordResponse{}, attendance.ErrOTAlreadyDecided
	}

	now := time.Now()
	approved := true
	rec.OTApproved = &approved
	rec.OTApprovedBy = &sess.EmployeeID
	rec.OTApprovedAt = &now

	if err := s.ClockRecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

// RejectOT implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RejectOT(ctx context.Context, req attendance.RejectRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.ClockRecordRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec.OTApproved != nil {
		return attendance.RecordResponse{}, attendance.ErrOTAlreadyDecided
	}

	now := time.Now()
	rejected := false
	rec.OTApproved = &rejected
	rec.OTApprovedBy = &sess.EmployeeID
	rec.OTApprovedAt = &now
	rec.OTRejectReason = &req.Reason

	if err := s.ClockRecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

// BulkApproveOT implements attendance.AttendanceService. Records already
// decided are skipped, not failed.
func (s *AttendanceServiceImpl) BulkApproveOT(ctx context.Context, req attendance.BulkOTRequest) (int, error) {
	approved := 0
	for _, id := range req.IDs {
		if _, err := s.ApproveOT(ctx, id); err != nil {
			continue
		}
		approved++
	}
	return approved, nil
}

// Recalculate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Recalculate(ctx context.Context, req attendance.RecalculateRequest) (attendance.RecalculateResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecalculateResult{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecalculateResult{}, err
	}

	finalized, err := s.payrollRuns.HasFinalizedRun(ctx, req.Month, req.Year, sess.CompanyID)
	if err != nil {
		return attendance.RecalculateResult{}, err
	}
	if finalized {
		return attendance.RecalculateResult{}, attendance.ErrPayrollFinalized
	}

	_, regime, err := s.companyNow(ctx, sess.CompanyID)
	if err != nil {
		return attendance.RecalculateResult{}, err
	}

	records, err := s.ClockRecordRepository.ListByMonth(ctx, sess.CompanyID, req.Year, req.Month)
	if err != nil {
		return attendance.RecalculateResult{}, err
	}

	result := attendance.RecalculateResult{Scanned: len(records)}
	for _, rec := range records {
		before := [3]int{rec.TotalWorkMinutes, rec.TotalBreakMinutes, rec.OTMinutes}
		if err := s.recompute(ctx, &rec, regime); err != nil {
			return result, err
		}
		if before == [3]int{rec.TotalWorkMinutes, rec.TotalBreakMinutes, rec.OTMinutes} {
			continue
		}
		if err := s.ClockRecordRepository.Update(ctx, rec); err != nil {
			return result, err
		}
		result.Updated++
	}
	return result, nil
}

// Summary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, filter attendance.Filter) ([]attendance.SummaryRow, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ClockRecordRepository.Summary(ctx, filter, sess.CompanyID)
}

// OTForPayroll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) OTForPayroll(ctx context.Context, year, month int) ([]attendance.OTForPayrollRow, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ClockRecordRepository.ApprovedOTByMonth(ctx, sess.CompanyID, year, month)
}

// NeedsReview implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) NeedsReview(ctx context.Context) ([]attendance.RecordResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.ClockRecordRepository.ListNeedsReview(ctx, sess.CompanyID)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// MarkReviewed implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkReviewed(ctx context.Context, req attendance.MarkReviewedRequest) (attendance.RecordResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.ClockRecordRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !rec.IsAutoClockOut {
		return attendance.RecordResponse{}, attendance.ErrNotAutoClockedOut
	}

	if req.WorkMinutes != nil {
		rec.TotalWorkMinutes = *req.WorkMinutes
	}
	if req.OTMinutes != nil {
		rec.OTMinutes = *req.OTMinutes
	}

	now := time.Now()
	rec.NeedsAdminReview = false
	rec.ReviewedBy = &sess.EmployeeID
	rec.ReviewedAt = &now

	if err := s.ClockRecordRepository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, err
	}
	return toResponse(rec), nil
}

// Stats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Stats(ctx context.Context) (attendance.AutoClockOutStats, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return attendance.AutoClockOutStats{}, err
	}
	return s.ClockRecordRepository.AutoClockOutStats(ctx, sess.CompanyID)
}

// clockOnDate combines a work date with an "HH:MM[:SS]" clock value.
func clockOnDate(date time.Time, clock string) (*time.Time, error) {
	m, ok := dateutil.ParseClock(clock)
	if !ok {
		return nil, fmt.Errorf("invalid clock time %q", clock)
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location())
	return &t, nil
}

func fmtClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}

func toResponse(rec attendance.ClockRecord) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		OutletID:          rec.OutletID,
		OutletName:        rec.OutletName,
		WorkDate:          rec.WorkDate.Format(dateutil.DateLayout),
		ClockIn1:          fmtClock(rec.ClockIn1),
		ClockOut1:         fmtClock(rec.ClockOut1),
		ClockIn2:          fmtClock(rec.ClockIn2),
		ClockOut2:         fmtClock(rec.ClockOut2),
		TotalWorkMinutes:  rec.TotalWorkMinutes,
		TotalWorkHours:    minutesToHours(rec.TotalWorkMinutes),
		TotalBreakMinutes: rec.TotalBreakMinutes,
		TotalBreakHours:   minutesToHours(rec.TotalBreakMinutes),
		OTMinutes:         rec.OTMinutes,
		OTHours:           minutesToHours(rec.OTMinutes),
		Status:            rec.Status,
		IsAutoClockOut:    rec.IsAutoClockOut,
		NeedsAdminReview:  rec.NeedsAdminReview,
		HasSchedule:       rec.HasSchedule,
		OTApproved:        rec.OTApproved,
		Notes:             rec.Notes,
		NextAction:        rec.NextAction(),
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.EmployeeCode != nil {
		resp.EmployeeCode = *rec.EmployeeCode
	}
	return resp
}

func toResponses(records []attendance.ClockRecord) []attendance.RecordResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}
	return responses
}
