package schedule

import (
	"context"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

type ScheduleServiceImpl struct {
	db *database.DB
	schedule.ScheduleRepository
	schedule.ShiftTemplateRepository
	schedule.ExtraShiftRepository
	employee.EmployeeRepository
	company.HolidayRepository
	clocks attendance.ClockRecordRepository
	loc    *time.Location
}

func NewScheduleService(
	db *database.DB,
	scheduleRepo schedule.ScheduleRepository,
	templateRepo schedule.ShiftTemplateRepository,
	extraRepo schedule.ExtraShiftRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo company.HolidayRepository,
	clocks attendance.ClockRecordRepository,
	loc *time.Location,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		db:                      db,
		ScheduleRepository:      scheduleRepo,
		ShiftTemplateRepository: templateRepo,
		ExtraShiftRepository:    extraRepo,
		EmployeeRepository:      employeeRepo,
		HolidayRepository:       holidayRepo,
		clocks:                  clocks,
		loc:                     loc,
	}
}

func (s *ScheduleServiceImpl) today() time.Time {
	return dateutil.DateOf(time.Now().In(s.loc))
}

// guardAssignable applies the shared preconditions for putting a schedule on
// an employee-date.
func (s *ScheduleServiceImpl) guardAssignable(emp employee.Employee, date time.Time, sess session.Session) error {
	if emp.Status == employee.StatusResigned || emp.EmploymentStatus == employee.EmploymentExited {
		return schedule.ErrEmployeeResigned
	}
	if emp.LastWorkingDay != nil && date.After(dateutil.DateOf(*emp.LastWorkingDay)) {
		return schedule.ErrAfterLastWorkingDay
	}
	if date.Before(s.today()) && !sess.AtLeast(session.RoleManager) {
		return schedule.ErrPastDateNotAllowed
	}
	return nil
}

// Create implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Create(ctx context.Context, req schedule.CreateRequest) (schedule.Schedule, error) {
	if err := req.Validate(); err != nil {
		return schedule.Schedule{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.Schedule{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, sess.CompanyID)
	if err != nil {
		return schedule.Schedule{}, err
	}

	date, err := dateutil.ParseDate(req.ScheduleDate)
	if err != nil {
		return schedule.Schedule{}, err
	}

	if err := s.guardAssignable(emp, date, sess); err != nil {
		return schedule.Schedule{}, err
	}

	existing, err := s.ScheduleRepository.GetByEmployeeAndDate(ctx, emp.ID, date, sess.CompanyID)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if existing != nil {
		return schedule.Schedule{}, schedule.ErrDuplicateSchedule
	}

	entry, err := s.buildEntry(ctx, req, emp, date, sess)
	if err != nil {
		return schedule.Schedule{}, err
	}

	created, err := s.ScheduleRepository.Create(ctx, entry)
	if err != nil {
		return schedule.Schedule{}, err
	}

	if created.Status != schedule.StatusOff {
		if err := s.clocks.SetHasSchedule(ctx, emp.ID, date, sess.CompanyID, true); err != nil {
			return schedule.Schedule{}, err
		}
	}
	return created, nil
}

func (s *ScheduleServiceImpl) buildEntry(ctx context.Context, req schedule.CreateRequest, emp employee.Employee, date time.Time, sess session.Session) (schedule.Schedule, error) {
	entry := schedule.Schedule{
		CompanyID:       sess.CompanyID,
		EmployeeID:      emp.ID,
		OutletID:        req.OutletID,
		DepartmentID:    req.DepartmentID,
		ScheduleDate:    date,
		ShiftTemplateID: req.ShiftTemplateID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		IsPublicHoliday: req.IsPublicHoliday,
		Status:          schedule.StatusScheduled,
		CreatedBy:       &sess.EmployeeID,
	}
	if entry.OutletID == nil {
		entry.OutletID = emp.OutletID
	}
	if entry.DepartmentID == nil {
		entry.DepartmentID = emp.DepartmentID
	}

	if req.ShiftTemplateID != nil {
		tpl, err := s.ShiftTemplateRepository.GetByID(ctx, *req.ShiftTemplateID, sess.CompanyID)
		if err != nil {
			return schedule.Schedule{}, err
		}
		entry.StartTime = &tpl.StartTime
		entry.EndTime = &tpl.EndTime
		if tpl.IsOff {
			entry.Status = schedule.StatusOff
		}
	}

	if !entry.IsPublicHoliday {
		isPH, err := s.HolidayRepository.IsPublicHoliday(ctx, sess.CompanyID, date)
		if err != nil {
			return schedule.Schedule{}, err
		}
		entry.IsPublicHoliday = isPH
	}
	return entry, nil
}

// BulkCreate implements schedule.ScheduleService. The date range is expanded
// by days_of_week and diffed against existing rows; failures on one
// employee-date count as skips.
func (s *ScheduleServiceImpl) BulkCreate(ctx context.Context, req schedule.BulkCreateRequest) (schedule.BulkCreateResult, error) {
	if err := req.Validate(); err != nil {
		return schedule.BulkCreateResult{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.BulkCreateResult{}, err
	}

	start, err := dateutil.ParseDate(req.StartDate)
	if err != nil {
		return schedule.BulkCreateResult{}, err
	}
	end, err := dateutil.ParseDate(req.EndDate)
	if err != nil {
		return schedule.BulkCreateResult{}, err
	}

	wanted := make(map[time.Weekday]bool)
	for _, d := range req.DaysOfWeek {
		wanted[time.Weekday(d)] = true
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if len(wanted) == 0 || wanted[d.Weekday()] {
			dates = append(dates, d)
		}
	}

	var result schedule.BulkCreateResult
	for _, employeeID := range req.EmployeeIDs {
		emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, sess.CompanyID)
		if err != nil {
			result.Skipped += len(dates)
			continue
		}

		existing, err := s.ScheduleRepository.ListRange(ctx, []int64{employeeID}, start, end, sess.CompanyID)
		if err != nil {
			return result, err
		}
		taken := make(map[string]bool, len(existing))
		for _, e := range existing {
			taken[e.ScheduleDate.Format(dateutil.DateLayout)] = true
		}

		for _, date := range dates {
			if taken[date.Format(dateutil.DateLayout)] {
				result.Skipped++
				continue
			}
			if err := s.guardAssignable(emp, date, sess); err != nil {
				result.Skipped++
				continue
			}

			entry, err := s.buildEntry(ctx, schedule.CreateRequest{
				EmployeeID:      employeeID,
				OutletID:        req.OutletID,
				DepartmentID:    req.DepartmentID,
				ShiftTemplateID: req.ShiftTemplateID,
				StartTime:       req.StartTime,
				EndTime:         req.EndTime,
			}, emp, date, sess)
			if err != nil {
				return result, err
			}

			created, err := s.ScheduleRepository.Create(ctx, entry)
			if err != nil {
				result.Skipped++
				continue
			}
			if created.Status != schedule.StatusOff {
				if err := s.clocks.SetHasSchedule(ctx, employeeID, date, sess.CompanyID, true); err != nil {
					return result, err
				}
			}
			result.Created++
		}
	}
	return result, nil
}

// Update implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Update(ctx context.Context, id int64, req schedule.CreateRequest) (schedule.Schedule, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.Schedule{}, err
	}

	existing, err := s.ScheduleRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return schedule.Schedule{}, err
	}

	if !CanEditDate(sess.Role, existing.ScheduleDate, s.today()) {
		return schedule.Schedule{}, schedule.ErrOutsideEditWindow
	}

	if req.ShiftTemplateID != nil {
		tpl, err := s.ShiftTemplateRepository.GetByID(ctx, *req.ShiftTemplateID, sess.CompanyID)
		if err != nil {
			return schedule.Schedule{}, err
		}
		existing.ShiftTemplateID = &tpl.ID
		existing.StartTime = &tpl.StartTime
		existing.EndTime = &tpl.EndTime
		if tpl.IsOff {
			existing.Status = schedule.StatusOff
		} else {
			existing.Status = schedule.StatusScheduled
		}
	} else {
		if req.StartTime != nil {
			existing.StartTime = req.StartTime
		}
		if req.EndTime != nil {
			existing.EndTime = req.EndTime
		}
	}
	existing.IsPublicHoliday = req.IsPublicHoliday
	existing.UpdatedBy = &sess.EmployeeID

	if err := s.ScheduleRepository.Update(ctx, existing); err != nil {
		return schedule.Schedule{}, err
	}
	return existing, nil
}

// Delete implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Delete(ctx context.Context, id int64) error {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.ScheduleRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return err
	}
	if !CanEditDate(sess.Role, existing.ScheduleDate, s.today()) {
		return schedule.ErrOutsideEditWindow
	}

	if err := s.ScheduleRepository.Delete(ctx, id, sess.CompanyID); err != nil {
		return err
	}
	return s.clocks.SetHasSchedule(ctx, existing.EmployeeID, existing.ScheduleDate, sess.CompanyID, false)
}

// List implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) List(ctx context.Context, filter schedule.Filter) ([]schedule.Schedule, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ScheduleRepository.List(ctx, filter, sess.CompanyID)
}

// MonthForEmployee implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) MonthForEmployee(ctx context.Context, employeeID int64, year, month int) ([]schedule.Schedule, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.ScheduleRepository.ListRange(ctx, []int64{employeeID}, first, last, sess.CompanyID)
}

// Assign implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Assign(ctx context.Context, req schedule.AssignRequest) (schedule.Schedule, error) {
	if err := req.Validate(); err != nil {
		return schedule.Schedule{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.Schedule{}, err
	}
	return s.assign(ctx, req, sess)
}

func (s *ScheduleServiceImpl) assign(ctx context.Context, req schedule.AssignRequest, sess session.Session) (schedule.Schedule, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, sess.CompanyID)
	if err != nil {
		return schedule.Schedule{}, err
	}

	date, err := dateutil.ParseDate(req.ScheduleDate)
	if err != nil {
		return schedule.Schedule{}, err
	}

	if !CanEditDate(sess.Role, date, s.today()) {
		return schedule.Schedule{}, schedule.ErrOutsideEditWindow
	}
	if err := s.guardAssignable(emp, date, sess); err != nil {
		return schedule.Schedule{}, err
	}

	tpl, err := s.ShiftTemplateRepository.GetByID(ctx, req.ShiftTemplateID, sess.CompanyID)
	if err != nil {
		return schedule.Schedule{}, err
	}

	isPH := req.IsPublicHoliday
	if !isPH {
		isPH, err = s.HolidayRepository.IsPublicHoliday(ctx, sess.CompanyID, date)
		if err != nil {
			return schedule.Schedule{}, err
		}
	}

	status := schedule.StatusScheduled
	if tpl.IsOff {
		status = schedule.StatusOff
	}

	outletID := req.OutletID
	if outletID == nil {
		outletID = emp.OutletID
	}
	departmentID := req.DepartmentID
	if departmentID == nil {
		departmentID = emp.DepartmentID
	}

	saved, err := s.ScheduleRepository.Upsert(ctx, schedule.Schedule{
		CompanyID:       sess.CompanyID,
		EmployeeID:      emp.ID,
		OutletID:        outletID,
		DepartmentID:    departmentID,
		ScheduleDate:    date,
		ShiftTemplateID: &tpl.ID,
		StartTime:       &tpl.StartTime,
		EndTime:         &tpl.EndTime,
		IsPublicHoliday: isPH,
		Status:          status,
		CreatedBy:       &sess.EmployeeID,
	})
	if err != nil {
		return schedule.Schedule{}, err
	}

	if status != schedule.StatusOff {
		if err := s.clocks.SetHasSchedule(ctx, emp.ID, date, sess.CompanyID, true); err != nil {
			return schedule.Schedule{}, err
		}
	}
	return saved, nil
}

// BulkAssign implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) BulkAssign(ctx context.Context, req schedule.BulkAssignRequest) (schedule.BulkCreateResult, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.BulkCreateResult{}, err
	}

	var result schedule.BulkCreateResult
	for _, assignment := range req.Assignments {
		if err := assignment.Validate(); err != nil {
			result.Skipped++
			continue
		}
		if _, err := s.assign(ctx, assignment, sess); err != nil {
			result.Skipped++
			continue
		}
		result.Created++
	}
	return result, nil
}

// ClearDay implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ClearDay(ctx context.Context, employeeID int64, date string) error {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return err
	}

	day, err := dateutil.ParseDate(date)
	if err != nil {
		return err
	}
	if !CanEditDate(sess.Role, day, s.today()) {
		return schedule.ErrOutsideEditWindow
	}

	existing, err := s.ScheduleRepository.GetByEmployeeAndDate(ctx, employeeID, day, sess.CompanyID)
	if err != nil {
		return err
	}
	if existing == nil {
		return schedule.ErrScheduleNotFound
	}

	if err := s.ScheduleRepository.Delete(ctx, existing.ID, sess.CompanyID); err != nil {
		return err
	}
	return s.clocks.SetHasSchedule(ctx, employeeID, day, sess.CompanyID, false)
}

// CopyMonth implements schedule.ScheduleService. The target month is cleared
// first, which also makes repeat invocations idempotent.
func (s *ScheduleServiceImpl) CopyMonth(ctx context.Context, req schedule.CopyMonthRequest) (schedule.CopyMonthResult, error) {
	if err := req.Validate(); err != nil {
		return schedule.CopyMonthResult{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.CopyMonthResult{}, err
	}

	fromFirst := time.Date(req.FromYear, time.Month(req.FromMonth), 1, 0, 0, 0, 0, time.UTC)
	toFirst := time.Date(req.ToYear, time.Month(req.ToMonth), 1, 0, 0, 0, 0, time.UTC)
	offsetDays := int(toFirst.Sub(fromFirst).Hours() / 24)

	var result schedule.CopyMonthResult
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		source, err := s.ScheduleRepository.ListMonthByDepartment(txCtx, req.DepartmentID, req.FromYear, req.FromMonth, sess.CompanyID)
		if err != nil {
			return err
		}

		deleted, err := s.ScheduleRepository.DeleteMonthByDepartment(txCtx, req.DepartmentID, req.ToYear, req.ToMonth, sess.CompanyID)
		if err != nil {
			return err
		}
		result.Deleted = int(deleted)

		for _, src := range source {
			// Only templated shifts carry over; ad-hoc rows stay in their month.
			if src.ShiftTemplateID == nil {
				result.Dropped++
				continue
			}

			target := src.ScheduleDate.AddDate(0, 0, offsetDays)
			if target.Year() != req.ToYear || int(target.Month()) != req.ToMonth {
				result.Dropped++
				continue
			}

			_, err := s.ScheduleRepository.Create(txCtx, schedule.Schedule{
				CompanyID:       sess.CompanyID,
				EmployeeID:      src.EmployeeID,
				OutletID:        src.OutletID,
				DepartmentID:    src.DepartmentID,
				ScheduleDate:    target,
				ShiftTemplateID: src.ShiftTemplateID,
				StartTime:       src.StartTime,
				EndTime:         src.EndTime,
				IsPublicHoliday: false,
				Status:          src.Status,
				CreatedBy:       &sess.EmployeeID,
			})
			if err != nil {
				return err
			}
			result.Copied++
		}
		return nil
	})
	if err != nil {
		return schedule.CopyMonthResult{}, err
	}
	return result, nil
}

// rosterExcludedRoles are position roles that never appear on the grid.
var rosterExcludedRoles = map[string]bool{
	employee.RoleManager: true,
	"admin":              true,
	"director":           true,
	"boss":               true,
	"super_admin":        true,
}

// WeeklyRoster implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) WeeklyRoster(ctx context.Context, outletID, departmentID *int64, startDate string) (schedule.WeeklyRoster, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.WeeklyRoster{}, err
	}

	start, err := dateutil.ParseDate(startDate)
	if err != nil {
		return schedule.WeeklyRoster{}, err
	}
	end := start.AddDate(0, 0, 6)

	var outlet, department int64
	if outletID != nil {
		outlet = *outletID
	}
	if departmentID != nil {
		department = *departmentID
	}

	employees, err := s.EmployeeRepository.ListActive(ctx, sess.CompanyID, outlet, department)
	if err != nil {
		return schedule.WeeklyRoster{}, err
	}

	var ids []int64
	var rows []schedule.RosterRow
	rowIndex := make(map[int64]int)
	dates := make([]string, 0, 7)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateutil.DateLayout))
	}

	for _, emp := range employees {
		if rosterExcludedRoles[emp.Role()] {
			continue
		}
		ids = append(ids, emp.ID)
		rowIndex[emp.ID] = len(rows)
		rows = append(rows, schedule.RosterRow{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			EmployeeCode: emp.EmployeeCode,
			Cells:        make(map[string]*schedule.RosterCell, 7),
		})
	}

	if len(ids) > 0 {
		schedules, err := s.ScheduleRepository.ListRange(ctx, ids, start, end, sess.CompanyID)
		if err != nil {
			return schedule.WeeklyRoster{}, err
		}
		for _, entry := range schedules {
			idx, ok := rowIndex[entry.EmployeeID]
			if !ok {
				continue
			}
			isOff := entry.Status == schedule.StatusOff
			if entry.TemplateIsOff != nil {
				isOff = isOff || *entry.TemplateIsOff
			}
			rows[idx].Cells[entry.ScheduleDate.Format(dateutil.DateLayout)] = &schedule.RosterCell{
				ScheduleID:      entry.ID,
				TemplateCode:    entry.TemplateCode,
				TemplateColor:   entry.TemplateColor,
				IsOff:           isOff,
				IsPublicHoliday: entry.IsPublicHoliday,
				StartTime:       entry.StartTime,
				EndTime:         entry.EndTime,
				Status:          entry.Status,
			}
		}
	}

	return schedule.WeeklyRoster{
		StartDate: start.Format(dateutil.DateLayout),
		EndDate:   end.Format(dateutil.DateLayout),
		Dates:     dates,
		Rows:      rows,
	}, nil
}

// Permissions implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Permissions(ctx context.Context) (schedule.PermissionsResponse, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.PermissionsResponse{}, err
	}

	switch sess.Role {
	case session.RoleAdmin, session.RoleManager:
		return schedule.PermissionsResponse{CanEdit: true, EditAnyDate: true}, nil
	case session.RoleSupervisor:
		earliest := EarliestEditable(sess.Role, time.Now().In(s.loc))
		return schedule.PermissionsResponse{
			CanEdit:          true,
			EarliestEditable: earliest.Format(dateutil.DateLayout),
		}, nil
	default:
		return schedule.PermissionsResponse{}, nil
	}
}

// ListTemplates implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListTemplates(ctx context.Context, activeOnly bool) ([]schedule.ShiftTemplate, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ShiftTemplateRepository.List(ctx, sess.CompanyID, activeOnly)
}

// CreateTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateTemplate(ctx context.Context, req schedule.TemplateRequest) (schedule.ShiftTemplate, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplate{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.ShiftTemplate{}, err
	}

	return s.ShiftTemplateRepository.Create(ctx, schedule.ShiftTemplate{
		CompanyID: sess.CompanyID,
		Name:      req.Name,
		Code:      req.Code,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
		IsOff:     req.IsOff,
	})
}

// UpdateTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateTemplate(ctx context.Context, req schedule.TemplateRequest) (schedule.ShiftTemplate, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplate{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.ShiftTemplate{}, err
	}

	tpl, err := s.ShiftTemplateRepository.GetByID(ctx, req.ID, sess.CompanyID)
	if err != nil {
		return schedule.ShiftTemplate{}, err
	}

	tpl.Name = req.Name
	tpl.Code = req.Code
	tpl.StartTime = req.StartTime
	tpl.EndTime = req.EndTime
	tpl.Color = req.Color
	tpl.IsOff = req.IsOff

	if err := s.ShiftTemplateRepository.Update(ctx, tpl); err != nil {
		return schedule.ShiftTemplate{}, err
	}
	return tpl, nil
}

// DeleteTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteTemplate(ctx context.Context, id int64) error {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.ShiftTemplateRepository.Deactivate(ctx, id, sess.CompanyID)
}

// CreateExtraShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateExtraShift(ctx context.Context, req schedule.ExtraShiftCreateRequest) (schedule.ExtraShiftRequest, error) {
	if err := req.Validate(); err != nil {
		return schedule.ExtraShiftRequest{}, err
	}

	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.ExtraShiftRequest{}, err
	}

	date, err := dateutil.ParseDate(req.ShiftDate)
	if err != nil {
		return schedule.ExtraShiftRequest{}, err
	}

	if _, err := s.ShiftTemplateRepository.GetByID(ctx, req.ShiftTemplateID, sess.CompanyID); err != nil {
		return schedule.ExtraShiftRequest{}, err
	}

	return s.ExtraShiftRepository.Create(ctx, schedule.ExtraShiftRequest{
		CompanyID:       sess.CompanyID,
		EmployeeID:      req.EmployeeID,
		ShiftDate:       date,
		ShiftTemplateID: req.ShiftTemplateID,
		Reason:          req.Reason,
		Status:          schedule.ExtraShiftPending,
	})
}

// ListExtraShifts implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListExtraShifts(ctx context.Context, status *string) ([]schedule.ExtraShiftRequest, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ExtraShiftRepository.List(ctx, sess.CompanyID, status)
}

// ApproveExtraShift implements schedule.ScheduleService. Approval puts the
// requested shift on the roster in the same transaction.
func (s *ScheduleServiceImpl) ApproveExtraShift(ctx context.Context, id int64) (schedule.ExtraShiftRequest, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.ExtraShiftRequest{}, err
	}

	var req schedule.ExtraShiftRequest
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		req, err = s.ExtraShiftRepository.GetByID(txCtx, id, sess.CompanyID)
		if err != nil {
			return err
		}
		if req.Status != schedule.ExtraShiftPending {
			return schedule.ErrExtraShiftProcessed
		}

		if _, err := s.assign(txCtx, schedule.AssignRequest{
			EmployeeID:      req.EmployeeID,
			ScheduleDate:    req.ShiftDate.Format(dateutil.DateLayout),
			ShiftTemplateID: req.ShiftTemplateID,
		}, sess); err != nil {
			return err
		}

		now := time.Now()
		req.Status = schedule.ExtraShiftApproved
		req.DecidedBy = &sess.EmployeeID
		req.DecidedAt = &now
		return s.ExtraShiftRepository.Update(txCtx, req)
	})
	if err != nil {
		return schedule.ExtraShiftRequest{}, err
	}
	return req, nil
}

// RejectExtraShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) RejectExtraShift(ctx context.Context, id int64, reason string) (schedule.ExtraShiftRequest, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return schedule.ExtraShiftRequest{}, err
	}

	req, err := s.ExtraShiftRepository.GetByID(ctx, id, sess.CompanyID)
	if err != nil {
		return schedule.ExtraShiftRequest{}, err
	}
	if req.Status != schedule.ExtraShiftPending {
		return schedule.ExtraShiftRequest{}, schedule.ErrExtraShiftProcessed
	}

	now := time.Now()
	req.Status = schedule.ExtraShiftRejected
	req.DecidedBy = &sess.EmployeeID
	req.DecidedAt = &now
	if reason != "" {
		req.Reason = &reason
	}

	if err := s.ExtraShiftRepository.Update(ctx, req); err != nil {
		return schedule.ExtraShiftRequest{}, err
	}
	return req, nil
}
