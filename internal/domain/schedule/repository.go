package schedule

import (
	"context"
	"time"
)

// ScheduleRepository defines data access for roster entries. All methods
// take companyID; the (employee_id, schedule_date) unique index backs the
// upsert path.
type ScheduleRepository interface {
	Create(ctx context.Context, s Schedule) (Schedule, error)

	GetByID(ctx context.Context, id int64, companyID int64) (Schedule, error)

	// GetByEmployeeAndDate returns nil when no schedule exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time, companyID int64) (*Schedule, error)

	// Upsert inserts or updates on the (employee_id, schedule_date) pair.
	Upsert(ctx context.Context, s Schedule) (Schedule, error)

	Update(ctx context.Context, s Schedule) error

	Delete(ctx context.Context, id int64, companyID int64) error

	List(ctx context.Context, filter Filter, companyID int64) ([]Schedule, error)

	// ListRange returns schedules for a group of employees over a date span.
	ListRange(ctx context.Context, employeeIDs []int64, start, end time.Time, companyID int64) ([]Schedule, error)

	// ListForPeriodByOutlet returns countable shifts in a commission period.
	ListForPeriodByOutlet(ctx context.Context, outletID int64, start, end time.Time, companyID int64) ([]Schedule, error)
	ListForPeriodByDepartment(ctx context.Context, departmentID int64, start, end time.Time, companyID int64) ([]Schedule, error)

	// ListMonthByDepartment returns template-backed schedules in a month.
	ListMonthByDepartment(ctx context.Context, departmentID int64, year, month int, companyID int64) ([]Schedule, error)

	// DeleteMonthByDepartment clears a department's target month before a
	// copy. Returns the number of rows removed.
	DeleteMonthByDepartment(ctx context.Context, departmentID int64, year, month int, companyID int64) (int64, error)

	// DeleteFutureByEmployee removes schedules dated strictly after the
	// cutoff. Used inside the resignation-process transaction.
	DeleteFutureByEmployee(ctx context.Context, employeeID int64, after time.Time, companyID int64) (int64, error)

	// HasWorkOnDate reports whether a department has any scheduled or
	// completed schedule on the date.
	HasWorkOnDate(ctx context.Context, departmentID int64, date time.Time, companyID int64) (bool, error)
	EmployeeHasWorkOnDate(ctx context.Context, employeeID int64, date time.Time, companyID int64) (bool, error)
}

// ShiftTemplateRepository defines data access for shift templates.
type ShiftTemplateRepository interface {
	Create(ctx context.Context, t ShiftTemplate) (ShiftTemplate, error)
	GetByID(ctx context.Context, id int64, companyID int64) (ShiftTemplate, error)
	List(ctx context.Context, companyID int64, activeOnly bool) ([]ShiftTemplate, error)
	Update(ctx context.Context, t ShiftTemplate) error
	// Deactivate soft-deletes via is_active.
	Deactivate(ctx context.Context, id int64, companyID int64) error
}

// ExtraShiftRepository defines data access for extra shift requests.
type ExtraShiftRepository interface {
	Create(ctx context.Context, r ExtraShiftRequest) (ExtraShiftRequest, error)
	GetByID(ctx context.Context, id int64, companyID int64) (ExtraShiftRequest, error)
	List(ctx context.Context, companyID int64, status *string) ([]ExtraShiftRequest, error)
	Update(ctx context.Context, r ExtraShiftRequest) error
}
