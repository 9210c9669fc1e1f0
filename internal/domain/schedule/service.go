package schedule

import (
	"context"
)

// ScheduleService defines business logic for rosters, templates and extra
// shift requests.
type ScheduleService interface {
	Create(ctx context.Context, req CreateRequest) (Schedule, error)
	BulkCreate(ctx context.Context, req BulkCreateRequest) (BulkCreateResult, error)
	Update(ctx context.Context, id int64, req CreateRequest) (Schedule, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]Schedule, error)

	// MonthForEmployee returns one employee's roster for a calendar month.
	MonthForEmployee(ctx context.Context, employeeID int64, year, month int) ([]Schedule, error)

	// Assign upserts a template-based schedule for (employee, date).
	Assign(ctx context.Context, req AssignRequest) (Schedule, error)
	BulkAssign(ctx context.Context, req BulkAssignRequest) (BulkCreateResult, error)

	// ClearDay removes the schedule for (employee, date).
	ClearDay(ctx context.Context, employeeID int64, date string) error

	// CopyMonth copies a department's roster into another month, shifted so
	// the first-of-month lines up.
	CopyMonth(ctx context.Context, req CopyMonthRequest) (CopyMonthResult, error)

	// WeeklyRoster projects a 7-day employees-by-dates grid.
	WeeklyRoster(ctx context.Context, outletID, departmentID *int64, startDate string) (WeeklyRoster, error)

	// Permissions reports the caller's edit window.
	Permissions(ctx context.Context) (PermissionsResponse, error)

	ListTemplates(ctx context.Context, activeOnly bool) ([]ShiftTemplate, error)
	CreateTemplate(ctx context.Context, req TemplateRequest) (ShiftTemplate, error)
	UpdateTemplate(ctx context.Context, req TemplateRequest) (ShiftTemplate, error)
	DeleteTemplate(ctx context.Context, id int64) error

	CreateExtraShift(ctx context.Context, req ExtraShiftCreateRequest) (ExtraShiftRequest, error)
	ListExtraShifts(ctx context.Context, status *string) ([]ExtraShiftRequest, error)
	ApproveExtraShift(ctx context.Context, id int64) (ExtraShiftRequest, error)
	RejectExtraShift(ctx context.Context, id int64, reason string) (ExtraShiftRequest, error)
}
