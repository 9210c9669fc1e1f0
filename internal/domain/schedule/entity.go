package schedule

import (
	"time"
)

// Schedule statuses.
const (
	StatusScheduled = "scheduled"
	StatusOff       = "off"
	StatusCompleted = "completed"
)

// Extra shift request statuses.
const (
	ExtraShiftPending  = "pending"
	ExtraShiftApproved = "approved"
	ExtraShiftRejected = "rejected"
)

// ShiftTemplate is a named, reusable shift definition. Times are local
// times of day in "HH:MM" form; is_off marks a non-working day template.
type ShiftTemplate struct {
	ID        int64
	CompanyID int64
	Name      string
	Code      string
	StartTime string
	EndTime   string
	Color     string
	IsOff     bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Schedule is one roster entry: at most one row per (employee,
// schedule_date). Exactly one of OutletID/DepartmentID drives commission
// grouping, though both may be populated.
type Schedule struct {
	ID              int64
	CompanyID       int64
	EmployeeID      int64
	OutletID        *int64
	DepartmentID    *int64
	ScheduleDate    time.Time
	ShiftTemplateID *int64
	StartTime       *string
	EndTime         *string
	IsPublicHoliday bool
	Status          string
	CreatedBy       *int64
	UpdatedBy       *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName  *string
	EmployeeCode  *string
	PositionRole  *string
	TemplateCode  *string
	TemplateName  *string
	TemplateColor *string
	TemplateIsOff *bool
}

// ExtraShiftRequest is an employee-proposed additional shift.
type ExtraShiftRequest struct {
	ID              int64
	CompanyID       int64
	EmployeeID      int64
	ShiftDate       time.Time
	ShiftTemplateID int64
	Reason          *string
	Status          string
	DecidedBy       *int64
	DecidedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
	TemplateCode *string
}
