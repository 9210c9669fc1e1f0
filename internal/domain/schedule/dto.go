package schedule

import (
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	EmployeeID      int64   `json:"employee_id"`
	ScheduleDate    string  `json:"schedule_date"`
	OutletID        *int64  `json:"outlet_id"`
	DepartmentID    *int64  `json:"department_id"`
	ShiftTemplateID *int64  `json:"shift_template_id"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	IsPublicHoliday bool    `json:"is_public_holiday"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.ScheduleDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "schedule_date", Message: "schedule_date must be YYYY-MM-DD"})
	}
	if r.ShiftTemplateID == nil && (r.StartTime == nil || r.EndTime == nil) {
		errs = append(errs, validator.ValidationError{Field: "shift_template_id", Message: "either a template or ad-hoc start/end times are required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkCreateRequest expands a date range by days_of_week (Sun=0..Sat=6).
type BulkCreateRequest struct {
	EmployeeIDs     []int64 `json:"employee_ids"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	DaysOfWeek      []int   `json:"days_of_week"`
	OutletID        *int64  `json:"outlet_id"`
	DepartmentID    *int64  `json:"department_id"`
	ShiftTemplateID *int64  `json:"shift_template_id"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
}

func (r BulkCreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "at least one employee is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{Field: "days_of_week", Message: "days_of_week values must be 0-6"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkCreateResult reports created vs skipped dates.
type BulkCreateResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// AssignRequest upserts a template-based schedule for (employee, date).
type AssignRequest struct {
	EmployeeID      int64  `json:"employee_id"`
	ScheduleDate    string `json:"schedule_date"`
	ShiftTemplateID int64  `json:"shift_template_id"`
	OutletID        *int64 `json:"outlet_id"`
	DepartmentID    *int64 `json:"department_id"`
	IsPublicHoliday bool   `json:"is_public_holiday"`
}

func (r AssignRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.ShiftTemplateID == 0 {
		errs = append(errs, validator.ValidationError{Field: "shift_template_id", Message: "shift_template_id is required"})
	}
	if _, ok := validator.IsValidDate(r.ScheduleDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "schedule_date", Message: "schedule_date must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkAssignRequest struct {
	Assignments []AssignRequest `json:"assignments"`
}

// CopyMonthRequest copies one month's department roster into another.
type CopyMonthRequest struct {
	DepartmentID int64 `json:"department_id"`
	FromMonth    int   `json:"from_month"`
	FromYear     int   `json:"from_year"`
	ToMonth      int   `json:"to_month"`
	ToYear       int   `json:"to_year"`
}

func (r CopyMonthRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.DepartmentID == 0 {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "department_id is required"})
	}
	if r.FromMonth < 1 || r.FromMonth > 12 || r.ToMonth < 1 || r.ToMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "months must be 1-12"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CopyMonthResult struct {
	Copied  int `json:"copied"`
	Deleted int `json:"deleted"`
	Dropped int `json:"dropped"` // template-less, or shifted outside the target month
}

// TemplateRequest creates or updates a shift template.
type TemplateRequest struct {
	ID        int64
	Name      string `json:"name"`
	Code      string `json:"code"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Color     string `json:"color"`
	IsOff     bool   `json:"is_off"`
}

func (r TemplateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if !r.IsOff && (validator.IsEmpty(r.StartTime) || validator.IsEmpty(r.EndTime)) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "working templates need start and end times"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RosterCell is one employee-day cell in the weekly grid.
type RosterCell struct {
	ScheduleID      int64   `json:"schedule_id"`
	TemplateCode    *string `json:"template_code"`
	TemplateColor   *string `json:"template_color"`
	IsOff           bool    `json:"is_off"`
	IsPublicHoliday bool    `json:"is_public_holiday"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	Status          string  `json:"status"`
}

// RosterRow is one employee's week.
type RosterRow struct {
	EmployeeID   int64                  `json:"employee_id"`
	EmployeeName string                 `json:"employee_name"`
	EmployeeCode string                 `json:"employee_code"`
	Cells        map[string]*RosterCell `json:"cells"` // keyed by YYYY-MM-DD
}

// WeeklyRoster is the 7-day projection for an outlet or department.
type WeeklyRoster struct {
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Dates     []string    `json:"dates"`
	Rows      []RosterRow `json:"rows"`
}

// PermissionsResponse reports the caller's edit window.
type PermissionsResponse struct {
	CanEdit         bool   `json:"can_edit"`
	EditAnyDate     bool   `json:"edit_any_date"`
	EarliestEditable string `json:"earliest_editable,omitempty"`
}

type ExtraShiftCreateRequest struct {
	EmployeeID      int64   `json:"employee_id"`
	ShiftDate       string  `json:"shift_date"`
	ShiftTemplateID int64   `json:"shift_template_id"`
	Reason          *string `json:"reason"`
}

func (r ExtraShiftCreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.ShiftTemplateID == 0 {
		errs = append(errs, validator.ValidationError{Field: "shift_template_id", Message: "shift_template_id is required"})
	}
	if _, ok := validator.IsValidDate(r.ShiftDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "shift_date", Message: "shift_date must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter narrows schedule listings.
type Filter struct {
	EmployeeID   *int64
	OutletID     *int64
	DepartmentID *int64
	StartDate    *string
	EndDate      *string
	Status       *string
}
