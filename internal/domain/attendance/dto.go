package attendance

import (
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ClockActionRequest is the employee-facing clock body. Identity is proven
// with employee code + IC, not a session.
type ClockActionRequest struct {
	EmployeeCode string  `json:"employee_id"`
	ICNumber     string  `json:"ic_number"`
	Action       string  `json:"action"`
	Lat          *string `json:"lat"`
	Lng          *string `json:"lng"`
	Photo        *string `json:"photo"` // base64, optional
	OutletID     *int64  `json:"outlet_id"`
}

func (r ClockActionRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee code is required"})
	}
	if validator.IsEmpty(r.ICNumber) {
		errs = append(errs, validator.ValidationError{Field: "ic_number", Message: "IC number is required"})
	}
	if !IsValidAction(r.Action) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action must be one of clock_in_1, clock_out_1, clock_in_2, clock_out_2"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdminUpsertRequest creates or updates a record for (employee, date).
type AdminUpsertRequest struct {
	EmployeeID int64   `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	OutletID   *int64  `json:"outlet_id"`
	ClockIn1   *string `json:"clock_in_1"`
	ClockOut1  *string `json:"clock_out_1"`
	ClockIn2   *string `json:"clock_in_2"`
	ClockOut2  *string `json:"clock_out_2"`
	Notes      *string `json:"notes"`
}

func (r AdminUpsertRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdminActionRequest sets a single clock event on an existing record.
type AdminActionRequest struct {
	ID     int64
	Action string
	Time   string  `json:"time"` // "HH:MM" or "HH:MM:SS"
	Photo  *string `json:"photo"`
}

// ApproveRequest covers the four approval variants.
type ApproveRequest struct {
	ID              int64
	ShiftTemplateID *int64           `json:"shift_template_id"` // approve-with-schedule
	WorkMinutes     *int             `json:"work_minutes"`      // approve-without-schedule override
	OTMinutes       *int             `json:"ot_minutes"`
	OTRate          *decimal.Decimal `json:"ot_rate"`
}

type RejectRequest struct {
	ID     int64
	Reason string `json:"reason"`
}

func (r RejectRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "reason is required"}}
	}
	return nil
}

type BulkOTRequest struct {
	IDs []int64 `json:"ids"`
}

type RecalculateRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r RecalculateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be 1-12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecalculateResult reports what a bulk recalculation touched.
type RecalculateResult struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
}

// MarkReviewedRequest closes the auto-clock-out review loop.
type MarkReviewedRequest struct {
	ID          int64
	WorkMinutes *int `json:"work_minutes"`
	OTMinutes   *int `json:"ot_minutes"`
}

// Filter narrows attendance listings.
type Filter struct {
	EmployeeID *int64
	OutletID   *int64
	Month      *int
	Year       *int
	Status     *string
	StartDate  *string
	EndDate    *string
	Region     *string
}

// HistoryRequest is the employee-facing history body.
type HistoryRequest struct {
	EmployeeCode string `json:"employee_id"`
	ICNumber     string `json:"ic_number"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
}

// RecordResponse is the wire shape of a clock record.
type RecordResponse struct {
	ID               int64           `json:"id"`
	EmployeeID       int64           `json:"employee_id"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	EmployeeCode     string          `json:"employee_code,omitempty"`
	OutletID         *int64          `json:"outlet_id"`
	OutletName       *string         `json:"outlet_name,omitempty"`
	WorkDate         string          `json:"work_date"`
	ClockIn1         *string         `json:"clock_in_1"`
	ClockOut1        *string         `json:"clock_out_1"`
	ClockIn2         *string         `json:"clock_in_2"`
	ClockOut2        *string         `json:"clock_out_2"`
	TotalWorkMinutes int             `json:"total_work_minutes"`
	TotalWorkHours   decimal.Decimal `json:"total_work_hours"`
	TotalBreakMinutes int            `json:"total_break_minutes"`
	TotalBreakHours  decimal.Decimal `json:"total_break_hours"`
	OTMinutes        int             `json:"ot_minutes"`
	OTHours          decimal.Decimal `json:"ot_hours"`
	Status           string          `json:"status"`
	IsAutoClockOut   bool            `json:"is_auto_clock_out"`
	NeedsAdminReview bool            `json:"needs_admin_review"`
	HasSchedule      bool            `json:"has_schedule"`
	OTApproved       *bool           `json:"ot_approved"`
	Notes            *string         `json:"notes,omitempty"`
	NextAction       string          `json:"next_action,omitempty"`
}

// SummaryRow groups totals per outlet > position > employee.
type SummaryRow struct {
	OutletID         *int64          `json:"outlet_id"`
	OutletName       string          `json:"outlet_name"`
	PositionName     string          `json:"position_name"`
	EmployeeID       int64           `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	DaysWorked       int             `json:"days_worked"`
	TotalWorkMinutes int             `json:"total_work_minutes"`
	TotalWorkHours   decimal.Decimal `json:"total_work_hours"`
	TotalOTMinutes   int             `json:"total_ot_minutes"`
	TotalOTHours     decimal.Decimal `json:"total_ot_hours"`
}

// OTForPayrollRow is the approved-OT aggregate payroll consumes.
type OTForPayrollRow struct {
	EmployeeID   int64           `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	BasicSalary  decimal.Decimal `json:"basic_salary"`
	OTRate       decimal.Decimal `json:"ot_rate"`
	OTMinutes    int             `json:"ot_minutes"`
	OTHours      decimal.Decimal `json:"ot_hours"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	OTAmount     decimal.Decimal `json:"ot_amount"`
}

// AutoClockOutStats summarises the nightly job's recent work.
type AutoClockOutStats struct {
	TotalAutoClosed int `json:"total_auto_closed"`
	PendingReview   int `json:"pending_review"`
	Reviewed        int `json:"reviewed"`
}
