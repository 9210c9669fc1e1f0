package resignation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resignation statuses.
const (
	StatusPending   = "pending"
	StatusClearing  = "clearing"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
	StatusCancelled = "cancelled"
)

// ActiveStatuses are the states that block a second resignation.
var ActiveStatuses = []string{StatusPending, StatusClearing}

// Notice period bands under the Employment Act 1955 §12(2), in calendar days.
const (
	NoticeUnderTwoYears = 28
	NoticeTwoToFive     = 42
	NoticeFiveAndAbove  = 56
)

// NoticeDays returns the required notice period for a given length of
// service in full months.
func NoticeDays(serviceMonths int) int {
	switch {
	case serviceMonths < 24:
		return NoticeUnderTwoYears
	case serviceMonths < 60:
		return NoticeTwoToFive
	default:
		return NoticeFiveAndAbove
	}
}

type Resignation struct {
	ID             int64
	CompanyID      int64
	EmployeeID     int64
	NoticeDate     time.Time
	LastWorkingDay time.Time
	Reason         *string
	Status         string

	RequiredNoticeDays int
	ActualNoticeDays   int
	NoticeWaived       bool

	ClearanceCompleted bool

	// Settlement fields, populated by the settlement calculation and frozen
	// on process.
	SettlementBreakdown *Breakdown
	SettlementNet       *decimal.Decimal
	SettlementDate      *time.Time

	ProcessedBy  *int64
	ApprovedBy   *int64
	ApprovedAt   *time.Time
	RejectReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
	OutletName   *string
}

// NoticeShortfall is the unserved part of the required notice period.
func (r Resignation) NoticeShortfall() int {
	if r.NoticeWaived {
		return 0
	}
	shortfall := r.RequiredNoticeDays - r.ActualNoticeDays
	if shortfall < 0 {
		return 0
	}
	return shortfall
}

type ClearanceItem struct {
	ID            int64
	ResignationID int64
	Label         string
	IsCompleted   bool
	CompletedBy   *int64
	CompletedAt   *time.Time
	Remark        *string
	SortOrder     int
}

// ClearanceTemplate is a per-company checklist item seeded onto new
// resignations at approval time. Company 1 acts as the fallback set for
// tenants with no templates of their own.
type ClearanceTemplate struct {
	ID        int64
	CompanyID int64
	Label     string
	SortOrder int
	IsActive  bool
}

// FallbackTemplateCompanyID is consulted when a tenant has no clearance
// templates.
const FallbackTemplateCompanyID = 1

// Breakdown is the settlement computation persisted on the resignation row.
type Breakdown struct {
	ProratedSalary   decimal.Decimal `json:"prorated_salary"`
	WeekdaysWorked   int             `json:"weekdays_worked"`
	WeekdaysInMonth  int             `json:"weekdays_in_month"`
	LeaveEncashment  decimal.Decimal `json:"leave_encashment"`
	LeaveDays        decimal.Decimal `json:"leave_days"`
	PendingClaims    decimal.Decimal `json:"pending_claims"`
	ProratedBonus    decimal.Decimal `json:"prorated_bonus"`
	NoticeShortfall  int             `json:"notice_shortfall_days"`
	NoticeBuyout     decimal.Decimal `json:"notice_buyout"`
	EPF              decimal.Decimal `json:"epf"`
	SOCSO            decimal.Decimal `json:"socso"`
	EIS              decimal.Decimal `json:"eis"`
	PCB              decimal.Decimal `json:"pcb"`
	Gross            decimal.Decimal `json:"gross"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	Net              decimal.Decimal `json:"net"`
}
