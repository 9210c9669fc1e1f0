package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Leave request statuses.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

type LeaveType struct {
	ID          int64
	CompanyID   int64
	Name        string
	Code        string
	DefaultDays decimal.Decimal
	// Paid leave balances are encashed on final settlement.
	IsPaid   bool
	IsActive bool
}

type LeaveBalance struct {
	ID          int64
	CompanyID   int64
	EmployeeID  int64
	LeaveTypeID int64
	Year        int
	Entitled    decimal.Decimal
	Used        decimal.Decimal
	CarriedOver decimal.Decimal

	// DTO
	LeaveTypeName *string
	LeaveTypeCode *string
	TypeIsPaid    bool
}

// Remaining is entitled plus carry-over minus used.
func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.Entitled.Add(b.CarriedOver).Sub(b.Used)
}

type LeaveRequest struct {
	ID          int64
	CompanyID   int64
	EmployeeID  int64
	LeaveTypeID int64
	StartDate   time.Time
	EndDate     time.Time
	Days        decimal.Decimal
	IsHalfDay   bool
	Reason      *string
	Status      string

	ApprovedBy   *int64
	ApprovedAt   *time.Time
	RejectReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName  *string
	LeaveTypeName *string
	TypeIsPaid    bool
}
