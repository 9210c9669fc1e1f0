package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary advance statuses.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Deduction methods.
const (
	DeductFull        = "full"
	DeductInstallment = "installment"
)

// SalaryAdvance holds an employee-owed balance. The invariant
// amount = total_deducted + remaining_balance holds at all times; the
// advance is completed once remaining_balance reaches zero.
type SalaryAdvance struct {
	ID         int64
	CompanyID  int64
	EmployeeID int64

	Amount            decimal.Decimal
	DeductionMethod   string
	InstallmentAmount *decimal.Decimal
	TotalDeducted     decimal.Decimal
	RemainingBalance  decimal.Decimal

	ExpectedDeductionMonth *int
	ExpectedDeductionYear  *int

	Reason *string
	Status string

	ApprovedBy   *int64
	ApprovedAt   *time.Time
	CancelReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

// NextDeduction is the amount the next payroll cycle should recover.
func (a SalaryAdvance) NextDeduction() decimal.Decimal {
	if a.DeductionMethod == DeductInstallment && a.InstallmentAmount != nil {
		if a.InstallmentAmount.LessThan(a.RemainingBalance) {
			return *a.InstallmentAmount
		}
	}
	return a.RemainingBalance
}

type AdvanceDeduction struct {
	ID        int64
	AdvanceID int64
	Amount    decimal.Decimal
	// Source is "payroll" or "settlement".
	Source      string
	ReferenceID *int64
	CreatedAt   time.Time
}
