package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sales row statuses.
const (
	StatusDraft     = "draft"
	StatusFinalized = "finalized"
)

// PHWeight is how many effective shifts one public-holiday shift counts for.
const PHWeight = 2

// DefaultRate is the commission rate applied when a sales row omits one.
var DefaultRate = decimal.NewFromFloat(6.00)

// Sales is one outlet/department monthly sales figure. Payout month N covers
// schedule dates from (N-1)-15 through N-14 inclusive.
type Sales struct {
	ID                   int64
	CompanyID            int64
	OutletID             *int64
	DepartmentID         *int64
	PeriodMonth          int
	PeriodYear           int
	TotalSales           decimal.Decimal
	CommissionRate       decimal.Decimal
	CommissionPool       decimal.Decimal
	TotalEffectiveShifts int
	PerShiftValue        decimal.Decimal
	Status               string
	FinalizedBy          *int64
	FinalizedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// DTO
	OutletName     *string
	DepartmentName *string
}

// Payout is one employee's share of a sales row.
type Payout struct {
	ID               int64
	SalesID          int64
	EmployeeID       int64
	NormalShifts     int
	PHShifts         int
	EffectiveShifts  int
	CommissionAmount decimal.Decimal
	CreatedAt        time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
	PeriodMonth  int
	PeriodYear   int
}

// PeriodBounds returns the inclusive schedule-date span for a payout month:
// the 15th of the previous month through the 14th of the payout month.
func PeriodBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month-1), 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month), 14, 0, 0, 0, 0, time.UTC)
	return start, end
}
