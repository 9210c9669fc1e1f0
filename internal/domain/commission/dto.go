package commission

import (
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpsertSalesRequest creates or updates a sales row for
// (outlet_or_department, month, year).
type UpsertSalesRequest struct {
	OutletID       *int64           `json:"outlet_id"`
	DepartmentID   *int64           `json:"department_id"`
	PeriodMonth    int              `json:"period_month"`
	PeriodYear     int              `json:"period_year"`
	TotalSales     decimal.Decimal  `json:"total_sales"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

func (r UpsertSalesRequest) Validate() error {
	var errs validator.ValidationErrors
	hasOutlet := r.OutletID != nil && *r.OutletID != 0
	hasDept := r.DepartmentID != nil && *r.DepartmentID != 0
	if hasOutlet == hasDept {
		errs = append(errs, validator.ValidationError{Field: "outlet_id", Message: "exactly one of outlet_id or department_id is required"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "period_month must be 1-12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "period_year is out of range"})
	}
	if r.TotalSales.Sign() < 0 {
		errs = append(errs, validator.ValidationError{Field: "total_sales", Message: "total_sales cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SalesFilter narrows sales listings.
type SalesFilter struct {
	OutletID     *int64
	DepartmentID *int64
	PeriodMonth  *int
	PeriodYear   *int
	Status       *string
}

// CalculateResult reports what a calculate run produced.
type CalculateResult struct {
	Sales                Sales    `json:"sales"`
	Payouts              []Payout `json:"payouts"`
	EmployeesPaid        int      `json:"employees_paid"`
	TotalEffectiveShifts int      `json:"total_effective_shifts"`
}
