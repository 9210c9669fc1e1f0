package advance

import (
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	EmployeeID             int64            `json:"employee_id"`
	Amount                 decimal.Decimal  `json:"amount"`
	DeductionMethod        string           `json:"deduction_method"`
	InstallmentAmount      *decimal.Decimal `json:"installment_amount"`
	ExpectedDeductionMonth *int             `json:"expected_deduction_month"`
	ExpectedDeductionYear  *int             `json:"expected_deduction_year"`
	Reason                 *string          `json:"reason"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Amount.Sign() <= 0 {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be positive"})
	}
	switch r.DeductionMethod {
	case DeductFull:
	case DeductInstallment:
		if r.InstallmentAmount == nil || r.InstallmentAmount.Sign() <= 0 {
			errs = append(errs, validator.ValidationError{Field: "installment_amount", Message: "installment_amount must be positive for installment deduction"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "deduction_method", Message: "deduction_method must be full or installment"})
	}
	if r.ExpectedDeductionMonth != nil && (*r.ExpectedDeductionMonth < 1 || *r.ExpectedDeductionMonth > 12) {
		errs = append(errs, validator.ValidationError{Field: "expected_deduction_month", Message: "expected_deduction_month must be 1-12"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CancelRequest struct {
	ID     int64
	Reason string `json:"reason"`
}

type DeductRequest struct {
	AdvanceID   int64           `json:"advance_id"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	ReferenceID *int64          `json:"reference_id"`
}

func (r DeductRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Amount.Sign() <= 0 {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be positive"})
	}
	if r.Source != "payroll" && r.Source != "settlement" {
		errs = append(errs, validator.ValidationError{Field: "source", Message: "source must be payroll or settlement"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeID *int64
	Status     *string
}
