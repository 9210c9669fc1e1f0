package claim

import (
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	EmployeeID  int64           `json:"employee_id"`
	ClaimDate   string          `json:"claim_date"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
	Receipt     *string         `json:"receipt"` // base64 image
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.ClaimDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "claim_date", Message: "claim_date must be YYYY-MM-DD"})
	}
	if !IsValidCategory(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "unknown category"})
	}
	if r.Amount.Sign() <= 0 {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRequest struct {
	ID          int64
	ClaimDate   *string          `json:"claim_date"`
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

type RejectRequest struct {
	ID     int64
	Reason string `json:"reason"`
}

type BulkApproveRequest struct {
	IDs []int64 `json:"ids"`
}

// LinkToPayrollRequest marks approved claims as swept into a payroll item.
type LinkToPayrollRequest struct {
	IDs           []int64 `json:"ids"`
	PayrollItemID int64   `json:"payroll_item_id"`
}

// Filter narrows claim listings.
type Filter struct {
	EmployeeID *int64
	Status     *string
	Category   *string
	StartDate  *string
	EndDate    *string
}

// CreateResult reports how intake handled the claim.
type CreateResult struct {
	Claim        Claim    `json:"claim"`
	AutoApproved bool     `json:"auto_approved"`
	AmountCapped bool     `json:"amount_capped"`
	Warnings     []string `json:"warnings,omitempty"`
}

// SummaryRow aggregates claims per category.
type SummaryRow struct {
	Category    string          `json:"category"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
