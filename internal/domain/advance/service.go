package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdvanceService defines business logic for salary advances.
type AdvanceService interface {
	Create(ctx context.Context, req CreateRequest) (SalaryAdvance, error)
	Get(ctx context.Context, id int64) (SalaryAdvance, error)
	List(ctx context.Context, filter Filter) ([]SalaryAdvance, error)

	Approve(ctx context.Context, id int64) (SalaryAdvance, error)
	Cancel(ctx context.Context, req CancelRequest) (SalaryAdvance, error)

	// Deduct recovers part of the balance under a row lock; the advance
	// completes when the balance reaches zero.
	Deduct(ctx context.Context, req DeductRequest) (SalaryAdvance, error)

	Outstanding(ctx context.Context, employeeID int64) (decimal.Decimal, error)
	Deductions(ctx context.Context, advanceID int64) ([]AdvanceDeduction, error)
}
