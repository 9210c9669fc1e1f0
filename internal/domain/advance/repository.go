package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

type AdvanceRepository interface {
	Create(ctx context.Context, a SalaryAdvance) (SalaryAdvance, error)
	GetByID(ctx context.Context, id int64, companyID int64) (SalaryAdvance, error)
	// GetByIDForUpdate locks the row. Must run inside a transaction.
	GetByIDForUpdate(ctx context.Context, id int64, companyID int64) (SalaryAdvance, error)
	Update(ctx context.Context, a SalaryAdvance) error
	List(ctx context.Context, filter Filter, companyID int64) ([]SalaryAdvance, error)
	// OutstandingByEmployee sums outstanding balances on approved advances.
	OutstandingByEmployee(ctx context.Context, employeeID int64, companyID int64) (decimal.Decimal, error)
	// ListOutstandingByEmployee returns approved advances with outstanding > 0,
	// oldest first, locked FOR UPDATE.
	ListOutstandingByEmployee(ctx context.Context, employeeID int64, companyID int64) ([]SalaryAdvance, error)
	CreateDeduction(ctx context.Context, d AdvanceDeduction) error
	ListDeductions(ctx context.Context, advanceID int64) ([]AdvanceDeduction, error)
}
