package commission

import (
	"context"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
)

// CommissionService defines business logic for monthly pooled commission.
type CommissionService interface {
	UpsertSales(ctx context.Context, req UpsertSalesRequest) (Sales, error)
	GetSales(ctx context.Context, id int64) (Sales, error)
	ListSales(ctx context.Context, filter SalesFilter) ([]Sales, error)
	DeleteSales(ctx context.Context, id int64) error

	// Calculate distributes the commission pool over scheduled shifts in the
	// payout period. Reruns wipe and rewrite the payouts.
	Calculate(ctx context.Context, salesID int64) (CalculateResult, error)

	Finalize(ctx context.Context, salesID int64) (Sales, error)
	Revert(ctx context.Context, salesID int64) (Sales, error)

	Payouts(ctx context.Context, salesID int64) ([]Payout, error)
	EmployeePayouts(ctx context.Context, employeeID int64, year *int) ([]Payout, error)

	// Outlets lists the caller's outlets for the sales entry screens.
	Outlets(ctx context.Context) ([]company.Outlet, error)
}
