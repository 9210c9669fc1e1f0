package commission

import (
	"context"
)

// SalesRepository defines data access for monthly sales rows. The
// (outlet_id|department_id, period_month, period_year) unique indexes back
// the upsert.
type SalesRepository interface {
	Upsert(ctx context.Context, s Sales) (Sales, error)
	GetByID(ctx context.Context, id int64, companyID int64) (Sales, error)
	List(ctx context.Context, filter SalesFilter, companyID int64) ([]Sales, error)
	Update(ctx context.Context, s Sales) error
	Delete(ctx context.Context, id int64, companyID int64) error
}

// PayoutRepository defines data access for per-employee payouts.
type PayoutRepository interface {
	// ReplaceForSales deletes existing payouts for the sales row and inserts
	// the new set. Runs inside the calculate transaction.
	ReplaceForSales(ctx context.Context, salesID int64, payouts []Payout) error

	ListBySales(ctx context.Context, salesID int64) ([]Payout, error)

	CountBySales(ctx context.Context, salesID int64) (int, error)

	// ListByEmployee returns an employee's payouts, optionally for one year.
	ListByEmployee(ctx context.Context, employeeID int64, year *int, companyID int64) ([]Payout, error)
}
