package claim

import (
	"context"
)

// ClaimRepository defines data access for expense claims.
type ClaimRepository interface {
	Create(ctx context.Context, c Claim) (Claim, error)
	GetByID(ctx context.Context, id int64, companyID int64) (Claim, error)
	Update(ctx context.Context, c Claim) error
	List(ctx context.Context, filter Filter, companyID int64) ([]Claim, error)

	// FindByReceiptHash returns the first non-rejected claim in the company
	// with the given hash, or nil.
	FindByReceiptHash(ctx context.Context, hash string, companyID int64) (*Claim, error)

	// FindSimilar matches on AI-extracted (merchant case-insensitive, date,
	// amount) among non-rejected claims, or nil.
	FindSimilar(ctx context.Context, merchant, date string, amount string, companyID int64) (*Claim, error)

	// ListApprovedUnlinked returns approved claims not yet swept into
	// payroll, optionally for one employee (0 = all).
	ListApprovedUnlinked(ctx context.Context, employeeID int64, companyID int64) ([]Claim, error)

	// LinkToPayrollItem stamps linked_payroll_item_id on approved claims.
	LinkToPayrollItem(ctx context.Context, ids []int64, payrollItemID int64, companyID int64) (int64, error)

	PendingCount(ctx context.Context, companyID int64) (int, error)
	Summary(ctx context.Context, filter Filter, companyID int64) ([]SummaryRow, error)
}
