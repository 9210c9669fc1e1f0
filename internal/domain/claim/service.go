package claim

import (
	"context"
)

// ClaimService defines business logic for expense claims.
type ClaimService interface {
	// Create runs receipt hashing, duplicate checks and the auto-approval
	// gate. Vision failures degrade to manual approval, never block intake.
	Create(ctx context.Context, req CreateRequest) (CreateResult, error)

	Update(ctx context.Context, req UpdateRequest) (Claim, error)
	Get(ctx context.Context, id int64) (Claim, error)
	List(ctx context.Context, filter Filter) ([]Claim, error)

	Approve(ctx context.Context, id int64) (Claim, error)
	Reject(ctx context.Context, req RejectRequest) (Claim, error)
	// Revert puts an approved, unlinked claim back to pending.
	Revert(ctx context.Context, id int64) (Claim, error)
	BulkApprove(ctx context.Context, req BulkApproveRequest) (int, error)

	// ForPayroll returns approved claims not yet swept into a payroll item.
	ForPayroll(ctx context.Context, employeeID int64) ([]Claim, error)
	LinkToPayroll(ctx context.Context, req LinkToPayrollRequest) (int64, error)

	PendingCount(ctx context.Context) (int, error)
	Summary(ctx context.Context, filter Filter) ([]SummaryRow, error)

	// AllowedTypes returns the categories the employee may claim under.
	AllowedTypes(ctx context.Context, employeeID int64) ([]string, error)
}
