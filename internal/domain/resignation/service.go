package resignation

import (
	"context"
)

// ResignationService drives the resignation lifecycle and the final
// settlement computation.
type ResignationService interface {
	Create(ctx context.Context, req CreateRequest) (Resignation, error)
	// Update amends a pending resignation's dates or reason.
	Update(ctx context.Context, req UpdateRequest) (Resignation, error)
	Get(ctx context.Context, id int64) (Detail, error)
	List(ctx context.Context, filter Filter) ([]Resignation, error)

	// Approve moves pending to clearing, seeds the clearance checklist and
	// puts the employee on notice.
	Approve(ctx context.Context, req ApproveRequest) (Resignation, error)
	Reject(ctx context.Context, req RejectRequest) (Resignation, error)
	Withdraw(ctx context.Context, id int64) (Resignation, error)
	Cancel(ctx context.Context, id int64) (Resignation, error)
	WaiveNotice(ctx context.Context, id int64, waived bool) (Resignation, error)

	ClearItem(ctx context.Context, resignationID int64, req ClearItemRequest) (Detail, error)
	// RegenerateClearance re-seeds the checklist from current templates.
	RegenerateClearance(ctx context.Context, resignationID int64) (Detail, error)

	// CheckLeaves lists leave requests that fall after the last working day.
	CheckLeaves(ctx context.Context, id int64) (LeaveCheck, error)
	// LeaveEntitlement reports the encashable paid-leave days for the exit
	// year.
	LeaveEntitlement(ctx context.Context, id int64) (LeaveEntitlement, error)
	// CleanupLeaves cancels leave beyond the last working day ahead of
	// processing, restoring balances for approved paid leave.
	CleanupLeaves(ctx context.Context, id int64) (LeaveCleanupResult, error)

	// CalculateSettlement computes the final-settlement breakdown and
	// persists it on the resignation row.
	CalculateSettlement(ctx context.Context, id int64) (Breakdown, error)

	// Process completes the resignation and exits the employee; all side
	// effects run in one transaction.
	Process(ctx context.Context, req ProcessRequest) (Resignation, error)
}
