package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveTypeRepository interface {
	ListActive(ctx context.Context, companyID int64) ([]LeaveType, error)
	GetByID(ctx context.Context, id int64, companyID int64) (LeaveType, error)
}

type LeaveBalanceRepository interface {
	ListByEmployee(ctx context.Context, employeeID int64, year int, companyID int64) ([]LeaveBalance, error)
	Get(ctx context.Context, employeeID, leaveTypeID int64, year int, companyID int64) (*LeaveBalance, error)
	// AddUsed increments the used counter; delta may be negative on
	// cancellation. Rows are locked FOR UPDATE inside the caller's
	// transaction.
	AddUsed(ctx context.Context, employeeID, leaveTypeID int64, year int, delta decimal.Decimal, companyID int64) error
	// EncashableRemaining sums positive remaining days across paid leave types.
	EncashableRemaining(ctx context.Context, employeeID int64, year int, companyID int64) (decimal.Decimal, error)
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id int64, companyID int64) (LeaveRequest, error)
	Update(ctx context.Context, r LeaveRequest) error
	List(ctx context.Context, filter Filter, companyID int64) ([]LeaveRequest, error)
	// HasOverlap reports a pending or approved request intersecting the range.
	HasOverlap(ctx context.Context, employeeID int64, start, end time.Time, excludeID int64, companyID int64) (bool, error)
	// RejectPendingStartingAfter rejects every pending request for the
	// employee whose start date falls after the cutoff, in any company.
	// Returns the number of requests rejected.
	RejectPendingStartingAfter(ctx context.Context, employeeID int64, cutoff time.Time, reason string) (int64, error)
	// CancelPendingStartingAfter cancels pending requests starting after the
	// cutoff. Used by the resignation-process transaction.
	CancelPendingStartingAfter(ctx context.Context, employeeID int64, cutoff time.Time, companyID int64) (int64, error)
	// ListApprovedStartingAfter returns approved requests starting after the
	// cutoff, with the leave type's paid flag populated.
	ListApprovedStartingAfter(ctx context.Context, employeeID int64, cutoff time.Time, companyID int64) ([]LeaveRequest, error)
	// ListPendingStartingAfter is the pending-status counterpart.
	ListPendingStartingAfter(ctx context.Context, employeeID int64, cutoff time.Time, companyID int64) ([]LeaveRequest, error)
}
