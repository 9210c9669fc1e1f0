package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests and balances.
type LeaveService interface {
	Create(ctx context.Context, req CreateRequest) (LeaveRequest, error)
	Get(ctx context.Context, id int64) (LeaveRequest, error)
	List(ctx context.Context, filter Filter) ([]LeaveRequest, error)

	// Approve debits the balance and approves the request in one
	// transaction.
	Approve(ctx context.Context, id int64) (LeaveRequest, error)
	Reject(ctx context.Context, req RejectRequest) (LeaveRequest, error)
	// Cancel reverses an approved request's balance debit; pending requests
	// are simply cancelled.
	Cancel(ctx context.Context, id int64) (LeaveRequest, error)

	Types(ctx context.Context) ([]LeaveType, error)
	Balances(ctx context.Context, employeeID int64, year int) ([]LeaveBalance, error)
}
