package attendance

import (
	"context"
)

// AttendanceService defines business logic for clock records.
type AttendanceService interface {
	// Clock processes one employee clock event, identified by code + IC.
	Clock(ctx context.Context, req ClockActionRequest) (RecordResponse, error)

	// Today returns the employee's record for the current date, or nil.
	Today(ctx context.Context, req HistoryRequest) (*RecordResponse, error)

	// History returns the employee's records for a month.
	History(ctx context.Context, req HistoryRequest) ([]RecordResponse, error)

	List(ctx context.Context, filter Filter) ([]RecordResponse, error)

	// AdminUpsert creates or updates a record for (employee, date).
	AdminUpsert(ctx context.Context, req AdminUpsertRequest) (RecordResponse, error)

	// AdminSetAction writes one of the four clock events on a record.
	AdminSetAction(ctx context.Context, req AdminActionRequest) (RecordResponse, error)

	Approve(ctx context.Context, req ApproveRequest) (RecordResponse, error)
	Reject(ctx context.Context, req RejectRequest) (RecordResponse, error)

	// ApproveWithSchedule approves and upserts a roster entry from a shift
	// template, flipping has_schedule.
	ApproveWithSchedule(ctx context.Context, req ApproveRequest) (RecordResponse, error)

	// ApproveWithoutSchedule approves while accepting admin-overridden totals.
	ApproveWithoutSchedule(ctx context.Context, req ApproveRequest) (RecordResponse, error)

	ApproveOT(ctx context.Context, id int64) (RecordResponse, error)
	RejectOT(ctx context.Context, req RejectRequest) (RecordResponse, error)
	BulkApproveOT(ctx context.Context, req BulkOTRequest) (int, error)

	// Recalculate recomputes derived totals for a month and writes back only
	// where they differ.
	Recalculate(ctx context.Context, req RecalculateRequest) (RecalculateResult, error)

	Summary(ctx context.Context, filter Filter) ([]SummaryRow, error)
	OTForPayroll(ctx context.Context, year, month int) ([]OTForPayrollRow, error)

	NeedsReview(ctx context.Context) ([]RecordResponse, error)
	MarkReviewed(ctx context.Context, req MarkReviewedRequest) (RecordResponse, error)
	Stats(ctx context.Context) (AutoClockOutStats, error)
}
