package attendance

import (
	"context"
	"time"
)

// ClockRecordRepository defines data access for daily clock records.
// All methods take companyID to prevent cross-company data access; the
// (employee_id, work_date) unique index backs the upsert methods.
type ClockRecordRepository interface {
	Create(ctx context.Context, record ClockRecord) (ClockRecord, error)

	GetByID(ctx context.Context, id int64, companyID int64) (ClockRecord, error)

	// GetByEmployeeAndDate returns nil when no record exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time, companyID int64) (*ClockRecord, error)

	// Upsert inserts or updates on the (employee_id, work_date) pair.
	Upsert(ctx context.Context, record ClockRecord) (ClockRecord, error)

	Update(ctx context.Context, record ClockRecord) error

	List(ctx context.Context, filter Filter, companyID int64) ([]ClockRecord, error)

	// ListByMonth returns all records in a calendar month.
	ListByMonth(ctx context.Context, companyID int64, year, month int) ([]ClockRecord, error)

	// ListOpenForDate returns records with clock_in_1 set, clock_out_2 null
	// and is_auto_clock_out false across all companies. Used by the nightly
	// auto clock-out job.
	ListOpenForDate(ctx context.Context, date time.Time) ([]ClockRecord, error)

	// ListNeedsReview returns auto-closed records awaiting admin review.
	ListNeedsReview(ctx context.Context, companyID int64) ([]ClockRecord, error)

	AutoClockOutStats(ctx context.Context, companyID int64) (AutoClockOutStats, error)

	// SetHasSchedule flips the has_schedule flag for (employee, date) if a
	// record exists.
	SetHasSchedule(ctx context.Context, employeeID int64, date time.Time, companyID int64, has bool) error

	// ApprovedOTByMonth aggregates approved OT per employee for payroll.
	ApprovedOTByMonth(ctx context.Context, companyID int64, year, month int) ([]OTForPayrollRow, error)

	Summary(ctx context.Context, filter Filter, companyID int64) ([]SummaryRow, error)

	// ListMediaEligible returns records whose media retention window has
	// passed and whose media has not been deleted yet.
	ListMediaEligible(ctx context.Context, companyID int64, limit int) ([]ClockRecord, error)

	// ClearMedia nulls the photo references and stamps media_deleted_at.
	ClearMedia(ctx context.Context, id int64, companyID int64) error

	// CountMediaEligible counts records whose media is due for deletion.
	CountMediaEligible(ctx context.Context, companyID int64) (int, error)
	// CountMediaCleared counts records whose media was already deleted.
	CountMediaCleared(ctx context.Context, companyID int64) (int, error)
}
