package retention

import "context"

// LogRepository is the append-only audit trail of media deletions.
type LogRepository interface {
	Create(ctx context.Context, e LogEntry) error
	List(ctx context.Context, companyID int64, limit int) ([]LogEntry, error)
	// LatestCreatedAt returns the newest log timestamp, or nil when the
	// company has no deletions yet.
	LatestCreatedAt(ctx context.Context, companyID int64) (*LogEntry, error)
}
