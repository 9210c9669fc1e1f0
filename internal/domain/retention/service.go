package retention

import (
	"context"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
)

// RetentionService manages the media retention window on clock records.
type RetentionService interface {
	Status(ctx context.Context) (Status, error)
	Pending(ctx context.Context, limit int) ([]attendance.ClockRecord, error)
	Logs(ctx context.Context, limit int) ([]LogEntry, error)

	// Cleanup deletes expired media per record in its own transaction. With
	// dryRun it only reports what would be deleted.
	Cleanup(ctx context.Context, dryRun bool) (CleanupResult, error)
}
