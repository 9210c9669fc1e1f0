package payroll

import "context"

// RunRepository is the read side the attendance and commission engines
// consult before rewriting monthly figures.
type RunRepository interface {
	// HasFinalizedRun reports whether a finalized or paid run exists for the
	// month.
	HasFinalizedRun(ctx context.Context, month, year int, companyID int64) (bool, error)
}
