package payroll

import "time"

// Run captures the minimal payroll-run facts the engine reads: whether a
// month has been finalized, which blocks attendance recalculation for that
// month.
type Run struct {
	ID          int64
	CompanyID   int64
	PeriodMonth int
	PeriodYear  int
	Status      string
	FinalizedAt *time.Time
}

const (
	RunDraft     = "draft"
	RunFinalized = "finalized"
	RunPaid      = "paid"
)
