package retention

import "time"

// DefaultCleanupBatch caps how many records one cleanup run touches.
const DefaultCleanupBatch = 500

// LogEntry is an append-only record of a media deletion.
type LogEntry struct {
	ID            int64
	CompanyID     int64
	ClockRecordID int64
	FieldsCleared []string
	DeletedBy     *int64
	Verified      bool
	CreatedAt     time.Time
}

// Status summarises the retention position for a company.
type Status struct {
	RetentionMonths int        `json:"retention_months"`
	PendingRecords  int        `json:"pending_records"`
	ClearedRecords  int        `json:"cleared_records"`
	LastCleanupAt   *time.Time `json:"last_cleanup_at"`
}

// CleanupResult reports one cleanup run.
type CleanupResult struct {
	DryRun    bool    `json:"dry_run"`
	Processed int     `json:"processed"`
	Failed    int     `json:"failed"`
	RecordIDs []int64 `json:"record_ids"`
}
