package notification

import "time"

// Notification kinds.
const (
	KindPublicHoliday   = "public_holiday"
	KindResignation     = "resignation"
	KindClaimDecision   = "claim_decision"
	KindLeaveDecision   = "leave_decision"
	KindExtraShift      = "extra_shift"
	KindOTDecision      = "ot_decision"
	KindAutoClockOut    = "auto_clock_out"
	KindCommissionReady = "commission_ready"
)

type Notification struct {
	ID         int64
	CompanyID  int64
	EmployeeID *int64 // nil means company-wide
	Kind       string
	Title      string
	Body       string
	// DedupeKey guards insert-once delivery, e.g. "ph:2026-02-01:3".
	DedupeKey *string
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
