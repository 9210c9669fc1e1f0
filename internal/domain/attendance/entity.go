package attendance

import (
	"time"
)

// The four clock events, in the order they must occur.
const (
	ActionClockIn1  = "clock_in_1"
	ActionClockOut1 = "clock_out_1"
	ActionClockIn2  = "clock_in_2"
	ActionClockOut2 = "clock_out_2"
)

// Actions lists the events in order.
var Actions = []string{ActionClockIn1, ActionClockOut1, ActionClockIn2, ActionClockOut2}

// Record statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// MediaRetentionMonths is how long after the work date selfies are kept.
const MediaRetentionMonths = 6

// ClockRecord is the per-employee-per-day timesheet: at most one row per
// (employee, work_date). Clock events are local timestamps on the work date;
// an end-of-day event earlier than clock_in_1 means the shift crossed
// midnight.
type ClockRecord struct {
	ID         int64
	CompanyID  int64
	EmployeeID int64
	OutletID   *int64
	WorkDate   time.Time

	ClockIn1  *time.Time
	ClockOut1 *time.Time
	ClockIn2  *time.Time
	ClockOut2 *time.Time

	ClockIn1Location  *string
	ClockOut1Location *string
	ClockIn2Location  *string
	ClockOut2Location *string

	ClockIn1Photo  *string
	ClockOut1Photo *string
	ClockIn2Photo  *string
	ClockOut2Photo *string

	TotalWorkMinutes  int
	TotalBreakMinutes int
	OTMinutes         int

	Status           string
	IsAutoClockOut   bool
	NeedsAdminReview bool
	HasSchedule      bool

	// OTApproved is tri-state: nil until an admin decides.
	OTApproved     *bool
	OTApprovedBy   *int64
	OTApprovedAt   *time.Time
	OTRejectReason *string

	ApprovedBy   *int64
	ApprovedAt   *time.Time
	RejectReason *string

	ReviewedBy *int64
	ReviewedAt *time.Time

	Notes *string

	MediaDeletedAt           *time.Time
	MediaRetentionEligibleAt time.Time
	MediaDeletionLogged      bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
	PositionName *string
	PositionRole *string
	OutletName   *string
	Region       *string
}

// Event returns the timestamp for a named action.
func (c *ClockRecord) Event(action string) *time.Time {
	switch action {
	case ActionClockIn1:
		return c.ClockIn1
	case ActionClockOut1:
		return c.ClockOut1
	case ActionClockIn2:
		return c.ClockIn2
	case ActionClockOut2:
		return c.ClockOut2
	}
	return nil
}

// SetEvent writes the timestamp for a named action.
func (c *ClockRecord) SetEvent(action string, t *time.Time) {
	switch action {
	case ActionClockIn1:
		c.ClockIn1 = t
	case ActionClockOut1:
		c.ClockOut1 = t
	case ActionClockIn2:
		c.ClockIn2 = t
	case ActionClockOut2:
		c.ClockOut2 = t
	}
}

// NextAction returns the next expected event, or "" when the day is closed.
func (c *ClockRecord) NextAction() string {
	for _, a := range Actions {
		if c.Event(a) == nil {
			return a
		}
	}
	return ""
}

// LastClockOut returns the latest recorded end event (out_2, else out_1).
func (c *ClockRecord) LastClockOut() *time.Time {
	if c.ClockOut2 != nil {
		return c.ClockOut2
	}
	return c.ClockOut1
}

// IsValidAction reports whether the action names a clock event.
func IsValidAction(action string) bool {
	for _, a := range Actions {
		if a == action {
			return true
		}
	}
	return false
}
