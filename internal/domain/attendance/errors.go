package attendance

import "errors"

var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrInvalidAction     = errors.New("invalid clock action")
	ErrEventAlreadySet   = errors.New("clock event has already been recorded")
	ErrEventOutOfOrder   = errors.New("earlier clock events are missing")
	ErrMustClockInFirst  = errors.New("no record for today: clock in first")
	ErrAlreadyProcessed  = errors.New("record has already been approved or rejected")
	ErrNotPending        = errors.New("record is not pending")
	ErrOTAlreadyDecided  = errors.New("overtime has already been decided")
	ErrNotAutoClockedOut = errors.New("record was not auto clocked out")
	ErrReasonRequired    = errors.New("a reason is required")
	ErrICMismatch        = errors.New("IC number does not match")
	ErrEmployeeInactive  = errors.New("employee is not active")
	ErrPayrollFinalized  = errors.New("payroll for the period is already finalized")
)
