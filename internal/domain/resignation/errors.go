package resignation

import "errors"

var (
	ErrResignationNotFound = errors.New("resignation not found")
	ErrAlreadyResigned     = errors.New("employee already has an active resignation")
	ErrAlreadyProcessed    = errors.New("resignation has already been processed")
	ErrNotPending          = errors.New("resignation is not pending")
	ErrNotClearing         = errors.New("resignation is not in clearing")
	ErrClearanceIncomplete = errors.New("clearance checklist is not complete")
	ErrClearanceNotFound   = errors.New("clearance item not found")
	ErrNoSettlement        = errors.New("settlement has not been calculated")
)
