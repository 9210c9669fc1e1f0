package leave

import "errors"

var (
	ErrTypeNotFound        = errors.New("leave type not found")
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrAlreadyProcessed    = errors.New("leave request has already been processed")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrOverlappingLeave    = errors.New("overlapping leave request exists")
	ErrInvalidRange        = errors.New("end date must not be before start date")
)
