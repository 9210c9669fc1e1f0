package advance

import "errors"

var (
	ErrAdvanceNotFound  = errors.New("salary advance not found")
	ErrAlreadyProcessed = errors.New("salary advance has already been processed")
	ErrNotActive        = errors.New("salary advance is not active")
	ErrOverDeduction    = errors.New("deduction exceeds remaining balance")
)
