package claim

import (
	"errors"
	"fmt"
)

var (
	ErrClaimNotFound     = errors.New("claim not found")
	ErrAlreadyProcessed  = errors.New("claim has already been processed")
	ErrNotApproved       = errors.New("claim is not approved")
	ErrAlreadyLinked     = errors.New("claim is already linked to a payroll item")
	ErrInvalidCategory   = errors.New("invalid claim category")
	ErrDuplicateReceipt  = errors.New("duplicate receipt")
)

// DuplicateReceiptError identifies the claim the receipt was first seen on.
type DuplicateReceiptError struct {
	ClaimID      int64
	EmployeeName string
}

func (e *DuplicateReceiptError) Error() string {
	return fmt.Sprintf("already submitted by %s on claim #%d", e.EmployeeName, e.ClaimID)
}

func (e *DuplicateReceiptError) Unwrap() error { return ErrDuplicateReceipt }
