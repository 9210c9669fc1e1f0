package commission

import "errors"

var (
	ErrSalesNotFound      = errors.New("sales record not found")
	ErrAlreadyFinalized   = errors.New("sales record is already finalized")
	ErrNotFinalized       = errors.New("sales record is not finalized")
	ErrNoPayouts          = errors.New("no payouts calculated yet")
	ErrDeleteFinalized    = errors.New("cannot delete a finalized sales record")
	ErrGroupDimension     = errors.New("exactly one of outlet_id or department_id is required")
)
