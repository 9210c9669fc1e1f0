package resignation

import (
	"github.com/shopspring/decimal"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/leave"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	EmployeeID     int64   `json:"employee_id"`
	NoticeDate     string  `json:"notice_date"`
	LastWorkingDay *string `json:"last_working_day"`
	Reason         *string `json:"reason"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.NoticeDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "notice_date", Message: "notice_date must be YYYY-MM-DD"})
	}
	if r.LastWorkingDay != nil {
		if _, ok := validator.IsValidDate(*r.LastWorkingDay); !ok {
			errs = append(errs, validator.ValidationError{Field: "last_working_day", Message: "last_working_day must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest amends a pending resignation's dates or reason.
type UpdateRequest struct {
	ID             int64
	NoticeDate     *string `json:"notice_date"`
	LastWorkingDay *string `json:"last_working_day"`
	Reason         *string `json:"reason"`
}

func (r UpdateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.NoticeDate != nil {
		if _, ok := validator.IsValidDate(*r.NoticeDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "notice_date", Message: "notice_date must be YYYY-MM-DD"})
		}
	}
	if r.LastWorkingDay != nil {
		if _, ok := validator.IsValidDate(*r.LastWorkingDay); !ok {
			errs = append(errs, validator.ValidationError{Field: "last_working_day", Message: "last_working_day must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveRequest struct {
	ID          int64
	WaiveNotice bool `json:"waive_notice"`
}

type RejectRequest struct {
	ID     int64
	Reason string `json:"reason"`
}

type ClearItemRequest struct {
	ItemID      int64   `json:"item_id"`
	IsCompleted bool    `json:"is_completed"`
	Remark      *string `json:"remark"`
}

type ProcessRequest struct {
	ID                int64
	OverrideClearance bool `json:"override_clearance"`
}

type Filter struct {
	EmployeeID *int64
	OutletID   *int64
	Status     *string
	StartDate  *string
	EndDate    *string
}

// Detail bundles a resignation with its clearance checklist.
type Detail struct {
	Resignation Resignation     `json:"resignation"`
	Clearance   []ClearanceItem `json:"clearance"`
}

// LeaveCheck lists the leave requests that collide with the last working day.
type LeaveCheck struct {
	PendingAfterLastDay  []leave.LeaveRequest `json:"pending_after_last_day"`
	ApprovedAfterLastDay []leave.LeaveRequest `json:"approved_after_last_day"`
}

// LeaveEntitlement is the encashable paid-leave position for the exit year.
type LeaveEntitlement struct {
	Year           int             `json:"year"`
	EncashableDays decimal.Decimal `json:"encashable_days"`
	Balances       []leave.LeaveBalance `json:"balances"`
}

// LeaveCleanupResult reports what cleanup-leaves cancelled.
type LeaveCleanupResult struct {
	PendingCancelled  int `json:"pending_cancelled"`
	ApprovedCancelled int `json:"approved_cancelled"`
}
