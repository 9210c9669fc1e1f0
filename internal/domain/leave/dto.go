package leave

import (
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	EmployeeID  int64   `json:"employee_id"`
	LeaveTypeID int64   `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	IsHalfDay   bool    `json:"is_half_day"`
	Reason      *string `json:"reason"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.LeaveTypeID == 0 {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "leave_type_id is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequest struct {
	ID     int64
	Reason string `json:"reason"`
}

type Filter struct {
	EmployeeID  *int64
	LeaveTypeID *int64
	Status      *string
	Year        *int
}
