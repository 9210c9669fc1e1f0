package response

import (
	"errors"
	"net/http"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/advance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/claim"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/commission"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/leave"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/notification"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/resignation"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/astaka-hr/hrms-backend-go/internal/service/driversync"
)

// notFoundErrs map to 404: the id is missing or belongs to another tenant.
var notFoundErrs = []error{
	attendance.ErrRecordNotFound,
	claim.ErrClaimNotFound,
	commission.ErrSalesNotFound,
	company.ErrCompanyNotFound,
	company.ErrOutletNotFound,
	company.ErrDepartmentNotFound,
	employee.ErrEmployeeNotFound,
	leave.ErrTypeNotFound,
	leave.ErrRequestNotFound,
	leave.ErrBalanceNotFound,
	notification.ErrNotificationNotFound,
	resignation.ErrResignationNotFound,
	resignation.ErrClearanceNotFound,
	schedule.ErrScheduleNotFound,
	schedule.ErrTemplateNotFound,
	schedule.ErrExtraShiftNotFound,
	advance.ErrAdvanceNotFound,
}

// forbiddenErrs map to 403: the caller's role or identity does not permit
// the operation.
var forbiddenErrs = []error{
	attendance.ErrICMismatch,
	employee.ErrICMismatch,
	schedule.ErrOutsideEditWindow,
	schedule.ErrPastDateNotAllowed,
}

// preconditionErrs map to 400: duplicates, lifecycle conflicts and failed
// preconditions. The sentinel message names the precondition.
var preconditionErrs = []error{
	attendance.ErrInvalidAction,
	attendance.ErrEventAlreadySet,
	attendance.ErrEventOutOfOrder,
	attendance.ErrMustClockInFirst,
	attendance.ErrAlreadyProcessed,
	attendance.ErrNotPending,
	attendance.ErrOTAlreadyDecided,
	attendance.ErrNotAutoClockedOut,
	attendance.ErrReasonRequired,
	attendance.ErrEmployeeInactive,
	attendance.ErrPayrollFinalized,
	claim.ErrAlreadyProcessed,
	claim.ErrNotApproved,
	claim.ErrAlreadyLinked,
	claim.ErrInvalidCategory,
	claim.ErrDuplicateReceipt,
	commission.ErrAlreadyFinalized,
	commission.ErrNotFinalized,
	commission.ErrNoPayouts,
	commission.ErrDeleteFinalized,
	commission.ErrGroupDimension,
	employee.ErrEmployeeInactive,
	leave.ErrAlreadyProcessed,
	leave.ErrInsufficientBalance,
	leave.ErrOverlappingLeave,
	leave.ErrInvalidRange,
	resignation.ErrAlreadyResigned,
	resignation.ErrAlreadyProcessed,
	resignation.ErrNotPending,
	resignation.ErrNotClearing,
	resignation.ErrClearanceIncomplete,
	resignation.ErrNoSettlement,
	schedule.ErrDuplicateSchedule,
	schedule.ErrEmployeeResigned,
	schedule.ErrAfterLastWorkingDay,
	schedule.ErrExtraShiftProcessed,
	advance.ErrAlreadyProcessed,
	advance.ErrNotActive,
	advance.ErrOverDeduction,
	driversync.ErrNotConfigured,
}

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, sentinel := range notFoundErrs {
		if errors.Is(err, sentinel) {
			NotFound(w, err.Error())
			return
		}
	}
	for _, sentinel := range forbiddenErrs {
		if errors.Is(err, sentinel) {
			Forbidden(w, err.Error())
			return
		}
	}
	for _, sentinel := range preconditionErrs {
		if errors.Is(err, sentinel) {
			BadRequest(w, err.Error(), nil)
			return
		}
	}

	InternalServerError(w, "An unexpected error occurred")
}
