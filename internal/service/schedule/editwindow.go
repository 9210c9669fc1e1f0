package schedule

import (
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

// supervisorLeadDays is how far ahead a supervisor must stay: edits are
// allowed strictly from today+3 onward.
const supervisorLeadDays = 2

// CanEditDate applies the role-based schedule edit window. Admins and
// managers may touch any date; supervisors only dates after today+2; crew
// none.
func CanEditDate(role string, date, today time.Time) bool {
	switch role {
	case session.RoleAdmin, session.RoleManager:
		return true
	case session.RoleSupervisor:
		return dateutil.DateOf(date).After(dateutil.DateOf(today).AddDate(0, 0, supervisorLeadDays))
	default:
		return false
	}
}

// EarliestEditable returns the first date the role may edit, or zero time
// when the role has no window or an unlimited one.
func EarliestEditable(role string, today time.Time) time.Time {
	if role == session.RoleSupervisor {
		return dateutil.DateOf(today).AddDate(0, 0, supervisorLeadDays+1)
	}
	return time.Time{}
}
