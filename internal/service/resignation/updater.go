package resignation

import (
	"context"
	"log/slog"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/leave"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
)

const pastLastDayReason = "Leave starts after the last working day"

// StatusUpdaterResult summarises one nightly updater run.
type StatusUpdaterResult struct {
	EmployeesUpdated int `json:"employees_updated"`
	LeavesRejected   int `json:"leaves_rejected"`
	Failed           int `json:"failed"`
}

// StatusUpdaterJob moves employees whose notice period has run out to
// resigned_pending and rejects their leave requests that can no longer be
// taken. Runs across all companies.
type StatusUpdaterJob struct {
	employees employee.EmployeeRepository
	leaves    leave.LeaveRequestRepository
	loc       *time.Location
	logger    *slog.Logger
}

func NewStatusUpdaterJob(
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	loc *time.Location,
	logger *slog.Logger,
) *StatusUpdaterJob {
	return &StatusUpdaterJob{
		employees: employeeRepo,
		leaves:    leaveRepo,
		loc:       loc,
		logger:    logger,
	}
}

// Run processes everyone whose last working day is behind today.
func (j *StatusUpdaterJob) Run(ctx context.Context) (StatusUpdaterResult, error) {
	today := dateutil.DateOf(time.Now().In(j.loc))

	var result StatusUpdaterResult
	due, err := j.employees.ListPastLastWorkingDay(ctx, today)
	if err != nil {
		return result, err
	}

	for _, emp := range due {
		if err := j.employees.SetEmploymentStatus(ctx, emp.ID, emp.CompanyID, employee.EmploymentResignedPending, emp.LastWorkingDay); err != nil {
			j.logger.Error("status updater: employee update failed",
				"employee_id", emp.ID, "error", err)
			result.Failed++
			continue
		}
		result.EmployeesUpdated++

		if emp.LastWorkingDay != nil {
			rejected, err := j.leaves.RejectPendingStartingAfter(ctx, emp.ID, dateutil.DateOf(*emp.LastWorkingDay), pastLastDayReason)
			if err != nil {
				j.logger.Error("status updater: leave rejection failed",
					"employee_id", emp.ID, "error", err)
				result.Failed++
				continue
			}
			result.LeavesRejected += int(rejected)
		}
	}

	j.logger.Info("resignation status updater finished",
		"employees_updated", result.EmployeesUpdated,
		"leaves_rejected", result.LeavesRejected,
		"failed", result.Failed)
	return result, nil
}
