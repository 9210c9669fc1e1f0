package employee

import (
	"context"
	"time"
)

// EmployeeRepository defines data access for employees.
// All methods take companyID to prevent cross-company data access.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64, companyID int64) (Employee, error)

	// GetByCode looks an employee up by the external employee code.
	GetByCode(ctx context.Context, code string, companyID int64) (Employee, error)

	// GetByIC looks an employee up by normalised IC across a company.
	GetByIC(ctx context.Context, ic string, companyID int64) (Employee, error)

	// ListActive returns active employees, optionally narrowed to an outlet
	// or department (zero means no filter).
	ListActive(ctx context.Context, companyID int64, outletID, departmentID int64) ([]Employee, error)

	// MarkExited flips the employee to inactive/exited with resign_date set.
	// Used inside the resignation-process transaction.
	MarkExited(ctx context.Context, id int64, companyID int64, lastWorkingDay time.Time) error

	// SetEmploymentStatus updates the lifecycle field only.
	SetEmploymentStatus(ctx context.Context, id int64, companyID int64, status string, lastWorkingDay *time.Time) error

	// ListPastLastWorkingDay returns employees on notice whose last working
	// day is strictly before the given date. Used by the nightly updater.
	ListPastLastWorkingDay(ctx context.Context, before time.Time) ([]Employee, error)
}
