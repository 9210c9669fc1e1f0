package postgresql

import (
	"context"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
)

type payrollRunRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.RunRepository {
	return &payrollRunRepositoryImpl{db: db}
}

// HasFinalizedRun implements payroll.RunRepository.
func (r *payrollRunRepositoryImpl) HasFinalizedRun(ctx context.Context, month, year int, companyID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM payroll_runs
			WHERE company_id = $1 AND period_month = $2 AND period_year = $3 AND status IN ($4, $5)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, companyID, month, year, payroll.RunFinalized, payroll.RunPaid).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
