package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/advance"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type advanceRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepositoryImpl{db: db}
}

const advanceColumns = `
	a.id, a.company_id, a.employee_id, a.amount, a.deduction_method, a.installment_amount,
	a.total_deducted, a.remaining_balance, a.expected_deduction_month, a.expected_deduction_year,
	a.reason, a.status, a.approved_by, a.approved_at, a.cancel_reason, a.created_at, a.updated_at`

func scanAdvance(row pgx.Row) (advance.SalaryAdvance, error) {
	var a advance.SalaryAdvance
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.Amount, &a.DeductionMethod, &a.InstallmentAmount,
		&a.TotalDeducted, &a.RemainingBalance, &a.ExpectedDeductionMonth, &a.ExpectedDeductionYear,
		&a.Reason, &a.Status, &a.ApprovedBy, &a.ApprovedAt, &a.CancelReason, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements advance.AdvanceRepository. A new advance starts with the
// whole amount remaining.
func (r *advanceRepositoryImpl) Create(ctx context.Context, a advance.SalaryAdvance) (advance.SalaryAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_advances (
			company_id, employee_id, amount, deduction_method, installment_amount,
			total_deducted, remaining_balance, expected_deduction_month, expected_deduction_year,
			reason, status
		) VALUES ($1, $2, $3, $4, $5, 0, $3, $6, $7, $8, $9)
		RETURNING ` + stripAlias(advanceColumns, "a")

	created, err := scanAdvance(q.QueryRow(ctx, query,
		a.CompanyID, a.EmployeeID, a.Amount, a.DeductionMethod, a.InstallmentAmount,
		a.ExpectedDeductionMonth, a.ExpectedDeductionYear, a.Reason, advance.StatusPending,
	))
	if err != nil {
		return advance.SalaryAdvance{}, fmt.Errorf("failed to create salary advance: %w", err)
	}
	return created, nil
}

// GetByID implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (advance.SalaryAdvance, error) {
	return r.get(ctx, id, companyID, false)
}

// GetByIDForUpdate implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64, companyID int64) (advance.SalaryAdvance, error) {
	return r.get(ctx, id, companyID, true)
}

func (r *advanceRepositoryImpl) get(ctx context.Context, id int64, companyID int64, forUpdate bool) (advance.SalaryAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `, e.full_name, e.employee_code
		FROM salary_advances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2`
	if forUpdate {
		query += " FOR UPDATE OF a"
	}

	var a advance.SalaryAdvance
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.Amount, &a.DeductionMethod, &a.InstallmentAmount,
		&a.TotalDeducted, &a.RemainingBalance, &a.ExpectedDeductionMonth, &a.ExpectedDeductionYear,
		&a.Reason, &a.Status, &a.ApprovedBy, &a.ApprovedAt, &a.CancelReason, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName, &a.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.SalaryAdvance{}, advance.ErrAdvanceNotFound
		}
		return advance.SalaryAdvance{}, fmt.Errorf("failed to get salary advance %d: %w", id, err)
	}
	return a, nil
}

// Update implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) Update(ctx context.Context, a advance.SalaryAdvance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_advances
		SET total_deducted = $1, remaining_balance = $2, status = $3,
			approved_by = $4, approved_at = $5, cancel_reason = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		a.TotalDeducted, a.RemainingBalance, a.Status,
		a.ApprovedBy, a.ApprovedAt, a.CancelReason, a.ID, a.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.ErrAdvanceNotFound
		}
		return fmt.Errorf("failed to update salary advance %d: %w", a.ID, err)
	}
	return nil
}

// List implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) List(ctx context.Context, filter advance.Filter, companyID int64) ([]advance.SalaryAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `, e.full_name, e.employee_code
		FROM salary_advances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.company_id = $1`
	args := []any{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND a.employee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	query += " ORDER BY a.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []advance.SalaryAdvance
	for rows.Next() {
		var a advance.SalaryAdvance
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.EmployeeID, &a.Amount, &a.DeductionMethod, &a.InstallmentAmount,
			&a.TotalDeducted, &a.RemainingBalance, &a.ExpectedDeductionMonth, &a.ExpectedDeductionYear,
			&a.Reason, &a.Status, &a.ApprovedBy, &a.ApprovedAt, &a.CancelReason, &a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName, &a.EmployeeCode,
		); err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return advances, nil
}

// OutstandingByEmployee implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) OutstandingByEmployee(ctx context.Context, employeeID int64, companyID int64) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(remaining_balance), 0)
		FROM salary_advances
		WHERE employee_id = $1 AND company_id = $2 AND status = $3 AND remaining_balance > 0
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, companyID, advance.StatusActive).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ListOutstandingByEmployee implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) ListOutstandingByEmployee(ctx context.Context, employeeID int64, companyID int64) ([]advance.SalaryAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `
		FROM salary_advances a
		WHERE a.employee_id = $1 AND a.company_id = $2 AND a.status = $3 AND a.remaining_balance > 0
		ORDER BY a.created_at
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, advance.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advances []advance.SalaryAdvance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return advances, nil
}

// CreateDeduction implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) CreateDeduction(ctx context.Context, d advance.AdvanceDeduction) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO advance_deductions (advance_id, amount, source, reference_id)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, d.AdvanceID, d.Amount, d.Source, d.ReferenceID); err != nil {
		return fmt.Errorf("failed to create advance deduction: %w", err)
	}
	return nil
}

// ListDeductions implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) ListDeductions(ctx context.Context, advanceID int64) ([]advance.AdvanceDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, advance_id, amount, source, reference_id, created_at
		FROM advance_deductions
		WHERE advance_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, advanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deductions []advance.AdvanceDeduction
	for rows.Next() {
		var d advance.AdvanceDeduction
		if err := rows.Scan(&d.ID, &d.AdvanceID, &d.Amount, &d.Source, &d.ReferenceID, &d.CreatedAt); err != nil {
			return nil, err
		}
		deductions = append(deductions, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return deductions, nil
}
