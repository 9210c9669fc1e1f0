package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/commission"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salesRepositoryImpl struct {
	db *database.DB
}

func NewSalesRepository(db *database.DB) commission.SalesRepository {
	return &salesRepositoryImpl{db: db}
}

const salesColumns = `
	s.id, s.company_id, s.outlet_id, s.department_id, s.period_month, s.period_year,
	s.total_sales, s.commission_rate, s.commission_pool, s.total_effective_shifts,
	s.per_shift_value, s.status, s.finalized_by, s.finalized_at, s.created_at, s.updated_at`

func scanSales(row pgx.Row) (commission.Sales, error) {
	var s commission.Sales
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.OutletID, &s.DepartmentID, &s.PeriodMonth, &s.PeriodYear,
		&s.TotalSales, &s.CommissionRate, &s.CommissionPool, &s.TotalEffectiveShifts,
		&s.PerShiftValue, &s.Status, &s.FinalizedBy, &s.FinalizedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Upsert implements commission.SalesRepository.
func (r *salesRepositoryImpl) Upsert(ctx context.Context, s commission.Sales) (commission.Sales, error) {
	q := GetQuerier(ctx, r.db)

	// Two partial unique indexes back this: one on (outlet_id, period_month,
	// period_year) and one on (department_id, period_month, period_year).
	var conflict string
	if s.OutletID != nil {
		conflict = "(outlet_id, period_month, period_year) WHERE outlet_id IS NOT NULL"
	} else {
		conflict = "(department_id, period_month, period_year) WHERE department_id IS NOT NULL"
	}

	query := `
		INSERT INTO commission_sales (
			company_id, outlet_id, department_id, period_month, period_year,
			total_sales, commission_rate, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ` + conflict + ` DO UPDATE SET
			total_sales = EXCLUDED.total_sales,
			commission_rate = EXCLUDED.commission_rate,
			updated_at = NOW()
		RETURNING ` + stripAlias(salesColumns, "s")

	upserted, err := scanSales(q.QueryRow(ctx, query,
		s.CompanyID, s.OutletID, s.DepartmentID, s.PeriodMonth, s.PeriodYear,
		s.TotalSales, s.CommissionRate, commission.StatusDraft,
	))
	if err != nil {
		return commission.Sales{}, fmt.Errorf("failed to upsert sales: %w", err)
	}
	return upserted, nil
}

// GetByID implements commission.SalesRepository.
func (r *salesRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (commission.Sales, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salesColumns + `, o.name, d.name
		FROM commission_sales s
		LEFT JOIN outlets o ON o.id = s.outlet_id
		LEFT JOIN departments d ON d.id = s.department_id
		WHERE s.id = $1 AND s.company_id = $2
	`

	var s commission.Sales
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.OutletID, &s.DepartmentID, &s.PeriodMonth, &s.PeriodYear,
		&s.TotalSales, &s.CommissionRate, &s.CommissionPool, &s.TotalEffectiveShifts,
		&s.PerShiftValue, &s.Status, &s.FinalizedBy, &s.FinalizedAt, &s.CreatedAt, &s.UpdatedAt,
		&s.OutletName, &s.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commission.Sales{}, commission.ErrSalesNotFound
		}
		return commission.Sales{}, fmt.Errorf("failed to get sales %d: %w", id, err)
	}
	return s, nil
}

// List implements commission.SalesRepository.
func (r *salesRepositoryImpl) List(ctx context.Context, filter commission.SalesFilter, companyID int64) ([]commission.Sales, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salesColumns + `, o.name, d.name
		FROM commission_sales s
		LEFT JOIN outlets o ON o.id = s.outlet_id
		LEFT JOIN departments d ON d.id = s.department_id
		WHERE s.company_id = $1`
	args := []any{companyID}

	if filter.PeriodMonth != nil {
		args = append(args, *filter.PeriodMonth)
		query += fmt.Sprintf(" AND s.period_month = $%d", len(args))
	}
	if filter.PeriodYear != nil {
		args = append(args, *filter.PeriodYear)
		query += fmt.Sprintf(" AND s.period_year = $%d", len(args))
	}
	if filter.OutletID != nil {
		args = append(args, *filter.OutletID)
		query += fmt.Sprintf(" AND s.outlet_id = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND s.department_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	query += " ORDER BY s.period_year DESC, s.period_month DESC, o.name, d.name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []commission.Sales
	for rows.Next() {
		var s commission.Sales
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.OutletID, &s.DepartmentID, &s.PeriodMonth, &s.PeriodYear,
			&s.TotalSales, &s.CommissionRate, &s.CommissionPool, &s.TotalEffectiveShifts,
			&s.PerShiftValue, &s.Status, &s.FinalizedBy, &s.FinalizedAt, &s.CreatedAt, &s.UpdatedAt,
			&s.OutletName, &s.DepartmentName,
		); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

// Update implements commission.SalesRepository.
func (r *salesRepositoryImpl) Update(ctx context.Context, s commission.Sales) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE commission_sales SET
			total_sales = $1, commission_rate = $2, commission_pool = $3,
			total_effective_shifts = $4, per_shift_value = $5, status = $6,
			finalized_by = $7, finalized_at = $8, updated_at = NOW()
		WHERE id = $9 AND company_id = $10
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		s.TotalSales, s.CommissionRate, s.CommissionPool,
		s.TotalEffectiveShifts, s.PerShiftValue, s.Status,
		s.FinalizedBy, s.FinalizedAt, s.ID, s.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commission.ErrSalesNotFound
		}
		return fmt.Errorf("failed to update sales %d: %w", s.ID, err)
	}
	return nil
}

// Delete implements commission.SalesRepository.
func (r *salesRepositoryImpl) Delete(ctx context.Context, id int64, companyID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM commission_sales WHERE id = $1 AND company_id = $2 RETURNING id`

	var deletedID int64
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commission.ErrSalesNotFound
		}
		return fmt.Errorf("failed to delete sales %d: %w", id, err)
	}
	return nil
}

type payoutRepositoryImpl struct {
	db *database.DB
}

func NewPayoutRepository(db *database.DB) commission.PayoutRepository {
	return &payoutRepositoryImpl{db: db}
}

// ReplaceForSales implements commission.PayoutRepository.
func (r *payoutRepositoryImpl) ReplaceForSales(ctx context.Context, salesID int64, payouts []commission.Payout) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM commission_payouts WHERE sales_id = $1`, salesID); err != nil {
		return fmt.Errorf("failed to clear payouts for sales %d: %w", salesID, err)
	}

	query := `
		INSERT INTO commission_payouts (sales_id, employee_id, normal_shifts, ph_shifts, effective_shifts, commission_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, p := range payouts {
		if _, err := q.Exec(ctx, query,
			salesID, p.EmployeeID, p.NormalShifts, p.PHShifts, p.EffectiveShifts, p.CommissionAmount,
		); err != nil {
			return fmt.Errorf("failed to insert payout for employee %d: %w", p.EmployeeID, err)
		}
	}
	return nil
}

// ListBySales implements commission.PayoutRepository.
func (r *payoutRepositoryImpl) ListBySales(ctx context.Context, salesID int64) ([]commission.Payout, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.sales_id, p.employee_id, p.normal_shifts, p.ph_shifts,
			p.effective_shifts, p.commission_amount, p.created_at,
			e.full_name, e.employee_code
		FROM commission_payouts p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.sales_id = $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, salesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []commission.Payout
	for rows.Next() {
		var p commission.Payout
		if err := rows.Scan(
			&p.ID, &p.SalesID, &p.EmployeeID, &p.NormalShifts, &p.PHShifts,
			&p.EffectiveShifts, &p.CommissionAmount, &p.CreatedAt,
			&p.EmployeeName, &p.EmployeeCode,
		); err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return payouts, nil
}

// CountBySales implements commission.PayoutRepository.
func (r *payoutRepositoryImpl) CountBySales(ctx context.Context, salesID int64) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM commission_payouts WHERE sales_id = $1`, salesID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListByEmployee implements commission.PayoutRepository.
func (r *payoutRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64, year *int, companyID int64) ([]commission.Payout, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.sales_id, p.employee_id, p.normal_shifts, p.ph_shifts,
			p.effective_shifts, p.commission_amount, p.created_at,
			s.period_month, s.period_year
		FROM commission_payouts p
		JOIN commission_sales s ON s.id = p.sales_id
		WHERE p.employee_id = $1 AND s.company_id = $2`
	args := []any{employeeID, companyID}

	if year != nil {
		args = append(args, *year)
		query += fmt.Sprintf(" AND s.period_year = $%d", len(args))
	}
	query += " ORDER BY s.period_year DESC, s.period_month DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []commission.Payout
	for rows.Next() {
		var p commission.Payout
		if err := rows.Scan(
			&p.ID, &p.SalesID, &p.EmployeeID, &p.NormalShifts, &p.PHShifts,
			&p.EffectiveShifts, &p.CommissionAmount, &p.CreatedAt,
			&p.PeriodMonth, &p.PeriodYear,
		); err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return payouts, nil
}
