package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/claim"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type claimRepositoryImpl struct {
	db *database.DB
}

func NewClaimRepository(db *database.DB) claim.ClaimRepository {
	return &claimRepositoryImpl{db: db}
}

const claimColumns = `
	c.id, c.company_id, c.employee_id, c.claim_date, c.category, c.amount,
	c.description, c.receipt_path, c.receipt_hash, c.status,
	c.ai_amount, c.ai_merchant, c.ai_date, c.ai_confidence, c.ai_currency,
	c.auto_approved, c.amount_capped, c.linked_payroll_item_id,
	c.approved_by, c.approved_at, c.reject_reason, c.created_at, c.updated_at`

func scanClaim(row pgx.Row) (claim.Claim, error) {
	var cl claim.Claim
	err := row.Scan(
		&cl.ID, &cl.CompanyID, &cl.EmployeeID, &cl.ClaimDate, &cl.Category, &cl.Amount,
		&cl.Description, &cl.ReceiptPath, &cl.ReceiptHash, &cl.Status,
		&cl.AIAmount, &cl.AIMerchant, &cl.AIDate, &cl.AIConfidence, &cl.AICurrency,
		&cl.AutoApproved, &cl.AmountCapped, &cl.LinkedPayrollItemID,
		&cl.ApprovedBy, &cl.ApprovedAt, &cl.RejectReason, &cl.CreatedAt, &cl.UpdatedAt,
	)
	return cl, err
}

func scanClaimJoined(row pgx.Row) (claim.Claim, error) {
	var cl claim.Claim
	err := row.Scan(
		&cl.ID, &cl.CompanyID, &cl.EmployeeID, &cl.ClaimDate, &cl.Category, &cl.Amount,
		&cl.Description, &cl.ReceiptPath, &cl.ReceiptHash, &cl.Status,
		&cl.AIAmount, &cl.AIMerchant, &cl.AIDate, &cl.AIConfidence, &cl.AICurrency,
		&cl.AutoApproved, &cl.AmountCapped, &cl.LinkedPayrollItemID,
		&cl.ApprovedBy, &cl.ApprovedAt, &cl.RejectReason, &cl.CreatedAt, &cl.UpdatedAt,
		&cl.EmployeeName, &cl.EmployeeCode,
	)
	return cl, err
}

// Create implements claim.ClaimRepository.
func (r *claimRepositoryImpl) Create(ctx context.Context, c claim.Claim) (claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO claims (
			company_id, employee_id, claim_date, category, amount, description,
			receipt_path, receipt_hash, status,
			ai_amount, ai_merchant, ai_date, ai_confidence, ai_currency,
			auto_approved, amount_capped, approved_by, approved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + stripAlias(claimColumns, "c")

	created, err := scanClaim(q.QueryRow(ctx, query,
		c.CompanyID, c.EmployeeID, c.ClaimDate, c.Category, c.Amount, c.Description,
		c.ReceiptPath, c.ReceiptHash, c.Status,
		c.AIAmount, c.AIMerchant, c.AIDate, c.AIConfidence, c.AICurrency,
		c.AutoApproved, c.AmountCapped, c.ApprovedBy, c.ApprovedAt,
	))
	if err != nil {
		return claim.Claim{}, fmt.Errorf("failed to create claim: %w", err)
	}
	return created, nil
}

// GetByID implements claim.ClaimRepository.
func (r *claimRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + claimColumns + `, e.full_name, e.employee_code
		FROM claims c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.id = $1 AND c.company_id = $2
	`

	cl, err := scanClaimJoined(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claim.Claim{}, claim.ErrClaimNotFound
		}
		return claim.Claim{}, fmt.Errorf("failed to get claim %d: %w", id, err)
	}
	return cl, nil
}

// Update implements claim.ClaimRepository.
func (r *claimRepositoryImpl) Update(ctx context.Context, c claim.Claim) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE claims SET
			claim_date = $1, category = $2, amount = $3, description = $4,
			status = $5, auto_approved = $6, amount_capped = $7,
			approved_by = $8, approved_at = $9, reject_reason = $10,
			linked_payroll_item_id = $11, updated_at = NOW()
		WHERE id = $12 AND company_id = $13
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		c.ClaimDate, c.Category, c.Amount, c.Description,
		c.Status, c.AutoApproved, c.AmountCapped,
		c.ApprovedBy, c.ApprovedAt, c.RejectReason,
		c.LinkedPayrollItemID, c.ID, c.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claim.ErrClaimNotFound
		}
		return fmt.Errorf("failed to update claim %d: %w", c.ID, err)
	}
	return nil
}

// List implements claim.ClaimRepository.
func (r *claimRepositoryImpl) List(ctx context.Context, filter claim.Filter, companyID int64) ([]claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + claimColumns + `, e.full_name, e.employee_code
		FROM claims c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.company_id = $1`
	args := []any{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND c.employee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(" AND c.category = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND c.claim_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND c.claim_date <= $%d", len(args))
	}
	query += " ORDER BY c.claim_date DESC, c.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []claim.Claim
	for rows.Next() {
		cl, err := scanClaimJoined(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, cl)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return claims, nil
}

// FindByReceiptHash implements claim.ClaimRepository.
func (r *claimRepositoryImpl) FindByReceiptHash(ctx context.Context, hash string, companyID int64) (*claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + claimColumns + `, e.full_name, e.employee_code
		FROM claims c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.receipt_hash = $1 AND c.company_id = $2 AND c.status <> $3
		ORDER BY c.id
		LIMIT 1
	`

	cl, err := scanClaimJoined(q.QueryRow(ctx, query, hash, companyID, claim.StatusRejected))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find claim by receipt hash: %w", err)
	}
	return &cl, nil
}

// FindSimilar implements claim.ClaimRepository.
func (r *claimRepositoryImpl) FindSimilar(ctx context.Context, merchant, date string, amount string, companyID int64) (*claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + claimColumns + `, e.full_name, e.employee_code
		FROM claims c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.company_id = $1 AND c.status <> $2
			AND LOWER(c.ai_merchant) = LOWER($3)
			AND c.ai_date = $4
			AND c.ai_amount = $5::numeric
		ORDER BY c.id
		LIMIT 1
	`

	cl, err := scanClaimJoined(q.QueryRow(ctx, query, companyID, claim.StatusRejected, merchant, date, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find similar claim: %w", err)
	}
	return &cl, nil
}

// ListApprovedUnlinked implements claim.ClaimRepository.
func (r *claimRepositoryImpl) ListApprovedUnlinked(ctx context.Context, employeeID int64, companyID int64) ([]claim.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + claimColumns + `, e.full_name, e.employee_code
		FROM claims c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.company_id = $1 AND c.status = $2 AND c.linked_payroll_item_id IS NULL`
	args := []any{companyID, claim.StatusApproved}

	if employeeID != 0 {
		args = append(args, employeeID)
		query += fmt.Sprintf(" AND c.employee_id = $%d", len(args))
	}
	query += " ORDER BY c.claim_date"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []claim.Claim
	for rows.Next() {
		cl, err := scanClaimJoined(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, cl)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return claims, nil
}

// LinkToPayrollItem implements claim.ClaimRepository.
func (r *claimRepositoryImpl) LinkToPayrollItem(ctx context.Context, ids []int64, payrollItemID int64, companyID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE claims
		SET linked_payroll_item_id = $1, status = $2, updated_at = NOW()
		WHERE id = ANY($3) AND company_id = $4 AND status = $5 AND linked_payroll_item_id IS NULL
	`

	tag, err := q.Exec(ctx, query, payrollItemID, claim.StatusPaid, ids, companyID, claim.StatusApproved)
	if err != nil {
		return 0, fmt.Errorf("failed to link claims to payroll item %d: %w", payrollItemID, err)
	}
	return tag.RowsAffected(), nil
}

// PendingCount implements claim.ClaimRepository.
func (r *claimRepositoryImpl) PendingCount(ctx context.Context, companyID int64) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM claims WHERE company_id = $1 AND status = $2`,
		companyID, claim.StatusPending,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Summary implements claim.ClaimRepository.
func (r *claimRepositoryImpl) Summary(ctx context.Context, filter claim.Filter, companyID int64) ([]claim.SummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0)
		FROM claims
		WHERE company_id = $1`
	args := []any{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND claim_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND claim_date <= $%d", len(args))
	}
	query += " GROUP BY category ORDER BY category"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []claim.SummaryRow
	for rows.Next() {
		var row claim.SummaryRow
		if err := rows.Scan(&row.Category, &row.Count, &row.TotalAmount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
