package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/resignation"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type resignationRepositoryImpl struct {
	db *database.DB
}

func NewResignationRepository(db *database.DB) resignation.ResignationRepository {
	return &resignationRepositoryImpl{db: db}
}

const resignationColumns = `
	r.id, r.company_id, r.employee_id, r.notice_date, r.last_working_day, r.reason,
	r.status, r.required_notice_days, r.actual_notice_days, r.notice_waived, r.clearance_completed,
	r.settlement_breakdown, r.settlement_net, r.settlement_date, r.processed_by,
	r.approved_by, r.approved_at, r.reject_reason, r.created_at, r.updated_at`

func scanResignation(row pgx.Row) (resignation.Resignation, error) {
	var res resignation.Resignation
	err := row.Scan(
		&res.ID, &res.CompanyID, &res.EmployeeID, &res.NoticeDate, &res.LastWorkingDay, &res.Reason,
		&res.Status, &res.RequiredNoticeDays, &res.ActualNoticeDays, &res.NoticeWaived, &res.ClearanceCompleted,
		&res.SettlementBreakdown, &res.SettlementNet, &res.SettlementDate, &res.ProcessedBy,
		&res.ApprovedBy, &res.ApprovedAt, &res.RejectReason, &res.CreatedAt, &res.UpdatedAt,
	)
	return res, err
}

func scanResignationJoined(row pgx.Row) (resignation.Resignation, error) {
	var res resignation.Resignation
	err := row.Scan(
		&res.ID, &res.CompanyID, &res.EmployeeID, &res.NoticeDate, &res.LastWorkingDay, &res.Reason,
		&res.Status, &res.RequiredNoticeDays, &res.ActualNoticeDays, &res.NoticeWaived, &res.ClearanceCompleted,
		&res.SettlementBreakdown, &res.SettlementNet, &res.SettlementDate, &res.ProcessedBy,
		&res.ApprovedBy, &res.ApprovedAt, &res.RejectReason, &res.CreatedAt, &res.UpdatedAt,
		&res.EmployeeName, &res.EmployeeCode, &res.OutletName,
	)
	return res, err
}

const resignationJoins = `
	FROM resignations r
	JOIN employees e ON e.id = r.employee_id
	LEFT JOIN outlets o ON o.id = e.outlet_id`

const resignationJoinColumns = resignationColumns + `, e.full_name, e.employee_code, o.name`

// Create implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) Create(ctx context.Context, res resignation.Resignation) (resignation.Resignation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO resignations (
			company_id, employee_id, notice_date, last_working_day, reason,
			status, required_notice_days, actual_notice_days, notice_waived
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + stripAlias(resignationColumns, "r")

	created, err := scanResignation(q.QueryRow(ctx, query,
		res.CompanyID, res.EmployeeID, res.NoticeDate, res.LastWorkingDay, res.Reason,
		res.Status, res.RequiredNoticeDays, res.ActualNoticeDays, res.NoticeWaived,
	))
	if err != nil {
		return resignation.Resignation{}, fmt.Errorf("failed to create resignation: %w", err)
	}
	return created, nil
}

// GetByID implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (resignation.Resignation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + resignationJoinColumns + resignationJoins + `
		WHERE r.id = $1 AND r.company_id = $2`

	res, err := scanResignationJoined(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resignation.Resignation{}, resignation.ErrResignationNotFound
		}
		return resignation.Resignation{}, fmt.Errorf("failed to get resignation %d: %w", id, err)
	}
	return res, nil
}

// GetActiveByEmployee implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) GetActiveByEmployee(ctx context.Context, employeeID int64, companyID int64) (*resignation.Resignation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + resignationColumns + `
		FROM resignations r
		WHERE r.employee_id = $1 AND r.company_id = $2 AND r.status = ANY($3)
		ORDER BY r.id DESC
		LIMIT 1`

	res, err := scanResignation(q.QueryRow(ctx, query, employeeID, companyID, resignation.ActiveStatuses))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active resignation for employee %d: %w", employeeID, err)
	}
	return &res, nil
}

// Update implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) Update(ctx context.Context, res resignation.Resignation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE resignations SET
			notice_date = $1, last_working_day = $2, reason = $3, status = $4,
			required_notice_days = $5, actual_notice_days = $6, notice_waived = $7,
			clearance_completed = $8, settlement_breakdown = $9, settlement_net = $10,
			settlement_date = $11, processed_by = $12,
			approved_by = $13, approved_at = $14, reject_reason = $15, updated_at = NOW()
		WHERE id = $16 AND company_id = $17
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		res.NoticeDate, res.LastWorkingDay, res.Reason, res.Status,
		res.RequiredNoticeDays, res.ActualNoticeDays, res.NoticeWaived,
		res.ClearanceCompleted, res.SettlementBreakdown, res.SettlementNet,
		res.SettlementDate, res.ProcessedBy,
		res.ApprovedBy, res.ApprovedAt, res.RejectReason, res.ID, res.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resignation.ErrResignationNotFound
		}
		return fmt.Errorf("failed to update resignation %d: %w", res.ID, err)
	}
	return nil
}

// List implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) List(ctx context.Context, filter resignation.Filter, companyID int64) ([]resignation.Resignation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + resignationJoinColumns + resignationJoins + `
		WHERE r.company_id = $1`
	args := []any{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.OutletID != nil {
		args = append(args, *filter.OutletID)
		query += fmt.Sprintf(" AND e.outlet_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND r.last_working_day >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND r.last_working_day <= $%d", len(args))
	}
	query += " ORDER BY r.last_working_day DESC, r.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resignations []resignation.Resignation
	for rows.Next() {
		res, err := scanResignationJoined(rows)
		if err != nil {
			return nil, err
		}
		resignations = append(resignations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return resignations, nil
}

// ListDuePastLastDay implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) ListDuePastLastDay(ctx context.Context, before time.Time) ([]resignation.Resignation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + resignationColumns + `
		FROM resignations r
		WHERE r.status = $1 AND r.last_working_day < $2
		ORDER BY r.company_id, r.id`

	rows, err := q.Query(ctx, query, resignation.StatusClearing, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resignations []resignation.Resignation
	for rows.Next() {
		res, err := scanResignation(rows)
		if err != nil {
			return nil, err
		}
		resignations = append(resignations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return resignations, nil
}

type clearanceRepositoryImpl struct {
	db *database.DB
}

func NewClearanceRepository(db *database.DB) resignation.ClearanceRepository {
	return &clearanceRepositoryImpl{db: db}
}

// BulkCreate implements resignation.ClearanceRepository.
func (r *clearanceRepositoryImpl) BulkCreate(ctx context.Context, items []resignation.ClearanceItem) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clearance_items (resignation_id, label, sort_order)
		VALUES ($1, $2, $3)
	`
	for _, item := range items {
		if _, err := q.Exec(ctx, query, item.ResignationID, item.Label, item.SortOrder); err != nil {
			return fmt.Errorf("failed to create clearance item %q: %w", item.Label, err)
		}
	}
	return nil
}

// DeleteByResignation implements resignation.ClearanceRepository.
func (r *clearanceRepositoryImpl) DeleteByResignation(ctx context.Context, resignationID int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM clearance_items WHERE resignation_id = $1`, resignationID); err != nil {
		return fmt.Errorf("failed to delete clearance items for resignation %d: %w", resignationID, err)
	}
	return nil
}

// ListByResignation implements resignation.ClearanceRepository.
func (r *clearanceRepositoryImpl) ListByResignation(ctx context.Context, resignationID int64) ([]resignation.ClearanceItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, resignation_id, label, is_completed, completed_by, completed_at, remark, sort_order
		FROM clearance_items
		WHERE resignation_id = $1
		ORDER BY sort_order, id
	`

	rows, err := q.Query(ctx, query, resignationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []resignation.ClearanceItem
	for rows.Next() {
		var item resignation.ClearanceItem
		if err := rows.Scan(
			&item.ID, &item.ResignationID, &item.Label, &item.IsCompleted,
			&item.CompletedBy, &item.CompletedAt, &item.Remark, &item.SortOrder,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem implements resignation.ClearanceRepository.
func (r *clearanceRepositoryImpl) GetItem(ctx context.Context, itemID int64, resignationID int64) (resignation.ClearanceItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, resignation_id, label, is_completed, completed_by, completed_at, remark, sort_order
		FROM clearance_items
		WHERE id = $1 AND resignation_id = $2
	`

	var item resignation.ClearanceItem
	err := q.QueryRow(ctx, query, itemID, resignationID).Scan(
		&item.ID, &item.ResignationID, &item.Label, &item.IsCompleted,
		&item.CompletedBy, &item.CompletedAt, &item.Remark, &item.SortOrder,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resignation.ClearanceItem{}, resignation.ErrClearanceNotFound
		}
		return resignation.ClearanceItem{}, fmt.Errorf("failed to get clearance item %d: %w", itemID, err)
	}
	return item, nil
}

// UpdateItem implements resignation.ClearanceRepository.
func (r *clearanceRepositoryImpl) UpdateItem(ctx context.Context, item resignation.ClearanceItem) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clearance_items
		SET is_completed = $1, completed_by = $2, completed_at = $3, remark = $4
		WHERE id = $5 AND resignation_id = $6
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		item.IsCompleted, item.CompletedBy, item.CompletedAt, item.Remark, item.ID, item.ResignationID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resignation.ErrClearanceNotFound
		}
		return fmt.Errorf("failed to update clearance item %d: %w", item.ID, err)
	}
	return nil
}

// AllCompleted implements resignation.ClearanceRepository.
func (r *clearanceRepositoryImpl) AllCompleted(ctx context.Context, resignationID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) > 0 AND COUNT(*) FILTER (WHERE is_completed = FALSE) = 0
		FROM clearance_items
		WHERE resignation_id = $1
	`

	var done bool
	if err := q.QueryRow(ctx, query, resignationID).Scan(&done); err != nil {
		return false, err
	}
	return done, nil
}

// ListTemplates implements resignation.ClearanceRepository.
func (r *clearanceRepositoryImpl) ListTemplates(ctx context.Context, companyID int64) ([]resignation.ClearanceTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, label, sort_order, is_active
		FROM clearance_templates
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY sort_order, id
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []resignation.ClearanceTemplate
	for rows.Next() {
		var t resignation.ClearanceTemplate
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Label, &t.SortOrder, &t.IsActive); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}
