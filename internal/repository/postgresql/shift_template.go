package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftTemplateRepositoryImpl struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) schedule.ShiftTemplateRepository {
	return &shiftTemplateRepositoryImpl{db: db}
}

const shiftTemplateColumns = `
	id, company_id, name, code, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	color, is_off, is_active, created_at, updated_at`

func scanShiftTemplate(row pgx.Row) (schedule.ShiftTemplate, error) {
	var t schedule.ShiftTemplate
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.Code, &t.StartTime, &t.EndTime,
		&t.Color, &t.IsOff, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepositoryImpl) Create(ctx context.Context, t schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_templates (company_id, name, code, start_time, end_time, color, is_off, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING ` + shiftTemplateColumns

	created, err := scanShiftTemplate(q.QueryRow(ctx, query,
		t.CompanyID, t.Name, t.Code, t.StartTime, t.EndTime, t.Color, t.IsOff,
	))
	if err != nil {
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to create shift template: %w", err)
	}
	return created, nil
}

// GetByID implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTemplateColumns + ` FROM shift_templates WHERE id = $1 AND company_id = $2`

	t, err := scanShiftTemplate(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ShiftTemplate{}, schedule.ErrTemplateNotFound
		}
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to get shift template %d: %w", id, err)
	}
	return t, nil
}

// List implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepositoryImpl) List(ctx context.Context, companyID int64, activeOnly bool) ([]schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTemplateColumns + ` FROM shift_templates WHERE company_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []schedule.ShiftTemplate
	for rows.Next() {
		t, err := scanShiftTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

// Update implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepositoryImpl) Update(ctx context.Context, t schedule.ShiftTemplate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates
		SET name = $1, code = $2, start_time = $3, end_time = $4, color = $5, is_off = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query, t.Name, t.Code, t.StartTime, t.EndTime, t.Color, t.IsOff, t.ID, t.CompanyID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrTemplateNotFound
		}
		return fmt.Errorf("failed to update shift template %d: %w", t.ID, err)
	}
	return nil
}

// Deactivate implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepositoryImpl) Deactivate(ctx context.Context, id int64, companyID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query, id, companyID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrTemplateNotFound
		}
		return fmt.Errorf("failed to deactivate shift template %d: %w", id, err)
	}
	return nil
}

type extraShiftRepositoryImpl struct {
	db *database.DB
}

func NewExtraShiftRepository(db *database.DB) schedule.ExtraShiftRepository {
	return &extraShiftRepositoryImpl{db: db}
}

const extraShiftColumns = `
	r.id, r.company_id, r.employee_id, r.shift_date, r.shift_template_id, r.reason,
	r.status, r.decided_by, r.decided_at, r.created_at, r.updated_at`

// Create implements schedule.ExtraShiftRepository.
func (r *extraShiftRepositoryImpl) Create(ctx context.Context, req schedule.ExtraShiftRequest) (schedule.ExtraShiftRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO extra_shift_requests (company_id, employee_id, shift_date, shift_template_id, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + stripAlias(extraShiftColumns, "r")

	var created schedule.ExtraShiftRequest
	err := q.QueryRow(ctx, query,
		req.CompanyID, req.EmployeeID, req.ShiftDate, req.ShiftTemplateID, req.Reason, schedule.ExtraShiftPending,
	).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.ShiftDate, &created.ShiftTemplateID,
		&created.Reason, &created.Status, &created.DecidedBy, &created.DecidedAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return schedule.ExtraShiftRequest{}, fmt.Errorf("failed to create extra shift request: %w", err)
	}
	return created, nil
}

// GetByID implements schedule.ExtraShiftRepository.
func (r *extraShiftRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (schedule.ExtraShiftRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + extraShiftColumns + `, e.full_name, t.code
		FROM extra_shift_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN shift_templates t ON t.id = r.shift_template_id
		WHERE r.id = $1 AND r.company_id = $2
	`

	var req schedule.ExtraShiftRequest
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&req.ID, &req.CompanyID, &req.EmployeeID, &req.ShiftDate, &req.ShiftTemplateID,
		&req.Reason, &req.Status, &req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.TemplateCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ExtraShiftRequest{}, schedule.ErrExtraShiftNotFound
		}
		return schedule.ExtraShiftRequest{}, fmt.Errorf("failed to get extra shift request %d: %w", id, err)
	}
	return req, nil
}

// List implements schedule.ExtraShiftRepository.
func (r *extraShiftRepositoryImpl) List(ctx context.Context, companyID int64, status *string) ([]schedule.ExtraShiftRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + extraShiftColumns + `, e.full_name, t.code
		FROM extra_shift_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN shift_templates t ON t.id = r.shift_template_id
		WHERE r.company_id = $1`
	args := []any{companyID}

	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	query += " ORDER BY r.shift_date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []schedule.ExtraShiftRequest
	for rows.Next() {
		var req schedule.ExtraShiftRequest
		if err := rows.Scan(
			&req.ID, &req.CompanyID, &req.EmployeeID, &req.ShiftDate, &req.ShiftTemplateID,
			&req.Reason, &req.Status, &req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName, &req.TemplateCode,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// Update implements schedule.ExtraShiftRepository.
func (r *extraShiftRepositoryImpl) Update(ctx context.Context, req schedule.ExtraShiftRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE extra_shift_requests
		SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query, req.Status, req.DecidedBy, req.DecidedAt, req.ID, req.CompanyID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrExtraShiftNotFound
		}
		return fmt.Errorf("failed to update extra shift request %d: %w", req.ID, err)
	}
	return nil
}
