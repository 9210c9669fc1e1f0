package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// Times are stored as TIME columns; to_char keeps the wire shape at "HH:MM".
const scheduleColumns = `
	s.id, s.company_id, s.employee_id, s.outlet_id, s.department_id, s.schedule_date,
	s.shift_template_id, to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
	s.is_public_holiday, s.status, s.created_by, s.updated_by, s.created_at, s.updated_at`

const scheduleJoins = `
	FROM schedules s
	JOIN employees e ON e.id = s.employee_id
	LEFT JOIN positions p ON p.id = e.position_id
	LEFT JOIN shift_templates t ON t.id = s.shift_template_id`

const scheduleJoinColumns = scheduleColumns + `,
	e.full_name, e.employee_code, p.role, t.code, t.name, t.color, t.is_off`

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var s schedule.Schedule
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.OutletID, &s.DepartmentID, &s.ScheduleDate,
		&s.ShiftTemplateID, &s.StartTime, &s.EndTime,
		&s.IsPublicHoliday, &s.Status, &s.CreatedBy, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func scanScheduleJoined(row pgx.Row) (schedule.Schedule, error) {
	var s schedule.Schedule
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.OutletID, &s.DepartmentID, &s.ScheduleDate,
		&s.ShiftTemplateID, &s.StartTime, &s.EndTime,
		&s.IsPublicHoliday, &s.Status, &s.CreatedBy, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeCode, &s.PositionRole,
		&s.TemplateCode, &s.TemplateName, &s.TemplateColor, &s.TemplateIsOff,
	)
	return s, err
}

const scheduleReturning = `
	RETURNING id, company_id, employee_id, outlet_id, department_id, schedule_date,
		shift_template_id, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		is_public_holiday, status, created_by, updated_by, created_at, updated_at`

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (
			company_id, employee_id, outlet_id, department_id, schedule_date,
			shift_template_id, start_time, end_time, is_public_holiday, status,
			created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)` + scheduleReturning

	created, err := scanSchedule(q.QueryRow(ctx, query,
		s.CompanyID, s.EmployeeID, s.OutletID, s.DepartmentID, s.ScheduleDate,
		s.ShiftTemplateID, s.StartTime, s.EndTime, s.IsPublicHoliday, s.Status,
		s.CreatedBy, s.UpdatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return schedule.Schedule{}, schedule.ErrDuplicateSchedule
		}
		return schedule.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}
	return created, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleJoinColumns + scheduleJoins + `
		WHERE s.id = $1 AND s.company_id = $2`

	s, err := scanScheduleJoined(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule %d: %w", id, err)
	}
	return s, nil
}

// GetByEmployeeAndDate implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time, companyID int64) (*schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleJoinColumns + scheduleJoins + `
		WHERE s.employee_id = $1 AND s.schedule_date = $2 AND s.company_id = $3`

	s, err := scanScheduleJoined(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule for employee %d on %s: %w", employeeID, date.Format("2006-01-02"), err)
	}
	return &s, nil
}

// Upsert implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (
			company_id, employee_id, outlet_id, department_id, schedule_date,
			shift_template_id, start_time, end_time, is_public_holiday, status,
			created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (employee_id, schedule_date) DO UPDATE SET
			outlet_id = EXCLUDED.outlet_id,
			department_id = EXCLUDED.department_id,
			shift_template_id = EXCLUDED.shift_template_id,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_public_holiday = EXCLUDED.is_public_holiday,
			status = EXCLUDED.status,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()` + scheduleReturning

	upserted, err := scanSchedule(q.QueryRow(ctx, query,
		s.CompanyID, s.EmployeeID, s.OutletID, s.DepartmentID, s.ScheduleDate,
		s.ShiftTemplateID, s.StartTime, s.EndTime, s.IsPublicHoliday, s.Status,
		s.CreatedBy, s.UpdatedBy,
	))
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to upsert schedule: %w", err)
	}
	return upserted, nil
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Update(ctx context.Context, s schedule.Schedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules SET
			outlet_id = $1, department_id = $2, shift_template_id = $3,
			start_time = $4, end_time = $5, is_public_holiday = $6, status = $7,
			updated_by = $8, updated_at = NOW()
		WHERE id = $9 AND company_id = $10
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		s.OutletID, s.DepartmentID, s.ShiftTemplateID,
		s.StartTime, s.EndTime, s.IsPublicHoliday, s.Status,
		s.UpdatedBy, s.ID, s.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to update schedule %d: %w", s.ID, err)
	}
	return nil
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id int64, companyID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM schedules WHERE id = $1 AND company_id = $2 RETURNING id`

	var deletedID int64
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to delete schedule %d: %w", id, err)
	}
	return nil
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) List(ctx context.Context, filter schedule.Filter, companyID int64) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleJoinColumns + scheduleJoins + `
		WHERE s.company_id = $1`
	args := []any{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND s.employee_id = $%d", len(args))
	}
	if filter.OutletID != nil {
		args = append(args, *filter.OutletID)
		query += fmt.Sprintf(" AND s.outlet_id = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND s.department_id = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND s.schedule_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND s.schedule_date <= $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	query += " ORDER BY s.schedule_date, e.full_name"

	return r.queryJoined(ctx, q, query, args...)
}

// ListRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListRange(ctx context.Context, employeeIDs []int64, start, end time.Time, companyID int64) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleJoinColumns + scheduleJoins + `
		WHERE s.company_id = $1 AND s.employee_id = ANY($2)
			AND s.schedule_date >= $3 AND s.schedule_date <= $4
		ORDER BY s.employee_id, s.schedule_date`

	return r.queryJoined(ctx, q, query, companyID, employeeIDs, start, end)
}

// ListForPeriodByOutlet implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListForPeriodByOutlet(ctx context.Context, outletID int64, start, end time.Time, companyID int64) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleJoinColumns + scheduleJoins + `
		WHERE s.company_id = $1 AND s.outlet_id = $2
			AND s.schedule_date >= $3 AND s.schedule_date <= $4
			AND s.status <> $5
		ORDER BY s.employee_id, s.schedule_date`

	return r.queryJoined(ctx, q, query, companyID, outletID, start, end, schedule.StatusOff)
}

// ListForPeriodByDepartment implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListForPeriodByDepartment(ctx context.Context, departmentID int64, start, end time.Time, companyID int64) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleJoinColumns + scheduleJoins + `
		WHERE s.company_id = $1 AND s.department_id = $2
			AND s.schedule_date >= $3 AND s.schedule_date <= $4
			AND s.status <> $5
		ORDER BY s.employee_id, s.schedule_date`

	return r.queryJoined(ctx, q, query, companyID, departmentID, start, end, schedule.StatusOff)
}

// ListMonthByDepartment implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListMonthByDepartment(ctx context.Context, departmentID int64, year, month int, companyID int64) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleJoinColumns + scheduleJoins + `
		WHERE s.company_id = $1 AND s.department_id = $2
			AND EXTRACT(YEAR FROM s.schedule_date) = $3
			AND EXTRACT(MONTH FROM s.schedule_date) = $4
		ORDER BY s.employee_id, s.schedule_date`

	return r.queryJoined(ctx, q, query, companyID, departmentID, year, month)
}

// DeleteMonthByDepartment implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) DeleteMonthByDepartment(ctx context.Context, departmentID int64, year, month int, companyID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM schedules
		WHERE company_id = $1 AND department_id = $2
			AND EXTRACT(YEAR FROM schedule_date) = $3
			AND EXTRACT(MONTH FROM schedule_date) = $4
	`

	tag, err := q.Exec(ctx, query, companyID, departmentID, year, month)
	if err != nil {
		return 0, fmt.Errorf("failed to delete month schedules: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteFutureByEmployee implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) DeleteFutureByEmployee(ctx context.Context, employeeID int64, after time.Time, companyID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM schedules WHERE company_id = $1 AND employee_id = $2 AND schedule_date > $3`

	tag, err := q.Exec(ctx, query, companyID, employeeID, after)
	if err != nil {
		return 0, fmt.Errorf("failed to delete future schedules for employee %d: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}

// HasWorkOnDate implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) HasWorkOnDate(ctx context.Context, departmentID int64, date time.Time, companyID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(
		SELECT 1 FROM schedules
		WHERE company_id = $1 AND department_id = $2 AND schedule_date = $3 AND status <> $4)`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, departmentID, date, schedule.StatusOff).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// EmployeeHasWorkOnDate implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) EmployeeHasWorkOnDate(ctx context.Context, employeeID int64, date time.Time, companyID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(
		SELECT 1 FROM schedules
		WHERE company_id = $1 AND employee_id = $2 AND schedule_date = $3 AND status <> $4)`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, employeeID, date, schedule.StatusOff).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *scheduleRepositoryImpl) queryJoined(ctx context.Context, q database.Querier, query string, args ...any) ([]schedule.Schedule, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanScheduleJoined(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return schedules, nil
}
