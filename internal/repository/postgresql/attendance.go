package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type clockRecordRepositoryImpl struct {
	db *database.DB
}

func NewClockRecordRepository(db *database.DB) attendance.ClockRecordRepository {
	return &clockRecordRepositoryImpl{db: db}
}

const clockRecordColumns = `
	r.id, r.company_id, r.employee_id, r.outlet_id, r.work_date,
	r.clock_in_1, r.clock_out_1, r.clock_in_2, r.clock_out_2,
	r.clock_in_1_location, r.clock_out_1_location, r.clock_in_2_location, r.clock_out_2_location,
	r.clock_in_1_photo, r.clock_out_1_photo, r.clock_in_2_photo, r.clock_out_2_photo,
	r.total_work_minutes, r.total_break_minutes, r.ot_minutes,
	r.status, r.is_auto_clock_out, r.needs_admin_review, r.has_schedule,
	r.ot_approved, r.ot_approved_by, r.ot_approved_at, r.ot_reject_reason,
	r.approved_by, r.approved_at, r.reject_reason,
	r.reviewed_by, r.reviewed_at, r.notes,
	r.media_deleted_at, r.media_retention_eligible_at, r.media_deletion_logged,
	r.created_at, r.updated_at`

func scanClockRecord(row pgx.Row) (attendance.ClockRecord, error) {
	var rec attendance.ClockRecord
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.OutletID, &rec.WorkDate,
		&rec.ClockIn1, &rec.ClockOut1, &rec.ClockIn2, &rec.ClockOut2,
		&rec.ClockIn1Location, &rec.ClockOut1Location, &rec.ClockIn2Location, &rec.ClockOut2Location,
		&rec.ClockIn1Photo, &rec.ClockOut1Photo, &rec.ClockIn2Photo, &rec.ClockOut2Photo,
		&rec.TotalWorkMinutes, &rec.TotalBreakMinutes, &rec.OTMinutes,
		&rec.Status, &rec.IsAutoClockOut, &rec.NeedsAdminReview, &rec.HasSchedule,
		&rec.OTApproved, &rec.OTApprovedBy, &rec.OTApprovedAt, &rec.OTRejectReason,
		&rec.ApprovedBy, &rec.ApprovedAt, &rec.RejectReason,
		&rec.ReviewedBy, &rec.ReviewedAt, &rec.Notes,
		&rec.MediaDeletedAt, &rec.MediaRetentionEligibleAt, &rec.MediaDeletionLogged,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func scanClockRecordWithEmployee(row pgx.Row) (attendance.ClockRecord, error) {
	var rec attendance.ClockRecord
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.OutletID, &rec.WorkDate,
		&rec.ClockIn1, &rec.ClockOut1, &rec.ClockIn2, &rec.ClockOut2,
		&rec.ClockIn1Location, &rec.ClockOut1Location, &rec.ClockIn2Location, &rec.ClockOut2Location,
		&rec.ClockIn1Photo, &rec.ClockOut1Photo, &rec.ClockIn2Photo, &rec.ClockOut2Photo,
		&rec.TotalWorkMinutes, &rec.TotalBreakMinutes, &rec.OTMinutes,
		&rec.Status, &rec.IsAutoClockOut, &rec.NeedsAdminReview, &rec.HasSchedule,
		&rec.OTApproved, &rec.OTApprovedBy, &rec.OTApprovedAt, &rec.OTRejectReason,
		&rec.ApprovedBy, &rec.ApprovedAt, &rec.RejectReason,
		&rec.ReviewedBy, &rec.ReviewedAt, &rec.Notes,
		&rec.MediaDeletedAt, &rec.MediaRetentionEligibleAt, &rec.MediaDeletionLogged,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode, &rec.PositionName, &rec.PositionRole,
		&rec.OutletName, &rec.Region,
	)
	return rec, err
}

const clockRecordEmployeeJoins = `
	FROM clock_records r
	JOIN employees e ON e.id = r.employee_id
	LEFT JOIN positions p ON p.id = e.position_id
	LEFT JOIN outlets o ON o.id = r.outlet_id`

const clockRecordEmployeeColumns = clockRecordColumns + `,
	e.full_name, e.employee_code, p.name, p.role, o.name, e.region`

const clockRecordInsertColumns = `
	company_id, employee_id, outlet_id, work_date,
	clock_in_1, clock_out_1, clock_in_2, clock_out_2,
	clock_in_1_location, clock_out_1_location, clock_in_2_location, clock_out_2_location,
	clock_in_1_photo, clock_out_1_photo, clock_in_2_photo, clock_out_2_photo,
	total_work_minutes, total_break_minutes, ot_minutes,
	status, is_auto_clock_out, needs_admin_review, has_schedule, notes,
	media_retention_eligible_at`

func clockRecordInsertArgs(r attendance.ClockRecord) []any {
	return []any{
		r.CompanyID, r.EmployeeID, r.OutletID, r.WorkDate,
		r.ClockIn1, r.ClockOut1, r.ClockIn2, r.ClockOut2,
		r.ClockIn1Location, r.ClockOut1Location, r.ClockIn2Location, r.ClockOut2Location,
		r.ClockIn1Photo, r.ClockOut1Photo, r.ClockIn2Photo, r.ClockOut2Photo,
		r.TotalWorkMinutes, r.TotalBreakMinutes, r.OTMinutes,
		r.Status, r.IsAutoClockOut, r.NeedsAdminReview, r.HasSchedule, r.Notes,
		r.MediaRetentionEligibleAt,
	}
}

// Create implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) Create(ctx context.Context, record attendance.ClockRecord) (attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO clock_records (` + clockRecordInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING ` + stripAlias(clockRecordColumns, "r")

	created, err := scanClockRecord(q.QueryRow(ctx, query, clockRecordInsertArgs(record)...))
	if err != nil {
		return attendance.ClockRecord{}, fmt.Errorf("failed to create clock record: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + clockRecordEmployeeColumns + clockRecordEmployeeJoins + `
		WHERE r.id = $1 AND r.company_id = $2`

	rec, err := scanClockRecordWithEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ClockRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.ClockRecord{}, fmt.Errorf("failed to get clock record %d: %w", id, err)
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time, companyID int64) (*attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + clockRecordColumns + `
		FROM clock_records r
		WHERE r.employee_id = $1 AND r.work_date = $2 AND r.company_id = $3`

	rec, err := scanClockRecord(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get clock record for employee %d on %s: %w", employeeID, date.Format("2006-01-02"), err)
	}
	return &rec, nil
}

// Upsert implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) Upsert(ctx context.Context, record attendance.ClockRecord) (attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO clock_records (` + clockRecordInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			outlet_id = EXCLUDED.outlet_id,
			clock_in_1 = EXCLUDED.clock_in_1,
			clock_out_1 = EXCLUDED.clock_out_1,
			clock_in_2 = EXCLUDED.clock_in_2,
			clock_out_2 = EXCLUDED.clock_out_2,
			total_work_minutes = EXCLUDED.total_work_minutes,
			total_break_minutes = EXCLUDED.total_break_minutes,
			ot_minutes = EXCLUDED.ot_minutes,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING ` + stripAlias(clockRecordColumns, "r")

	upserted, err := scanClockRecord(q.QueryRow(ctx, query, clockRecordInsertArgs(record)...))
	if err != nil {
		return attendance.ClockRecord{}, fmt.Errorf("failed to upsert clock record: %w", err)
	}
	return upserted, nil
}

// Update implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) Update(ctx context.Context, record attendance.ClockRecord) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE clock_records SET
			outlet_id = $1,
			clock_in_1 = $2, clock_out_1 = $3, clock_in_2 = $4, clock_out_2 = $5,
			clock_in_1_location = $6, clock_out_1_location = $7,
			clock_in_2_location = $8, clock_out_2_location = $9,
			clock_in_1_photo = $10, clock_out_1_photo = $11,
			clock_in_2_photo = $12, clock_out_2_photo = $13,
			total_work_minutes = $14, total_break_minutes = $15, ot_minutes = $16,
			status = $17, is_auto_clock_out = $18, needs_admin_review = $19, has_schedule = $20,
			ot_approved = $21, ot_approved_by = $22, ot_approved_at = $23, ot_reject_reason = $24,
			approved_by = $25, approved_at = $26, reject_reason = $27,
			reviewed_by = $28, reviewed_at = $29, notes = $30,
			media_deleted_at = $31, media_deletion_logged = $32,
			updated_at = NOW()
		WHERE id = $33 AND company_id = $34
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		record.OutletID,
		record.ClockIn1, record.ClockOut1, record.ClockIn2, record.ClockOut2,
		record.ClockIn1Location, record.ClockOut1Location,
		record.ClockIn2Location, record.ClockOut2Location,
		record.ClockIn1Photo, record.ClockOut1Photo,
		record.ClockIn2Photo, record.ClockOut2Photo,
		record.TotalWorkMinutes, record.TotalBreakMinutes, record.OTMinutes,
		record.Status, record.IsAutoClockOut, record.NeedsAdminReview, record.HasSchedule,
		record.OTApproved, record.OTApprovedBy, record.OTApprovedAt, record.OTRejectReason,
		record.ApprovedBy, record.ApprovedAt, record.RejectReason,
		record.ReviewedBy, record.ReviewedAt, record.Notes,
		record.MediaDeletedAt, record.MediaDeletionLogged,
		record.ID, record.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update clock record %d: %w", record.ID, err)
	}
	return nil
}

// List implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) List(ctx context.Context, filter attendance.Filter, companyID int64) ([]attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + clockRecordEmployeeColumns + clockRecordEmployeeJoins + `
		WHERE r.company_id = $1`
	args := []any{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.OutletID != nil {
		args = append(args, *filter.OutletID)
		query += fmt.Sprintf(" AND r.outlet_id = $%d", len(args))
	}
	if filter.Month != nil && filter.Year != nil {
		args = append(args, *filter.Month)
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM r.work_date) = $%d", len(args))
		args = append(args, *filter.Year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM r.work_date) = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND r.work_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND r.work_date <= $%d", len(args))
	}
	if filter.Region != nil {
		args = append(args, *filter.Region)
		query += fmt.Sprintf(" AND e.region = $%d", len(args))
	}
	query += " ORDER BY r.work_date DESC, e.full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.ClockRecord
	for rows.Next() {
		rec, err := scanClockRecordWithEmployee(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListByMonth implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) ListByMonth(ctx context.Context, companyID int64, year, month int) ([]attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + clockRecordColumns + `
		FROM clock_records r
		WHERE r.company_id = $1
			AND EXTRACT(YEAR FROM r.work_date) = $2
			AND EXTRACT(MONTH FROM r.work_date) = $3
		ORDER BY r.employee_id, r.work_date`

	rows, err := q.Query(ctx, query, companyID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.ClockRecord
	for rows.Next() {
		rec, err := scanClockRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListOpenForDate implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) ListOpenForDate(ctx context.Context, date time.Time) ([]attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + clockRecordColumns + `
		FROM clock_records r
		WHERE r.work_date = $1
			AND r.clock_in_1 IS NOT NULL
			AND r.clock_out_2 IS NULL
			AND r.is_auto_clock_out = FALSE
		ORDER BY r.company_id, r.employee_id`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.ClockRecord
	for rows.Next() {
		rec, err := scanClockRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListNeedsReview implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) ListNeedsReview(ctx context.Context, companyID int64) ([]attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + clockRecordEmployeeColumns + clockRecordEmployeeJoins + `
		WHERE r.company_id = $1 AND r.needs_admin_review = TRUE
		ORDER BY r.work_date DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.ClockRecord
	for rows.Next() {
		rec, err := scanClockRecordWithEmployee(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// AutoClockOutStats implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) AutoClockOutStats(ctx context.Context, companyID int64) (attendance.AutoClockOutStats, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE is_auto_clock_out),
			COUNT(*) FILTER (WHERE needs_admin_review),
			COUNT(*) FILTER (WHERE is_auto_clock_out AND NOT needs_admin_review)
		FROM clock_records
		WHERE company_id = $1
	`

	var stats attendance.AutoClockOutStats
	err := q.QueryRow(ctx, query, companyID).Scan(&stats.TotalAutoClosed, &stats.PendingReview, &stats.Reviewed)
	if err != nil {
		return attendance.AutoClockOutStats{}, err
	}
	return stats, nil
}

// SetHasSchedule implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) SetHasSchedule(ctx context.Context, employeeID int64, date time.Time, companyID int64, has bool) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE clock_records
		SET has_schedule = $1, updated_at = NOW()
		WHERE employee_id = $2 AND work_date = $3 AND company_id = $4
	`

	_, err := q.Exec(ctx, query, has, employeeID, date, companyID)
	return err
}

// ApprovedOTByMonth implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) ApprovedOTByMonth(ctx context.Context, companyID int64, year, month int) ([]attendance.OTForPayrollRow, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT e.id, e.full_name, e.basic_salary, e.ot_rate, COALESCE(SUM(r.ot_minutes), 0)
		FROM clock_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.company_id = $1
			AND EXTRACT(YEAR FROM r.work_date) = $2
			AND EXTRACT(MONTH FROM r.work_date) = $3
			AND r.ot_approved = TRUE
		GROUP BY e.id, e.full_name, e.basic_salary, e.ot_rate
		HAVING SUM(r.ot_minutes) > 0
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, companyID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sixty := decimal.NewFromInt(60)
	var out []attendance.OTForPayrollRow
	for rows.Next() {
		var row attendance.OTForPayrollRow
		if err := rows.Scan(&row.EmployeeID, &row.EmployeeName, &row.BasicSalary, &row.OTRate, &row.OTMinutes); err != nil {
			return nil, err
		}
		row.OTHours = decimal.NewFromInt(int64(row.OTMinutes)).Div(sixty).Round(2)
		// Hourly rate convention: basic / 26 days / 8 hours.
		row.HourlyRate = row.BasicSalary.Div(decimal.NewFromInt(26)).Div(decimal.NewFromInt(8)).Round(4)
		row.OTAmount = row.HourlyRate.Mul(row.OTRate).Mul(decimal.NewFromInt(int64(row.OTMinutes))).Div(sixty).Round(2)
		out = append(out, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) Summary(ctx context.Context, filter attendance.Filter, companyID int64) ([]attendance.SummaryRow, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT r.outlet_id, COALESCE(o.name, ''), COALESCE(p.name, ''), e.id, e.full_name,
			COUNT(*) FILTER (WHERE r.total_work_minutes > 0),
			COALESCE(SUM(r.total_work_minutes), 0),
			COALESCE(SUM(r.ot_minutes) FILTER (WHERE r.ot_approved = TRUE), 0)
		FROM clock_records r
		JOIN employees e ON e.id = r.employee_id
		LEFT JOIN positions p ON p.id = e.position_id
		LEFT JOIN outlets o ON o.id = r.outlet_id
		WHERE r.company_id = $1`
	args := []any{companyID}

	if filter.Month != nil && filter.Year != nil {
		args = append(args, *filter.Month)
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM r.work_date) = $%d", len(args))
		args = append(args, *filter.Year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM r.work_date) = $%d", len(args))
	}
	if filter.OutletID != nil {
		args = append(args, *filter.OutletID)
		query += fmt.Sprintf(" AND r.outlet_id = $%d", len(args))
	}
	query += `
		GROUP BY r.outlet_id, o.name, p.name, e.id, e.full_name
		ORDER BY o.name, p.name, e.full_name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sixty := decimal.NewFromInt(60)
	var out []attendance.SummaryRow
	for rows.Next() {
		var row attendance.SummaryRow
		if err := rows.Scan(
			&row.OutletID, &row.OutletName, &row.PositionName, &row.EmployeeID, &row.EmployeeName,
			&row.DaysWorked, &row.TotalWorkMinutes, &row.TotalOTMinutes,
		); err != nil {
			return nil, err
		}
		row.TotalWorkHours = decimal.NewFromInt(int64(row.TotalWorkMinutes)).Div(sixty).Round(2)
		row.TotalOTHours = decimal.NewFromInt(int64(row.TotalOTMinutes)).Div(sixty).Round(2)
		out = append(out, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMediaEligible implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) ListMediaEligible(ctx context.Context, companyID int64, limit int) ([]attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + clockRecordColumns + `
		FROM clock_records r
		WHERE r.company_id = $1
			AND r.media_deleted_at IS NULL
			AND r.media_retention_eligible_at <= NOW()
			AND (r.clock_in_1_photo IS NOT NULL OR r.clock_out_1_photo IS NOT NULL
				OR r.clock_in_2_photo IS NOT NULL OR r.clock_out_2_photo IS NOT NULL)
		ORDER BY r.work_date
		LIMIT $2`

	rows, err := q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.ClockRecord
	for rows.Next() {
		rec, err := scanClockRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// CountMediaEligible implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) CountMediaEligible(ctx context.Context, companyID int64) (int, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT COUNT(*)
		FROM clock_records
		WHERE company_id = $1
			AND media_deleted_at IS NULL
			AND media_retention_eligible_at <= NOW()
			AND (clock_in_1_photo IS NOT NULL OR clock_out_1_photo IS NOT NULL
				OR clock_in_2_photo IS NOT NULL OR clock_out_2_photo IS NOT NULL)
	`

	var count int
	if err := q.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountMediaCleared implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) CountMediaCleared(ctx context.Context, companyID int64) (int, error) {
	q := GetQuerier(ctx, c.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM clock_records WHERE company_id = $1 AND media_deleted_at IS NOT NULL`,
		companyID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ClearMedia implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) ClearMedia(ctx context.Context, id int64, companyID int64) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE clock_records
		SET clock_in_1_photo = NULL, clock_out_1_photo = NULL,
			clock_in_2_photo = NULL, clock_out_2_photo = NULL,
			media_deleted_at = NOW(), media_deletion_logged = TRUE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query, id, companyID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to clear media on clock record %d: %w", id, err)
	}
	return nil
}
