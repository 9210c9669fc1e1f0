package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/leave"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// ListActive implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ListActive(ctx context.Context, companyID int64) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, code, default_days, is_paid, is_active
		FROM leave_types
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var t leave.LeaveType
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Code, &t.DefaultDays, &t.IsPaid, &t.IsActive); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, code, default_days, is_paid, is_active
		FROM leave_types
		WHERE id = $1 AND company_id = $2
	`

	var t leave.LeaveType
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.Code, &t.DefaultDays, &t.IsPaid, &t.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type %d: %w", id, err)
	}
	return t, nil
}

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// ListByEmployee implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64, year int, companyID int64) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.company_id, b.employee_id, b.leave_type_id, b.year,
			b.entitled, b.used, b.carried_over, t.name, t.code, t.is_paid
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.year = $2 AND b.company_id = $3
		ORDER BY t.code
	`

	rows, err := q.Query(ctx, query, employeeID, year, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.Entitled, &b.Used, &b.CarriedOver, &b.LeaveTypeName, &b.LeaveTypeCode, &b.TypeIsPaid,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return balances, nil
}

// Get implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, employeeID, leaveTypeID int64, year int, companyID int64) (*leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, leave_type_id, year, entitled, used, carried_over
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3 AND company_id = $4
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year, companyID).Scan(
		&b.ID, &b.CompanyID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.Entitled, &b.Used, &b.CarriedOver,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return &b, nil
}

// AddUsed implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) AddUsed(ctx context.Context, employeeID, leaveTypeID int64, year int, delta decimal.Decimal, companyID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used = used + $1
		WHERE employee_id = $2 AND leave_type_id = $3 AND year = $4 AND company_id = $5
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query, delta, employeeID, leaveTypeID, year, companyID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrBalanceNotFound
		}
		return fmt.Errorf("failed to adjust leave balance: %w", err)
	}
	return nil
}

// EncashableRemaining implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) EncashableRemaining(ctx context.Context, employeeID int64, year int, companyID int64) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(b.entitled + b.carried_over - b.used), 0)
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.year = $2 AND b.company_id = $3
			AND t.is_paid = TRUE
			AND b.entitled + b.carried_over - b.used > 0
	`

	var remaining decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, year, companyID).Scan(&remaining); err != nil {
		return decimal.Zero, err
	}
	return remaining, nil
}

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	r.id, r.company_id, r.employee_id, r.leave_type_id, r.start_date, r.end_date,
	r.days, r.is_half_day, r.reason, r.status,
	r.approved_by, r.approved_at, r.reject_reason, r.created_at, r.updated_at`

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			company_id, employee_id, leave_type_id, start_date, end_date,
			days, is_half_day, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + stripAlias(leaveRequestColumns, "r")

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		req.CompanyID, req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate,
		req.Days, req.IsHalfDay, req.Reason, req.Status,
	).Scan(
		&created.ID, &created.CompanyID, &created.EmployeeID, &created.LeaveTypeID,
		&created.StartDate, &created.EndDate, &created.Days, &created.IsHalfDay,
		&created.Reason, &created.Status, &created.ApprovedBy, &created.ApprovedAt,
		&created.RejectReason, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name, t.name
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN leave_types t ON t.id = r.leave_type_id
		WHERE r.id = $1 AND r.company_id = $2
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&req.ID, &req.CompanyID, &req.EmployeeID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.Days, &req.IsHalfDay,
		&req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovedAt,
		&req.RejectReason, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.LeaveTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request %d: %w", id, err)
	}
	return req, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_at = $3, reject_reason = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query,
		req.Status, req.ApprovedBy, req.ApprovedAt, req.RejectReason, req.ID, req.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update leave request %d: %w", req.ID, err)
	}
	return nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.Filter, companyID int64) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name, t.name
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN leave_types t ON t.id = r.leave_type_id
		WHERE r.company_id = $1`
	args := []any{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.LeaveTypeID != nil {
		args = append(args, *filter.LeaveTypeID)
		query += fmt.Sprintf(" AND r.leave_type_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM r.start_date) = $%d", len(args))
	}
	query += " ORDER BY r.start_date DESC, r.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		if err := rows.Scan(
			&req.ID, &req.CompanyID, &req.EmployeeID, &req.LeaveTypeID,
			&req.StartDate, &req.EndDate, &req.Days, &req.IsHalfDay,
			&req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovedAt,
			&req.RejectReason, &req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName, &req.LeaveTypeName,
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

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID int64, start, end time.Time, excludeID int64, companyID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND company_id = $2
				AND status IN ($3, $4)
				AND start_date <= $5 AND end_date >= $6
				AND id <> $7
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query,
		employeeID, companyID, leave.StatusPending, leave.StatusApproved, end, start, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// RejectPendingStartingAfter implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) RejectPendingStartingAfter(ctx context.Context, employeeID int64, cutoff time.Time, reason string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reject_reason = $2, updated_at = NOW()
		WHERE employee_id = $3 AND status = $4 AND start_date > $5
	`

	tag, err := q.Exec(ctx, query, leave.StatusRejected, reason, employeeID, leave.StatusPending, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to reject pending leave for employee %d: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}

// CancelPendingStartingAfter implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CancelPendingStartingAfter(ctx context.Context, employeeID int64, cutoff time.Time, companyID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, updated_at = NOW()
		WHERE employee_id = $2 AND company_id = $3 AND status = $4 AND start_date > $5
	`

	tag, err := q.Exec(ctx, query, leave.StatusCancelled, employeeID, companyID, leave.StatusPending, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel pending leave for employee %d: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}

// ListApprovedStartingAfter implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedStartingAfter(ctx context.Context, employeeID int64, cutoff time.Time, companyID int64) ([]leave.LeaveRequest, error) {
	return r.listStartingAfter(ctx, employeeID, cutoff, leave.StatusApproved, companyID)
}

// ListPendingStartingAfter implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPendingStartingAfter(ctx context.Context, employeeID int64, cutoff time.Time, companyID int64) ([]leave.LeaveRequest, error) {
	return r.listStartingAfter(ctx, employeeID, cutoff, leave.StatusPending, companyID)
}

func (r *leaveRequestRepositoryImpl) listStartingAfter(ctx context.Context, employeeID int64, cutoff time.Time, status string, companyID int64) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name, t.name, t.is_paid
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN leave_types t ON t.id = r.leave_type_id
		WHERE r.employee_id = $1 AND r.company_id = $2
			AND r.status = $3 AND r.start_date > $4
		ORDER BY r.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, status, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		if err := rows.Scan(
			&req.ID, &req.CompanyID, &req.EmployeeID, &req.LeaveTypeID,
			&req.StartDate, &req.EndDate, &req.Days, &req.IsHalfDay,
			&req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovedAt,
			&req.RejectReason, &req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName, &req.LeaveTypeName, &req.TypeIsPaid,
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
