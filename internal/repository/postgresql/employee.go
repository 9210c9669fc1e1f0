package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.company_id, e.outlet_id, e.department_id, e.position_id, e.employee_code,
	e.full_name, e.ic_number, e.join_date, e.status, e.employment_status,
	e.last_working_day, e.resign_date, e.basic_salary, e.default_bonus, e.ot_rate,
	e.marital_status, e.spouse_working, e.children_count, e.region,
	e.created_at, e.updated_at,
	p.name, p.role, o.name, d.name`

const employeeJoins = `
	FROM employees e
	LEFT JOIN positions p ON p.id = e.position_id
	LEFT JOIN outlets o ON o.id = e.outlet_id
	LEFT JOIN departments d ON d.id = e.department_id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.OutletID, &emp.DepartmentID, &emp.PositionID, &emp.EmployeeCode,
		&emp.FullName, &emp.ICNumber, &emp.JoinDate, &emp.Status, &emp.EmploymentStatus,
		&emp.LastWorkingDay, &emp.ResignDate, &emp.BasicSalary, &emp.DefaultBonus, &emp.OTRate,
		&emp.MaritalStatus, &emp.SpouseWorking, &emp.ChildrenCount, &emp.Region,
		&emp.CreatedAt, &emp.UpdatedAt,
		&emp.PositionName, &emp.PositionRole, &emp.OutletName, &emp.DepartmentName,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + employeeJoins + `
		WHERE e.id = $1 AND e.company_id = $2`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, code string, companyID int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + employeeJoins + `
		WHERE e.employee_code = $1 AND e.company_id = $2`

	emp, err := scanEmployee(q.QueryRow(ctx, query, code, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code %s: %w", code, err)
	}
	return emp, nil
}

// GetByIC implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByIC(ctx context.Context, ic string, companyID int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + employeeJoins + `
		WHERE e.ic_number = $1 AND e.company_id = $2`

	emp, err := scanEmployee(q.QueryRow(ctx, query, ic, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ic: %w", err)
	}
	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context, companyID int64, outletID, departmentID int64) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + employeeJoins + `
		WHERE e.company_id = $1 AND e.status = $2`
	args := []any{companyID, employee.StatusActive}

	if outletID != 0 {
		args = append(args, outletID)
		query += fmt.Sprintf(" AND e.outlet_id = $%d", len(args))
	}
	if departmentID != 0 {
		args = append(args, departmentID)
		query += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}
	query += " ORDER BY e.full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// MarkExited implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) MarkExited(ctx context.Context, id int64, companyID int64, lastWorkingDay time.Time) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET status = $1, employment_status = $2, last_working_day = $3,
			resign_date = COALESCE(resign_date, NOW()), updated_at = NOW()
		WHERE id = $4 AND company_id = $5
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query, employee.StatusInactive, employee.EmploymentExited, lastWorkingDay, id, companyID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to mark employee %d exited: %w", id, err)
	}
	return nil
}

// SetEmploymentStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetEmploymentStatus(ctx context.Context, id int64, companyID int64, status string, lastWorkingDay *time.Time) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET employment_status = $1, last_working_day = COALESCE($2, last_working_day), updated_at = NOW()
		WHERE id = $3 AND company_id = $4
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query, status, lastWorkingDay, id, companyID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to set employment status for employee %d: %w", id, err)
	}
	return nil
}

// ListPastLastWorkingDay implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListPastLastWorkingDay(ctx context.Context, before time.Time) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + employeeJoins + `
		WHERE e.status = $1 AND e.last_working_day IS NOT NULL AND e.last_working_day < $2`

	rows, err := q.Query(ctx, query, employee.StatusActive, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}
