package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id int64) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, regime, group_by, timezone, exclude_holiday_notify, settings, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var comp company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&comp.ID, &comp.Name, &comp.Regime, &comp.GroupBy, &comp.Timezone,
		&comp.ExcludeHolidayNotify, &comp.Settings, &comp.CreatedAt, &comp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company %d: %w", id, err)
	}
	return comp, nil
}

// List implements company.CompanyRepository.
func (c *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, regime, group_by, timezone, exclude_holiday_notify, settings, created_at, updated_at
		FROM companies
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		var comp company.Company
		if err := rows.Scan(
			&comp.ID, &comp.Name, &comp.Regime, &comp.GroupBy, &comp.Timezone,
			&comp.ExcludeHolidayNotify, &comp.Settings, &comp.CreatedAt, &comp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, comp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}

type outletRepositoryImpl struct {
	db *database.DB
}

func NewOutletRepository(db *database.DB) company.OutletRepository {
	return &outletRepositoryImpl{db: db}
}

// GetByID implements company.OutletRepository.
func (o *outletRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (company.Outlet, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, company_id, name, supervisor_id, created_at, updated_at
		FROM outlets
		WHERE id = $1 AND company_id = $2
	`

	var out company.Outlet
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&out.ID, &out.CompanyID, &out.Name, &out.SupervisorID, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Outlet{}, company.ErrOutletNotFound
		}
		return company.Outlet{}, fmt.Errorf("failed to get outlet %d: %w", id, err)
	}
	return out, nil
}

// List implements company.OutletRepository.
func (o *outletRepositoryImpl) List(ctx context.Context, companyID int64) ([]company.Outlet, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, company_id, name, supervisor_id, created_at, updated_at
		FROM outlets
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outlets []company.Outlet
	for rows.Next() {
		var out company.Outlet
		if err := rows.Scan(&out.ID, &out.CompanyID, &out.Name, &out.SupervisorID, &out.CreatedAt, &out.UpdatedAt); err != nil {
			return nil, err
		}
		outlets = append(outlets, out)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return outlets, nil
}

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) company.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// GetByID implements company.DepartmentRepository.
func (d *departmentRepositoryImpl) GetByID(ctx context.Context, id int64, companyID int64) (company.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM departments
		WHERE id = $1 AND company_id = $2
	`

	var dep company.Department
	err := q.QueryRow(ctx, query, id, companyID).Scan(&dep.ID, &dep.CompanyID, &dep.Name, &dep.CreatedAt, &dep.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Department{}, company.ErrDepartmentNotFound
		}
		return company.Department{}, fmt.Errorf("failed to get department %d: %w", id, err)
	}
	return dep, nil
}

// List implements company.DepartmentRepository.
func (d *departmentRepositoryImpl) List(ctx context.Context, companyID int64) ([]company.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM departments
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []company.Department
	for rows.Next() {
		var dep company.Department
		if err := rows.Scan(&dep.ID, &dep.CompanyID, &dep.Name, &dep.CreatedAt, &dep.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, dep)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) company.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// ListOnDate implements company.HolidayRepository.
func (h *holidayRepositoryImpl) ListOnDate(ctx context.Context, companyID int64, date time.Time) ([]company.PublicHoliday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, company_id, name, holiday_date, created_at
		FROM public_holidays
		WHERE company_id = $1 AND holiday_date = $2
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []company.PublicHoliday
	for rows.Next() {
		var ph company.PublicHoliday
		if err := rows.Scan(&ph.ID, &ph.CompanyID, &ph.Name, &ph.HolidayDate, &ph.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, ph)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}

// IsPublicHoliday implements company.HolidayRepository.
func (h *holidayRepositoryImpl) IsPublicHoliday(ctx context.Context, companyID int64, date time.Time) (bool, error) {
	q := GetQuerier(ctx, h.db)

	query := `SELECT EXISTS(SELECT 1 FROM public_holidays WHERE company_id = $1 AND holiday_date = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
