package company

import (
	"context"
	"time"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (Company, error)
	List(ctx context.Context) ([]Company, error)
}

type OutletRepository interface {
	GetByID(ctx context.Context, id int64, companyID int64) (Outlet, error)
	List(ctx context.Context, companyID int64) ([]Outlet, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id int64, companyID int64) (Department, error)
	List(ctx context.Context, companyID int64) ([]Department, error)
}

type HolidayRepository interface {
	// ListOnDate returns a company's public holidays falling on the date.
	ListOnDate(ctx context.Context, companyID int64, date time.Time) ([]PublicHoliday, error)

	// IsPublicHoliday reports whether the date is a public holiday.
	IsPublicHoliday(ctx context.Context, companyID int64, date time.Time) (bool, error)
}
