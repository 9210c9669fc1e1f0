package employee

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee status values.
const (
	StatusActive   = "active"
	StatusResigned = "resigned"
	StatusInactive = "inactive"
)

// Employment lifecycle values, driven by the resignation engine.
const (
	EmploymentEmployed        = "employed"
	EmploymentNotice          = "notice"
	EmploymentResignedPending = "resigned_pending"
	EmploymentExited          = "exited"
)

// Position roles used by the schedule edit-window rules.
const (
	RoleManager    = "manager"
	RoleSupervisor = "supervisor"
	RoleCrew       = "crew"
)

type Employee struct {
	ID               int64
	CompanyID        int64
	OutletID         *int64
	DepartmentID     *int64
	PositionID       *int64
	EmployeeCode     string
	FullName         string
	ICNumber         string // digits only after normalisation
	JoinDate         *time.Time
	Status           string
	EmploymentStatus string
	LastWorkingDay   *time.Time
	ResignDate       *time.Time
	BasicSalary      decimal.Decimal
	DefaultBonus     decimal.Decimal
	OTRate           decimal.Decimal
	MaritalStatus    string
	SpouseWorking    bool
	ChildrenCount    int
	Region           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	PositionName   *string
	PositionRole   *string
	OutletName     *string
	DepartmentName *string
}

// NormalizeIC strips dashes and spaces, leaving digits only.
func NormalizeIC(ic string) string {
	ic = strings.ReplaceAll(ic, "-", "")
	ic = strings.ReplaceAll(ic, " ", "")
	return ic
}

// AgeFromIC derives age from the first six digits of a Malaysian IC
// (YYMMDD). Two-digit years at or after 30 are read as 19xx.
func AgeFromIC(ic string, at time.Time) int {
	ic = NormalizeIC(ic)
	if len(ic) < 6 {
		return 0
	}

	yy, err1 := strconv.Atoi(ic[0:2])
	mm, err2 := strconv.Atoi(ic[2:4])
	dd, err3 := strconv.Atoi(ic[4:6])
	if err1 != nil || err2 != nil || err3 != nil || mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return 0
	}

	year := 2000 + yy
	if yy >= 30 {
		year = 1900 + yy
	}

	birth := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	age := at.Year() - birth.Year()
	if at.YearDay() < birth.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// ServiceMonths returns full months of service from join date to at.
func (e Employee) ServiceMonths(at time.Time) int {
	if e.JoinDate == nil {
		return 0
	}
	months := (at.Year()-e.JoinDate.Year())*12 + int(at.Month()) - int(e.JoinDate.Month())
	if at.Day() < e.JoinDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// Role returns the employee's position role, defaulting to crew.
func (e Employee) Role() string {
	if e.PositionRole == nil || *e.PositionRole == "" {
		return RoleCrew
	}
	return *e.PositionRole
}
