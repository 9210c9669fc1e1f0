package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/notification"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/dateutil"
)

// HolidayNotifierResult summarises one notifier run.
type HolidayNotifierResult struct {
	Date      string `json:"date"`
	Companies int    `json:"companies"`
	Notified  int    `json:"notified"`
	Skipped   int    `json:"skipped"`
}

// HolidayNotifierJob tells employees about tomorrow's public holidays.
// Departments that are rostered to work on the holiday are not notified;
// outlet-grouped companies run their own arrangements and are skipped.
type HolidayNotifierJob struct {
	companies     company.CompanyRepository
	departments   company.DepartmentRepository
	holidays      company.HolidayRepository
	employees     employee.EmployeeRepository
	schedules     schedule.ScheduleRepository
	notifications notification.NotificationRepository
	loc           *time.Location
	logger        *slog.Logger
}

func NewHolidayNotifierJob(
	companyRepo company.CompanyRepository,
	departmentRepo company.DepartmentRepository,
	holidayRepo company.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	notificationRepo notification.NotificationRepository,
	loc *time.Location,
	logger *slog.Logger,
) *HolidayNotifierJob {
	return &HolidayNotifierJob{
		companies:     companyRepo,
		departments:   departmentRepo,
		holidays:      holidayRepo,
		employees:     employeeRepo,
		schedules:     scheduleRepo,
		notifications: notificationRepo,
		loc:           loc,
		logger:        logger,
	}
}

// Run notifies for holidays falling tomorrow.
func (j *HolidayNotifierJob) Run(ctx context.Context) (HolidayNotifierResult, error) {
	tomorrow := dateutil.DateOf(time.Now().In(j.loc).AddDate(0, 0, 1))
	return j.RunForDate(ctx, tomorrow)
}

// RunForDate notifies for holidays on the given date across all companies.
func (j *HolidayNotifierJob) RunForDate(ctx context.Context, date time.Time) (HolidayNotifierResult, error) {
	result := HolidayNotifierResult{Date: date.Format(dateutil.DateLayout)}

	companies, err := j.companies.List(ctx)
	if err != nil {
		return result, err
	}

	for _, comp := range companies {
		if comp.ExcludeHolidayNotify || comp.GroupBy == company.GroupByOutlet {
			continue
		}

		holidays, err := j.holidays.ListOnDate(ctx, comp.ID, date)
		if err != nil {
			j.logger.Error("holiday notifier: holiday lookup failed",
				"company_id", comp.ID, "error", err)
			continue
		}
		if len(holidays) == 0 {
			continue
		}
		result.Companies++

		for _, holiday := range holidays {
			notified, skipped := j.notifyCompany(ctx, comp, holiday, date)
			result.Notified += notified
			result.Skipped += skipped
		}
	}

	j.logger.Info("holiday notifier finished",
		"date", result.Date, "companies", result.Companies,
		"notified", result.Notified, "skipped", result.Skipped)
	return result, nil
}

func (j *HolidayNotifierJob) notifyCompany(ctx context.Context, comp company.Company, holiday company.PublicHoliday, date time.Time) (notified, skipped int) {
	departments, err := j.departments.List(ctx, comp.ID)
	if err != nil {
		j.logger.Error("holiday notifier: department listing failed",
			"company_id", comp.ID, "error", err)
		return 0, 0
	}

	working := make(map[int64]bool, len(departments))
	for _, dept := range departments {
		hasWork, err := j.schedules.HasWorkOnDate(ctx, dept.ID, date, comp.ID)
		if err != nil {
			j.logger.Error("holiday notifier: schedule check failed",
				"department_id", dept.ID, "error", err)
			hasWork = true // when in doubt, stay quiet
		}
		working[dept.ID] = hasWork
	}

	employees, err := j.employees.ListActive(ctx, comp.ID, 0, 0)
	if err != nil {
		j.logger.Error("holiday notifier: employee listing failed",
			"company_id", comp.ID, "error", err)
		return 0, 0
	}

	for _, emp := range employees {
		skip := false
		if emp.DepartmentID != nil {
			skip = working[*emp.DepartmentID]
		} else {
			// Employees outside any department are judged on their own roster.
			hasWork, err := j.schedules.EmployeeHasWorkOnDate(ctx, emp.ID, date, comp.ID)
			if err != nil {
				j.logger.Error("holiday notifier: employee schedule check failed",
					"employee_id", emp.ID, "error", err)
				hasWork = true
			}
			skip = hasWork
		}
		if skip {
			skipped++
			continue
		}

		if j.notify(ctx, comp.ID, emp.ID, holiday, date) {
			notified++
		}
	}
	return notified, skipped
}

func (j *HolidayNotifierJob) notify(ctx context.Context, companyID, employeeID int64, holiday company.PublicHoliday, date time.Time) bool {
	key := fmt.Sprintf("ph:%s:%d:%d", date.Format(dateutil.DateLayout), holiday.ID, employeeID)

	created, err := j.notifications.Create(ctx, notification.Notification{
		CompanyID:  companyID,
		EmployeeID: &employeeID,
		Kind:       notification.KindPublicHoliday,
		Title:      "Public holiday tomorrow",
		Body:       fmt.Sprintf("%s falls on %s. No shift is scheduled for you.", holiday.Name, date.Format("2 Jan 2006")),
		DedupeKey:  &key,
	})
	if err != nil {
		j.logger.Error("holiday notifier: insert failed",
			"employee_id", employeeID, "holiday_id", holiday.ID, "error", err)
		return false
	}
	return created
}
