package schedule

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/schedule"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func seedTestCompany(t *testing.T, ctx context.Context, db *database.DB) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO companies (name, regime, group_by, timezone, exclude_holiday_notify, settings, created_at, updated_at)
		VALUES ($1, 'mimix', 'department', 'Asia/Kuala_Lumpur', FALSE, '{}', NOW(), NOW())
		RETURNING id
	`, fmt.Sprintf("Test Co %d", time.Now().UnixNano())).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestEmployee(t *testing.T, ctx context.Context, db *database.DB, companyID int64) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO employees (
			company_id, employee_code, full_name, ic_number, join_date,
			status, employment_status, basic_salary, default_bonus, ot_rate,
			marital_status, spouse_working, children_count, created_at, updated_at
		) VALUES ($1, $2, 'Test Employee', $3, '2023-01-15',
			'active', 'employed', 2600, 0, 1.5,
			'single', FALSE, 0, NOW(), NOW())
		RETURNING id
	`, companyID,
		fmt.Sprintf("E%d", time.Now().UnixNano()),
		fmt.Sprintf("%d", time.Now().UnixNano()),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestDepartment(t *testing.T, ctx context.Context, db *database.DB, companyID int64) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO departments (company_id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`, companyID, fmt.Sprintf("Dept %d", time.Now().UnixNano())).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestTemplate(t *testing.T, ctx context.Context, db *database.DB, companyID int64) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO shift_templates (company_id, name, code, start_time, end_time, is_off, is_active, created_at, updated_at)
		VALUES ($1, 'Morning', $2, '09:00', '18:00', FALSE, TRUE, NOW(), NOW())
		RETURNING id
	`, companyID, fmt.Sprintf("M%d", time.Now().UnixNano())).Scan(&id)
	require.NoError(t, err)
	return id
}

func managerContext(t *testing.T, companyID, employeeID int64) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id":  float64(companyID),
		"employee_id": float64(employeeID),
		"role":        session.RoleManager,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestCopyMonthCopiesOnlyTemplatedShifts(t *testing.T) {
	db := openTestDB(t)
	bg := context.Background()

	companyID := seedTestCompany(t, bg, db)
	employeeID := seedTestEmployee(t, bg, db, companyID)
	departmentID := seedTestDepartment(t, bg, db, companyID)
	templateID := seedTestTemplate(t, bg, db, companyID)
	ctx := managerContext(t, companyID, employeeID)

	scheduleRepo := postgresql.NewScheduleRepository(db)
	start, end := "09:00", "18:00"

	_, err := scheduleRepo.Create(bg, schedule.Schedule{
		CompanyID:       companyID,
		EmployeeID:      employeeID,
		DepartmentID:    &departmentID,
		ScheduleDate:    time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		ShiftTemplateID: &templateID,
		StartTime:       &start,
		EndTime:         &end,
		Status:          schedule.StatusScheduled,
	})
	require.NoError(t, err)

	// An ad-hoc shift with no template must not carry over.
	_, err = scheduleRepo.Create(bg, schedule.Schedule{
		CompanyID:    companyID,
		EmployeeID:   employeeID,
		DepartmentID: &departmentID,
		ScheduleDate: time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
		StartTime:    &start,
		EndTime:      &end,
		Status:       schedule.StatusScheduled,
	})
	require.NoError(t, err)

	svc := NewScheduleService(
		db,
		scheduleRepo,
		postgresql.NewShiftTemplateRepository(db),
		postgresql.NewExtraShiftRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewHolidayRepository(db),
		postgresql.NewClockRecordRepository(db),
		time.UTC,
	)

	result, err := svc.CopyMonth(ctx, schedule.CopyMonthRequest{
		DepartmentID: departmentID,
		FromMonth:    3,
		FromYear:     2025,
		ToMonth:      4,
		ToYear:       2025,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Copied)
	assert.Equal(t, 1, result.Dropped)

	copied, err := scheduleRepo.ListMonthByDepartment(bg, departmentID, 2025, 4, companyID)
	require.NoError(t, err)
	require.Len(t, copied, 1)
	assert.Equal(t, time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), copied[0].ScheduleDate)
	require.NotNil(t, copied[0].ShiftTemplateID)
	assert.Equal(t, templateID, *copied[0].ShiftTemplateID)
}
