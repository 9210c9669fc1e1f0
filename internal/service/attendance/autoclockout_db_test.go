package attendance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
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

func seedTestCompany(t *testing.T, ctx context.Context, db *database.DB, regime string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO companies (name, regime, group_by, timezone, exclude_holiday_notify, settings, created_at, updated_at)
		VALUES ($1, $2, 'outlet', 'Asia/Kuala_Lumpur', FALSE, '{}', NOW(), NOW())
		RETURNING id
	`, fmt.Sprintf("Test Co %d", time.Now().UnixNano()), regime).Scan(&id)
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

func TestAutoClockOutSecondRunIsNoOp(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// The open-record sweep is date-wide, so start from a clean table.
	_, err := db.Exec(ctx, "TRUNCATE TABLE clock_records CASCADE")
	require.NoError(t, err)

	companyID := seedTestCompany(t, ctx, db, company.RegimeMimix)
	employeeID := seedTestEmployee(t, ctx, db, companyID)

	clockRepo := postgresql.NewClockRecordRepository(db)
	workDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	in := workDate.Add(9 * time.Hour)

	_, err = clockRepo.Create(ctx, attendance.ClockRecord{
		CompanyID:                companyID,
		EmployeeID:               employeeID,
		WorkDate:                 workDate,
		ClockIn1:                 &in,
		Status:                   attendance.StatusPending,
		MediaRetentionEligibleAt: workDate.AddDate(0, attendance.MediaRetentionMonths, 0),
	})
	require.NoError(t, err)

	job := NewAutoClockOutJob(
		db,
		clockRepo,
		postgresql.NewScheduleRepository(db),
		postgresql.NewCompanyRepository(db),
		time.UTC,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	first, err := job.RunForDate(ctx, workDate)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Processed)
	assert.Equal(t, 0, first.Failed)

	rec, err := clockRepo.GetByEmployeeAndDate(ctx, employeeID, workDate, companyID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.IsAutoClockOut)
	assert.True(t, rec.NeedsAdminReview)
	require.NotNil(t, rec.ClockOut1)

	// The auto-closed row is no longer open; a rerun finds nothing to do.
	second, err := job.RunForDate(ctx, workDate)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Processed)
	assert.Equal(t, 0, second.Failed)
}
