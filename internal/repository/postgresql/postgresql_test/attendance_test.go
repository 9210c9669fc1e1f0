package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/company"
	"github.com/astaka-hr/hrms-backend-go/internal/repository/postgresql"
)

func TestClockRecordUpsertKeepsOneRowPerDay(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	companyID := createTestCompany(t, ctx, db, company.RegimeMimix)
	employeeID := createTestEmployee(t, ctx, db, companyID)
	repo := postgresql.NewClockRecordRepository(db)

	workDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	in := workDate.Add(9 * time.Hour)

	first, err := repo.Upsert(ctx, attendance.ClockRecord{
		CompanyID:                companyID,
		EmployeeID:               employeeID,
		WorkDate:                 workDate,
		ClockIn1:                 &in,
		Status:                   attendance.StatusPending,
		MediaRetentionEligibleAt: workDate.AddDate(0, attendance.MediaRetentionMonths, 0),
	})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	out := workDate.Add(18 * time.Hour)
	second, err := repo.Upsert(ctx, attendance.ClockRecord{
		CompanyID:                companyID,
		EmployeeID:               employeeID,
		WorkDate:                 workDate,
		ClockIn1:                 &in,
		ClockOut2:                &out,
		TotalWorkMinutes:         480,
		Status:                   attendance.StatusApproved,
		MediaRetentionEligibleAt: workDate.AddDate(0, attendance.MediaRetentionMonths, 0),
	})
	require.NoError(t, err)

	// The second write lands on the first row rather than adding one.
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.ClockOut2)
	assert.Equal(t, 480, second.TotalWorkMinutes)
	assert.Equal(t, attendance.StatusApproved, second.Status)

	var count int
	err = db.QueryRow(ctx,
		`SELECT COUNT(*) FROM clock_records WHERE employee_id = $1 AND work_date = $2`,
		employeeID, workDate,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
