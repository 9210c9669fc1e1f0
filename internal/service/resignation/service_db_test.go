package resignation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/employee"
	"github.com/astaka-hr/hrms-backend-go/internal/domain/resignation"
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
		VALUES ($1, 'mimix', 'outlet', 'Asia/Kuala_Lumpur', FALSE, '{}', NOW(), NOW())
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
			'active', 'notice', 2600, 0, 1.5,
			'single', FALSE, 0, NOW(), NOW())
		RETURNING id
	`, companyID,
		fmt.Sprintf("E%d", time.Now().UnixNano()),
		fmt.Sprintf("%d", time.Now().UnixNano()),
	).Scan(&id)
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

func newTestResignationService(db *database.DB) resignation.ResignationService {
	return NewResignationService(
		db,
		postgresql.NewResignationRepository(db),
		postgresql.NewClearanceRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewCompanyRepository(db),
		postgresql.NewScheduleRepository(db),
		postgresql.NewLeaveRequestRepository(db),
		postgresql.NewLeaveBalanceRepository(db),
		postgresql.NewClaimRepository(db),
		postgresql.NewPayrollRunRepository(db),
	)
}

func TestProcessIsAllOrNothing(t *testing.T) {
	db := openTestDB(t)
	bg := context.Background()

	companyID := seedTestCompany(t, bg, db)
	employeeID := seedTestEmployee(t, bg, db, companyID)
	approverID := seedTestEmployee(t, bg, db, companyID)
	ctx := managerContext(t, companyID, approverID)

	resignationRepo := postgresql.NewResignationRepository(db)
	clearanceRepo := postgresql.NewClearanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)

	lwd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	res, err := resignationRepo.Create(bg, resignation.Resignation{
		CompanyID:          companyID,
		EmployeeID:         employeeID,
		NoticeDate:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		LastWorkingDay:     lwd,
		Status:             resignation.StatusClearing,
		RequiredNoticeDays: 28,
		ActualNoticeDays:   30,
	})
	require.NoError(t, err)

	// A precomputed settlement keeps Process from recalculating inside the tx.
	breakdown, err := json.Marshal(resignation.Breakdown{})
	require.NoError(t, err)
	_, err = db.Exec(bg,
		`UPDATE resignations SET settlement_breakdown = $1 WHERE id = $2`,
		breakdown, res.ID)
	require.NoError(t, err)

	require.NoError(t, clearanceRepo.BulkCreate(bg, []resignation.ClearanceItem{
		{ResignationID: res.ID, Label: "Return uniform", SortOrder: 1},
		{ResignationID: res.ID, Label: "Return keys", SortOrder: 2},
	}))

	// A shift booked beyond the last working day; Process must remove it.
	start, end := "09:00", "18:00"
	_, err = scheduleRepo.Create(bg, schedule.Schedule{
		CompanyID:    companyID,
		EmployeeID:   employeeID,
		ScheduleDate: time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
		StartTime:    &start,
		EndTime:      &end,
		Status:       schedule.StatusScheduled,
	})
	require.NoError(t, err)

	svc := newTestResignationService(db)

	// Incomplete clearance blocks the whole run; nothing may change.
	_, err = svc.Process(ctx, resignation.ProcessRequest{ID: res.ID})
	require.ErrorIs(t, err, resignation.ErrClearanceIncomplete)

	unchanged, err := resignationRepo.GetByID(bg, res.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, resignation.StatusClearing, unchanged.Status)

	emp, err := employeeRepo.GetByID(bg, employeeID, companyID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusActive, emp.Status)

	stillThere, err := scheduleRepo.GetByEmployeeAndDate(bg, employeeID,
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), companyID)
	require.NoError(t, err)
	assert.NotNil(t, stillThere)

	// With the checklist signed off, one call applies every effect.
	_, err = db.Exec(bg,
		`UPDATE clearance_items SET is_completed = TRUE, completed_at = NOW() WHERE resignation_id = $1`,
		res.ID)
	require.NoError(t, err)

	processed, err := svc.Process(ctx, resignation.ProcessRequest{ID: res.ID})
	require.NoError(t, err)
	assert.Equal(t, resignation.StatusCompleted, processed.Status)
	require.NotNil(t, processed.ProcessedBy)
	assert.Equal(t, approverID, *processed.ProcessedBy)

	emp, err = employeeRepo.GetByID(bg, employeeID, companyID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusInactive, emp.Status)
	assert.Equal(t, employee.EmploymentExited, emp.EmploymentStatus)
	require.NotNil(t, emp.LastWorkingDay)

	gone, err := scheduleRepo.GetByEmployeeAndDate(bg, employeeID,
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), companyID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
