package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
)

// openTestDB connects to the database named by TEST_DATABASE_URL, skipping
// the test when none is configured.
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

func createTestCompany(t *testing.T, ctx context.Context, db *database.DB, regime string) int64 {
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

func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, companyID int64) int64 {
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
