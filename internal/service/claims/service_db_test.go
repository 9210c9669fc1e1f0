package claims

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/claim"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/vision"
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

func sessionContext(t *testing.T, companyID, employeeID int64) context.Context {
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

// scriptedReader always reads the same receipt, counting invocations.
type scriptedReader struct {
	extraction vision.Extraction
	calls      int
}

func (r *scriptedReader) ReadReceipt(ctx context.Context, imageBase64 string) (vision.Extraction, error) {
	r.calls++
	return r.extraction, nil
}

func TestCreateRejectsDuplicateReceipts(t *testing.T) {
	db := openTestDB(t)
	bg := context.Background()

	companyID := seedTestCompany(t, bg, db)
	employeeID := seedTestEmployee(t, bg, db, companyID)
	ctx := sessionContext(t, companyID, employeeID)

	fs, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/media")
	require.NoError(t, err)

	amount := decimal.NewFromInt(20)
	reader := &scriptedReader{extraction: vision.Extraction{
		Amount:     &amount,
		Merchant:   "Kopi Corner",
		Date:       "2025-03-10",
		Confidence: vision.ConfidenceHigh,
		Currency:   "MYR",
	}}

	svc := NewClaimService(
		db,
		postgresql.NewClaimRepository(db),
		postgresql.NewEmployeeRepository(db),
		fs,
		reader,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	receiptA := base64.StdEncoding.EncodeToString([]byte("receipt image one"))
	req := claim.CreateRequest{
		EmployeeID: employeeID,
		ClaimDate:  "2025-03-10",
		Category:   "meal",
		Amount:     amount,
		Receipt:    &receiptA,
	}

	first, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.AutoApproved)
	assert.Equal(t, 1, reader.calls)

	// Identical bytes: caught by the stored hash before the reader runs.
	_, err = svc.Create(ctx, req)
	var dup *claim.DuplicateReceiptError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.Claim.ID, dup.ClaimID)
	assert.Equal(t, 1, reader.calls)

	// Different bytes, same extracted merchant/date/amount: caught by the
	// similarity check after extraction.
	receiptB := base64.StdEncoding.EncodeToString([]byte("receipt image two"))
	req.Receipt = &receiptB
	_, err = svc.Create(ctx, req)
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.Claim.ID, dup.ClaimID)
	assert.Equal(t, 2, reader.calls)
}
