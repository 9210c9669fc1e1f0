package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/retention"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
)

type retentionLogRepositoryImpl struct {
	db *database.DB
}

func NewRetentionLogRepository(db *database.DB) retention.LogRepository {
	return &retentionLogRepositoryImpl{db: db}
}

// Create implements retention.LogRepository.
func (r *retentionLogRepositoryImpl) Create(ctx context.Context, e retention.LogEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO data_retention_logs (company_id, clock_record_id, fields_cleared, deleted_by, verified)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query, e.CompanyID, e.ClockRecordID, e.FieldsCleared, e.DeletedBy, e.Verified); err != nil {
		return fmt.Errorf("failed to create retention log for record %d: %w", e.ClockRecordID, err)
	}
	return nil
}

// List implements retention.LogRepository.
func (r *retentionLogRepositoryImpl) List(ctx context.Context, companyID int64, limit int) ([]retention.LogEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, clock_record_id, fields_cleared, deleted_by, verified, created_at
		FROM data_retention_logs
		WHERE company_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []retention.LogEntry
	for rows.Next() {
		var e retention.LogEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.ClockRecordID, &e.FieldsCleared, &e.DeletedBy, &e.Verified, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// LatestCreatedAt implements retention.LogRepository.
func (r *retentionLogRepositoryImpl) LatestCreatedAt(ctx context.Context, companyID int64) (*retention.LogEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, clock_record_id, fields_cleared, deleted_by, verified, created_at
		FROM data_retention_logs
		WHERE company_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var e retention.LogEntry
	err := q.QueryRow(ctx, query, companyID).Scan(
		&e.ID, &e.CompanyID, &e.ClockRecordID, &e.FieldsCleared, &e.DeletedBy, &e.Verified, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
