package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/notification"
	"github.com/astaka-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

// Create implements notification.NotificationRepository. The partial unique
// index on (company_id, dedupe_key) makes re-delivery a no-op.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (company_id, employee_id, kind, title, body, dedupe_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, dedupe_key) WHERE dedupe_key IS NOT NULL DO NOTHING
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, n.CompanyID, n.EmployeeID, n.Kind, n.Title, n.Body, n.DedupeKey).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create notification: %w", err)
	}
	return true, nil
}

// ListByEmployee implements notification.NotificationRepository. Company-wide
// notifications (employee_id null) are included.
func (r *notificationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64, unreadOnly bool, companyID int64) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, kind, title, body, dedupe_key, is_read, read_at, created_at
		FROM notifications
		WHERE company_id = $1 AND (employee_id = $2 OR employee_id IS NULL)`
	if unreadOnly {
		query += " AND is_read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT 200"

	rows, err := q.Query(ctx, query, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.CompanyID, &n.EmployeeID, &n.Kind, &n.Title, &n.Body,
			&n.DedupeKey, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id int64, employeeID int64, companyID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND company_id = $2 AND (employee_id = $3 OR employee_id IS NULL)
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query, id, companyID, employeeID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification %d read: %w", id, err)
	}
	return nil
}

// MarkAllRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, employeeID int64, companyID int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE company_id = $1 AND (employee_id = $2 OR employee_id IS NULL) AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, companyID, employeeID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
