package notification

import "context"

type NotificationRepository interface {
	// Create inserts the notification. When DedupeKey is set and a row with
	// the same key already exists for the company, the insert is a no-op and
	// created is false.
	Create(ctx context.Context, n Notification) (created bool, err error)
	ListByEmployee(ctx context.Context, employeeID int64, unreadOnly bool, companyID int64) ([]Notification, error)
	MarkRead(ctx context.Context, id int64, employeeID int64, companyID int64) error
	MarkAllRead(ctx context.Context, employeeID int64, companyID int64) error
}
