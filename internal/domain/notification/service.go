package notification

import "context"

// NotificationService exposes an employee's notification feed.
type NotificationService interface {
	List(ctx context.Context, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
}
