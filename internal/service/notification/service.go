package notification

import (
	"context"

	"github.com/astaka-hr/hrms-backend-go/internal/domain/notification"
	"github.com/astaka-hr/hrms-backend-go/internal/service/session"
)

type NotificationServiceImpl struct {
	notification.NotificationRepository
}

func NewNotificationService(repo notification.NotificationRepository) notification.NotificationService {
	return &NotificationServiceImpl{NotificationRepository: repo}
}

// List implements notification.NotificationService.
func (s *NotificationServiceImpl) List(ctx context.Context, unreadOnly bool) ([]notification.Notification, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.NotificationRepository.ListByEmployee(ctx, sess.EmployeeID, unreadOnly, sess.CompanyID)
}

// MarkRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id int64) error {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.NotificationRepository.MarkRead(ctx, id, sess.EmployeeID, sess.CompanyID)
}

// MarkAllRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context) error {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.NotificationRepository.MarkAllRead(ctx, sess.EmployeeID, sess.CompanyID)
}
