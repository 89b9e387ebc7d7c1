package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/domain/repository"
)

// NotificationService persists per-user notifications and fans them out to
// the live sink. Fan-out is best effort: a failed publish or insert is
// logged and never fails the operation that triggered it.
type NotificationService struct {
	notifications repository.NotificationRepository
	sink          NotificationSink
	logger        *zap.Logger
}

// NewNotificationService creates a new notification service instance.
func NewNotificationService(
	notifications repository.NotificationRepository,
	sink NotificationSink,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		sink:          sink,
		logger:        logger,
	}
}

// Notify records a notification for the recipient and publishes it to the
// sink. Errors are swallowed after logging.
func (s *NotificationService) Notify(ctx context.Context, recipientID uuid.UUID, typ, message string, data map[string]interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn("failed to encode notification payload",
			zap.String("recipient_id", recipientID.String()),
			zap.String("type", typ),
			zap.Error(err))
		payload = []byte("{}")
	}

	notification := &model.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Type:        typ,
		Message:     message,
		Data:        payload,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("failed to persist notification",
			zap.String("recipient_id", recipientID.String()),
			zap.String("type", typ),
			zap.Error(err))
		return
	}

	channel := fmt.Sprintf("user:%s:notifications", recipientID)
	if err := s.sink.Publish(ctx, channel, notification); err != nil {
		s.logger.Warn("failed to publish notification",
			zap.String("recipient_id", recipientID.String()),
			zap.String("type", typ),
			zap.Error(err))
	}
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return s.notifications.ListByRecipient(ctx, userID)
}

// MarkRead marks a notification read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*model.Notification, error) {
	notification, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.RecipientID != userID {
		return nil, apperrors.ErrForbidden
	}
	return s.notifications.MarkRead(ctx, notificationID)
}

// Delete removes a notification. Only the recipient may do so; a foreign
// notification is reported absent rather than forbidden.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.RecipientID != userID {
		return apperrors.ErrNotFound
	}
	return s.notifications.Delete(ctx, notificationID)
}
