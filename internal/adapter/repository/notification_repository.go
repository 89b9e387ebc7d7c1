package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	domainRepo "github.com/abubakar1702/taskflow/internal/domain/repository"
)

// notificationRepository implements the NotificationRepository interface
type notificationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository instance
func NewNotificationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.NotificationRepository {
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var notification model.Notification
	err := conn(ctx, r.db).First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("Failed to get notification",
			zap.String("notification_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &notification, nil
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if err := conn(ctx, r.db).Omit("Recipient").Create(notification).Error; err != nil {
		r.logger.Error("Failed to create notification",
			zap.String("recipient_id", notification.RecipientID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]model.Notification, error) {
	var notifications []model.Notification
	err := conn(ctx, r.db).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		r.logger.Error("Failed to list notifications",
			zap.String("recipient_id", recipientID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	result := conn(ctx, r.db).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		r.logger.Error("Failed to mark notification read",
			zap.String("notification_id", id.String()),
			zap.Error(result.Error))
		return nil, fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.Notification{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Error("Failed to delete notification",
			zap.String("notification_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
