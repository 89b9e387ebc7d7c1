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

// importantTaskRepository implements the ImportantTaskRepository interface
type importantTaskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewImportantTaskRepository creates a new important task repository instance
func NewImportantTaskRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ImportantTaskRepository {
	return &importantTaskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *importantTaskRepository) Mark(ctx context.Context, marker *model.ImportantTask) error {
	err := conn(ctx, r.db).Omit("Task").Create(marker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		r.logger.Error("Failed to mark task important",
			zap.String("user_id", marker.UserID.String()),
			zap.String("task_id", marker.TaskID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to mark task important: %w", err)
	}
	return nil
}

func (r *importantTaskRepository) Unmark(ctx context.Context, userID, taskID uuid.UUID) error {
	result := conn(ctx, r.db).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Delete(&model.ImportantTask{})
	if result.Error != nil {
		r.logger.Error("Failed to unmark important task",
			zap.String("user_id", userID.String()),
			zap.String("task_id", taskID.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to unmark important task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *importantTaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ImportantTask, error) {
	var markers []model.ImportantTask
	err := conn(ctx, r.db).
		Preload("Task").
		Preload("Task.Assignees").
		Where("user_id = ?", userID).
		Order("marked_at DESC").
		Find(&markers).Error
	if err != nil {
		r.logger.Error("Failed to list important tasks",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list important tasks: %w", err)
	}
	return markers, nil
}

func (r *importantTaskRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	err := conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Delete(&model.ImportantTask{}).Error
	if err != nil {
		r.logger.Error("Failed to delete important task markers",
			zap.String("task_id", taskID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete important task markers: %w", err)
	}
	return nil
}
