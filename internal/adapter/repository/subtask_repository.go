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

// subtaskRepository implements the SubtaskRepository interface
type subtaskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubtaskRepository creates a new subtask repository instance
func NewSubtaskRepository(db *gorm.DB, logger *zap.Logger) domainRepo.SubtaskRepository {
	return &subtaskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *subtaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subtask, error) {
	var subtask model.Subtask
	err := conn(ctx, r.db).
		Preload("Assignee").
		First(&subtask, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("Failed to get subtask",
			zap.String("subtask_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subtask: %w", err)
	}
	return &subtask, nil
}

func (r *subtaskRepository) Create(ctx context.Context, subtask *model.Subtask) error {
	if err := conn(ctx, r.db).Omit("Task", "Assignee").Create(subtask).Error; err != nil {
		r.logger.Error("Failed to create subtask",
			zap.String("task_id", subtask.TaskID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create subtask: %w", err)
	}
	return nil
}

func (r *subtaskRepository) Update(ctx context.Context, id uuid.UUID, updates model.SubtaskUpdate) (*model.Subtask, error) {
	fields := map[string]interface{}{}
	if updates.Text != nil {
		fields["text"] = *updates.Text
	}
	if updates.AssigneeID != nil {
		fields["assignee_id"] = *updates.AssigneeID
	}
	if updates.IsCompleted != nil {
		fields["is_completed"] = *updates.IsCompleted
	}
	if len(fields) > 0 {
		result := conn(ctx, r.db).Model(&model.Subtask{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			r.logger.Error("Failed to update subtask",
				zap.String("subtask_id", id.String()),
				zap.Error(result.Error))
			return nil, fmt.Errorf("failed to update subtask: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *subtaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.Subtask{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Error("Failed to delete subtask",
			zap.String("subtask_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete subtask: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *subtaskRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Subtask, error) {
	var subtasks []model.Subtask
	err := conn(ctx, r.db).
		Preload("Assignee").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&subtasks).Error
	if err != nil {
		r.logger.Error("Failed to list subtasks",
			zap.String("task_id", taskID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	return subtasks, nil
}

func (r *subtaskRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	err := conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Delete(&model.Subtask{}).Error
	if err != nil {
		r.logger.Error("Failed to delete subtasks",
			zap.String("task_id", taskID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete subtasks: %w", err)
	}
	return nil
}

// ClearAssignee nulls the assignee and resets completion on the user's
// subtasks within a task. Un-completing keeps the checklist honest once
// nobody owns the item anymore.
func (r *subtaskRepository) ClearAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	err := conn(ctx, r.db).
		Model(&model.Subtask{}).
		Where("task_id = ? AND assignee_id = ?", taskID, userID).
		Updates(map[string]interface{}{
			"assignee_id":  nil,
			"is_completed": false,
		}).Error
	if err != nil {
		r.logger.Error("Failed to clear subtask assignee",
			zap.String("task_id", taskID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to clear subtask assignee: %w", err)
	}
	return nil
}

// ClearAssigneeInProject does the same across every task of a project.
func (r *subtaskRepository) ClearAssigneeInProject(ctx context.Context, projectID, userID uuid.UUID) error {
	db := conn(ctx, r.db)
	projectTasks := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Task{}).
		Select("id").
		Where("project_id = ?", projectID)
	err := db.
		Model(&model.Subtask{}).
		Where("assignee_id = ? AND task_id IN (?)", userID, projectTasks).
		Updates(map[string]interface{}{
			"assignee_id":  nil,
			"is_completed": false,
		}).Error
	if err != nil {
		r.logger.Error("Failed to clear subtask assignee in project",
			zap.String("project_id", projectID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to clear subtask assignee in project: %w", err)
	}
	return nil
}
