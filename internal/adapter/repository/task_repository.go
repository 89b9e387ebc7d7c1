package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abubakar1702/taskflow/internal/domain/dto"
	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	domainRepo "github.com/abubakar1702/taskflow/internal/domain/repository"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository(db *gorm.DB, logger *zap.Logger) domainRepo.TaskRepository {
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := conn(ctx, r.db).
		Preload("Creator").
		Preload("Project").
		Preload("Assignees").
		Preload("Subtasks").
		Preload("Subtasks.Assignee").
		Preload("Assets").
		First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("Failed to get task",
			zap.String("task_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	db := conn(ctx, r.db)
	if err := db.Omit("Assignees", "Subtasks", "Assets", "Creator", "Project").Create(task).Error; err != nil {
		r.logger.Error("Failed to create task",
			zap.String("title", task.Title),
			zap.Error(err))
		return fmt.Errorf("failed to create task: %w", err)
	}
	for _, assignee := range task.Assignees {
		row := model.TaskAssignee{TaskID: task.ID, UserID: assignee.ID}
		if err := db.Create(&row).Error; err != nil {
			r.logger.Error("Failed to attach assignee",
				zap.String("task_id", task.ID.String()),
				zap.String("user_id", assignee.ID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to attach assignee: %w", err)
		}
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, id uuid.UUID, updates model.TaskUpdate) (*model.Task, error) {
	fields := map[string]interface{}{}
	if updates.Title != nil {
		fields["title"] = *updates.Title
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.Status != nil {
		fields["status"] = *updates.Status
	}
	if updates.Priority != nil {
		fields["priority"] = *updates.Priority
	}
	if updates.DueDate != nil {
		fields["due_date"] = *updates.DueDate
	}
	if updates.DueTime != nil {
		fields["due_time"] = *updates.DueTime
	}
	if len(fields) > 0 {
		result := conn(ctx, r.db).Model(&model.Task{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			r.logger.Error("Failed to update task",
				zap.String("task_id", id.String()),
				zap.Error(result.Error))
			return nil, fmt.Errorf("failed to update task: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Where("task_id = ?", id).Delete(&model.TaskAssignee{}).Error; err != nil {
		return fmt.Errorf("failed to delete task assignees: %w", err)
	}
	result := db.Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Error("Failed to delete task",
			zap.String("task_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List applies the filter on top of the caller's visible set: tasks they
// created, are assigned to, or can reach through a project. Boolean filters
// are tri-state; false selects the complement rather than skipping.
func (r *taskRepository) List(ctx context.Context, filter dto.TaskFilter) ([]model.Task, error) {
	db := conn(ctx, r.db)
	query := db.Model(&model.Task{}).
		Preload("Assignees").
		Preload("Creator").
		Preload("Project")

	assigned := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.TaskAssignee{}).
		Select("task_id").
		Where("user_id = ?", filter.UserID)
	memberProjects := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", filter.UserID)
	createdProjects := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Project{}).
		Select("id").
		Where("creator_id = ?", filter.UserID)

	query = query.Where(
		"tasks.creator_id = ? OR tasks.id IN (?) OR tasks.project_id IN (?) OR tasks.project_id IN (?)",
		filter.UserID, assigned, memberProjects, createdProjects,
	)

	if filter.Priority != "" {
		query = query.Where("LOWER(tasks.priority) = LOWER(?)", filter.Priority)
	}
	if filter.Status != "" {
		query = query.Where("LOWER(tasks.status) = LOWER(?)", filter.Status)
	}
	if filter.CreatorID != nil {
		query = query.Where("tasks.creator_id = ?", *filter.CreatorID)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedToMe != nil {
		if *filter.AssignedToMe {
			query = query.Where("tasks.id IN (?)", assigned)
		} else {
			query = query.Where("tasks.id NOT IN (?)", assigned)
		}
	}
	if filter.CreatedByMe != nil {
		if *filter.CreatedByMe {
			query = query.Where("tasks.creator_id = ?", filter.UserID)
		} else {
			query = query.Where("tasks.creator_id IS NULL OR tasks.creator_id <> ?", filter.UserID)
		}
	}
	if filter.DueToday != nil {
		if *filter.DueToday {
			query = query.Where("tasks.due_date = CURRENT_DATE")
		} else {
			query = query.Where("tasks.due_date IS NULL OR tasks.due_date <> CURRENT_DATE")
		}
	}
	if filter.Overdue != nil {
		if *filter.Overdue {
			query = query.Where("tasks.due_date < CURRENT_DATE AND LOWER(tasks.status) <> 'done'")
		} else {
			query = query.Where("tasks.due_date IS NULL OR tasks.due_date >= CURRENT_DATE")
		}
	}

	switch filter.OrderBy {
	case dto.OrderByDueDate:
		query = query.Order("tasks.due_date ASC NULLS LAST")
	default:
		query = query.Order("tasks.created_at DESC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		r.logger.Error("Failed to list tasks",
			zap.String("user_id", filter.UserID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) SearchByTitle(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.Task, error) {
	db := conn(ctx, r.db)
	assigned := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.TaskAssignee{}).
		Select("task_id").
		Where("user_id = ?", userID)
	memberProjects := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)

	var tasks []model.Task
	err := db.
		Where("title ILIKE ?", "%"+query+"%").
		Where("creator_id = ? OR id IN (?) OR project_id IN (?)", userID, assigned, memberProjects).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		r.logger.Error("Failed to search tasks",
			zap.String("query", query),
			zap.Error(err))
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := conn(ctx, r.db).
		Preload("Assignees").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		r.logger.Error("Failed to list project tasks",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListByProjectAndCreator(ctx context.Context, projectID, creatorID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := conn(ctx, r.db).
		Where("project_id = ? AND creator_id = ?", projectID, creatorID).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by creator: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) ListByProjectAndAssignee(ctx context.Context, projectID, userID uuid.UUID) ([]model.Task, error) {
	db := conn(ctx, r.db)
	assigned := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.TaskAssignee{}).
		Select("task_id").
		Where("user_id = ?", userID)
	var tasks []model.Task
	err := db.
		Where("project_id = ? AND id IN (?)", projectID, assigned).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by assignee: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) AddAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	row := model.TaskAssignee{TaskID: taskID, UserID: userID}
	err := conn(ctx, r.db).Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		r.logger.Error("Failed to add assignee",
			zap.String("task_id", taskID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to add assignee: %w", err)
	}
	return nil
}

func (r *taskRepository) RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	err := conn(ctx, r.db).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&model.TaskAssignee{}).Error
	if err != nil {
		r.logger.Error("Failed to remove assignee",
			zap.String("task_id", taskID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to remove assignee: %w", err)
	}
	return nil
}

func (r *taskRepository) IsAssignee(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&model.TaskAssignee{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return count > 0, nil
}

func (r *taskRepository) ListCoAssigneeUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Raw(`
		SELECT DISTINCT ta.user_id
		FROM task_assignees ta
		WHERE ta.user_id <> ?
		  AND ta.task_id IN (SELECT task_id FROM task_assignees WHERE user_id = ?)
	`, userID, userID).Scan(&ids).Error
	if err != nil {
		r.logger.Error("Failed to list co-assignees",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list co-assignees: %w", err)
	}
	return ids, nil
}
