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

// projectRepository implements the ProjectRepository interface
type projectRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ProjectRepository {
	return &projectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := conn(ctx, r.db).
		Preload("Creator").
		Preload("Members").
		Preload("Members.User").
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("Failed to get project",
			zap.String("project_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := conn(ctx, r.db).Omit("Members", "Creator").Create(project).Error; err != nil {
		r.logger.Error("Failed to create project",
			zap.String("name", project.Name),
			zap.Error(err))
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) Update(ctx context.Context, id uuid.UUID, updates model.ProjectUpdate) (*model.Project, error) {
	fields := map[string]interface{}{}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if len(fields) > 0 {
		result := conn(ctx, r.db).Model(&model.Project{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			r.logger.Error("Failed to update project",
				zap.String("project_id", id.String()),
				zap.Error(result.Error))
			return nil, fmt.Errorf("failed to update project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.Project{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Error("Failed to delete project",
			zap.String("project_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *projectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	membership := conn(ctx, r.db).
		Model(&model.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)
	err := conn(ctx, r.db).
		Preload("Members").
		Preload("Members.User").
		Where("creator_id = ? OR id IN (?)", userID, membership).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		r.logger.Error("Failed to list projects for user",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (r *projectRepository) SearchByName(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.Project, error) {
	var projects []model.Project
	membership := conn(ctx, r.db).
		Model(&model.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)
	err := conn(ctx, r.db).
		Where("name ILIKE ?", "%"+query+"%").
		Where("creator_id = ? OR id IN (?)", userID, membership).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		r.logger.Error("Failed to search projects",
			zap.String("query", query),
			zap.Error(err))
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}
	return projects, nil
}
