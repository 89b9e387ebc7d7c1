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

// assetRepository implements the AssetRepository interface
type assetRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAssetRepository creates a new asset repository instance
func NewAssetRepository(db *gorm.DB, logger *zap.Logger) domainRepo.AssetRepository {
	return &assetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	err := conn(ctx, r.db).
		Preload("UploadedBy").
		First(&asset, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("Failed to get asset",
			zap.String("asset_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) error {
	if err := conn(ctx, r.db).Omit("Task", "Project", "UploadedBy").Create(asset).Error; err != nil {
		r.logger.Error("Failed to create asset",
			zap.String("file_name", asset.FileName),
			zap.Error(err))
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.Asset{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Error("Failed to delete asset",
			zap.String("asset_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *assetRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Asset, error) {
	var assets []model.Asset
	err := conn(ctx, r.db).
		Preload("UploadedBy").
		Where("task_id = ?", taskID).
		Order("uploaded_at DESC").
		Find(&assets).Error
	if err != nil {
		r.logger.Error("Failed to list task assets",
			zap.String("task_id", taskID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list task assets: %w", err)
	}
	return assets, nil
}

func (r *assetRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Asset, error) {
	var assets []model.Asset
	err := conn(ctx, r.db).
		Preload("UploadedBy").
		Where("project_id = ?", projectID).
		Order("uploaded_at DESC").
		Find(&assets).Error
	if err != nil {
		r.logger.Error("Failed to list project assets",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list project assets: %w", err)
	}
	return assets, nil
}

func (r *assetRepository) ListByTaskAndUploader(ctx context.Context, taskID, uploaderID uuid.UUID) ([]model.Asset, error) {
	var assets []model.Asset
	err := conn(ctx, r.db).
		Where("task_id = ? AND uploaded_by_id = ?", taskID, uploaderID).
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assets by uploader: %w", err)
	}
	return assets, nil
}

// ListProjectScopedByUploader returns the user's assets attached to the
// project directly or to any task inside it. Both halves matter when a
// member leaves: their project files and their task files all go.
func (r *assetRepository) ListProjectScopedByUploader(ctx context.Context, projectID, uploaderID uuid.UUID) ([]model.Asset, error) {
	db := conn(ctx, r.db)
	projectTasks := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Task{}).
		Select("id").
		Where("project_id = ?", projectID)
	var assets []model.Asset
	err := db.
		Where("uploaded_by_id = ?", uploaderID).
		Where("project_id = ? OR task_id IN (?)", projectID, projectTasks).
		Find(&assets).Error
	if err != nil {
		r.logger.Error("Failed to list project-scoped assets by uploader",
			zap.String("project_id", projectID.String()),
			zap.String("uploader_id", uploaderID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list project-scoped assets: %w", err)
	}
	return assets, nil
}

func (r *assetRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	err := conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Delete(&model.Asset{}).Error
	if err != nil {
		r.logger.Error("Failed to delete task assets",
			zap.String("task_id", taskID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete task assets: %w", err)
	}
	return nil
}
