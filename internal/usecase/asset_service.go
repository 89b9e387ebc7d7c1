package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/domain/repository"
)

const presignExpiry = 15 * time.Minute

// maxAssetSize caps uploads at 25 MiB, matching the original service limit.
const maxAssetSize = 25 << 20

// AssetService manages uploaded file assets. An asset belongs to exactly
// one of a task or a project. Uploads write the blob before the row; on a
// row insert failure the freshly written blob is deleted again. Deletes
// remove the row first and release the blob afterwards.
type AssetService struct {
	assets repository.AssetRepository
	access *AccessService
	blobs  BlobStore
	logger *zap.Logger
}

// NewAssetService creates a new asset service instance.
func NewAssetService(assets repository.AssetRepository, access *AccessService, blobs BlobStore, logger *zap.Logger) *AssetService {
	return &AssetService{
		assets: assets,
		access: access,
		blobs:  blobs,
		logger: logger,
	}
}

// UploadInput describes an incoming file and its owner scope. Exactly one
// of TaskID/ProjectID must be set.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	TaskID      *uuid.UUID
	ProjectID   *uuid.UUID
}

// Upload stores a file and records the asset against its task or project.
func (s *AssetService) Upload(ctx context.Context, uploaderID uuid.UUID, in UploadInput) (*model.Asset, error) {
	if (in.TaskID == nil) == (in.ProjectID == nil) {
		return nil, &apperrors.ValidationError{Field: "owner", Message: "asset must belong to exactly one of task or project"}
	}
	if in.Size > maxAssetSize {
		return nil, &apperrors.ValidationError{Field: "file", Message: "file exceeds the maximum allowed size"}
	}

	var scope string
	if in.TaskID != nil {
		if _, err := s.access.EnsureTaskAccess(ctx, uploaderID, *in.TaskID); err != nil {
			return nil, err
		}
		scope = fmt.Sprintf("tasks/%s", in.TaskID)
	} else {
		if _, err := s.access.EnsureProjectAccess(ctx, uploaderID, *in.ProjectID); err != nil {
			return nil, err
		}
		scope = fmt.Sprintf("projects/%s", in.ProjectID)
	}

	asset := &model.Asset{
		ID:           uuid.New(),
		FileName:     in.FileName,
		ContentType:  in.ContentType,
		SizeBytes:    in.Size,
		TaskID:       in.TaskID,
		ProjectID:    in.ProjectID,
		UploadedByID: uploaderID,
	}
	asset.StorageKey = fmt.Sprintf("assets/%s/%s", scope, asset.ID)

	if err := s.blobs.Upload(ctx, asset.StorageKey, in.Body, in.ContentType, in.Size); err != nil {
		return nil, fmt.Errorf("failed to upload asset blob: %w", err)
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		if delErr := s.blobs.Delete(ctx, asset.StorageKey); delErr != nil {
			s.logger.Warn("failed to clean up blob after insert failure",
				zap.String("storage_key", asset.StorageKey),
				zap.Error(delErr))
		}
		return nil, err
	}
	return asset, nil
}

// ListByTask returns the assets of a task the actor can access.
func (s *AssetService) ListByTask(ctx context.Context, actorID, taskID uuid.UUID) ([]model.Asset, error) {
	if _, err := s.access.EnsureTaskAccess(ctx, actorID, taskID); err != nil {
		return nil, err
	}
	return s.assets.ListByTask(ctx, taskID)
}

// ListByProject returns the assets attached directly to a project.
func (s *AssetService) ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]model.Asset, error) {
	if _, err := s.access.EnsureProjectAccess(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.assets.ListByProject(ctx, projectID)
}

// DownloadURL returns a presigned link for the asset's blob.
func (s *AssetService) DownloadURL(ctx context.Context, actorID, assetID uuid.UUID) (string, error) {
	asset, err := s.authorizedAsset(ctx, actorID, assetID)
	if err != nil {
		return "", err
	}
	return s.blobs.PresignGet(ctx, asset.StorageKey, presignExpiry)
}

// Delete removes the asset row and releases its blob.
func (s *AssetService) Delete(ctx context.Context, actorID, assetID uuid.UUID) error {
	asset, err := s.authorizedAsset(ctx, actorID, assetID)
	if err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, assetID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, asset.StorageKey); err != nil {
		s.logger.Warn("failed to release asset blob",
			zap.String("storage_key", asset.StorageKey),
			zap.Error(err))
	}
	return nil
}

func (s *AssetService) authorizedAsset(ctx context.Context, actorID, assetID uuid.UUID) (*model.Asset, error) {
	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	switch {
	case asset.TaskID != nil:
		if _, err := s.access.EnsureTaskAccess(ctx, actorID, *asset.TaskID); err != nil {
			return nil, err
		}
	case asset.ProjectID != nil:
		if _, err := s.access.EnsureProjectAccess(ctx, actorID, *asset.ProjectID); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.ErrNotFound
	}
	return asset, nil
}
