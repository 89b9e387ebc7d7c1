package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	domainRepo "github.com/abubakar1702/taskflow/internal/domain/repository"
)

// memberRepository implements the MemberRepository interface
type memberRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMemberRepository creates a new project member repository instance
func NewMemberRepository(db *gorm.DB, logger *zap.Logger) domainRepo.MemberRepository {
	return &memberRepository{
		db:     db,
		logger: logger,
	}
}

func (r *memberRepository) GetByID(ctx context.Context, memberID uuid.UUID) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := conn(ctx, r.db).
		Preload("User").
		First(&member, "id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("Failed to get project member",
			zap.String("member_id", memberID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get project member: %w", err)
	}
	return &member, nil
}

// GetByIDForUpdate locks the membership row for the duration of the
// enclosing transaction. Concurrent removals of the same member block here
// and see the deletion after the first commit wins.
func (r *memberRepository) GetByIDForUpdate(ctx context.Context, memberID uuid.UUID) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&member, "id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("Failed to lock project member",
			zap.String("member_id", memberID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to lock project member: %w", err)
	}
	return &member, nil
}

func (r *memberRepository) Get(ctx context.Context, projectID, userID uuid.UUID) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := conn(ctx, r.db).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("Failed to get project member",
			zap.String("project_id", projectID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get project member: %w", err)
	}
	return &member, nil
}

func (r *memberRepository) Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&model.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

func (r *memberRepository) Create(ctx context.Context, member *model.ProjectMember) error {
	err := conn(ctx, r.db).Omit("Project", "User").Create(member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		r.logger.Error("Failed to create project member",
			zap.String("project_id", member.ProjectID.String()),
			zap.String("user_id", member.UserID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create project member: %w", err)
	}
	return nil
}

func (r *memberRepository) UpdateRole(ctx context.Context, memberID uuid.UUID, role string) (*model.ProjectMember, error) {
	result := conn(ctx, r.db).
		Model(&model.ProjectMember{}).
		Where("id = ?", memberID).
		Update("role", role)
	if result.Error != nil {
		r.logger.Error("Failed to update member role",
			zap.String("member_id", memberID.String()),
			zap.Error(result.Error))
		return nil, fmt.Errorf("failed to update member role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(ctx, memberID)
}

func (r *memberRepository) Delete(ctx context.Context, memberID uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.ProjectMember{}, "id = ?", memberID)
	if result.Error != nil {
		r.logger.Error("Failed to delete project member",
			zap.String("member_id", memberID.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete project member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *memberRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	var members []model.ProjectMember
	err := conn(ctx, r.db).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		r.logger.Error("Failed to list project members",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return members, nil
}

func (r *memberRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	err := conn(ctx, r.db).
		Where("project_id = ?", projectID).
		Delete(&model.ProjectMember{}).Error
	if err != nil {
		r.logger.Error("Failed to delete project members",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete project members: %w", err)
	}
	return nil
}

func (r *memberRepository) ListFellowUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Raw(`
		SELECT DISTINCT pm.user_id
		FROM project_members pm
		WHERE pm.user_id <> ?
		  AND pm.project_id IN (
			SELECT project_id FROM project_members WHERE user_id = ?
			UNION
			SELECT id FROM projects WHERE creator_id = ?
		  )
		UNION
		SELECT DISTINCT p.creator_id
		FROM projects p
		WHERE p.creator_id IS NOT NULL
		  AND p.creator_id <> ?
		  AND p.id IN (SELECT project_id FROM project_members WHERE user_id = ?)
	`, userID, userID, userID, userID, userID).Scan(&ids).Error
	if err != nil {
		r.logger.Error("Failed to list fellow users",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list fellow users: %w", err)
	}
	return ids, nil
}
