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

// noteRepository implements the NoteRepository interface
type noteRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewNoteRepository creates a new note repository instance
func NewNoteRepository(db *gorm.DB, logger *zap.Logger) domainRepo.NoteRepository {
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	var note model.Note
	err := conn(ctx, r.db).First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("Failed to get note",
			zap.String("note_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	if err := conn(ctx, r.db).Omit("Owner").Create(note).Error; err != nil {
		r.logger.Error("Failed to create note",
			zap.String("owner_id", note.OwnerID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *noteRepository) Update(ctx context.Context, id uuid.UUID, updates model.NoteUpdate) (*model.Note, error) {
	fields := map[string]interface{}{}
	if updates.Title != nil {
		fields["title"] = *updates.Title
	}
	if updates.Content != nil {
		fields["content"] = *updates.Content
	}
	if updates.IsPinned != nil {
		fields["is_pinned"] = *updates.IsPinned
	}
	if len(fields) > 0 {
		result := conn(ctx, r.db).Model(&model.Note{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			r.logger.Error("Failed to update note",
				zap.String("note_id", id.String()),
				zap.Error(result.Error))
			return nil, fmt.Errorf("failed to update note: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.Note{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Error("Failed to delete note",
			zap.String("note_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *noteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	var notes []model.Note
	err := conn(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("is_pinned DESC, created_at DESC").
		Find(&notes).Error
	if err != nil {
		r.logger.Error("Failed to list notes",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) ListPinnedByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	var notes []model.Note
	err := conn(ctx, r.db).
		Where("owner_id = ? AND is_pinned = ?", ownerID, true).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		r.logger.Error("Failed to list pinned notes",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list pinned notes: %w", err)
	}
	return notes, nil
}
