package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/domain/repository"
)

// NoteService manages personal notes. Notes are private to their owner,
// so every operation checks ownership before touching the row.
type NoteService struct {
	notes repository.NoteRepository
}

// NewNoteService creates a new note service instance.
func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// List returns the caller's notes, pinned first, newest first.
func (s *NoteService) List(ctx context.Context, userID uuid.UUID) ([]model.Note, error) {
	return s.notes.ListByOwner(ctx, userID)
}

// ListPinned returns only the caller's pinned notes, newest first.
func (s *NoteService) ListPinned(ctx context.Context, userID uuid.UUID) ([]model.Note, error) {
	return s.notes.ListPinnedByOwner(ctx, userID)
}

// Get returns a single note owned by the caller.
func (s *NoteService) Get(ctx context.Context, userID, noteID uuid.UUID) (*model.Note, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.OwnerID != userID {
		return nil, apperrors.ErrNotFound
	}
	return note, nil
}

// Create stores a new note for the caller.
func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, title, content string) (*model.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &apperrors.ValidationError{Field: "title", Message: "title is required"}
	}
	note := &model.Note{
		ID:      uuid.New(),
		OwnerID: userID,
		Title:   title,
		Content: content,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update applies partial changes to a note owned by the caller.
func (s *NoteService) Update(ctx context.Context, userID, noteID uuid.UUID, updates model.NoteUpdate) (*model.Note, error) {
	if _, err := s.Get(ctx, userID, noteID); err != nil {
		return nil, err
	}
	if updates.Title != nil && strings.TrimSpace(*updates.Title) == "" {
		return nil, &apperrors.ValidationError{Field: "title", Message: "title is required"}
	}
	return s.notes.Update(ctx, noteID, updates)
}

// Delete removes a note owned by the caller.
func (s *NoteService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, noteID); err != nil {
		return err
	}
	return s.notes.Delete(ctx, noteID)
}
