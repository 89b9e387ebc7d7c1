package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/domain/repository"
)

// ImportantTaskService manages per-user important-task bookmarks.
type ImportantTaskService struct {
	important repository.ImportantTaskRepository
	access    *AccessService
}

// NewImportantTaskService creates a new important task service instance.
func NewImportantTaskService(important repository.ImportantTaskRepository, access *AccessService) *ImportantTaskService {
	return &ImportantTaskService{important: important, access: access}
}

// Mark bookmarks a task for the user. Double-marking yields ErrConflict
// through the unique (user, task) constraint.
func (s *ImportantTaskService) Mark(ctx context.Context, userID, taskID uuid.UUID) (*model.ImportantTask, error) {
	if _, err := s.access.EnsureTaskAccess(ctx, userID, taskID); err != nil {
		return nil, err
	}
	marker := &model.ImportantTask{
		ID:     uuid.New(),
		UserID: userID,
		TaskID: taskID,
	}
	if err := s.important.Mark(ctx, marker); err != nil {
		return nil, err
	}
	return marker, nil
}

// Unmark removes the user's bookmark on a task.
func (s *ImportantTaskService) Unmark(ctx context.Context, userID, taskID uuid.UUID) error {
	return s.important.Unmark(ctx, userID, taskID)
}

// List returns the user's bookmarks with tasks preloaded.
func (s *ImportantTaskService) List(ctx context.Context, userID uuid.UUID) ([]model.ImportantTask, error) {
	return s.important.ListByUser(ctx, userID)
}
