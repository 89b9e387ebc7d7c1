package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/domain/repository"
)

// SubtaskService provides subtask business logic. The assignee constraint —
// a subtask assignee must be the parent task's creator or one of its
// assignees — is enforced on both the create and update paths and surfaces
// as a field-level validation error.
type SubtaskService struct {
	subtasks repository.SubtaskRepository
	access   *AccessService
	logger   *zap.Logger
}

// NewSubtaskService creates a new subtask service instance.
func NewSubtaskService(subtasks repository.SubtaskRepository, access *AccessService, logger *zap.Logger) *SubtaskService {
	return &SubtaskService{
		subtasks: subtasks,
		access:   access,
		logger:   logger,
	}
}

// ValidateSubtaskAssignee checks the assignee constraint against the parent
// task. A nil assignee is always valid.
func ValidateSubtaskAssignee(task *model.Task, assigneeID *uuid.UUID) error {
	if assigneeID == nil {
		return nil
	}
	if task.IsCreator(*assigneeID) || task.IsAssignee(*assigneeID) {
		return nil
	}
	return apperrors.NewInvalidAssigneeError()
}

// List returns the subtasks of a task the actor can access.
func (s *SubtaskService) List(ctx context.Context, actorID, taskID uuid.UUID) ([]model.Subtask, error) {
	if _, err := s.access.EnsureTaskAccess(ctx, actorID, taskID); err != nil {
		return nil, err
	}
	return s.subtasks.ListByTask(ctx, taskID)
}

// Create adds a subtask under a task the actor can access.
func (s *SubtaskService) Create(ctx context.Context, actorID, taskID uuid.UUID, text string, assigneeID *uuid.UUID) (*model.Subtask, error) {
	task, err := s.access.EnsureTaskAccess(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &apperrors.ValidationError{Field: "text", Message: "text is required"}
	}
	if err := ValidateSubtaskAssignee(task, assigneeID); err != nil {
		return nil, err
	}

	subtask := &model.Subtask{
		ID:         uuid.New(),
		TaskID:     taskID,
		Text:       text,
		AssigneeID: assigneeID,
	}
	if err := s.subtasks.Create(ctx, subtask); err != nil {
		return nil, err
	}
	return subtask, nil
}

// Update applies a partial update; an assignee change re-runs the assignee
// constraint against the parent task.
func (s *SubtaskService) Update(ctx context.Context, actorID, taskID, subtaskID uuid.UUID, updates model.SubtaskUpdate) (*model.Subtask, error) {
	task, err := s.access.EnsureTaskAccess(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	subtask, err := s.subtasks.GetByID(ctx, subtaskID)
	if err != nil {
		return nil, err
	}
	if subtask.TaskID != taskID {
		return nil, apperrors.ErrNotFound
	}
	if updates.AssigneeID != nil {
		if err := ValidateSubtaskAssignee(task, *updates.AssigneeID); err != nil {
			return nil, err
		}
	}
	return s.subtasks.Update(ctx, subtaskID, updates)
}

// Delete removes a subtask of a task the actor can access.
func (s *SubtaskService) Delete(ctx context.Context, actorID, taskID, subtaskID uuid.UUID) error {
	if _, err := s.access.EnsureTaskAccess(ctx, actorID, taskID); err != nil {
		return err
	}
	subtask, err := s.subtasks.GetByID(ctx, subtaskID)
	if err != nil {
		return err
	}
	if subtask.TaskID != taskID {
		return apperrors.ErrNotFound
	}
	return s.subtasks.Delete(ctx, subtaskID)
}
