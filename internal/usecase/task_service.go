package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abubakar1702/taskflow/internal/domain/dto"
	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/domain/repository"
)

// TaskService provides task business logic, including the task-scoped
// consistency cascades: leaving a task, removing an assignee, and full task
// deletion. Every multi-step mutation runs inside a single transaction;
// asset blobs are released only after the transaction commits, so an abort
// never loses blob bytes (orphaned blobs on a post-commit delete failure
// are tolerated and logged).
type TaskService struct {
	tx        repository.TxManager
	tasks     repository.TaskRepository
	subtasks  repository.SubtaskRepository
	assets    repository.AssetRepository
	important repository.ImportantTaskRepository
	access    *AccessService
	notifier  *NotificationService
	blobs     BlobStore
	logger    *zap.Logger
}

// NewTaskService creates a new task service instance.
func NewTaskService(
	tx repository.TxManager,
	tasks repository.TaskRepository,
	subtasks repository.SubtaskRepository,
	assets repository.AssetRepository,
	important repository.ImportantTaskRepository,
	access *AccessService,
	notifier *NotificationService,
	blobs BlobStore,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		tx:        tx,
		tasks:     tasks,
		subtasks:  subtasks,
		assets:    assets,
		important: important,
		access:    access,
		notifier:  notifier,
		blobs:     blobs,
		logger:    logger,
	}
}

// Create creates a task. Creating inside a project requires the creator to
// be a project member or the project creator.
func (s *TaskService) Create(ctx context.Context, actorID uuid.UUID, task *model.Task) (*model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, &apperrors.ValidationError{Field: "title", Message: "title is required"}
	}
	if task.ProjectID != nil {
		if _, err := s.access.EnsureProjectAccess(ctx, actorID, *task.ProjectID); err != nil {
			return nil, err
		}
	}

	task.ID = uuid.New()
	task.CreatorID = &actorID
	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	for _, assignee := range task.Assignees {
		if assignee.ID == actorID {
			continue
		}
		s.notifier.Notify(ctx, assignee.ID, model.NotificationTaskAssigned,
			"You were assigned to task "+task.Title,
			map[string]interface{}{"task_id": task.ID.String()})
	}
	return task, nil
}

// Get returns a task visible to the actor.
func (s *TaskService) Get(ctx context.Context, actorID, taskID uuid.UUID) (*model.Task, error) {
	return s.access.EnsureTaskAccess(ctx, actorID, taskID)
}

// Update applies a partial update to a task the actor can access.
func (s *TaskService) Update(ctx context.Context, actorID, taskID uuid.UUID, updates model.TaskUpdate) (*model.Task, error) {
	if err := validateStruct(updates); err != nil {
		return nil, err
	}
	if _, err := s.access.EnsureTaskAccess(ctx, actorID, taskID); err != nil {
		return nil, err
	}
	return s.tasks.Update(ctx, taskID, updates)
}

// List returns tasks matching the filter, restricted to those the caller
// created, is assigned to, or can see through project membership.
func (s *TaskService) List(ctx context.Context, filter dto.TaskFilter) ([]model.Task, error) {
	return s.tasks.List(ctx, filter)
}

// Delete removes a task and everything it owns: subtasks, assets and
// important-task markers, then the task row itself. All row deletions are
// atomic; blobs are released after commit.
func (s *TaskService) Delete(ctx context.Context, actorID, taskID uuid.UUID) error {
	if _, err := s.access.EnsureTaskAccess(ctx, actorID, taskID); err != nil {
		return err
	}

	var blobKeys []string
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		keys, err := s.deleteTaskTx(ctx, taskID)
		if err != nil {
			return err
		}
		blobKeys = keys
		return nil
	})
	if err != nil {
		return apperrors.NewTxAbortedError(err)
	}

	s.releaseBlobs(ctx, blobKeys)
	return nil
}

// AddAssignee adds a user to the task's assignee set and notifies them.
func (s *TaskService) AddAssignee(ctx context.Context, actorID, taskID, userID uuid.UUID) error {
	task, err := s.access.EnsureTaskAccess(ctx, actorID, taskID)
	if err != nil {
		return err
	}
	if task.IsAssignee(userID) {
		return apperrors.ErrConflict
	}
	if err := s.tasks.AddAssignee(ctx, taskID, userID); err != nil {
		return err
	}
	s.notifier.Notify(ctx, userID, model.NotificationAssigneeAdded,
		"You were assigned to task "+task.Title,
		map[string]interface{}{"task_id": taskID.String(), "actor_id": actorID.String()})
	return nil
}

// RemoveAssignee removes a user from the task's assignee set and clears
// (and un-completes) any subtask of the task assigned to them. Assets
// uploaded by the removed assignee are left in place.
func (s *TaskService) RemoveAssignee(ctx context.Context, actorID, taskID, userID uuid.UUID) error {
	task, err := s.access.EnsureTaskAccess(ctx, actorID, taskID)
	if err != nil {
		return err
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.tasks.RemoveAssignee(ctx, taskID, userID); err != nil {
			return err
		}
		return s.subtasks.ClearAssignee(ctx, taskID, userID)
	})
	if err != nil {
		return apperrors.NewTxAbortedError(err)
	}

	s.notifier.Notify(ctx, userID, model.NotificationAssigneeRemoved,
		"You were removed from task "+task.Title,
		map[string]interface{}{"task_id": taskID.String(), "actor_id": actorID.String()})
	return nil
}

// LeaveTask removes the user's own assignment from the task. The user must
// currently be an assignee. Atomically: the assignment is removed, every
// subtask of the task assigned to the user is cleared and un-completed, and
// every asset on the task uploaded by the user is deleted.
func (s *TaskService) LeaveTask(ctx context.Context, userID, taskID uuid.UUID) error {
	var blobKeys []string
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
			return err
		}
		assigned, err := s.tasks.IsAssignee(ctx, taskID, userID)
		if err != nil {
			return err
		}
		if !assigned {
			return apperrors.ErrNotAssignee
		}

		if err := s.tasks.RemoveAssignee(ctx, taskID, userID); err != nil {
			return err
		}
		if err := s.subtasks.ClearAssignee(ctx, taskID, userID); err != nil {
			return err
		}

		assets, err := s.assets.ListByTaskAndUploader(ctx, taskID, userID)
		if err != nil {
			return err
		}
		for _, asset := range assets {
			if err := s.assets.Delete(ctx, asset.ID); err != nil {
				return err
			}
			blobKeys = append(blobKeys, asset.StorageKey)
		}
		return nil
	})
	if err != nil {
		return apperrors.NewTxAbortedError(err)
	}

	s.logger.Info("user left task",
		zap.String("task_id", taskID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("assets_removed", len(blobKeys)))
	s.releaseBlobs(ctx, blobKeys)
	return nil
}

// deleteTaskTx removes a task and its owned rows inside the caller's
// transaction and returns the storage keys of deleted assets. Blob release
// is the caller's responsibility, after commit.
func (s *TaskService) deleteTaskTx(ctx context.Context, taskID uuid.UUID) ([]string, error) {
	assets, err := s.assets.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(assets))
	for _, asset := range assets {
		keys = append(keys, asset.StorageKey)
	}

	if err := s.subtasks.DeleteByTask(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.assets.DeleteByTask(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.important.DeleteByTask(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *TaskService) releaseBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to release asset blob",
				zap.String("storage_key", key),
				zap.Error(err))
		}
	}
}
