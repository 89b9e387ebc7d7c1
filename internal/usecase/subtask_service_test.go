package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

type subtaskServiceMocks struct {
	subtasks *MockSubtaskRepository
	tasks    *MockTaskRepository
	projects *MockProjectRepository
	members  *MockMemberRepository
}

func newSubtaskService() (*usecase.SubtaskService, *subtaskServiceMocks) {
	logger := zap.NewNop()
	m := &subtaskServiceMocks{
		subtasks: new(MockSubtaskRepository),
		tasks:    new(MockTaskRepository),
		projects: new(MockProjectRepository),
		members:  new(MockMemberRepository),
	}
	access := usecase.NewAccessService(m.projects, m.members, m.tasks, logger)
	return usecase.NewSubtaskService(m.subtasks, access, logger), m
}

func TestValidateSubtaskAssignee(t *testing.T) {
	creatorID := uuid.New()
	assigneeID := uuid.New()
	outsiderID := uuid.New()
	task := &model.Task{
		ID:        uuid.New(),
		CreatorID: &creatorID,
		Assignees: []model.User{{ID: assigneeID}},
	}

	t.Run("nil assignee is valid", func(t *testing.T) {
		assert.NoError(t, usecase.ValidateSubtaskAssignee(task, nil))
	})

	t.Run("task creator is valid", func(t *testing.T) {
		assert.NoError(t, usecase.ValidateSubtaskAssignee(task, &creatorID))
	})

	t.Run("task assignee is valid", func(t *testing.T) {
		assert.NoError(t, usecase.ValidateSubtaskAssignee(task, &assigneeID))
	})

	t.Run("anyone else is rejected", func(t *testing.T) {
		err := usecase.ValidateSubtaskAssignee(task, &outsiderID)

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "assignee", verr.Field)
	})
}

func TestSubtaskService_Create(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()
	taskID := uuid.New()

	t.Run("rejects an assignee outside the task", func(t *testing.T) {
		service, m := newSubtaskService()
		outsiderID := uuid.New()
		task := &model.Task{ID: taskID, CreatorID: &creatorID}

		m.tasks.On("GetByID", ctx, taskID).Return(task, nil)

		_, err := service.Create(ctx, creatorID, taskID, "review draft", &outsiderID)

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "assignee", verr.Field)
		m.subtasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates an unassigned subtask", func(t *testing.T) {
		service, m := newSubtaskService()
		task := &model.Task{ID: taskID, CreatorID: &creatorID}

		m.tasks.On("GetByID", ctx, taskID).Return(task, nil)
		m.subtasks.On("Create", ctx, mock.Anything).Return(nil)

		subtask, err := service.Create(ctx, creatorID, taskID, "review draft", nil)

		assert.NoError(t, err)
		assert.Equal(t, taskID, subtask.TaskID)
		assert.Nil(t, subtask.AssigneeID)
		m.subtasks.AssertExpectations(t)
	})
}

func TestSubtaskService_Update(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()
	assigneeID := uuid.New()
	taskID := uuid.New()
	subtaskID := uuid.New()

	task := &model.Task{
		ID:        taskID,
		CreatorID: &creatorID,
		Assignees: []model.User{{ID: assigneeID}},
	}

	t.Run("clears the assignee explicitly", func(t *testing.T) {
		service, m := newSubtaskService()
		subtask := &model.Subtask{ID: subtaskID, TaskID: taskID, AssigneeID: &assigneeID}
		var cleared *uuid.UUID
		updates := model.SubtaskUpdate{AssigneeID: &cleared}

		m.tasks.On("GetByID", ctx, taskID).Return(task, nil)
		m.subtasks.On("GetByID", ctx, subtaskID).Return(subtask, nil)
		m.subtasks.On("Update", ctx, subtaskID, updates).Return(&model.Subtask{ID: subtaskID, TaskID: taskID}, nil)

		updated, err := service.Update(ctx, creatorID, taskID, subtaskID, updates)

		assert.NoError(t, err)
		assert.Nil(t, updated.AssigneeID)
		m.subtasks.AssertExpectations(t)
	})

	t.Run("re-checks the assignee constraint on reassignment", func(t *testing.T) {
		service, m := newSubtaskService()
		subtask := &model.Subtask{ID: subtaskID, TaskID: taskID}
		outsiderID := uuid.New()
		outsiderPtr := &outsiderID
		updates := model.SubtaskUpdate{AssigneeID: &outsiderPtr}

		m.tasks.On("GetByID", ctx, taskID).Return(task, nil)
		m.subtasks.On("GetByID", ctx, subtaskID).Return(subtask, nil)

		_, err := service.Update(ctx, creatorID, taskID, subtaskID, updates)

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		m.subtasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a subtask from another task", func(t *testing.T) {
		service, m := newSubtaskService()
		subtask := &model.Subtask{ID: subtaskID, TaskID: uuid.New()}

		m.tasks.On("GetByID", ctx, taskID).Return(task, nil)
		m.subtasks.On("GetByID", ctx, subtaskID).Return(subtask, nil)

		_, err := service.Update(ctx, creatorID, taskID, subtaskID, model.SubtaskUpdate{})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
