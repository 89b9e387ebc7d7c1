package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

func newProjectService() (*usecase.ProjectService, *taskServiceMocks) {
	logger := zap.NewNop()
	m := &taskServiceMocks{
		tasks:         new(MockTaskRepository),
		subtasks:      new(MockSubtaskRepository),
		assets:        new(MockAssetRepository),
		important:     new(MockImportantTaskRepository),
		projects:      new(MockProjectRepository),
		members:       new(MockMemberRepository),
		notifications: new(MockNotificationRepository),
		sink:          new(MockNotificationSink),
		blobs:         new(MockBlobStore),
	}
	access := usecase.NewAccessService(m.projects, m.members, m.tasks, logger)
	notifier := usecase.NewNotificationService(m.notifications, m.sink, logger)
	taskSvc := usecase.NewTaskService(
		stubTxManager{}, m.tasks, m.subtasks, m.assets, m.important,
		access, notifier, m.blobs, logger,
	)
	service := usecase.NewProjectService(
		stubTxManager{}, m.projects, m.members, m.tasks, m.assets,
		access, taskSvc, logger,
	)
	return service, m
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()

	t.Run("enrolls the creator as admin", func(t *testing.T) {
		service, m := newProjectService()

		m.projects.On("Create", ctx, mock.Anything).Return(nil)
		m.members.On("Create", ctx, mock.MatchedBy(func(member *model.ProjectMember) bool {
			return member.UserID == creatorID && member.Role == model.RoleAdmin
		})).Return(nil)

		project, err := service.Create(ctx, creatorID, &model.Project{Name: "Roadmap"})

		assert.NoError(t, err)
		assert.Equal(t, creatorID, *project.CreatorID)
		m.projects.AssertExpectations(t)
		m.members.AssertExpectations(t)
	})

	t.Run("requires a name", func(t *testing.T) {
		service, m := newProjectService()

		_, err := service.Create(ctx, creatorID, &model.Project{Name: "  "})

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
		m.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rolls up a failed membership insert", func(t *testing.T) {
		service, m := newProjectService()

		m.projects.On("Create", ctx, mock.Anything).Return(nil)
		m.members.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := service.Create(ctx, creatorID, &model.Project{Name: "Roadmap"})

		var aborted *apperrors.TxAbortedError
		assert.ErrorAs(t, err, &aborted)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()
	projectID := uuid.New()

	t.Run("removes tasks, assets and memberships then releases blobs", func(t *testing.T) {
		service, m := newProjectService()
		project := &model.Project{ID: projectID, CreatorID: &creatorID}
		taskID := uuid.New()
		taskAssetID := uuid.New()
		projectAssetID := uuid.New()

		m.projects.On("GetByID", ctx, projectID).Return(project, nil)
		m.tasks.On("ListByProject", ctx, projectID).Return([]model.Task{{ID: taskID, ProjectID: &projectID}}, nil)
		m.assets.On("ListByTask", ctx, taskID).Return([]model.Asset{
			{ID: taskAssetID, StorageKey: "tasks/plan.pdf", TaskID: &taskID},
		}, nil)
		m.subtasks.On("DeleteByTask", ctx, taskID).Return(nil)
		m.assets.On("DeleteByTask", ctx, taskID).Return(nil)
		m.important.On("DeleteByTask", ctx, taskID).Return(nil)
		m.tasks.On("Delete", ctx, taskID).Return(nil)
		m.assets.On("ListByProject", ctx, projectID).Return([]model.Asset{
			{ID: projectAssetID, StorageKey: "projects/logo.svg", ProjectID: &projectID},
		}, nil)
		m.assets.On("Delete", ctx, projectAssetID).Return(nil)
		m.members.On("DeleteByProject", ctx, projectID).Return(nil)
		m.projects.On("Delete", ctx, projectID).Return(nil)
		m.blobs.On("Delete", ctx, "tasks/plan.pdf").Return(nil)
		m.blobs.On("Delete", ctx, "projects/logo.svg").Return(nil)

		err := service.Delete(ctx, creatorID, projectID)

		assert.NoError(t, err)
		m.projects.AssertExpectations(t)
		m.members.AssertExpectations(t)
		m.blobs.AssertExpectations(t)
	})

	t.Run("denies a plain member", func(t *testing.T) {
		service, m := newProjectService()
		otherID := uuid.New()
		project := &model.Project{ID: projectID, CreatorID: &otherID}

		m.projects.On("GetByID", ctx, projectID).Return(project, nil)
		m.members.On("Get", ctx, projectID, creatorID).Return(&model.ProjectMember{
			ProjectID: projectID, UserID: creatorID, Role: model.RoleMember,
		}, nil)

		err := service.Delete(ctx, creatorID, projectID)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.projects.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
