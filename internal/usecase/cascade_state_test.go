package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/usecase"
)

// storeState is a small in-memory store backing the cascade scenario tests.
// The fakes below override just the state-bearing repository methods; the
// embedded mocks make any call outside the expected surface fail loudly.
type storeState struct {
	projects  map[uuid.UUID]*model.Project
	members   map[uuid.UUID]*model.ProjectMember
	tasks     map[uuid.UUID]*model.Task
	assignees map[uuid.UUID]map[uuid.UUID]bool
	subtasks  map[uuid.UUID]*model.Subtask
	assets    map[uuid.UUID]*model.Asset
	important map[uuid.UUID]*model.ImportantTask
}

func newStoreState() *storeState {
	return &storeState{
		projects:  make(map[uuid.UUID]*model.Project),
		members:   make(map[uuid.UUID]*model.ProjectMember),
		tasks:     make(map[uuid.UUID]*model.Task),
		assignees: make(map[uuid.UUID]map[uuid.UUID]bool),
		subtasks:  make(map[uuid.UUID]*model.Subtask),
		assets:    make(map[uuid.UUID]*model.Asset),
		important: make(map[uuid.UUID]*model.ImportantTask),
	}
}

func (s *storeState) addTask(task *model.Task, assigneeIDs ...uuid.UUID) {
	s.tasks[task.ID] = task
	set := make(map[uuid.UUID]bool, len(assigneeIDs))
	for _, id := range assigneeIDs {
		set[id] = true
	}
	s.assignees[task.ID] = set
}

func (s *storeState) inProject(task *model.Task, projectID uuid.UUID) bool {
	return task.ProjectID != nil && *task.ProjectID == projectID
}

type fakeProjects struct {
	*MockProjectRepository
	s *storeState
}

func (f *fakeProjects) GetByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	project, ok := f.s.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return project, nil
}

type fakeMembers struct {
	*MockMemberRepository
	s *storeState
}

func (f *fakeMembers) GetByIDForUpdate(_ context.Context, memberID uuid.UUID) (*model.ProjectMember, error) {
	member, ok := f.s.members[memberID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return member, nil
}

func (f *fakeMembers) Delete(_ context.Context, memberID uuid.UUID) error {
	if _, ok := f.s.members[memberID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.s.members, memberID)
	return nil
}

type fakeTasks struct {
	*MockTaskRepository
	s *storeState
}

func (f *fakeTasks) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	task, ok := f.s.tasks[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return task, nil
}

func (f *fakeTasks) IsAssignee(_ context.Context, taskID, userID uuid.UUID) (bool, error) {
	return f.s.assignees[taskID][userID], nil
}

func (f *fakeTasks) RemoveAssignee(_ context.Context, taskID, userID uuid.UUID) error {
	delete(f.s.assignees[taskID], userID)
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.s.tasks, id)
	delete(f.s.assignees, id)
	return nil
}

func (f *fakeTasks) ListByProjectAndCreator(_ context.Context, projectID, creatorID uuid.UUID) ([]model.Task, error) {
	var out []model.Task
	for _, task := range f.s.tasks {
		if f.s.inProject(task, projectID) && task.CreatorID != nil && *task.CreatorID == creatorID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (f *fakeTasks) ListByProjectAndAssignee(_ context.Context, projectID, userID uuid.UUID) ([]model.Task, error) {
	var out []model.Task
	for _, task := range f.s.tasks {
		if f.s.inProject(task, projectID) && f.s.assignees[task.ID][userID] {
			out = append(out, *task)
		}
	}
	return out, nil
}

type fakeSubtasks struct {
	*MockSubtaskRepository
	s *storeState
}

func (f *fakeSubtasks) ClearAssignee(_ context.Context, taskID, userID uuid.UUID) error {
	for _, subtask := range f.s.subtasks {
		if subtask.TaskID == taskID && subtask.AssigneeID != nil && *subtask.AssigneeID == userID {
			subtask.AssigneeID = nil
			subtask.IsCompleted = false
		}
	}
	return nil
}

func (f *fakeSubtasks) ClearAssigneeInProject(_ context.Context, projectID, userID uuid.UUID) error {
	for _, subtask := range f.s.subtasks {
		task, ok := f.s.tasks[subtask.TaskID]
		if !ok || !f.s.inProject(task, projectID) {
			continue
		}
		if subtask.AssigneeID != nil && *subtask.AssigneeID == userID {
			subtask.AssigneeID = nil
			subtask.IsCompleted = false
		}
	}
	return nil
}

func (f *fakeSubtasks) DeleteByTask(_ context.Context, taskID uuid.UUID) error {
	for id, subtask := range f.s.subtasks {
		if subtask.TaskID == taskID {
			delete(f.s.subtasks, id)
		}
	}
	return nil
}

type fakeAssets struct {
	*MockAssetRepository
	s *storeState
}

func (f *fakeAssets) ListByTask(_ context.Context, taskID uuid.UUID) ([]model.Asset, error) {
	var out []model.Asset
	for _, asset := range f.s.assets {
		if asset.TaskID != nil && *asset.TaskID == taskID {
			out = append(out, *asset)
		}
	}
	return out, nil
}

func (f *fakeAssets) ListByTaskAndUploader(_ context.Context, taskID, uploaderID uuid.UUID) ([]model.Asset, error) {
	var out []model.Asset
	for _, asset := range f.s.assets {
		if asset.TaskID != nil && *asset.TaskID == taskID && asset.UploadedByID == uploaderID {
			out = append(out, *asset)
		}
	}
	return out, nil
}

func (f *fakeAssets) ListProjectScopedByUploader(_ context.Context, projectID, uploaderID uuid.UUID) ([]model.Asset, error) {
	var out []model.Asset
	for _, asset := range f.s.assets {
		if asset.UploadedByID != uploaderID {
			continue
		}
		if asset.ProjectID != nil && *asset.ProjectID == projectID {
			out = append(out, *asset)
			continue
		}
		if asset.TaskID != nil {
			if task, ok := f.s.tasks[*asset.TaskID]; ok && f.s.inProject(task, projectID) {
				out = append(out, *asset)
			}
		}
	}
	return out, nil
}

func (f *fakeAssets) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.s.assets[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.s.assets, id)
	return nil
}

func (f *fakeAssets) DeleteByTask(_ context.Context, taskID uuid.UUID) error {
	for id, asset := range f.s.assets {
		if asset.TaskID != nil && *asset.TaskID == taskID {
			delete(f.s.assets, id)
		}
	}
	return nil
}

type fakeImportant struct {
	*MockImportantTaskRepository
	s *storeState
}

func (f *fakeImportant) DeleteByTask(_ context.Context, taskID uuid.UUID) error {
	for id, marker := range f.s.important {
		if marker.TaskID == taskID {
			delete(f.s.important, id)
		}
	}
	return nil
}

type cascadeFixture struct {
	state     *storeState
	blobs     *MockBlobStore
	taskSvc   *usecase.TaskService
	memberSvc *usecase.ProjectMemberService
}

func newCascadeFixture() *cascadeFixture {
	logger := zap.NewNop()
	state := newStoreState()

	projects := &fakeProjects{MockProjectRepository: new(MockProjectRepository), s: state}
	members := &fakeMembers{MockMemberRepository: new(MockMemberRepository), s: state}
	tasks := &fakeTasks{MockTaskRepository: new(MockTaskRepository), s: state}
	subtasks := &fakeSubtasks{MockSubtaskRepository: new(MockSubtaskRepository), s: state}
	assets := &fakeAssets{MockAssetRepository: new(MockAssetRepository), s: state}
	important := &fakeImportant{MockImportantTaskRepository: new(MockImportantTaskRepository), s: state}

	notifications := new(MockNotificationRepository)
	notifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	sink := new(MockNotificationSink)
	sink.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	blobs := new(MockBlobStore)
	blobs.On("Delete", mock.Anything, mock.Anything).Return(nil)

	access := usecase.NewAccessService(projects, members, tasks, logger)
	notifier := usecase.NewNotificationService(notifications, sink, logger)
	taskSvc := usecase.NewTaskService(
		stubTxManager{}, tasks, subtasks, assets, important,
		access, notifier, blobs, logger,
	)
	memberSvc := usecase.NewProjectMemberService(
		stubTxManager{}, members, tasks, subtasks, assets, new(MockUserRepository),
		access, taskSvc, notifier, blobs, logger,
	)
	return &cascadeFixture{state: state, blobs: blobs, taskSvc: taskSvc, memberSvc: memberSvc}
}

func TestLeaveTask_StoreState(t *testing.T) {
	ctx := context.Background()
	f := newCascadeFixture()
	userID := uuid.New()
	otherID := uuid.New()
	taskID := uuid.New()

	f.state.addTask(&model.Task{ID: taskID, Title: "Ship the release"}, userID, otherID)
	ownSubtask := &model.Subtask{ID: uuid.New(), TaskID: taskID, Text: "write changelog", AssigneeID: &userID, IsCompleted: true}
	otherSubtask := &model.Subtask{ID: uuid.New(), TaskID: taskID, Text: "tag the build", AssigneeID: &otherID, IsCompleted: true}
	f.state.subtasks[ownSubtask.ID] = ownSubtask
	f.state.subtasks[otherSubtask.ID] = otherSubtask
	ownAsset := &model.Asset{ID: uuid.New(), StorageKey: "tasks/own.pdf", TaskID: &taskID, UploadedByID: userID}
	otherAsset := &model.Asset{ID: uuid.New(), StorageKey: "tasks/other.pdf", TaskID: &taskID, UploadedByID: otherID}
	f.state.assets[ownAsset.ID] = ownAsset
	f.state.assets[otherAsset.ID] = otherAsset

	err := f.taskSvc.LeaveTask(ctx, userID, taskID)
	require.NoError(t, err)

	assert.False(t, f.state.assignees[taskID][userID])
	assert.True(t, f.state.assignees[taskID][otherID])

	assert.Nil(t, ownSubtask.AssigneeID)
	assert.False(t, ownSubtask.IsCompleted, "subtask completed by the leaver must be un-completed")
	assert.NotNil(t, otherSubtask.AssigneeID)
	assert.True(t, otherSubtask.IsCompleted)

	assert.NotContains(t, f.state.assets, ownAsset.ID)
	assert.Contains(t, f.state.assets, otherAsset.ID)
	f.blobs.AssertCalled(t, "Delete", mock.Anything, "tasks/own.pdf")
	f.blobs.AssertNotCalled(t, "Delete", mock.Anything, "tasks/other.pdf")
}

func TestRemoveProjectMember_StoreState(t *testing.T) {
	ctx := context.Background()
	f := newCascadeFixture()
	adminID := uuid.New()
	memberUserID := uuid.New()
	projectID := uuid.New()
	memberID := uuid.New()

	f.state.projects[projectID] = &model.Project{ID: projectID, Name: "Roadmap", CreatorID: &adminID}
	f.state.members[memberID] = &model.ProjectMember{ID: memberID, ProjectID: projectID, UserID: memberUserID, Role: model.RoleMember}

	// A task the member created, with everything hanging off it.
	createdTaskID := uuid.New()
	f.state.addTask(&model.Task{ID: createdTaskID, ProjectID: &projectID, CreatorID: &memberUserID}, memberUserID)
	createdSubtask := &model.Subtask{ID: uuid.New(), TaskID: createdTaskID, Text: "draft"}
	f.state.subtasks[createdSubtask.ID] = createdSubtask
	createdAsset := &model.Asset{ID: uuid.New(), StorageKey: "tasks/draft.fig", TaskID: &createdTaskID, UploadedByID: memberUserID}
	f.state.assets[createdAsset.ID] = createdAsset
	marker := &model.ImportantTask{ID: uuid.New(), UserID: adminID, TaskID: createdTaskID}
	f.state.important[marker.ID] = marker

	// A surviving task created by the admin, with the member involved.
	survivingTaskID := uuid.New()
	f.state.addTask(&model.Task{ID: survivingTaskID, ProjectID: &projectID, CreatorID: &adminID}, memberUserID, adminID)
	memberSubtask := &model.Subtask{ID: uuid.New(), TaskID: survivingTaskID, Text: "review", AssigneeID: &memberUserID, IsCompleted: true}
	adminSubtask := &model.Subtask{ID: uuid.New(), TaskID: survivingTaskID, Text: "approve", AssigneeID: &adminID, IsCompleted: true}
	f.state.subtasks[memberSubtask.ID] = memberSubtask
	f.state.subtasks[adminSubtask.ID] = adminSubtask
	memberAsset := &model.Asset{ID: uuid.New(), StorageKey: "tasks/notes.txt", TaskID: &survivingTaskID, UploadedByID: memberUserID}
	adminAsset := &model.Asset{ID: uuid.New(), StorageKey: "tasks/minutes.txt", TaskID: &survivingTaskID, UploadedByID: adminID}
	f.state.assets[memberAsset.ID] = memberAsset
	f.state.assets[adminAsset.ID] = adminAsset

	err := f.memberSvc.Remove(ctx, adminID, projectID, memberID)
	require.NoError(t, err)

	// The created task and everything it owned are gone.
	assert.NotContains(t, f.state.tasks, createdTaskID)
	assert.NotContains(t, f.state.subtasks, createdSubtask.ID)
	assert.NotContains(t, f.state.assets, createdAsset.ID)
	assert.NotContains(t, f.state.important, marker.ID)

	// The surviving task lost only the member's involvement.
	assert.Contains(t, f.state.tasks, survivingTaskID)
	assert.False(t, f.state.assignees[survivingTaskID][memberUserID])
	assert.True(t, f.state.assignees[survivingTaskID][adminID])
	assert.Nil(t, memberSubtask.AssigneeID)
	assert.False(t, memberSubtask.IsCompleted, "subtask completed by the removed member must be un-completed")
	assert.NotNil(t, adminSubtask.AssigneeID)
	assert.True(t, adminSubtask.IsCompleted)
	assert.NotContains(t, f.state.assets, memberAsset.ID)
	assert.Contains(t, f.state.assets, adminAsset.ID)

	// The membership row itself is gone; a second removal reports absent.
	assert.NotContains(t, f.state.members, memberID)
	err = f.memberSvc.Remove(ctx, adminID, projectID, memberID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	f.blobs.AssertCalled(t, "Delete", mock.Anything, "tasks/draft.fig")
	f.blobs.AssertCalled(t, "Delete", mock.Anything, "tasks/notes.txt")
	f.blobs.AssertNotCalled(t, "Delete", mock.Anything, "tasks/minutes.txt")
}
