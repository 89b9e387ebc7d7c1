package usecase_test

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/abubakar1702/taskflow/internal/domain/dto"
	"github.com/abubakar1702/taskflow/internal/domain/model"
)

// stubTxManager runs the function inline. The usecase layer only needs the
// scoping contract; rollback behavior is covered by repository tests.
type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.User, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]model.User), args.Error(1)
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, id uuid.UUID, updates model.ProjectUpdate) (*model.Project, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) SearchByName(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.Project, error) {
	args := m.Called(ctx, userID, query, limit)
	return args.Get(0).([]model.Project), args.Error(1)
}

// MockMemberRepository is a mock implementation of MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) GetByID(ctx context.Context, memberID uuid.UUID) (*model.ProjectMember, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectMember), args.Error(1)
}

func (m *MockMemberRepository) GetByIDForUpdate(ctx context.Context, memberID uuid.UUID) (*model.ProjectMember, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectMember), args.Error(1)
}

func (m *MockMemberRepository) Get(ctx context.Context, projectID, userID uuid.UUID) (*model.ProjectMember, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectMember), args.Error(1)
}

func (m *MockMemberRepository) Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) Create(ctx context.Context, member *model.ProjectMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateRole(ctx context.Context, memberID uuid.UUID, role string) (*model.ProjectMember, error) {
	args := m.Called(ctx, memberID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectMember), args.Error(1)
}

func (m *MockMemberRepository) Delete(ctx context.Context, memberID uuid.UUID) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

func (m *MockMemberRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]model.ProjectMember), args.Error(1)
}

func (m *MockMemberRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockMemberRepository) ListFellowUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, id uuid.UUID, updates model.TaskUpdate) (*model.Task, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) List(ctx context.Context, filter dto.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) SearchByTitle(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.Task, error) {
	args := m.Called(ctx, userID, query, limit)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByProjectAndCreator(ctx context.Context, projectID, creatorID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, projectID, creatorID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByProjectAndAssignee(ctx context.Context, projectID, userID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) AddAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	args := m.Called(ctx, taskID, userID)
	return args.Error(0)
}

func (m *MockTaskRepository) RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	args := m.Called(ctx, taskID, userID)
	return args.Error(0)
}

func (m *MockTaskRepository) IsAssignee(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) ListCoAssigneeUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockSubtaskRepository is a mock implementation of SubtaskRepository
type MockSubtaskRepository struct {
	mock.Mock
}

func (m *MockSubtaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subtask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subtask), args.Error(1)
}

func (m *MockSubtaskRepository) Create(ctx context.Context, subtask *model.Subtask) error {
	args := m.Called(ctx, subtask)
	return args.Error(0)
}

func (m *MockSubtaskRepository) Update(ctx context.Context, id uuid.UUID, updates model.SubtaskUpdate) (*model.Subtask, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subtask), args.Error(1)
}

func (m *MockSubtaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubtaskRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Subtask, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]model.Subtask), args.Error(1)
}

func (m *MockSubtaskRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockSubtaskRepository) ClearAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	args := m.Called(ctx, taskID, userID)
	return args.Error(0)
}

func (m *MockSubtaskRepository) ClearAssigneeInProject(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

// MockAssetRepository is a mock implementation of AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Asset, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]model.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Asset, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]model.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListByTaskAndUploader(ctx context.Context, taskID, uploaderID uuid.UUID) ([]model.Asset, error) {
	args := m.Called(ctx, taskID, uploaderID)
	return args.Get(0).([]model.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListProjectScopedByUploader(ctx context.Context, projectID, uploaderID uuid.UUID) ([]model.Asset, error) {
	args := m.Called(ctx, projectID, uploaderID)
	return args.Get(0).([]model.Asset), args.Error(1)
}

func (m *MockAssetRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MockImportantTaskRepository is a mock implementation of ImportantTaskRepository
type MockImportantTaskRepository struct {
	mock.Mock
}

func (m *MockImportantTaskRepository) Mark(ctx context.Context, marker *model.ImportantTask) error {
	args := m.Called(ctx, marker)
	return args.Error(0)
}

func (m *MockImportantTaskRepository) Unmark(ctx context.Context, userID, taskID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

func (m *MockImportantTaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ImportantTask, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.ImportantTask), args.Error(1)
}

func (m *MockImportantTaskRepository) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]model.Notification, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNoteRepository is a mock implementation of NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) Create(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Update(ctx context.Context, id uuid.UUID, updates model.NoteUpdate) (*model.Note, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNoteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) ListPinnedByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Note), args.Error(1)
}

// MockBlobStore is a mock implementation of BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	args := m.Called(ctx, key, body, contentType, size)
	return args.Error(0)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStore) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, expires)
	return args.String(0), args.Error(1)
}

// MockNotificationSink is a mock implementation of NotificationSink
type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) Publish(ctx context.Context, channel string, payload interface{}) error {
	args := m.Called(ctx, channel, payload)
	return args.Error(0)
}
