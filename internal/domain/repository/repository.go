package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/abubakar1702/taskflow/internal/domain/dto"
	"github.com/abubakar1702/taskflow/internal/domain/model"
)

// TxManager scopes a function to a single ACID transaction. Repository
// calls made with the ctx passed to fn join that transaction; if fn returns
// an error every write is rolled back.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository reads identity records.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	SearchByName(ctx context.Context, query string, limit int) ([]model.User, error)
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, id uuid.UUID, updates model.ProjectUpdate) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	SearchByName(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.Project, error)
}

// MemberRepository persists project membership rows.
type MemberRepository interface {
	GetByID(ctx context.Context, memberID uuid.UUID) (*model.ProjectMember, error)
	// GetByIDForUpdate locks the membership row for the duration of the
	// enclosing transaction, serializing concurrent cascades on it.
	GetByIDForUpdate(ctx context.Context, memberID uuid.UUID) (*model.ProjectMember, error)
	Get(ctx context.Context, projectID, userID uuid.UUID) (*model.ProjectMember, error)
	Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, member *model.ProjectMember) error
	UpdateRole(ctx context.Context, memberID uuid.UUID, role string) (*model.ProjectMember, error)
	Delete(ctx context.Context, memberID uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
	// ListFellowUserIDs returns ids of users sharing any project with the
	// given user (as member or creator), excluding the user themselves.
	ListFellowUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// TaskRepository persists tasks and their assignee set.
type TaskRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, id uuid.UUID, updates model.TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.TaskFilter) ([]model.Task, error)
	SearchByTitle(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.Task, error)

	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error)
	ListByProjectAndCreator(ctx context.Context, projectID, creatorID uuid.UUID) ([]model.Task, error)
	ListByProjectAndAssignee(ctx context.Context, projectID, userID uuid.UUID) ([]model.Task, error)

	AddAssignee(ctx context.Context, taskID, userID uuid.UUID) error
	RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error
	IsAssignee(ctx context.Context, taskID, userID uuid.UUID) (bool, error)
	// ListCoAssigneeUserIDs returns ids of users assigned to any task the
	// given user is assigned to, excluding the user themselves.
	ListCoAssigneeUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// SubtaskRepository persists subtasks.
type SubtaskRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subtask, error)
	Create(ctx context.Context, subtask *model.Subtask) error
	Update(ctx context.Context, id uuid.UUID, updates model.SubtaskUpdate) (*model.Subtask, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Subtask, error)
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
	// ClearAssignee nulls the assignee and forces is_completed to false on
	// every subtask of the task assigned to the user.
	ClearAssignee(ctx context.Context, taskID, userID uuid.UUID) error
	// ClearAssigneeInProject does the same across all tasks of a project.
	ClearAssigneeInProject(ctx context.Context, projectID, userID uuid.UUID) error
}

// AssetRepository persists asset rows. Blob bytes live in object storage;
// callers collect StorageKeys from deleted rows and release the blobs after
// the transaction commits.
type AssetRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	Create(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Asset, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Asset, error)
	ListByTaskAndUploader(ctx context.Context, taskID, uploaderID uuid.UUID) ([]model.Asset, error)
	// ListProjectScopedByUploader returns assets uploaded by the user that
	// belong to the project directly or to any task within the project.
	ListProjectScopedByUploader(ctx context.Context, projectID, uploaderID uuid.UUID) ([]model.Asset, error)
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
}

// ImportantTaskRepository persists per-user important-task markers.
type ImportantTaskRepository interface {
	Mark(ctx context.Context, marker *model.ImportantTask) error
	Unmark(ctx context.Context, userID, taskID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ImportantTask, error)
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
}

// NotificationRepository persists per-user notifications.
type NotificationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	Create(ctx context.Context, notification *model.Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NoteRepository persists private notes.
type NoteRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Note, error)
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, id uuid.UUID, updates model.NoteUpdate) (*model.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error)
	ListPinnedByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error)
}
