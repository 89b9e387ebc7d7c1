package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/domain/repository"
)

// ProjectMemberService manages project membership, including the
// membership-removal cascade: when a member is removed, every task-creator,
// assignee, subtask-assignee and asset-uploader relationship they held
// inside the project is dissolved in one transaction.
type ProjectMemberService struct {
	tx       repository.TxManager
	members  repository.MemberRepository
	tasks    repository.TaskRepository
	subtasks repository.SubtaskRepository
	assets   repository.AssetRepository
	users    repository.UserRepository
	access   *AccessService
	taskSvc  *TaskService
	notifier *NotificationService
	blobs    BlobStore
	logger   *zap.Logger
}

// NewProjectMemberService creates a new project member service instance.
func NewProjectMemberService(
	tx repository.TxManager,
	members repository.MemberRepository,
	tasks repository.TaskRepository,
	subtasks repository.SubtaskRepository,
	assets repository.AssetRepository,
	users repository.UserRepository,
	access *AccessService,
	taskSvc *TaskService,
	notifier *NotificationService,
	blobs BlobStore,
	logger *zap.Logger,
) *ProjectMemberService {
	return &ProjectMemberService{
		tx:       tx,
		members:  members,
		tasks:    tasks,
		subtasks: subtasks,
		assets:   assets,
		users:    users,
		access:   access,
		taskSvc:  taskSvc,
		notifier: notifier,
		blobs:    blobs,
		logger:   logger,
	}
}

// List returns the membership rows of a project the actor can access.
func (s *ProjectMemberService) List(ctx context.Context, actorID, projectID uuid.UUID) ([]model.ProjectMember, error) {
	if _, err := s.access.EnsureProjectAccess(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.members.ListByProject(ctx, projectID)
}

// Add enrolls a user in the project. Only admins (or the creator) may add
// members; the (project, user) pair is unique.
func (s *ProjectMemberService) Add(ctx context.Context, actorID, projectID, userID uuid.UUID, role string) (*model.ProjectMember, error) {
	project, err := s.access.EnsureProjectManage(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	exists, err := s.members.Exists(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrConflict
	}
	if role == "" {
		role = model.RoleMember
	}

	member := &model.ProjectMember{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, userID, model.NotificationMemberAdded,
		"You were added to project "+project.Name,
		map[string]interface{}{"project_id": projectID.String(), "actor_id": actorID.String()})
	return member, nil
}

// UpdateRole changes a membership's role. Admin only.
func (s *ProjectMemberService) UpdateRole(ctx context.Context, actorID, projectID, memberID uuid.UUID, role string) (*model.ProjectMember, error) {
	if err := validateStruct(struct {
		Role string `validate:"oneof=Admin Member"`
	}{Role: role}); err != nil {
		return nil, err
	}
	if _, err := s.access.EnsureProjectManage(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.ProjectID != projectID {
		return nil, apperrors.ErrNotFound
	}
	return s.members.UpdateRole(ctx, memberID, role)
}

// Remove removes a membership row and dissolves every relationship the
// member held inside the project. The steps run atomically and in order:
//
//  1. delete every task in the project created by the member (full cascade
//     over subtasks, assets and important markers),
//  2. remove the member from the assignee set of every remaining task,
//  3. clear and un-complete every subtask in the project assigned to them,
//  4. delete every asset they uploaded that is scoped to the project
//     directly or to one of its tasks,
//  5. delete the membership row.
//
// Step 1 must run first: it removes whole tasks whose subtasks and assets
// steps 3-4 would otherwise touch twice. The membership row is locked for
// update at the start, so concurrent removals of the same member serialize;
// the loser observes the row gone and fails with ErrNotFound. Blobs of
// deleted assets are released only after commit.
func (s *ProjectMemberService) Remove(ctx context.Context, actorID, projectID, memberID uuid.UUID) error {
	var blobKeys []string
	var removedUserID uuid.UUID
	var projectName string

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		member, err := s.members.GetByIDForUpdate(ctx, memberID)
		if err != nil {
			return err
		}
		if member.ProjectID != projectID {
			return apperrors.ErrNotFound
		}

		project, err := s.access.EnsureProjectManage(ctx, actorID, projectID)
		if err != nil {
			return err
		}
		removedUserID = member.UserID
		projectName = project.Name

		// Step 1: tasks the member created, with everything they own.
		created, err := s.tasks.ListByProjectAndCreator(ctx, projectID, member.UserID)
		if err != nil {
			return err
		}
		for _, task := range created {
			keys, err := s.taskSvc.deleteTaskTx(ctx, task.ID)
			if err != nil {
				return err
			}
			blobKeys = append(blobKeys, keys...)
		}

		// Step 2: assignments on the tasks that remain.
		assigned, err := s.tasks.ListByProjectAndAssignee(ctx, projectID, member.UserID)
		if err != nil {
			return err
		}
		for _, task := range assigned {
			if err := s.tasks.RemoveAssignee(ctx, task.ID, member.UserID); err != nil {
				return err
			}
		}

		// Step 3: subtask assignments anywhere in the project.
		if err := s.subtasks.ClearAssigneeInProject(ctx, projectID, member.UserID); err != nil {
			return err
		}

		// Step 4: assets they uploaded, project-wide.
		assets, err := s.assets.ListProjectScopedByUploader(ctx, projectID, member.UserID)
		if err != nil {
			return err
		}
		for _, asset := range assets {
			if err := s.assets.Delete(ctx, asset.ID); err != nil {
				return err
			}
			blobKeys = append(blobKeys, asset.StorageKey)
		}

		// Step 5: the membership row itself.
		return s.members.Delete(ctx, memberID)
	})
	if err != nil {
		return apperrors.NewTxAbortedError(err)
	}

	s.logger.Info("project member removed",
		zap.String("project_id", projectID.String()),
		zap.String("member_id", memberID.String()),
		zap.String("user_id", removedUserID.String()),
		zap.Int("assets_removed", len(blobKeys)))

	s.taskSvc.releaseBlobs(ctx, blobKeys)
	s.notifier.Notify(ctx, removedUserID, model.NotificationMemberRemoved,
		"You were removed from project "+projectName,
		map[string]interface{}{"project_id": projectID.String(), "actor_id": actorID.String()})
	return nil
}
