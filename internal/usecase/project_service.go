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

// ProjectService provides project business logic. Project creation enrolls
// the creator as an Admin member in the same transaction; that is the only
// point where the creator-is-member invariant is established.
type ProjectService struct {
	tx       repository.TxManager
	projects repository.ProjectRepository
	members  repository.MemberRepository
	tasks    repository.TaskRepository
	assets   repository.AssetRepository
	access   *AccessService
	taskSvc  *TaskService
	logger   *zap.Logger
}

// NewProjectService creates a new project service instance.
func NewProjectService(
	tx repository.TxManager,
	projects repository.ProjectRepository,
	members repository.MemberRepository,
	tasks repository.TaskRepository,
	assets repository.AssetRepository,
	access *AccessService,
	taskSvc *TaskService,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		tx:       tx,
		projects: projects,
		members:  members,
		tasks:    tasks,
		assets:   assets,
		access:   access,
		taskSvc:  taskSvc,
		logger:   logger,
	}
}

// Create creates a project and its creator's Admin membership atomically.
func (s *ProjectService) Create(ctx context.Context, creatorID uuid.UUID, project *model.Project) (*model.Project, error) {
	if strings.TrimSpace(project.Name) == "" {
		return nil, &apperrors.ValidationError{Field: "name", Message: "name is required"}
	}

	project.ID = uuid.New()
	project.CreatorID = &creatorID

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.projects.Create(ctx, project); err != nil {
			return err
		}
		return s.members.Create(ctx, &model.ProjectMember{
			ID:        uuid.New(),
			ProjectID: project.ID,
			UserID:    creatorID,
			Role:      model.RoleAdmin,
		})
	})
	if err != nil {
		return nil, apperrors.NewTxAbortedError(err)
	}
	return project, nil
}

// Get returns a project visible to the actor.
func (s *ProjectService) Get(ctx context.Context, actorID, projectID uuid.UUID) (*model.Project, error) {
	return s.access.EnsureProjectAccess(ctx, actorID, projectID)
}

// List returns projects the user created or is a member of.
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	return s.projects.ListForUser(ctx, userID)
}

// Update applies a partial update to a project the actor can access.
func (s *ProjectService) Update(ctx context.Context, actorID, projectID uuid.UUID, updates model.ProjectUpdate) (*model.Project, error) {
	if _, err := s.access.EnsureProjectAccess(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.projects.Update(ctx, projectID, updates)
}

// Delete removes a project with its memberships, tasks (transitively) and
// directly-attached assets. Admin only. Blobs are released after commit.
func (s *ProjectService) Delete(ctx context.Context, actorID, projectID uuid.UUID) error {
	if _, err := s.access.EnsureProjectManage(ctx, actorID, projectID); err != nil {
		return err
	}

	var blobKeys []string
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		tasks, err := s.tasks.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			keys, err := s.taskSvc.deleteTaskTx(ctx, task.ID)
			if err != nil {
				return err
			}
			blobKeys = append(blobKeys, keys...)
		}

		assets, err := s.assets.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		for _, asset := range assets {
			if err := s.assets.Delete(ctx, asset.ID); err != nil {
				return err
			}
			blobKeys = append(blobKeys, asset.StorageKey)
		}

		if err := s.members.DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		return s.projects.Delete(ctx, projectID)
	})
	if err != nil {
		return apperrors.NewTxAbortedError(err)
	}

	s.logger.Info("project deleted",
		zap.String("project_id", projectID.String()),
		zap.Int("assets_removed", len(blobKeys)))
	s.taskSvc.releaseBlobs(ctx, blobKeys)
	return nil
}
