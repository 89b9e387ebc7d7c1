package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/domain/repository"
)

// AccessService decides visibility and mutation rights for projects and
// tasks. Checks are deliberately dual-path: the project creator passes even
// without a membership row, and any member passes regardless of the creator
// field. The creator-is-admin-member invariant is established at project
// creation and never re-validated here.
type AccessService struct {
	projects repository.ProjectRepository
	members  repository.MemberRepository
	tasks    repository.TaskRepository
	logger   *zap.Logger
}

// NewAccessService creates a new access service instance.
func NewAccessService(
	projects repository.ProjectRepository,
	members repository.MemberRepository,
	tasks repository.TaskRepository,
	logger *zap.Logger,
) *AccessService {
	return &AccessService{
		projects: projects,
		members:  members,
		tasks:    tasks,
		logger:   logger,
	}
}

// CanAccessProject reports whether the user may read or mutate the project:
// its creator or any project member.
func (s *AccessService) CanAccessProject(ctx context.Context, userID uuid.UUID, project *model.Project) (bool, error) {
	if project == nil {
		return false, nil
	}
	if project.CreatorID != nil && *project.CreatorID == userID {
		return true, nil
	}
	ok, err := s.members.Exists(ctx, project.ID, userID)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// CanManageProject reports whether the user may administer the project:
// its creator or a member with the Admin role.
func (s *AccessService) CanManageProject(ctx context.Context, userID uuid.UUID, project *model.Project) (bool, error) {
	if project == nil {
		return false, nil
	}
	if project.CreatorID != nil && *project.CreatorID == userID {
		return true, nil
	}
	member, err := s.members.Get(ctx, project.ID, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return member.IsAdmin(), nil
}

// CanAccessTask reports whether the user may read or mutate the task: its
// creator, any assignee, or any member (or the creator) of its project.
func (s *AccessService) CanAccessTask(ctx context.Context, userID uuid.UUID, task *model.Task) (bool, error) {
	if task == nil {
		return false, nil
	}
	if task.IsCreator(userID) || task.IsAssignee(userID) {
		return true, nil
	}
	if task.ProjectID == nil {
		return false, nil
	}
	project, err := s.projects.GetByID(ctx, *task.ProjectID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.CanAccessProject(ctx, userID, project)
}

// EnsureProjectAccess resolves the project and fails with ErrForbidden when
// the user may not access it.
func (s *AccessService) EnsureProjectAccess(ctx context.Context, userID, projectID uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ok, err := s.CanAccessProject(ctx, userID, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}

// EnsureProjectManage resolves the project and fails with ErrForbidden when
// the user may not administer it.
func (s *AccessService) EnsureProjectManage(ctx context.Context, userID, projectID uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ok, err := s.CanManageProject(ctx, userID, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug("project manage denied",
			zap.String("project_id", projectID.String()),
			zap.String("user_id", userID.String()))
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}

// EnsureTaskAccess resolves the task and fails with ErrForbidden when the
// user may not access it.
func (s *AccessService) EnsureTaskAccess(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	ok, err := s.CanAccessTask(ctx, userID, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}
	return task, nil
}
