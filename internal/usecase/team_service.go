package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/abubakar1702/taskflow/internal/domain/model"
	"github.com/abubakar1702/taskflow/internal/domain/repository"
)

const (
	searchMinQueryLen     = 2
	searchProjectLimit    = 10
	searchTaskLimit       = 20
	assigneeSearchDefault = 20
)

// TeamService builds the caller's collaborator view: everyone they share a
// project or a task assignment with, plus scoped search across projects,
// tasks and potential assignees.
type TeamService struct {
	users    repository.UserRepository
	members  repository.MemberRepository
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
}

// NewTeamService creates a new team service instance.
func NewTeamService(
	users repository.UserRepository,
	members repository.MemberRepository,
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
) *TeamService {
	return &TeamService{
		users:    users,
		members:  members,
		tasks:    tasks,
		projects: projects,
	}
}

// Team returns the de-duplicated set of users who share a project (as
// member or creator) or a task assignment with the caller, excluding the
// caller themselves.
func (s *TeamService) Team(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	fellowIDs, err := s.members.ListFellowUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	coAssigneeIDs, err := s.tasks.ListCoAssigneeUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(fellowIDs)+len(coAssigneeIDs))
	ids := make([]uuid.UUID, 0, len(fellowIDs)+len(coAssigneeIDs))
	for _, id := range append(fellowIDs, coAssigneeIDs...) {
		if id == userID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	return s.users.GetByIDs(ctx, ids)
}

// SearchResult bundles the scoped project and task matches for a query.
type SearchResult struct {
	Projects []model.Project `json:"projects"`
	Tasks    []model.Task    `json:"tasks"`
}

// Search finds projects by name and tasks by title within the caller's
// visibility. Queries shorter than two characters return empty results.
func (s *TeamService) Search(ctx context.Context, userID uuid.UUID, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < searchMinQueryLen {
		return &SearchResult{Projects: []model.Project{}, Tasks: []model.Task{}}, nil
	}

	projects, err := s.projects.SearchByName(ctx, userID, query, searchProjectLimit)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.SearchByTitle(ctx, userID, query, searchTaskLimit)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Projects: projects, Tasks: tasks}, nil
}

// SearchAssignees finds users by name or username for assignment pickers.
func (s *TeamService) SearchAssignees(ctx context.Context, query string) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if len(query) < searchMinQueryLen {
		return []model.User{}, nil
	}
	return s.users.SearchByName(ctx, query, assigneeSearchDefault)
}
