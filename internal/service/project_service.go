package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taskforge/project-tracker/internal/access"
	"github.com/taskforge/project-tracker/internal/domain"
	"github.com/taskforge/project-tracker/internal/events"
	"github.com/taskforge/project-tracker/internal/repository"
	apperrors "github.com/taskforge/project-tracker/pkg/util"
)

// ProjectService coordinates project lifecycle and membership workflows.
// Every authorization decision is delegated to the access package.
type ProjectService struct {
	projects   repository.ProjectRepository
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ProjectDependencies bundles repositories for the project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// ProjectCreateInput describes project creation payload.
type ProjectCreateInput struct {
	Name        string
	Description string
	Status      domain.ProjectStatus
}

// ProjectUpdateInput describes mutable project fields. Empty fields keep
// their current value.
type ProjectUpdateInput struct {
	Name        string
	Description string
	Status      domain.ProjectStatus
}

// ProjectMembers is the role-classified membership listing.
type ProjectMembers struct {
	Owner          *domain.User
	Administrators []domain.User
	Team           []domain.User
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:   deps.ProjectRepo,
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateProject creates a project owned by the caller. The owner starts with
// empty administrator and team sets; ownership itself carries full rights.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID string, input ProjectCreateInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" || description == "" {
		return nil, apperrors.NewInvalidRequest("name and description are required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.ProjectStatusActive
	}
	if !domain.ValidProjectStatus(status) {
		return nil, apperrors.NewInvalidRequest("status must be ACTIVE, INACTIVE or ARCHIVED", nil)
	}

	project := &domain.Project{
		Name:           name,
		Description:    description,
		Status:         status,
		OwnerID:        ownerID,
		Administrators: []string{},
		Team:           []string{},
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects returns every project where the caller holds any role.
func (s *ProjectService) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.projects.ListByMember(ctx, userID)
}

// GetProject fetches a project the caller can view.
func (s *ProjectService) GetProject(ctx context.Context, actorID, projectID string) (*domain.Project, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireProjectView(project, actorID); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject changes name, description or status.
func (s *ProjectService) UpdateProject(ctx context.Context, actorID, projectID string, input ProjectUpdateInput) (*domain.Project, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireProjectEdit(project, actorID); err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		project.Name = name
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		project.Description = description
	}
	if input.Status != "" {
		if !domain.ValidProjectStatus(input.Status) {
			return nil, apperrors.NewInvalidRequest("status must be ACTIVE, INACTIVE or ARCHIVED", nil)
		}
		project.Status = input.Status
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes the project with its tickets and their comments.
// The cascade is total: comments of the project's tickets go first, then the
// tickets, then the project row, leaving no orphans.
func (s *ProjectService) DeleteProject(ctx context.Context, actorID, projectID string) error {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}
	if err := access.RequireProjectOwner(project, actorID); err != nil {
		return err
	}
	if err := s.comments.DeleteByProjectTickets(ctx, projectID); err != nil {
		return err
	}
	if err := s.tickets.DeleteByProject(ctx, projectID); err != nil {
		return err
	}
	return s.projects.Delete(ctx, projectID)
}

// ListMembers returns the role-classified membership of a project.
func (s *ProjectService) ListMembers(ctx context.Context, actorID, projectID string) (*ProjectMembers, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireProjectView(project, actorID); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, project.OwnerID)
	if err != nil {
		return nil, err
	}
	administrators, err := s.loadUsers(ctx, project.Administrators)
	if err != nil {
		return nil, err
	}
	team, err := s.loadUsers(ctx, project.Team)
	if err != nil {
		return nil, err
	}
	return &ProjectMembers{Owner: owner, Administrators: administrators, Team: team}, nil
}

// AddAdministrator grants the administrator role to the user with the given
// email. The promotion out of the team set and the persistence of both sets
// happen in one project write.
func (s *ProjectService) AddAdministrator(ctx context.Context, actorID, projectID, email string) (*domain.Project, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	target, err := s.getUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := access.AddAdministrator(project, actorID, target.ID); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProjectMemberAdded,
		ProjectID: project.ID,
		ActorID:   actorID,
		Payload:   events.MemberChangedPayload{UserID: target.ID, Role: string(access.RoleAdministrator)},
	})
	return project, nil
}

// RemoveAdministrator revokes the administrator role.
func (s *ProjectService) RemoveAdministrator(ctx context.Context, actorID, projectID, adminID string) (*domain.Project, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.RemoveAdministrator(project, actorID, adminID); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProjectMemberRemoved,
		ProjectID: project.ID,
		ActorID:   actorID,
		Payload:   events.MemberChangedPayload{UserID: adminID, Role: string(access.RoleAdministrator)},
	})
	return project, nil
}

// AddTeamMember adds the user with the given email to the team.
func (s *ProjectService) AddTeamMember(ctx context.Context, actorID, projectID, email string) (*domain.Project, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	target, err := s.getUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := access.AddTeamMember(project, actorID, target.ID); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProjectMemberAdded,
		ProjectID: project.ID,
		ActorID:   actorID,
		Payload:   events.MemberChangedPayload{UserID: target.ID, Role: string(access.RoleTeam)},
	})
	return project, nil
}

// RemoveTeamMember removes a team member.
func (s *ProjectService) RemoveTeamMember(ctx context.Context, actorID, projectID, memberID string) (*domain.Project, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.RemoveTeamMember(project, actorID, memberID); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProjectMemberRemoved,
		ProjectID: project.ID,
		ActorID:   actorID,
		Payload:   events.MemberChangedPayload{UserID: memberID, Role: string(access.RoleTeam)},
	})
	return project, nil
}

// ChangeMemberRole moves a member between the team and administrator sets.
func (s *ProjectService) ChangeMemberRole(ctx context.Context, actorID, projectID, memberID string, newRole access.Role) (*domain.Project, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	oldRole := access.ProjectRole(project, memberID)
	if err := access.ChangeMemberRole(project, actorID, memberID, newRole); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProjectMemberRoleChanged,
		ProjectID: project.ID,
		ActorID:   actorID,
		Payload: events.MemberRoleChangedPayload{
			UserID:  memberID,
			OldRole: string(oldRole),
			NewRole: string(newRole),
		},
	})
	return project, nil
}

func (s *ProjectService) getProject(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) getUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.NewInvalidRequest("user email is required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, err
	}
	return user, nil
}

func (s *ProjectService) loadUsers(ctx context.Context, ids []string) ([]domain.User, error) {
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			if err == pgx.ErrNoRows {
				continue
			}
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (s *ProjectService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, stampEvent(event))
}
