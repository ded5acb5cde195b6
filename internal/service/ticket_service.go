package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taskforge/project-tracker/internal/access"
	"github.com/taskforge/project-tracker/internal/domain"
	"github.com/taskforge/project-tracker/internal/events"
	"github.com/taskforge/project-tracker/internal/repository"
	apperrors "github.com/taskforge/project-tracker/pkg/util"
)

// TicketService coordinates ticket workflows. Ticket access derives
// transitively from the caller's role on the owning project.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	ProjectRepo repository.ProjectRepository
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title         string
	Description   string
	Status        domain.TicketStatus
	EstimatedDate time.Time
	ProjectID     string
	Assignees     []string
}

// TicketUpdateInput describes mutable ticket fields. Empty fields keep their
// current value; Assignees replaces the set when non-nil.
type TicketUpdateInput struct {
	Title         string
	Description   string
	Status        domain.TicketStatus
	EstimatedDate *time.Time
	Assignees     []string
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	ProjectID string
	Status    domain.TicketStatus
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		projects:   deps.ProjectRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket files a ticket against a project the caller can view.
func (s *TicketService) CreateTicket(ctx context.Context, creatorID string, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" || input.ProjectID == "" || input.EstimatedDate.IsZero() {
		return nil, apperrors.NewInvalidRequest("title, description, estimated date and project are required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.TicketStatusTodo
	}
	if !domain.ValidTicketStatus(status) {
		return nil, apperrors.NewInvalidRequest("status must be TODO, IN_PROGRESS, IN_REVIEW or DONE", nil)
	}

	project, err := s.getProject(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireTicketAccess(project, creatorID); err != nil {
		return nil, err
	}

	assignees := input.Assignees
	if assignees == nil {
		assignees = []string{}
	}
	ticket := &domain.Ticket{
		Title:         title,
		Description:   description,
		Status:        status,
		EstimatedDate: input.EstimatedDate,
		ProjectID:     project.ID,
		CreatorID:     creatorID,
		Assignees:     assignees,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketCreated,
		ProjectID: project.ID,
		ActorID:   creatorID,
		Payload:   events.TicketCreatedPayload{TicketID: ticket.ID, Title: ticket.Title},
	})
	return ticket, nil
}

// ListTickets returns tickets filtered by project and status. Without a
// project filter it spans every project the caller can view.
func (s *TicketService) ListTickets(ctx context.Context, actorID string, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{}
	if filter.Status != "" {
		if !domain.ValidTicketStatus(filter.Status) {
			return nil, apperrors.NewInvalidRequest("status must be TODO, IN_PROGRESS, IN_REVIEW or DONE", nil)
		}
		status := filter.Status
		repoFilter.Status = &status
	}

	if filter.ProjectID != "" {
		project, err := s.getProject(ctx, filter.ProjectID)
		if err != nil {
			return nil, err
		}
		if err := access.RequireProjectView(project, actorID); err != nil {
			return nil, err
		}
		projectID := project.ID
		repoFilter.ProjectID = &projectID
	} else {
		projects, err := s.projects.ListByMember(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if len(projects) == 0 {
			return []domain.Ticket{}, nil
		}
		ids := make([]string, 0, len(projects))
		for _, project := range projects {
			ids = append(ids, project.ID)
		}
		repoFilter.ProjectIDs = ids
	}

	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// GetTicket fetches a ticket the caller can view.
func (s *TicketService) GetTicket(ctx context.Context, actorID, ticketID string) (*domain.Ticket, error) {
	ticket, project, err := s.getTicketWithProject(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireTicketAccess(project, actorID); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateTicket changes ticket fields. Any project role may update, and any
// status is reachable from any other.
func (s *TicketService) UpdateTicket(ctx context.Context, actorID, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, project, err := s.getTicketWithProject(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireTicketAccess(project, actorID); err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	if title := strings.TrimSpace(input.Title); title != "" {
		ticket.Title = title
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		ticket.Description = description
	}
	if input.Status != "" {
		if !domain.ValidTicketStatus(input.Status) {
			return nil, apperrors.NewInvalidRequest("status must be TODO, IN_PROGRESS, IN_REVIEW or DONE", nil)
		}
		ticket.Status = input.Status
	}
	if input.EstimatedDate != nil {
		ticket.EstimatedDate = *input.EstimatedDate
	}
	if input.Assignees != nil {
		ticket.Assignees = input.Assignees
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	if ticket.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventTicketStatusChanged,
			ProjectID: ticket.ProjectID,
			ActorID:   actorID,
			Payload: events.TicketStatusChangedPayload{
				TicketID:  ticket.ID,
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

// DeleteTicket removes a ticket and its comments. Only the creator may
// delete, regardless of project role.
func (s *TicketService) DeleteTicket(ctx context.Context, actorID, ticketID string) error {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := access.RequireTicketDelete(ticket, actorID); err != nil {
		return err
	}
	if err := s.comments.DeleteByTicket(ctx, ticketID); err != nil {
		return err
	}
	return s.tickets.Delete(ctx, ticketID)
}

// ListComments returns the comment thread of a ticket the caller can view.
func (s *TicketService) ListComments(ctx context.Context, actorID, ticketID string) ([]domain.Comment, error) {
	_, project, err := s.getTicketWithProject(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireTicketAccess(project, actorID); err != nil {
		return nil, err
	}
	return s.comments.ListByTicket(ctx, ticketID)
}

func (s *TicketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) getTicketWithProject(ctx context.Context, ticketID string) (*domain.Ticket, *domain.Project, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	project, err := s.getProject(ctx, ticket.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, project, nil
}

func (s *TicketService) getProject(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, err
	}
	return project, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, stampEvent(event))
}
