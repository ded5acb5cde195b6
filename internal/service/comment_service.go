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

// CommentService coordinates comment workflows. Creation requires a role on
// the ticket's project; update and deletion are restricted to the author.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles repositories for the comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	TicketRepo  repository.TicketRepository
	ProjectRepo repository.ProjectRepository
	Dispatcher  events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		tickets:    deps.TicketRepo,
		projects:   deps.ProjectRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateComment adds a comment to a ticket the caller can view.
func (s *CommentService) CreateComment(ctx context.Context, authorID, ticketID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || ticketID == "" {
		return nil, apperrors.NewInvalidRequest("content and ticket are required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, ticket.ProjectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, err
	}
	if err := access.RequireTicketAccess(project, authorID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Content:  content,
		TicketID: ticket.ID,
		AuthorID: authorID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventCommentAdded,
		ProjectID: ticket.ProjectID,
		ActorID:   authorID,
		Payload: events.CommentAddedPayload{
			TicketID:  ticket.ID,
			CommentID: comment.ID,
			AuthorID:  authorID,
		},
	})
	return comment, nil
}

// UpdateComment changes the content of the caller's own comment.
func (s *CommentService) UpdateComment(ctx context.Context, actorID, commentID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewInvalidRequest("content is required", nil)
	}
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCommentAuthor(comment, actorID); err != nil {
		return nil, err
	}
	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the caller's own comment.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID string) error {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := access.RequireCommentAuthor(comment, actorID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) getComment(ctx context.Context, commentID string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, stampEvent(event))
}
