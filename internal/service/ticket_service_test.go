package service

import (
	"context"
	"testing"
	"time"

	"github.com/taskforge/project-tracker/internal/domain"
	apperrors "github.com/taskforge/project-tracker/pkg/util"
)

type ticketFixture struct {
	*projectFixture
	svc     *TicketService
	project *domain.Project
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	pf := newProjectFixture(t)
	return &ticketFixture{
		projectFixture: pf,
		svc: NewTicketService(TicketDependencies{
			TicketRepo:  pf.tickets,
			CommentRepo: pf.comments,
			ProjectRepo: pf.projects,
		}),
		project: pf.newProject(t),
	}
}

func (f *ticketFixture) createTicket(t *testing.T, creatorID string) *domain.Ticket {
	t.Helper()
	ticket, err := f.svc.CreateTicket(context.Background(), creatorID, TicketCreateInput{
		Title:         "fix invoice rounding",
		Description:   "totals drift by a cent on multi-line invoices",
		EstimatedDate: time.Now().Add(72 * time.Hour),
		ProjectID:     f.project.ID,
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return ticket
}

func TestCreateTicket(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	ticket := f.createTicket(t, f.member.ID)
	if ticket.Status != domain.TicketStatusTodo {
		t.Fatalf("expected default status TODO, got %q", ticket.Status)
	}
	if ticket.CreatorID != f.member.ID {
		t.Fatalf("expected creator %s, got %s", f.member.ID, ticket.CreatorID)
	}

	stranger := f.users.add(domain.User{Email: "stranger@example.com"})
	_, err := f.svc.CreateTicket(ctx, stranger.ID, TicketCreateInput{
		Title:         "drive-by report",
		Description:   "should not be allowed",
		EstimatedDate: time.Now().Add(time.Hour),
		ProjectID:     f.project.ID,
	})
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("stranger create: expected FORBIDDEN, got %v", err)
	}

	_, err = f.svc.CreateTicket(ctx, f.member.ID, TicketCreateInput{
		Title:     "missing fields",
		ProjectID: f.project.ID,
	})
	if !apperrors.IsCode(err, "INVALID_REQUEST") {
		t.Fatalf("missing fields: expected INVALID_REQUEST, got %v", err)
	}

	_, err = f.svc.CreateTicket(ctx, f.member.ID, TicketCreateInput{
		Title:         "bad status",
		Description:   "status outside the enum",
		Status:        "BLOCKED",
		EstimatedDate: time.Now().Add(time.Hour),
		ProjectID:     f.project.ID,
	})
	if !apperrors.IsCode(err, "INVALID_REQUEST") {
		t.Fatalf("bad status: expected INVALID_REQUEST, got %v", err)
	}
}

func TestGetTicketAccess(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.member.ID)

	for _, userID := range []string{f.owner.ID, f.admin.ID, f.member.ID} {
		if _, err := f.svc.GetTicket(ctx, userID, ticket.ID); err != nil {
			t.Fatalf("get ticket as %s: %v", userID, err)
		}
	}

	stranger := f.users.add(domain.User{Email: "stranger@example.com"})
	if _, err := f.svc.GetTicket(ctx, stranger.ID, ticket.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("stranger get: expected FORBIDDEN, got %v", err)
	}
	if _, err := f.svc.GetTicket(ctx, f.owner.ID, "missing"); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("missing ticket: expected NOT_FOUND, got %v", err)
	}
}

func TestUpdateTicketStatusByAnyRole(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.member.ID)

	// Any status is reachable from any other, by any project role.
	updated, err := f.svc.UpdateTicket(ctx, f.admin.ID, ticket.ID, TicketUpdateInput{Status: domain.TicketStatusDone})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Status != domain.TicketStatusDone {
		t.Fatalf("expected DONE, got %q", updated.Status)
	}

	updated, err = f.svc.UpdateTicket(ctx, f.member.ID, ticket.ID, TicketUpdateInput{Status: domain.TicketStatusInProgress})
	if err != nil {
		t.Fatalf("member update: %v", err)
	}
	if updated.Status != domain.TicketStatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %q", updated.Status)
	}
	if updated.Title != ticket.Title {
		t.Fatalf("empty title should keep current value, got %q", updated.Title)
	}

	stranger := f.users.add(domain.User{Email: "stranger@example.com"})
	if _, err := f.svc.UpdateTicket(ctx, stranger.ID, ticket.ID, TicketUpdateInput{Status: domain.TicketStatusDone}); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("stranger update: expected FORBIDDEN, got %v", err)
	}
}

func TestDeleteTicketCreatorOnly(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket := f.createTicket(t, f.member.ID)

	commentSvc := NewCommentService(CommentDependencies{
		CommentRepo: f.comments,
		TicketRepo:  f.tickets,
		ProjectRepo: f.projects,
	})
	if _, err := commentSvc.CreateComment(ctx, f.admin.ID, ticket.ID, "tracking this"); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	// Even the owner and administrators cannot delete someone else's ticket.
	if err := f.svc.DeleteTicket(ctx, f.owner.ID, ticket.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("owner delete: expected FORBIDDEN, got %v", err)
	}
	if err := f.svc.DeleteTicket(ctx, f.admin.ID, ticket.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("admin delete: expected FORBIDDEN, got %v", err)
	}

	if err := f.svc.DeleteTicket(ctx, f.member.ID, ticket.ID); err != nil {
		t.Fatalf("creator delete: %v", err)
	}
	if len(f.tickets.tickets) != 0 {
		t.Fatal("ticket survived deletion")
	}
	if len(f.comments.comments) != 0 {
		t.Fatal("comments survived ticket deletion")
	}
}

func TestListTickets(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	first := f.createTicket(t, f.member.ID)
	f.createTicket(t, f.admin.ID)

	if _, err := f.svc.UpdateTicket(ctx, f.member.ID, first.ID, TicketUpdateInput{Status: domain.TicketStatusDone}); err != nil {
		t.Fatalf("update status: %v", err)
	}

	byProject, err := f.svc.ListTickets(ctx, f.member.ID, TicketListFilter{ProjectID: f.project.ID})
	if err != nil {
		t.Fatalf("list by project: %v", err)
	}
	if len(byProject) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(byProject))
	}

	done, err := f.svc.ListTickets(ctx, f.member.ID, TicketListFilter{ProjectID: f.project.ID, Status: domain.TicketStatusDone})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(done) != 1 || done[0].ID != first.ID {
		t.Fatalf("unexpected status-filtered listing: %+v", done)
	}

	// Without a project filter the listing spans the caller's projects.
	spanning, err := f.svc.ListTickets(ctx, f.member.ID, TicketListFilter{})
	if err != nil {
		t.Fatalf("list spanning: %v", err)
	}
	if len(spanning) != 2 {
		t.Fatalf("expected 2 tickets across projects, got %d", len(spanning))
	}

	stranger := f.users.add(domain.User{Email: "stranger@example.com"})
	if _, err := f.svc.ListTickets(ctx, stranger.ID, TicketListFilter{ProjectID: f.project.ID}); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("stranger list by project: expected FORBIDDEN, got %v", err)
	}
	empty, err := f.svc.ListTickets(ctx, stranger.ID, TicketListFilter{})
	if err != nil {
		t.Fatalf("stranger spanning list: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty listing for stranger, got %d", len(empty))
	}
}
