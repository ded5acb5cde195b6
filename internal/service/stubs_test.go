package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taskforge/project-tracker/internal/domain"
	"github.com/taskforge/project-tracker/internal/repository"
)

// In-memory repository stubs shared by the service tests. They mimic the
// Postgres-backed implementations: lookups miss with pgx.ErrNoRows and reads
// return copies so each call observes a fresh snapshot.

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (s *stubUserRepo) add(user domain.User) *domain.User {
	if user.ID == "" {
		s.seq++
		user.ID = fmt.Sprintf("user-%d", s.seq)
	}
	user.Email = strings.ToLower(user.Email)
	stored := user
	s.users[stored.ID] = &stored
	return &stored
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	stored := s.add(*user)
	user.ID = stored.ID
	return nil
}

func (s *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type stubProjectRepo struct {
	projects map[string]*domain.Project
	seq      int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: map[string]*domain.Project{}}
}

func (s *stubProjectRepo) Create(_ context.Context, project *domain.Project) error {
	s.seq++
	project.ID = fmt.Sprintf("project-%d", s.seq)
	stored := copyProject(project)
	s.projects[project.ID] = stored
	return nil
}

func (s *stubProjectRepo) Update(_ context.Context, project *domain.Project) error {
	if _, ok := s.projects[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.projects[project.ID] = copyProject(project)
	return nil
}

func (s *stubProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := s.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyProject(project), nil
}

func (s *stubProjectRepo) ListByMember(_ context.Context, userID string) ([]domain.Project, error) {
	var result []domain.Project
	for _, project := range s.projects {
		if project.OwnerID == userID || containsID(project.Administrators, userID) || containsID(project.Team, userID) {
			result = append(result, *copyProject(project))
		}
	}
	return result, nil
}

func (s *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.projects, id)
	return nil
}

type stubTicketRepo struct {
	tickets map[string]*domain.Ticket
	seq     int
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (s *stubTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	s.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", s.seq)
	stored := *ticket
	s.tickets[ticket.ID] = &stored
	return nil
}

func (s *stubTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := s.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *ticket
	s.tickets[ticket.ID] = &stored
	return nil
}

func (s *stubTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (s *stubTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range s.tickets {
		if filter.ProjectID != nil && ticket.ProjectID != *filter.ProjectID {
			continue
		}
		if len(filter.ProjectIDs) > 0 && !containsID(filter.ProjectIDs, ticket.ProjectID) {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.CreatorID != nil && ticket.CreatorID != *filter.CreatorID {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (s *stubTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.tickets, id)
	return nil
}

func (s *stubTicketRepo) DeleteByProject(_ context.Context, projectID string) error {
	for id, ticket := range s.tickets {
		if ticket.ProjectID == projectID {
			delete(s.tickets, id)
		}
	}
	return nil
}

type stubCommentRepo struct {
	comments map[string]*domain.Comment
	tickets  *stubTicketRepo
	seq      int
}

func newStubCommentRepo(tickets *stubTicketRepo) *stubCommentRepo {
	return &stubCommentRepo{comments: map[string]*domain.Comment{}, tickets: tickets}
}

func (s *stubCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	s.seq++
	comment.ID = fmt.Sprintf("comment-%d", s.seq)
	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (s *stubCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	if _, ok := s.comments[comment.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (s *stubCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *comment
	return &copied, nil
}

func (s *stubCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, comment := range s.comments {
		if comment.TicketID == ticketID {
			result = append(result, *comment)
		}
	}
	return result, nil
}

func (s *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.comments, id)
	return nil
}

func (s *stubCommentRepo) DeleteByTicket(_ context.Context, ticketID string) error {
	for id, comment := range s.comments {
		if comment.TicketID == ticketID {
			delete(s.comments, id)
		}
	}
	return nil
}

func (s *stubCommentRepo) DeleteByProjectTickets(_ context.Context, projectID string) error {
	for id, comment := range s.comments {
		ticket, ok := s.tickets.tickets[comment.TicketID]
		if ok && ticket.ProjectID == projectID {
			delete(s.comments, id)
		}
	}
	return nil
}

func copyProject(project *domain.Project) *domain.Project {
	copied := *project
	copied.Administrators = append([]string(nil), project.Administrators...)
	copied.Team = append([]string(nil), project.Team...)
	return &copied
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
