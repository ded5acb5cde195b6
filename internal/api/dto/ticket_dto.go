package dto

import (
	"time"

	"github.com/taskforge/project-tracker/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        domain.TicketStatus `json:"status"`
	EstimatedDate time.Time           `json:"estimated_date"`
	ProjectID     string              `json:"project_id"`
	Assignees     []string            `json:"assignees"`
}

// UpdateTicketRequest payload.
type UpdateTicketRequest struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        domain.TicketStatus `json:"status"`
	EstimatedDate *time.Time          `json:"estimated_date"`
	Assignees     []string            `json:"assignees"`
}

// TicketResponse echoes a ticket.
type TicketResponse struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        domain.TicketStatus `json:"status"`
	EstimatedDate time.Time           `json:"estimated_date"`
	ProjectID     string              `json:"project_id"`
	CreatorID     string              `json:"creator_id"`
	Assignees     []string            `json:"assignees"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	assignees := ticket.Assignees
	if assignees == nil {
		assignees = []string{}
	}
	return TicketResponse{
		ID:            ticket.ID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		Status:        ticket.Status,
		EstimatedDate: ticket.EstimatedDate,
		ProjectID:     ticket.ProjectID,
		CreatorID:     ticket.CreatorID,
		Assignees:     assignees,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}
