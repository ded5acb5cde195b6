package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Transitions are
// unconstrained: any status is reachable from any other.
type TicketStatus string

const (
	TicketStatusTodo       TicketStatus = "TODO"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusInReview   TicketStatus = "IN_REVIEW"
	TicketStatusDone       TicketStatus = "DONE"
)

// ValidTicketStatus reports whether s is a known ticket status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusTodo, TicketStatusInProgress, TicketStatusInReview, TicketStatusDone:
		return true
	}
	return false
}

// Ticket is a unit of work filed against a project. CreatorID and ProjectID
// are immutable after creation. Assignees may overlap project roles
// arbitrarily.
type Ticket struct {
	ID            string
	Title         string
	Description   string
	Status        TicketStatus
	EstimatedDate time.Time
	ProjectID     string
	CreatorID     string
	Assignees     []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
