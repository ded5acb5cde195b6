package domain

import "time"

// Comment is a discussion entry on a ticket. TicketID and AuthorID are
// immutable after creation.
type Comment struct {
	ID        string
	Content   string
	TicketID  string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
