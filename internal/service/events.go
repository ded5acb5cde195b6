package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/project-tracker/internal/events"
)

// stampEvent fills in the event id and timestamp before publication.
func stampEvent(event events.Event) events.Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return event
}
