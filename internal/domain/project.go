package domain

import "time"

// ProjectStatus enumerates lifecycle states for projects.
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusInactive ProjectStatus = "INACTIVE"
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusInactive, ProjectStatusArchived:
		return true
	}
	return false
}

// Project is the aggregate owning tickets and membership sets.
// Invariant: OwnerID appears in neither set, and Administrators and Team
// are disjoint, so every user holds at most one role per project.
type Project struct {
	ID             string
	Name           string
	Description    string
	Status         ProjectStatus
	OwnerID        string
	Administrators []string
	Team           []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
