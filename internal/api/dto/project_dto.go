package dto

import (
	"time"

	"github.com/taskforge/project-tracker/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
}

// UpdateProjectRequest payload.
type UpdateProjectRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
}

// AddMemberRequest identifies the target user by email.
type AddMemberRequest struct {
	UserEmail string `json:"user_email"`
}

// ChangeRoleRequest payload for team <-> administrator moves.
type ChangeRoleRequest struct {
	MemberID string `json:"member_id"`
	NewRole  string `json:"new_role"`
}

// ProjectResponse echoes a project with its membership sets.
type ProjectResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Status         domain.ProjectStatus `json:"status"`
	OwnerID        string               `json:"owner_id"`
	Administrators []string             `json:"administrators"`
	Team           []string             `json:"team"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	administrators := project.Administrators
	if administrators == nil {
		administrators = []string{}
	}
	team := project.Team
	if team == nil {
		team = []string{}
	}
	return ProjectResponse{
		ID:             project.ID,
		Name:           project.Name,
		Description:    project.Description,
		Status:         project.Status,
		OwnerID:        project.OwnerID,
		Administrators: administrators,
		Team:           team,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

// MemberResponse is a user annotated with their project role.
type MemberResponse struct {
	UserResponse
	Role string `json:"role"`
}

// MembersResponse is the role-classified membership listing.
type MembersResponse struct {
	Members []MemberResponse `json:"members"`
}
