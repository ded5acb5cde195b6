// Package access centralizes every authorization decision for projects,
// tickets and comments. Handlers and services never test membership sets
// directly; they call into this package so the role model lives in one place.
package access

import (
	"github.com/taskforge/project-tracker/internal/domain"
	apperrors "github.com/taskforge/project-tracker/pkg/util"
)

// Role classifies a user's standing on a project.
type Role string

const (
	RoleOwner         Role = "owner"
	RoleAdministrator Role = "administrator"
	RoleTeam          Role = "team"
	RoleNone          Role = "none"
)

// ProjectRole computes the role of userID on the project. The membership
// invariant (owner in neither set, sets disjoint) makes the classification
// total: a user holds exactly one role or none.
func ProjectRole(p *domain.Project, userID string) Role {
	if p.OwnerID == userID {
		return RoleOwner
	}
	if contains(p.Administrators, userID) {
		return RoleAdministrator
	}
	if contains(p.Team, userID) {
		return RoleTeam
	}
	return RoleNone
}

// RequireProjectView allows any member (owner, administrator or team).
func RequireProjectView(p *domain.Project, actorID string) error {
	if ProjectRole(p, actorID) == RoleNone {
		return apperrors.NewForbidden("access to this project denied")
	}
	return nil
}

// RequireProjectEdit allows owner and administrators to change project fields.
func RequireProjectEdit(p *domain.Project, actorID string) error {
	switch ProjectRole(p, actorID) {
	case RoleOwner, RoleAdministrator:
		return nil
	}
	return apperrors.NewForbidden("only the owner or an administrator can modify this project")
}

// RequireProjectOwner restricts an operation to the project owner.
func RequireProjectOwner(p *domain.Project, actorID string) error {
	if ProjectRole(p, actorID) != RoleOwner {
		return apperrors.NewForbidden("only the project owner can perform this operation")
	}
	return nil
}

// RequireTicketAccess gates view, update and commenting on a ticket: any
// role on the owning project suffices. Status transitions carry no further
// constraint.
func RequireTicketAccess(p *domain.Project, actorID string) error {
	if ProjectRole(p, actorID) == RoleNone {
		return apperrors.NewForbidden("access to this ticket denied")
	}
	return nil
}

// RequireTicketDelete restricts deletion to the ticket creator. This is
// intentionally stricter than project edit rights: an administrator who did
// not file the ticket cannot remove it.
func RequireTicketDelete(t *domain.Ticket, actorID string) error {
	if t.CreatorID != actorID {
		return apperrors.NewForbidden("only the ticket creator can delete this ticket")
	}
	return nil
}

// RequireCommentAuthor restricts comment update and deletion to its author,
// regardless of project role.
func RequireCommentAuthor(c *domain.Comment, actorID string) error {
	if c.AuthorID != actorID {
		return apperrors.NewForbidden("only the comment author can modify this comment")
	}
	return nil
}

// AddAdministrator grants targetID the administrator role. Only the owner may
// do so. A target already owning or administering the project is rejected as
// an invalid request. A target currently on the team is promoted: removed
// from the team and added to administrators in one step, so no intermediate
// state has the user in both sets.
func AddAdministrator(p *domain.Project, actorID, targetID string) error {
	if err := RequireProjectOwner(p, actorID); err != nil {
		return err
	}
	switch ProjectRole(p, targetID) {
	case RoleOwner:
		return apperrors.NewInvalidRequest("the owner is already an administrator", nil)
	case RoleAdministrator:
		return apperrors.NewInvalidRequest("this user is already an administrator", nil)
	case RoleTeam:
		p.Team = remove(p.Team, targetID)
	}
	p.Administrators = append(p.Administrators, targetID)
	return nil
}

// RemoveAdministrator revokes the administrator role. Only the owner may do
// so, and the target must currently be an administrator.
func RemoveAdministrator(p *domain.Project, actorID, targetID string) error {
	if err := RequireProjectOwner(p, actorID); err != nil {
		return err
	}
	if ProjectRole(p, targetID) != RoleAdministrator {
		return apperrors.NewInvalidRequest("this user is not an administrator", nil)
	}
	p.Administrators = remove(p.Administrators, targetID)
	return nil
}

// AddTeamMember adds targetID to the team. Owners and administrators may do
// so; targets already holding any role on the project are rejected.
func AddTeamMember(p *domain.Project, actorID, targetID string) error {
	if err := RequireProjectEdit(p, actorID); err != nil {
		return apperrors.NewForbidden("only the owner or an administrator can add members")
	}
	switch ProjectRole(p, targetID) {
	case RoleOwner:
		return apperrors.NewInvalidRequest("the owner is already part of the project", nil)
	case RoleAdministrator:
		return apperrors.NewInvalidRequest("this user is an administrator, a higher role", nil)
	case RoleTeam:
		return apperrors.NewInvalidRequest("this user is already a team member", nil)
	}
	p.Team = append(p.Team, targetID)
	return nil
}

// RemoveTeamMember removes targetID from the team. Owners and administrators
// may do so, and the target must currently be a team member.
func RemoveTeamMember(p *domain.Project, actorID, targetID string) error {
	if err := RequireProjectEdit(p, actorID); err != nil {
		return apperrors.NewForbidden("only the owner or an administrator can remove members")
	}
	if ProjectRole(p, targetID) != RoleTeam {
		return apperrors.NewInvalidRequest("this user is not a team member", nil)
	}
	p.Team = remove(p.Team, targetID)
	return nil
}

// ChangeMemberRole moves a member between the team and administrator sets as
// one logical step. Only the owner may change roles, the owner's own role is
// immutable, and the target must currently hold the role being moved from:
// requesting the role already held is an invalid request.
func ChangeMemberRole(p *domain.Project, actorID, targetID string, newRole Role) error {
	if err := RequireProjectOwner(p, actorID); err != nil {
		return err
	}
	if newRole != RoleAdministrator && newRole != RoleTeam {
		return apperrors.NewInvalidRequest("new role must be administrator or team", nil)
	}
	if targetID == p.OwnerID {
		return apperrors.NewInvalidRequest("the owner's role cannot be changed", nil)
	}
	switch current := ProjectRole(p, targetID); {
	case current == RoleNone:
		return apperrors.NewInvalidRequest("this user is not a member of the project", nil)
	case current == newRole:
		return apperrors.NewInvalidRequest("this user already holds the requested role", nil)
	case newRole == RoleAdministrator:
		p.Team = remove(p.Team, targetID)
		p.Administrators = append(p.Administrators, targetID)
	default:
		p.Administrators = remove(p.Administrators, targetID)
		p.Team = append(p.Team, targetID)
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	filtered := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}
