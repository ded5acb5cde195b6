package access

import (
	"testing"

	"github.com/taskforge/project-tracker/internal/domain"
	apperrors "github.com/taskforge/project-tracker/pkg/util"
)

func sampleProject() *domain.Project {
	return &domain.Project{
		ID:             "project-1",
		Name:           "Apollo",
		Status:         domain.ProjectStatusActive,
		OwnerID:        "owner",
		Administrators: []string{"admin"},
		Team:           []string{"member"},
	}
}

func assertInvariant(t *testing.T, p *domain.Project) {
	t.Helper()
	seen := map[string]string{p.OwnerID: "owner"}
	for _, id := range p.Administrators {
		if previous, ok := seen[id]; ok {
			t.Fatalf("user %s holds both %s and administrator roles", id, previous)
		}
		seen[id] = "administrator"
	}
	for _, id := range p.Team {
		if previous, ok := seen[id]; ok {
			t.Fatalf("user %s holds both %s and team roles", id, previous)
		}
		seen[id] = "team"
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !apperrors.IsCode(err, code) {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

func TestProjectRoleClassification(t *testing.T) {
	p := sampleProject()
	cases := []struct {
		userID string
		want   Role
	}{
		{"owner", RoleOwner},
		{"admin", RoleAdministrator},
		{"member", RoleTeam},
		{"stranger", RoleNone},
	}
	for _, tc := range cases {
		if got := ProjectRole(p, tc.userID); got != tc.want {
			t.Errorf("ProjectRole(%q) = %v, want %v", tc.userID, got, tc.want)
		}
	}
}

func TestStrangerIsForbiddenEverywhere(t *testing.T) {
	p := sampleProject()
	ticket := &domain.Ticket{ID: "t1", ProjectID: p.ID, CreatorID: "member"}

	checks := map[string]error{
		"view project":  RequireProjectView(p, "stranger"),
		"edit project":  RequireProjectEdit(p, "stranger"),
		"owner op":      RequireProjectOwner(p, "stranger"),
		"ticket access": RequireTicketAccess(p, "stranger"),
		"ticket delete": RequireTicketDelete(ticket, "stranger"),
	}
	for name, err := range checks {
		if !apperrors.IsCode(err, "FORBIDDEN") {
			t.Errorf("%s: expected FORBIDDEN, got %v", name, err)
		}
	}
}

func TestAddAdministratorPromotesFromTeam(t *testing.T) {
	p := sampleProject()
	if err := AddAdministrator(p, "owner", "member"); err != nil {
		t.Fatalf("AddAdministrator: %v", err)
	}
	assertInvariant(t, p)
	if ProjectRole(p, "member") != RoleAdministrator {
		t.Fatalf("expected member promoted to administrator, got %v", ProjectRole(p, "member"))
	}
	if len(p.Team) != 0 {
		t.Fatalf("expected team emptied after promotion, got %v", p.Team)
	}
}

func TestAddAdministratorPreconditions(t *testing.T) {
	p := sampleProject()
	assertCode(t, AddAdministrator(p, "admin", "stranger"), "FORBIDDEN")
	assertCode(t, AddAdministrator(p, "owner", "owner"), "INVALID_REQUEST")
	assertCode(t, AddAdministrator(p, "owner", "admin"), "INVALID_REQUEST")
}

func TestRemoveAdministrator(t *testing.T) {
	p := sampleProject()
	if err := RemoveAdministrator(p, "owner", "admin"); err != nil {
		t.Fatalf("RemoveAdministrator: %v", err)
	}
	if ProjectRole(p, "admin") != RoleNone {
		t.Fatalf("expected admin removed, got role %v", ProjectRole(p, "admin"))
	}

	p = sampleProject()
	assertCode(t, RemoveAdministrator(p, "admin", "admin"), "FORBIDDEN")
	assertCode(t, RemoveAdministrator(p, "owner", "member"), "INVALID_REQUEST")
}

func TestAddTeamMember(t *testing.T) {
	p := sampleProject()
	if err := AddTeamMember(p, "admin", "newcomer"); err != nil {
		t.Fatalf("AddTeamMember by administrator: %v", err)
	}
	assertInvariant(t, p)
	if ProjectRole(p, "newcomer") != RoleTeam {
		t.Fatalf("expected newcomer on team, got %v", ProjectRole(p, "newcomer"))
	}

	assertCode(t, AddTeamMember(p, "member", "other"), "FORBIDDEN")
	assertCode(t, AddTeamMember(p, "owner", "owner"), "INVALID_REQUEST")
	assertCode(t, AddTeamMember(p, "owner", "admin"), "INVALID_REQUEST")
	assertCode(t, AddTeamMember(p, "owner", "newcomer"), "INVALID_REQUEST")
}

func TestRemoveTeamMember(t *testing.T) {
	p := sampleProject()
	if err := RemoveTeamMember(p, "admin", "member"); err != nil {
		t.Fatalf("RemoveTeamMember: %v", err)
	}
	if ProjectRole(p, "member") != RoleNone {
		t.Fatalf("expected member removed, got role %v", ProjectRole(p, "member"))
	}

	p = sampleProject()
	assertCode(t, RemoveTeamMember(p, "member", "member"), "FORBIDDEN")
	assertCode(t, RemoveTeamMember(p, "owner", "admin"), "INVALID_REQUEST")
}

func TestChangeMemberRoleMovesBetweenSets(t *testing.T) {
	p := sampleProject()
	if err := ChangeMemberRole(p, "owner", "member", RoleAdministrator); err != nil {
		t.Fatalf("promote member: %v", err)
	}
	assertInvariant(t, p)
	if ProjectRole(p, "member") != RoleAdministrator {
		t.Fatalf("expected member promoted, got %v", ProjectRole(p, "member"))
	}

	if err := ChangeMemberRole(p, "owner", "admin", RoleTeam); err != nil {
		t.Fatalf("demote admin: %v", err)
	}
	assertInvariant(t, p)
	if ProjectRole(p, "admin") != RoleTeam {
		t.Fatalf("expected admin demoted, got %v", ProjectRole(p, "admin"))
	}
}

func TestChangeMemberRolePreconditions(t *testing.T) {
	p := sampleProject()
	assertCode(t, ChangeMemberRole(p, "admin", "member", RoleAdministrator), "FORBIDDEN")
	assertCode(t, ChangeMemberRole(p, "owner", "member", Role("viewer")), "INVALID_REQUEST")
	assertCode(t, ChangeMemberRole(p, "owner", "owner", RoleTeam), "INVALID_REQUEST")
	assertCode(t, ChangeMemberRole(p, "owner", "stranger", RoleTeam), "INVALID_REQUEST")
	assertCode(t, ChangeMemberRole(p, "owner", "admin", RoleAdministrator), "INVALID_REQUEST")
}

// Promoting to administrator and demoting back to team must land in the same
// end state regardless of the starting role, as long as the user is not the
// owner.
func TestPromoteThenDemoteIsIdempotent(t *testing.T) {
	for _, start := range []Role{RoleTeam, RoleAdministrator} {
		p := &domain.Project{ID: "p", OwnerID: "owner"}
		switch start {
		case RoleTeam:
			p.Team = []string{"u1"}
		case RoleAdministrator:
			p.Administrators = []string{"u1"}
		}

		if ProjectRole(p, "u1") != RoleAdministrator {
			if err := ChangeMemberRole(p, "owner", "u1", RoleAdministrator); err != nil {
				t.Fatalf("start=%v promote: %v", start, err)
			}
		}
		if err := ChangeMemberRole(p, "owner", "u1", RoleTeam); err != nil {
			t.Fatalf("start=%v demote: %v", start, err)
		}

		assertInvariant(t, p)
		if ProjectRole(p, "u1") != RoleTeam {
			t.Fatalf("start=%v: expected u1 on team, got %v", start, ProjectRole(p, "u1"))
		}
		if len(p.Administrators) != 0 {
			t.Fatalf("start=%v: expected no administrators, got %v", start, p.Administrators)
		}
	}
}

func TestTicketDeleteRestrictedToCreator(t *testing.T) {
	ticket := &domain.Ticket{ID: "t1", ProjectID: "p", CreatorID: "u1"}
	if err := RequireTicketDelete(ticket, "u1"); err != nil {
		t.Fatalf("creator delete: %v", err)
	}
	// Project edit rights do not extend to ticket deletion.
	assertCode(t, RequireTicketDelete(ticket, "owner"), "FORBIDDEN")
}

func TestCommentAuthorOnly(t *testing.T) {
	comment := &domain.Comment{ID: "c1", TicketID: "t1", AuthorID: "u1"}
	if err := RequireCommentAuthor(comment, "u1"); err != nil {
		t.Fatalf("author update: %v", err)
	}
	assertCode(t, RequireCommentAuthor(comment, "u2"), "FORBIDDEN")
}
