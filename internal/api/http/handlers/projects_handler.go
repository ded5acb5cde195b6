package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/project-tracker/internal/access"
	"github.com/taskforge/project-tracker/internal/api/dto"
	"github.com/taskforge/project-tracker/internal/auth"
	"github.com/taskforge/project-tracker/internal/domain"
	"github.com/taskforge/project-tracker/internal/service"
	apperrors "github.com/taskforge/project-tracker/pkg/util"
)

// ProjectsHandler manages project and membership endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// CreateProject POST /projects.
func (h *ProjectsHandler) CreateProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidRequest("invalid payload", nil)
	}

	project, err := h.service.CreateProject(c.Context(), principal.User.ID, service.ProjectCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// ListProjects GET /projects.
func (h *ProjectsHandler) ListProjects(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	projects, err := h.service.ListProjects(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, dto.NewProjectResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetProject GET /projects/:id.
func (h *ProjectsHandler) GetProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	project, err := h.service.GetProject(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// UpdateProject PUT /projects/:id.
func (h *ProjectsHandler) UpdateProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidRequest("invalid payload", nil)
	}

	project, err := h.service.UpdateProject(c.Context(), principal.User.ID, c.Params("id"), service.ProjectUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// DeleteProject DELETE /projects/:id.
func (h *ProjectsHandler) DeleteProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	if err := h.service.DeleteProject(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListMembers GET /projects/:id/members.
func (h *ProjectsHandler) ListMembers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	members, err := h.service.ListMembers(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": membersResponse(members)})
}

// AddAdministrator POST /projects/:id/administrators.
func (h *ProjectsHandler) AddAdministrator(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidRequest("invalid payload", nil)
	}

	project, err := h.service.AddAdministrator(c.Context(), principal.User.ID, c.Params("id"), req.UserEmail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// RemoveAdministrator DELETE /projects/:id/administrators?admin_id=...
func (h *ProjectsHandler) RemoveAdministrator(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	adminID := c.Query("admin_id")
	if adminID == "" {
		return apperrors.NewInvalidRequest("admin_id query parameter required", nil)
	}

	project, err := h.service.RemoveAdministrator(c.Context(), principal.User.ID, c.Params("id"), adminID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// AddTeamMember POST /projects/:id/team.
func (h *ProjectsHandler) AddTeamMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidRequest("invalid payload", nil)
	}

	project, err := h.service.AddTeamMember(c.Context(), principal.User.ID, c.Params("id"), req.UserEmail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// RemoveTeamMember DELETE /projects/:id/team?member_id=...
func (h *ProjectsHandler) RemoveTeamMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	memberID := c.Query("member_id")
	if memberID == "" {
		return apperrors.NewInvalidRequest("member_id query parameter required", nil)
	}

	project, err := h.service.RemoveTeamMember(c.Context(), principal.User.ID, c.Params("id"), memberID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// ChangeMemberRole PUT /projects/:id/members/role.
func (h *ProjectsHandler) ChangeMemberRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidRequest("invalid payload", nil)
	}
	if req.MemberID == "" || req.NewRole == "" {
		return apperrors.NewInvalidRequest("member_id and new_role required", nil)
	}

	project, err := h.service.ChangeMemberRole(c.Context(), principal.User.ID, c.Params("id"), req.MemberID, access.Role(req.NewRole))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

func membersResponse(members *service.ProjectMembers) dto.MembersResponse {
	resp := dto.MembersResponse{Members: make([]dto.MemberResponse, 0, 1+len(members.Administrators)+len(members.Team))}
	resp.Members = append(resp.Members, memberResponse(members.Owner, access.RoleOwner))
	for i := range members.Administrators {
		resp.Members = append(resp.Members, memberResponse(&members.Administrators[i], access.RoleAdministrator))
	}
	for i := range members.Team {
		resp.Members = append(resp.Members, memberResponse(&members.Team[i], access.RoleTeam))
	}
	return resp
}

func memberResponse(user *domain.User, role access.Role) dto.MemberResponse {
	return dto.MemberResponse{
		UserResponse: dto.NewUserResponse(user),
		Role:         string(role),
	}
}
