package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/project-tracker/internal/api/http/handlers"
	"github.com/taskforge/project-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Projects       *handlers.ProjectsHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Users.Me)
	authProtected.Put("/me", cfg.Users.UpdateProfile)
	authProtected.Post("/password/change", cfg.Users.ChangePassword)

	projects := app.Group("/projects", cfg.AuthMiddleware.Handle)
	projects.Get("", cfg.Projects.ListProjects)
	projects.Post("", cfg.Projects.CreateProject)
	projects.Get("/:id", cfg.Projects.GetProject)
	projects.Put("/:id", cfg.Projects.UpdateProject)
	projects.Delete("/:id", cfg.Projects.DeleteProject)
	projects.Get("/:id/members", cfg.Projects.ListMembers)
	projects.Put("/:id/members/role", cfg.Projects.ChangeMemberRole)
	projects.Post("/:id/administrators", cfg.Projects.AddAdministrator)
	projects.Delete("/:id/administrators", cfg.Projects.RemoveAdministrator)
	projects.Post("/:id/team", cfg.Projects.AddTeamMember)
	projects.Delete("/:id/team", cfg.Projects.RemoveTeamMember)
	projects.Get("/:id/tickets", cfg.Tickets.ListProjectTickets)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)

	comments := app.Group("/comments", cfg.AuthMiddleware.Handle)
	comments.Post("", cfg.Comments.CreateComment)
	comments.Put("/:id", cfg.Comments.UpdateComment)
	comments.Delete("/:id", cfg.Comments.DeleteComment)
}
