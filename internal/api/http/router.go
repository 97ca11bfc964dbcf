package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/register", cfg.Auth.Register)
	api.Post("/login", cfg.Auth.Login)
	api.Post("/logout", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Logout)
	api.Get("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin), cfg.Auth.ListUsers)

	jobs := api.Group("/job_portals")
	jobs.Get("/", cfg.Jobs.List)
	jobs.Get("/search", cfg.Jobs.Search)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Post("/", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleEmployer), cfg.Jobs.Create)
	jobs.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleEmployer, domain.RoleAdmin), cfg.Jobs.Update)
	jobs.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleEmployer, domain.RoleAdmin), cfg.Jobs.Delete)

	applies := api.Group("/job_applies", cfg.AuthMiddleware.Handle)
	applies.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Applications.List)
	applies.Get("/employer/:employerId", auth.RequireRole(domain.RoleEmployer, domain.RoleAdmin), cfg.Applications.ListByEmployer)
	applies.Post("/", auth.RequireRole(domain.RoleJobSeeker), cfg.Applications.Create)
	applies.Get("/:id", auth.RequireAuthenticated(), cfg.Applications.Get)
	applies.Put("/:id/status", auth.RequireRole(domain.RoleEmployer, domain.RoleAdmin), cfg.Applications.UpdateStatus)
	applies.Put("/:id", auth.RequireRole(domain.RoleJobSeeker), cfg.Applications.Update)
	applies.Delete("/:id", auth.RequireRole(domain.RoleJobSeeker, domain.RoleAdmin), cfg.Applications.Delete)
}
