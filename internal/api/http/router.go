package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
)

// Permission modules.
const (
	ModuleAuth        = "AUTH"
	ModuleUsers       = "USERS"
	ModuleRoles       = "ROLES"
	ModulePermissions = "PERMISSIONS"
	ModuleCompanies   = "COMPANIES"
	ModuleJobs        = "JOBS"
	ModuleResumes     = "RESUMES"
	ModuleSubscribers = "SUBSCRIBERS"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Prefix      string
	Gate        *auth.Gate
	Metrics     nethttp.Handler
	LoginLimit  fiber.Handler
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Roles       *handlers.RolesHandler
	Permissions *handlers.PermissionsHandler
	Companies   *handlers.CompaniesHandler
	Jobs        *handlers.JobsHandler
	Resumes     *handlers.ResumesHandler
	Subscribers *handlers.SubscribersHandler
}

// RegisterRoutes wires HTTP routes and returns the gated route table.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) *RouteTable {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	table := NewRouteTable(app, cfg.Gate, cfg.Prefix)

	loginOpts := []RouteOption{Public()}
	if cfg.LoginLimit != nil {
		loginOpts = append(loginOpts, Before(cfg.LoginLimit))
	}
	authGroup := table.Group("/auth", ModuleAuth)
	authGroup.Post("/login", cfg.Auth.Login, loginOpts...)
	authGroup.Post("/register", cfg.Auth.Register, Public())
	authGroup.Get("/refresh-token", cfg.Auth.Refresh, Public())
	authGroup.Get("/account", cfg.Auth.Account, SkipPermission())
	authGroup.Post("/logout", cfg.Auth.Logout, SkipPermission())
	authGroup.Post("/change-password", cfg.Auth.ChangePassword, SkipPermission())

	users := table.Group("/users", ModuleUsers)
	users.Post("", cfg.Users.Create)
	users.Get("", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	roles := table.Group("/roles", ModuleRoles)
	roles.Post("", cfg.Roles.Create)
	roles.Get("", cfg.Roles.List)
	roles.Get("/:id", cfg.Roles.Get)
	roles.Patch("/:id", cfg.Roles.Update)
	roles.Delete("/:id", cfg.Roles.Delete)

	permissions := table.Group("/permissions", ModulePermissions)
	permissions.Post("", cfg.Permissions.Create)
	permissions.Get("", cfg.Permissions.List)
	permissions.Get("/:id", cfg.Permissions.Get)
	permissions.Patch("/:id", cfg.Permissions.Update)
	permissions.Delete("/:id", cfg.Permissions.Delete)

	companies := table.Group("/companies", ModuleCompanies)
	companies.Post("", cfg.Companies.Create)
	companies.Get("", cfg.Companies.List, Public())
	companies.Get("/:id", cfg.Companies.Get, Public())
	companies.Patch("/:id", cfg.Companies.Update)
	companies.Delete("/:id", cfg.Companies.Delete)

	jobs := table.Group("/jobs", ModuleJobs)
	jobs.Post("", cfg.Jobs.Create)
	jobs.Get("", cfg.Jobs.List, Public())
	jobs.Get("/:id", cfg.Jobs.Get, Public())
	jobs.Patch("/:id", cfg.Jobs.Update)
	jobs.Delete("/:id", cfg.Jobs.Delete)

	resumes := table.Group("/resumes", ModuleResumes)
	resumes.Post("", cfg.Resumes.Create)
	resumes.Get("", cfg.Resumes.List)
	resumes.Get("/by-user", cfg.Resumes.ByUser)
	resumes.Get("/:id", cfg.Resumes.Get)
	resumes.Patch("/:id", cfg.Resumes.UpdateStatus)
	resumes.Delete("/:id", cfg.Resumes.Delete)

	subscribers := table.Group("/subscribers", ModuleSubscribers)
	subscribers.Post("", cfg.Subscribers.Create)
	subscribers.Get("", cfg.Subscribers.List)
	subscribers.Get("/:id", cfg.Subscribers.Get)
	subscribers.Patch("/:id", cfg.Subscribers.Update)
	subscribers.Delete("/:id", cfg.Subscribers.Delete)

	return table
}
