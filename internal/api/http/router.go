package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/http/handlers"
	"github.com/spec-kit/ops-console/internal/auth"
	"github.com/spec-kit/ops-console/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Clients        *handlers.ClientsHandler
	Budgets        *handlers.BudgetsHandler
	Users          *handlers.UsersHandler
	Directory      *handlers.DirectoryHandler
	Calendar       *handlers.CalendarHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)
	protected.Put("/tickets/:id", cfg.Tickets.ReplaceTicket)

	protected.Get("/clients", cfg.Clients.ListClients)
	protected.Post("/clients", cfg.Clients.CreateClient)
	protected.Get("/clients/:id", cfg.Clients.GetClient)
	protected.Put("/clients/:id", cfg.Clients.UpdateClient)
	protected.Delete("/clients/:id", cfg.Clients.DeleteClient)

	protected.Get("/budgets", cfg.Budgets.ListBudgets)
	protected.Post("/budgets", cfg.Budgets.CreateBudget)
	protected.Get("/budgets/:id", cfg.Budgets.GetBudget)
	protected.Put("/budgets/:id", cfg.Budgets.UpdateBudget)
	protected.Delete("/budgets/:id", cfg.Budgets.DeleteBudget)

	protected.Get("/users", cfg.Directory.ListUsers)
	protected.Get("/groups", cfg.Directory.ListGroups)
	protected.Get("/calendar", cfg.Calendar.ListEvents)

	admin := protected.Group("", auth.RequireRole(domain.RoleAdmin))
	admin.Post("/users", cfg.Users.CreateUser)
	admin.Put("/users/:id", cfg.Users.UpdateUser)
	admin.Delete("/users/:id", cfg.Users.DeleteUser)
}
