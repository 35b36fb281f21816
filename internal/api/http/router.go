package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Items          *handlers.ItemsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything ownership-sensitive sits
// behind the auth gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/users", cfg.Users.Register)
	app.Post("/login", cfg.Users.Login)
	app.Post("/auth/password/reset/request", cfg.Users.RequestPasswordReset)
	app.Post("/auth/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	gate := cfg.AuthMiddleware.Handle

	app.Delete("/logout", gate, cfg.Users.Logout)
	app.Get("/profile", gate, cfg.Users.Profile)
	app.Get("/users/:id", gate, cfg.Users.GetUser)
	app.Patch("/users/:id", gate, cfg.Users.UpdateUser)
	app.Delete("/users/:id", gate, cfg.Users.DeleteUser)

	items := app.Group("/items", gate)
	items.Get("", cfg.Items.ListItems)
	items.Post("", cfg.Items.CreateItem)
	items.Get("/:id", cfg.Items.GetItem)
	items.Patch("/:id", cfg.Items.UpdateItem)
	items.Delete("/:id", cfg.Items.DeleteItem)
}
