package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/matiasmngz/users-api/internal/config"
	"github.com/matiasmngz/users-api/internal/handlers"
	"github.com/matiasmngz/users-api/internal/middleware"
	"github.com/matiasmngz/users-api/internal/models"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	roleHandler *handlers.RoleHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Auth — public, stricter rate limit: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/signin", authHandler.Signin)

	jwt := middleware.JWTProtected(cfg)
	general := middleware.RolesRequired(models.RoleGeneral)
	admin := middleware.RolesRequired(models.RoleAdministrador)

	// Users — reads for any authenticated GENERAL account, writes for admins.
	// Static segments are registered before parameterized ones so that
	// /users/status/:status does not match as /users/:id.
	users := app.Group("/users", jwt)
	users.Get("/", general, userHandler.List)
	users.Get("/status/:status", general, userHandler.ListByStatus)
	users.Post("/", admin, userHandler.Create)
	users.Put("/restart/password", admin, userHandler.RestartPassword)
	users.Put("/email/:id", admin, userHandler.UpdateEmail)
	users.Put("/profile/:id", admin, userHandler.UpdateProfile)
	users.Delete("/drop/:id", admin, userHandler.Drop)
	users.Post("/setRole/:userId/:roleId", admin, userHandler.SetRole)
	users.Post("/unsetRole/:userId/:roleId", admin, userHandler.UnsetRole)
	users.Get("/:id", general, userHandler.GetByID)
	users.Get("/:id/status/:status", general, userHandler.GetByIDAndStatus)
	users.Put("/:id", admin, userHandler.Update)
	users.Delete("/:id", admin, userHandler.SoftDelete)

	// Roles — admin only, mirrors the users surface.
	roles := app.Group("/roles", jwt, admin)
	roles.Get("/", roleHandler.List)
	roles.Get("/status/:status", roleHandler.ListByStatus)
	roles.Post("/", roleHandler.Create)
	roles.Delete("/drop/:id", roleHandler.Drop)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Get("/:id/status/:status", roleHandler.GetByIDAndStatus)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.SoftDelete)
}
