package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/edudocs-api/internal/config"
	"github.com/noah-isme/edudocs-api/internal/handler"
	"github.com/noah-isme/edudocs-api/internal/middleware"
	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Session          middleware.CurrentUserProvider
	Assistant        handler.AvailabilityChecker
	UserHandler      *handler.UserHandler
	SessionHandler   *handler.SessionHandler
	DocumentHandler  *handler.DocumentHandler
	BlobHandler      *handler.BlobHandler
	AssistantHandler *handler.AssistantHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.Assistant))

	if deps.Session != nil {
		api.Use(middleware.SessionUser(deps.Session))
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users"))
	}

	if deps.SessionHandler != nil {
		deps.SessionHandler.Register(api.Group("/session"))
	}

	if deps.DocumentHandler != nil {
		documents := api.Group("/documents", middleware.RequireUser())
		deps.DocumentHandler.Register(documents)
		documents.Post("", middleware.RequireRole(models.RoleStudent), deps.DocumentHandler.Submit)
		documents.Patch("/:id/status", middleware.RequireRole(models.RoleTeacher), deps.DocumentHandler.Review)
	}

	if deps.BlobHandler != nil {
		deps.BlobHandler.Register(api.Group("/blobs", middleware.RequireUser()))
	}

	if deps.AssistantHandler != nil {
		assistant := api.Group("/assistant", middleware.RequireUser())
		deps.AssistantHandler.Register(assistant)
		assistant.Post("/messages", middleware.RateLimit("assistant", cfg.AssistantRate, time.Minute), deps.AssistantHandler.Ask)
	}
}
