package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/edudocs-api/internal/config"
	"github.com/noah-isme/edudocs-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status             string    `json:"status"`
	Timestamp          time.Time `json:"timestamp"`
	Service            string    `json:"service"`
	Environment        string    `json:"environment"`
	AssistantAvailable bool      `json:"assistant_available"`
}

// AvailabilityChecker reports whether an optional dependency can be used.
type AvailabilityChecker interface {
	Available() bool
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config, assistant AvailabilityChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}
		if assistant != nil {
			payload.AssistantAvailable = assistant.Available()
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
