package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler serves the unauthenticated liveness probe. Grounded on
// BbangMxn-worker/worker_server/adapter/in/http/worker_health.go's
// Health/Ready split; this service has no database of its own to ping, so
// only the liveness half applies.
type HealthHandler struct{}

// NewHealthHandler builds a HealthHandler.
func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// Register mounts /health on app.
func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
