// Package httpapi is the Fiber-based ingress for the validation endpoint
// and the admin configuration surface.
//
// Grounded on BbangMxn-worker/worker_server/adapter/in/http: one handler
// struct per concern, a constructor taking its collaborators, a Register
// method that owns its own route group.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/stoik/emailrisk/internal/application"
	"github.com/stoik/emailrisk/internal/configstore"
	"github.com/stoik/emailrisk/internal/domain"
)

// ValidateHandler serves POST /v1/validate.
type ValidateHandler struct {
	service *application.ValidationService
	config  *configstore.Store
	logger  zerolog.Logger
}

// NewValidateHandler builds a ValidateHandler backed by service. config is
// consulted per request to decide whether the X-* response headers are
// attached (cfg.flags.enableResponseHeaders).
func NewValidateHandler(service *application.ValidationService, config *configstore.Store, logger zerolog.Logger) *ValidateHandler {
	return &ValidateHandler{service: service, config: config, logger: logger.With().Str("component", "validate_handler").Logger()}
}

// Register mounts the validation endpoint on app.
func (h *ValidateHandler) Register(app *fiber.App) {
	app.Post("/v1/validate", h.Validate)
}

type validateRequestBody struct {
	Email    string `json:"email"`
	Consumer string `json:"consumer"`
	Flow     string `json:"flow"`
}

// Validate returns 200 for allow/warn decisions and 400 for a blocked
// decision or a missing/malformed body.
func (h *ValidateHandler) Validate(c *fiber.Ctx) error {
	var body validateRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	req := domain.ValidationRequest{
		Email:     body.Email,
		Consumer:  body.Consumer,
		Flow:      body.Flow,
		Transport: transportFromRequest(c),
	}

	ctx, cancel := context.WithTimeout(c.Context(), 500*time.Millisecond)
	defer cancel()

	result, err := h.service.Validate(ctx, req)
	if err != nil {
		if domain.KindOf(err) == domain.ErrInvalidRequest {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error().Err(err).Msg("validate failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	if cfg, cfgErr := h.config.Get(ctx); cfgErr == nil && cfg.Flags.EnableResponseHeaders {
		for k, v := range application.ResponseHeaders(result) {
			c.Set(k, v)
		}
	}

	status := fiber.StatusOK
	if result.Decision == domain.DecisionBlock {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(result)
}

// transportFromRequest derives domain.TransportSignals from the headers an
// edge/CDN layer (Cloudflare-shaped) is expected to set in front of this
// service; none are required, so a direct client with no such headers
// still validates successfully with an empty fingerprint input.
func transportFromRequest(c *fiber.Ctx) domain.TransportSignals {
	return domain.TransportSignals{
		IP:         c.IP(),
		JA4:        c.Get("X-JA4"),
		JA3:        c.Get("X-JA3"),
		ASN:        c.Get("X-ASN"),
		UserAgent:  c.Get("User-Agent"),
		DeviceType: c.Get("X-Device-Type"),
		Country:    c.Get("CF-IPCountry"),
	}
}
