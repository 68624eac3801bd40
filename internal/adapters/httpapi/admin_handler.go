package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stoik/emailrisk/internal/configstore"
	"github.com/stoik/emailrisk/internal/domain"
)

// AdminHandler serves the /admin/config* endpoints. Every route is mounted
// behind AdminAuth by Register.
type AdminHandler struct {
	config   *configstore.Store
	adminKey string
}

// NewAdminHandler builds an AdminHandler backed by config, guarded by
// adminKey.
func NewAdminHandler(config *configstore.Store, adminKey string) *AdminHandler {
	return &AdminHandler{config: config, adminKey: adminKey}
}

// Register mounts the admin routes on app, all behind AdminAuth.
func (h *AdminHandler) Register(app *fiber.App) {
	admin := app.Group("/admin", AdminAuth(h.adminKey))

	admin.Get("/config", h.getConfig)
	admin.Put("/config", h.replaceConfig)
	admin.Patch("/config", h.patchConfig)
	admin.Post("/config/validate", h.validateConfig)
	admin.Post("/config/reset", h.resetConfig)
	admin.Delete("/config/cache", h.invalidateCache)
	admin.Get("/health", h.health)
}

// configResponse excludes Secrets from every admin read.
type configResponse struct {
	Thresholds  domain.RiskThresholds    `json:"thresholds"`
	Weights     domain.RiskWeights       `json:"weights"`
	Flags       domain.FeatureFlags      `json:"flags"`
	Integration domain.IntegrationConfig `json:"integration"`
}

func toConfigResponse(cfg domain.Configuration) configResponse {
	return configResponse{
		Thresholds:  cfg.Thresholds,
		Weights:     cfg.Weights,
		Flags:       cfg.Flags,
		Integration: cfg.Integration,
	}
}

func (h *AdminHandler) getConfig(c *fiber.Ctx) error {
	cfg, err := h.config.Get(c.Context())
	if err != nil {
		return writeConfigError(c, err)
	}
	return c.JSON(toConfigResponse(cfg))
}

func (h *AdminHandler) replaceConfig(c *fiber.Ctx) error {
	var body configResponse
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	current, err := h.config.Get(c.Context())
	if err != nil {
		return writeConfigError(c, err)
	}

	cfg := domain.Configuration{
		Thresholds:  body.Thresholds,
		Weights:     body.Weights,
		Flags:       body.Flags,
		Integration: body.Integration,
		Secrets:     current.Secrets,
	}

	updated, err := h.config.Replace(c.Context(), cfg)
	if err != nil {
		return writeConfigError(c, err)
	}
	return c.JSON(toConfigResponse(updated))
}

func (h *AdminHandler) patchConfig(c *fiber.Ctx) error {
	var patch domain.ConfigPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	updated, err := h.config.Patch(c.Context(), patch)
	if err != nil {
		return writeConfigError(c, err)
	}
	return c.JSON(toConfigResponse(updated))
}

func (h *AdminHandler) validateConfig(c *fiber.Ctx) error {
	var body configResponse
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	cfg := domain.Configuration{
		Thresholds:  body.Thresholds,
		Weights:     body.Weights,
		Flags:       body.Flags,
		Integration: body.Integration,
	}

	if err := configstore.Validate(cfg); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"valid": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"valid": true})
}

func (h *AdminHandler) resetConfig(c *fiber.Ctx) error {
	if err := h.config.Reset(c.Context()); err != nil {
		return writeConfigError(c, err)
	}
	cfg, err := h.config.Get(c.Context())
	if err != nil {
		return writeConfigError(c, err)
	}
	return c.JSON(toConfigResponse(cfg))
}

func (h *AdminHandler) invalidateCache(c *fiber.Ctx) error {
	h.config.Invalidate()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) health(c *fiber.Ctx) error {
	_, err := h.config.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// writeConfigError maps a domain.Error's Kind to a status code: InvalidConfig
// surfaces per-field validation detail, anything else on the admin write
// path is a 5xx.
func writeConfigError(c *fiber.Ctx, err error) error {
	if domain.KindOf(err) == domain.ErrInvalidConfig {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
