package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler_GetConfigWithoutKeyReturns401(t *testing.T) {
	_, admin, _ := newTestHandlers(t)
	app := fiber.New()
	admin.Register(app)

	req := httptest.NewRequest(http.MethodGet, "/admin/config", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminHandler_GetConfigWithKeySucceeds(t *testing.T) {
	_, admin, _ := newTestHandlers(t)
	app := fiber.New()
	admin.Register(app)

	req := httptest.NewRequest(http.MethodGet, "/admin/config", nil)
	req.Header.Set("X-API-Key", "test-admin-key")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminHandler_ValidateConfigRejectsBadWeights(t *testing.T) {
	_, admin, _ := newTestHandlers(t)
	app := fiber.New()
	admin.Register(app)

	body := `{"thresholds":{"warn":0.3,"block":0.6},"weights":{"entropy":0.9,"domainReputation":0.9,"tldRisk":0,"patternDetection":0,"markovChain":0},"flags":{},"integration":{}}`
	req := httptest.NewRequest(http.MethodPost, "/admin/config/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "test-admin-key")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAdminHandler_InvalidateCacheReturns204(t *testing.T) {
	_, admin, _ := newTestHandlers(t)
	app := fiber.New()
	admin.Register(app)

	req := httptest.NewRequest(http.MethodDelete, "/admin/config/cache", nil)
	req.Header.Set("X-API-Key", "test-admin-key")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
