package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAuth_RejectsWrongKey(t *testing.T) {
	app := fiber.New()
	app.Get("/guarded", AdminAuth("right-key"), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuth_RejectsEmptyConfiguredKey(t *testing.T) {
	app := fiber.New()
	app.Get("/guarded", AdminAuth(""), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-API-Key", "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuth_AllowsMatchingKey(t *testing.T) {
	app := fiber.New()
	app.Get("/guarded", AdminAuth("right-key"), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-API-Key", "right-key")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
