package httpapi

import "github.com/gofiber/fiber/v2"

// AdminAuth enforces the shared-secret admin header: every /admin/* route
// requires X-API-Key to match the configured admin key.
//
// Grounded on BbangMxn-worker/worker_server/infra/middleware/worker_auth.go's
// JWTAuth shape (a fiber.Handler factory closing over the secret), narrowed
// here to a single static header comparison since the admin surface has no
// session or token concept of its own.
func AdminAuth(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" || c.Get("X-API-Key") != key {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or missing X-API-Key"})
		}
		return c.Next()
	}
}
