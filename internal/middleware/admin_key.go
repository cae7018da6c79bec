package middleware

import (
	"crypto/subtle"

	"carbonsouq-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAdminKey gates mutating catalog routes behind a shared admin key.
// Identity/session management belongs to the upstream auth service; this
// only checks that the caller presents the configured key.
func RequireAdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return response.Error(c, "Admin key not configured", fiber.StatusServiceUnavailable, nil)
		}
		got := c.Get(adminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}
