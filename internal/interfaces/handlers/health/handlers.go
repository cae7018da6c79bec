package health

import (
	healthsvc "carbonsouq-backend/internal/application/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Rdb     *redis.Client
	DB      healthsvc.DBPinger
	Catalog healthsvc.CatalogSizer
}

// JSON GET /health/json — full health snapshot.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.Context(), h.Rdb, h.DB, h.Catalog)
	return c.JSON(result)
}

// Root GET / — same snapshot; the dashboard UI lives in the front-end.
func (h *Handlers) Root(c *fiber.Ctx) error {
	return h.JSON(c)
}

// Reset GET /health/reset — clears the Redis traffic counters.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if err := healthsvc.Reset(c.Context(), h.Rdb); err != nil {
		return c.Status(500).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true})
}
