package adminapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/darkroom-cms/darkroom/internal/cache"
)

// cacheInvalidation returns a middleware that clears every cached entry
// under prefix after a successful mutation. Attached only to non-GET
// routes.
func cacheInvalidation(prefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		status := c.Response().StatusCode()
		if status >= 200 && status < 400 {
			_ = cache.Clear(prefix)
		}
		return nil
	}
}
