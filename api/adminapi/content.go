package adminapi

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/darkroom-cms/darkroom/api"
	"github.com/darkroom-cms/darkroom/internal/cache"
	"github.com/darkroom-cms/darkroom/internal/sessions"
	"github.com/darkroom-cms/darkroom/storage/model"
)

// registerContent wires the site content upsert handler.
func registerContent(r fiber.Router, codec *sessions.Codec, content model.ContentStore) {
	type setReq struct {
		Key string `json:"key"`
		// Value is kept raw so scalars and structured objects both work.
		Value json.RawMessage `json:"value"`
	}
	r.Post(
		"/api/content", cacheInvalidation(cache.KeyContentMap), func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageContent); err != nil {
				return err
			}
			var req setReq
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			if req.Key == "" {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("key is required"))
			}
			if len(req.Value) == 0 {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("value is required"))
			}
			if err := content.Set(req.Key, datatypes.JSON(req.Value)); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(nil))
		},
	)
}
