package adminapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/darkroom-cms/darkroom/api"
	"github.com/darkroom-cms/darkroom/internal/uploads"
)

// registerUpload wires the multipart file upload handler. Authentication is
// enforced by the gate; any logged-in user may upload.
func registerUpload(r fiber.Router, store uploads.Store) {
	r.Post(
		"/api/upload", func(c *fiber.Ctx) error {
			if store == nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse("uploads are not configured"))
			}
			header, err := c.FormFile("file")
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("file is required"))
			}
			f, err := header.Open()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			defer f.Close()
			url, err := store.Save(c.Context(), header.Filename, header.Header.Get(fiber.HeaderContentType), f)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(fiber.Map{"url": url}))
		},
	)
}
