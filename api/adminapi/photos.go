package adminapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/darkroom-cms/darkroom/api"
	"github.com/darkroom-cms/darkroom/internal/cache"
	"github.com/darkroom-cms/darkroom/internal/sessions"
	"github.com/darkroom-cms/darkroom/storage/model"
)

// registerPhotos wires the gallery management handlers. The gate already
// requires a valid token for these routes; the capability check for plain
// admins happens here.
func registerPhotos(r fiber.Router, codec *sessions.Codec, photos model.PhotosStore) {
	withCacheWipe := cacheInvalidation(cache.KeyPhotosPage)

	r.Post(
		"/api/photos", withCacheWipe, func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageGallery); err != nil {
				return err
			}
			var req model.AddPhoto
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			if err := validate.Struct(req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse(validationMessage(err)))
			}
			photo, err := photos.Create(req)
			if err != nil {
				var validationError model.ValidationError
				if errors.As(err, &validationError) {
					return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse(err.Error()))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.Status(fiber.StatusCreated).JSON(api.SuccessResponse(photo))
		},
	)

	type reorderReq struct {
		OrderedIDs []string `json:"orderedIds"`
	}
	// Registered before /api/photos/:id so "reorder" is not taken for an id.
	r.Put(
		"/api/photos/reorder", withCacheWipe, func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageGallery); err != nil {
				return err
			}
			var req reorderReq
			if err := c.BodyParser(&req); err != nil || req.OrderedIDs == nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("orderedIds must be an array"))
			}
			if err := photos.Reorder(req.OrderedIDs); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(nil))
		},
	)

	r.Put(
		"/api/photos/:id", withCacheWipe, func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageGallery); err != nil {
				return err
			}
			var req model.AddPhoto
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			photo, err := photos.Update(c.Params("id"), req)
			if err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return c.Status(fiber.StatusNotFound).JSON(api.ErrorResponse("photo not found"))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(photo))
		},
	)

	r.Delete(
		"/api/photos/:id", withCacheWipe, func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageGallery); err != nil {
				return err
			}
			// Deleting an id that is already gone is a success.
			if err := photos.Delete(c.Params("id")); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(nil))
		},
	)

	r.Post(
		"/api/seed", withCacheWipe, func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageGallery); err != nil {
				return err
			}
			if err := photos.Seed(); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			photosList, err := photos.List()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(fiber.Map{"count": len(photosList)}))
		},
	)
}
