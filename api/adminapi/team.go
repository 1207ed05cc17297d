package adminapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/darkroom-cms/darkroom/api"
	"github.com/darkroom-cms/darkroom/internal/cache"
	"github.com/darkroom-cms/darkroom/internal/sessions"
	"github.com/darkroom-cms/darkroom/storage/model"
)

// registerTeam wires the team page management handlers. Unlike the photo
// routes these are not covered by the gate, so the capability check here
// also carries the authentication check.
func registerTeam(r fiber.Router, codec *sessions.Codec, team model.TeamStore) {
	withCacheWipe := cacheInvalidation(cache.KeyTeamList)

	r.Post(
		"/api/team", withCacheWipe, func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageContent); err != nil {
				return err
			}
			var req model.AddTeamMember
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			if err := validate.Struct(req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse(validationMessage(err)))
			}
			member, err := team.Create(req)
			if err != nil {
				var validationError model.ValidationError
				if errors.As(err, &validationError) {
					return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse(err.Error()))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.Status(fiber.StatusCreated).JSON(api.SuccessResponse(member))
		},
	)

	type reorderReq struct {
		OrderedIDs []string `json:"orderedIds"`
	}
	r.Put(
		"/api/team/reorder", withCacheWipe, func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageContent); err != nil {
				return err
			}
			var req reorderReq
			if err := c.BodyParser(&req); err != nil || req.OrderedIDs == nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("orderedIds must be an array"))
			}
			if err := team.Reorder(req.OrderedIDs); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(nil))
		},
	)

	// The update target id travels in the body, not the path.
	type updateReq struct {
		ID string `json:"id"`
		model.AddTeamMember
	}
	r.Put(
		"/api/team", withCacheWipe, func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageContent); err != nil {
				return err
			}
			var req updateReq
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			if req.ID == "" {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("id is required"))
			}
			member, err := team.Update(req.ID, req.AddTeamMember)
			if err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return c.Status(fiber.StatusNotFound).JSON(api.ErrorResponse("team member not found"))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(member))
		},
	)

	r.Delete(
		"/api/team", withCacheWipe, func(c *fiber.Ctx) error {
			if _, err := authorize(c, codec, model.CapabilityManageContent); err != nil {
				return err
			}
			id := c.Query("id")
			if id == "" {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("id is required"))
			}
			// Deleting an id that is already gone is a success.
			if err := team.Delete(id); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(nil))
		},
	)
}
