package adminapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/darkroom-cms/darkroom/api"
	"github.com/darkroom-cms/darkroom/internal/sessions"
	"github.com/darkroom-cms/darkroom/storage/model"
)

// registerProfile wires the self-service handlers. Any authenticated user
// may change their own profile and password; the target account is always
// taken from the token, never from the request.
func registerProfile(r fiber.Router, codec *sessions.Codec, users model.UsersStore) {
	type profileReq struct {
		Username string `json:"username"`
		Name     string `json:"name"`
	}
	r.Put(
		"/api/profile", func(c *fiber.Ctx) error {
			claims, err := authorize(c, codec, "")
			if err != nil {
				return err
			}
			var req profileReq
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			req.Username = strings.TrimSpace(req.Username)
			if len(req.Username) < 3 {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("username must be at least 3 characters"))
			}
			user, err := users.UpdateProfile(claims.UserID, req.Username, req.Name)
			if err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return c.Status(fiber.StatusNotFound).JSON(api.ErrorResponse("user not found"))
				}
				var alreadyExistsError model.AlreadyExistsError
				if errors.As(err, &alreadyExistsError) {
					return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("username already taken"))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			// Refresh the cookie so the token's identity claims match the
			// new username right away.
			if token, err := codec.Sign(user); err == nil {
				setSessionCookie(c, token, codec.Lifetime())
			}
			return c.JSON(api.SuccessResponse(fiber.Map{"user": user}))
		},
	)

	type passwordReq struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	r.Post(
		"/api/profile/password", func(c *fiber.Ctx) error {
			claims, err := authorize(c, codec, "")
			if err != nil {
				return err
			}
			var req passwordReq
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			if len(req.NewPassword) < 6 {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("new password must be at least 6 characters"))
			}
			ok, err := users.VerifyPassword(claims.UserID, req.CurrentPassword)
			if err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return c.Status(fiber.StatusNotFound).JSON(api.ErrorResponse("user not found"))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("current password is incorrect"))
			}
			if err := users.UpdatePassword(claims.UserID, req.NewPassword); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(nil))
		},
	)
}
