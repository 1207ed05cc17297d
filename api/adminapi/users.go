package adminapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/darkroom-cms/darkroom/api"
	"github.com/darkroom-cms/darkroom/internal/sessions"
	"github.com/darkroom-cms/darkroom/storage/model"
)

// registerUsers wires the account management handlers. Every route is
// superadmin-only; a plain admin gets 403 regardless of permissions.
func registerUsers(r fiber.Router, codec *sessions.Codec, users model.UsersStore) {
	r.Get(
		"/api/users", func(c *fiber.Ctx) error {
			if _, err := authorizeSuperadmin(c, codec); err != nil {
				return err
			}
			list, err := users.List()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(list))
		},
	)

	type createReq struct {
		Username    string     `json:"username"`
		Name        string     `json:"name"`
		Password    string     `json:"password"`
		Role        model.Role `json:"role"`
		Permissions []string   `json:"permissions"`
	}
	r.Post(
		"/api/users", func(c *fiber.Ctx) error {
			if _, err := authorizeSuperadmin(c, codec); err != nil {
				return err
			}
			var req createReq
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			if req.Username == "" || req.Password == "" {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("username and password are required"))
			}
			user, err := users.Create(req.Username, req.Name, req.Password, req.Role, req.Permissions)
			if err != nil {
				// Conflicts are reported as plain validation failures.
				var alreadyExistsError model.AlreadyExistsError
				var validationError model.ValidationError
				if errors.As(err, &alreadyExistsError) || errors.As(err, &validationError) {
					return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse(err.Error()))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.Status(fiber.StatusCreated).JSON(api.SuccessResponse(user))
		},
	)

	type updateReq struct {
		ID string `json:"id"`
		model.UserUpdate
	}
	r.Put(
		"/api/users", func(c *fiber.Ctx) error {
			if _, err := authorizeSuperadmin(c, codec); err != nil {
				return err
			}
			var req updateReq
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			if req.ID == "" {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("id is required"))
			}
			user, err := users.Update(req.ID, req.UserUpdate)
			if err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return c.Status(fiber.StatusNotFound).JSON(api.ErrorResponse("user not found"))
				}
				var alreadyExistsError model.AlreadyExistsError
				var validationError model.ValidationError
				if errors.As(err, &alreadyExistsError) || errors.As(err, &validationError) {
					return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse(err.Error()))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(user))
		},
	)

	r.Delete(
		"/api/users", func(c *fiber.Ctx) error {
			if _, err := authorizeSuperadmin(c, codec); err != nil {
				return err
			}
			id := c.Query("id")
			if id == "" {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("id is required"))
			}
			if err := users.Delete(id); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(nil))
		},
	)

	type resetReq struct {
		UserID string `json:"userId"`
	}
	r.Post(
		"/api/users/reset", func(c *fiber.Ctx) error {
			if _, err := authorizeSuperadmin(c, codec); err != nil {
				return err
			}
			var req resetReq
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			if req.UserID == "" {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("userId is required"))
			}
			if err := users.ResetPassword(req.UserID); err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return c.Status(fiber.StatusNotFound).JSON(api.ErrorResponse("user not found"))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(nil))
		},
	)
}
