// Package adminapi implements the authenticated management surface of the
// site: login and session handling, gallery and team curation, content
// editing, account administration and uploads.
package adminapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/darkroom-cms/darkroom/internal/sessions"
	"github.com/darkroom-cms/darkroom/internal/uploads"
	"github.com/darkroom-cms/darkroom/storage/model"
)

var validate = validator.New()

// validationMessage turns a validator error into a short client-facing
// message naming the first offending field.
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if ok := errors.As(err, &fieldErrors); ok && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "max":
			return fe.Field() + " is too long"
		case "email":
			return fe.Field() + " must be a valid email address"
		default:
			return fe.Field() + " is invalid"
		}
	}
	return "invalid request"
}

// Register mounts all admin routes on the app. The gate middleware is
// expected to be installed ahead of this, covering /admin, /api/upload,
// /api/seed and photo mutations; every handler still performs its own
// capability check.
func Register(
	r fiber.Router, codec *sessions.Codec, storages model.Backends, uploadStore uploads.Store,
) {
	registerAuth(r, codec, storages.Users)
	registerPhotos(r, codec, storages.Photos)
	registerTeam(r, codec, storages.Team)
	registerContent(r, codec, storages.Content)
	registerUsers(r, codec, storages.Users)
	registerProfile(r, codec, storages.Users)
	registerUpload(r, uploadStore)
}
