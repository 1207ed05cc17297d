package darkroom

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/darkroom-cms/darkroom/api"
	"github.com/darkroom-cms/darkroom/internal/cache"
	"github.com/darkroom-cms/darkroom/internal/mail"
	"github.com/darkroom-cms/darkroom/storage"
	"github.com/darkroom-cms/darkroom/storage/model"
)

var validate = validator.New()

// pagedPhotos is the cached (and served) payload of the public gallery
// listing.
type pagedPhotos struct {
	Photos     []model.Photo    `json:"photos"`
	Pagination model.Pagination `json:"pagination"`
}

// registerPublicRoutes mounts the unauthenticated JSON endpoints. Reads are
// fronted by a short-lived cache which the admin mutation routes clear.
func registerPublicRoutes(server *fiber.App, storages model.Backends, mailer mail.Mailer) {
	server.Get(
		"/api/photos", func(c *fiber.Ctx) error {
			page := c.QueryInt("page", 1)
			limit := c.QueryInt("limit", storage.DefaultPageLimit)
			cacheKey := cache.Key(cache.KeyPhotosPage, strconv.Itoa(page), strconv.Itoa(limit))

			var cached pagedPhotos
			hit, err := cache.Get(cacheKey, &cached)
			if err != nil {
				log.WithError(err).Warn("photos cache read failed")
			}
			if hit {
				return c.JSON(api.SuccessResponse(cached))
			}
			photos, pagination, err := storages.Photos.Page(page, limit)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			payload := pagedPhotos{Photos: photos, Pagination: pagination}
			if err = cache.Set(cacheKey, payload, cache.DefaultTTL); err != nil {
				log.WithError(err).Warn("photos cache write failed")
			}
			return c.JSON(api.SuccessResponse(payload))
		},
	)

	server.Get(
		"/api/content", func(c *fiber.Ctx) error {
			if key := c.Query("key"); key != "" {
				value, err := storages.Content.GetValue(key)
				if err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
				}
				// A missing key is not an error, the value is just null.
				return c.JSON(api.SuccessResponse(fiber.Map{key: value}))
			}

			var cached map[string]datatypes.JSON
			hit, err := cache.Get(cache.KeyContentMap, &cached)
			if err != nil {
				log.WithError(err).Warn("content cache read failed")
			}
			if hit {
				return c.JSON(api.SuccessResponse(cached))
			}
			entries, err := storages.Content.Map()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			if err = cache.Set(cache.KeyContentMap, entries, cache.DefaultTTL); err != nil {
				log.WithError(err).Warn("content cache write failed")
			}
			return c.JSON(api.SuccessResponse(entries))
		},
	)

	server.Get(
		"/api/team", func(c *fiber.Ctx) error {
			var cached []model.TeamMember
			hit, err := cache.Get(cache.KeyTeamList, &cached)
			if err != nil {
				log.WithError(err).Warn("team cache read failed")
			}
			if hit {
				return c.JSON(api.SuccessResponse(cached))
			}
			team, err := storages.Team.List()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			if err = cache.Set(cache.KeyTeamList, team, cache.DefaultTTL); err != nil {
				log.WithError(err).Warn("team cache write failed")
			}
			return c.JSON(api.SuccessResponse(team))
		},
	)

	server.Post(
		"/api/contact", func(c *fiber.Ctx) error {
			var msg mail.ContactMessage
			if err := c.BodyParser(&msg); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			if err := validate.Struct(msg); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("name, email and message are required"))
			}
			if mailer == nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse("contact form is not configured"))
			}
			if err := mailer.SendContact(msg); err != nil {
				log.WithError(err).Error("contact mail delivery failed")
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse("could not send message"))
			}
			return c.JSON(api.SuccessResponse(nil))
		},
	)
}
