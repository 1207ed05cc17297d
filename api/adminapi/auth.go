package adminapi

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/darkroom-cms/darkroom/api"
	"github.com/darkroom-cms/darkroom/internal/sessions"
	"github.com/darkroom-cms/darkroom/storage/model"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "admin_token"

// localsClaims is the fiber.Ctx locals key under which the gate stashes
// verified claims for downstream handlers.
const localsClaims = "sessionClaims"

// Gate enforces authentication for the protected parts of the site:
//   - everything under /admin (any method)
//   - /api/upload* and /api/seed* (any method)
//   - /api/photos* for mutating methods only
//
// Rejected API requests get a 401 envelope; rejected page requests are
// redirected to the login page. All other paths pass through, their
// handlers do their own checks.
func Gate(codec *sessions.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !gated(path, c.Method()) {
			return c.Next()
		}
		claims := codec.Verify(c.Cookies(SessionCookieName))
		if claims == nil {
			if strings.HasPrefix(path, "/api/") {
				return c.Status(fiber.StatusUnauthorized).JSON(api.ErrorResponse("Unauthorized"))
			}
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.Locals(localsClaims, claims)
		return c.Next()
	}
}

func gated(path, method string) bool {
	switch {
	case strings.HasPrefix(path, "/admin"):
		return true
	case strings.HasPrefix(path, "/api/upload"),
		strings.HasPrefix(path, "/api/seed"):
		return true
	case strings.HasPrefix(path, "/api/photos"):
		return method == fiber.MethodPost || method == fiber.MethodPut || method == fiber.MethodDelete
	default:
		return false
	}
}

// sessionClaims returns the verified claims for the request, from the gate's
// locals stash when present or from the cookie otherwise.
func sessionClaims(c *fiber.Ctx, codec *sessions.Codec) *sessions.Claims {
	if claims, ok := c.Locals(localsClaims).(*sessions.Claims); ok {
		return claims
	}
	return codec.Verify(c.Cookies(SessionCookieName))
}

// authorize resolves the request's claims and checks the capability. On
// failure the response has already been written and the returned claims are
// nil; handlers return the accompanying error as-is.
func authorize(c *fiber.Ctx, codec *sessions.Codec, capability string) (*sessions.Claims, error) {
	claims := sessionClaims(c, codec)
	if claims == nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(api.ErrorResponse("Unauthorized"))
	}
	if !sessions.Allowed(claims, capability) {
		return nil, c.Status(fiber.StatusForbidden).JSON(api.ErrorResponse("Forbidden"))
	}
	return claims, nil
}

// authorizeSuperadmin is authorize for the user-management routes.
func authorizeSuperadmin(c *fiber.Ctx, codec *sessions.Codec) (*sessions.Claims, error) {
	claims := sessionClaims(c, codec)
	if claims == nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(api.ErrorResponse("Unauthorized"))
	}
	if !sessions.IsSuperadmin(claims) {
		return nil, c.Status(fiber.StatusForbidden).JSON(api.ErrorResponse("Forbidden"))
	}
	return claims, nil
}

func setSessionCookie(c *fiber.Ctx, token string, maxAge time.Duration) {
	c.Cookie(
		&fiber.Cookie{
			Name:     SessionCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(maxAge.Seconds()),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteStrictMode,
		},
	)
}

// registerAuth wires login, logout and the current-user endpoint.
func registerAuth(r fiber.Router, codec *sessions.Codec, users model.UsersStore) {
	type loginReq struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	r.Post(
		"/api/login", func(c *fiber.Ctx) error {
			var req loginReq
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse("invalid body"))
			}
			user, err := users.Authenticate(req.Username, req.Password)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(api.ErrorResponse("Invalid credentials"))
			}
			token, err := codec.Sign(user)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse("could not create session"))
			}
			setSessionCookie(c, token, codec.Lifetime())
			return c.JSON(api.SuccessResponse(fiber.Map{"role": user.Role}))
		},
	)

	r.Post(
		"/api/logout", func(c *fiber.Ctx) error {
			// Logout is purely client-side: overwrite the cookie with an
			// expired one, the token itself stays valid until its expiry.
			c.Cookie(
				&fiber.Cookie{
					Name:     SessionCookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					Expires:  time.Unix(0, 0),
					HTTPOnly: true,
					SameSite: fiber.CookieSameSiteStrictMode,
				},
			)
			return c.JSON(api.SuccessResponse(nil))
		},
	)

	r.Get(
		"/api/me", func(c *fiber.Ctx) error {
			claims := sessionClaims(c, codec)
			if claims == nil {
				return c.Status(fiber.StatusUnauthorized).JSON(api.ErrorResponse("Unauthorized"))
			}
			// Re-read from storage so a deleted or modified account is
			// reflected immediately even though the token is stateless.
			user, err := users.GetByID(claims.UserID)
			if err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return c.Status(fiber.StatusNotFound).JSON(api.ErrorResponse("user not found"))
				}
				return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse(err.Error()))
			}
			return c.JSON(api.SuccessResponse(fiber.Map{"user": user}))
		},
	)
}
