// Package sessions implements the signed session tokens issued at login and
// the policy evaluation that decides what a token's holder may do.
package sessions

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/darkroom-cms/darkroom/storage/model"
)

// DefaultLifetime is the token validity used when the config does not set one.
const DefaultLifetime = 24 * time.Hour

// Claims is the identity data embedded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	Username    string     `json:"username"`
	Name        string     `json:"name,omitempty"`
	Role        model.Role `json:"role"`
	Permissions []string   `json:"permissions"`
	UserID      string     `json:"id"`
}

// Codec signs and verifies session tokens with a process-wide secret.
// Tokens are stateless: there is no server-side revocation list, they
// simply expire.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

// NewCodec returns a Codec. An empty secret is a configuration error; the
// caller must treat it as fatal rather than issue unverifiable tokens.
func NewCodec(secret []byte, lifetime time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("sessions: signing secret must not be empty")
	}
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Codec{secret: secret, lifetime: lifetime}, nil
}

// Lifetime returns the configured token validity; it doubles as the cookie
// max age.
func (c *Codec) Lifetime() time.Duration {
	return c.lifetime
}

// Sign issues a token carrying the user's identity claims.
func (c *Codec) Sign(user *model.User) (string, error) {
	now := time.Now()
	perms := user.Permissions
	if perms == nil {
		perms = []string{}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
		Username:    user.Username,
		Name:        user.Name,
		Role:        user.Role,
		Permissions: perms,
		UserID:      user.ID,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "sessions: signing failed")
	}
	return signed, nil
}

// Verify checks signature integrity and expiry and returns the embedded
// claims, or nil on any failure (bad signature, expired, malformed, wrong
// algorithm). It never returns an error: callers treat verification as a
// boolean-plus-payload operation.
func (c *Codec) Verify(token string) *Claims {
	if token == "" {
		return nil
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil
	}
	return claims
}
