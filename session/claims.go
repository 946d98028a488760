package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/storefront/errors"
)

// Claims are the fields the backend signs into a session token.
type Claims struct {
	// ID is the user id.
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// Inspect decodes token without checking its signature.
func Inspect(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.InvalidToken(err)
	}
	return claims, nil
}

// Expired reports whether the token carries an expiry before now.
// Tokens without one never expire.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}

// UserID returns ID, falling back to the subject claim.
func (c *Claims) UserID() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Subject
}
