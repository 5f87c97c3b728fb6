package backend

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims are the fields the console reads from the backend's session token.
type Claims struct {
	UserID string `json:"user_id"`
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Subject returns the best identifier the token offers.
func (c *Claims) Subject() string {
	switch {
	case c.UserID != "":
		return c.UserID
	case c.ID != "":
		return c.ID
	default:
		return c.RegisteredClaims.Subject
	}
}

// ParseClaims decodes token without verifying its signature. The console is
// not the token's audience and has no key; it only needs the identity and the
// expiry for display and for expiring the session locally.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	return claims, nil
}

// ExpiredAt reports whether the claims carry an expiry at or before now.
func (c *Claims) ExpiredAt(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}
