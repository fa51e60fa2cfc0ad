package auth

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is what a verified token asserts about its bearer.
type Claims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero when the token never expires
}

// HasRole reports whether the claims carry role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenMaker issues and verifies bearer tokens.
type TokenMaker interface {
	// Issue signs a token for subject. A zero ttl means no expiry.
	Issue(subject string, roles []string, ttl time.Duration) (string, error)
	Verify(token string) (*Claims, error)
}

// NewTokenMaker returns the maker for format ("jwt" or "paseto").
func NewTokenMaker(format string, secret []byte) (TokenMaker, error) {
	switch format {
	case "jwt":
		return NewJWTMaker(secret)
	case "paseto":
		return NewPasetoMaker(secret)
	default:
		return nil, fmt.Errorf("unknown token format %q", format)
	}
}
