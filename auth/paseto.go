package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/o1egl/paseto"
)

const pasetoFooter = "shopper"

// PasetoMaker issues v2.local (encrypted) PASETO tokens.
type PasetoMaker struct {
	key []byte
	v2  *paseto.V2
}

// NewPasetoMaker encrypts v2.local tokens; key must be 32 bytes.
func NewPasetoMaker(key []byte) (*PasetoMaker, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("paseto key must be 32 bytes, got %d", len(key))
	}
	return &PasetoMaker{key: key, v2: paseto.NewV2()}, nil
}

func (m *PasetoMaker) Issue(subject string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	jsonToken := paseto.JSONToken{
		Subject:  subject,
		IssuedAt: now,
	}
	if ttl > 0 {
		jsonToken.Expiration = now.Add(ttl)
	}
	jsonToken.Set("roles", strings.Join(roles, ","))

	token, err := m.v2.Encrypt(m.key, jsonToken, pasetoFooter)
	if err != nil {
		return "", fmt.Errorf("encrypt paseto: %w", err)
	}
	return token, nil
}

func (m *PasetoMaker) Verify(token string) (*Claims, error) {
	var jsonToken paseto.JSONToken
	var footer string
	if err := m.v2.Decrypt(token, m.key, &jsonToken, &footer); err != nil {
		return nil, ErrInvalidToken
	}
	if footer != pasetoFooter || jsonToken.Subject == "" {
		return nil, ErrInvalidToken
	}
	if err := jsonToken.Validate(paseto.ValidAt(time.Now())); err != nil {
		return nil, ErrInvalidToken
	}

	var roles []string
	if raw := jsonToken.Get("roles"); raw != "" {
		roles = strings.Split(raw, ",")
	}
	return &Claims{
		Subject:   jsonToken.Subject,
		Roles:     roles,
		IssuedAt:  jsonToken.IssuedAt,
		ExpiresAt: jsonToken.Expiration,
	}, nil
}
