package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "jwt", cfg.TokenFormat)
	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "http://localhost:4000", cfg.PublicBaseURL)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.False(t, cfg.ProtectCatalog)
	assert.NotEmpty(t, cfg.AllowOrigins)
}

func TestFromEnvUnboundedTokens(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "0")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Zero(t, cfg.TokenTTL)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":      {},
		"short paseto key":    {"TOKEN_SECRET": "short", "TOKEN_FORMAT": "paseto"},
		"unknown format":      {"TOKEN_SECRET": "x", "TOKEN_FORMAT": "saml"},
		"unknown driver":      {"TOKEN_SECRET": "x", "STORE_DRIVER": "redis"},
		"atlas without uri":   {"TOKEN_SECRET": "x", "MONGO_MODE": "atlas"},
		"negative fee":        {"TOKEN_SECRET": "x", "SHIPPING_FEE": "-1"},
		"bad ttl":             {"TOKEN_SECRET": "x", "TOKEN_TTL": "forever"},
		"half admin":          {"TOKEN_SECRET": "x", "ADMIN_EMAIL": "a@b.c"},
		"bad protect catalog": {"TOKEN_SECRET": "x", "PROTECT_CATALOG": "maybe"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("TOKEN_SECRET", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnvPasetoKey(t *testing.T) {
	t.Setenv("TOKEN_FORMAT", "paseto")
	t.Setenv("TOKEN_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Len(t, cfg.TokenSecret, 32)
}
