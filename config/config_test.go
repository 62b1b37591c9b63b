package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BRAINTREE_MERCHANT_ID", "mid")
	t.Setenv("BRAINTREE_PUBLIC_KEY", "pub")
	t.Setenv("BRAINTREE_PRIVATE_KEY", "priv")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.CORSOrigin)
	assert.Equal(t, "ecommerce", cfg.Mongo.DB)
	assert.Equal(t, "sandbox", cfg.Braintree.Environment)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_DB", "shop")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("BRAINTREE_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "shop", cfg.Mongo.DB)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "production", cfg.Braintree.Environment)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONGO_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URL")
}

func TestValidateBraintreeCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BRAINTREE_PRIVATE_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "braintree")
}
