package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", cfg.Demo.DemoEmail)
	assert.Equal(t, "password123", cfg.Demo.DemoPassword)
	assert.Equal(t, "exists@example.com", cfg.Demo.ExistingEmail)
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Latency.Auth)
	assert.Equal(t, 800*time.Millisecond, cfg.Latency.Contracts)
	assert.Equal(t, "memory", cfg.Session.Backend)
	// missing secret falls back to the demo value
	assert.NotEmpty(t, cfg.JWT.Secret)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_LATENCY_MS", "0")
	t.Setenv("CONTRACTS_LATENCY_MS", "0")
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("JWT_SECRET", "explicit-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Latency.Auth)
	assert.Equal(t, time.Duration(0), cfg.Latency.Contracts)
	assert.Equal(t, "file", cfg.Session.Backend)
	assert.Equal(t, "explicit-secret", cfg.JWT.Secret)
}
