package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CAR_CACHE_TTL", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Minute, cfg.CarCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.AllowAdminSignup)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/rental")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.AllowAdminSignup)

	t.Setenv("ALLOW_ADMIN_SIGNUP", "true")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.AllowAdminSignup)
}

func TestFromEnvErrors(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("production without secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "sqlite::memory:")
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "sqlite::memory:")
		t.Setenv("APP_ENV", "")
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("CAR_CACHE_TTL", "soon")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "sqlite::memory:")
		t.Setenv("APP_ENV", "")
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("CAR_CACHE_TTL", "")
		t.Setenv("ALLOW_ADMIN_SIGNUP", "maybe")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}
