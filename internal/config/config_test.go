package config

import (
	"errors"
	"testing"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvSetDefaults(t *testing.T) {
	cfg, err := FromEnvSet(env.EnvSet{"GOOGLE_API_KEY": "test-key"})
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GoogleAPIKey)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, StoreDriverFile, cfg.StoreDriver)
	assert.Equal(t, "chats.json", cfg.ChatsFile)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Len(t, cfg.Origins(), 6)
}

func TestFromEnvSetRequiresAPIKey(t *testing.T) {
	_, err := FromEnvSet(env.EnvSet{"PORT": "8080"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")

	var missing *env.ErrMissingRequiredValue
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "GOOGLE_API_KEY", missing.Value)

	_, err = FromEnvSet(env.EnvSet{"GOOGLE_API_KEY": "   "})
	require.Error(t, err)
	missing = nil
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "GOOGLE_API_KEY", missing.Value)
}

func TestFromEnvSetOverrides(t *testing.T) {
	cfg, err := FromEnvSet(env.EnvSet{
		"GOOGLE_API_KEY":     "k",
		"PORT":               "8081",
		"APP_ENV":            "production",
		"AI_REQUEST_TIMEOUT": "5s",
		"CORS_ORIGINS":       "https://a.example, https://b.example ,",
	})
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

func TestFromEnvSetStoreDriver(t *testing.T) {
	_, err := FromEnvSet(env.EnvSet{"GOOGLE_API_KEY": "k", "STORE_DRIVER": "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	_, err = FromEnvSet(env.EnvSet{"GOOGLE_API_KEY": "k", "STORE_DRIVER": "redis"})
	require.Error(t, err)

	cfg, err := FromEnvSet(env.EnvSet{
		"GOOGLE_API_KEY": "k",
		"STORE_DRIVER":   "postgres",
		"DATABASE_URL":   "postgres://localhost/chats",
	})
	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
}
