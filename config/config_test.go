package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "user-service", cfg.AppName)
	assert.Equal(t, "3002", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "user_service_db", cfg.MongoDatabase)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
}

func TestValidateRequiresSecrets(t *testing.T) {
	cfg := Load()
	cfg.JWTAccessSecret = ""
	cfg.JWTRefreshSecret = ""
	assert.Error(t, cfg.Validate())

	cfg.JWTAccessSecret = "a"
	assert.Error(t, cfg.Validate(), "refresh secret is still missing")

	cfg.JWTRefreshSecret = "b"
	assert.NoError(t, cfg.Validate())
}

func TestOverridesFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRATION", "15m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_LOG_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200,http://es2:9200")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.HTTPLogEnabled)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins())
	require.Len(t, cfg.ESAddrs(), 2)
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("JWT_EXPIRATION", "soon")
	t.Setenv("HTTP_LOG_ENABLED", "yep")

	cfg := Load()
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.False(t, cfg.HTTPLogEnabled)
}
