package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "DB_PATH", "DATABASE_URL", "SEED_PATH", "ROUTING_PROVIDER", "ORS_API_KEY",
		"ORS_BASE_URL", "ORS_TIMEOUT_SECONDS", "REDIS_ADDR", "REDIS_DB", "DIRECTIONS_CACHE_TTL_SECONDS",
	} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "data/app.db", c.DBPath)
	assert.Equal(t, "data/seeds/caches.json", c.SeedPath)
	assert.Equal(t, ProviderORS, c.RoutingProvider)
	assert.Equal(t, 10*time.Second, c.ORSTimeout)
	assert.Equal(t, time.Hour, c.DirectionsTTL)
	assert.Equal(t, 0, c.RedisDB)

	assert.Error(t, c.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ROUTING_PROVIDER", "MOCK")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DIRECTIONS_CACHE_TTL_SECONDS", "60")
	t.Setenv("ORS_TIMEOUT_SECONDS", "not-a-number")

	c := FromEnv()
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, ProviderMock, c.RoutingProvider)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, 2, c.RedisDB)
	assert.Equal(t, time.Minute, c.DirectionsTTL)
	assert.Equal(t, 10*time.Second, c.ORSTimeout)

	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	c := &Config{Port: "8080", RoutingProvider: ProviderORS, ORSAPIKey: "key"}
	assert.NoError(t, c.Validate())

	c.RoutingProvider = "osrm"
	assert.Error(t, c.Validate())
}
