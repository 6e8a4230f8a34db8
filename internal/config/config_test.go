package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROUTING_PROVIDER", "haversine")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ProviderHaversine, cfg.Provider)
	assert.Equal(t, CacheSQLite, cfg.CacheBackend)
	assert.Equal(t, StoreMemory, cfg.PlanStore)
	assert.Equal(t, 6, cfg.MaxDestinations)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 60*time.Second, cfg.PlanTimeout)
	assert.Equal(t, 30*time.Minute, cfg.PlanTTL)
	assert.InDelta(t, 30.0, cfg.HaversineSpeedKmh, 1e-9)
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("ROUTING_PROVIDER", "ORS")
	t.Setenv("ORS_API_KEY", "key")
	t.Setenv("PLAN_TIMEOUT", "45")
	t.Setenv("PLAN_TTL", "5m")
	t.Setenv("PLAN_CONCURRENCY", "8")
	t.Setenv("PLAN_STORE", "redis")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderORS, cfg.Provider)
	assert.Equal(t, 45*time.Second, cfg.PlanTimeout)
	assert.Equal(t, 5*time.Minute, cfg.PlanTTL)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, StoreRedis, cfg.PlanStore)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadRejectsInvalidCombinations(t *testing.T) {
	cases := map[string]map[string]string{
		"ors without key":      {"ROUTING_PROVIDER": "ors", "ORS_API_KEY": ""},
		"google without key":   {"ROUTING_PROVIDER": "google", "GOOGLE_MAPS_API_KEY": ""},
		"unknown provider":     {"ROUTING_PROVIDER": "osrm"},
		"postgres without dsn": {"ROUTING_PROVIDER": "haversine", "CACHE_BACKEND": "postgres", "DATABASE_URL": ""},
		"unknown store":        {"ROUTING_PROVIDER": "haversine", "PLAN_STORE": "disk"},
		"zero concurrency":     {"ROUTING_PROVIDER": "haversine", "PLAN_CONCURRENCY": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
