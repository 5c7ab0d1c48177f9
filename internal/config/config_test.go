package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SERVER_HOST", "SERVER_PORT", "GRPC_ENABLED", "GRPC_PORT", "CORS_ORIGINS", "RATE_LIMIT_RPS",
	"SATELLITE_WORKERS", "N2YO_API_KEY", "N2YO_URL", "NOAA_KP_URL", "OPEN_METEO_URL",
	"FEED_TIMEOUT", "WEATHER_TIMEOUT", "KP_POLL_INTERVAL", "BREAKER_THRESHOLD", "BREAKER_COOLDOWN",
	"DB_PATH", "LOG_LEVEL", "LOCATIONS_PATH",
}

// clearEnv blanks every key Load reads; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.GRPC.Enabled)
	assert.Equal(t, 50051, cfg.GRPC.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 5.0, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, 10*time.Second, cfg.Feeds.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Feeds.WeatherTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Feeds.KpPollInterval)
	assert.Equal(t, 3, cfg.Feeds.BreakerThreshold)
	assert.Equal(t, time.Minute, cfg.Feeds.BreakerCooldown)
	assert.Equal(t, 4, cfg.Worker.SatelliteWorkers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Feeds.N2YOAPIKey)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GRPC_ENABLED", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_RPS", "12.5")
	t.Setenv("N2YO_API_KEY", "secret")
	t.Setenv("FEED_TIMEOUT", "3s")
	t.Setenv("KP_POLL_INTERVAL", "5m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.GRPC.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 12.5, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, "secret", cfg.Feeds.N2YOAPIKey)
	assert.Equal(t, 3*time.Second, cfg.Feeds.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Feeds.KpPollInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero rate limit", "RATE_LIMIT_RPS", "0"},
		{"feed timeout too long", "FEED_TIMEOUT", "45s"},
		{"weather timeout too short", "WEATHER_TIMEOUT", "500ms"},
		{"poll interval too short", "KP_POLL_INTERVAL", "30s"},
		{"breaker threshold", "BREAKER_THRESHOLD", "0"},
		{"no workers", "SATELLITE_WORKERS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnv_UnparseableFallsBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_FLOAT", "abc")
	t.Setenv("X_DURATION", "abc")
	t.Setenv("X_LIST", " , ")

	assert.Equal(t, 7, getEnvInt("X_INT", 7))
	assert.Equal(t, 1.5, getEnvFloat("X_FLOAT", 1.5))
	assert.Equal(t, time.Second, getEnvDuration("X_DURATION", time.Second))
	assert.Equal(t, []string{"x"}, getEnvList("X_LIST", []string{"x"}))
}
