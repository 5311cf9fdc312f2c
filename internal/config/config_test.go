package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://maps.googleapis.com", cfg.MapsBaseURL)
	assert.Equal(t, "ja", cfg.MapsLanguage)
	assert.Equal(t, "jp", cfg.MapsRegion)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.HasMapsAPIKey())
}

func TestWithEnvironment(t *testing.T) {
	cfg := New(WithEnvironment("development"))

	assert.Equal(t, "development", cfg.Environment)
}

func TestWithLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "invalid falls back to info", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New(WithLogLevel(tt.level))
			assert.Equal(t, tt.want, cfg.LogLevel)
		})
	}
}

func TestWithMapsBaseURLTrimsSlash(t *testing.T) {
	cfg := New(WithMapsBaseURL("http://localhost:9999/"))

	assert.Equal(t, "http://localhost:9999", cfg.MapsBaseURL)
}

func TestHasMapsAPIKey(t *testing.T) {
	assert.False(t, New(WithMapsAPIKey("   ")).HasMapsAPIKey())
	assert.True(t, New(WithMapsAPIKey("abc")).HasMapsAPIKey())
}

func TestInitializeLogging(t *testing.T) {
	cfg := New(WithEnvironment("local"), WithLogLevel("debug"))
	cfg.InitializeLogging()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	t.Setenv("MAPS_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://meetpoint.example")
	t.Setenv("RATE_LIMIT_REQUESTS", "bogus")

	cfg := LoadFromEnv()

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "test-key", cfg.MapsAPIKey)
	assert.Equal(t, 2.5, cfg.MapsRequestsPerSecond)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://meetpoint.example"}, cfg.CORSOrigins)
	assert.Equal(t, 60, cfg.RateLimitRequests)
}

func TestLoadLayersFileUnderEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`google_maps_api_key: from-file
maps_language: en
cors_origins:
  - https://a.example
  - https://b.example
port: 9090
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("GOOGLE_MAPS_API_KEY", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.MapsAPIKey)
	assert.Equal(t, "en", cfg.MapsLanguage)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file")
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_ENV_VAR", "value")

	assert.Equal(t, "value", getEnvOrDefault("TEST_ENV_VAR", "default"))
	assert.Equal(t, "default", getEnvOrDefault("NON_EXISTENT_ENV_VAR", "default"))
}

func TestGetDurationEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_DURATION_ENV_VAR", "2s")

	assert.Equal(t, 2*time.Second, getDurationEnvOrDefault("TEST_DURATION_ENV_VAR", 1*time.Second))
	assert.Equal(t, 1*time.Second, getDurationEnvOrDefault("NON_EXISTENT_DURATION_ENV_VAR", 1*time.Second))
}
