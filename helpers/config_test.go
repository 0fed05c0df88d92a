package helpers

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "")
	t.Setenv("PROMETHEUS", "")
	t.Setenv("AZURE_TRANSLATE_REGION", "")

	cfg := LoadConfig()
	require.Equal(t, "3001", cfg.Port)
	require.Equal(t, uint(100), cfg.RateLimitMax)
	require.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	require.True(t, cfg.Prometheus)
	require.Equal(t, "eastus", cfg.Providers.AzureRegion)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "1000")
	t.Setenv("PROMETHEUS", "false")
	t.Setenv("DEEPL_API_KEY", "deepl")

	cfg := LoadConfig()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, uint(5), cfg.RateLimitMax)
	require.Equal(t, time.Second, cfg.RateLimitWindow)
	require.False(t, cfg.Prometheus)
	require.Equal(t, "deepl", cfg.Providers.DeepLKey)
}

func TestLoadConfigInvalidNumbers(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "-3")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "soon")

	cfg := LoadConfig()
	require.Equal(t, uint(100), cfg.RateLimitMax)
	require.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
}

func TestLoadConfigWarnsWithoutSecret(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	t.Setenv("JWT_SECRET", "")
	cfg := LoadConfig()
	require.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	require.Contains(t, buf.String(), "JWT_SECRET is not set")

	buf.Reset()
	t.Setenv("JWT_SECRET", "s3cr3t")
	cfg = LoadConfig()
	require.Equal(t, "s3cr3t", cfg.JWTSecret)
	require.NotContains(t, buf.String(), "JWT_SECRET")
}
