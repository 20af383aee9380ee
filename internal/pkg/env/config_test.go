package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvMap(t *testing.T) {
	prev := Env
	t.Cleanup(func() { Env = prev })

	t.Setenv("APP_PORT", "9999")
	Env = map[string]string{
		"APP_PORT":              "4100",
		"STRIPE_API_KEY":        "sk_test_123",
		"STRIPE_WEBHOOK_SECRET": "whsec_123",
		"CACHE_HOST":            "cache",
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "4100", cfg.AppPort, ".env values take precedence over the process env")
	assert.Equal(t, "localhost:4100", cfg.ListenAddr())
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "sk_test_123", cfg.StripeAPIKey)
	assert.Equal(t, 20, cfg.SubscriptionRateLimit)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoadConfig_MissingStripeCredentials(t *testing.T) {
	prev := Env
	t.Cleanup(func() { Env = prev })

	t.Setenv("STRIPE_API_KEY", "")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	Env = map[string]string{}

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestSetupEnvFile(t *testing.T) {
	prev := Env
	t.Cleanup(func() { Env = prev })

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_ENV=dev\nSTRIPE_API_KEY=sk_test_file\nSTRIPE_WEBHOOK_SECRET=whsec_file\n"), 0o600))

	used := SetupEnvFile(filepath.Join(dir, "missing.env"), path)
	assert.Equal(t, path, used)
	assert.Equal(t, "dev", Env["APP_ENV"])

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "sk_test_file", cfg.StripeAPIKey)

	assert.Empty(t, SetupEnvFile(filepath.Join(dir, "missing.env")))
	assert.Empty(t, Env)
}

func TestConfigIsDev(t *testing.T) {
	assert.True(t, (&Config{AppEnv: "dev"}).IsDev())
	assert.False(t, (&Config{AppEnv: "prod"}).IsDev())
	assert.False(t, (&Config{}).IsDev())
}
