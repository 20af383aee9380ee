package env

import (
	"fmt"
	"os"
	"strings"

	cenv "github.com/caarlos0/env/v11"
)

// Config is the typed application configuration. Values from the loaded .env
// file take precedence over the process environment.
type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"prod"`
	AppHost string `env:"APP_HOST" envDefault:"localhost"`
	AppPort string `env:"APP_PORT" envDefault:"4000"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBName     string `env:"DB_NAME"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"stripe-api.db"`

	CacheHost     string `env:"CACHE_HOST"`
	CachePort     string `env:"CACHE_PORT" envDefault:"6379"`
	CachePassword string `env:"CACHE_PASSWORD"`

	StripeAPIKey        string `env:"STRIPE_API_KEY,required,notEmpty"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET,required,notEmpty"`
	StripeAPIURL        string `env:"STRIPE_API_URL"`

	MetricsUser     string `env:"METRICS_USER" envDefault:"admin"`
	MetricsPassword string `env:"METRICS_PASSWORD"`

	SubscriptionRateLimit int    `env:"SUBSCRIPTION_RATE_LIMIT" envDefault:"20"`
	OpenAPIFile           string `env:"OPENAPI_FILE" envDefault:"public/docs/v1/openapi.yml"`
}

// LoadConfig parses the configuration from the loaded .env map and the
// process environment.
func LoadConfig() (*Config, error) {
	environment := make(map[string]string, len(Env))
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environment[k] = v
		}
	}
	for k, v := range Env {
		environment[k] = v
	}

	cfg := &Config{}
	if err := cenv.ParseWithOptions(cfg, cenv.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the service runs in the development environment.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

// CacheEnabled reports whether a Redis endpoint is configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.CacheHost) != ""
}
