package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/csalom/stripe-api/app/controllers"
	"github.com/csalom/stripe-api/app/repository"
	"github.com/csalom/stripe-api/internal/pkg/billing"
	"github.com/csalom/stripe-api/internal/pkg/cache"
	"github.com/csalom/stripe-api/internal/pkg/constants"
	"github.com/csalom/stripe-api/internal/pkg/database"
	"github.com/csalom/stripe-api/internal/pkg/env"
	"github.com/csalom/stripe-api/internal/pkg/metrics"
	"github.com/csalom/stripe-api/internal/pkg/router"
	"github.com/csalom/stripe-api/internal/pkg/stripeclient"
)

func main() {
	app, cfg := NewApplication()
	err := app.Listen(cfg.ListenAddr())
	log.Fatal(err)
}

func NewApplication() (*fiber.App, *env.Config) {
	env.SetupEnvFile()
	cfg, err := env.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.IsDev() {
		fiberlog.SetLevel(fiberlog.LevelDebug)
	}

	db, err := database.SetupDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}

	stripeClient, err := stripeclient.New(stripeclient.Config{
		APIKey:        cfg.StripeAPIKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		APIURL:        cfg.StripeAPIURL,
	})
	if err != nil {
		log.Fatalf("Failed to set up Stripe client: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(registry)

	repos := repository.NewFactory(db)
	service := billing.NewService(repos, stripeClient)

	var locker controllers.EventLocker
	var limiterStorage fiber.Storage
	if cfg.CacheEnabled() {
		client, err := cache.SetupCache(context.Background(), cfg)
		if err == nil {
			locker = cache.NewLocker(client)
			if limiterStorage, err = cache.NewLimiterStorage(cfg); err != nil {
				log.Printf("Warning: rate limiter falls back to memory storage: %v", err)
			}
		}
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// SWAGGER / OPENAPI
	if _, err := os.Stat(cfg.OpenAPIFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: constants.DocsBasePath,
			FilePath: cfg.OpenAPIFile,
			Path:     constants.DocsVersion,
		}))
	} else {
		log.Printf("OpenAPI file %s not found, /docs/api/v1 is disabled", cfg.OpenAPIFile)
	}

	// ROUTER
	router.InstallRouter(app, router.Dependencies{
		Config:         cfg,
		DB:             db,
		Gatherer:       registry,
		Subscriptions:  controllers.NewSubscriptionController(service, repos, appMetrics),
		Webhooks:       controllers.NewWebhookController(service, stripeClient, locker, appMetrics),
		LimiterStorage: limiterStorage,
	})

	return app, cfg
}
