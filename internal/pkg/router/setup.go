package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/csalom/stripe-api/app/controllers"
	"github.com/csalom/stripe-api/internal/pkg/env"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are the handles the routes are built from.
type Dependencies struct {
	Config        *env.Config
	DB            *gorm.DB
	Gatherer      prometheus.Gatherer
	Subscriptions *controllers.SubscriptionController
	Webhooks      *controllers.WebhookController

	// LimiterStorage backs the rate limiter; nil keeps counters in memory.
	LimiterStorage fiber.Storage
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	setup(app, NewHttpRouter(deps), NewApiRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
