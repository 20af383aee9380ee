package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/csalom/stripe-api/internal/pkg/constants"
)

type ApiRouter struct {
	deps Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	subscriptionLimiter := limiter.New(limiter.Config{
		Max:        h.deps.Config.SubscriptionRateLimit,
		Expiration: time.Minute,
		Storage:    h.deps.LimiterStorage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate_limited"})
		},
	})

	app.Post(constants.SubscriptionRoute, subscriptionLimiter, h.deps.Subscriptions.HandleCreate)

	// Stripe retries failed deliveries itself; the webhook is not rate limited.
	app.Post(constants.WebhookRoute, h.deps.Webhooks.HandleStripeWebhook)
}

func NewApiRouter(deps Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
