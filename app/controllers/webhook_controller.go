package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/csalom/stripe-api/internal/pkg/billing"
	"github.com/csalom/stripe-api/internal/pkg/metrics"
	"github.com/csalom/stripe-api/internal/pkg/stripeclient"
)

const (
	webhookTimeout = 20 * time.Second
	webhookLockTTL = 30 * time.Second
)

// EventLocker guards concurrent deliveries of the same event
type EventLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error)
}

// WebhookController receives Stripe webhook deliveries
type WebhookController struct {
	service *billing.Service
	client  stripeclient.Client
	locker  EventLocker
	metrics *metrics.Metrics
}

// NewWebhookController creates a webhook controller. locker may be nil.
func NewWebhookController(service *billing.Service, client stripeclient.Client, locker EventLocker, m *metrics.Metrics) *WebhookController {
	return &WebhookController{
		service: service,
		client:  client,
		locker:  locker,
		metrics: m,
	}
}

// HandleStripeWebhook verifies the delivery and applies subscription events
// to the local mirror. Matched events answer 200 and unknown subscriptions
// 404, so Stripe retries the latter.
func (wc *WebhookController) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)

	event, err := wc.client.ParseWebhookEvent(payload, c.Get(stripeclient.SignatureHeader))
	if err != nil {
		reason := "malformed_event"
		if errors.Is(err, stripeclient.ErrInvalidSignature) {
			reason = "invalid_signature"
		}
		wc.metrics.RecordWebhookRejected(reason)
		fiberlog.Warnw("Rejected webhook delivery", "reason", reason, "error", err)
		return c.SendStatus(fiber.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), webhookTimeout)
	defer cancel()

	if wc.locker != nil {
		release, acquired, err := wc.locker.Acquire(ctx, "webhook:"+event.ID, webhookLockTTL)
		switch {
		case err != nil:
			fiberlog.Warnw("Webhook lock unavailable, processing without it", "event_id", event.ID, "error", err)
		case !acquired:
			wc.metrics.RecordWebhookRejected("in_flight")
			return c.SendStatus(fiber.StatusConflict)
		default:
			defer release()
		}
	}

	outcome, err := wc.service.ProcessWebhookEvent(ctx, event, payload)
	wc.metrics.RecordWebhook(event.Type, string(outcome))
	if err != nil {
		if errors.Is(err, billing.ErrUnknownStatus) || errors.Is(err, stripeclient.ErrMalformedEvent) {
			fiberlog.Warnw("Webhook event rejected", "event_id", event.ID, "event_type", event.Type, "error", err)
			return c.SendStatus(fiber.StatusBadRequest)
		}
		fiberlog.Errorw("Webhook processing failed", "event_id", event.ID, "event_type", event.Type, "error", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if outcome == billing.WebhookNotFound {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}
