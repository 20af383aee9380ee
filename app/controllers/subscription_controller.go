package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/csalom/stripe-api/app/repository"
	"github.com/csalom/stripe-api/internal/pkg/billing"
	"github.com/csalom/stripe-api/internal/pkg/metrics"
	"github.com/csalom/stripe-api/internal/pkg/viewmodel"
)

const provisioningTimeout = 60 * time.Second

// SubscriptionController handles subscription provisioning requests
type SubscriptionController struct {
	service   *billing.Service
	repos     *repository.Factory
	metrics   *metrics.Metrics
	validator *SubscriptionValidator
}

// NewSubscriptionController creates a new subscription controller with its dependencies
func NewSubscriptionController(service *billing.Service, repos *repository.Factory, m *metrics.Metrics) *SubscriptionController {
	sc := &SubscriptionController{
		service: service,
		repos:   repos,
		metrics: m,
	}
	sc.validator = NewSubscriptionValidator(func(ctx context.Context, email string) (bool, error) {
		return repos.WithContext(ctx).Customer.EmailExists(email)
	})
	return sc
}

// HandleCreate validates the request, provisions the subscription and
// returns it with its customer and payment method.
func (sc *SubscriptionController) HandleCreate(c *fiber.Ctx) error {
	var req SubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fiber.Map{"non_field_errors": "Invalid request body"},
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), provisioningTimeout)
	defer cancel()

	fieldErrors, err := sc.validator.Validate(ctx, &req)
	if err != nil {
		fiberlog.Errorw("Subscription validation lookup failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}
	if len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors})
	}

	subscription, err := sc.service.CreateSubscription(ctx, req.ToInput())
	sc.metrics.RecordProvisioning(err)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "subscription_create_failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(viewmodel.NewSubscription(subscription))
}
