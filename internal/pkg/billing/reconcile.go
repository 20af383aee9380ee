package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/csalom/stripe-api/app/models"
	"github.com/csalom/stripe-api/app/repository"
	"github.com/csalom/stripe-api/internal/pkg/stripeclient"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// ReportSubscriptionCreated applies a customer.subscription.created event to
// the matching local subscription. It returns false when no subscription has
// both the event's subscription id and customer id.
func (s *Service) ReportSubscriptionCreated(ctx context.Context, event stripeclient.SubscriptionEvent) (bool, error) {
	status, err := parseStatus(event.Status)
	if err != nil {
		return false, err
	}

	return s.reconcile(ctx, stripeclient.EventSubscriptionCreated, event, func(sub *models.Subscription) {
		sub.Status = status
	})
}

// ReportSubscriptionUpdated applies a customer.subscription.updated event.
// Status and amount are compared independently; the amount is only touched
// when the event carries one.
func (s *Service) ReportSubscriptionUpdated(ctx context.Context, event stripeclient.SubscriptionEvent) (bool, error) {
	status, err := parseStatus(event.Status)
	if err != nil {
		return false, err
	}

	return s.reconcile(ctx, stripeclient.EventSubscriptionUpdated, event, func(sub *models.Subscription) {
		if sub.Status != status {
			fiberlog.Infow("Subscription status changed",
				"id", sub.ID,
				"stripe_id", sub.StripeID,
				"from", sub.Status.Label(),
				"to", status.Label(),
			)
			sub.Status = status
		}

		if event.Amount == nil {
			return
		}
		amount := PriceAmount(*event.Amount)
		if !sub.Amount.Equal(amount) {
			fiberlog.Infow("Subscription amount changed",
				"id", sub.ID,
				"stripe_id", sub.StripeID,
				"from", sub.Amount.StringFixed(2),
				"to", amount.StringFixed(2),
			)
			sub.Amount = amount
		}
	})
}

// reconcile locks the matching row, applies the mutation and saves it within
// one transaction.
func (s *Service) reconcile(ctx context.Context, eventType string, event stripeclient.SubscriptionEvent, apply func(sub *models.Subscription)) (bool, error) {
	matched := false
	err := s.repos.Transaction(ctx, func(repos *repository.Repositories) error {
		sub, err := repos.Subscription.FindByStripeIDsForUpdate(event.SubscriptionID, event.CustomerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fiberlog.Errorw("Subscription not found for webhook event",
				"event_type", eventType,
				"subscription_stripe_id", event.SubscriptionID,
				"customer_stripe_id", event.CustomerID,
			)
			return nil
		}
		if err != nil {
			return fmt.Errorf("find subscription: %w", err)
		}

		apply(sub)
		if err := repos.Subscription.Save(sub); err != nil {
			return fmt.Errorf("save subscription: %w", err)
		}
		matched = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}

func parseStatus(raw string) (models.SubscriptionStatus, error) {
	status := models.SubscriptionStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return status, nil
}
