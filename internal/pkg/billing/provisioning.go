package billing

import (
	"context"
	"fmt"

	"github.com/csalom/stripe-api/app/models"
	"github.com/csalom/stripe-api/app/repository"
	"github.com/csalom/stripe-api/internal/pkg/stripeclient"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// CreateSubscription creates a payment method, a customer and a subscription
// at the processor, mirroring each one locally. All local writes share one
// transaction, so a failure at any step leaves no local rows behind. Processor
// objects created before the failure are kept and carry the provisioning id in
// their metadata.
func (s *Service) CreateSubscription(ctx context.Context, in SubscriberInput) (*models.Subscription, error) {
	provisioningID := uuid.NewString()
	metadata := map[string]string{ProvisioningMetadataKey: provisioningID}

	var result *models.Subscription
	err := s.repos.Transaction(ctx, func(repos *repository.Repositories) error {
		paymentMethod, err := s.createPaymentMethod(ctx, repos, in, metadata)
		if err != nil {
			return err
		}

		customer, err := s.createCustomer(ctx, repos, in, paymentMethod, metadata)
		if err != nil {
			return err
		}

		subscription, err := s.createSubscription(ctx, repos, in, customer, metadata)
		if err != nil {
			return err
		}

		result = subscription
		return nil
	})
	if err != nil {
		fiberlog.Errorw("Subscription provisioning failed",
			"provisioning_id", provisioningID,
			"email", in.Email,
			"price_id", in.PriceID,
			"error", err,
		)
		return nil, err
	}

	return result, nil
}

func (s *Service) createPaymentMethod(ctx context.Context, repos *repository.Repositories, in SubscriberInput, metadata map[string]string) (*models.PaymentMethod, error) {
	lastDigits, err := models.LastDigits(in.CardNumber)
	if err != nil {
		return nil, fmt.Errorf("create payment method: %w", err)
	}

	remote, err := s.client.CreatePaymentMethod(ctx, stripeclient.CardParams{
		Number:   in.CardNumber,
		ExpMonth: in.Month,
		ExpYear:  in.Year,
		CVC:      in.CVC,
		Metadata: metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment method: %w", err)
	}

	paymentMethod := &models.PaymentMethod{
		StripeTrack: models.StripeTrack{StripeID: remote.ID},
		LastDigits:  lastDigits,
		Month:       in.Month,
		Year:        in.Year,
	}
	if err := repos.PaymentMethod.Create(paymentMethod); err != nil {
		return nil, fmt.Errorf("save payment method: %w", err)
	}

	fiberlog.Infow("Payment method created",
		"provisioning_id", metadata[ProvisioningMetadataKey],
		"id", paymentMethod.ID,
		"stripe_id", paymentMethod.StripeID,
	)
	return paymentMethod, nil
}

func (s *Service) createCustomer(ctx context.Context, repos *repository.Repositories, in SubscriberInput, paymentMethod *models.PaymentMethod, metadata map[string]string) (*models.Customer, error) {
	remote, err := s.client.CreateCustomer(ctx, stripeclient.CustomerParams{
		PaymentMethodID: paymentMethod.StripeID,
		Name:            in.FullName,
		Email:           in.Email,
		Metadata:        metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	if err := s.client.AttachPaymentMethod(ctx, paymentMethod.StripeID, remote.ID); err != nil {
		return nil, fmt.Errorf("attach payment method: %w", err)
	}

	customer := &models.Customer{
		StripeTrack:     models.StripeTrack{StripeID: remote.ID},
		FullName:        in.FullName,
		Email:           in.Email,
		InvoicePrefix:   remote.InvoicePrefix,
		PaymentMethodID: paymentMethod.ID,
	}
	if err := repos.Customer.Create(customer); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	customer.PaymentMethod = paymentMethod

	fiberlog.Infow("Customer created",
		"provisioning_id", metadata[ProvisioningMetadataKey],
		"id", customer.ID,
		"stripe_id", customer.StripeID,
	)
	return customer, nil
}

func (s *Service) createSubscription(ctx context.Context, repos *repository.Repositories, in SubscriberInput, customer *models.Customer, metadata map[string]string) (*models.Subscription, error) {
	price, err := s.client.RetrievePrice(ctx, in.PriceID)
	if err != nil {
		return nil, fmt.Errorf("retrieve price: %w", err)
	}

	remote, err := s.client.CreateSubscription(ctx, stripeclient.SubscriptionParams{
		CustomerID: customer.StripeID,
		PriceID:    in.PriceID,
		Metadata:   metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	subscription := &models.Subscription{
		StripeTrack: models.StripeTrack{StripeID: remote.ID},
		CustomerID:  customer.ID,
		PriceID:     in.PriceID,
		Status:      models.SubscriptionStatusUnpaid,
		Amount:      PriceAmount(price.UnitAmount),
	}
	if err := repos.Subscription.Create(subscription); err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}
	subscription.Customer = customer

	fiberlog.Infow("Subscription created",
		"provisioning_id", metadata[ProvisioningMetadataKey],
		"id", subscription.ID,
		"stripe_id", subscription.StripeID,
		"amount", subscription.Amount.StringFixed(2),
	)
	return subscription, nil
}
