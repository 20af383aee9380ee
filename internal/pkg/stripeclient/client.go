// Package stripeclient wraps the Stripe operations used by the billing
// workflows behind a small typed interface.
package stripeclient

import (
	"context"
	"errors"
)

const (
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"

	// SignatureHeader carries the Stripe webhook signature.
	SignatureHeader = "Stripe-Signature"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed webhook event")
)

// Client is the subset of the Stripe API the service depends on.
type Client interface {
	CreatePaymentMethod(ctx context.Context, params CardParams) (*PaymentMethod, error)
	CreateCustomer(ctx context.Context, params CustomerParams) (*Customer, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error
	RetrievePrice(ctx context.Context, priceID string) (*Price, error)
	CreateSubscription(ctx context.Context, params SubscriptionParams) (*Subscription, error)
	ParseWebhookEvent(payload []byte, signatureHeader string) (*Event, error)
}

// CardParams describes a card payment method. The values are forwarded to
// Stripe and never stored.
type CardParams struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
	Metadata map[string]string
}

type CustomerParams struct {
	PaymentMethodID string
	Name            string
	Email           string
	Metadata        map[string]string
}

type SubscriptionParams struct {
	CustomerID string
	PriceID    string
	Metadata   map[string]string
}

type PaymentMethod struct {
	ID string
}

type Customer struct {
	ID            string
	InvoicePrefix string
}

// Price carries the unit amount in minor currency units.
type Price struct {
	ID         string
	UnitAmount int64
}

type Subscription struct {
	ID string
}

// Event is a verified webhook event. Subscription is set for
// customer.subscription.* events.
type Event struct {
	ID           string
	Type         string
	Subscription *SubscriptionEvent
}

// SubscriptionEvent is the subscription object carried by a webhook event.
// Amount is the plan amount in minor units when the payload includes it.
type SubscriptionEvent struct {
	SubscriptionID string
	CustomerID     string
	Status         string
	Amount         *int64
}
