package stripeclient

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/stripe/stripe-go/v82/webhook"
)

// Operation names used by Fake to record calls and inject failures.
const (
	OpCreatePaymentMethod = "CreatePaymentMethod"
	OpCreateCustomer      = "CreateCustomer"
	OpAttachPaymentMethod = "AttachPaymentMethod"
	OpRetrievePrice       = "RetrievePrice"
	OpCreateSubscription  = "CreateSubscription"
)

// Fake is an in-memory Client for tests. Webhooks are verified with the real
// signature check against WebhookSecret.
type Fake struct {
	mu sync.Mutex

	WebhookSecret   string
	PaymentMethodID string
	CustomerID      string
	InvoicePrefix   string
	SubscriptionID  string
	UnitAmount      int64

	// Errors makes the named operation fail.
	Errors map[string]error

	calls    []string
	metadata map[string]map[string]string
	lastCard CardParams
}

var _ Client = (*Fake)(nil)

func NewFake() *Fake {
	return &Fake{
		WebhookSecret:   "whsec_test",
		PaymentMethodID: "pm_test",
		CustomerID:      "cus_test",
		InvoicePrefix:   "INV0001",
		SubscriptionID:  "sub_test",
		UnitAmount:      10000,
		Errors:          map[string]error{},
		metadata:        map[string]map[string]string{},
	}
}

func (f *Fake) record(op string, metadata map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if metadata != nil {
		f.metadata[op] = maps.Clone(metadata)
	}
	if err := f.Errors[op]; err != nil {
		return fmt.Errorf("stripe %s: %w", op, err)
	}
	return nil
}

// Calls returns the operations invoked so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Metadata returns the metadata sent with the last call of op.
func (f *Fake) Metadata(op string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.metadata[op])
}

func (f *Fake) LastCard() CardParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCard
}

func (f *Fake) CreatePaymentMethod(ctx context.Context, params CardParams) (*PaymentMethod, error) {
	if err := f.record(OpCreatePaymentMethod, params.Metadata); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.lastCard = params
	f.mu.Unlock()
	return &PaymentMethod{ID: f.PaymentMethodID}, nil
}

func (f *Fake) CreateCustomer(ctx context.Context, params CustomerParams) (*Customer, error) {
	if err := f.record(OpCreateCustomer, params.Metadata); err != nil {
		return nil, err
	}
	return &Customer{ID: f.CustomerID, InvoicePrefix: f.InvoicePrefix}, nil
}

func (f *Fake) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	return f.record(OpAttachPaymentMethod, nil)
}

func (f *Fake) RetrievePrice(ctx context.Context, priceID string) (*Price, error) {
	if err := f.record(OpRetrievePrice, nil); err != nil {
		return nil, err
	}
	return &Price{ID: priceID, UnitAmount: f.UnitAmount}, nil
}

func (f *Fake) CreateSubscription(ctx context.Context, params SubscriptionParams) (*Subscription, error) {
	if err := f.record(OpCreateSubscription, params.Metadata); err != nil {
		return nil, err
	}
	return &Subscription{ID: f.SubscriptionID}, nil
}

func (f *Fake) ParseWebhookEvent(payload []byte, signatureHeader string) (*Event, error) {
	return parseWebhookEvent(payload, signatureHeader, f.WebhookSecret)
}

// SignPayload returns a Stripe-Signature header value for payload.
func SignPayload(payload []byte, secret string) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return signed.Header
}
