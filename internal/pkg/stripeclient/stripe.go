package stripeclient

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Config holds the credentials for one Stripe account.
type Config struct {
	APIKey        string
	WebhookSecret string

	// APIURL overrides the Stripe API endpoint, e.g. for stripe-mock.
	APIURL     string
	HTTPClient *http.Client
}

// StripeClient implements Client with stripe-go.
type StripeClient struct {
	api           *client.API
	webhookSecret string
}

var _ Client = (*StripeClient)(nil)

// New creates a client bound to the given credentials.
func New(cfg Config) (*StripeClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("stripe api key is required")
	}
	if strings.TrimSpace(cfg.WebhookSecret) == "" {
		return nil, errors.New("stripe webhook secret is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	backendConfig := &stripe.BackendConfig{
		HTTPClient: httpClient,
		// The first failure is returned to the caller.
		MaxNetworkRetries: stripe.Int64(0),
	}
	if strings.TrimSpace(cfg.APIURL) != "" {
		backendConfig.URL = stripe.String(strings.TrimRight(cfg.APIURL, "/"))
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig)

	api := &client.API{}
	api.Init(cfg.APIKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &StripeClient{api: api, webhookSecret: cfg.WebhookSecret}, nil
}

func (c *StripeClient) CreatePaymentMethod(ctx context.Context, p CardParams) (*PaymentMethod, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(p.Number),
			ExpMonth: stripe.Int64(int64(p.ExpMonth)),
			ExpYear:  stripe.Int64(int64(p.ExpYear)),
			CVC:      stripe.String(p.CVC),
		},
	}
	params.Context = ctx
	addMetadata(&params.Params, p.Metadata)

	pm, err := c.api.PaymentMethods.New(params)
	if err != nil {
		return nil, err
	}
	return &PaymentMethod{ID: pm.ID}, nil
}

func (c *StripeClient) CreateCustomer(ctx context.Context, p CustomerParams) (*Customer, error) {
	params := &stripe.CustomerParams{
		PaymentMethod: stripe.String(p.PaymentMethodID),
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(p.PaymentMethodID),
		},
		Name:  stripe.String(p.Name),
		Email: stripe.String(p.Email),
	}
	params.Context = ctx
	addMetadata(&params.Params, p.Metadata)

	cus, err := c.api.Customers.New(params)
	if err != nil {
		return nil, err
	}
	return &Customer{ID: cus.ID, InvoicePrefix: cus.InvoicePrefix}, nil
}

// AttachPaymentMethod attaches the payment method to the customer. Creating a
// customer with a default payment method does not attach it for raw cards.
func (c *StripeClient) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	_, err := c.api.PaymentMethods.Attach(paymentMethodID, params)
	return err
}

func (c *StripeClient) RetrievePrice(ctx context.Context, priceID string) (*Price, error) {
	params := &stripe.PriceParams{}
	params.Context = ctx

	price, err := c.api.Prices.Get(priceID, params)
	if err != nil {
		return nil, err
	}
	return &Price{ID: price.ID, UnitAmount: price.UnitAmount}, nil
}

func (c *StripeClient) CreateSubscription(ctx context.Context, p SubscriptionParams) (*Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(p.CustomerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(p.PriceID)},
		},
	}
	params.Context = ctx
	addMetadata(&params.Params, p.Metadata)

	sub, err := c.api.Subscriptions.New(params)
	if err != nil {
		return nil, err
	}
	return &Subscription{ID: sub.ID}, nil
}

func addMetadata(params *stripe.Params, metadata map[string]string) {
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
}
