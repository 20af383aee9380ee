package stripeclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82/webhook"
)

// ParseWebhookEvent verifies the signature header against the webhook secret
// and decodes the event. Subscription payloads are decoded into Subscription.
func (c *StripeClient) ParseWebhookEvent(payload []byte, signatureHeader string) (*Event, error) {
	return parseWebhookEvent(payload, signatureHeader, c.webhookSecret)
}

func parseWebhookEvent(payload []byte, signatureHeader, secret string) (*Event, error) {
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, ErrInvalidSignature
	}

	stripeEvent, err := webhook.ConstructEventWithOptions(payload, signatureHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrNotSigned),
			errors.Is(err, webhook.ErrInvalidHeader),
			errors.Is(err, webhook.ErrNoValidSignature),
			errors.Is(err, webhook.ErrTooOld):
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
	}

	event := &Event{
		ID:   stripeEvent.ID,
		Type: string(stripeEvent.Type),
	}
	if event.Type != EventSubscriptionCreated && event.Type != EventSubscriptionUpdated {
		return event, nil
	}
	if stripeEvent.Data == nil || len(stripeEvent.Data.Raw) == 0 {
		return nil, fmt.Errorf("%w: event %s has no data object", ErrMalformedEvent, event.ID)
	}

	sub, err := decodeSubscriptionEvent(stripeEvent.Data.Raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	event.Subscription = sub
	return event, nil
}

type amountObject struct {
	Amount     *int64 `json:"amount"`
	UnitAmount *int64 `json:"unit_amount"`
}

type subscriptionObject struct {
	ID       string          `json:"id"`
	Customer json.RawMessage `json:"customer"`
	Status   string          `json:"status"`
	Plan     *amountObject   `json:"plan"`
	Items    struct {
		Data []struct {
			Plan  *amountObject `json:"plan"`
			Price *amountObject `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

func decodeSubscriptionEvent(raw json.RawMessage) (*SubscriptionEvent, error) {
	var obj subscriptionObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	if obj.ID == "" {
		return nil, errors.New("subscription id is missing")
	}

	customerID, err := decodeExpandableID(obj.Customer)
	if err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	if customerID == "" {
		return nil, errors.New("customer id is missing")
	}

	return &SubscriptionEvent{
		SubscriptionID: obj.ID,
		CustomerID:     customerID,
		Status:         obj.Status,
		Amount:         obj.amount(),
	}, nil
}

// amount prefers the legacy plan amount and falls back to the first item.
func (o subscriptionObject) amount() *int64 {
	if o.Plan != nil && o.Plan.Amount != nil {
		return o.Plan.Amount
	}
	for _, item := range o.Items.Data {
		if item.Plan != nil && item.Plan.Amount != nil {
			return item.Plan.Amount
		}
		if item.Price != nil && item.Price.UnitAmount != nil {
			return item.Price.UnitAmount
		}
	}
	return nil
}

// decodeExpandableID accepts either an id string or an expanded object.
func decodeExpandableID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", err
	}
	return obj.ID, nil
}
