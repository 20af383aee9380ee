package billing

// SubscriberInput is the validated input for provisioning a card-backed
// subscription. Number and CVC are forwarded to the processor only.
type SubscriberInput struct {
	FullName   string
	Email      string
	CardNumber string
	Month      int
	Year       int
	CVC        string
	PriceID    string
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}

// WebhookOutcome describes what processing a webhook delivery did.
type WebhookOutcome string

const (
	WebhookApplied   WebhookOutcome = "applied"
	WebhookNotFound  WebhookOutcome = "not_found"
	WebhookIgnored   WebhookOutcome = "ignored"
	WebhookDuplicate WebhookOutcome = "duplicate"
	WebhookFailed    WebhookOutcome = "failed"
)
