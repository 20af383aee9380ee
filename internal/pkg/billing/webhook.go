package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/csalom/stripe-api/app/models"
	"github.com/csalom/stripe-api/internal/pkg/stripeclient"
	fiberlog "github.com/gofiber/fiber/v2/log"
)

const errSubscriptionNotFound = "subscription not found"

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.WebhookEvent, error) {
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.WebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repos.WithContext(ctx).WebhookEvent.CreateIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repos.WithContext(ctx).WebhookEvent.MarkProcessed(webhookEventID, errMsg)
}

// ProcessWebhookEvent records a verified event and dispatches it to the
// matching reconciliation. Deliveries of an event that was already applied
// are acknowledged without touching the mirror; deliveries whose previous
// attempt failed or matched nothing are processed again.
func (s *Service) ProcessWebhookEvent(ctx context.Context, event *stripeclient.Event, payload []byte) (WebhookOutcome, error) {
	if event == nil {
		return WebhookFailed, errors.New("webhook event is required")
	}

	created, stored, err := s.RecordWebhookEvent(ctx, WebhookEventInput{
		Provider:        models.WebhookProviderStripe,
		ProviderEventID: event.ID,
		EventType:       event.Type,
		PayloadJSON:     string(payload),
		SignatureValid:  true,
	})
	if err != nil {
		return WebhookFailed, fmt.Errorf("record webhook event: %w", err)
	}
	if !created && stored.Applied() {
		fiberlog.Infow("Webhook event already processed", "event_id", event.ID, "event_type", event.Type)
		return WebhookDuplicate, nil
	}

	outcome, processErr := s.dispatch(ctx, event)

	var markErr error
	switch {
	case processErr != nil:
		markErr = processErr
	case outcome == WebhookNotFound:
		markErr = errors.New(errSubscriptionNotFound)
	}
	if err := s.MarkWebhookProcessed(ctx, stored.ID, markErr); err != nil {
		fiberlog.Warnw("Failed to mark webhook event processed", "event_id", event.ID, "error", err)
	}

	return outcome, processErr
}

func (s *Service) dispatch(ctx context.Context, event *stripeclient.Event) (WebhookOutcome, error) {
	var report func(context.Context, stripeclient.SubscriptionEvent) (bool, error)
	switch event.Type {
	case stripeclient.EventSubscriptionCreated:
		report = s.ReportSubscriptionCreated
	case stripeclient.EventSubscriptionUpdated:
		report = s.ReportSubscriptionUpdated
	default:
		return WebhookIgnored, nil
	}

	if event.Subscription == nil {
		return WebhookFailed, fmt.Errorf("%w: event %s has no subscription", stripeclient.ErrMalformedEvent, event.ID)
	}

	matched, err := report(ctx, *event.Subscription)
	if err != nil {
		return WebhookFailed, err
	}
	if !matched {
		return WebhookNotFound, nil
	}
	return WebhookApplied, nil
}
