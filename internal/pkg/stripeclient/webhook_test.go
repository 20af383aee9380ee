package stripeclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_unit"

func subscriptionPayload(eventType, object string) []byte {
	return []byte(`{"id":"evt_1","object":"event","api_version":"2020-08-27","type":"` + eventType + `","data":{"object":` + object + `}}`)
}

func TestParseWebhookEvent_SubscriptionCreated(t *testing.T) {
	payload := subscriptionPayload(EventSubscriptionCreated,
		`{"id":"sub_1","object":"subscription","customer":"cus_1","status":"active","plan":{"amount":20000}}`)

	event, err := parseWebhookEvent(payload, SignPayload(payload, testSecret), testSecret)
	require.NoError(t, err)

	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, EventSubscriptionCreated, event.Type)
	require.NotNil(t, event.Subscription)
	assert.Equal(t, "sub_1", event.Subscription.SubscriptionID)
	assert.Equal(t, "cus_1", event.Subscription.CustomerID)
	assert.Equal(t, "active", event.Subscription.Status)
	require.NotNil(t, event.Subscription.Amount)
	assert.Equal(t, int64(20000), *event.Subscription.Amount)
}

func TestParseWebhookEvent_ExpandedCustomerAndItemPrice(t *testing.T) {
	payload := subscriptionPayload(EventSubscriptionUpdated,
		`{"id":"sub_2","customer":{"id":"cus_2","object":"customer"},"status":"past_due","items":{"data":[{"price":{"unit_amount":1500}}]}}`)

	event, err := parseWebhookEvent(payload, SignPayload(payload, testSecret), testSecret)
	require.NoError(t, err)

	require.NotNil(t, event.Subscription)
	assert.Equal(t, "cus_2", event.Subscription.CustomerID)
	require.NotNil(t, event.Subscription.Amount)
	assert.Equal(t, int64(1500), *event.Subscription.Amount)
}

func TestParseWebhookEvent_AmountIsOptional(t *testing.T) {
	payload := subscriptionPayload(EventSubscriptionUpdated,
		`{"id":"sub_3","customer":"cus_3","status":"canceled"}`)

	event, err := parseWebhookEvent(payload, SignPayload(payload, testSecret), testSecret)
	require.NoError(t, err)
	assert.Nil(t, event.Subscription.Amount)
}

func TestParseWebhookEvent_OtherTypesCarryNoSubscription(t *testing.T) {
	payload := []byte(`{"id":"evt_2","object":"event","type":"invoice.paid","data":{"object":{"id":"in_1"}}}`)

	event, err := parseWebhookEvent(payload, SignPayload(payload, testSecret), testSecret)
	require.NoError(t, err)
	assert.Equal(t, "invoice.paid", event.Type)
	assert.Nil(t, event.Subscription)
}

func TestParseWebhookEvent_InvalidSignature(t *testing.T) {
	payload := subscriptionPayload(EventSubscriptionCreated, `{"id":"sub_1","customer":"cus_1","status":"active"}`)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage header", "not-a-signature"},
		{"wrong secret", SignPayload(payload, "whsec_other")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseWebhookEvent(payload, tt.header, testSecret)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestParseWebhookEvent_MalformedSubscription(t *testing.T) {
	payload := subscriptionPayload(EventSubscriptionCreated, `{"status":"active"}`)

	_, err := parseWebhookEvent(payload, SignPayload(payload, testSecret), testSecret)
	assert.ErrorIs(t, err, ErrMalformedEvent)
}
