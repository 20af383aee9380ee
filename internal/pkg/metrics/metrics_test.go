package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.RecordProvisioning(nil)
	m.RecordProvisioning(nil)
	m.RecordProvisioning(errors.New("declined"))
	m.RecordWebhook("customer.subscription.created", "applied")
	m.RecordWebhookRejected("invalid_signature")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ProvisioningTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ProvisioningTotal.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WebhookEvents.WithLabelValues("customer.subscription.created", "applied")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WebhookRejected.WithLabelValues("invalid_signature")))

	count, err := testutil.GatherAndCount(registry)
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordProvisioning(nil)
		m.RecordWebhook("x", "y")
		m.RecordWebhookRejected("z")
	})
}
