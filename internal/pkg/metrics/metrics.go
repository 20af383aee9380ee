package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stripe_api"

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	ProvisioningTotal *prometheus.CounterVec
	WebhookEvents     *prometheus.CounterVec
	WebhookRejected   *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on registry
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProvisioningTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscription_provisioning_total",
				Help:      "Subscription provisioning attempts by result",
			},
			[]string{"result"},
		),
		WebhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_events_total",
				Help:      "Verified webhook events by type and outcome",
			},
			[]string{"event_type", "outcome"},
		),
		WebhookRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_rejected_total",
				Help:      "Webhook deliveries rejected before processing",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(m.ProvisioningTotal, m.WebhookEvents, m.WebhookRejected)
	return m
}

// RecordProvisioning counts one provisioning attempt
func (m *Metrics) RecordProvisioning(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.ProvisioningTotal.WithLabelValues(result).Inc()
}

// RecordWebhook counts one processed webhook event
func (m *Metrics) RecordWebhook(eventType, outcome string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(eventType, outcome).Inc()
}

// RecordWebhookRejected counts a delivery that never reached processing
func (m *Metrics) RecordWebhookRejected(reason string) {
	if m == nil {
		return
	}
	m.WebhookRejected.WithLabelValues(reason).Inc()
}
