package constants

// Static route constants
const (
	SubscriptionRoute = "/subscription/"
	WebhookRoute      = "/webhook/"
	HealthRoute       = "/healthz"
	MetricsRoute      = "/metrics"

	// OpenAPI docs are served under DocsBasePath + DocsVersion
	DocsBasePath = "/docs/api/"
	DocsVersion  = "v1"
)
