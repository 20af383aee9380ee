package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csalom/stripe-api/app/controllers"
	"github.com/csalom/stripe-api/app/repository"
	"github.com/csalom/stripe-api/internal/pkg/billing"
	"github.com/csalom/stripe-api/internal/pkg/database"
	"github.com/csalom/stripe-api/internal/pkg/env"
	"github.com/csalom/stripe-api/internal/pkg/metrics"
	"github.com/csalom/stripe-api/internal/pkg/stripeclient"
)

func newTestRouterApp(t *testing.T, cfg *env.Config) *fiber.App {
	t.Helper()

	db, err := database.OpenSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)
	repos := repository.NewFactory(db)
	fake := stripeclient.NewFake()
	service := billing.NewService(repos, fake)

	app := fiber.New()
	InstallRouter(app, Dependencies{
		Config:        cfg,
		DB:            db,
		Gatherer:      registry,
		Subscriptions: controllers.NewSubscriptionController(service, repos, m),
		Webhooks:      controllers.NewWebhookController(service, fake, nil, m),
	})
	return app
}

func TestHealthz(t *testing.T) {
	app := newTestRouterApp(t, &env.Config{SubscriptionRateLimit: 5})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMetricsRequiresBasicAuth(t *testing.T) {
	app := newTestRouterApp(t, &env.Config{SubscriptionRateLimit: 5, MetricsUser: "ops", MetricsPassword: "secret"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("ops", "secret")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMetricsDisabledWithoutCredentials(t *testing.T) {
	app := newTestRouterApp(t, &env.Config{SubscriptionRateLimit: 5})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubscriptionRouteIsRateLimited(t *testing.T) {
	app := newTestRouterApp(t, &env.Config{SubscriptionRateLimit: 2})

	body, err := json.Marshal(map[string]any{
		"full_name": "John Doe", "email": "bad", "card_number": "4242424242424242",
		"month": 12, "year": time.Now().Year() + 1, "cvc": 123, "price_id": "price_1",
	})
	require.NoError(t, err)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/subscription/", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Equal(t, []int{fiber.StatusBadRequest, fiber.StatusBadRequest, fiber.StatusTooManyRequests}, statuses)
}

func TestWebhookRouteRejectsUnsigned(t *testing.T) {
	app := newTestRouterApp(t, &env.Config{SubscriptionRateLimit: 5})

	req := httptest.NewRequest(http.MethodPost, "/webhook/", strings.NewReader(`{}`))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
