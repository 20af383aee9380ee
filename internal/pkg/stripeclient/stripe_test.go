package stripeclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	form   map[string]string
}

func newTestServer(t *testing.T, responses map[string]string) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var mu sync.Mutex
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		form := map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		mu.Lock()
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, form: form})
		mu.Unlock()

		body, ok := responses[r.Method+" "+r.URL.Path]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"no such resource"}}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{WebhookSecret: "whsec"})
	assert.Error(t, err)

	_, err = New(Config{APIKey: "sk_test"})
	assert.Error(t, err)
}

func TestStripeClient_ProvisioningCalls(t *testing.T) {
	srv, requests := newTestServer(t, map[string]string{
		"POST /v1/payment_methods":             `{"id":"pm_1","object":"payment_method"}`,
		"POST /v1/customers":                   `{"id":"cus_1","object":"customer","invoice_prefix":"ABC123"}`,
		"POST /v1/payment_methods/pm_1/attach": `{"id":"pm_1","object":"payment_method","customer":"cus_1"}`,
		"GET /v1/prices/price_1":               `{"id":"price_1","object":"price","unit_amount":10000}`,
		"POST /v1/subscriptions":               `{"id":"sub_1","object":"subscription"}`,
	})

	c, err := New(Config{APIKey: "sk_test_123", WebhookSecret: "whsec", APIURL: srv.URL})
	require.NoError(t, err)
	ctx := context.Background()
	meta := map[string]string{"provisioning_id": "prov-1"}

	pm, err := c.CreatePaymentMethod(ctx, CardParams{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123", Metadata: meta})
	require.NoError(t, err)
	assert.Equal(t, "pm_1", pm.ID)

	cus, err := c.CreateCustomer(ctx, CustomerParams{PaymentMethodID: pm.ID, Name: "John Doe", Email: "john@doe.com", Metadata: meta})
	require.NoError(t, err)
	assert.Equal(t, "cus_1", cus.ID)
	assert.Equal(t, "ABC123", cus.InvoicePrefix)

	require.NoError(t, c.AttachPaymentMethod(ctx, pm.ID, cus.ID))

	price, err := c.RetrievePrice(ctx, "price_1")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), price.UnitAmount)

	sub, err := c.CreateSubscription(ctx, SubscriptionParams{CustomerID: cus.ID, PriceID: "price_1", Metadata: meta})
	require.NoError(t, err)
	assert.Equal(t, "sub_1", sub.ID)

	reqs := requests()
	require.Len(t, reqs, 5)

	assert.Equal(t, "4242424242424242", reqs[0].form["card[number]"])
	assert.Equal(t, "prov-1", reqs[0].form["metadata[provisioning_id]"])
	assert.Equal(t, "pm_1", reqs[1].form["invoice_settings[default_payment_method]"])
	assert.Equal(t, "john@doe.com", reqs[1].form["email"])
	assert.Equal(t, "cus_1", reqs[2].form["customer"])
	assert.Equal(t, "price_1", reqs[4].form["items[0][price]"])
	assert.Equal(t, "prov-1", reqs[4].form["metadata[provisioning_id]"])
}

func TestStripeClient_RemoteErrorIsReturned(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{})

	c, err := New(Config{APIKey: "sk_test_123", WebhookSecret: "whsec", APIURL: srv.URL})
	require.NoError(t, err)

	_, err = c.RetrievePrice(context.Background(), "price_missing")
	assert.Error(t, err)
}
