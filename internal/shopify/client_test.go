package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okorolev/shopmaint/pkg/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		baseURL: srv.URL,
		token:   "test-token",
		http:    srv.Client(),
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{Name: "test"}),
	}
}

func Test_Client_Products(t *testing.T) {
	// given
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"products": []map[string]any{
				{"id": 101, "title": "Mug", "vendor": "Acme", "body_html": "<p>x</p>"},
				{"id": 102, "title": "Bowl", "status": "active"},
			},
		})
	}))
	defer srv.Close()
	client := newTestClient(srv)

	// when
	products, err := client.Products(context.Background(), 250, 100, "id,title,vendor,body_html")

	// then
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(101), products[0].ID)
	assert.Equal(t, "Mug", products[0].Title)
	assert.Equal(t, "/products.json", gotReq.URL.Path)
	assert.Equal(t, "250", gotReq.URL.Query().Get("limit"))
	assert.Equal(t, "100", gotReq.URL.Query().Get("since_id"))
	assert.Equal(t, "id,title,vendor,body_html", gotReq.URL.Query().Get("fields"))
	assert.Equal(t, "test-token", gotReq.Header.Get("X-Shopify-Access-Token"))
}

func Test_Client_Products_OmitsEmptyFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("fields"))
		_, _ = w.Write([]byte(`{"products":[]}`))
	}))
	defer srv.Close()

	products, err := newTestClient(srv).Products(context.Background(), 50, 0, "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func Test_Client_UpdateProduct(t *testing.T) {
	// given
	var gotPath, gotMethod, gotContentType string
	var gotBody map[string]map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// when
	body := "<p>new</p>"
	err := newTestClient(srv).UpdateProduct(context.Background(), 42, ProductPatch{BodyHTML: &body})

	// then
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/products/42.json", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	require.Contains(t, gotBody, "product")
	assert.Equal(t, float64(42), gotBody["product"]["id"])
	assert.Equal(t, "<p>new</p>", gotBody["product"]["body_html"])
	assert.NotContains(t, gotBody["product"], "status")
}

func Test_Client_UpdateVariant(t *testing.T) {
	var gotPath string
	var gotBody map[string]map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	price := "21.99"
	err := newTestClient(srv).UpdateVariant(context.Background(), 77, VariantPatch{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, "/variants/77.json", gotPath)
	assert.Equal(t, "21.99", gotBody["variant"]["price"])
}

func Test_Client_NonSuccessIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":"price cannot be blank"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Products(context.Background(), 10, 0, "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Equal(t, "/products.json", apiErr.Path)
	assert.Contains(t, apiErr.Body, "price cannot be blank")
	assert.Contains(t, apiErr.Error(), "returned 422")
}

func Test_Client_BreakerOpensAfterConsecutiveServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(
		config.ShopifyConfig{BaseURL: srv.URL, AccessToken: "t", APIVersion: "2024-07", Timeout: time.Second},
		config.CircuitBreakerConfig{ConsecutiveFailures: 2, OpenTimeout: time.Minute},
	)

	for range 2 {
		_, err := client.Products(context.Background(), 10, 0, "")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
	}

	_, err := client.Products(context.Background(), 10, 0, "")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func Test_Client_ClientErrorsDoNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(
		config.ShopifyConfig{BaseURL: srv.URL, AccessToken: "t", APIVersion: "2024-07", Timeout: time.Second},
		config.CircuitBreakerConfig{ConsecutiveFailures: 2, OpenTimeout: time.Minute},
	)

	for range 5 {
		_, err := client.Products(context.Background(), 10, 0, "")
		require.Error(t, err)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}
}

func Test_Variant_TrackedAndQuantity(t *testing.T) {
	qty := 3
	tracked := Variant{InventoryManagement: "shopify", InventoryQuantity: &qty}
	assert.True(t, tracked.Tracked())
	assert.Equal(t, 3, tracked.Quantity())

	untracked := Variant{}
	assert.False(t, untracked.Tracked())
	assert.Equal(t, 0, untracked.Quantity())
}
