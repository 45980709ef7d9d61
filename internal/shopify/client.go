// Package shopify provides a typed client for the remote catalog's Admin
// REST API. All request and response shapes are explicit records; any non-2xx
// response surfaces as *APIError. The client does not retry: callers decide
// what a failed call means for the run that issued it.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okorolev/shopmaint/pkg/config"
	"github.com/sony/gobreaker/v2"
)

const accessTokenHeader = "X-Shopify-Access-Token"

// Client issues authenticated calls against one shop. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewClient builds a client from the explicit configuration. The circuit
// breaker counts transport errors and 5xx/429 responses as failures; other
// 4xx responses are caller mistakes and must not trip it.
func NewClient(cfg config.ShopifyConfig, cbCfg config.CircuitBreakerConfig) *Client {
	settings := gobreaker.Settings{
		Name:    "shopify-admin-api",
		Timeout: cbCfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cbCfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if apiErr, ok := err.(*APIError); ok {
				return apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusTooManyRequests
			}
			return false
		},
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", cfg.Shop, cfg.APIVersion)
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// Products requests one page of products with identifiers greater than
// sinceID, ordered by identifier ascending. fields optionally restricts the
// response to a projection ("id,title,vendor"); an empty string returns full
// records. An empty page means the traversal is complete.
func (c *Client) Products(ctx context.Context, limit int, sinceID int64, fields string) ([]Product, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("since_id", strconv.FormatInt(sinceID, 10))
	if fields != "" {
		query.Set("fields", fields)
	}

	var page productsPage
	if err := c.do(ctx, http.MethodGet, "/products.json", query, nil, &page); err != nil {
		return nil, err
	}
	return page.Products, nil
}

// UpdateProduct applies a partial update to a single product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) error {
	patch.ID = id
	path := fmt.Sprintf("/products/%d.json", id)
	return c.do(ctx, http.MethodPut, path, nil, productEnvelope{Product: patch}, nil)
}

// UpdateVariant applies a partial update to a single variant.
func (c *Client) UpdateVariant(ctx context.Context, id int64, patch VariantPatch) error {
	patch.ID = id
	path := fmt.Sprintf("/variants/%d.json", id)
	return c.do(ctx, http.MethodPut, path, nil, variantEnvelope{Variant: patch}, nil)
}

// do executes a single request through the circuit breaker and decodes the
// response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set(accessTokenHeader, c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	data, err := c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Method:     method,
				Path:       path,
				Body:       string(respBody),
			}
		}
		return respBody, nil
	})
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
