// pkg/woo/client.go
package woo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"woosync/pkg/config"
)

const perPage = 100

// Client is a WooCommerce REST API client (wc/v3) with WordPress media
// upload support (wp/v2). It carries no retry policy; callers decide
// what a failed call means for the run.
type Client struct {
	apiBase   string // {store}/wp-json/wc/v3
	mediaBase string // {store}/wp-json/wp/v2

	consumerKey    string
	consumerSecret string
	wpUsername     string
	wpAppPassword  string

	httpClient   *http.Client
	uploadClient *http.Client
	logger       *zap.Logger
}

// NewClient creates a new store API client from store configuration.
func NewClient(cfg *config.StoreConfig, logger *zap.Logger) *Client {
	return &Client{
		apiBase:        cfg.URL + "/wp-json/wc/v3",
		mediaBase:      cfg.URL + "/wp-json/wp/v2",
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		wpUsername:     cfg.WPUsername,
		wpAppPassword:  cfg.WPAppPassword,
		httpClient:     &http.Client{Timeout: cfg.RequestTimeout},
		uploadClient:   &http.Client{Timeout: cfg.UploadTimeout},
		logger:         logger,
	}
}

// APIError is a non-2xx response from the store.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store API error (status %d): %s", e.StatusCode, e.Message)
}

// do executes one JSON request against the wc/v3 API.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	u := c.apiBase + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(data),
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}

	return nil
}

// apiErrorMessage extracts the store's error message when the body is
// the usual {"code": ..., "message": ...} shape.
func apiErrorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(data)
}

// Ping verifies API connectivity and credentials with a one-item list.
func (c *Client) Ping(ctx context.Context) error {
	var products []Product
	query := url.Values{"per_page": {"1"}}
	if err := c.do(ctx, http.MethodGet, "products", query, nil, &products); err != nil {
		return fmt.Errorf("API connection test failed: %w", err)
	}
	return nil
}

// GetProductBySKU looks a product up by exact SKU. A missing product is
// (nil, nil), not an error.
func (c *Client) GetProductBySKU(ctx context.Context, skuCode string) (*Product, error) {
	var products []Product
	query := url.Values{"sku": {skuCode}}
	if err := c.do(ctx, http.MethodGet, "products", query, nil, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// ListAllProducts fetches every product page by page.
func (c *Client) ListAllProducts(ctx context.Context) ([]Product, error) {
	var all []Product
	for page := 1; ; page++ {
		var items []Product
		query := url.Values{
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
		}
		if err := c.do(ctx, http.MethodGet, "products", query, nil, &items); err != nil {
			return nil, fmt.Errorf("failed to list products page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}
		all = append(all, items...)
		if len(items) < perPage {
			break
		}
	}
	return all, nil
}

// CreateProduct creates a product and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, product *Product) (*Product, error) {
	var created Product
	if err := c.do(ctx, http.MethodPost, "products", nil, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct updates an existing product by ID.
func (c *Client) UpdateProduct(ctx context.Context, id int, product *Product) (*Product, error) {
	var updated Product
	endpoint := fmt.Sprintf("products/%d", id)
	if err := c.do(ctx, http.MethodPut, endpoint, nil, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListVariations fetches the variations of a product (first page of
// 100; the catalog never exceeds that).
func (c *Client) ListVariations(ctx context.Context, productID int) ([]Variation, error) {
	var variations []Variation
	endpoint := fmt.Sprintf("products/%d/variations", productID)
	query := url.Values{"per_page": {strconv.Itoa(perPage)}}
	if err := c.do(ctx, http.MethodGet, endpoint, query, nil, &variations); err != nil {
		return nil, err
	}
	return variations, nil
}

// CreateVariation creates one variation under a product.
func (c *Client) CreateVariation(ctx context.Context, productID int, variation *Variation) (*Variation, error) {
	var created Variation
	endpoint := fmt.Sprintf("products/%d/variations", productID)
	if err := c.do(ctx, http.MethodPost, endpoint, nil, variation, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateVariation updates one variation under a product.
func (c *Client) UpdateVariation(ctx context.Context, productID, variationID int, variation *Variation) (*Variation, error) {
	var updated Variation
	endpoint := fmt.Sprintf("products/%d/variations/%d", productID, variationID)
	if err := c.do(ctx, http.MethodPut, endpoint, nil, variation, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
