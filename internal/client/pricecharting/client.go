package pricecharting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

// Client talks to the PriceCharting product API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://www.pricecharting.com"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Product is the raw API payload for one product. Price fields are in
// cents; ParseGradePrices converts them to dollars keyed by grade.
type Product struct {
	ID          string `json:"id"`
	ProductName string `json:"product-name"`
	ConsoleName string `json:"console-name"`

	LoosePrice       *int64 `json:"loose-price"`
	GradedPrice      *int64 `json:"graded-price"`
	ManualOnlyPrice  *int64 `json:"manual-only-price"`
	NewPrice         *int64 `json:"new-price"`
	CIBPrice         *int64 `json:"cib-price"`
	BoxOnlyPrice     *int64 `json:"box-only-price"`
	BGS10Price       *int64 `json:"bgs-10-price"`
	Condition17Price *int64 `json:"condition-17-price"`
	Condition18Price *int64 `json:"condition-18-price"`

	SalesVolume *int `json:"sales-volume"`

	Status string          `json:"status"`
	Raw    json.RawMessage `json:"-"`
}

// GetProduct fetches one product by its PriceCharting id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	params := url.Values{}
	params.Set("t", c.apiKey)
	params.Set("id", productID)
	fullURL := c.baseURL + "/api/product?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var product Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	if product.Status != "" && product.Status != "success" {
		return nil, fmt.Errorf("product API status %q", product.Status)
	}
	product.Raw = body
	return &product, nil
}
