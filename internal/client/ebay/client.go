package ebay

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	oauthScope = "https://api.ebay.com/oauth/api_scope"

	// Token refresh happens this long before the reported expiry.
	tokenExpirySkew = 60 * time.Second
)

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

// Client talks to the eBay Browse API using client-credentials OAuth.
// The access token is cached until shortly before expiry.
type Client struct {
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	marketplace  string
	categoryID   string
	httpClient   *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

type Options struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Marketplace  string
	CategoryID   string
}

func NewClient(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.ebay.com/buy/browse/v1"
	}
	if opts.TokenURL == "" {
		opts.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
	}
	if opts.Marketplace == "" {
		opts.Marketplace = "EBAY_US"
	}
	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		tokenURL:     opts.TokenURL,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		marketplace:  opts.Marketplace,
		categoryID:   opts.CategoryID,
		httpClient:   httpClient,
	}
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", oauthScope)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	tok, expiresIn, err := parseTokenResponse(body)
	if err != nil {
		return "", err
	}
	c.token = tok
	c.tokenExpiry = time.Now().Add(time.Duration(expiresIn)*time.Second - tokenExpirySkew)
	return c.token, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.marketplace)

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
	return body, nil
}

// SearchPage fetches one page of item summaries for the query. Offset
// and limit follow Browse API pagination; Total on the result is the
// marketplace's reported total across all pages.
func (c *Client) SearchPage(ctx context.Context, query string, offset, limit int) (*SearchPage, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("offset", fmt.Sprintf("%d", offset))
	if c.categoryID != "" {
		params.Set("category_ids", c.categoryID)
	}
	body, err := c.doRequest(ctx, "/item_summary/search", params)
	if err != nil {
		return nil, err
	}
	return parseSearchPage(body)
}
