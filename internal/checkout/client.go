package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/build0hq/storefront-session/pkg/errors"
)

const (
	errorBodyReadLimit int64 = 2048
	defaultTimeout           = 30 * time.Second
)

var errBaseURLRequired = errors.New("checkout base url is required")

// Response carries the redirect destination returned by the checkout
// endpoint.
type Response struct {
	CheckoutURL string `json:"checkout_url"`
}

// Client posts checkout requests to the payment endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the checkout client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Submit posts the request and returns the redirect URL on success.
func (c *Client) Submit(ctx context.Context, storefrontID string, request Request) (*Response, error) {
	if strings.TrimSpace(storefrontID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront id is required")
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding checkout request")
	}

	endpoint := fmt.Sprintf("%s/api/storefront/%s/checkout", c.baseURL, url.PathEscape(storefrontID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building checkout request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submitting checkout")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := map[string]any{"status": resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		if body := strings.TrimSpace(string(raw)); body != "" {
			detail["body"] = body
		}
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("checkout failed: %s", resp.Status)).WithDetails(detail)
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding checkout response")
	}
	if strings.TrimSpace(parsed.CheckoutURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "checkout response missing checkout_url")
	}

	return &parsed, nil
}
