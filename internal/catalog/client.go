package catalog

import (
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
	defaultTimeout           = 10 * time.Second
)

var errBaseURLRequired = errors.New("storefront base url is required")

// Client fetches storefront metadata and the product list from the upstream
// data source.
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

// NewClient builds the storefront client for the given base URL.
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

// FetchStorefront performs the catalog read for one storefront.
func (c *Client) FetchStorefront(ctx context.Context, storefrontID string) (*StorefrontData, error) {
	if strings.TrimSpace(storefrontID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront id is required")
	}

	endpoint := fmt.Sprintf("%s/api/storefront/%s", c.baseURL, url.PathEscape(storefrontID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building storefront request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching storefront data")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dependencyError(resp, "storefront fetch failed")
	}

	var data StorefrontData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding storefront response")
	}

	return &data, nil
}

func dependencyError(resp *http.Response, message string) *pkgerrors.Error {
	detail := map[string]any{"status": resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	if body := strings.TrimSpace(string(raw)); body != "" {
		detail["body"] = body
	}
	return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("%s: %s", message, resp.Status)).WithDetails(detail)
}
