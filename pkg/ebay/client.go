// Package ebay is a client for the eBay Buy Browse REST API. A Client
// combines an Authenticator with the environment's base URL; the
// service types (ItemService, SearchService, AnalyticsService) build
// endpoint paths on top of it.
package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/ebaynet/internal/metrics"
)

const (
	endUserContextHeader = "X-EBAY-C-ENDUSERCTX"
	marketplaceHeader    = "X-EBAY-C-MARKETPLACE-ID"

	// endUserContext is sent as-is; eBay accepts a wildcard when there is
	// no affiliate or location context to pass along.
	endUserContext = "*"
)

// Client performs authenticated GET requests against the eBay REST API.
// It holds no mutable state after construction and is safe for
// concurrent use.
type Client struct {
	auth        Authenticator
	urls        URLService
	marketplace string
	client      *http.Client
	logger      *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithEnvironment selects the production or sandbox gateway.
func WithEnvironment(env Environment) Option {
	return func(c *Client) {
		c.urls = NewURLService(env)
	}
}

// WithURLService sets the URLService directly.
func WithURLService(s URLService) Option {
	return func(c *Client) {
		c.urls = s
	}
}

// WithBaseURL points the client at an arbitrary gateway, such as an
// httptest server or the local mock server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.urls = CustomURLService(u)
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMarketplace sets the X-EBAY-C-MARKETPLACE-ID header, e.g. "EBAY_US".
// The header is omitted when empty.
func WithMarketplace(m string) Option {
	return func(c *Client) {
		c.marketplace = m
	}
}

// NewClient creates a Client for the production environment unless an
// option says otherwise.
func NewClient(auth Authenticator, opts ...Option) *Client {
	c := &Client{
		auth:   auth,
		urls:   NewURLService(Production),
		client: &http.Client{Timeout: 30 * time.Second},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URLService returns the URLService the client resolves paths against.
func (c *Client) URLService() URLService {
	return c.urls
}

// Request fetches path, relative to the client's base URL, and decodes
// the JSON response into a T. The path is used as already-escaped text.
//
// Errors from the Authenticator are returned unchanged. Every failure
// after that is returned as an *Error.
func Request[T any](ctx context.Context, c *Client, path string) (*T, error) {
	token, err := c.auth.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, errors.New("authenticator returned no token")
	}

	var out T
	if err := c.get(ctx, combineURL(c.urls.URL(), path), token.AccessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, u, accessToken string, dst any) error {
	reqID := uuid.NewString()
	start := time.Now()
	env := c.environmentLabel()

	fail := func(status int, details []ErrorDetail, cause error) error {
		label := "error"
		if status != 0 {
			label = strconv.Itoa(status)
		}
		metrics.APIRequestsTotal.WithLabelValues(env, label).Inc()
		metrics.APIRequestDuration.WithLabelValues(env).Observe(time.Since(start).Seconds())
		c.logger.DebugContext(ctx, "ebay request failed",
			"request_id", reqID,
			"url", u,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"err", cause,
		)
		return &Error{
			Method:     http.MethodGet,
			URL:        u,
			StatusCode: status,
			Errors:     details,
			Err:        cause,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fail(0, nil, fmt.Errorf("creating HTTP request: %w", err))
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(endUserContextHeader, endUserContext)
	if c.marketplace != "" {
		req.Header.Set(marketplaceHeader, c.marketplace)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fail(0, nil, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		details, cause := statusError(resp.StatusCode, body)
		return fail(resp.StatusCode, details, cause)
	}

	if resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(body, dst); err != nil {
			return fail(resp.StatusCode, nil, fmt.Errorf("parsing response: %w", err))
		}
	}

	metrics.APIRequestsTotal.WithLabelValues(env, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.APIRequestDuration.WithLabelValues(env).Observe(time.Since(start).Seconds())
	c.logger.DebugContext(ctx, "ebay request",
		"request_id", reqID,
		"url", u,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

func (c *Client) environmentLabel() string {
	switch c.urls.URL() {
	case productionBaseURL:
		return Production.String()
	case sandboxBaseURL:
		return Sandbox.String()
	default:
		return "custom"
	}
}
