// Package paprika is a thin client for the CoinPaprika REST API.
//
// A Client is bound to exactly one credential for its whole life: the base
// URL and the Authorization header are chosen once in NewClient. There are no
// retries; every non-2xx response is classified by apierr and returned.
package paprika

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/coinpaprika-cli/internal/apierr"
)

// API configuration.
const (
	// PublicBaseURL serves unauthenticated (free tier) requests.
	PublicBaseURL = "https://api.coinpaprika.com/v1"

	// ProBaseURL serves requests carrying an API key.
	ProBaseURL = "https://api-pro.coinpaprika.com/v1"

	defaultUserAgent = "coinpaprika-cli/0.1.0"

	// Response size limit to prevent OOM from malformed responses (64MB).
	// The full coin list is the largest payload and stays well below this.
	maxResponseSize = 64 * 1024 * 1024
)

// httpDoer abstracts the HTTP client for testing.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues GET requests against one base URL with one optional key.
// A Client is safe for sequential use; the CLI never issues concurrent requests.
type Client struct {
	apiKey     string
	baseURL    string
	userAgent  string
	httpClient httpDoer
	logger     zerolog.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the base URL chosen from the credential (for testing or proxies).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
// The default has no timeout: a slow upstream is bounded only by the context.
func WithHTTPClient(h httpDoer) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// withClock sets the time source used for request durations (for testing).
func withClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient returns a client bound to apiKey. An empty key selects the
// public endpoint and sends no Authorization header.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    PublicBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
		now:        time.Now,
	}
	if apiKey != "" {
		c.baseURL = ProBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL every request is sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasKey reports whether requests carry an API key.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// Fetch performs one GET for ep and decodes a 2xx body into T.
// Failures are always *apierr.Error.
func Fetch[T any](ctx context.Context, c *Client, ep Endpoint) (T, error) {
	var zero T

	body, err := c.get(ctx, ep)
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.Warn().Str("path", ep.Path).Err(err).Msg("decode failed")
		return zero, apierr.Decode(ep.Path, err)
	}
	return out, nil
}

// get sends the request and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, ep Endpoint) (_ []byte, err error) {
	url := c.baseURL + ep.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apierr.IO(ep.Path, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Str("path", ep.Path).Err(err).Msg("request failed")
		return nil, apierr.IO(ep.Path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = apierr.IO(ep.Path, fmt.Errorf("failed to close response body: %w", closeErr))
		}
	}()

	c.logger.Debug().
		Str("method", http.MethodGet).
		Str("url", c.baseURL+ep.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", c.now().Sub(start)).
		Bool("authenticated", c.apiKey != "").
		Msg("api request")

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The body is diagnostic context only; a read failure leaves it empty.
		if readErr != nil {
			body = nil
		}
		classified := apierr.Classify(resp.StatusCode, strings.TrimSpace(string(body)), c.apiKey != "")
		c.logger.Warn().
			Str("path", ep.Path).
			Int("status", resp.StatusCode).
			Stringer("kind", classified.Kind).
			Msg("api error")
		return nil, classified
	}

	if readErr != nil {
		return nil, apierr.IO(ep.Path, fmt.Errorf("failed to read response: %w", readErr))
	}
	if len(body) > maxResponseSize {
		return nil, apierr.IO(ep.Path, fmt.Errorf("response exceeds %d bytes", maxResponseSize))
	}
	return body, nil
}
