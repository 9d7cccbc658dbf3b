// Package api is the low-level REST plumbing shared by every Athenaeum
// endpoint group: JSON encoding, error taxonomy, request IDs, and the
// bearer-token transport. It knows nothing about sessions or endpoints -
// higher packages compose it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultTimeout = 15 * time.Second

// Client issues JSON requests against a base URL. It is safe for
// concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOption modifies a Client during construction.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Use this to install
// a transport that attaches bearer tokens (see BearerTransport).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds every request. The default is 15 seconds - no call
// may hang indefinitely, a stuck refresh would otherwise wedge the
// session state.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a client rooted at baseURL.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[NewClient] baseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[NewClient] invalid baseURL")
	}

	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

// RequestOption modifies a single outbound request.
type RequestOption func(*http.Request)

// WithBearer attaches an explicit Authorization header to one request.
// Used by auth endpoints that run outside the session transport.
func WithBearer(accessToken string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}

// Get issues a GET and decodes the response into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, out any, options ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, options...)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, in, out any, options ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, in, out, options...)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, in, out any, options ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, in, out, options...)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, options ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, options...)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, options ...RequestOption) error {
	endpoint, err := c.baseURL.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return errors.Wrapf(err, "[Client.do] invalid path %q", path)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "[Client.do] marshal request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return errors.Wrap(err, "[Client.do] build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range options {
		opt(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return errors.Wrapf(err, "[Client.do] %s %s", method, path)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] read response %s %s", method, path)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newError(resp.StatusCode, respBody)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(ErrMalformedResponse, "[Client.do] %s %s: %v", method, path, err)
	}
	return nil
}
