package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Local API paths served by "pipewatch serve".
const (
	PipelinesPath = "/api/pipelines"
	DevicesPath   = "/api/devices"

	defaultClientTimeout = 35 * time.Second
	maxErrorBody         = 4096
)

// APIError is a non-2xx response from the pipewatch server. For a gateway failure
// Message carries the upstream error from the JSON envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client fetches listings from a pipewatch server.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithClientLogger sets the client logger.
func WithClientLogger(logger zerolog.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// NewClient returns a client for the server at baseURL, e.g. http://localhost:3000.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultClientTimeout},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Pipelines fetches the pipeline listing, forwarding query to the server.
func (c *Client) Pipelines(ctx context.Context, query url.Values) ([]Pipeline, error) {
	body, err := c.get(ctx, PipelinesPath, query)
	if err != nil {
		return nil, fmt.Errorf("fetching pipelines: %w", err)
	}
	pipelines, err := DecodeList[Pipeline](body)
	if err != nil {
		return nil, fmt.Errorf("fetching pipelines: %w", err)
	}
	return pipelines, nil
}

// Devices fetches the device listing, forwarding query to the server.
func (c *Client) Devices(ctx context.Context, query url.Values) ([]Device, error) {
	body, err := c.get(ctx, DevicesPath, query)
	if err != nil {
		return nil, fmt.Errorf("fetching devices: %w", err)
	}
	devices, err := DecodeList[Device](body)
	if err != nil {
		return nil, fmt.Errorf("fetching devices: %w", err)
	}
	return devices, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("component", "dashboard").
		Str("url", target).
		Msg("fetching listing")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newAPIError(resp.StatusCode, raw)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}

// newAPIError prefers the "message" field of a JSON error envelope, then the raw
// body, then the status text.
func newAPIError(status int, raw []byte) *APIError {
	var env struct {
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &env) == nil && env.Message != "" {
		msg = env.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}
