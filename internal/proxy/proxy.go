// Package proxy forwards dashboard API requests to the upstream edge API.
//
// Each Route maps one local path to one upstream path. The gateway relays the
// upstream status, body and Content-Type unchanged and turns any transport
// failure into a single 502 JSON envelope.
package proxy

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each upstream request.
const DefaultTimeout = 30 * time.Second

// timestampLayout is RFC 3339 with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Route maps a local path onto an upstream path.
type Route struct {
	Path         string
	UpstreamPath string
}

// Config configures a Gateway.
type Config struct {
	// Origin is scheme://host[:port] of the upstream API.
	Origin string
	// VerifyTLS turns certificate verification on. Off by default.
	VerifyTLS bool
	Timeout   time.Duration
}

// ErrorEnvelope is the body written when the upstream cannot be reached.
type ErrorEnvelope struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Message       string `json:"message"`
	Timestamp     string `json:"timestamp"`
}

// Gateway relays GET requests to the upstream origin.
type Gateway struct {
	origin string
	client *http.Client
	logger zerolog.Logger
	now    func() time.Time
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default client. Mostly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		g.client = client
	}
}

// WithLogger sets the gateway logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithClock overrides the time source used for error envelope timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}

// New validates cfg.Origin and builds a Gateway.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("parsing upstream origin: %w", err)
	}
	if origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("upstream origin %q must include scheme and host", cfg.Origin)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !cfg.VerifyTLS, //nolint:gosec // Edge APIs commonly serve self-signed certificates.
		MinVersion:         tls.VersionTLS12,
	}

	g := &Gateway{
		origin: strings.TrimRight(origin.String(), "/"),
		client: &http.Client{Transport: transport, Timeout: timeout},
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// UpstreamURL joins the origin, upstreamPath and rawQuery. No "?" is added for an
// empty query.
func (g *Gateway) UpstreamURL(upstreamPath, rawQuery string) string {
	target := g.origin + upstreamPath
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

// Handler returns the handler that forwards requests for route.
func (g *Gateway) Handler(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.forward(w, r, route)
	}
}

func (g *Gateway) forward(w http.ResponseWriter, r *http.Request, route Route) {
	target := g.UpstreamURL(route.UpstreamPath, r.URL.RawQuery)
	logger := g.logger.With().
		Str("component", "proxy").
		Str("route", route.Path).
		Str("upstream_url", target).
		Str("request_id", middleware.GetReqID(r.Context())).
		Logger()

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		g.fail(w, logger, fmt.Errorf("building upstream request: %w", err))
		return
	}
	if accept := r.Header.Get("Accept"); accept != "" {
		req.Header.Set("Accept", accept)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.fail(w, logger, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.fail(w, logger, fmt.Errorf("reading upstream body: %w", err))
		return
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("forwarded request")

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err = w.Write(body); err != nil {
		logger.Debug().Err(err).Msg("client went away while relaying body")
	}
}

func (g *Gateway) fail(w http.ResponseWriter, logger zerolog.Logger, err error) {
	logger.Error().Err(err).Msg("upstream request failed")

	envelope := ErrorEnvelope{
		StatusCode:    http.StatusBadGateway,
		StatusMessage: http.StatusText(http.StatusBadGateway),
		Message:       err.Error(),
		Timestamp:     g.now().UTC().Format(timestampLayout),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	if encErr := json.NewEncoder(w).Encode(envelope); encErr != nil {
		logger.Debug().Err(encErr).Msg("writing error envelope")
	}
}
