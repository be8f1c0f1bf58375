// Package health tracks whether the pipewatch server is reachable and serves the
// local health endpoint that the tracking is based on.
package health

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Status is the reachability of the server as last observed.
type Status string

// Poller states. StatusChecking holds until the first probe completes.
const (
	StatusChecking Status = "checking"
	StatusOnline   Status = "online"
	StatusOffline  Status = "offline"
	StatusError    Status = "error"
)

// Defaults for New.
const (
	DefaultInterval = 60 * time.Second
	DefaultTimeout  = 3 * time.Second
)

// State is what consumers render: the status and whether live data is unavailable.
//
// IsUsingMockData is true for every status except online. It means the live API
// should not be trusted, not that mock rows are shown: a dashboard.Loader may still
// serve a saved snapshot, and its Result.Source names the rows actually returned.
type State struct {
	ServerStatus    Status    `json:"server_status"`
	IsUsingMockData bool      `json:"is_using_mock_data"`
	CheckedAt       time.Time `json:"checked_at,omitzero"`
}

// Poller probes a health URL on an interval. Status reads are safe from any goroutine.
type Poller struct {
	url      string
	interval time.Duration
	timeout  time.Duration
	client   *http.Client
	logger   zerolog.Logger
	notify   func(State)
	now      func() time.Time

	mu    sync.RWMutex
	state State

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option customizes a Poller.
type Option func(*Poller)

// WithInterval sets the time between probes. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTimeout bounds each probe. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithHTTPClient replaces the client used for probes.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Poller) {
		p.client = client
	}
}

// WithLogger sets the poller logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Poller) {
		p.logger = logger
	}
}

// WithNotify registers fn to be called after every status change, outside any lock.
func WithNotify(fn func(State)) Option {
	return func(p *Poller) {
		p.notify = fn
	}
}

// New returns a Poller for url in the checking state. Nothing runs until Start or Check.
func New(url string, opts ...Option) *Poller {
	p := &Poller{
		url:      url,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
		client:   &http.Client{},
		logger:   zerolog.Nop(),
		now:      time.Now,
		state:    State{ServerStatus: StatusChecking, IsUsingMockData: true},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start probes immediately and then every interval until ctx is cancelled or Stop
// is called. Calling Start on a running poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.Check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// Stop cancels the polling loop and waits for it to exit.
func (p *Poller) Stop() {
	p.runMu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Check runs one probe, records the result and returns it. If ctx itself is
// cancelled mid-probe the previous state is kept.
func (p *Poller) Check(ctx context.Context) Status {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	logger := p.logger.With().Str("component", "health").Str("url", p.url).Logger()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, p.url, nil)
	if err != nil {
		logger.Error().Err(err).Msg("cannot build health probe")
		return p.record(StatusError)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			logger.Debug().Err(err).Msg("health probe cancelled")
			return p.Status()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Debug().Dur("timeout", p.timeout).Msg("health probe timed out")
		} else {
			logger.Warn().Err(err).Msg("health probe failed")
		}
		return p.record(StatusOffline)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return p.record(StatusOnline)
	}
	logger.Debug().Int("status", resp.StatusCode).Msg("health probe returned non-2xx")
	return p.record(StatusOffline)
}

func (p *Poller) record(status Status) Status {
	p.mu.Lock()
	changed := p.state.ServerStatus != status
	p.state = State{
		ServerStatus:    status,
		IsUsingMockData: status != StatusOnline,
		CheckedAt:       p.now(),
	}
	snapshot := p.state
	p.mu.Unlock()

	if changed {
		p.logger.Info().
			Str("component", "health").
			Str("status", string(status)).
			Msg("server status changed")
		if p.notify != nil {
			p.notify(snapshot)
		}
	}
	return status
}

// Status returns the last observed status.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.ServerStatus
}

// IsUsingMockData reports whether consumers should stop using live data, which is
// the case for every status except online. Whether a snapshot or mock rows replace
// it is decided by the loader.
func (p *Poller) IsUsingMockData() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.IsUsingMockData
}

// Snapshot returns the full current state.
func (p *Poller) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}
