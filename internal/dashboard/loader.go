package dashboard

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/pipewatch/internal/cache"
	"github.com/rshade/pipewatch/internal/health"
)

// Source says where a listing came from.
type Source string

// Listing sources.
const (
	SourceLive     Source = "live"
	SourceSnapshot Source = "snapshot"
	SourceMock     Source = "mock"
)

// Dataset names, used in snapshot keys.
const (
	DatasetPipelines = "pipelines"
	DatasetDevices   = "devices"
)

// StatusReader reports the last observed server status. *health.Poller implements it.
type StatusReader interface {
	Status() health.Status
}

// Fetcher fetches live listings. *Client implements it.
type Fetcher interface {
	Pipelines(ctx context.Context, query url.Values) ([]Pipeline, error)
	Devices(ctx context.Context, query url.Values) ([]Device, error)
}

// Result is one loaded listing.
type Result[T any] struct {
	Rows   []T
	Source Source
	// AsOf is when the rows were fetched; zero for mock data.
	AsOf time.Time
	// LiveErr is the live fetch failure that forced a fallback, if any.
	LiveErr error
}

// Dataset holds both listings.
type Dataset struct {
	Pipelines Result[Pipeline]
	Devices   Result[Device]
}

// Loader picks the source for each listing from the server status: live when online,
// else a fresh snapshot, else mock data. A failed live fetch falls back the same way.
type Loader struct {
	fetcher Fetcher
	status  StatusReader
	store   *cache.FileStore
	keyBase string
	logger  zerolog.Logger
	now     func() time.Time
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithSnapshots stores each live listing in store under keys derived from keyBase
// (normally the server URL) and reads them back as the first fallback.
func WithSnapshots(store *cache.FileStore, keyBase string) LoaderOption {
	return func(l *Loader) {
		l.store = store
		l.keyBase = keyBase
	}
}

// WithLoaderLogger sets the loader logger.
func WithLoaderLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader returns a Loader. A nil status is treated as always online.
func NewLoader(fetcher Fetcher, status StatusReader, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher: fetcher,
		status:  status,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Pipelines loads the pipeline listing.
func (l *Loader) Pipelines(ctx context.Context) Result[Pipeline] {
	return load(ctx, l, DatasetPipelines, func(ctx context.Context) ([]Pipeline, error) {
		return l.fetcher.Pipelines(ctx, nil)
	}, MockPipelines)
}

// Devices loads the device listing.
func (l *Loader) Devices(ctx context.Context) Result[Device] {
	return load(ctx, l, DatasetDevices, func(ctx context.Context) ([]Device, error) {
		return l.fetcher.Devices(ctx, nil)
	}, MockDevices)
}

// LoadAll loads both listings concurrently. It only fails when ctx is cancelled.
func (l *Loader) LoadAll(ctx context.Context) (Dataset, error) {
	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ds.Pipelines = l.Pipelines(gctx)
		return gctx.Err()
	})
	g.Go(func() error {
		ds.Devices = l.Devices(gctx)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func (l *Loader) online() bool {
	return l.status == nil || l.status.Status() == health.StatusOnline
}

func load[T any](
	ctx context.Context,
	l *Loader,
	dataset string,
	fetch func(context.Context) ([]T, error),
	mock func() []T,
) Result[T] {
	logger := l.logger.With().Str("component", "dashboard").Str("dataset", dataset).Logger()

	var liveErr error
	if l.online() {
		rows, err := fetch(ctx)
		if err == nil {
			l.saveSnapshot(logger, dataset, rows)
			return Result[T]{Rows: rows, Source: SourceLive, AsOf: l.now()}
		}
		liveErr = err
		logger.Warn().Err(err).Msg("live fetch failed, falling back")
	}

	if rows, asOf, ok := loadSnapshot[T](l, logger, dataset); ok {
		return Result[T]{Rows: rows, Source: SourceSnapshot, AsOf: asOf, LiveErr: liveErr}
	}

	logger.Debug().Msg("using mock data")
	return Result[T]{Rows: mock(), Source: SourceMock, LiveErr: liveErr}
}

func (l *Loader) snapshotKey(dataset string) string {
	return cache.Key(dataset, l.keyBase)
}

func (l *Loader) saveSnapshot(logger zerolog.Logger, dataset string, rows any) {
	if l.store == nil || !l.store.IsEnabled() {
		return
	}
	if err := l.store.SetJSON(l.snapshotKey(dataset), rows); err != nil {
		logger.Warn().Err(err).Msg("saving snapshot")
	}
}

func loadSnapshot[T any](l *Loader, logger zerolog.Logger, dataset string) ([]T, time.Time, bool) {
	if l.store == nil || !l.store.IsEnabled() {
		return nil, time.Time{}, false
	}

	entry, err := l.store.Get(l.snapshotKey(dataset))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheExpired) {
			logger.Warn().Err(err).Msg("reading snapshot")
		}
		return nil, time.Time{}, false
	}

	var rows []T
	if err = entry.Decode(&rows); err != nil {
		logger.Warn().Err(err).Msg("decoding snapshot")
		return nil, time.Time{}, false
	}
	return rows, entry.CreatedAt, true
}
