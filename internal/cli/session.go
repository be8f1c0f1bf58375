package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/rshade/pipewatch/internal/cache"
	"github.com/rshade/pipewatch/internal/config"
	"github.com/rshade/pipewatch/internal/dashboard"
	"github.com/rshade/pipewatch/internal/health"
	"github.com/rshade/pipewatch/internal/logging"
)

// session bundles the collaborators the client-side commands share: the dashboard
// client, a health poller for the server and a loader backed by the snapshot cache.
type session struct {
	cfg    *config.Config
	client *dashboard.Client
	poller *health.Poller
	loader *dashboard.Loader
	locale language.Tag
}

// newSession builds a session from the global config and the --server flag.
// An unusable snapshot cache is logged and skipped.
func newSession(cmd *cobra.Command, opts ...health.Option) *session {
	cfg := *config.GetGlobalConfig()
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.Dashboard.ServerURL = strings.TrimRight(server, "/")
		cfg.Health.URL = ""
	}

	log := logging.FromContext(cmd.Context()).With().Str("server", cfg.Dashboard.ServerURL).Logger()

	client := dashboard.NewClient(cfg.Dashboard.ServerURL, dashboard.WithClientLogger(log))

	pollerOpts := []health.Option{
		health.WithInterval(cfg.Health.Interval),
		health.WithTimeout(cfg.Health.Timeout),
		health.WithLogger(log),
	}
	poller := health.New(cfg.HealthURL(), append(pollerOpts, opts...)...)

	loaderOpts := []dashboard.LoaderOption{dashboard.WithLoaderLogger(log)}
	if store := openSnapshotStore(&cfg); store != nil {
		loaderOpts = append(loaderOpts, dashboard.WithSnapshots(store, cfg.Dashboard.ServerURL))
	}

	return &session{
		cfg:    &cfg,
		client: client,
		poller: poller,
		loader: dashboard.NewLoader(client, poller, loaderOpts...),
		locale: parseLocale(cfg.Dashboard.Locale),
	}
}

func openSnapshotStore(cfg *config.Config) *cache.FileStore {
	enabled := cache.EnabledFromEnv(cfg.Dashboard.Cache.Enabled)
	if !enabled {
		return nil
	}

	dir := cfg.Dashboard.Cache.Directory
	if dir == "" {
		var err error
		if dir, err = config.GetCacheDir(); err != nil {
			logger.Warn().Err(err).Msg("snapshot cache unavailable")
			return nil
		}
	}

	store, err := cache.NewFileStore(dir, enabled, cache.TTLFromEnv(cfg.Dashboard.Cache.TTLSeconds))
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("snapshot cache unavailable")
		return nil
	}
	if err = store.CleanupExpired(); err != nil {
		logger.Debug().Err(err).Msg("cleaning expired snapshots")
	}
	return store
}

func parseLocale(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		logger.Warn().Str("locale", s).Msg("unknown locale, using en")
		return language.English
	}
	return tag
}
