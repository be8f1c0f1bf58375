package dashboard

import (
	"time"

	"github.com/rshade/pipewatch/internal/cache"
	"github.com/rshade/pipewatch/internal/health"
)

// BannerText is the one-line status shown above the dashboard and by "pipewatch status".
func BannerText(status health.Status, source Source, asOf, now time.Time) string {
	switch status {
	case health.StatusOnline:
		if source == SourceSnapshot {
			return "online — live fetch failed, showing snapshot from " + age(asOf, now)
		}
		if source == SourceMock {
			return "online — live fetch failed, showing mock data"
		}
		return "online"
	case health.StatusChecking:
		return "checking server status…"
	case health.StatusError:
		return "health check misconfigured — showing " + fallbackLabel(source, asOf, now)
	case health.StatusOffline:
		return "offline — showing " + fallbackLabel(source, asOf, now)
	default:
		return string(status)
	}
}

func fallbackLabel(source Source, asOf, now time.Time) string {
	if source == SourceSnapshot {
		return "snapshot from " + age(asOf, now)
	}
	return "mock data"
}

func age(asOf, now time.Time) string {
	if asOf.IsZero() {
		return "an unknown time"
	}
	return cache.FormatDuration(max(now.Sub(asOf), 0)) + " ago"
}
