package dashboard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/pipewatch/internal/dashboard"
	"github.com/rshade/pipewatch/internal/health"
)

func TestBannerText(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	fiveMinAgo := now.Add(-5 * time.Minute)

	tests := []struct {
		name   string
		status health.Status
		source dashboard.Source
		asOf   time.Time
		want   string
	}{
		{name: "online live", status: health.StatusOnline, source: dashboard.SourceLive, asOf: now, want: "online"},
		{name: "offline mock", status: health.StatusOffline, source: dashboard.SourceMock, want: "offline — showing mock data"},
		{name: "offline snapshot", status: health.StatusOffline, source: dashboard.SourceSnapshot, asOf: fiveMinAgo, want: "offline — showing snapshot from 5m ago"},
		{name: "online but fetch failed", status: health.StatusOnline, source: dashboard.SourceMock, want: "online — live fetch failed, showing mock data"},
		{name: "online snapshot", status: health.StatusOnline, source: dashboard.SourceSnapshot, asOf: fiveMinAgo, want: "online — live fetch failed, showing snapshot from 5m ago"},
		{name: "checking", status: health.StatusChecking, source: dashboard.SourceMock, want: "checking server status…"},
		{name: "error", status: health.StatusError, source: dashboard.SourceMock, want: "health check misconfigured — showing mock data"},
		{name: "snapshot without time", status: health.StatusOffline, source: dashboard.SourceSnapshot, want: "offline — showing snapshot from an unknown time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.BannerText(tt.status, tt.source, tt.asOf, now))
		})
	}
}
