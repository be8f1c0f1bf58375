package dashboard_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rshade/pipewatch/internal/dashboard"
	"github.com/rshade/pipewatch/internal/table"
)

func TestSummarize(t *testing.T) {
	pipelines := []dashboard.Pipeline{
		{Status: dashboard.PipelineRunning, Throughput: 100, ErrorCount: 1},
		{Status: dashboard.PipelineRunning, Throughput: 50},
		{Status: dashboard.PipelineFailed, ErrorCount: 4},
		{Status: dashboard.PipelineQueued},
		{Status: dashboard.PipelineIdle, Throughput: 10},
	}

	got := dashboard.Summarize(pipelines)

	assert.Equal(t, dashboard.Summary{
		Total:         5,
		Running:       2,
		Failed:        1,
		Queued:        1,
		AvgThroughput: 32,
		TotalErrors:   5,
	}, got)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, dashboard.Summary{}, dashboard.Summarize(nil))
}

func TestSummary_Cards(t *testing.T) {
	s := dashboard.Summary{Total: 1200, Running: 3, AvgThroughput: 1234.56, TotalErrors: 7}

	cards := s.Cards(language.English)
	require.Len(t, cards, 6)
	assert.Equal(t, dashboard.StatCard{Label: "Pipelines", Value: "1,200"}, cards[0])
	assert.Equal(t, "1,234.6 rec/s", cards[4].Value)

	de := s.Cards(language.German)
	assert.Equal(t, "1.200", de[0].Value)
}

func TestFields_MatchColumns(t *testing.T) {
	colKeys := func(cols []dashboard.Column) []string {
		keys := make([]string, len(cols))
		for i, c := range cols {
			keys[i] = c.Key
		}
		sort.Strings(keys)
		return keys
	}

	assert.Equal(t, dashboard.PipelineFields().Keys(), colKeys(dashboard.PipelineColumns()))
	assert.Equal(t, dashboard.DeviceFields().Keys(), colKeys(dashboard.DeviceColumns()))
}

func TestPipelineFields_SortMockData(t *testing.T) {
	ctrl := table.New(dashboard.MockPipelines(), dashboard.PipelineFields(), table.WithPageSize(100))

	ctrl.ToggleSort("throughput")
	ctrl.ToggleSort("throughput")
	rows := ctrl.CurrentPageRows()
	assert.Equal(t, "pl-004", rows[0].ID)

	ctrl.ToggleSort("owner")
	rows = ctrl.CurrentPageRows()
	last := rows[len(rows)-1]
	assert.Nil(t, last.Owner)

	ctrl.ToggleSort("last_run")
	rows = ctrl.CurrentPageRows()
	assert.Nil(t, rows[len(rows)-1].LastRunAt)
	assert.NotNil(t, rows[0].LastRunAt)
}

func TestFormatter(t *testing.T) {
	f := dashboard.NewFormatter(language.English)

	cells := f.PipelineCells(dashboard.MockPipelines()[3])
	require.Len(t, cells, len(dashboard.PipelineColumns()))
	assert.Equal(t, "5,420.0", cells[5])
	assert.Equal(t, "-", cells[8])

	dev := dashboard.MockDevices()[6]
	dcells := f.DeviceCells(dev)
	require.Len(t, dcells, len(dashboard.DeviceColumns()))
	assert.Equal(t, "-", dcells[6])
	assert.Equal(t, "0", dcells[5])
}
