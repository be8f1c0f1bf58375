package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/pipewatch/internal/cli/pagination"
	"github.com/rshade/pipewatch/internal/config"
	"github.com/rshade/pipewatch/internal/dashboard"
	"github.com/rshade/pipewatch/internal/table"
)

// listing describes one listable dataset.
type listing[T any] struct {
	name    string
	columns []dashboard.Column
	fields  table.Fields[T]
	load    func(context.Context, *session) dashboard.Result[T]
	cells   func(dashboard.Formatter, T) []string
}

func pipelineListing() listing[dashboard.Pipeline] {
	return listing[dashboard.Pipeline]{
		name:    dashboard.DatasetPipelines,
		columns: dashboard.PipelineColumns(),
		fields:  dashboard.PipelineFields(),
		load: func(ctx context.Context, s *session) dashboard.Result[dashboard.Pipeline] {
			return s.loader.Pipelines(ctx)
		},
		cells: dashboard.Formatter.PipelineCells,
	}
}

func deviceListing() listing[dashboard.Device] {
	return listing[dashboard.Device]{
		name:    dashboard.DatasetDevices,
		columns: dashboard.DeviceColumns(),
		fields:  dashboard.DeviceFields(),
		load: func(ctx context.Context, s *session) dashboard.Result[dashboard.Device] {
			return s.loader.Devices(ctx)
		},
		cells: dashboard.Formatter.DeviceCells,
	}
}

// NewPipelinesCmd creates the pipelines listing command.
func NewPipelinesCmd() *cobra.Command {
	return newListCmd(pipelineListing(), `  # First page of pipelines, unsorted
  pipewatch pipelines

  # Highest throughput first, 5 per page, second page
  pipewatch pipelines --sort throughput:desc --page-size 5 --page 2

  # Everything as JSON
  pipewatch pipelines --all --output json`)
}

// NewDevicesCmd creates the devices listing command.
func NewDevicesCmd() *cobra.Command {
	return newListCmd(deviceListing(), `  # Devices by site
  pipewatch devices --sort site

  # Stream every device, one JSON object per line
  pipewatch devices --all --output ndjson | jq .name`)
}

func newListCmd[T any](l listing[T], example string) *cobra.Command {
	var (
		params       pagination.Params
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:     l.name,
		Short:   "List " + l.name,
		Example: example,
		Long: fmt.Sprintf(`Lists %s from the dashboard server.

The server is probed first. When it is not online, or the live fetch fails, the
last snapshot is shown if it has not expired, otherwise built-in mock data.`, l.name),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, l, params, outputFormat)
		},
	}

	pagination.AddFlags(cmd, &params, strings.Join(l.fields.Keys(), ", "))
	cmd.Flags().StringVar(&outputFormat, "output", "", "output format: table, json or ndjson (default from config)")
	return cmd
}

// listView is what a listing command renders.
type listView[T any] struct {
	columns    []dashboard.Column
	rows       []T
	cells      func(T) []string
	sort       table.SortSpec
	pagination *table.PaginationMeta
	source     dashboard.Source
	asOf       time.Time
}

func runList[T any](cmd *cobra.Command, l listing[T], params pagination.Params, outputFormat string) error {
	if err := params.Validate(l.fields.Keys()); err != nil {
		return err
	}
	format := config.GetOutputFormat(outputFormat)
	if !isValidOutputFormat(format) {
		return fmt.Errorf("unsupported output format: %s", format)
	}

	ctx := cmd.Context()
	s := newSession(cmd)
	s.poller.Check(ctx)
	result := l.load(ctx, s)

	ctrl := table.New(result.Rows, l.fields,
		table.WithPageSize(s.cfg.Dashboard.PageSize),
		table.WithLocale(s.locale))
	if err := params.Apply(ctrl); err != nil {
		return err
	}

	formatter := dashboard.NewFormatter(s.locale)
	view := listView[T]{
		columns: l.columns,
		cells:   func(row T) []string { return l.cells(formatter, row) },
		sort:    ctrl.SortConfig(),
		source:  result.Source,
		asOf:    result.AsOf,
	}
	if params.All {
		view.rows = ctrl.AllSortedRows()
	} else {
		meta := ctrl.PaginationConfig()
		view.rows = ctrl.CurrentPageRows()
		view.pagination = &meta
	}

	if result.Source != dashboard.SourceLive {
		banner := dashboard.BannerText(s.poller.Status(), result.Source, result.AsOf, time.Now())
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), banner)
	}
	logger.Debug().Ctx(ctx).
		Str("dataset", l.name).
		Str("source", string(result.Source)).
		Int("rows", len(view.rows)).
		Msg("listing rendered")

	return renderList(cmd, format, view)
}
