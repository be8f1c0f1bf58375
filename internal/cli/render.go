package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/pipewatch/internal/config"
	"github.com/rshade/pipewatch/internal/dashboard"
	"github.com/rshade/pipewatch/internal/table"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// isValidOutputFormat reports whether format is one the listing commands support.
func isValidOutputFormat(format string) bool {
	switch format {
	case config.OutputTable, config.OutputJSON, config.OutputNDJSON:
		return true
	default:
		return false
	}
}

func renderList[T any](cmd *cobra.Command, format string, view listView[T]) error {
	w := cmd.OutOrStdout()
	switch format {
	case config.OutputJSON:
		return renderListJSON(w, view)
	case config.OutputNDJSON:
		err := renderListNDJSON(w, view)
		// Consumers like `head -n 5` close the pipe early.
		if isBrokenPipe(err) {
			return nil
		}
		return err
	default:
		return renderListTable(w, view)
	}
}

// renderListTable writes a header with the sort indicator, the rows and a page footer.
func renderListTable[T any](w io.Writer, view listView[T]) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	headers := make([]string, len(view.columns))
	for i, col := range view.columns {
		headers[i] = strings.ToUpper(col.Title)
		if view.sort.Active() && view.sort.Key == col.Key {
			headers[i] += " " + view.sort.Direction.Indicator()
		}
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, row := range view.rows {
		fmt.Fprintln(tw, strings.Join(view.cells(row), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	var footer string
	if view.pagination != nil {
		footer = pageFooter(*view.pagination)
	} else {
		footer = fmt.Sprintf("All %d items", len(view.rows))
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", footer); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}

// pageFooter renders "Page x of y (n items)". An empty listing reads as page 1 of 1.
func pageFooter(meta table.PaginationMeta) string {
	return fmt.Sprintf("Page %d of %d (%d items)", meta.CurrentPage, max(meta.TotalPages, 1), meta.TotalItems)
}

type listJSONOutput[T any] struct {
	Source     dashboard.Source      `json:"source"`
	AsOf       *time.Time            `json:"as_of,omitempty"`
	Sort       *table.SortSpec       `json:"sort,omitempty"`
	Pagination *table.PaginationMeta `json:"pagination,omitempty"`
	Data       []T                   `json:"data"`
}

func renderListJSON[T any](w io.Writer, view listView[T]) error {
	output := listJSONOutput[T]{
		Source:     view.source,
		Pagination: view.pagination,
		Data:       view.rows,
	}
	if output.Data == nil {
		output.Data = []T{}
	}
	if !view.asOf.IsZero() {
		asOf := view.asOf.UTC()
		output.AsOf = &asOf
	}
	if view.sort.Active() {
		output.Sort = &view.sort
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

type ndjsonSummary struct {
	Type       string                `json:"type"`
	Source     dashboard.Source      `json:"source"`
	Count      int                   `json:"count"`
	Pagination *table.PaginationMeta `json:"pagination,omitempty"`
}

// renderListNDJSON writes a summary line with type "summary", then one row per line.
func renderListNDJSON[T any](w io.Writer, view listView[T]) error {
	encoder := json.NewEncoder(w)
	summary := ndjsonSummary{
		Type:       "summary",
		Source:     view.source,
		Count:      len(view.rows),
		Pagination: view.pagination,
	}
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("encoding NDJSON summary: %w", err)
	}
	for _, row := range view.rows {
		if err := encoder.Encode(row); err != nil {
			return fmt.Errorf("encoding NDJSON row: %w", err)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// isBrokenPipe checks if an error is a broken pipe error (SIGPIPE).
func isBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE
	}
	return strings.Contains(err.Error(), "broken pipe")
}

// isTerminalWriter reports whether the command writes to an interactive terminal.
func isTerminalWriter(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f)
}
