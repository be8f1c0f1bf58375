package dashboard

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	timeLayout  = "2006-01-02 15:04"
	placeholder = "-"
)

// Formatter renders model values as table cells.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter that groups digits per tag.
func NewFormatter(tag language.Tag) Formatter {
	return Formatter{printer: message.NewPrinter(tag)}
}

// PipelineCells returns p's cells in PipelineColumns order.
func (f Formatter) PipelineCells(p Pipeline) []string {
	return []string{
		p.ID,
		p.Name,
		p.Device,
		p.Status,
		p.Stage,
		f.printer.Sprintf("%.1f", p.Throughput),
		f.printer.Sprintf("%d", p.ErrorCount),
		formatTime(p.LastRunAt),
		formatString(p.Owner),
	}
}

// DeviceCells returns d's cells in DeviceColumns order.
func (f Formatter) DeviceCells(d Device) []string {
	return []string{
		d.ID,
		d.Name,
		d.Site,
		d.Status,
		d.Firmware,
		f.printer.Sprintf("%d", d.PipelineCount),
		formatTime(d.LastSeen),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return placeholder
	}
	return t.UTC().Format(timeLayout)
}

func formatString(s *string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	return *s
}
