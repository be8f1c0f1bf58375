package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary is the set of numbers shown on the stat cards.
type Summary struct {
	Total         int     `json:"total"`
	Running       int     `json:"running"`
	Failed        int     `json:"failed"`
	Queued        int     `json:"queued"`
	AvgThroughput float64 `json:"avg_throughput"`
	TotalErrors   int     `json:"total_errors"`
}

// Summarize counts pipelines by status and averages throughput over all of them.
func Summarize(pipelines []Pipeline) Summary {
	var s Summary
	var throughput float64

	for _, p := range pipelines {
		s.Total++
		s.TotalErrors += p.ErrorCount
		throughput += p.Throughput

		switch p.Status {
		case PipelineRunning:
			s.Running++
		case PipelineFailed:
			s.Failed++
		case PipelineQueued:
			s.Queued++
		}
	}

	if s.Total > 0 {
		s.AvgThroughput = throughput / float64(s.Total)
	}
	return s
}

// StatCard is one labelled number ready for display.
type StatCard struct {
	Label string
	Value string
}

// Cards formats s for display with locale-aware digit grouping.
func (s Summary) Cards(tag language.Tag) []StatCard {
	p := message.NewPrinter(tag)
	return []StatCard{
		{Label: "Pipelines", Value: p.Sprintf("%d", s.Total)},
		{Label: "Running", Value: p.Sprintf("%d", s.Running)},
		{Label: "Failed", Value: p.Sprintf("%d", s.Failed)},
		{Label: "Queued", Value: p.Sprintf("%d", s.Queued)},
		{Label: "Avg Throughput", Value: p.Sprintf("%.1f rec/s", s.AvgThroughput)},
		{Label: "Errors", Value: p.Sprintf("%d", s.TotalErrors)},
	}
}
