package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/logger"
	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/pipeline"
)

// Summary is what a scrape run reports on stdout.
type Summary struct {
	Report *pipeline.Report
	Output string

	// Unflushed is the number of rows lost to a sink failure.
	Unflushed int

	Metrics logger.Snapshot
}

// WriteSummary renders the run totals, the issues and the fetch metrics.
func WriteSummary(w io.Writer, s *Summary) error {
	r := s.Report

	totals := table.NewWriter()
	totals.SetOutputMirror(w)
	totals.AppendHeader(table.Row{"Tournament", "Series", "Games", "Rows", "Issues", "Output"})
	output := s.Output
	if s.Unflushed > 0 {
		output = fmt.Sprintf("%s (FAILED, %d rows unflushed)", s.Output, s.Unflushed)
	}
	totals.AppendRow(table.Row{r.Tournament, r.Series, r.Games, len(r.Rows), len(r.Issues), output})
	totals.SetStyle(table.StyleRounded)
	totals.Render()

	if len(r.Issues) > 0 {
		counts := r.IssuesByKind()
		byKind := table.NewWriter()
		byKind.SetOutputMirror(w)
		byKind.AppendHeader(table.Row{"Kind", "Count"})
		for _, kind := range r.Kinds() {
			byKind.AppendRow(table.Row{kind, counts[kind]})
		}
		byKind.SetStyle(table.StyleRounded)
		byKind.Render()

		issues := table.NewWriter()
		issues.SetOutputMirror(w)
		issues.AppendHeader(table.Row{"Kind", "URL", "Error"})
		for _, issue := range r.Issues {
			issues.AppendRow(table.Row{issue.Kind, issue.URL, issue.Err})
		}
		issues.SetStyle(table.StyleRounded)
		issues.Render()
	}

	writeMetrics(w, s.Metrics)
	return nil
}

func writeMetrics(w io.Writer, snap logger.Snapshot) {
	if len(snap.Counters) == 0 && len(snap.Timings) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Metric", "Value"})

	names := make([]string, 0, len(snap.Counters))
	for name := range snap.Counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.AppendRow(table.Row{name, snap.Counters[name]})
	}

	names = names[:0]
	for name := range snap.Timings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		st := snap.Timings[name]
		t.AppendRow(table.Row{name, fmt.Sprintf("n=%d avg=%s max=%s", st.Count, st.Average, st.Max)})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
