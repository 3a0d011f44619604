package output

import (
	"fmt"
	"strconv"

	"github.com/panbanda/plexity/pkg/models"
)

// ScorecardTitle heads every rendered scorecard.
const ScorecardTitle = "PLEXITY SCORECARD"

// NewScorecardReport builds the renderable form of a scored file. Structured
// formats serialize the report itself.
func NewScorecardReport(r *models.PlexityReport) *Report {
	rep := &Report{
		Title: ScorecardTitle,
		Data:  r,
	}
	if r.Path != "" {
		rep.Subtitle = fmt.Sprintf("%s (%s)", r.Path, r.Language)
	}

	rep.Sections = append(rep.Sections, metricsTable(r.Scorecard))

	if r.HasErrors() {
		rep.Sections = append(rep.Sections, &Section{
			Title: "Warnings",
			Content: fmt.Sprintf("%d syntax error node(s) found; error policy %q applied.",
				r.ErrorNodes, r.ErrorPolicy),
		})
	}

	if len(r.Profile.Histogram) > 0 {
		rep.Sections = append(rep.Sections, profileTable(r.Scorecard.NodeCount, r.Profile))
	}

	if len(r.Trace) > 0 {
		rep.Sections = append(rep.Sections, traceTable(r.Trace))
	}

	return rep
}

func metricsTable(s models.Scorecard) *Table {
	rows := [][]string{
		{"Node count", formatUint(s.NodeCount)},
		{"Max depth", formatUint(s.MaxDepth)},
		{"Plexity score", formatUint(s.PlexityScore)},
		{"Average depth", s.AverageString()},
		{"Decision points", formatUint(s.DecisionCount)},
		{"Cyclomatic estimate", formatUint(s.Cyclomatic)},
	}
	return NewTable("Metrics", []string{"Metric", "Value"}, rows, nil, s)
}

func profileTable(total uint64, p models.DepthProfile) *Table {
	rows := make([][]string, 0, len(p.Histogram))
	for depth, n := range p.Histogram {
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total) * 100
		}
		rows = append(rows, []string{
			strconv.Itoa(depth),
			formatUint(n),
			fmt.Sprintf("%.1f%%", share),
		})
	}
	footer := []string{"", fmt.Sprintf("mean %.2f", p.Mean), fmt.Sprintf("stddev %.2f", p.StdDev)}
	return NewTable("Depth Profile", []string{"Depth", "Nodes", "Share"}, rows, footer, p)
}

func traceTable(trace []models.Visit) *Table {
	rows := make([][]string, 0, len(trace))
	for _, v := range trace {
		decision := ""
		if v.Decision {
			decision = "yes"
		}
		kind := v.Kind
		if v.Error {
			kind += " (error)"
		}
		rows = append(rows, []string{
			formatUint(v.Index),
			formatUint(v.Depth),
			formatUint(v.MaxDepth),
			kind,
			v.Range.String(),
			decision,
		})
	}
	return NewTable("Traversal Trace",
		[]string{"#", "Depth", "Max", "Kind", "Range", "Decision"}, rows, nil, trace)
}

func formatUint(n uint64) string {
	return strconv.FormatUint(n, 10)
}
