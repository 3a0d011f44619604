package models

import (
	"fmt"

	"github.com/panbanda/plexity/pkg/ast"
)

// NotApplicable is the rendering of an undefined metric.
const NotApplicable = "n/a"

// Scorecard is the structural-complexity summary of one syntax tree.
// PlexityScore is the sum of every counted node's depth, AverageDepth is
// nil when NodeCount is zero, and Cyclomatic is DecisionCount + 1.
type Scorecard struct {
	NodeCount     uint64   `json:"node_count" yaml:"node_count" toon:"node_count"`
	MaxDepth      uint64   `json:"max_depth" yaml:"max_depth" toon:"max_depth"`
	PlexityScore  uint64   `json:"plexity_score" yaml:"plexity_score" toon:"plexity_score"`
	AverageDepth  *float64 `json:"average_depth" yaml:"average_depth" toon:"average_depth"`
	DecisionCount uint64   `json:"decision_count" yaml:"decision_count" toon:"decision_count"`
	Cyclomatic    uint64   `json:"cyclomatic" yaml:"cyclomatic" toon:"cyclomatic"`
}

// Average returns the average depth and whether it is defined.
func (s Scorecard) Average() (float64, bool) {
	if s.AverageDepth == nil {
		return 0, false
	}
	return *s.AverageDepth, true
}

// AverageString formats the average depth with two decimals, or n/a.
func (s Scorecard) AverageString() string {
	avg, ok := s.Average()
	if !ok {
		return NotApplicable
	}
	return fmt.Sprintf("%.2f", avg)
}

// Equal compares two scorecards field by field, including the average.
func (s Scorecard) Equal(o Scorecard) bool {
	if s.NodeCount != o.NodeCount || s.MaxDepth != o.MaxDepth ||
		s.PlexityScore != o.PlexityScore || s.DecisionCount != o.DecisionCount ||
		s.Cyclomatic != o.Cyclomatic {
		return false
	}
	a, aok := s.Average()
	b, bok := o.Average()
	return aok == bok && a == b
}

// DepthProfile describes how nodes are distributed across depths.
type DepthProfile struct {
	Histogram []uint64 `json:"histogram" yaml:"histogram" toon:"histogram"` // index = depth
	Mean      float64  `json:"mean" yaml:"mean" toon:"mean"`
	StdDev    float64  `json:"std_dev" yaml:"std_dev" toon:"std_dev"`
}

// Visit is one counted node in traversal order. Index is 1-based and
// MaxDepth is the running maximum including this node.
type Visit struct {
	Index    uint64    `json:"index" yaml:"index" toon:"index"`
	Depth    uint64    `json:"depth" yaml:"depth" toon:"depth"`
	MaxDepth uint64    `json:"max_depth" yaml:"max_depth" toon:"max_depth"`
	Kind     string    `json:"kind" yaml:"kind" toon:"kind"`
	Range    ast.Range `json:"range" yaml:"range" toon:"range"`
	Decision bool      `json:"decision" yaml:"decision" toon:"decision"`
	Error    bool      `json:"error,omitempty" yaml:"error,omitempty" toon:"error,omitempty"`
}

// PlexityReport is the full result of scoring one file.
type PlexityReport struct {
	Path        string       `json:"path" yaml:"path" toon:"path"`
	Language    string       `json:"language" yaml:"language" toon:"language"`
	ErrorPolicy string       `json:"error_policy" yaml:"error_policy" toon:"error_policy"`
	ErrorNodes  uint64       `json:"error_nodes" yaml:"error_nodes" toon:"error_nodes"`
	Scorecard   Scorecard    `json:"scorecard" yaml:"scorecard" toon:"scorecard"`
	Profile     DepthProfile `json:"profile" yaml:"profile" toon:"profile"`
	Trace       []Visit      `json:"trace,omitempty" yaml:"trace,omitempty" toon:"trace,omitempty"`
}

// HasErrors reports whether the parser had to recover from syntax errors.
func (r *PlexityReport) HasErrors() bool {
	return r.ErrorNodes > 0
}
