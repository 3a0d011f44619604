package plexity

import (
	"fmt"
	"strings"

	"github.com/panbanda/plexity/pkg/ast"
	"github.com/panbanda/plexity/pkg/models"
)

// ErrorPolicy controls how parser recovery nodes are scored.
type ErrorPolicy string

const (
	// ErrorsCount treats recovery nodes like any other node.
	ErrorsCount ErrorPolicy = "count"
	// ErrorsSkipDecisions counts recovery nodes but never as decision points.
	ErrorsSkipDecisions ErrorPolicy = "skip-decisions"
	// ErrorsExclude drops recovery nodes and their subtrees entirely.
	ErrorsExclude ErrorPolicy = "exclude"
)

// ParseErrorPolicy resolves a policy name. An empty name means ErrorsCount.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ErrorsCount, nil
	case ErrorsCount, ErrorsSkipDecisions, ErrorsExclude:
		return p, nil
	default:
		return "", fmt.Errorf("unknown error node policy %q (want count, skip-decisions or exclude)", s)
	}
}

// State holds the running aggregates of one traversal.
type State struct {
	NodeCount     uint64
	MaxDepth      uint64
	WeightedSum   uint64
	DecisionCount uint64
	ErrorNodes    uint64 // recovery nodes seen, whatever the policy
}

// Visitor observes every node that contributes to the aggregates.
type Visitor func(v models.Visit)

// Traverser walks a syntax tree and accumulates State.
type Traverser struct {
	classifier *Classifier
	policy     ErrorPolicy
	visit      Visitor
}

// NewTraverser creates a traverser. A nil classifier counts no decisions.
func NewTraverser(classifier *Classifier, policy ErrorPolicy, visit Visitor) *Traverser {
	if policy == "" {
		policy = ErrorsCount
	}
	return &Traverser{classifier: classifier, policy: policy, visit: visit}
}

// Traverse visits every descendant of node in pre-order, source order,
// with node's direct children at the given depth, and returns state
// updated with their contributions. node itself is not counted.
//
// The walk runs on ast.Walk's explicit stack, so tree height does not
// bound goroutine stack usage.
func (t *Traverser) Traverse(node ast.Node, depth uint64, state State) State {
	ast.Walk(node, func(n ast.Node, rel int) bool {
		d := depth + uint64(rel)

		isErr := ast.IsErrorNode(n)
		if isErr {
			state.ErrorNodes++
			if t.policy == ErrorsExclude {
				return false
			}
		}

		state.NodeCount++
		if d > state.MaxDepth {
			state.MaxDepth = d
		}
		kind := n.Kind()
		decision := t.classifier.IsDecisionPoint(kind) && !(isErr && t.policy == ErrorsSkipDecisions)
		if decision {
			state.DecisionCount++
		}
		state.WeightedSum += d

		if t.visit != nil {
			t.visit(models.Visit{
				Index:    state.NodeCount,
				Depth:    d,
				MaxDepth: state.MaxDepth,
				Kind:     kind,
				Range:    n.Range(),
				Decision: decision,
				Error:    isErr,
			})
		}
		return true
	})

	return state
}
