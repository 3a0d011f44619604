package plexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		wantAvg float64
		wantNA  bool
		wantCyc uint64
	}{
		{"empty", State{}, 0, true, 1},
		{"no decisions", State{NodeCount: 4, MaxDepth: 2, WeightedSum: 3}, 0.75, false, 1},
		{"with decisions", State{NodeCount: 10, MaxDepth: 3, WeightedSum: 15, DecisionCount: 4}, 1.5, false, 5},
		{"all at depth zero", State{NodeCount: 3}, 0, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := Summarize(tt.state)

			assert.Equal(t, tt.state.NodeCount, card.NodeCount)
			assert.Equal(t, tt.state.MaxDepth, card.MaxDepth)
			assert.Equal(t, tt.state.WeightedSum, card.PlexityScore)
			assert.Equal(t, tt.state.DecisionCount, card.DecisionCount)
			assert.Equal(t, tt.wantCyc, card.Cyclomatic)
			assert.Equal(t, card.DecisionCount+1, card.Cyclomatic)

			avg, ok := card.Average()
			if tt.wantNA {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.InDelta(t, tt.wantAvg, avg, 1e-9)
		})
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	s := State{NodeCount: 7, MaxDepth: 2, WeightedSum: 7, DecisionCount: 2}
	assert.Equal(t, Summarize(s), Summarize(s))
}
