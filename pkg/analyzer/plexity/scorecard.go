package plexity

import "github.com/panbanda/plexity/pkg/models"

// Summarize derives the scorecard from final traversal state.
func Summarize(state State) models.Scorecard {
	card := models.Scorecard{
		NodeCount:     state.NodeCount,
		MaxDepth:      state.MaxDepth,
		PlexityScore:  state.WeightedSum,
		DecisionCount: state.DecisionCount,
		Cyclomatic:    state.DecisionCount + 1,
	}
	if state.NodeCount > 0 {
		avg := float64(state.WeightedSum) / float64(state.NodeCount)
		card.AverageDepth = &avg
	}
	return card
}
