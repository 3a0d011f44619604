package mcpserver

// Tool descriptions with interpretation guidance for LLMs.

func describeScoreFile() string {
	return `Scores the structural complexity of one source file from its syntax tree.

USE WHEN:
- Judging how deeply nested or branchy a file is before editing it
- Comparing a file before and after a refactor
- Finding files whose nesting makes them hard to read

INTERPRETING RESULTS:
- node_count: every syntax node below the root, named or anonymous
- max_depth: deepest nesting level; the root's children are depth 0
- plexity_score: sum of all node depths, grows with both size and nesting
- average_depth: plexity_score / node_count, null for an empty file
- cyclomatic: decision points + 1, an estimate of independent paths
- error_nodes > 0: the file did not parse cleanly, see error_policy

METRICS RETURNED:
- Scorecard: node_count, max_depth, plexity_score, average_depth, decision_count, cyclomatic
- Profile: node histogram by depth, mean and standard deviation
- Trace (optional): every counted node in traversal order`
}

func describeDecisionKinds() string {
	return `Lists the syntax node kinds counted as decision points for a language.

USE WHEN:
- Explaining why a file's cyclomatic estimate has its value
- Checking which constructs a language's scoring recognizes

INTERPRETING RESULTS:
- Each kind adds 1 to the cyclomatic estimate wherever it appears
- An empty list means the cyclomatic estimate is always 1

METRICS RETURNED:
- language: the resolved language identifier
- kinds: the sorted list of decision-point node kinds`
}
