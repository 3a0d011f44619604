package mcpserver

import (
	"bytes"
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/plexity/internal/output"
	"github.com/panbanda/plexity/pkg/analyzer/plexity"
	"github.com/panbanda/plexity/pkg/parser"
)

// ScoreFileInput is the input for score_file.
type ScoreFileInput struct {
	Path       string `json:"path" jsonschema:"Path of the source file to score."`
	Language   string `json:"language,omitempty" jsonschema:"Language identifier. Detected from the file extension when empty."`
	Format     string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, yaml, or markdown."`
	ErrorNodes string `json:"error_nodes,omitempty" jsonschema:"How to score parser error nodes: count, skip-decisions, or exclude. Defaults to the configured policy."`
	Trace      bool   `json:"trace,omitempty" jsonschema:"Include every counted node in traversal order."`
}

// DecisionKindsInput is the input for list_decision_kinds.
type DecisionKindsInput struct {
	Language string `json:"language" jsonschema:"Language identifier, e.g. python or go."`
	Format   string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, yaml, or markdown."`
}

// DecisionKindsResult lists a language's decision-point kinds.
type DecisionKindsResult struct {
	Language string   `json:"language" yaml:"language" toon:"language"`
	Kinds    []string `json:"kinds" yaml:"kinds" toon:"kinds"`
}

func getFormat(s string) output.Format {
	switch strings.ToLower(s) {
	case "json":
		return output.FormatJSON
	case "yaml", "yml":
		return output.FormatYAML
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func formatOutput(data any, format output.Format) (string, error) {
	if format != output.FormatMarkdown {
		return output.Marshal(data, format)
	}
	if r, ok := data.(output.Renderable); ok {
		var buf bytes.Buffer
		if err := r.RenderMarkdown(&buf); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	out, err := output.Marshal(data, output.FormatTOON)
	if err != nil {
		return "", err
	}
	return "```\n" + out + "\n```", nil
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func resolveLanguage(name, path string) (parser.Language, error) {
	if name == "" {
		return parser.DetectLanguage(path), nil
	}
	return parser.ParseLanguage(name)
}

func (s *Server) handleScoreFile(ctx context.Context, req *mcp.CallToolRequest, input ScoreFileInput) (*mcp.CallToolResult, any, error) {
	if input.Path == "" {
		return toolError("path is required")
	}
	lang, err := resolveLanguage(input.Language, input.Path)
	if err != nil {
		return toolError(err.Error())
	}

	opts, err := plexity.ConfigOptions(s.cfg)
	if err != nil {
		return toolError(err.Error())
	}
	if input.ErrorNodes != "" {
		policy, err := plexity.ParseErrorPolicy(input.ErrorNodes)
		if err != nil {
			return toolError(err.Error())
		}
		opts = append(opts, plexity.WithErrorPolicy(policy))
	}
	opts = append(opts, plexity.WithTrace(input.Trace), plexity.WithLogger(s.logger))

	// Analyzers own a parser and are not shared between calls.
	a := plexity.New(opts...)
	defer a.Close()

	report, err := a.AnalyzeFile(ctx, input.Path, lang)
	if err != nil {
		return toolError(err.Error())
	}

	format := getFormat(input.Format)
	if format == output.FormatMarkdown {
		return toolResult(output.NewScorecardReport(report), format)
	}
	return toolResult(report, format)
}

func (s *Server) handleDecisionKinds(ctx context.Context, req *mcp.CallToolRequest, input DecisionKindsInput) (*mcp.CallToolResult, any, error) {
	lang, err := parser.ParseLanguage(input.Language)
	if err != nil {
		return toolError(err.Error())
	}

	classifier := plexity.NewClassifier(plexity.ConfigKindResolver(s.cfg)(lang)...)
	result := DecisionKindsResult{Language: string(lang), Kinds: classifier.Kinds()}

	format := getFormat(input.Format)
	if format == output.FormatMarkdown {
		rows := make([][]string, len(result.Kinds))
		for i, k := range result.Kinds {
			rows[i] = []string{k}
		}
		return toolResult(output.NewTable("Decision kinds: "+result.Language, []string{"Kind"}, rows, nil, result), format)
	}
	return toolResult(result, format)
}
