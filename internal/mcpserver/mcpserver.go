package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/plexity/pkg/config"
)

// Server wraps the MCP server and registers the plexity tools.
type Server struct {
	server *mcp.Server
	cfg    *config.Config
	logger *slog.Logger
}

// NewServer creates a new MCP server with all plexity tools registered.
// A nil cfg uses the defaults.
func NewServer(version string, cfg *config.Config, logger *slog.Logger) *Server {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "plexity",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server, cfg: cfg, logger: logger}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_file",
		Description: describeScoreFile(),
	}, s.handleScoreFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_decision_kinds",
		Description: describeDecisionKinds(),
	}, s.handleDecisionKinds)
}
