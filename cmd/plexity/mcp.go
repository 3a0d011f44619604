package main

import (
	"os/signal"
	"syscall"

	"github.com/panbanda/plexity/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve plexity tools over the Model Context Protocol on stdio",
		Description: `Starts an MCP server exposing score_file and list_decision_kinds.
Logs go to stderr; stdout carries the protocol.`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mcpserver.NewServer(version, cfg, loggerFrom(c)).Run(ctx)
}
