package main

import (
	"fmt"

	"github.com/panbanda/plexity/pkg/config"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Validate a configuration file",
				Description: `Validates a plexity configuration file for syntax errors and invalid values.

Examples:
  plexity config validate                      # Validates default config locations
  plexity -c plexity.toml config validate      # Validates specific file`,
				Action: runConfigValidate,
			},
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Description: `Shows the merged configuration from defaults and config file.

Examples:
  plexity config show                  # Show effective config
  plexity -c plexity.toml config show  # Show config from specific file`,
				Action: runConfigShow,
			},
		},
	}
}

func runConfigValidate(c *cli.Context) error {
	result, err := loadConfigResult(c)

	cfg := config.DefaultConfig()
	if err == nil {
		cfg = result.Config
	}
	formatter, ferr := newFormatter(c, cfg)
	if ferr != nil {
		return ferr
	}
	defer formatter.Close()

	if err != nil {
		formatter.Warning("Configuration validation failed:")
		fmt.Fprintf(formatter.Writer(), "  - %s\n", err)
		return err
	}

	if result.Source != "" {
		formatter.Success("Configuration valid: %s", result.Source)
	} else {
		formatter.Info("No config file found. Default configuration is valid.")
	}
	return nil
}

func runConfigShow(c *cli.Context) error {
	result, err := loadConfigResult(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if result.Source != "" {
		fmt.Fprintf(w, "# Configuration from: %s\n\n", result.Source)
	} else {
		fmt.Fprintln(w, "# Default configuration (no config file found)")
	}

	content, err := toml.Marshal(*result.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprint(w, string(content))

	return nil
}
