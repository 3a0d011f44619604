package main

import (
	"path/filepath"

	"github.com/panbanda/plexity/internal/output"
	"github.com/panbanda/plexity/internal/progress"
	"github.com/panbanda/plexity/pkg/analyzer/plexity"
	"github.com/panbanda/plexity/pkg/config"
	"github.com/panbanda/plexity/pkg/parser"
	"github.com/urfave/cli/v2"
)

func scoreCmd() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Aliases:   []string{"s"},
		Usage:     "Print the plexity scorecard for a file",
		ArgsUsage: "FILE [LANGUAGE]",
		Flags:     scoreFlags(),
		Action:    runScoreCmd,
	}
}

// scoreFlags are shared by score and watch.
func scoreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "List every counted node in traversal order",
		},
		&cli.StringFlag{
			Name:  "error-nodes",
			Usage: "How to score parser error nodes: count, skip-decisions, exclude (default from config)",
		},
		&cli.StringSliceFlag{
			Name:  "kinds",
			Usage: "Decision-point node kinds to use instead of the language defaults",
		},
		&cli.Int64Flag{
			Name:  "max-file-size",
			Usage: "Refuse files larger than this many bytes (0 = config value)",
		},
	}
}

// analyzerOptions merges the config with per-run flags.
func analyzerOptions(c *cli.Context, cfg *config.Config) ([]plexity.Option, error) {
	opts, err := plexity.ConfigOptions(cfg)
	if err != nil {
		return nil, err
	}

	if name := c.String("error-nodes"); name != "" {
		policy, err := plexity.ParseErrorPolicy(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, plexity.WithErrorPolicy(policy))
	}
	if kinds := c.StringSlice("kinds"); len(kinds) > 0 {
		opts = append(opts, plexity.WithKindResolver(func(parser.Language) []string {
			return kinds
		}))
	}
	if size := c.Int64("max-file-size"); size > 0 {
		opts = append(opts, plexity.WithMaxFileSize(size))
	}

	return append(opts,
		plexity.WithTrace(c.Bool("trace")),
		plexity.WithLogger(loggerFrom(c)),
	), nil
}

func runScoreCmd(c *cli.Context) error {
	path, lang, err := fileArgs(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c, filepath.Dir(path))
	if err != nil {
		return err
	}
	opts, err := analyzerOptions(c, cfg)
	if err != nil {
		return err
	}

	spinner := progress.ForTerminal("Scoring "+filepath.Base(path), c.Bool("verbose"))
	opts = append(opts, plexity.WithProgress(spinner.Tick))

	a := plexity.New(opts...)
	defer a.Close()

	report, err := a.AnalyzeFile(c.Context, path, lang)
	spinner.Finish()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.NewScorecardReport(report))
}
