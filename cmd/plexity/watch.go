package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/panbanda/plexity/internal/output"
	"github.com/panbanda/plexity/pkg/analyzer/plexity"
	"github.com/panbanda/plexity/pkg/watch"
	"github.com/urfave/cli/v2"
)

func watchCmd() *cli.Command {
	flags := append(scoreFlags(), &cli.DurationFlag{
		Name:  "debounce",
		Value: watch.DefaultDebounce,
		Usage: "Quiet period before re-scoring",
	})
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-score a file whenever it changes",
		ArgsUsage: "FILE [LANGUAGE]",
		Flags:     flags,
		Action:    runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
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
	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	logger := loggerFrom(c)
	watcher, err := watch.NewWatcher(path, c.Duration("debounce"), logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	// Callbacks never overlap, so one analyzer serves every run.
	a := plexity.New(opts...)
	defer a.Close()

	score := func(ctx context.Context, changed string) {
		report, err := a.AnalyzeFile(ctx, changed, lang)
		if err != nil {
			logger.Error("scoring failed", "path", changed, "error", err)
			return
		}
		if formatter.Format() == output.FormatText {
			fmt.Fprintf(formatter.Writer(), "\n--- %s ---\n", time.Now().Format(time.TimeOnly))
		}
		if err := formatter.Output(output.NewScorecardReport(report)); err != nil {
			logger.Error("failed to write scorecard", "error", err)
		}
	}
	watcher.SetCallback(score)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	score(ctx, watcher.Path())

	if formatter.Colored() {
		color.New(color.FgCyan).Fprintf(c.App.ErrWriter, "Watching %s (Ctrl+C to stop)\n", path)
	} else {
		fmt.Fprintf(c.App.ErrWriter, "Watching %s (Ctrl+C to stop)\n", path)
	}

	if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
