package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/panbanda/plexity/internal/cache"
	"github.com/panbanda/plexity/internal/output"
	"github.com/panbanda/plexity/pkg/config"
	"github.com/urfave/cli/v2"
)

type cacheStats struct {
	Dir       string `json:"dir" yaml:"dir" toon:"dir"`
	Entries   int    `json:"entries" yaml:"entries" toon:"entries"`
	TotalSize int64  `json:"total_size" yaml:"total_size" toon:"total_size"`
	OldestAge string `json:"oldest_age" yaml:"oldest_age" toon:"oldest_age"`
	NewestAge string `json:"newest_age" yaml:"newest_age" toon:"newest_age"`
}

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the result cache",
		Description: `Operates on the directory named by cache.dir in the configuration,
whether or not caching is enabled.`,
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show the number, size, and age of cached results",
				Action: runCacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Remove every cached result",
				Action: runCacheClear,
			},
		},
	}
}

// openCache opens the configured cache directory regardless of
// cache.enabled or --no-cache.
func openCache(c *cli.Context) (*cache.Cache, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache %s: %w", cfg.Cache.Dir, err)
	}
	return store, cfg, nil
}

func runCacheStats(c *cli.Context) error {
	store, cfg, err := openCache(c)
	if err != nil {
		return err
	}
	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	result := cacheStats{
		Dir:       cfg.Cache.Dir,
		Entries:   stats.Entries,
		TotalSize: stats.TotalSize,
		OldestAge: stats.OldestAge.Round(time.Second).String(),
		NewestAge: stats.NewestAge.Round(time.Second).String(),
	}
	rows := [][]string{
		{"Directory", result.Dir},
		{"Entries", strconv.Itoa(result.Entries)},
		{"Total size", strconv.FormatInt(result.TotalSize, 10) + " bytes"},
		{"Oldest entry", result.OldestAge},
		{"Newest entry", result.NewestAge},
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.NewTable("Cache", []string{"Metric", "Value"}, rows, nil, result))
}

func runCacheClear(c *cli.Context) error {
	store, cfg, err := openCache(c)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	formatter.Success("Cache cleared: %s", cfg.Cache.Dir)
	return nil
}
