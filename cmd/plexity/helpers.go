package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/plexity/internal/output"
	"github.com/panbanda/plexity/pkg/config"
	"github.com/panbanda/plexity/pkg/parser"
	"github.com/urfave/cli/v2"
)

// loadConfig loads the --config file or a discovered one. Discovery
// tries each of dirs before the working directory. Unlike LoadOrDefault,
// a broken config file is an error.
func loadConfig(c *cli.Context, dirs ...string) (*config.Config, error) {
	result, err := loadConfigResult(c, dirs...)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

func loadConfigResult(c *cli.Context, dirs ...string) (*config.LoadResult, error) {
	var result *config.LoadResult
	var err error
	if path := c.String("config"); path != "" {
		result, err = config.LoadConfig(config.WithPath(path))
	} else {
		result, err = discoverConfig(dirs)
	}
	if err != nil {
		return nil, err
	}
	if err := checkLanguages(result.Config); err != nil {
		if result.Source != "" {
			return nil, fmt.Errorf("%s: %w", result.Source, err)
		}
		return nil, err
	}
	if result.Source != "" {
		loggerFrom(c).Debug("loaded config", "path", result.Source)
	}

	if c.Bool("no-cache") {
		result.Config.Cache.Enabled = false
	}
	return result, nil
}

func discoverConfig(dirs []string) (*config.LoadResult, error) {
	for _, dir := range dirs {
		result, err := config.LoadConfig(config.WithDir(dir))
		if err != nil || result.Source != "" {
			return result, err
		}
	}
	return config.LoadConfig()
}

// checkLanguages rejects language overrides keyed by anything but a
// canonical language identifier, since those would never be applied.
func checkLanguages(cfg *config.Config) error {
	for _, name := range cfg.LanguageNames() {
		lang, err := parser.ParseLanguage(name)
		if err != nil {
			return fmt.Errorf("%w: languages.%s: %v", config.ErrInvalidConfig, name, err)
		}
		if string(lang) != name {
			return fmt.Errorf("%w: languages.%s: use the identifier %q", config.ErrInvalidConfig, name, lang)
		}
	}
	return nil
}

// newFormatter honours --format and --output, falling back to the config.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if format == "" {
		format = cfg.Output.Format
	}
	colored := cfg.Output.Color && !color.NoColor

	if path := c.String("output"); path != "" {
		return output.NewFormatter(output.ParseFormat(format), path, false)
	}
	return output.NewWriterFormatter(output.ParseFormat(format), c.App.Writer, colored), nil
}

// fileArgs returns the FILE and optional LANGUAGE positional arguments.
// An empty language means detect from the file name.
func fileArgs(c *cli.Context) (string, parser.Language, error) {
	args := c.Args()
	switch args.Len() {
	case 0:
		return "", "", fmt.Errorf("missing FILE argument")
	case 1, 2:
	default:
		return "", "", fmt.Errorf("expected FILE [LANGUAGE], got %d arguments", args.Len())
	}

	if args.Len() == 1 {
		return args.First(), "", nil
	}
	lang, err := parser.ParseLanguage(args.Get(1))
	if err != nil {
		return "", "", err
	}
	return args.First(), lang, nil
}
