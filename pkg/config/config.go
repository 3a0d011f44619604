package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration options for plexity.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Per-language decision-point kinds, keyed by language identifier
	Languages map[string]LanguageConfig `koanf:"languages" toml:"languages"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// AnalysisConfig controls scoring behavior.
type AnalysisConfig struct {
	ErrorNodes  string `koanf:"error_nodes" toml:"error_nodes"` // count, skip-decisions, exclude
	MaxFileSize int64  `koanf:"max_file_size" toml:"max_file_size"`
}

// Kind set modes.
const (
	ModeReplace = "replace"
	ModeExtend  = "extend"
)

// LanguageConfig overrides the decision-point kinds for one language.
type LanguageConfig struct {
	DecisionKinds []string `koanf:"decision_kinds" toml:"decision_kinds"`
	Mode          string   `koanf:"mode" toml:"mode"` // replace (default) or extend
}

// Apply combines the override with a language's default kinds.
func (lc LanguageConfig) Apply(defaults []string) []string {
	if lc.Mode == ModeExtend {
		out := make([]string, 0, len(defaults)+len(lc.DecisionKinds))
		out = append(out, defaults...)
		return append(out, lc.DecisionKinds...)
	}
	out := make([]string, len(lc.DecisionKinds))
	copy(out, lc.DecisionKinds)
	return out
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours, 0 = until content changes
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"` // text, json, markdown, toon, yaml
	Color  bool   `koanf:"color" toml:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			ErrorNodes:  "count",
			MaxFileSize: 0,
		},
		Languages: map[string]LanguageConfig{},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".plexity/cache",
			TTL:     0,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Language returns the override for lang, if any.
func (c *Config) Language(lang string) (LanguageConfig, bool) {
	lc, ok := c.Languages[strings.ToLower(lang)]
	return lc, ok
}

// DecisionKinds resolves the kinds for lang given its defaults.
func (c *Config) DecisionKinds(lang string, defaults []string) []string {
	if lc, ok := c.Language(lang); ok {
		return lc.Apply(defaults)
	}
	return defaults
}

// LanguageNames returns the configured language keys in sorted order.
func (c *Config) LanguageNames() []string {
	names := make([]string, 0, len(c.Languages))
	for name := range c.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parserFor picks a koanf parser by file extension, defaulting to TOML.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return kjson.Parser()
	default:
		return toml.Parser()
	}
}

// Load loads configuration from a file, validating it against the schema.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	if err := validateRaw(k.Raw()); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// Language keys are case-insensitive.
	normalized := make(map[string]LanguageConfig, len(cfg.Languages))
	for name, lc := range cfg.Languages {
		normalized[strings.ToLower(name)] = lc
	}
	cfg.Languages = normalized

	return cfg, nil
}

// configNames are searched in order in each search directory.
var configNames = []string{
	"plexity.toml",
	"plexity.yaml",
	"plexity.yml",
	"plexity.json",
	".plexity.toml",
	".plexity.yaml",
	".plexity.yml",
	".plexity.json",
}

// Find returns the first config file found in dir or dir/.plexity.
func Find(dir string) (string, bool) {
	for _, d := range []string{dir, filepath.Join(dir, ".plexity")} {
		for _, name := range configNames {
			path := filepath.Join(d, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}

// LoadResult is a loaded configuration and where it came from.
type LoadResult struct {
	Config *Config
	Source string // empty when defaults were used
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

type loadOptions struct {
	path string
	dir  string
}

// WithPath loads an explicit file instead of searching.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithDir searches dir instead of the working directory.
func WithDir(dir string) LoadOption {
	return func(o *loadOptions) {
		o.dir = dir
	}
}

// LoadConfig loads an explicit or discovered config file, falling back to
// defaults when none exists. Unlike LoadOrDefault it reports errors.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	o := loadOptions{dir: "."}
	for _, opt := range opts {
		opt(&o)
	}

	path := o.path
	if path == "" {
		found, ok := Find(o.dir)
		if !ok {
			return &LoadResult{Config: DefaultConfig()}, nil
		}
		path = found
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Config: cfg, Source: path}, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	result, err := LoadConfig()
	if err != nil {
		return DefaultConfig()
	}
	return result.Config
}
