package plexity

import (
	"fmt"

	"github.com/panbanda/plexity/internal/cache"
	"github.com/panbanda/plexity/pkg/config"
	"github.com/panbanda/plexity/pkg/parser"
)

// ConfigKindResolver resolves kinds from cfg, falling back to the built-in
// tables for languages it does not mention.
func ConfigKindResolver(cfg *config.Config) KindResolver {
	return func(lang parser.Language) []string {
		return cfg.DecisionKinds(string(lang), DefaultKinds(lang))
	}
}

// ConfigOptions translates a loaded configuration into analyzer options.
func ConfigOptions(cfg *config.Config) ([]Option, error) {
	policy, err := ParseErrorPolicy(cfg.Analysis.ErrorNodes)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithErrorPolicy(policy),
		WithMaxFileSize(cfg.Analysis.MaxFileSize),
		WithKindResolver(ConfigKindResolver(cfg)),
	}

	if cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		opts = append(opts, WithCache(c))
	}
	return opts, nil
}
