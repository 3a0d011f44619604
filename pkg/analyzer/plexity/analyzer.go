// Package plexity scores the structural complexity of a syntax tree:
// node count, maximum depth, depth-weighted "plexity" score, average
// depth, and a cyclomatic estimate from decision-point node kinds.
package plexity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/panbanda/plexity/internal/cache"
	"github.com/panbanda/plexity/pkg/ast"
	"github.com/panbanda/plexity/pkg/ast/treesitter"
	"github.com/panbanda/plexity/pkg/models"
	"github.com/panbanda/plexity/pkg/parser"
	"github.com/panbanda/plexity/pkg/source"
)

// Analyzer parses files and scores their syntax trees.
// An Analyzer owns a tree-sitter parser and is not safe for concurrent use.
type Analyzer struct {
	parser      *parser.Parser
	cache       *cache.Cache
	source      source.ContentSource
	resolve     KindResolver
	policy      ErrorPolicy
	maxFileSize int64
	trace       bool
	progress    func()
	logger      *slog.Logger
}

// progressEvery is how many counted nodes pass between progress ticks.
const progressEvery = 4096

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithCache enables result caching keyed by file content.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// WithSource reads files from src instead of the OS filesystem.
func WithSource(src source.ContentSource) Option {
	return func(a *Analyzer) {
		if src != nil {
			a.source = src
		}
	}
}

// WithKindResolver overrides how decision-point kinds are chosen per language.
func WithKindResolver(r KindResolver) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.resolve = r
		}
	}
}

// WithErrorPolicy sets how parser recovery nodes are scored.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(a *Analyzer) {
		a.policy = p
	}
}

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// WithTrace records a Visit for every counted node in the report.
func WithTrace(enabled bool) Option {
	return func(a *Analyzer) {
		a.trace = enabled
	}
}

// WithProgress calls tick periodically while a tree is traversed.
func WithProgress(tick func()) Option {
	return func(a *Analyzer) {
		a.progress = tick
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates a new plexity analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		source:  source.NewFilesystem(),
		resolve: DefaultKindResolver,
		policy:  ErrorsCount,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.parser = parser.New(
		parser.WithSource(a.source),
		parser.WithMaxFileSize(a.maxFileSize),
	)
	return a
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// Classifier returns the classifier used for lang.
func (a *Analyzer) Classifier(lang parser.Language) *Classifier {
	return NewClassifier(a.resolve(lang)...)
}

// AnalyzeFile scores a single file. An empty lang is detected from the path.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string, lang parser.Language) (*models.PlexityReport, error) {
	if lang == "" {
		lang = parser.DetectLanguage(path)
	}
	if lang == parser.LangUnknown {
		return nil, fmt.Errorf("%w for file: %s", parser.ErrUnsupportedLanguage, path)
	}

	if !a.caching() {
		result, err := a.parser.ParseFile(ctx, path, lang)
		if err != nil {
			return nil, err
		}
		defer result.Close()
		return a.score(result), nil
	}

	content, err := a.parser.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeSource(ctx, content, lang, path)
}

// AnalyzeSource scores source text already in memory.
func (a *Analyzer) AnalyzeSource(ctx context.Context, source []byte, lang parser.Language, path string) (*models.PlexityReport, error) {
	classifier := a.Classifier(lang)

	key, hash := a.cacheKey(path, lang, classifier), cache.HashBytes(source)
	if report, ok := a.cached(key, hash); ok {
		a.logger.Debug("cache hit", "path", path, "language", lang)
		return report, nil
	}

	result, err := a.parser.Parse(ctx, source, lang, path)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	report := a.score(result)
	a.store(key, hash, report)
	return report, nil
}

// score builds the report for a parsed file.
func (a *Analyzer) score(result *parser.ParseResult) *models.PlexityReport {
	report := a.AnalyzeTree(treesitter.Root(result), a.Classifier(result.Language))
	report.Path = result.Path
	report.Language = string(result.Language)

	a.logger.Debug("scored file",
		"path", report.Path,
		"language", report.Language,
		"nodes", report.Scorecard.NodeCount,
		"max_depth", report.Scorecard.MaxDepth,
		"decisions", report.Scorecard.DecisionCount,
		"error_nodes", report.ErrorNodes,
	)
	if report.HasErrors() {
		a.logger.Warn("syntax tree contains error nodes", "path", report.Path, "count", report.ErrorNodes, "policy", a.policy)
	}
	return report
}

// AnalyzeTree scores an already-built tree. It performs no I/O and
// never fails.
func (a *Analyzer) AnalyzeTree(root ast.Node, classifier *Classifier) *models.PlexityReport {
	var profile profileBuilder
	var trace []models.Visit

	visit := func(v models.Visit) {
		profile.observe(v)
		if a.trace {
			trace = append(trace, v)
		}
		if a.progress != nil && v.Index%progressEvery == 0 {
			a.progress()
		}
	}

	state := NewTraverser(classifier, a.policy, visit).Traverse(root, 0, State{})

	return &models.PlexityReport{
		ErrorPolicy: string(a.policy),
		ErrorNodes:  state.ErrorNodes,
		Scorecard:   Summarize(state),
		Profile:     profile.build(),
		Trace:       trace,
	}
}

// cacheKey binds a cached report to everything besides content that
// affects the result.
func (a *Analyzer) cacheKey(path string, lang parser.Language, classifier *Classifier) string {
	return fmt.Sprintf("plexity|%s|%s|%016x|%s", path, lang, classifier.Fingerprint(), a.policy)
}

// caching reports whether results are read from and written to the
// cache. Traces are never cached.
func (a *Analyzer) caching() bool {
	return a.cache.Enabled() && !a.trace
}

func (a *Analyzer) cached(key, hash string) (*models.PlexityReport, bool) {
	if !a.caching() {
		return nil, false
	}
	data, ok := a.cache.GetWithHash(key, hash)
	if !ok {
		return nil, false
	}
	var report models.PlexityReport
	if err := json.Unmarshal(data, &report); err != nil {
		a.logger.Debug("discarding unreadable cache entry", "error", err)
		if err := a.cache.Invalidate(key); err != nil {
			a.logger.Debug("failed to remove cache entry", "error", err)
		}
		return nil, false
	}
	return &report, true
}

func (a *Analyzer) store(key, hash string, report *models.PlexityReport) {
	if !a.caching() {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		a.logger.Debug("failed to encode report for cache", "error", err)
		return
	}
	if err := a.cache.SetWithHash(key, hash, data); err != nil {
		a.logger.Debug("failed to write cache entry", "error", err)
	}
}
