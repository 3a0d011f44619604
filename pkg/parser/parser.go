package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/panbanda/plexity/pkg/source"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/dockerfile"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

// ErrUnsupportedLanguage is returned for language identifiers or file
// types that have no grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrFileTooLarge is returned when a file exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// Language represents a supported grammar.
type Language string

const (
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangPython     Language = "python"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangTSX        Language = "tsx"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangRuby       Language = "ruby"
	LangPHP        Language = "php"
	LangBash       Language = "bash"
	LangCSS        Language = "css"
	LangDockerfile Language = "dockerfile"
	LangHTML       Language = "html"
	LangTOML       Language = "toml"
	LangYAML       Language = "yaml"
	LangKotlin     Language = "kotlin"
	LangMarkdown   Language = "markdown"
	LangUnknown    Language = "unknown"
)

var grammars = map[Language]func() *sitter.Language{
	LangGo:         golang.GetLanguage,
	LangRust:       rust.GetLanguage,
	LangPython:     python.GetLanguage,
	LangTypeScript: typescript.GetLanguage,
	LangTSX:        tsx.GetLanguage,
	LangJavaScript: javascript.GetLanguage,
	LangJava:       java.GetLanguage,
	LangC:          c.GetLanguage,
	LangCPP:        cpp.GetLanguage,
	LangCSharp:     csharp.GetLanguage,
	LangRuby:       ruby.GetLanguage,
	LangPHP:        php.GetLanguage,
	LangBash:       bash.GetLanguage,
	LangCSS:        css.GetLanguage,
	LangDockerfile: dockerfile.GetLanguage,
	LangHTML:       html.GetLanguage,
	LangTOML:       toml.GetLanguage,
	LangYAML:       yaml.GetLanguage,
	LangKotlin:     kotlin.GetLanguage,
	LangMarkdown:   markdown.GetLanguage,
}

var aliases = map[string]Language{
	"golang": LangGo,
	"rs":     LangRust,
	"py":     LangPython,
	"ts":     LangTypeScript,
	"js":     LangJavaScript,
	"jsx":    LangTSX,
	"c++":    LangCPP,
	"cxx":    LangCPP,
	"cs":     LangCSharp,
	"c#":     LangCSharp,
	"rb":     LangRuby,
	"sh":     LangBash,
	"shell":  LangBash,
	"docker": LangDockerfile,
	"yml":    LangYAML,
	"kt":     LangKotlin,
	"md":     LangMarkdown,
}

// Parser wraps tree-sitter for multi-language parsing.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser      *sitter.Parser
	source      source.ContentSource
	maxFileSize int64
}

// ParseResult contains the parsed tree and metadata.
type ParseResult struct {
	Tree     *sitter.Tree
	Language Language
	Source   []byte
	Path     string
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxFileSize rejects files larger than maxSize bytes (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(p *Parser) {
		p.maxFileSize = maxSize
	}
}

// WithSource reads files from src instead of the OS filesystem.
func WithSource(src source.ContentSource) Option {
	return func(p *Parser) {
		if src != nil {
			p.source = src
		}
	}
}

// New creates a new parser instance.
func New(opts ...Option) *Parser {
	p := &Parser{
		parser: sitter.NewParser(),
		source: source.NewFilesystem(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReadFile returns a file's content from the parser's source, enforcing
// the size limit before anything is read.
func (p *Parser) ReadFile(path string) ([]byte, error) {
	if p.maxFileSize > 0 {
		size, err := p.source.Size(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		if size > p.maxFileSize {
			return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, path, size, p.maxFileSize)
		}
	}

	content, err := p.source.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// ParseFile reads and parses a source file. When lang is empty the
// language is detected from the path.
func (p *Parser) ParseFile(ctx context.Context, path string, lang Language) (*ParseResult, error) {
	if lang == "" {
		lang = DetectLanguage(path)
	}
	if lang == LangUnknown {
		return nil, fmt.Errorf("%w for file: %s", ErrUnsupportedLanguage, path)
	}

	content, err := p.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, content, lang, path)
}

// Parse parses source code with a specified language.
func (p *Parser) Parse(ctx context.Context, source []byte, lang Language, path string) (*ParseResult, error) {
	tsLang, err := GetTreeSitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}

	return &ParseResult{
		Tree:     tree,
		Language: lang,
		Source:   source,
		Path:     path,
	}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// Close releases the tree held by the result.
func (r *ParseResult) Close() {
	if r != nil && r.Tree != nil {
		r.Tree.Close()
	}
}

// GetTreeSitterLanguage returns the tree-sitter grammar for a Language.
func GetTreeSitterLanguage(lang Language) (*sitter.Language, error) {
	get, ok := grammars[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	return get(), nil
}

// ParseLanguage resolves a user-supplied language identifier.
func ParseLanguage(s string) (Language, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	if _, ok := grammars[Language(id)]; ok {
		return Language(id), nil
	}
	if lang, ok := aliases[id]; ok {
		return lang, nil
	}
	return LangUnknown, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// SupportedLanguages returns all language identifiers in sorted order.
func SupportedLanguages() []Language {
	langs := make([]Language, 0, len(grammars))
	for lang := range grammars {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	base := strings.ToLower(filepath.Base(path))

	// Check special filenames first
	if base == "dockerfile" || strings.HasPrefix(base, "dockerfile.") || strings.HasSuffix(base, ".dockerfile") {
		return LangDockerfile
	}

	switch ext {
	case ".go":
		return LangGo
	case ".rs":
		return LangRust
	case ".py", ".pyw", ".pyi":
		return LangPython
	case ".ts", ".mts", ".cts":
		return LangTypeScript
	case ".tsx":
		return LangTSX
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".jsx":
		return LangTSX // Use TSX parser for JSX
	case ".java":
		return LangJava
	case ".c", ".h":
		return LangC
	case ".cpp", ".cc", ".cxx", ".hpp", ".hxx":
		return LangCPP
	case ".cs":
		return LangCSharp
	case ".rb":
		return LangRuby
	case ".php":
		return LangPHP
	case ".sh", ".bash":
		return LangBash
	case ".css":
		return LangCSS
	case ".html", ".htm":
		return LangHTML
	case ".toml":
		return LangTOML
	case ".yaml", ".yml":
		return LangYAML
	case ".kt", ".kts":
		return LangKotlin
	case ".md", ".markdown":
		return LangMarkdown
	default:
		return LangUnknown
	}
}
