package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/panbanda/plexity/pkg/source"
	"github.com/panbanda/plexity/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New()
	if p == nil {
		t.Fatal("New() returned nil")
	}
	if p.parser == nil {
		t.Error("parser field is nil")
	}
	p.Close()
}

func TestNewWithMaxFileSize(t *testing.T) {
	p := New(WithMaxFileSize(1024))
	defer p.Close()
	if p.maxFileSize != 1024 {
		t.Errorf("maxFileSize = %d, want 1024", p.maxFileSize)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"main.go", LangGo},
		{"lib.rs", LangRust},
		{"script.py", LangPython},
		{"types.pyi", LangPython},
		{"app.ts", LangTypeScript},
		{"App.tsx", LangTSX},
		{"Component.jsx", LangTSX},
		{"index.mjs", LangJavaScript},
		{"Main.java", LangJava},
		{"main.c", LangC},
		{"main.hpp", LangCPP},
		{"Program.cs", LangCSharp},
		{"app.rb", LangRuby},
		{"index.php", LangPHP},
		{"build.sh", LangBash},
		{"style.css", LangCSS},
		{"index.html", LangHTML},
		{"Cargo.toml", LangTOML},
		{"ci.yml", LangYAML},
		{"Main.kt", LangKotlin},
		{"Dockerfile", LangDockerfile},
		{"api.Dockerfile", LangDockerfile},
		{"README.md", LangMarkdown},
		{"CHANGELOG.markdown", LangMarkdown},
		{"notes.txt", LangUnknown},
		{"noext", LangUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectLanguage(tt.path); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{"python", LangPython, false},
		{"Python", LangPython, false},
		{" py ", LangPython, false},
		{"golang", LangGo, false},
		{"c++", LangCPP, false},
		{"dockerfile", LangDockerfile, false},
		{"yml", LangYAML, false},
		{"md", LangMarkdown, false},
		{"brainfuck", LangUnknown, true},
		{"", LangUnknown, true},
		{"unknown", LangUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	assert.Len(t, langs, len(grammars))
	assert.NotContains(t, langs, LangUnknown)
	for i := 1; i < len(langs); i++ {
		assert.Less(t, langs[i-1], langs[i])
	}
}

func TestGetTreeSitterLanguage(t *testing.T) {
	for _, lang := range SupportedLanguages() {
		t.Run(string(lang), func(t *testing.T) {
			tsLang, err := GetTreeSitterLanguage(lang)
			require.NoError(t, err)
			assert.NotNil(t, tsLang)
		})
	}

	_, err := GetTreeSitterLanguage(LangUnknown)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestParse(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.Parse(context.Background(), []byte("package main\n\nfunc main() {}\n"), LangGo, "main.go")
	require.NoError(t, err)
	defer result.Close()

	assert.Equal(t, LangGo, result.Language)
	assert.Equal(t, "main.go", result.Path)
	root := result.Tree.RootNode()
	assert.Equal(t, "source_file", root.Type())
	assert.False(t, root.HasError())
}

func TestParse_Markdown(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.Parse(context.Background(), []byte("# Title\n\n- one\n- two\n"), LangMarkdown, "README.md")
	require.NoError(t, err)
	defer result.Close()

	assert.Equal(t, "document", result.Tree.RootNode().Type())
	assert.NotZero(t, result.Tree.RootNode().ChildCount())
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.py")
	require.NoError(t, os.WriteFile(path, []byte("if x:\n    pass\n"), 0644))

	p := New()
	defer p.Close()

	t.Run("detected language", func(t *testing.T) {
		result, err := p.ParseFile(context.Background(), path, "")
		require.NoError(t, err)
		defer result.Close()
		assert.Equal(t, LangPython, result.Language)
	})

	t.Run("unknown extension", func(t *testing.T) {
		other := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(other, []byte("hello"), 0644))
		_, err := p.ParseFile(context.Background(), other, "")
		assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	})

	t.Run("explicit language overrides extension", func(t *testing.T) {
		other := filepath.Join(dir, "script.txt")
		require.NoError(t, os.WriteFile(other, []byte("x = 1\n"), 0644))
		result, err := p.ParseFile(context.Background(), other, LangPython)
		require.NoError(t, err)
		defer result.Close()
		assert.Equal(t, "module", result.Tree.RootNode().Type())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := p.ParseFile(context.Background(), filepath.Join(dir, "missing.py"), "")
		assert.Error(t, err)
	})
}

func TestParseFile_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.py")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0644))

	p := New(WithMaxFileSize(1024))
	defer p.Close()

	_, err := p.ParseFile(context.Background(), path, "")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestReadFile_Source(t *testing.T) {
	fs := testutil.MemFS()
	testutil.CreateFileTree(t, fs, "/src", map[string]string{
		"small.py": "x = 1\n",
		"large.py": "x = 1\ny = 2\nz = 3\n",
	})

	p := New(WithSource(source.NewFS(fs)), WithMaxFileSize(8))
	defer p.Close()

	content, err := p.ReadFile("/src/small.py")
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))

	_, err = p.ReadFile("/src/large.py")
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = p.ReadFile("/src/missing.py")
	assert.ErrorContains(t, err, "failed to stat file")

	result, err := p.ParseFile(context.Background(), "/src/small.py", "")
	require.NoError(t, err)
	defer result.Close()
	assert.Equal(t, LangPython, result.Language)
	assert.Equal(t, "module", result.Tree.RootNode().Type())
}

func TestReadFile_NilSourceKeepsFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(path, []byte("pass\n"), 0644))

	p := New(WithSource(nil))
	defer p.Close()

	content, err := p.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pass\n", string(content))
}
