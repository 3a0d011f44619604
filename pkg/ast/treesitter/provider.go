// Package treesitter adapts tree-sitter syntax trees to ast.Node.
package treesitter

import (
	"github.com/panbanda/plexity/pkg/ast"
	"github.com/panbanda/plexity/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// node wraps a tree-sitter node. Every child is exposed, named or not.
type node struct {
	n *sitter.Node
}

// Wrap adapts a tree-sitter node. A nil input yields a nil ast.Node.
func Wrap(n *sitter.Node) ast.Node {
	if n == nil {
		return nil
	}
	return node{n: n}
}

// Root returns the adapted root node of a parse result.
func Root(result *parser.ParseResult) ast.Node {
	if result == nil || result.Tree == nil {
		return nil
	}
	return Wrap(result.Tree.RootNode())
}

func (w node) Kind() string {
	return w.n.Type()
}

func (w node) ChildCount() int {
	return int(w.n.ChildCount())
}

func (w node) Child(i int) ast.Node {
	return Wrap(w.n.Child(i))
}

func (w node) Range() ast.Range {
	start, end := w.n.StartPoint(), w.n.EndPoint()
	return ast.Range{
		Start: ast.Point{Row: start.Row, Column: start.Column},
		End:   ast.Point{Row: end.Row, Column: end.Column},
	}
}

// IsError reports recovery nodes, including zero-width MISSING tokens
// whose kind is the expected token rather than ERROR.
func (w node) IsError() bool {
	return w.n.Type() == ast.ErrorKind || w.n.IsMissing()
}
