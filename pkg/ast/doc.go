// Package ast provides a parser-independent view of a concrete syntax tree.
//
// Analyzers walk ast.Node values instead of a specific parser's node type,
// so the same scoring code runs over tree-sitter output and over trees
// built by hand in tests.
//
// Usage:
//
//	root := ast.NewNode("module",
//	    ast.NewNode("if_statement",
//	        ast.NewNode("identifier"),
//	        ast.NewNode("block"),
//	    ),
//	)
//
//	ast.Walk(root, func(n ast.Node, depth int) bool {
//	    fmt.Printf("%s at depth %d\n", n.Kind(), depth)
//	    return true
//	})
package ast
