package ast

import "fmt"

// ErrorKind is the kind label parsers give to recovery nodes.
const ErrorKind = "ERROR"

// Point is a zero-based row/column position in source text.
type Point struct {
	Row    uint32 `json:"row" yaml:"row" toon:"row"`
	Column uint32 `json:"column" yaml:"column" toon:"column"`
}

// String formats the point the way tree-sitter does.
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Column)
}

// Range is the start/end span of a node.
type Range struct {
	Start Point `json:"start" yaml:"start" toon:"start"`
	End   Point `json:"end" yaml:"end" toon:"end"`
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Node is one element of a parsed syntax tree.
type Node interface {
	// Kind returns the grammar's label for the node.
	Kind() string

	// ChildCount returns the number of direct children.
	ChildCount() int

	// Child returns the i-th child in source order.
	Child(i int) Node

	// Range returns the node's source span.
	Range() Range
}

// ErrorReporter is implemented by nodes that can flag parser recovery
// independently of their kind label (e.g. tree-sitter MISSING nodes).
type ErrorReporter interface {
	IsError() bool
}

// IsErrorNode reports whether n was inserted by parser error recovery.
func IsErrorNode(n Node) bool {
	if n == nil {
		return false
	}
	if r, ok := n.(ErrorReporter); ok && r.IsError() {
		return true
	}
	return n.Kind() == ErrorKind
}

// Visitor is called for each descendant with its depth.
// Returning false skips the node's children.
type Visitor func(n Node, depth int) bool

// Walk visits every descendant of root in pre-order, source order. The
// root itself is not visited; its direct children are at depth 0. Nodes
// wait on an explicit stack rather than the call stack, so arbitrarily
// deep trees are safe.
func Walk(root Node, visit Visitor) {
	if root == nil {
		return
	}

	type frame struct {
		node  Node
		depth int
	}
	var stack []frame
	push := func(n Node, depth int) {
		// Reverse order so the first child is popped first.
		for i := n.ChildCount() - 1; i >= 0; i-- {
			if child := n.Child(i); child != nil {
				stack = append(stack, frame{node: child, depth: depth})
			}
		}
	}

	push(root, 0)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visit(f.node, f.depth) {
			push(f.node, f.depth+1)
		}
	}
}

// Count returns the number of descendants below root.
func Count(root Node) int {
	var n int
	Walk(root, func(Node, int) bool {
		n++
		return true
	})
	return n
}
