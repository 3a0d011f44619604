package ast

// MemNode is an in-memory Node for building trees by hand.
type MemNode struct {
	kind     string
	span     Range
	children []Node
	isError  bool
}

// NewNode creates a node with the given kind and children.
func NewNode(kind string, children ...Node) *MemNode {
	return &MemNode{kind: kind, children: children}
}

// MarkError flags the node as a recovery node regardless of its kind.
func (n *MemNode) MarkError() *MemNode {
	n.isError = true
	return n
}

func (n *MemNode) Kind() string    { return n.kind }
func (n *MemNode) ChildCount() int { return len(n.children) }
func (n *MemNode) Range() Range    { return n.span }
func (n *MemNode) IsError() bool   { return n.isError }

func (n *MemNode) Child(i int) Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Append adds children and returns the node for chaining.
func (n *MemNode) Append(children ...Node) *MemNode {
	n.children = append(n.children, children...)
	return n
}

// Chain builds a linear tree of the given depth below a root: each level
// has exactly one child of the given kind. Chain("x", 0) is a bare root.
func Chain(kind string, depth int) *MemNode {
	root := NewNode("root")
	cur := root
	for range depth {
		next := NewNode(kind)
		cur.Append(next)
		cur = next
	}
	return root
}
