// Package estree models JavaScript syntax trees in the ESTree shape used by
// ESLint and typescript-estree. Trees are built once by a front end (the JSON
// decoder here, or jsparse for source files) and are read-only afterwards.
package estree

import (
	"fmt"
	"slices"
)

// Position is a line/column pair. Lines are 1-based, columns 0-based.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// SourceLocation is the start and end position of a node.
type SourceLocation struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// Node is a single syntax node. Child nodes are held by their ESTree key in
// source order so a walk visits them the way a pre-order ESTree traversal would.
type Node struct {
	Type  NodeType
	Range [2]int
	Loc   *SourceLocation

	// Parent and ParentKey are set by Walk.
	Parent    *Node
	ParentKey string

	Name      string
	Operator  string
	Directive string
	Raw       string
	Kind      string
	Value     any
	Optional  bool
	Computed  bool
	Prefix    bool

	// Prologue marks a directive statement. Directive alone cannot, since
	// "" is a valid directive.
	Prologue bool

	fields []field
}

type field struct {
	key    string
	node   *Node
	list   []*Node
	isList bool
}

// NewNode creates a node of the given type covering [start, end).
func NewNode(typ NodeType, start, end int) *Node {
	return &Node{Type: typ, Range: [2]int{start, end}}
}

// Is reports whether n is non-nil and of one of the given types.
func (n *Node) Is(types ...NodeType) bool {
	return n != nil && slices.Contains(types, n.Type)
}

// Child returns the single child stored under key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	for i := range n.fields {
		if n.fields[i].key == key && !n.fields[i].isList {
			return n.fields[i].node
		}
	}
	return nil
}

// Children returns the child list stored under key, or nil.
func (n *Node) Children(key string) []*Node {
	if n == nil {
		return nil
	}
	for i := range n.fields {
		if n.fields[i].key == key && n.fields[i].isList {
			return n.fields[i].list
		}
	}
	return nil
}

// SetChild stores child under key, replacing any existing entry. A nil child
// removes the key.
func (n *Node) SetChild(key string, child *Node) *Node {
	n.remove(key)
	if child != nil {
		n.fields = append(n.fields, field{key: key, node: child})
	}
	return n
}

// SetChildren stores a child list under key. Entries may be nil (array holes).
func (n *Node) SetChildren(key string, children []*Node) *Node {
	n.remove(key)
	n.fields = append(n.fields, field{key: key, list: children, isList: true})
	return n
}

func (n *Node) remove(key string) {
	n.fields = slices.DeleteFunc(n.fields, func(f field) bool { return f.key == key })
}

// Keys returns the child keys of n in traversal order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.fields))
	for _, f := range n.fields {
		keys = append(keys, f.key)
	}
	return keys
}

// sortFields orders child keys by the source position of their first child so
// that traversal order does not depend on the order keys were decoded in.
func (n *Node) sortFields() {
	start := func(f field) int {
		if !f.isList {
			return f.node.Range[0]
		}
		for _, c := range f.list {
			if c != nil {
				return c.Range[0]
			}
		}
		return n.Range[1]
	}
	slices.SortStableFunc(n.fields, func(a, b field) int {
		return start(a) - start(b)
	})
}

// Accessors for the keys the rules inspect.

func (n *Node) Object() *Node     { return n.Child(KeyObject) }
func (n *Node) Property() *Node   { return n.Child(KeyProperty) }
func (n *Node) Callee() *Node     { return n.Child(KeyCallee) }
func (n *Node) Left() *Node       { return n.Child(KeyLeft) }
func (n *Node) Right() *Node      { return n.Child(KeyRight) }
func (n *Node) Test() *Node       { return n.Child(KeyTest) }
func (n *Node) Consequent() *Node { return n.Child(KeyConsequent) }
func (n *Node) Alternate() *Node  { return n.Child(KeyAlternate) }
func (n *Node) Expression() *Node { return n.Child(KeyExpression) }
func (n *Node) Tag() *Node        { return n.Child(KeyTag) }
func (n *Node) Argument() *Node   { return n.Child(KeyArgument) }

// IsDirective reports whether n is an expression statement in a directive prologue.
func (n *Node) IsDirective() bool {
	return n.Is(ExpressionStatement) && n.Prologue
}

// SetDirective marks n as a directive prologue statement with the given value.
func (n *Node) SetDirective(value string) *Node {
	n.Directive = value
	n.Prologue = true
	return n
}

// Line returns the 1-based start line, or 0 when the node has no location.
func (n *Node) Line() int {
	if n == nil || n.Loc == nil {
		return 0
	}
	return n.Loc.Start.Line
}

// Column returns the 1-based start column, or 0 when the node has no location.
func (n *Node) Column() int {
	if n == nil || n.Loc == nil {
		return 0
	}
	return n.Loc.Start.Column + 1
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Name != "" {
		return fmt.Sprintf("%s(%s)@%d:%d", n.Type, n.Name, n.Range[0], n.Range[1])
	}
	return fmt.Sprintf("%s@%d:%d", n.Type, n.Range[0], n.Range[1])
}

// File is a parsed document: its root Program node and where it came from.
type File struct {
	// Root is the Program node.
	Root *Node
	// Path is the location of the source (file path, URL or "stdin").
	Path string
	// Source is the text the ranges refer to. Empty for decoded ESTree documents.
	Source string
}

// Text returns the source text covered by n, when the source is known.
func (f *File) Text(n *Node) string {
	if f == nil || n == nil || f.Source == "" {
		return ""
	}
	start, end := n.Range[0], n.Range[1]
	if start < 0 || end > len(f.Source) || start > end {
		return ""
	}
	return f.Source[start:end]
}
