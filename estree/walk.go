package estree

import (
	"context"
	"iter"
	"strconv"
	"strings"
)

// LocationContext records how a node was reached from its parent.
type LocationContext struct {
	Parent      *Node
	ParentField string
	ParentIndex *int
}

// Locations is the path from the root to a node.
type Locations []LocationContext

// ToPath renders the locations as a slash separated path such as
// "/body/0/expression/callee".
func (l Locations) ToPath() string {
	var sb strings.Builder
	sb.WriteString("/")

	for i, location := range l {
		if i > 0 {
			sb.WriteString("/")
		}
		sb.WriteString(location.ParentField)
		if location.ParentIndex != nil {
			sb.WriteString("/")
			sb.WriteString(strconv.Itoa(*location.ParentIndex))
		}
	}

	return sb.String()
}

// WalkItem is a single node yielded by Walk.
type WalkItem struct {
	Node     *Node
	Location Locations
}

// Walk returns an iterator over every node under root in depth-first pre-order.
// Parent and ParentKey are set on each node as it is reached. Iteration stops
// early when the loop breaks or ctx is cancelled.
func Walk(ctx context.Context, root *Node) iter.Seq[WalkItem] {
	return func(yield func(WalkItem) bool) {
		if root == nil {
			return
		}
		walk(ctx, root, nil, yield)
	}
}

func walk(ctx context.Context, n *Node, loc Locations, yield func(WalkItem) bool) bool {
	if ctx.Err() != nil {
		return false
	}

	if !yield(WalkItem{Node: n, Location: loc}) {
		return false
	}

	for _, f := range n.fields {
		if !f.isList {
			if !walkChild(ctx, n, f.node, f.key, nil, loc, yield) {
				return false
			}
			continue
		}
		for i, child := range f.list {
			if child == nil {
				continue
			}
			if !walkChild(ctx, n, child, f.key, &i, loc, yield) {
				return false
			}
		}
	}

	return true
}

func walkChild(ctx context.Context, parent, child *Node, key string, index *int, loc Locations, yield func(WalkItem) bool) bool {
	// Linked trees are shared between concurrent walks, so only write on change.
	if child.Parent != parent || child.ParentKey != key {
		child.Parent = parent
		child.ParentKey = key
	}

	childLoc := make(Locations, len(loc), len(loc)+1)
	copy(childLoc, loc)
	childLoc = append(childLoc, LocationContext{Parent: parent, ParentField: key, ParentIndex: index})

	return walk(ctx, child, childLoc, yield)
}

// Link sets Parent and ParentKey on every node under root without yielding.
func Link(root *Node) {
	for range Walk(context.Background(), root) {
	}
}
