package estree

import (
	"fmt"
	"strings"

	"github.com/chaifriendly/lint/errors"
)

// Selector matches nodes during a walk. Two forms are understood:
//
//	CallExpression             nodes of a type ("*" matches any node)
//	CallExpression > *.callee  any node held in the callee field of a CallExpression
type Selector struct {
	Type       NodeType
	ParentType NodeType
	Field      string
	raw        string
}

// ParseSelector parses a selector string.
func ParseSelector(s string) (Selector, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Selector{}, errors.ErrInvalidSelector.Wrap(fmt.Errorf("empty selector"))
	}

	parent, child, found := strings.Cut(raw, ">")
	if !found {
		if strings.ContainsAny(raw, " .") {
			return Selector{}, errors.ErrInvalidSelector.Wrap(fmt.Errorf("unsupported selector %q", raw))
		}
		return Selector{Type: NodeType(raw), raw: raw}, nil
	}

	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	field, ok := strings.CutPrefix(child, "*.")
	if parent == "" || !ok || field == "" || strings.ContainsAny(parent, " .") {
		return Selector{}, errors.ErrInvalidSelector.Wrap(fmt.Errorf("unsupported selector %q", raw))
	}

	return Selector{ParentType: NodeType(parent), Field: field, raw: raw}, nil
}

// MustParseSelector is ParseSelector for selectors known at compile time.
func MustParseSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// Matches reports whether n is selected. Field selectors rely on Parent links
// set by Walk.
func (s Selector) Matches(n *Node) bool {
	if n == nil {
		return false
	}
	if s.Field == "" {
		return s.Type == "*" || n.Type == s.Type
	}
	return n.Parent != nil && n.Parent.Type == s.ParentType && n.ParentKey == s.Field
}

func (s Selector) String() string {
	return s.raw
}
