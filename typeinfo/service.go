package typeinfo

import (
	"github.com/chaifriendly/lint/estree"
)

// Service answers the type questions rules ask about nodes of one document.
// Implementations must be safe for concurrent reads.
type Service interface {
	// ConstrainedTypeAt returns the type at node, with type parameters replaced
	// by their base constraint. It never returns nil.
	ConstrainedTypeAt(node *estree.Node) *Type
	// IsAnyType reports whether t is the unconstrained any type.
	IsAnyType(t *Type) bool
	// IsStrictOptionEnabled reports whether a strict-family compiler option is in effect.
	IsStrictOptionEnabled(option string) bool
}
