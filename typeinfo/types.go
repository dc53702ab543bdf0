// Package typeinfo is the type-checking capability used by type-aware rules.
// Rules only need to know whether the type at a node is the unconstrained any
// type and whether a compiler strictness option is on.
package typeinfo

import (
	"fmt"
	"strings"
)

// TypeFlags classifies a type.
type TypeFlags uint32

const (
	TypeFlagAny TypeFlags = 1 << iota
	TypeFlagUnknown
	TypeFlagString
	TypeFlagNumber
	TypeFlagBoolean
	TypeFlagBigInt
	TypeFlagSymbol
	TypeFlagVoid
	TypeFlagUndefined
	TypeFlagNull
	TypeFlagNever
	TypeFlagObject
	TypeFlagTypeParameter
)

var flagNames = map[string]TypeFlags{
	"any":           TypeFlagAny,
	"unknown":       TypeFlagUnknown,
	"string":        TypeFlagString,
	"number":        TypeFlagNumber,
	"boolean":       TypeFlagBoolean,
	"bigint":        TypeFlagBigInt,
	"symbol":        TypeFlagSymbol,
	"void":          TypeFlagVoid,
	"undefined":     TypeFlagUndefined,
	"null":          TypeFlagNull,
	"never":         TypeFlagNever,
	"object":        TypeFlagObject,
	"function":      TypeFlagObject,
	"typeparameter": TypeFlagTypeParameter,
}

// Type is a resolved static type.
type Type struct {
	Flags         TypeFlags
	IntrinsicName string
	// Constraint is the declared constraint of a type parameter, if any.
	Constraint *Type
}

var (
	// Any is the unconstrained any type.
	Any = &Type{Flags: TypeFlagAny, IntrinsicName: "any"}
	// Unknown is what lookups resolve to when nothing is known about a node.
	Unknown = &Type{Flags: TypeFlagUnknown, IntrinsicName: "unknown"}
)

// NewType returns the type with the given name, e.g. "any" or "typeParameter".
func NewType(name string) (*Type, error) {
	flags, ok := flagNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	return &Type{Flags: flags, IntrinsicName: name}, nil
}

// TypeParameter returns a type parameter with the given constraint (which may be nil).
func TypeParameter(name string, constraint *Type) *Type {
	return &Type{Flags: TypeFlagTypeParameter, IntrinsicName: name, Constraint: constraint}
}

// IsTypeParameter reports whether t is a type parameter.
func (t *Type) IsTypeParameter() bool {
	return t != nil && t.Flags&TypeFlagTypeParameter != 0
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.IsTypeParameter() && t.Constraint != nil {
		return fmt.Sprintf("%s extends %s", t.IntrinsicName, t.Constraint)
	}
	return t.IntrinsicName
}

// IsAny reports whether t is the any type.
func IsAny(t *Type) bool {
	return t != nil && t.Flags&TypeFlagAny != 0
}

// maxConstraintDepth bounds constraint chains like T extends U, U extends V.
const maxConstraintDepth = 32

// BaseConstraint replaces a type parameter by its constraint, following chains
// of constrained type parameters. Unconstrained type parameters and other types
// are returned as is.
func BaseConstraint(t *Type) *Type {
	for range maxConstraintDepth {
		if !t.IsTypeParameter() || t.Constraint == nil {
			return t
		}
		t = t.Constraint
	}
	return t
}
