package linter

import (
	"context"

	"github.com/chaifriendly/lint/validation"
)

// Rule represents a single linting rule
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "no-unsafe-call")
	ID() string

	// Category returns the rule category (e.g., "best-practices", "type-safety")
	Category() string

	// Description returns a human-readable description of what the rule checks
	Description() string

	// Summary returns a short summary of what the rule checks
	Summary() string

	// Link returns an optional URL to documentation for this rule
	Link() string

	// DefaultSeverity returns the default severity level for this rule
	DefaultSeverity() validation.Severity
}

// RuleRunner is the interface rules must implement to execute their logic.
// It is separate from Rule so hosts can run different document types.
type RuleRunner[T any] interface {
	Rule

	// Run executes the rule against the provided document and returns the
	// problems found as validation errors. Any other error returned is fatal
	// for this rule on this document.
	Run(ctx context.Context, docInfo *DocumentInfo[T], config *RuleConfig) []error
}

// DocumentedRule provides extended documentation for a rule
type DocumentedRule interface {
	Rule

	// GoodExample returns source showing correct usage
	GoodExample() string

	// BadExample returns source showing incorrect usage
	BadExample() string

	// Rationale explains why this rule exists
	Rationale() string
}

// ConfigurableRule indicates a rule has configurable options
type ConfigurableRule interface {
	Rule

	// ConfigSchema returns JSON Schema for rule-specific options
	ConfigSchema() map[string]any

	// ConfigDefaults returns default values for options
	ConfigDefaults() map[string]any
}

// MessagesRule exposes the messages a rule reports, keyed by message id.
type MessagesRule interface {
	Rule

	Messages() map[string]string
}

// TypeCheckedRule is implemented by rules that need type information.
type TypeCheckedRule interface {
	Rule

	RequiresTypeChecking() bool
}
