// Package validation holds the diagnostic type produced by lint rules.
package validation

import (
	"fmt"
	"strings"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/estree"
	"gopkg.in/yaml.v3"
)

// Severity is the importance of a reported problem. Lower values sort first.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity converts a severity name into a Severity. The ESLint spellings
// "warn", "1" and "2" are accepted too.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "2":
		return SeverityError, nil
	case "warning", "warn", "1":
		return SeverityWarning, nil
	case "hint", "info":
		return SeverityHint, nil
	}
	return SeverityError, fmt.Errorf("unknown severity %q", s)
}

// UnmarshalYAML reads a severity from its name.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = parsed
	return nil
}

// MarshalYAML writes a severity as its name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// MarshalText writes a severity as its name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText reads a severity from its name.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Error is a single problem reported by a rule against a syntax node.
type Error struct {
	// UnderlyingError carries the rendered message.
	UnderlyingError error
	// Node is the syntax node the problem is reported at.
	Node *estree.Node
	// Severity of the problem.
	Severity Severity
	// Rule is the ID of the rule that reported the problem.
	Rule string
	// MessageID identifies which of the rule's messages was used.
	MessageID string
	// DocumentLocation is the file the node belongs to.
	DocumentLocation string
}

var _ error = (*Error)(nil)

// NewValidationError creates an error reported at node.
func NewValidationError(severity Severity, rule string, err error, node *estree.Node) *Error {
	return &Error{
		UnderlyingError: err,
		Node:            node,
		Severity:        severity,
		Rule:            rule,
	}
}

// NewMessageError creates an error for one of a rule's message ids.
func NewMessageError(severity Severity, rule, messageID, message string, node *estree.Node) *Error {
	return &Error{
		UnderlyingError: errors.New(message),
		Node:            node,
		Severity:        severity,
		Rule:            rule,
		MessageID:       messageID,
	}
}

func (e Error) Error() string {
	msg := ""
	if e.UnderlyingError != nil {
		msg = e.UnderlyingError.Error()
	}
	return fmt.Sprintf("[%d:%d] %s %s %s", e.GetLineNumber(), e.GetColumnNumber(), e.Severity, e.Rule, msg)
}

func (e Error) Unwrap() error {
	return e.UnderlyingError
}

// GetLineNumber returns the 1-based line of the node, or -1 when unknown.
func (e Error) GetLineNumber() int {
	if e.Node == nil || e.Node.Loc == nil {
		return -1
	}
	return e.Node.Line()
}

// GetColumnNumber returns the 1-based column of the node, or -1 when unknown.
func (e Error) GetColumnNumber() int {
	if e.Node == nil || e.Node.Loc == nil {
		return -1
	}
	return e.Node.Column()
}
