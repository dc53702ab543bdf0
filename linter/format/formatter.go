// Package format renders lint results as text, JSON or a per-rule summary.
package format

import (
	"errors"

	"github.com/chaifriendly/lint/validation"
)

type Formatter interface {
	Format(results []error) (string, error)
}

// CategoryFunc returns the category of a rule ID.
type CategoryFunc func(rule string) string

const (
	internalRule    = "internal"
	unknownCategory = "unknown"
)

func categoryOf(categories CategoryFunc, rule string) string {
	if categories == nil {
		return unknownCategory
	}
	if category := categories(rule); category != "" {
		return category
	}
	return unknownCategory
}

type counts struct {
	errors, warnings, hints int
}

func (c *counts) add(severity validation.Severity) {
	switch severity {
	case validation.SeverityError:
		c.errors++
	case validation.SeverityWarning:
		c.warnings++
	case validation.SeverityHint:
		c.hints++
	}
}

func asValidationError(err error) (*validation.Error, bool) {
	var vErr *validation.Error
	ok := errors.As(err, &vErr)
	return vErr, ok
}

func messageOf(vErr *validation.Error) string {
	if vErr.UnderlyingError == nil {
		return ""
	}
	return vErr.UnderlyingError.Error()
}
