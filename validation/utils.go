package validation

import (
	"errors"
	"slices"
	"strings"
)

// SortValidationErrors sorts errors by document, then line and column, lowest first.
// Errors that are not *Error keep their relative order and go after the rest.
func SortValidationErrors(allErrors []error) {
	if len(allErrors) == 0 {
		return
	}

	var validErrs []*Error
	var otherErrs []error
	for _, err := range allErrors {
		var vErr *Error
		if errors.As(err, &vErr) {
			validErrs = append(validErrs, vErr)
		} else {
			otherErrs = append(otherErrs, err)
		}
	}

	slices.SortStableFunc(validErrs, compareValidationErrors)

	idx := 0
	for _, vErr := range validErrs {
		allErrors[idx] = vErr
		idx++
	}
	for _, err := range otherErrs {
		allErrors[idx] = err
		idx++
	}
}

// compareValidationErrors orders by document location, line, column, severity,
// rule and finally message.
func compareValidationErrors(a, b *Error) int {
	if c := strings.Compare(a.DocumentLocation, b.DocumentLocation); c != 0 {
		return c
	}
	if a.GetLineNumber() != b.GetLineNumber() {
		return a.GetLineNumber() - b.GetLineNumber()
	}
	if a.GetColumnNumber() != b.GetColumnNumber() {
		return a.GetColumnNumber() - b.GetColumnNumber()
	}
	if a.Severity != b.Severity {
		return int(a.Severity) - int(b.Severity)
	}
	if c := strings.Compare(a.Rule, b.Rule); c != 0 {
		return c
	}
	return strings.Compare(message(a), message(b))
}

func message(e *Error) string {
	if e.UnderlyingError == nil {
		return ""
	}
	return e.UnderlyingError.Error()
}

// CountBySeverity returns how many errors have each severity. Errors that are
// not *Error count as SeverityError.
func CountBySeverity(allErrors []error) map[Severity]int {
	counts := make(map[Severity]int)
	for _, err := range allErrors {
		var vErr *Error
		if errors.As(err, &vErr) {
			counts[vErr.Severity]++
		} else {
			counts[SeverityError]++
		}
	}
	return counts
}
