package format

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/chaifriendly/lint/validation"
)

// SummaryFormatter formats results as a per-rule summary table.
type SummaryFormatter struct {
	// Categories resolves rule categories; rows show "unknown" without it.
	Categories CategoryFunc
}

// NewSummaryFormatter creates a new SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

type ruleSummary struct {
	rule     string
	category string
	severity validation.Severity
	count    int
}

// Format outputs a per-rule summary table sorted by count descending.
func (f *SummaryFormatter) Format(results []error) (string, error) {
	byRule := make(map[string]*ruleSummary)
	var c counts

	bucket := func(rule, category string, severity validation.Severity) {
		rs, ok := byRule[rule]
		if !ok {
			rs = &ruleSummary{rule: rule, category: category, severity: severity}
			byRule[rule] = rs
		}
		rs.count++
	}

	for _, err := range results {
		if vErr, ok := asValidationError(err); ok {
			bucket(vErr.Rule, categoryOf(f.Categories, vErr.Rule), vErr.Severity)
			c.add(vErr.Severity)
			continue
		}
		bucket(internalRule, internalRule, validation.SeverityError)
		c.errors++
	}

	sorted := make([]*ruleSummary, 0, len(byRule))
	for _, rs := range byRule {
		sorted = append(sorted, rs)
	}
	slices.SortFunc(sorted, func(a, b *ruleSummary) int {
		return cmp.Or(cmp.Compare(b.count, a.count), cmp.Compare(a.rule, b.rule))
	})

	var sb strings.Builder

	fmt.Fprintf(&sb, "%-40s %8s %15s %8s\n", "Rule", "Severity", "Category", "Count")
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, rs := range sorted {
		fmt.Fprintf(&sb, "%-40s %8s %15s %8d\n", rs.rule, rs.severity, rs.category, rs.count)
	}

	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "✖ %d problems (%d errors, %d warnings, %d hints) across %d rules\n",
		len(results), c.errors, c.warnings, c.hints, len(byRule))

	return sb.String(), nil
}
