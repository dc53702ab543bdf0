package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chaifriendly/lint/validation"
)

// TextFormatter writes one aligned line per result followed by a totals line.
type TextFormatter struct {
	// Color enables ANSI styling of severities and the totals line.
	Color bool
}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// NewColorTextFormatter returns a TextFormatter that styles its output.
func NewColorTextFormatter() *TextFormatter {
	return &TextFormatter{Color: true}
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

type textRow struct {
	location string
	severity validation.Severity
	rule     string
	message  string
}

func (f *TextFormatter) Format(results []error) (string, error) {
	rows := make([]textRow, 0, len(results))
	var c counts

	for _, err := range results {
		if vErr, ok := asValidationError(err); ok {
			msg := messageOf(vErr)
			if vErr.DocumentLocation != "" {
				msg = fmt.Sprintf("%s (document: %s)", msg, vErr.DocumentLocation)
			}
			rows = append(rows, textRow{
				location: strconv.Itoa(vErr.GetLineNumber()) + ":" + strconv.Itoa(vErr.GetColumnNumber()),
				severity: vErr.Severity,
				rule:     vErr.Rule,
				message:  msg,
			})
			c.add(vErr.Severity)
			continue
		}

		// Non-validation error
		rows = append(rows, textRow{location: "-", severity: validation.SeverityError, rule: internalRule, message: err.Error()})
		c.errors++
	}

	locWidth, sevWidth, ruleWidth := 0, 0, 0
	for _, r := range rows {
		locWidth = max(locWidth, len(r.location))
		sevWidth = max(sevWidth, len(r.severity.String()))
		ruleWidth = max(ruleWidth, len(r.rule))
	}

	var sb strings.Builder
	for _, r := range rows {
		severity := fmt.Sprintf("%-*s", sevWidth, r.severity)
		rule := fmt.Sprintf("%-*s", ruleWidth, r.rule)
		location := fmt.Sprintf("%*s", locWidth, r.location)
		if f.Color {
			severity = severityStyle(r.severity).Render(severity)
			location = dimStyle.Render(location)
			rule = dimStyle.Render(rule)
		}
		fmt.Fprintf(&sb, "%s %s %s %s\n", location, severity, rule, r.message)
	}

	if len(results) > 0 {
		total := fmt.Sprintf("✖ %d problems (%d errors, %d warnings, %d hints)", len(results), c.errors, c.warnings, c.hints)
		if f.Color {
			style := warningStyle
			if c.errors > 0 {
				style = errorStyle
			}
			total = style.Render(total)
		}
		sb.WriteString("\n")
		sb.WriteString(total)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func severityStyle(s validation.Severity) lipgloss.Style {
	switch s {
	case validation.SeverityError:
		return errorStyle
	case validation.SeverityWarning:
		return warningStyle
	default:
		return hintStyle
	}
}
