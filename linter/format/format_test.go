package format_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/linter/format"
	"github.com/chaifriendly/lint/validation"
	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeAt(line, column int) *estree.Node {
	n := estree.NewNode(estree.Identifier, 0, 3)
	n.Loc = &estree.SourceLocation{
		Start: estree.Position{Line: line, Column: column - 1},
		End:   estree.Position{Line: line, Column: column + 2},
	}
	return n
}

func categories(rule string) string {
	return map[string]string{
		"no-unused-expressions": "best-practices",
		"no-unsafe-call":        "type-safety",
	}[rule]
}

func TestTextFormatter_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		errors   []error
		contains []string
	}{
		{
			name:     "empty errors",
			errors:   []error{},
			contains: []string{},
		},
		{
			name: "single error",
			errors: []error{
				validation.NewValidationError(validation.SeverityError, "test-rule", errors.New("test error message"), nil),
			},
			contains: []string{"-1:-1", "error", "test-rule", "test error message", "1 problems (1 errors, 0 warnings, 0 hints)"},
		},
		{
			name: "multiple errors with different severities",
			errors: []error{
				validation.NewValidationError(validation.SeverityError, "error-rule", errors.New("error message"), nil),
				validation.NewValidationError(validation.SeverityWarning, "warning-rule", errors.New("warning message"), nil),
				validation.NewValidationError(validation.SeverityHint, "hint-rule", errors.New("hint message"), nil),
			},
			contains: []string{
				"error-rule", "error message",
				"warning-rule", "warning message",
				"hint-rule", "hint message",
				"3 problems (1 errors, 1 warnings, 1 hints)",
			},
		},
		{
			name: "error with location",
			errors: []error{
				validation.NewMessageError(validation.SeverityError, "no-unsafe-call", "unsafeCall", "Unsafe call of an `any` typed value.", nodeAt(42, 10)),
			},
			contains: []string{"42:10", "no-unsafe-call", "Unsafe call"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := format.NewTextFormatter().Format(tt.errors)
			require.NoError(t, err)

			if len(tt.errors) == 0 {
				assert.Empty(t, result)
			}
			for _, substr := range tt.contains {
				assert.Contains(t, result, substr, "output should contain %q", substr)
			}
		})
	}
}

func TestTextFormatter_Format_ColumnAlignment(t *testing.T) {
	t.Parallel()

	result, err := format.NewTextFormatter().Format([]error{
		&validation.Error{
			UnderlyingError: errors.New("first"),
			Node:            nodeAt(1, 1),
			Severity:        validation.SeverityWarning,
			Rule:            "short-rule",
		},
		&validation.Error{
			UnderlyingError: errors.New("second"),
			Node:            nodeAt(1200, 20),
			Severity:        validation.SeverityWarning,
			Rule:            "longer-rule",
		},
	})
	require.NoError(t, err)

	lines := strings.Split(result, "\n")
	require.GreaterOrEqual(t, len(lines), 2)

	// location is right-aligned to width 7 ("1200:20"), severity left-aligned to width 7 ("warning"),
	// rule left-aligned to width 11 ("longer-rule")
	assert.Equal(t, "    1:1 warning short-rule  first", lines[0])
	assert.Equal(t, "1200:20 warning longer-rule second", lines[1])
}

func TestTextFormatter_Color(t *testing.T) {
	t.Parallel()

	errs := []error{validation.NewValidationError(validation.SeverityError, "test-rule", errors.New("boom"), nodeAt(1, 1))}

	plain, err := format.NewTextFormatter().Format(errs)
	require.NoError(t, err)
	colored, err := format.NewColorTextFormatter().Format(errs)
	require.NoError(t, err)

	assert.NotContains(t, plain, "\x1b[")
	assert.Contains(t, colored, "boom")
	assert.Contains(t, colored, "test-rule")
}

func TestTextFormatter_NonValidationError(t *testing.T) {
	t.Parallel()

	result, err := format.NewTextFormatter().Format([]error{errors.New("something went wrong internally")})
	require.NoError(t, err)

	assert.Contains(t, result, "- error internal something went wrong internally")
	assert.Contains(t, result, "1 errors")
}

func TestTextFormatter_DocumentLocation(t *testing.T) {
	t.Parallel()

	vErr := validation.NewValidationError(validation.SeverityError, "test-rule", errors.New("msg"), nil)
	vErr.DocumentLocation = "test/other.spec.js"

	result, err := format.NewTextFormatter().Format([]error{vErr})
	require.NoError(t, err)
	assert.Contains(t, result, "(document: test/other.spec.js)")
}

type jsonOutput struct {
	Results []struct {
		Rule      string `json:"rule"`
		MessageID string `json:"messageId"`
		Category  string `json:"category"`
		Severity  string `json:"severity"`
		Message   string `json:"message"`
		Document  string `json:"document"`
		Location  struct {
			Line      int    `json:"line"`
			Column    int    `json:"column"`
			EndLine   int    `json:"endLine"`
			EndColumn int    `json:"endColumn"`
			Node      string `json:"node"`
		} `json:"location"`
	} `json:"results"`
	Summary struct {
		Total    int `json:"total"`
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
		Hints    int `json:"hints"`
	} `json:"summary"`
}

func formatJSON(t *testing.T, errs []error) jsonOutput {
	t.Helper()

	f := format.NewJSONFormatter()
	f.Categories = categories
	result, err := f.Format(errs)
	require.NoError(t, err)

	var output jsonOutput
	require.NoError(t, json.Unmarshal([]byte(result), &output))
	return output
}

func TestJSONFormatter_Format(t *testing.T) {
	t.Parallel()

	vErr := validation.NewMessageError(validation.SeverityError, "no-unsafe-call", "unsafeNew", "Unsafe construction of an any type value.", nodeAt(3, 5))
	vErr.DocumentLocation = "a.ts"

	output := formatJSON(t, []error{
		vErr,
		validation.NewValidationError(validation.SeverityHint, "custom-rule", errors.New("a hint"), nil),
	})

	require.Len(t, output.Results, 2)
	first := output.Results[0]
	assert.Equal(t, "no-unsafe-call", first.Rule)
	assert.Equal(t, "unsafeNew", first.MessageID)
	assert.Equal(t, "type-safety", first.Category)
	assert.Equal(t, "error", first.Severity)
	assert.Equal(t, "a.ts", first.Document)
	assert.Equal(t, 3, first.Location.Line)
	assert.Equal(t, 5, first.Location.Column)
	assert.Equal(t, 3, first.Location.EndLine)
	assert.Equal(t, 8, first.Location.EndColumn)
	assert.Equal(t, "Identifier", first.Location.Node)

	second := output.Results[1]
	assert.Equal(t, "unknown", second.Category)
	assert.Equal(t, -1, second.Location.Line)

	assert.Equal(t, 2, output.Summary.Total)
	assert.Equal(t, 1, output.Summary.Errors)
	assert.Equal(t, 1, output.Summary.Hints)
}

func TestJSONFormatter_NonValidationError(t *testing.T) {
	t.Parallel()

	output := formatJSON(t, []error{errors.New("internal failure")})

	require.Len(t, output.Results, 1)
	assert.Equal(t, "internal", output.Results[0].Rule)
	assert.Equal(t, "internal", output.Results[0].Category)
	assert.Equal(t, "error", output.Results[0].Severity)
	assert.Equal(t, "internal failure", output.Results[0].Message)
	assert.Equal(t, 1, output.Summary.Errors)
	assert.Equal(t, 1, output.Summary.Total)
}

func TestJSONFormatter_Empty(t *testing.T) {
	t.Parallel()

	result, err := format.NewJSONFormatter().Format(nil)
	require.NoError(t, err)
	assert.Contains(t, result, `"results": []`)
}

func TestSummaryFormatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		errors   []error
		contains []string
	}{
		{
			name:     "empty",
			contains: []string{"Rule", "0 problems"},
		},
		{
			name: "aggregates same rule",
			errors: []error{
				validation.NewValidationError(validation.SeverityError, "no-unused-expressions", errors.New("a"), nil),
				validation.NewValidationError(validation.SeverityError, "no-unused-expressions", errors.New("b"), nil),
				validation.NewValidationError(validation.SeverityWarning, "no-unsafe-call", errors.New("c"), nil),
			},
			contains: []string{"best-practices", "type-safety", "3 problems (2 errors, 1 warnings, 0 hints) across 2 rules"},
		},
		{
			name:     "non-validation error",
			errors:   []error{errors.New("boom")},
			contains: []string{"internal", "1 errors"},
		},
		{
			name: "rule without category",
			errors: []error{
				validation.NewValidationError(validation.SeverityHint, "other", errors.New("a"), nil),
			},
			contains: []string{"unknown", "1 hints"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := format.NewSummaryFormatter()
			f.Categories = categories
			result, err := f.Format(tt.errors)
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, result, s)
			}
		})
	}
}

func TestSummaryFormatter_SortsByCount(t *testing.T) {
	t.Parallel()

	result, err := format.NewSummaryFormatter().Format([]error{
		validation.NewValidationError(validation.SeverityError, "b-rule", errors.New("x"), nil),
		validation.NewValidationError(validation.SeverityError, "a-rule", errors.New("x"), nil),
		validation.NewValidationError(validation.SeverityError, "b-rule", errors.New("y"), nil),
	})
	require.NoError(t, err)

	assert.Less(t, strings.Index(result, "b-rule"), strings.Index(result, "a-rule"), "higher counts come first")
}
