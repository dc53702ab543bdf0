package format

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

type JSONFormatter struct {
	// Categories resolves rule categories; results show "unknown" without it.
	Categories CategoryFunc
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonOutput struct {
	Results []jsonResult `json:"results"`
	Summary jsonSummary  `json:"summary"`
}

type jsonResult struct {
	Rule      string       `json:"rule"`
	MessageID string       `json:"messageId,omitempty"`
	Category  string       `json:"category"`
	Severity  string       `json:"severity"`
	Message   string       `json:"message"`
	Location  jsonLocation `json:"location"`
	Document  string       `json:"document,omitempty"`
}

type jsonLocation struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine,omitzero"`
	EndColumn int    `json:"endColumn,omitzero"`
	Node      string `json:"node,omitempty"`
}

type jsonSummary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Hints    int `json:"hints"`
}

func (f *JSONFormatter) Format(results []error) (string, error) {
	output := jsonOutput{
		Results: make([]jsonResult, 0, len(results)),
	}
	var c counts

	for _, err := range results {
		vErr, ok := asValidationError(err)
		if !ok {
			// Non-validation error
			output.Results = append(output.Results, jsonResult{
				Rule:     internalRule,
				Category: internalRule,
				Severity: "error",
				Message:  err.Error(),
			})
			c.errors++
			continue
		}

		result := jsonResult{
			Rule:      vErr.Rule,
			MessageID: vErr.MessageID,
			Category:  categoryOf(f.Categories, vErr.Rule),
			Severity:  vErr.Severity.String(),
			Message:   messageOf(vErr),
			Location: jsonLocation{
				Line:   vErr.GetLineNumber(),
				Column: vErr.GetColumnNumber(),
			},
			Document: vErr.DocumentLocation,
		}
		if n := vErr.Node; n != nil {
			result.Location.Node = string(n.Type)
			if n.Loc != nil {
				result.Location.EndLine = n.Loc.End.Line
				result.Location.EndColumn = n.Loc.End.Column + 1
			}
		}

		output.Results = append(output.Results, result)
		c.add(vErr.Severity)
	}

	output.Summary = jsonSummary{
		Total:    len(results),
		Errors:   c.errors,
		Warnings: c.warnings,
		Hints:    c.hints,
	}

	data, err := json.Marshal(output, jsontext.WithIndent("  "))
	if err != nil {
		return "", err
	}

	return string(data), nil
}
