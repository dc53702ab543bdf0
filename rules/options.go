package rules

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// UnusedExpressionsOptions configure no-unused-expressions. All flags default
// to false and are fixed once the rule is activated.
type UnusedExpressionsOptions struct {
	// AllowShortCircuit accepts a && b() when b() alone would be accepted.
	AllowShortCircuit bool `json:"allowShortCircuit"`
	// AllowTernary accepts c ? a() : b() when both branches would be accepted.
	AllowTernary bool `json:"allowTernary"`
	// AllowTaggedTemplates accepts tagged template statements such as tag`x`.
	AllowTaggedTemplates bool `json:"allowTaggedTemplates"`
	// EnforceForJSX reports JSX elements and fragments used as statements.
	EnforceForJSX bool `json:"enforceForJSX"`
}

// ParseUnusedExpressionsOptions reads options from their configuration form.
// Unknown keys and non-boolean values are errors.
func ParseUnusedExpressionsOptions(raw map[string]any) (UnusedExpressionsOptions, error) {
	var options UnusedExpressionsOptions
	if len(raw) == 0 {
		return options, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return options, fmt.Errorf("invalid options: %w", err)
	}
	if err := json.Unmarshal(data, &options, json.RejectUnknownMembers(true)); err != nil {
		return UnusedExpressionsOptions{}, fmt.Errorf("invalid options: %w", err)
	}
	return options, nil
}

func (o UnusedExpressionsOptions) asMap() map[string]any {
	return map[string]any{
		"allowShortCircuit":    o.AllowShortCircuit,
		"allowTernary":         o.AllowTernary,
		"allowTaggedTemplates": o.AllowTaggedTemplates,
		"enforceForJSX":        o.EnforceForJSX,
	}
}

func unusedExpressionsSchema() map[string]any {
	flag := func(description string) map[string]any {
		return map[string]any{"type": "boolean", "default": false, "description": description}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"allowShortCircuit":    flag("Allow short-circuit evaluations in expressions"),
			"allowTernary":         flag("Allow ternary operators in expressions"),
			"allowTaggedTemplates": flag("Allow tagged template literals in expressions"),
			"enforceForJSX":        flag("Report unused JSX element expressions"),
		},
		"additionalProperties": false,
	}
}
