// Package rules holds the lint rules for JavaScript and TypeScript sources and
// the visitor machinery they are written against.
package rules

import (
	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/linter"
)

// All returns a fresh instance of every rule in this package.
func All() []linter.RuleRunner[*estree.File] {
	return []linter.RuleRunner[*estree.File]{
		&NoUnusedExpressionsRule{},
		&NoUnsafeCallRule{},
	}
}

// RegisterDefaultRules registers every rule and the recommended and
// type-checked rulesets.
func RegisterDefaultRules(registry *linter.Registry[*estree.File]) error {
	for _, rule := range All() {
		registry.Register(rule)
	}

	if err := registry.RegisterRuleset(RulesetRecommended, []string{
		RuleNoUnusedExpressions,
	}); err != nil {
		return err
	}
	return registry.RegisterRuleset(RulesetTypeChecked, []string{
		RuleNoUnusedExpressions,
		RuleNoUnsafeCall,
	})
}

// NewRegistry returns a registry populated by RegisterDefaultRules.
func NewRegistry() (*linter.Registry[*estree.File], error) {
	registry := linter.NewRegistry[*estree.File]()
	if err := RegisterDefaultRules(registry); err != nil {
		return nil, err
	}
	return registry, nil
}
