package linter

import (
	"fmt"
	"maps"
	"slices"
)

// RulesetAll is the implicit ruleset holding every registered rule.
const RulesetAll = "all"

// Registry holds registered rules
type Registry[T any] struct {
	rules    map[string]RuleRunner[T]
	rulesets map[string][]string // ruleset name -> rule IDs
}

// NewRegistry creates a new rule registry
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		rules:    make(map[string]RuleRunner[T]),
		rulesets: make(map[string][]string),
	}
}

// Register registers a rule, replacing any rule with the same ID
func (r *Registry[T]) Register(rule RuleRunner[T]) {
	r.rules[rule.ID()] = rule
}

// RegisterRuleset registers a ruleset
func (r *Registry[T]) RegisterRuleset(name string, ruleIDs []string) error {
	if name == RulesetAll {
		return fmt.Errorf("ruleset %q is reserved", name)
	}
	if _, exists := r.rulesets[name]; exists {
		return fmt.Errorf("ruleset %q already registered", name)
	}

	for _, id := range ruleIDs {
		if _, exists := r.rules[id]; !exists {
			return fmt.Errorf("rule %q in ruleset %q not found", id, name)
		}
	}

	r.rulesets[name] = slices.Clone(ruleIDs)
	return nil
}

// GetRule returns a rule by ID
func (r *Registry[T]) GetRule(id string) (RuleRunner[T], bool) {
	rule, ok := r.rules[id]
	return rule, ok
}

// GetRuleset returns rule IDs for a ruleset
func (r *Registry[T]) GetRuleset(name string) ([]string, bool) {
	if name == RulesetAll {
		return r.AllRuleIDs(), true
	}
	ids, ok := r.rulesets[name]
	return ids, ok
}

// AllRules returns all registered rules sorted by ID
func (r *Registry[T]) AllRules() []RuleRunner[T] {
	rules := make([]RuleRunner[T], 0, len(r.rules))
	for _, id := range r.AllRuleIDs() {
		rules = append(rules, r.rules[id])
	}
	return rules
}

// AllRuleIDs returns all registered rule IDs
func (r *Registry[T]) AllRuleIDs() []string {
	return slices.Sorted(maps.Keys(r.rules))
}

// AllCategories returns all unique categories
func (r *Registry[T]) AllCategories() []string {
	categories := make(map[string]bool)
	for _, rule := range r.rules {
		categories[rule.Category()] = true
	}
	return slices.Sorted(maps.Keys(categories))
}

// AllRulesets returns all registered ruleset names, including "all"
func (r *Registry[T]) AllRulesets() []string {
	names := append(slices.Collect(maps.Keys(r.rulesets)), RulesetAll)
	slices.Sort(names)
	return names
}

// RulesetsContaining returns names of rulesets that contain the given rule ID
func (r *Registry[T]) RulesetsContaining(ruleID string) []string {
	if _, ok := r.rules[ruleID]; !ok {
		return nil
	}

	sets := []string{RulesetAll}
	for name, ids := range r.rulesets {
		if slices.Contains(ids, ruleID) {
			sets = append(sets, name)
		}
	}
	slices.Sort(sets)
	return sets
}
