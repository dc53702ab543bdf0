package rules

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/linter"
	"github.com/chaifriendly/lint/validation"
)

// Visitor is called for each node matching the selector it is registered under.
type Visitor func(node *estree.Node)

// Visitors maps selectors (see estree.ParseSelector) to visitors.
type Visitors map[string]Visitor

type boundVisitor struct {
	selector estree.Selector
	visit    Visitor
}

// Run walks root once in pre-order and calls every visitor whose selector
// matches the current node. Visitors registered for the same node run in the
// order their maps were given; within one map, in selector order.
func Run(ctx context.Context, root *estree.Node, visitors ...Visitors) error {
	var bound []boundVisitor
	for _, v := range visitors {
		for _, raw := range slices.Sorted(maps.Keys(v)) {
			sel, err := estree.ParseSelector(raw)
			if err != nil {
				return err
			}
			bound = append(bound, boundVisitor{selector: sel, visit: v[raw]})
		}
	}

	for item := range estree.Walk(ctx, root) {
		for _, b := range bound {
			if b.selector.Matches(item.Node) {
				b.visit(item.Node)
			}
		}
	}
	return ctx.Err()
}

// visitorRule is a rule expressed as a visitor factory.
type visitorRule interface {
	linter.Rule
	linter.MessagesRule
	Create(rc *Context) (Visitors, error)
}

// runRule activates rule against one document and collects its reports.
// Activation failures are returned as plain errors so the engine reports them
// once as internal errors.
func runRule(ctx context.Context, rule visitorRule, docInfo *linter.DocumentInfo[*estree.File], config *linter.RuleConfig) []error {
	if docInfo == nil || docInfo.Document == nil || docInfo.Document.Root == nil {
		return nil
	}

	ctx = validation.ContextWithValidationContext(ctx)
	rc := NewContext(ctx, ContextOptions{
		Rule:     rule.ID(),
		Severity: config.GetSeverity(rule.DefaultSeverity()),
		Messages: rule.Messages(),
		File:     docInfo.Document,
		Location: docInfo.Location,
		Options:  config.GetOptions(),
		Types:    docInfo.Types,
	})

	visitors, err := rule.Create(rc)
	if err != nil {
		return []error{fmt.Errorf("%s: %s: %w", docInfo.Location, rule.ID(), err)}
	}

	if err := Run(ctx, docInfo.Document.Root, visitors); err != nil {
		return append(validation.GetValidationErrors(ctx), err)
	}
	return validation.GetValidationErrors(ctx)
}
