package rules

import (
	"context"

	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/linter"
	"github.com/chaifriendly/lint/validation"
)

// RuleNoUnusedExpressions is the ID of the chai-friendly unused-expression rule.
const RuleNoUnusedExpressions = "no-unused-expressions"

// NoUnusedExpressionsRule disallows expression statements whose value is
// discarded, except chai assertion chains such as expect(x).to.be.true and
// x.should.be.ok, which only have an effect through property getters.
type NoUnusedExpressionsRule struct {
	// NewBase overrides the check statements are forwarded to. Nil means
	// NewBaseUnusedExpressions.
	NewBase func(rc *Context, options UnusedExpressionsOptions) BaseRule
}

var _ linter.RuleRunner[*estree.File] = (*NoUnusedExpressionsRule)(nil)

func (r *NoUnusedExpressionsRule) ID() string       { return RuleNoUnusedExpressions }
func (r *NoUnusedExpressionsRule) Category() string { return CategoryBestPractices }
func (r *NoUnusedExpressionsRule) Description() string {
	return "Disallow unused expressions. Expression statements that neither assign, call, nor construct have no effect and usually indicate a typo, while chai assertion chains like expect(value).to.be.true are allowed because their property getters perform the assertion."
}
func (r *NoUnusedExpressionsRule) Summary() string {
	return "Disallow unused expressions, allowing chai assertions"
}
func (r *NoUnusedExpressionsRule) Link() string {
	return docsBaseURL + RuleNoUnusedExpressions
}
func (r *NoUnusedExpressionsRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}

func (r *NoUnusedExpressionsRule) Messages() map[string]string {
	return map[string]string{
		MessageUnusedExpression: "Expected an assignment or function call and instead saw an expression.",
	}
}

func (r *NoUnusedExpressionsRule) ConfigSchema() map[string]any {
	return unusedExpressionsSchema()
}

func (r *NoUnusedExpressionsRule) ConfigDefaults() map[string]any {
	return UnusedExpressionsOptions{}.asMap()
}

func (r *NoUnusedExpressionsRule) GoodExample() string {
	return `expect(result).to.be.true;
result.should.be.ok;
expect(fn).to.have.been.calledOnce;
count++;
doWork();`
}

func (r *NoUnusedExpressionsRule) BadExample() string {
	return `result === expected;
value;
a && b;
"use" + "less";`
}

func (r *NoUnusedExpressionsRule) Rationale() string {
	return "An expression statement that does nothing is almost always a mistake, such as a comparison written where an assignment was meant. Chai's property assertions look exactly like such statements, so the stock rule cannot be used in chai test suites without disabling it."
}

func (r *NoUnusedExpressionsRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*estree.File], config *linter.RuleConfig) []error {
	return runRule(ctx, r, docInfo, config)
}

func (r *NoUnusedExpressionsRule) Create(rc *Context) (Visitors, error) {
	options, err := ParseUnusedExpressionsOptions(rc.Options())
	if err != nil {
		return nil, err
	}

	var base BaseRule
	if r.NewBase != nil {
		base = r.NewBase(rc, options)
	} else {
		base = NewBaseUnusedExpressions(rc, options)
	}

	classifier := ExpressionClassifier{Options: options}
	return Visitors{
		string(estree.ExpressionStatement): func(node *estree.Node) {
			if classifier.IsExempt(node) {
				return
			}
			base.ExpressionStatement(node)
		},
	}, nil
}

// ExpressionClassifier decides which expression statements are exempt from
// the base check.
type ExpressionClassifier struct {
	Options UnusedExpressionsOptions
}

// IsExempt reports whether stmt, an ExpressionStatement, must not be reported.
func (c ExpressionClassifier) IsExempt(stmt *estree.Node) bool {
	return stmt.IsDirective() ||
		c.IsValidExpression(stmt.Expression()) ||
		IsChaiExpectCall(stmt) ||
		IsChaiShouldCall(stmt)
}

// IsValidExpression reports whether node is an accepted use of an expression
// as a statement: an optional call, a dynamic import, or, when enabled, a
// short-circuit or ternary whose chosen branches are themselves valid.
func (c ExpressionClassifier) IsValidExpression(node *estree.Node) bool {
	switch {
	case node == nil:
		return false
	case c.Options.AllowShortCircuit && node.Is(estree.LogicalExpression):
		return c.IsValidExpression(node.Right())
	case c.Options.AllowTernary && node.Is(estree.ConditionalExpression):
		return c.IsValidExpression(node.Alternate()) && c.IsValidExpression(node.Consequent())
	}
	return (node.Is(estree.ChainExpression) && node.Expression().Is(estree.CallExpression)) ||
		node.Is(estree.ImportExpression)
}

// IsChaiExpectCall reports whether stmt is a property chain hanging off an
// expect(...) call, e.g. expect(x).to.be.true or expect(x).to.be.ok.
func IsChaiExpectCall(stmt *estree.Node) bool {
	expr := stmt.Expression()
	if !expr.Is(estree.MemberExpression) {
		return false
	}

	for node := expr.Object(); node != nil; {
		switch node.Type {
		case estree.MemberExpression:
			node = node.Object()
		case estree.CallExpression:
			if callee := node.Callee(); callee.Is(estree.Identifier) && callee.Name == "expect" {
				return true
			}
			node = node.Callee()
		case estree.ChainExpression:
			node = node.Expression()
		default:
			return false
		}
	}
	return false
}

// IsChaiShouldCall reports whether stmt is a property chain passing through
// a should property, e.g. x.should.be.ok or x?.should.exist.
func IsChaiShouldCall(stmt *estree.Node) bool {
	expr := stmt.Expression()
	if expr.Is(estree.ChainExpression) {
		expr = expr.Expression()
	}
	if !expr.Is(estree.MemberExpression) {
		return false
	}

	for node := expr.Object(); node != nil; {
		switch node.Type {
		case estree.MemberExpression:
			if isShouldProperty(node) {
				return true
			}
			node = node.Object()
		case estree.CallExpression:
			node = node.Callee()
		case estree.ChainExpression:
			node = node.Expression()
		default:
			return false
		}
	}
	return false
}

// isShouldProperty matches obj.should and obj[should]; string keys such as
// obj["should"] are not recognized.
func isShouldProperty(member *estree.Node) bool {
	prop := member.Property()
	return prop != nil && prop.Name == "should"
}
