package rules

import (
	"github.com/chaifriendly/lint/estree"
)

// MessageUnusedExpression is reported for expression statements whose value is discarded.
const MessageUnusedExpression = "unusedExpression"

// BaseRule is the stock unused-expression check that no-unused-expressions
// forwards statements to once none of its exemptions apply.
type BaseRule interface {
	ExpressionStatement(node *estree.Node)
}

// BaseUnusedExpressions is the standard unused-expression check. It reports
// an expression statement unless its expression has an effect (assignment,
// call, construction, update, await, yield, import, void or delete) or is
// accepted by one of the options.
type BaseUnusedExpressions struct {
	options UnusedExpressionsOptions
	report  func(node *estree.Node, messageID string)
}

var _ BaseRule = (*BaseUnusedExpressions)(nil)

// NewBaseUnusedExpressions returns the standard check reporting through rc.
func NewBaseUnusedExpressions(rc *Context, options UnusedExpressionsOptions) *BaseUnusedExpressions {
	return &BaseUnusedExpressions{options: options, report: rc.Report}
}

func (b *BaseUnusedExpressions) ExpressionStatement(node *estree.Node) {
	if node.IsDirective() {
		return
	}

	expr := node.Expression()
	// Type-only wrappers do not change what the statement does at runtime.
	if expr.Is(estree.TSAsExpression, estree.TSNonNullExpression, estree.TSSatisfiesExpression,
		estree.TSTypeAssertion, estree.TSInstantiationExpression) {
		expr = expr.Expression()
	}

	if b.IsDisallowed(expr) {
		b.report(node, MessageUnusedExpression)
	}
}

// IsDisallowed reports whether expr, used as a statement, has no effect.
func (b *BaseUnusedExpressions) IsDisallowed(expr *estree.Node) bool {
	if expr == nil {
		return false
	}

	switch expr.Type {
	case estree.ArrayExpression,
		estree.ArrowFunctionExpression,
		estree.BinaryExpression,
		estree.ClassExpression,
		estree.FunctionExpression,
		estree.Identifier,
		estree.Literal,
		estree.MemberExpression,
		estree.MetaProperty,
		estree.ObjectExpression,
		estree.SequenceExpression,
		estree.TemplateLiteral,
		estree.ThisExpression:
		return true
	case estree.ChainExpression:
		return b.IsDisallowed(expr.Expression())
	case estree.ConditionalExpression:
		if b.options.AllowTernary {
			return b.IsDisallowed(expr.Consequent()) || b.IsDisallowed(expr.Alternate())
		}
		return true
	case estree.LogicalExpression:
		if b.options.AllowShortCircuit {
			return b.IsDisallowed(expr.Right())
		}
		return true
	case estree.TaggedTemplateExpression:
		return !b.options.AllowTaggedTemplates
	case estree.UnaryExpression:
		return expr.Operator != "void" && expr.Operator != "delete"
	case estree.JSXElement, estree.JSXFragment:
		return b.options.EnforceForJSX
	default:
		return false
	}
}
