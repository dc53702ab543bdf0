package rules_test

import (
	"testing"

	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseUnusedExpressions_IsDisallowed(t *testing.T) {
	t.Parallel()

	unary := func(op string) *estree.Node {
		n := estree.NewNode(estree.UnaryExpression, 0, 1).SetChild(estree.KeyArgument, ident("a"))
		n.Operator = op
		return n
	}
	tagged := estree.NewNode(estree.TaggedTemplateExpression, 0, 1).
		SetChild(estree.KeyTag, ident("tag")).
		SetChild(estree.KeyQuasi, estree.NewNode(estree.TemplateLiteral, 0, 1))
	logical := estree.NewNode(estree.LogicalExpression, 0, 1).
		SetChild(estree.KeyLeft, ident("a")).
		SetChild(estree.KeyRight, call(ident("b")))
	ternary := func(consequent, alternate *estree.Node) *estree.Node {
		return estree.NewNode(estree.ConditionalExpression, 0, 1).
			SetChild(estree.KeyTest, ident("c")).
			SetChild(estree.KeyConsequent, consequent).
			SetChild(estree.KeyAlternate, alternate)
	}

	tests := []struct {
		name       string
		options    rules.UnusedExpressionsOptions
		expr       *estree.Node
		disallowed bool
	}{
		{name: "identifier", expr: ident("a"), disallowed: true},
		{name: "call", expr: call(ident("f"))},
		{name: "new", expr: estree.NewNode(estree.NewExpression, 0, 1).SetChild(estree.KeyCallee, ident("F"))},
		{name: "await", expr: estree.NewNode(estree.AwaitExpression, 0, 1).SetChild(estree.KeyArgument, ident("p"))},
		{name: "yield", expr: estree.NewNode(estree.YieldExpression, 0, 1)},
		{name: "import", expr: estree.NewNode(estree.ImportExpression, 0, 1)},
		{name: "void", expr: unary("void")},
		{name: "delete", expr: unary("delete")},
		{name: "not", expr: unary("!"), disallowed: true},
		{name: "meta property", expr: estree.NewNode(estree.MetaProperty, 0, 1), disallowed: true},
		{name: "chain call", expr: wrap(estree.ChainExpression, call(ident("f")))},
		{name: "chain member", expr: wrap(estree.ChainExpression, estree.NewNode(estree.MemberExpression, 0, 1)), disallowed: true},
		{name: "logical", expr: logical, disallowed: true},
		{name: "logical short circuit", options: rules.UnusedExpressionsOptions{AllowShortCircuit: true}, expr: logical},
		{name: "ternary", expr: ternary(call(ident("a")), call(ident("b"))), disallowed: true},
		{name: "ternary allowed", options: rules.UnusedExpressionsOptions{AllowTernary: true}, expr: ternary(call(ident("a")), call(ident("b")))},
		{name: "ternary one branch", options: rules.UnusedExpressionsOptions{AllowTernary: true}, expr: ternary(call(ident("a")), ident("b")), disallowed: true},
		{name: "tagged template", expr: tagged, disallowed: true},
		{name: "tagged template allowed", options: rules.UnusedExpressionsOptions{AllowTaggedTemplates: true}, expr: tagged},
		{name: "jsx element", expr: estree.NewNode(estree.JSXElement, 0, 1)},
		{name: "jsx fragment enforced", options: rules.UnusedExpressionsOptions{EnforceForJSX: true}, expr: estree.NewNode(estree.JSXFragment, 0, 1), disallowed: true},
		{name: "unknown kind", expr: estree.NewNode("DoExpression", 0, 1)},
		{name: "missing", expr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base := rules.NewBaseUnusedExpressions(nil, tt.options)
			assert.Equal(t, tt.disallowed, base.IsDisallowed(tt.expr))
		})
	}
}

func TestBaseUnusedExpressions_TypeScriptWrappers(t *testing.T) {
	t.Parallel()

	file := program(
		wrap(estree.TSAsExpression, ident("a")),
		wrap(estree.TSNonNullExpression, call(ident("f"))),
		wrap(estree.TSSatisfiesExpression, ident("b")),
		wrap(estree.TSTypeAssertion, call(ident("g"))),
		wrap(estree.TSInstantiationExpression, ident("h")),
	)

	problems, others := lintFile(t, &rules.NoUnusedExpressionsRule{}, file, nil, nil)
	require.Empty(t, others)

	var starts []int
	for _, p := range problems {
		starts = append(starts, p.Node.Range[0])
	}
	assert.Equal(t, []int{0, 20, 40}, starts, "wrapped identifiers are reported at their statements")
}

func TestBaseUnusedExpressions_JSX(t *testing.T) {
	t.Parallel()

	file := program(estree.NewNode(estree.JSXElement, 0, 5))

	problems, _ := lintFile(t, &rules.NoUnusedExpressionsRule{}, file, nil, nil)
	assert.Empty(t, problems)

	problems, _ = lintFile(t, &rules.NoUnusedExpressionsRule{}, file, map[string]any{"enforceForJSX": true}, nil)
	assert.Len(t, problems, 1)
}
