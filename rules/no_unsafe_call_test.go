package rules_test

import (
	"strings"
	"testing"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/pointer"
	"github.com/chaifriendly/lint/rules"
	"github.com/chaifriendly/lint/typeinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typed marks the node of the given type starting at the first occurrence of
// needle in a single-line source.
type typed struct {
	needle   string
	nodeType estree.NodeType
	typ      *typeinfo.Type
}

func factsFor(t *testing.T, src string, options typeinfo.CompilerOptions, marks ...typed) *typeinfo.Facts {
	t.Helper()

	facts := typeinfo.NewFacts(options)
	for _, m := range marks {
		idx := strings.Index(src, m.needle)
		require.GreaterOrEqual(t, idx, 0, "needle %q", m.needle)
		facts.SetAt(1, idx+1, m.nodeType, m.typ)
	}
	return facts
}

type reported struct {
	messageID string
	nodeType  estree.NodeType
	column    int
}

func TestNoUnsafeCall(t *testing.T) {
	t.Parallel()

	functionType, err := typeinfo.NewType("function")
	require.NoError(t, err)
	noImplicitThis := typeinfo.CompilerOptions{NoImplicitThis: pointer.From(true)}
	strict := typeinfo.CompilerOptions{Strict: pointer.From(true)}

	tests := []struct {
		name     string
		src      string
		options  typeinfo.CompilerOptions
		marks    []typed
		expected []reported
	}{
		{
			name:     "any callee",
			src:      "anyVar();",
			marks:    []typed{{"anyVar", estree.Identifier, typeinfo.Any}},
			expected: []reported{{rules.MessageUnsafeCall, estree.Identifier, 1}},
		},
		{
			name:  "concrete callee",
			src:   "fn();",
			marks: []typed{{"fn", estree.Identifier, functionType}},
		},
		{
			name: "unknown callee",
			src:  "fn();",
		},
		{
			name:     "any member callee",
			src:      "x = anyVar.a.b();",
			marks:    []typed{{"anyVar", estree.MemberExpression, typeinfo.Any}},
			expected: []reported{{rules.MessageUnsafeCall, estree.MemberExpression, 5}},
		},
		{
			name: "this method with any this",
			src:  "this.method();",
			marks: []typed{
				{"this", estree.MemberExpression, typeinfo.Any},
				{"this", estree.ThisExpression, typeinfo.Any},
			},
			expected: []reported{{rules.MessageUnsafeCallThis, estree.MemberExpression, 1}},
		},
		{
			name:    "this method with noImplicitThis",
			src:     "this.method();",
			options: noImplicitThis,
			marks: []typed{
				{"this", estree.MemberExpression, typeinfo.Any},
				{"this", estree.ThisExpression, typeinfo.Any},
			},
			expected: []reported{{rules.MessageUnsafeCall, estree.MemberExpression, 1}},
		},
		{
			name:    "this method under strict",
			src:     "this.method();",
			options: strict,
			marks: []typed{
				{"this", estree.MemberExpression, typeinfo.Any},
				{"this", estree.ThisExpression, typeinfo.Any},
			},
			expected: []reported{{rules.MessageUnsafeCall, estree.MemberExpression, 1}},
		},
		{
			name:     "this method with typed this",
			src:      "this.method();",
			marks:    []typed{{"this", estree.MemberExpression, typeinfo.Any}},
			expected: []reported{{rules.MessageUnsafeCall, estree.MemberExpression, 1}},
		},
		{
			name: "computed this member",
			src:  "this.foo[bar]();",
			marks: []typed{
				{"this", estree.MemberExpression, typeinfo.Any},
				{"this", estree.ThisExpression, typeinfo.Any},
			},
			expected: []reported{{rules.MessageUnsafeCallThis, estree.MemberExpression, 1}},
		},
		{
			name: "this called directly",
			src:  "this();",
			marks: []typed{
				{"this", estree.ThisExpression, typeinfo.Any},
			},
			expected: []reported{{rules.MessageUnsafeCallThis, estree.ThisExpression, 1}},
		},
		{
			name:     "optional call",
			src:      "anyVar?.();",
			marks:    []typed{{"anyVar", estree.Identifier, typeinfo.Any}},
			expected: []reported{{rules.MessageUnsafeCall, estree.Identifier, 1}},
		},
		{
			name:     "new any",
			src:      "new Foo();",
			marks:    []typed{{"Foo", estree.Identifier, typeinfo.Any}},
			expected: []reported{{rules.MessageUnsafeNew, estree.NewExpression, 1}},
		},
		{
			name: "new this member",
			src:  "new this.Foo();",
			marks: []typed{
				{"this", estree.MemberExpression, typeinfo.Any},
				{"this", estree.ThisExpression, typeinfo.Any},
			},
			expected: []reported{{rules.MessageUnsafeCallThis, estree.NewExpression, 1}},
		},
		{
			name:  "new concrete",
			src:   "new Foo();",
			marks: []typed{{"Foo", estree.Identifier, functionType}},
		},
		{
			name:     "template tag",
			src:      "tag`x`;",
			marks:    []typed{{"tag", estree.Identifier, typeinfo.Any}},
			expected: []reported{{rules.MessageUnsafeTemplateTag, estree.Identifier, 1}},
		},
		{
			name: "template tag on any this",
			src:  "this.tag`x`;",
			marks: []typed{
				{"this", estree.MemberExpression, typeinfo.Any},
				{"this", estree.ThisExpression, typeinfo.Any},
			},
			expected: []reported{{rules.MessageUnsafeTemplateTag, estree.MemberExpression, 1}},
		},
		{
			name:     "type parameter constrained to any",
			src:      "fn();",
			marks:    []typed{{"fn", estree.Identifier, typeinfo.TypeParameter("T", typeinfo.Any)}},
			expected: []reported{{rules.MessageUnsafeCall, estree.Identifier, 1}},
		},
		{
			name:  "unconstrained type parameter",
			src:   "fn();",
			marks: []typed{{"fn", estree.Identifier, typeinfo.TypeParameter("T", nil)}},
		},
		{
			name: "nested calls",
			src:  "a(b());",
			marks: []typed{
				{"a", estree.Identifier, typeinfo.Any},
				{"b", estree.Identifier, typeinfo.Any},
			},
			expected: []reported{
				{rules.MessageUnsafeCall, estree.Identifier, 1},
				{rules.MessageUnsafeCall, estree.Identifier, 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			facts := factsFor(t, tt.src, tt.options, tt.marks...)
			problems, others := lintFile(t, &rules.NoUnsafeCallRule{}, parse(t, tt.src), nil, facts)
			require.Empty(t, others)

			var actual []reported
			for _, p := range problems {
				actual = append(actual, reported{p.MessageID, p.Node.Type, p.GetColumnNumber()})
			}
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestNoUnsafeCall_Messages(t *testing.T) {
	t.Parallel()

	src := "this.method();"
	facts := factsFor(t, src, typeinfo.CompilerOptions{},
		typed{"this", estree.MemberExpression, typeinfo.Any},
		typed{"this", estree.ThisExpression, typeinfo.Any},
	)

	problems, _ := lintFile(t, &rules.NoUnsafeCallRule{}, parse(t, src), nil, facts)
	require.Len(t, problems, 1)
	assert.Equal(t, rules.RuleNoUnsafeCall, problems[0].Rule)
	assert.Equal(t, "Unsafe call of an `any` typed value. `this` is typed as `any`.\n"+
		"You can try to fix this by turning on the `noImplicitThis` compiler option, or adding a `this` parameter to the function.",
		problems[0].UnderlyingError.Error())
}

func TestNoUnsafeCall_RequiresTypeInformation(t *testing.T) {
	t.Parallel()

	rule := &rules.NoUnsafeCallRule{}
	assert.True(t, rule.RequiresTypeChecking())

	problems, others := lintFile(t, rule, parse(t, "a();\nb();\nnew C();"), nil, nil)
	assert.Empty(t, problems)
	require.Len(t, others, 1, "activation fails once, not per node")
	require.ErrorIs(t, others[0], errors.ErrNoTypeInformation)
	assert.Contains(t, others[0].Error(), "test.js")
}

func TestNoUnsafeCall_Idempotent(t *testing.T) {
	t.Parallel()

	src := "a(); this.b(); new C(); d`x`; e();"
	facts := factsFor(t, src, typeinfo.CompilerOptions{},
		typed{"a", estree.Identifier, typeinfo.Any},
		typed{"this", estree.MemberExpression, typeinfo.Any},
		typed{"this", estree.ThisExpression, typeinfo.Any},
		typed{"C", estree.Identifier, typeinfo.Any},
		typed{"d", estree.Identifier, typeinfo.Any},
	)
	file := parse(t, src)

	first, _ := lintFile(t, &rules.NoUnsafeCallRule{}, file, nil, facts)
	second, _ := lintFile(t, &rules.NoUnsafeCallRule{}, file, nil, facts)
	require.Len(t, first, 4)
	assert.Equal(t, first, second)
}

func TestThisExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src   string
		found bool
	}{
		{src: "this.a;", found: true},
		{src: "this.a.b();", found: true},
		{src: "this.a[b];", found: true},
		{src: "this?.a;", found: true},
		{src: "this().a;", found: true},
		{src: "this;", found: true},
		{src: "a.b;"},
		{src: "a(this);"},
		{src: "(this, a).b;"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			file := parse(t, tt.src)
			expr := file.Root.Children(estree.KeyBody)[0].Expression()
			this := rules.ThisExpression(expr)
			if tt.found {
				require.NotNil(t, this)
				assert.Equal(t, estree.ThisExpression, this.Type)
			} else {
				assert.Nil(t, this)
			}
		})
	}
}
