package rules_test

import (
	"testing"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/jsparse"
	"github.com/chaifriendly/lint/linter"
	"github.com/chaifriendly/lint/rules"
	"github.com/chaifriendly/lint/typeinfo"
	"github.com/chaifriendly/lint/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *estree.File {
	t.Helper()
	file, err := jsparse.Parse("test.js", []byte(src))
	require.NoError(t, err)
	return file
}

// lintFile runs rule over file and splits the result into reported problems
// and other errors.
func lintFile(t *testing.T, rule linter.RuleRunner[*estree.File], file *estree.File, options map[string]any, types typeinfo.Service) ([]*validation.Error, []error) {
	t.Helper()

	docInfo := linter.NewDocumentInfoWithTypes(file, "test.js", types)
	var problems []*validation.Error
	var others []error
	for _, err := range rule.Run(t.Context(), docInfo, &linter.RuleConfig{Options: options}) {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			problems = append(problems, vErr)
		} else {
			others = append(others, err)
		}
	}
	return problems, others
}

// program builds a Program with one expression statement per expression.
func program(exprs ...*estree.Node) *estree.File {
	var body []*estree.Node
	for i, expr := range exprs {
		stmt := estree.NewNode(estree.ExpressionStatement, i*10, i*10+9).SetChild(estree.KeyExpression, expr)
		body = append(body, stmt)
	}
	root := estree.NewNode(estree.Program, 0, len(exprs)*10).SetChildren(estree.KeyBody, body)
	estree.Link(root)
	return &estree.File{Root: root, Path: "tree.json"}
}

func ident(name string) *estree.Node {
	n := estree.NewNode(estree.Identifier, 0, len(name))
	n.Name = name
	return n
}

func wrap(typ estree.NodeType, expr *estree.Node) *estree.Node {
	return estree.NewNode(typ, 0, 1).SetChild(estree.KeyExpression, expr)
}

func call(callee *estree.Node) *estree.Node {
	return estree.NewNode(estree.CallExpression, 0, 1).SetChild(estree.KeyCallee, callee)
}

func TestRegisterDefaultRules(t *testing.T) {
	t.Parallel()

	registry, err := rules.NewRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{rules.RuleNoUnsafeCall, rules.RuleNoUnusedExpressions}, registry.AllRuleIDs())

	recommended, ok := registry.GetRuleset(rules.RulesetRecommended)
	require.True(t, ok)
	assert.Equal(t, []string{rules.RuleNoUnusedExpressions}, recommended)

	typeChecked, ok := registry.GetRuleset(rules.RulesetTypeChecked)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{rules.RuleNoUnusedExpressions, rules.RuleNoUnsafeCall}, typeChecked)

	assert.Equal(t, []string{rules.CategoryBestPractices, rules.CategoryTypeSafety}, registry.AllCategories())

	err = rules.RegisterDefaultRules(registry)
	require.Error(t, err, "rulesets cannot be registered twice")
}

func TestRules_Metadata(t *testing.T) {
	t.Parallel()

	for _, rule := range rules.All() {
		t.Run(rule.ID(), func(t *testing.T) {
			t.Parallel()

			assert.NotEmpty(t, rule.Description())
			assert.NotEmpty(t, rule.Summary())
			assert.Contains(t, rule.Link(), rule.ID())
			assert.Equal(t, validation.SeverityError, rule.DefaultSeverity())

			documented, ok := rule.(linter.DocumentedRule)
			require.True(t, ok)
			assert.NotEmpty(t, documented.GoodExample())
			assert.NotEmpty(t, documented.BadExample())
			assert.NotEmpty(t, documented.Rationale())

			messages, ok := rule.(linter.MessagesRule)
			require.True(t, ok)
			assert.NotEmpty(t, messages.Messages())
		})
	}
}

func TestLinter_DefaultRules(t *testing.T) {
	t.Parallel()

	registry, err := rules.NewRegistry()
	require.NoError(t, err)

	config := linter.NewConfig()
	config.Extends = []string{rules.RulesetTypeChecked}
	l := linter.NewLinter(config, registry, linter.WithLogger[*estree.File](linter.NopLogger()))
	require.NoError(t, l.ValidateConfig())

	file := parse(t, "a;\nb;\nexpect(x).to.be.true;\n")
	output, err := l.Lint(t.Context(), linter.NewDocumentInfo(file, "test.js"), nil, nil)
	require.NoError(t, err)

	var problems, internal int
	for _, result := range output.Results {
		var vErr *validation.Error
		if errors.As(result, &vErr) {
			problems++
			assert.Equal(t, rules.RuleNoUnusedExpressions, vErr.Rule)
			continue
		}
		internal++
		require.ErrorIs(t, result, errors.ErrNoTypeInformation)
		assert.Contains(t, result.Error(), rules.RuleNoUnsafeCall)
	}
	assert.Equal(t, 2, problems, "one report per unused statement")
	assert.Equal(t, 1, internal, "a missing type service is reported once per document")
	assert.True(t, output.HasErrors())
}
