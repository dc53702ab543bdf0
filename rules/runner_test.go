package rules_test

import (
	"context"
	"testing"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Dispatch(t *testing.T) {
	t.Parallel()

	file := parse(t, "a.b(c);\nnew D(e);\ntag`x`;")

	var seen []string
	record := func(label string) rules.Visitor {
		return func(node *estree.Node) {
			seen = append(seen, label+":"+string(node.Type))
		}
	}

	err := rules.Run(t.Context(), file.Root,
		rules.Visitors{
			"CallExpression > *.callee":        record("callee"),
			"NewExpression":                    record("new"),
			"TaggedTemplateExpression > *.tag": record("tag"),
		},
		rules.Visitors{
			"CallExpression": record("call"),
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"call:CallExpression",
		"callee:MemberExpression",
		"new:NewExpression",
		"tag:Identifier",
	}, seen)
}

func TestRun_InvalidSelector(t *testing.T) {
	t.Parallel()

	file := parse(t, "a;")
	err := rules.Run(t.Context(), file.Root, rules.Visitors{"CallExpression .callee": func(*estree.Node) {}})
	require.ErrorIs(t, err, errors.ErrInvalidSelector)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	file := parse(t, "a;\nb;")
	var visited int
	err := rules.Run(ctx, file.Root, rules.Visitors{"*": func(*estree.Node) { visited++ }})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, visited)
}
