package commands_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chaifriendly/lint/cmd/chailint/commands"
	"github.com/chaifriendly/lint/errors"
	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := &cobra.Command{Use: "chailint", SilenceErrors: true}
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	commands.Apply(root)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func testdata(parts ...string) string {
	return filepath.Join(append([]string{"testdata"}, parts...)...)
}

type jsonReport struct {
	Results []struct {
		Rule      string `json:"rule"`
		MessageID string `json:"messageId"`
		Severity  string `json:"severity"`
		Document  string `json:"document"`
		Location  struct {
			Line   int `json:"line"`
			Column int `json:"column"`
		} `json:"location"`
	} `json:"results"`
	Summary struct {
		Total  int `json:"total"`
		Errors int `json:"errors"`
	} `json:"summary"`
}

func TestLint_Directory(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := execute(t, "", "lint", testdata("project"))
	require.Error(t, err)
	assert.Equal(t, "linting found 1 errors", err.Error())

	assert.Contains(t, stdout, "11:5")
	assert.Contains(t, stdout, "no-unused-expressions")
	assert.Contains(t, stdout, "math.spec.js")
	assert.NotContains(t, stdout, "node_modules")
	assert.Contains(t, stderr, "Linting completed in")
}

func TestLint_CleanFile(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "lint", testdata("project", "clean.js"))
	require.NoError(t, err)
	assert.Equal(t, "\n", stdout)
}

func TestLint_JSON(t *testing.T) {
	t.Parallel()

	file := testdata("project", "test", "client.spec.ts")
	stdout, _, err := execute(t, "", "lint", "--format", "json", "--ruleset", "type-checked", file)
	require.Error(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Results, 1)

	unsafe := report.Results[0]
	assert.Equal(t, "no-unsafe-call", unsafe.Rule)
	assert.Equal(t, "unsafeCall", unsafe.MessageID)
	assert.Equal(t, "error", unsafe.Severity)
	assert.Equal(t, file, unsafe.Document)
	assert.Equal(t, 7, unsafe.Location.Line)
	assert.Equal(t, 5, unsafe.Location.Column)

	assert.Equal(t, 1, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Errors)
}

func TestLint_TypesFlag(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "lint", "--types", testdata("any.types.yaml"), testdata("any.js"))
	require.Error(t, err)
	assert.Contains(t, stdout, "no-unsafe-call")
	assert.Contains(t, stdout, "Unsafe call of an `any` typed value.")

	_, _, err = execute(t, "", "lint", "--types", testdata("any.types.yaml"), testdata("project"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--types requires exactly one source file")
}

func TestLint_MissingTypeInformation(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "lint", "--ruleset", "type-checked", testdata("any.js"))
	require.Error(t, err)
	assert.Contains(t, stdout, "internal")
	assert.Equal(t, 1, strings.Count(stdout, "type information"), "reported once per document")
}

func TestLint_Config(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "lint", "--config", testdata("shortcircuit.yaml"), testdata("shortcircuit.js"))
	require.Error(t, err)
	assert.Contains(t, stdout, "2:1")
	assert.NotContains(t, stdout, "1:1")

	_, _, err = execute(t, "", "lint", "--config", testdata("invalid.yaml"), testdata("shortcircuit.js"))
	require.ErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestLint_Disable(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "lint", "--disable", "no-unused-expressions", testdata("shortcircuit.js"))
	require.NoError(t, err)
	assert.Equal(t, "\n", stdout)
}

func TestLint_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "expect(x).to.be.ok;\nx;\n", "lint", "--stdin-filename", "input.spec.ts", "-")
	require.Error(t, err)
	assert.Contains(t, stdout, "2:1")
	assert.Contains(t, stdout, "input.spec.ts")
}

func TestLint_SyntaxError(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "lint", testdata("broken.js"))
	require.Error(t, err)
	assert.Contains(t, stdout, "internal")
}

func TestLint_Summary(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "lint", "--summary", testdata("project"))
	require.Error(t, err)
	assert.Contains(t, stdout, "no-unused-expressions")
	assert.Contains(t, stdout, "best-practices")
}

func TestLint_InvalidFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"lint", "--format", "xml", testdata("any.js")}},
		{name: "zero concurrency", args: []string{"lint", "--concurrency", "0", testdata("any.js")}},
		{name: "missing path", args: []string{"lint", testdata("missing.js")}},
		{name: "no paths", args: []string{"lint"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
		})
	}
}

func TestLint_StdinOnlyOnce(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "thing;\n", "lint", "-", testdata("any.js"), "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin (-) can be read only once, got it 2 times")
}

func TestRules(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "BEST-PRACTICES (1 rules)")
	assert.Contains(t, stdout, "TYPE-SAFETY (1 rules)")
	assert.Contains(t, stdout, "no-unsafe-call")
	assert.Contains(t, stdout, "[types]")
	assert.Contains(t, stdout, "2 rules total")

	stdout, _, err = execute(t, "", "rules", "--ruleset", "recommended", "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		ID       string   `json:"id"`
		Rulesets []string `json:"rulesets"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "no-unused-expressions", infos[0].ID)
	assert.Contains(t, infos[0].Rulesets, "recommended")
}

func TestDocs(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "docs")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no-unused-expressions")
	assert.Contains(t, stdout, "allowShortCircuit")
	assert.Contains(t, stdout, "Requires type information")

	out := filepath.Join(t.TempDir(), "rules.json")
	_, _, err = execute(t, "", "docs", "--format", "json", "--output", out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}
