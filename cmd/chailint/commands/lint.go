package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/jslint"
	"github.com/chaifriendly/lint/linter"
	"github.com/chaifriendly/lint/linter/format"
	"github.com/chaifriendly/lint/rules"
	"github.com/chaifriendly/lint/typeinfo"
	"github.com/chaifriendly/lint/validation"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// DefaultConfigFile is loaded from the working directory when --config is not given.
const DefaultConfigFile = ".chailint.yaml"

type lintOptions struct {
	configFile    string
	outputFormat  string
	typesFile     string
	ruleset       string
	disableRules  []string
	summary       bool
	color         bool
	concurrency   int
	stdinFilename string
}

// NewLintCmd returns the lint command.
func NewLintCmd() *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint <path>...",
		Short: "Lint JavaScript and TypeScript sources",
		Long: `Lint JavaScript and TypeScript sources.

Paths may be files or directories. Directories are searched for .js, .cjs,
.mjs, .jsx, .ts, .cts, .mts and .tsx files, skipping node_modules and hidden
directories. ESTree JSON documents (.json) are linted when named explicitly.

Use '-' to read a single source from stdin:
  cat test.spec.ts | chailint lint --stdin-filename test.spec.ts -

CONFIGURATION:

The linter reads .chailint.yaml from the working directory, or the file given
with --config.

Available rulesets: recommended (default), type-checked, all

Example configuration (.chailint.yaml):

  extends: recommended

  rules:
    no-unused-expressions:
      options:
        allowShortCircuit: true
    no-unsafe-call:
      severity: warning

  ignores:
    - rule: no-unused-expressions
      path: "test/fixtures/*"

TYPE INFORMATION:

no-unsafe-call needs to know which expressions are typed any. Type facts are
read from a sidecar file next to each source (app.ts.types.yaml,
app.ts.types.yml or app.ts.types.json), or from the file given with --types.
When --types is given without a ruleset, the type-checked ruleset is used.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", "", "Output format: text, json or summary (default from config, else text)")
	cmd.Flags().StringVarP(&opts.ruleset, "ruleset", "r", "", "Ruleset to use (default loads from config)")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to lint config file (default: ./"+DefaultConfigFile+")")
	cmd.Flags().StringVarP(&opts.typesFile, "types", "t", "", "Type facts file for the linted source")
	cmd.Flags().StringSliceVarP(&opts.disableRules, "disable", "d", nil, "Rule IDs to disable (can be repeated)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a per-rule summary table of findings")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Colorize text output")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", runtime.NumCPU(), "Number of files linted in parallel")
	cmd.Flags().StringVar(&opts.stdinFilename, "stdin-filename", "stdin.js", "File name used for source read from stdin")

	return cmd
}

func validateLintOptions(opts *lintOptions, args, files []string) error {
	stdinArgs := 0
	for _, arg := range args {
		if IsStdin(arg) {
			stdinArgs++
		}
	}
	if stdinArgs > 1 {
		return fmt.Errorf("stdin (%s) can be read only once, got it %d times", StdinIndicator, stdinArgs)
	}
	if opts.typesFile != "" && len(files) != 1 {
		return fmt.Errorf("--types requires exactly one source file, got %d", len(files))
	}
	if opts.concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}
	if !linter.OutputFormat(opts.outputFormat).IsValid() {
		return fmt.Errorf("unknown output format %q", opts.outputFormat)
	}
	return nil
}

func runLint(cmd *cobra.Command, opts *lintOptions, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if err := validateLintOptions(opts, args, files); err != nil {
		return err
	}

	logger := linter.DefaultLogger()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger = linter.NewLogger(cmd.ErrOrStderr(), slog.LevelDebug)
	}

	config, err := buildLintConfig(opts)
	if err != nil {
		return err
	}

	lint, err := jslint.NewLinter(config, jslint.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create linter: %w", err)
	}
	if err := lint.ValidateConfig(); err != nil {
		return err
	}

	var types typeinfo.Service
	if opts.typesFile != "" {
		facts, err := typeinfo.LoadFactsFile(nil, opts.typesFile)
		if err != nil {
			return err
		}
		types = facts
	}

	output, err := lintFiles(ctx, lint, files, types, opts, cmd.InOrStdin())
	reportElapsed(cmd.ErrOrStderr(), "Linting", time.Since(start))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output.Format == linter.OutputFormatText && opts.color {
		text, _ := format.NewColorTextFormatter().Format(output.Results)
		fmt.Fprint(out, text)
	} else {
		fmt.Fprintln(out, output.Render())
	}
	if opts.summary && output.Format != linter.OutputFormatSummary {
		fmt.Fprintln(out, output.FormatSummary())
	}

	if output.HasErrors() {
		return fmt.Errorf("linting found %d errors", output.ErrorCount())
	}
	return nil
}

// lintFiles lints files concurrently and merges the results into one output.
func lintFiles(ctx context.Context, lint *jslint.Linter, files []string, types typeinfo.Service, opts *lintOptions, stdin io.Reader) (*linter.Output, error) {
	outputs := make([]*linter.Output, len(files))
	lintOpts := &linter.LintOptions{DisabledRules: opts.disableRules}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)
	for i, file := range files {
		g.Go(func() error {
			var (
				output *linter.Output
				err    error
			)
			if IsStdin(file) {
				var src []byte
				src, err = io.ReadAll(stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				output, err = lint.LintSource(ctx, opts.stdinFilename, src, types, lintOpts)
			} else {
				output, err = lint.LintFile(ctx, file, types, lintOpts)
			}
			if err != nil {
				return err
			}
			outputs[i] = output
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &linter.Output{
		Format:     lint.Config().OutputFormat,
		Categories: make(map[string]string),
	}
	for _, rule := range lint.Registry().AllRules() {
		merged.Categories[rule.ID()] = rule.Category()
	}
	for _, output := range outputs {
		merged.Results = append(merged.Results, output.Results...)
	}
	validation.SortValidationErrors(merged.Results)
	return merged, nil
}

func buildLintConfig(opts *lintOptions) (*linter.Config, error) {
	config := linter.NewConfig()
	loaded := false

	switch {
	case opts.configFile != "":
		c, err := linter.LoadConfigFromFile(nil, opts.configFile)
		if err != nil {
			return nil, err
		}
		config, loaded = c, true
	default:
		c, err := linter.LoadConfigFromFile(nil, DefaultConfigFile)
		switch {
		case err == nil:
			config, loaded = c, true
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	switch {
	case opts.ruleset != "":
		config.Extends = []string{opts.ruleset}
	case opts.typesFile != "" && !loaded:
		config.Extends = []string{rules.RulesetTypeChecked}
	}

	if opts.outputFormat != "" {
		config.OutputFormat = linter.OutputFormat(opts.outputFormat)
	}

	return config, nil
}
