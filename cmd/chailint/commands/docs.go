package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/jslint"
	"github.com/chaifriendly/lint/linter"
	"github.com/spf13/cobra"
)

type docsOptions struct {
	format string
	output string
}

// NewDocsCmd returns the docs command.
func NewDocsCmd() *cobra.Command {
	opts := &docsOptions{}

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate rule documentation",
		Long: `Generate documentation for every rule as Markdown or JSON.

Examples:
  chailint docs > RULES.md
  chailint docs --format json --output rules.json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output == "" {
				return runDocs(cmd.OutOrStdout(), opts)
			}

			f, err := os.Create(opts.output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", opts.output, err)
			}
			if err := runDocs(f, opts); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "markdown", "Output format: markdown or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func runDocs(w io.Writer, opts *docsOptions) error {
	lint, err := jslint.NewLinter(linter.NewConfig(), jslint.WithLogger(linter.NopLogger()))
	if err != nil {
		return fmt.Errorf("failed to create linter: %w", err)
	}
	docGen := linter.NewDocGenerator[*estree.File](lint.Registry())

	switch opts.format {
	case "markdown", "md":
		return docGen.WriteMarkdown(w)
	case "json":
		return docGen.WriteJSON(w)
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}
}
