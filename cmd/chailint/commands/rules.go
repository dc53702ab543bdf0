package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/chaifriendly/lint/jslint"
	"github.com/chaifriendly/lint/linter"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
)

type rulesOptions struct {
	format   string
	category string
	ruleset  string
}

type ruleInfo struct {
	ID                   string   `json:"id"`
	Category             string   `json:"category"`
	DefaultSeverity      string   `json:"defaultSeverity"`
	Summary              string   `json:"summary"`
	Description          string   `json:"description"`
	Link                 string   `json:"link,omitempty"`
	RequiresTypeChecking bool     `json:"requiresTypeChecking,omitzero"`
	Rulesets             []string `json:"rulesets"`
}

// NewRulesCmd returns the rules command.
func NewRulesCmd() *cobra.Command {
	opts := &rulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List all available linting rules",
		Long: `List all available linting rules with their metadata.

Shows each rule's ID, category, default severity and the rulesets it belongs
to. Use --category to filter by category, or --ruleset to show only rules in a
ruleset.

Examples:
  chailint rules
  chailint rules --category type-safety
  chailint rules --ruleset recommended
  chailint rules --format json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringVar(&opts.category, "category", "", "Filter by category (e.g., best-practices, type-safety)")
	cmd.Flags().StringVar(&opts.ruleset, "ruleset", "", "Filter by ruleset (e.g., recommended, type-checked, all)")

	return cmd
}

func runRules(w io.Writer, opts *rulesOptions) error {
	lint, err := jslint.NewLinter(linter.NewConfig(), jslint.WithLogger(linter.NopLogger()))
	if err != nil {
		return fmt.Errorf("failed to create linter: %w", err)
	}
	registry := lint.Registry()

	var infos []ruleInfo
	for _, rule := range registry.AllRules() {
		if opts.category != "" && rule.Category() != opts.category {
			continue
		}
		rulesets := registry.RulesetsContaining(rule.ID())
		if opts.ruleset != "" && !slices.Contains(rulesets, opts.ruleset) {
			continue
		}

		info := ruleInfo{
			ID:              rule.ID(),
			Category:        rule.Category(),
			DefaultSeverity: rule.DefaultSeverity().String(),
			Summary:         rule.Summary(),
			Description:     rule.Description(),
			Link:            rule.Link(),
			Rulesets:        rulesets,
		}
		if typed, ok := rule.(linter.TypeCheckedRule); ok {
			info.RequiresTypeChecking = typed.RequiresTypeChecking()
		}
		infos = append(infos, info)
	}

	switch opts.format {
	case "json":
		if infos == nil {
			infos = []ruleInfo{}
		}
		if err := json.MarshalWrite(w, infos, jsontext.WithIndent("  ")); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	case "text":
		printRulesText(w, infos, registry.AllCategories())
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}
}

func printRulesText(w io.Writer, infos []ruleInfo, categories []string) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No rules found matching the specified filters.")
		return
	}

	byCategory := make(map[string][]ruleInfo)
	for _, info := range infos {
		byCategory[info.Category] = append(byCategory[info.Category], info)
	}

	for _, cat := range categories {
		rules, ok := byCategory[cat]
		if !ok {
			continue
		}

		fmt.Fprintf(w, "\n%s (%d rules)\n", strings.ToUpper(cat), len(rules))
		fmt.Fprintln(w, strings.Repeat("─", 80))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, info := range rules {
			marker := ""
			if info.RequiresTypeChecking {
				marker = " [types]"
			}
			fmt.Fprintf(tw, "  %s\t%s\t[%s]%s\n", info.ID, info.Summary, info.DefaultSeverity, marker)
			if info.Link != "" {
				fmt.Fprintf(tw, "  \tDocs: %s\n", info.Link)
			}
			fmt.Fprintf(tw, "  \tRulesets: %s\n", strings.Join(info.Rulesets, ", "))
		}
		tw.Flush()
	}

	fmt.Fprintf(w, "\n%d rules total\n", len(infos))
}
