package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/jslint"
	"github.com/chaifriendly/lint/linter"
)

const (
	readmeFile  = "rules/README.md"
	startMarker = "<!-- START LINT RULES -->"
	endMarker   = "<!-- END LINT RULES -->"
	readmeURL   = "https://github.com/chaifriendly/lint/blob/main/rules/README.md"
)

func main() {
	if err := updateRuleDocs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func updateRuleDocs() error {
	fmt.Println("🔄 Updating lint rules in README...")

	lint, err := jslint.NewLinter(linter.NewConfig(), jslint.WithLogger(linter.NopLogger()))
	if err != nil {
		return fmt.Errorf("failed to create linter: %w", err)
	}
	docGen := linter.NewDocGenerator[*estree.File](lint.Registry())

	if err := checkRuleLinks(docGen); err != nil {
		return err
	}

	data, err := os.ReadFile(readmeFile)
	if err != nil {
		return err
	}

	updated, err := replaceBetweenMarkers(string(data), generateRulesTable(docGen))
	if err != nil {
		return fmt.Errorf("%s: %w", readmeFile, err)
	}

	if err := os.WriteFile(readmeFile, []byte(updated), 0o600); err != nil {
		return err
	}

	fmt.Printf("✅ Updated %s\n", readmeFile)
	return nil
}

func generateRulesTable(docGen *linter.DocGenerator[*estree.File]) string {
	docs := docGen.GenerateAllRuleDocs()
	slices.SortFunc(docs, func(a, b *linter.RuleDoc) int {
		return strings.Compare(a.ID, b.ID)
	})

	var content strings.Builder
	content.WriteString("| Rule | Severity | Type information | Description |\n")
	content.WriteString("|------|----------|------------------|-------------|\n")

	for _, doc := range docs {
		desc := strings.ReplaceAll(doc.Description, "|", "\\|")
		desc = strings.ReplaceAll(desc, "\n", " ")
		types := "no"
		if doc.RequiresTypeChecking {
			types = "yes"
		}
		fmt.Fprintf(&content, "| <a name=\"%s\"></a>`%s` | %s | %s | %s |\n", doc.ID, doc.ID, doc.DefaultSeverity, types, desc)
	}

	return content.String()
}

// checkRuleLinks makes sure every rule links to its anchor in the README.
func checkRuleLinks(docGen *linter.DocGenerator[*estree.File]) error {
	for _, doc := range docGen.GenerateAllRuleDocs() {
		if expected := readmeURL + "#" + doc.ID; doc.Link != expected {
			return fmt.Errorf("rule %s links to %q, expected %q", doc.ID, doc.Link, expected)
		}
	}
	return nil
}

func replaceBetweenMarkers(content, newContent string) (string, error) {
	startIdx := strings.Index(content, startMarker)
	endIdx := strings.Index(content, endMarker)
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return "", fmt.Errorf("could not find lint rules markers")
	}

	before := content[:startIdx+len(startMarker)]
	after := content[endIdx:]
	return before + "\n\n" + newContent + "\n" + after, nil
}
