package linter

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// DocGenerator generates documentation from registered rules
type DocGenerator[T any] struct {
	registry *Registry[T]
}

// NewDocGenerator creates a new documentation generator
func NewDocGenerator[T any](registry *Registry[T]) *DocGenerator[T] {
	return &DocGenerator[T]{registry: registry}
}

// RuleDoc represents documentation for a single rule
type RuleDoc struct {
	ID                   string            `json:"id" yaml:"id"`
	Category             string            `json:"category" yaml:"category"`
	Summary              string            `json:"summary" yaml:"summary"`
	Description          string            `json:"description" yaml:"description"`
	Rationale            string            `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	Link                 string            `json:"link,omitempty" yaml:"link,omitempty"`
	DefaultSeverity      string            `json:"default_severity" yaml:"default_severity"`
	RequiresTypeChecking bool              `json:"requires_type_checking" yaml:"requires_type_checking"`
	GoodExample          string            `json:"good_example,omitempty" yaml:"good_example,omitempty"`
	BadExample           string            `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	Messages             map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
	ConfigSchema         map[string]any    `json:"config_schema,omitempty" yaml:"config_schema,omitempty"`
	ConfigDefaults       map[string]any    `json:"config_defaults,omitempty" yaml:"config_defaults,omitempty"`
	Rulesets             []string          `json:"rulesets" yaml:"rulesets"`
}

// GenerateRuleDoc generates documentation for a single rule
func (g *DocGenerator[T]) GenerateRuleDoc(rule RuleRunner[T]) *RuleDoc {
	doc := &RuleDoc{
		ID:              rule.ID(),
		Category:        rule.Category(),
		Summary:         rule.Summary(),
		Description:     rule.Description(),
		Link:            rule.Link(),
		DefaultSeverity: rule.DefaultSeverity().String(),
		Rulesets:        g.registry.RulesetsContaining(rule.ID()),
	}

	if documented, ok := any(rule).(DocumentedRule); ok {
		doc.GoodExample = documented.GoodExample()
		doc.BadExample = documented.BadExample()
		doc.Rationale = documented.Rationale()
	}

	if configurable, ok := any(rule).(ConfigurableRule); ok {
		doc.ConfigSchema = configurable.ConfigSchema()
		doc.ConfigDefaults = configurable.ConfigDefaults()
	}

	if withMessages, ok := any(rule).(MessagesRule); ok {
		doc.Messages = withMessages.Messages()
	}

	if typed, ok := any(rule).(TypeCheckedRule); ok {
		doc.RequiresTypeChecking = typed.RequiresTypeChecking()
	}

	return doc
}

// GenerateAllRuleDocs generates documentation for all registered rules
func (g *DocGenerator[T]) GenerateAllRuleDocs() []*RuleDoc {
	var docs []*RuleDoc
	for _, rule := range g.registry.AllRules() {
		docs = append(docs, g.GenerateRuleDoc(rule))
	}
	return docs
}

// GenerateCategoryDocs groups rules by category
func (g *DocGenerator[T]) GenerateCategoryDocs() map[string][]*RuleDoc {
	categories := make(map[string][]*RuleDoc)
	for _, rule := range g.registry.AllRules() {
		doc := g.GenerateRuleDoc(rule)
		categories[doc.Category] = append(categories[doc.Category], doc)
	}
	return categories
}

// WriteJSON writes rule documentation as JSON
func (g *DocGenerator[T]) WriteJSON(w io.Writer) error {
	docs := g.GenerateAllRuleDocs()
	return json.MarshalWrite(w, map[string]any{
		"rules":      docs,
		"categories": g.registry.AllCategories(),
		"rulesets":   g.registry.AllRulesets(),
	}, jsontext.WithIndent("  "), json.Deterministic(true))
}

// WriteMarkdown writes rule documentation as Markdown
func (g *DocGenerator[T]) WriteMarkdown(w io.Writer) error {
	docs := g.GenerateCategoryDocs()
	categories := slices.Sorted(maps.Keys(docs))

	if err := writeLine(w, "# Lint Rules Reference"); err != nil {
		return err
	}
	if err := writeEmptyLine(w); err != nil {
		return err
	}

	if err := writeLine(w, "## Categories"); err != nil {
		return err
	}
	if err := writeEmptyLine(w); err != nil {
		return err
	}
	for _, category := range categories {
		if err := writeF(w, "- [%s](#%s)\n", category, category); err != nil {
			return err
		}
	}
	if err := writeEmptyLine(w); err != nil {
		return err
	}

	for _, category := range categories {
		if err := writeF(w, "## %s\n\n", category); err != nil {
			return err
		}

		for _, rule := range docs[category] {
			if err := g.writeRuleMarkdown(w, rule); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *DocGenerator[T]) writeRuleMarkdown(w io.Writer, rule *RuleDoc) error {
	if err := writeF(w, "### %s\n\n", rule.ID); err != nil {
		return err
	}
	if err := writeF(w, "**Severity:** %s  \n", rule.DefaultSeverity); err != nil {
		return err
	}
	if err := writeF(w, "**Category:** %s  \n", rule.Category); err != nil {
		return err
	}
	if rule.Summary != "" {
		if err := writeF(w, "**Summary:** %s  \n", rule.Summary); err != nil {
			return err
		}
	}
	if len(rule.Rulesets) > 0 {
		if err := writeF(w, "**Rulesets:** %s  \n", strings.Join(rule.Rulesets, ", ")); err != nil {
			return err
		}
	}
	if rule.RequiresTypeChecking {
		if err := writeLine(w, "**Requires type information:** Yes  "); err != nil {
			return err
		}
	}
	if err := writeEmptyLine(w); err != nil {
		return err
	}

	if err := writeF(w, "%s\n\n", rule.Description); err != nil {
		return err
	}

	if rule.Rationale != "" {
		if err := writeF(w, "#### Rationale\n\n%s\n\n", rule.Rationale); err != nil {
			return err
		}
	}

	if err := writeExample(w, "#### ❌ Incorrect", rule.BadExample); err != nil {
		return err
	}
	if err := writeExample(w, "#### ✅ Correct", rule.GoodExample); err != nil {
		return err
	}

	if len(rule.Messages) > 0 {
		if err := writeLine(w, "#### Messages\n\n| ID | Message |\n|----|---------|"); err != nil {
			return err
		}
		for _, id := range slices.Sorted(maps.Keys(rule.Messages)) {
			msg := strings.ReplaceAll(rule.Messages[id], "\n", " ")
			if err := writeF(w, "| `%s` | %s |\n", id, msg); err != nil {
				return err
			}
		}
		if err := writeEmptyLine(w); err != nil {
			return err
		}
	}

	if err := writeOptionsTable(w, rule); err != nil {
		return err
	}

	if rule.Link != "" {
		if err := writeF(w, "[Documentation →](%s)\n\n", rule.Link); err != nil {
			return err
		}
	}

	if err := writeLine(w, "---"); err != nil {
		return err
	}
	return writeEmptyLine(w)
}

func writeExample(w io.Writer, heading, example string) error {
	if example == "" {
		return nil
	}
	return writeF(w, "%s\n```js\n%s\n```\n\n", heading, example)
}

func writeOptionsTable(w io.Writer, rule *RuleDoc) error {
	properties, _ := rule.ConfigSchema["properties"].(map[string]any)
	if len(properties) == 0 {
		return nil
	}

	if err := writeLine(w, "#### Configuration\n\n| Option | Type | Default | Description |\n|--------|------|---------|-------------|"); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(properties)) {
		prop, _ := properties[name].(map[string]any)
		typ, _ := prop["type"].(string)
		description, _ := prop["description"].(string)
		def := ""
		if v, ok := rule.ConfigDefaults[name]; ok {
			def = fmt.Sprintf("`%v`", v)
		}
		if err := writeF(w, "| `%s` | %s | %s | %s |\n", name, typ, def, description); err != nil {
			return err
		}
	}
	return writeEmptyLine(w)
}

func writeLine(w io.Writer, text string) error {
	_, err := fmt.Fprintln(w, text)
	return err
}

func writeEmptyLine(w io.Writer) error {
	_, err := fmt.Fprintln(w)
	return err
}

func writeF(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
