package linter

import (
	"slices"

	"github.com/chaifriendly/lint/validation"
)

// DefaultRuleset is extended by a config that names no ruleset.
const DefaultRuleset = "recommended"

// Config is the contents of a .chailint.yaml file.
type Config struct {
	// Extends names the rulesets whose rules start enabled, e.g. "recommended",
	// "type-checked" or "all". Later entries add to earlier ones.
	Extends []string `yaml:"extends,omitempty" json:"extends,omitempty"`

	// Rules is keyed by rule id, e.g. "no-unused-expressions".
	Rules map[string]RuleConfig `yaml:"rules,omitempty" json:"rules,omitempty"`

	// Categories is keyed by category, e.g. "type-safety". Rule entries win.
	Categories map[string]CategoryConfig `yaml:"categories,omitempty" json:"categories,omitempty"`

	Ignores []IgnorePattern `yaml:"ignores,omitempty" json:"ignores,omitempty"`

	OutputFormat OutputFormat `yaml:"output_format,omitempty" json:"output_format,omitempty"`
}

// RuleConfig turns one rule on or off, changes its severity or passes it
// options. Options are checked against the rule's schema before linting.
type RuleConfig struct {
	Enabled  *bool                `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Severity *validation.Severity `yaml:"severity,omitempty" json:"severity,omitempty"`
	Options  map[string]any       `yaml:"options,omitempty" json:"options,omitempty"`
}

// GetSeverity returns the configured severity, or defaultSeverity.
func (c *RuleConfig) GetSeverity(defaultSeverity validation.Severity) validation.Severity {
	if c != nil && c.Severity != nil {
		return *c.Severity
	}
	return defaultSeverity
}

// GetOptions returns the rule options, or nil.
func (c *RuleConfig) GetOptions() map[string]any {
	if c == nil {
		return nil
	}
	return c.Options
}

// CategoryConfig applies to every rule of a category that has no entry of
// its own.
type CategoryConfig struct {
	Enabled  *bool                `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Severity *validation.Severity `yaml:"severity,omitempty" json:"severity,omitempty"`
}

// IgnorePattern drops results matching every field that is set.
type IgnorePattern struct {
	Rule string `yaml:"rule,omitempty" json:"rule,omitempty"`

	// Path is a path.Match glob against the linted file, e.g. "test/*.spec.js".
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// MessagePattern is a regular expression against the diagnostic message.
	MessagePattern string `yaml:"message_pattern,omitempty" json:"message_pattern,omitempty"`
}

// OutputFormat selects a formatter from linter/format.
type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatSummary OutputFormat = "summary"
)

// OutputFormats lists the known formats.
var OutputFormats = []OutputFormat{OutputFormatText, OutputFormatJSON, OutputFormatSummary}

// IsValid reports whether f is a known format. Empty means the default.
func (f OutputFormat) IsValid() bool {
	return f == "" || slices.Contains(OutputFormats, f)
}

// NewConfig returns a config extending DefaultRuleset with text output.
func NewConfig() *Config {
	return &Config{
		Extends:      []string{DefaultRuleset},
		Rules:        make(map[string]RuleConfig),
		Categories:   make(map[string]CategoryConfig),
		OutputFormat: OutputFormatText,
	}
}
