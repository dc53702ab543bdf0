package linter

import (
	"context"
	"fmt"
	"maps"
	"path"
	"regexp"
	"slices"
	"sync"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/linter/format"
	"github.com/chaifriendly/lint/validation"
)

// Linter is the main linting engine
type Linter[T any] struct {
	config   *Config
	registry *Registry[T]
	logger   Logger
	ignores  []compiledIgnore
}

type compiledIgnore struct {
	rule    string
	path    string
	message *regexp.Regexp
}

// Option configures a Linter.
type Option[T any] func(*Linter[T])

// WithLogger sets the logger used for engine diagnostics.
func WithLogger[T any](logger Logger) Option[T] {
	return func(l *Linter[T]) {
		l.logger = logger
	}
}

// NewLinter creates a new linter with the given configuration. A nil config
// uses NewConfig.
func NewLinter[T any](config *Config, registry *Registry[T], opts ...Option[T]) *Linter[T] {
	if config == nil {
		config = NewConfig()
	}

	l := &Linter[T]{
		config:   config,
		registry: registry,
		logger:   DefaultLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}

	for _, ignore := range config.Ignores {
		ci := compiledIgnore{rule: ignore.Rule, path: ignore.Path}
		if ignore.MessagePattern != "" {
			// Invalid patterns are reported by Config.Validate and never match here.
			re, err := regexp.Compile(ignore.MessagePattern)
			if err != nil {
				l.logger.Warn("skipping invalid ignore pattern", "pattern", ignore.MessagePattern, "error", err)
				continue
			}
			ci.message = re
		}
		l.ignores = append(l.ignores, ci)
	}

	return l
}

// Registry returns the rule registry for documentation generation
func (l *Linter[T]) Registry() *Registry[T] {
	return l.registry
}

// Config returns the configuration the linter runs with
func (l *Linter[T]) Config() *Config {
	return l.config
}

// ValidateConfig checks the configuration against the registered rules:
// extended rulesets and configured rules must exist, and rule options must
// match each configurable rule's schema.
func (l *Linter[T]) ValidateConfig() error {
	var errs []error

	for _, name := range l.config.Extends {
		if _, ok := l.registry.GetRuleset(name); !ok {
			errs = append(errs, fmt.Errorf("unknown ruleset %q, expected one of %v", name, l.registry.AllRulesets()))
		}
	}

	for _, id := range slices.Sorted(maps.Keys(l.config.Rules)) {
		rule, ok := l.registry.GetRule(id)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown rule %q", id))
			continue
		}
		options := l.config.Rules[id].Options
		if options == nil {
			continue
		}
		configurable, ok := any(rule).(ConfigurableRule)
		if !ok {
			errs = append(errs, fmt.Errorf("rule %q does not accept options", id))
			continue
		}
		if err := ValidateOptions(configurable, options); err != nil {
			errs = append(errs, err)
		}
	}

	categories := l.registry.AllCategories()
	for category := range l.config.Categories {
		if !slices.Contains(categories, category) {
			errs = append(errs, fmt.Errorf("unknown category %q", category))
		}
	}

	if len(errs) > 0 {
		return errors.ErrInvalidConfig.Wrap(errors.Join(errs...))
	}
	return nil
}

// Lint runs all configured rules against the document
func (l *Linter[T]) Lint(ctx context.Context, docInfo *DocumentInfo[T], preExistingErrors []error, opts *LintOptions) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var allErrs []error

	if len(preExistingErrors) > 0 {
		allErrs = append(allErrs, preExistingErrors...)
	}

	// Run lint rules - these return validation.Error instances
	lintErrs := l.runRules(ctx, docInfo, opts)
	allErrs = append(allErrs, lintErrs...)

	allErrs = l.applySeverityOverrides(allErrs)
	allErrs = l.FilterErrors(allErrs)

	// Sort errors by location
	validation.SortValidationErrors(allErrs)

	return l.formatOutput(allErrs), nil
}

// FilterErrors drops errors matched by the configured ignore patterns.
func (l *Linter[T]) FilterErrors(errs []error) []error {
	if len(l.ignores) == 0 {
		return errs
	}
	return slices.DeleteFunc(errs, l.ignored)
}

func (l *Linter[T]) ignored(err error) bool {
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		return false
	}

	for _, ignore := range l.ignores {
		if ignore.rule != "" && ignore.rule != vErr.Rule {
			continue
		}
		if ignore.path != "" {
			if ok, _ := path.Match(ignore.path, vErr.DocumentLocation); !ok {
				continue
			}
		}
		if ignore.message != nil && (vErr.UnderlyingError == nil || !ignore.message.MatchString(vErr.UnderlyingError.Error())) {
			continue
		}
		return true
	}
	return false
}

func (l *Linter[T]) runRules(ctx context.Context, docInfo *DocumentInfo[T], opts *LintOptions) []error {
	enabledRules := l.getEnabledRules(opts)

	// Run rules in parallel; each rule walks the document on its own.
	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)

	for _, rule := range enabledRules {
		ruleConfig := l.getRuleConfig(rule.ID())

		wg.Add(1)
		go func(r RuleRunner[T], cfg RuleConfig) {
			defer wg.Done()

			ruleErrs := r.Run(ctx, docInfo, &cfg)
			l.logger.Debug("rule finished", "rule", r.ID(), "document", docInfo.Location, "results", len(ruleErrs))

			mu.Lock()
			errs = append(errs, ruleErrs...)
			mu.Unlock()
		}(rule, ruleConfig)
	}

	wg.Wait()
	return errs
}

func (l *Linter[T]) getEnabledRules(opts *LintOptions) []RuleRunner[T] {
	// Map to track enabled status: ruleID -> enabled
	ruleStatus := make(map[string]bool)

	// Apply rulesets
	for _, ruleset := range l.config.Extends {
		ids, ok := l.registry.GetRuleset(ruleset)
		if !ok {
			l.logger.Warn("unknown ruleset", "ruleset", ruleset)
			continue
		}
		for _, id := range ids {
			ruleStatus[id] = true
		}
	}

	// Category config overrides ruleset config but is overridden by individual rule config
	for _, rule := range l.registry.AllRules() {
		if catConfig, ok := l.config.Categories[rule.Category()]; ok {
			if catConfig.Enabled != nil {
				ruleStatus[rule.ID()] = *catConfig.Enabled
			}
		}
	}

	for id, ruleConfig := range l.config.Rules {
		if ruleConfig.Enabled != nil {
			ruleStatus[id] = *ruleConfig.Enabled
		}
	}

	if opts != nil {
		for _, id := range opts.DisabledRules {
			ruleStatus[id] = false
		}
	}

	var enabled []RuleRunner[T]
	for _, id := range slices.Sorted(maps.Keys(ruleStatus)) {
		if !ruleStatus[id] {
			continue
		}
		if opts != nil && len(opts.Rules) > 0 && !slices.Contains(opts.Rules, id) {
			continue
		}
		if rule, ok := l.registry.GetRule(id); ok {
			enabled = append(enabled, rule)
		}
	}

	return enabled
}

func (l *Linter[T]) getRuleConfig(ruleID string) RuleConfig {
	config := RuleConfig{}

	rule, ok := l.registry.GetRule(ruleID)
	if ok {
		if catConfig, ok := l.config.Categories[rule.Category()]; ok {
			if catConfig.Severity != nil {
				config.Severity = catConfig.Severity
			}
		}
		if configurable, ok := any(rule).(ConfigurableRule); ok {
			config.Options = configurable.ConfigDefaults()
		}
	}

	if ruleConfig, ok := l.config.Rules[ruleID]; ok {
		if ruleConfig.Severity != nil {
			config.Severity = ruleConfig.Severity
		}
		if ruleConfig.Options != nil {
			config.Options = mergeOptions(config.Options, ruleConfig.Options)
		}
	}

	return config
}

func mergeOptions(defaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(overrides))
	maps.Copy(merged, defaults)
	maps.Copy(merged, overrides)
	return merged
}

func (l *Linter[T]) applySeverityOverrides(errs []error) []error {
	for _, err := range errs {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			config := l.getRuleConfig(vErr.Rule)
			if config.Severity != nil {
				vErr.Severity = *config.Severity
			}
		}
	}
	return errs
}

func (l *Linter[T]) formatOutput(errs []error) *Output {
	categories := make(map[string]string)
	for _, rule := range l.registry.AllRules() {
		categories[rule.ID()] = rule.Category()
	}

	return &Output{
		Results:    errs,
		Format:     l.config.OutputFormat,
		Categories: categories,
	}
}

// Output represents the result of linting
type Output struct {
	Results []error
	Format  OutputFormat
	// Categories maps rule IDs to their category
	Categories map[string]string
}

// Category returns the category of a rule, or "".
func (o *Output) Category(rule string) string {
	return o.Categories[rule]
}

// HasErrors reports whether any result has error severity. Errors that are
// not validation errors count as errors.
func (o *Output) HasErrors() bool {
	return o.ErrorCount() > 0
}

func (o *Output) ErrorCount() int {
	count := 0
	for _, err := range o.Results {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			if vErr.Severity == validation.SeverityError {
				count++
			}
		} else {
			count++
		}
	}
	return count
}

func (o *Output) FormatText() string {
	f := format.NewTextFormatter()
	s, _ := f.Format(o.Results)
	return s
}

func (o *Output) FormatJSON() string {
	f := format.NewJSONFormatter()
	f.Categories = o.Category
	s, _ := f.Format(o.Results)
	return s
}

func (o *Output) FormatSummary() string {
	f := format.NewSummaryFormatter()
	f.Categories = o.Category
	s, _ := f.Format(o.Results)
	return s
}

// Render renders the results in the output's format.
func (o *Output) Render() string {
	switch o.Format {
	case OutputFormatJSON:
		return o.FormatJSON()
	case OutputFormatSummary:
		return o.FormatSummary()
	default:
		return o.FormatText()
	}
}
