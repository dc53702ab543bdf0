// Package jslint lints JavaScript and TypeScript sources with the rules from
// the rules package. It ties the front end, type facts and the generic lint
// engine together.
package jslint

import (
	"context"
	"fmt"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/jsparse"
	"github.com/chaifriendly/lint/linter"
	"github.com/chaifriendly/lint/rules"
	"github.com/chaifriendly/lint/system"
	"github.com/chaifriendly/lint/typeinfo"
)

// Linter lints source files. Type facts are looked up next to each file
// unless given explicitly.
type Linter struct {
	base   *linter.Linter[*estree.File]
	parser *jsparse.Parser
	fsys   system.VirtualFS
	logger linter.Logger
}

// Option configures NewLinter.
type Option func(*options)

type options struct {
	skipDefaultRules bool
	logger           linter.Logger
	fsys             system.VirtualFS
}

// WithoutDefaultRules creates a linter with no rules registered.
//
// Example:
//
//	l, err := jslint.NewLinter(config, jslint.WithoutDefaultRules())
//	l.Registry().Register(&rules.NoUnusedExpressionsRule{})
func WithoutDefaultRules() Option {
	return func(o *options) {
		o.skipDefaultRules = true
	}
}

// WithLogger sets the logger used by the engine and the front end.
func WithLogger(logger linter.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFileSystem reads sources and type facts from fsys instead of the OS.
func WithFileSystem(fsys system.VirtualFS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// NewLinter creates a linter with every built-in rule and ruleset registered.
func NewLinter(config *linter.Config, opts ...Option) (*Linter, error) {
	o := &options{
		logger: linter.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}

	registry := linter.NewRegistry[*estree.File]()
	if !o.skipDefaultRules {
		if err := rules.RegisterDefaultRules(registry); err != nil {
			return nil, fmt.Errorf("registering rules: %w", err)
		}
	}

	return &Linter{
		base:   linter.NewLinter(config, registry, linter.WithLogger[*estree.File](o.logger)),
		parser: jsparse.New(&jsparse.Config{Logger: o.logger}),
		fsys:   o.fsys,
		logger: o.logger,
	}, nil
}

// Registry returns the rule registry.
func (l *Linter) Registry() *linter.Registry[*estree.File] {
	return l.base.Registry()
}

// Config returns the effective configuration.
func (l *Linter) Config() *linter.Config {
	return l.base.Config()
}

// ValidateConfig checks the configuration against the registered rules.
func (l *Linter) ValidateConfig() error {
	return l.base.ValidateConfig()
}

// Lint runs the configured rules against an already parsed document.
func (l *Linter) Lint(ctx context.Context, docInfo *linter.DocumentInfo[*estree.File], preExistingErrors []error, opts *linter.LintOptions) (*linter.Output, error) {
	return l.base.Lint(ctx, docInfo, preExistingErrors, opts)
}

// LintFile parses and lints the file at path. When types is nil, type facts
// are read from a sidecar file next to the source (see FindTypeFacts).
// Syntax errors become results of the returned output; unsupported files and
// read failures are returned as errors.
func (l *Linter) LintFile(ctx context.Context, path string, types typeinfo.Service, opts *linter.LintOptions) (*linter.Output, error) {
	src, err := system.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.LintSource(ctx, path, src, types, opts)
}

// LintSource is LintFile for source already in memory. path selects the
// front end and is used as the document location.
func (l *Linter) LintSource(ctx context.Context, path string, src []byte, types typeinfo.Service, opts *linter.LintOptions) (*linter.Output, error) {
	file, err := l.parser.Parse(path, src)
	switch {
	case errors.Is(err, errors.ErrParse):
		l.logger.Debug("parse failed", "file", path, "error", err)
		return l.base.Lint(ctx, linter.NewDocumentInfo[*estree.File](nil, path), []error{err}, opts)
	case err != nil:
		return nil, err
	}

	if types == nil {
		facts, err := FindTypeFacts(l.fsys, path)
		if err != nil {
			return nil, err
		}
		if facts != nil {
			types = facts
		}
	}

	return l.base.Lint(ctx, linter.NewDocumentInfoWithTypes(file, path, types), nil, opts)
}
