package rules

import (
	"context"
	"fmt"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/typeinfo"
	"github.com/chaifriendly/lint/validation"
)

// Context is handed to a rule when it is activated for one document. It is the
// rule's only way to report problems.
type Context struct {
	ctx      context.Context
	rule     string
	severity validation.Severity
	messages map[string]string
	file     *estree.File
	location string
	options  map[string]any
	types    typeinfo.Service
}

// ContextOptions configure NewContext.
type ContextOptions struct {
	Rule     string
	Severity validation.Severity
	Messages map[string]string
	File     *estree.File
	Location string
	Options  map[string]any
	Types    typeinfo.Service
}

// NewContext returns a rule context reporting into ctx, which must carry a
// validation context (see validation.ContextWithValidationContext).
func NewContext(ctx context.Context, opts ContextOptions) *Context {
	return &Context{
		ctx:      ctx,
		rule:     opts.Rule,
		severity: opts.Severity,
		messages: opts.Messages,
		file:     opts.File,
		location: opts.Location,
		options:  opts.Options,
		types:    opts.Types,
	}
}

// Report records a problem at node using one of the rule's message ids.
func (c *Context) Report(node *estree.Node, messageID string) {
	msg, ok := c.messages[messageID]
	if !ok {
		msg = messageID
	}

	err := validation.NewMessageError(c.severity, c.rule, messageID, msg, node)
	err.DocumentLocation = c.location
	validation.AddValidationError(c.ctx, err)
}

// File returns the document being linted.
func (c *Context) File() *estree.File {
	return c.file
}

// Options returns the raw rule options.
func (c *Context) Options() map[string]any {
	return c.options
}

// Types returns the document's type service, failing with
// ErrNoTypeInformation when none was supplied.
func (c *Context) Types() (typeinfo.Service, error) {
	if c.types == nil {
		return nil, errors.ErrNoTypeInformation.Wrap(fmt.Errorf("rule %q on %s", c.rule, c.location))
	}
	return c.types, nil
}
