package rules

import (
	"context"

	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/linter"
	"github.com/chaifriendly/lint/typeinfo"
	"github.com/chaifriendly/lint/validation"
)

// RuleNoUnsafeCall is the ID of the rule reporting calls of any typed values.
const RuleNoUnsafeCall = "no-unsafe-call"

const (
	MessageUnsafeCall        = "unsafeCall"
	MessageUnsafeCallThis    = "unsafeCallThis"
	MessageUnsafeNew         = "unsafeNew"
	MessageUnsafeTemplateTag = "unsafeTemplateTag"
)

// NoUnsafeCallRule disallows calling, constructing or tagging a template with
// a value whose type is any. It needs type information.
type NoUnsafeCallRule struct{}

var (
	_ linter.RuleRunner[*estree.File] = (*NoUnsafeCallRule)(nil)
	_ linter.TypeCheckedRule          = (*NoUnsafeCallRule)(nil)
)

func (r *NoUnsafeCallRule) ID() string       { return RuleNoUnsafeCall }
func (r *NoUnsafeCallRule) Category() string { return CategoryTypeSafety }
func (r *NoUnsafeCallRule) Description() string {
	return "Disallow calling a value with type `any`. The type checker cannot verify calls, constructions or template tags whose callee is typed any, so mistakes in them only surface at runtime."
}
func (r *NoUnsafeCallRule) Summary() string {
	return "Disallow calling a value with type `any`"
}
func (r *NoUnsafeCallRule) Link() string {
	return docsBaseURL + RuleNoUnsafeCall
}
func (r *NoUnsafeCallRule) DefaultSeverity() validation.Severity {
	return validation.SeverityError
}
func (r *NoUnsafeCallRule) RequiresTypeChecking() bool { return true }

func (r *NoUnsafeCallRule) Messages() map[string]string {
	return map[string]string{
		MessageUnsafeCall: "Unsafe call of an `any` typed value.",
		MessageUnsafeCallThis: "Unsafe call of an `any` typed value. `this` is typed as `any`.\n" +
			"You can try to fix this by turning on the `noImplicitThis` compiler option, or adding a `this` parameter to the function.",
		MessageUnsafeNew:         "Unsafe construction of an any type value.",
		MessageUnsafeTemplateTag: "Unsafe any typed template tag.",
	}
}

func (r *NoUnsafeCallRule) GoodExample() string {
	return `declare const fn: () => void;
fn();
new Map<string, number>();
String.raw` + "`" + `template` + "`" + `;`
}

func (r *NoUnsafeCallRule) BadExample() string {
	return `declare const anyVar: any;
anyVar();
anyVar.a.b();
new anyVar();
anyVar` + "`" + `template` + "`" + `;`
}

func (r *NoUnsafeCallRule) Rationale() string {
	return "A value typed any switches off type checking for everything done with it. Calling it hides wrong argument lists and missing functions until runtime, and the any result spreads through the code that uses it."
}

func (r *NoUnsafeCallRule) Run(ctx context.Context, docInfo *linter.DocumentInfo[*estree.File], config *linter.RuleConfig) []error {
	return runRule(ctx, r, docInfo, config)
}

func (r *NoUnsafeCallRule) Create(rc *Context) (Visitors, error) {
	types, err := rc.Types()
	if err != nil {
		return nil, err
	}
	return NewAnyTypedCallDetector(types, rc.Report).Visitors(), nil
}

// AnyTypedCallDetector finds calls, constructions and template tags applied
// to any typed values.
type AnyTypedCallDetector struct {
	types          typeinfo.Service
	report         func(node *estree.Node, messageID string)
	noImplicitThis bool
}

// NewAnyTypedCallDetector returns a detector resolving types with types and
// reporting through report. The noImplicitThis option is read once here.
func NewAnyTypedCallDetector(types typeinfo.Service, report func(node *estree.Node, messageID string)) *AnyTypedCallDetector {
	return &AnyTypedCallDetector{
		types:          types,
		report:         report,
		noImplicitThis: types.IsStrictOptionEnabled(typeinfo.OptionNoImplicitThis),
	}
}

// Visitors returns the detector's traversal hooks.
func (d *AnyTypedCallDetector) Visitors() Visitors {
	return Visitors{
		"CallExpression > *.callee": func(node *estree.Node) {
			d.CheckCall(node, node, MessageUnsafeCall)
		},
		string(estree.NewExpression): func(node *estree.Node) {
			d.CheckCall(node.Callee(), node, MessageUnsafeNew)
		},
		"TaggedTemplateExpression > *.tag": func(node *estree.Node) {
			d.CheckCall(node, node, MessageUnsafeTemplateTag)
		},
	}
}

// CheckCall reports reportingNode with messageID when node is typed any.
// Calls and constructions rooted at an any typed this are reported as
// unsafeCallThis instead, unless noImplicitThis already rules that out.
func (d *AnyTypedCallDetector) CheckCall(node, reportingNode *estree.Node, messageID string) {
	if node == nil || !d.types.IsAnyType(d.types.ConstrainedTypeAt(node)) {
		return
	}

	if !d.noImplicitThis && messageID != MessageUnsafeTemplateTag {
		// this(), this.foo() or this.foo[bar]()
		if this := ThisExpression(node); this != nil && d.types.IsAnyType(d.types.ConstrainedTypeAt(this)) {
			messageID = MessageUnsafeCallThis
		}
	}

	d.report(reportingNode, messageID)
}

// ThisExpression returns the this expression node is rooted at, following
// callees, member objects and optional chains, or nil.
func ThisExpression(node *estree.Node) *estree.Node {
	for node != nil {
		switch node.Type {
		case estree.CallExpression:
			node = node.Callee()
		case estree.ThisExpression:
			return node
		case estree.MemberExpression:
			node = node.Object()
		case estree.ChainExpression:
			node = node.Expression()
		default:
			return nil
		}
	}
	return nil
}
