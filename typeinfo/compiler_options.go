package typeinfo

import (
	"github.com/chaifriendly/lint/pointer"
)

// Compiler options in the strict family. Each is on when set to true, or when
// unset while strict is true.
const (
	OptionStrict                       = "strict"
	OptionNoImplicitAny                = "noImplicitAny"
	OptionNoImplicitThis               = "noImplicitThis"
	OptionStrictNullChecks             = "strictNullChecks"
	OptionStrictFunctionTypes          = "strictFunctionTypes"
	OptionStrictBindCallApply          = "strictBindCallApply"
	OptionStrictPropertyInitialization = "strictPropertyInitialization"
	OptionAlwaysStrict                 = "alwaysStrict"
	OptionUseUnknownInCatchVariables   = "useUnknownInCatchVariables"
)

// CompilerOptions is the subset of tsconfig compilerOptions that affects rules.
// Nil means the option was not set.
type CompilerOptions struct {
	Strict                       *bool `yaml:"strict,omitempty" json:"strict,omitempty"`
	NoImplicitAny                *bool `yaml:"noImplicitAny,omitempty" json:"noImplicitAny,omitempty"`
	NoImplicitThis               *bool `yaml:"noImplicitThis,omitempty" json:"noImplicitThis,omitempty"`
	StrictNullChecks             *bool `yaml:"strictNullChecks,omitempty" json:"strictNullChecks,omitempty"`
	StrictFunctionTypes          *bool `yaml:"strictFunctionTypes,omitempty" json:"strictFunctionTypes,omitempty"`
	StrictBindCallApply          *bool `yaml:"strictBindCallApply,omitempty" json:"strictBindCallApply,omitempty"`
	StrictPropertyInitialization *bool `yaml:"strictPropertyInitialization,omitempty" json:"strictPropertyInitialization,omitempty"`
	AlwaysStrict                 *bool `yaml:"alwaysStrict,omitempty" json:"alwaysStrict,omitempty"`
	UseUnknownInCatchVariables   *bool `yaml:"useUnknownInCatchVariables,omitempty" json:"useUnknownInCatchVariables,omitempty"`
}

func (o *CompilerOptions) option(name string) (value *bool, inStrictFamily bool) {
	switch name {
	case OptionStrict:
		return o.Strict, false
	case OptionNoImplicitAny:
		return o.NoImplicitAny, true
	case OptionNoImplicitThis:
		return o.NoImplicitThis, true
	case OptionStrictNullChecks:
		return o.StrictNullChecks, true
	case OptionStrictFunctionTypes:
		return o.StrictFunctionTypes, true
	case OptionStrictBindCallApply:
		return o.StrictBindCallApply, true
	case OptionStrictPropertyInitialization:
		return o.StrictPropertyInitialization, true
	case OptionAlwaysStrict:
		return o.AlwaysStrict, true
	case OptionUseUnknownInCatchVariables:
		return o.UseUnknownInCatchVariables, true
	}
	return nil, false
}

// IsStrictOptionEnabled reports whether option is on. An explicit value always
// wins; an unset strict-family option follows strict. strictPropertyInitialization
// also needs strictNullChecks.
func (o *CompilerOptions) IsStrictOptionEnabled(option string) bool {
	if o == nil {
		return false
	}
	if option == OptionStrictPropertyInitialization && !o.IsStrictOptionEnabled(OptionStrictNullChecks) {
		return false
	}
	value, inFamily := o.option(option)
	if value != nil {
		return *value
	}
	return inFamily && pointer.ValueOrZero(o.Strict)
}
