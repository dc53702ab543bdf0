package rules

// Rule categories

const (
	// CategoryBestPractices holds rules about code that runs but is likely a
	// mistake, such as expressions whose value is discarded
	CategoryBestPractices = "best-practices"

	// CategoryTypeSafety holds rules that use type information to find
	// operations the type checker cannot verify
	CategoryTypeSafety = "type-safety"
)

// Rulesets registered by RegisterDefaultRules, in addition to "all".
const (
	// RulesetRecommended holds the rules that work without type information
	RulesetRecommended = "recommended"

	// RulesetTypeChecked is RulesetRecommended plus the rules that need a type service
	RulesetTypeChecked = "type-checked"
)

const docsBaseURL = "https://github.com/chaifriendly/lint/blob/main/rules/README.md#"
