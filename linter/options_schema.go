package linter

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/chaifriendly/lint/errors"
	"github.com/go-json-experiment/json"
	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var defaultPrinter = message.NewPrinter(language.English)

var (
	schemaCacheMu sync.Mutex
	schemaCache   = map[string]*jsValidator.Schema{}
)

// ValidateOptions checks options against the rule's JSON Schema. Every failing
// constraint is reported as its own error, prefixed with the rule ID and the
// option path.
func ValidateOptions(rule ConfigurableRule, options map[string]any) error {
	schema, err := compileOptionsSchema(rule)
	if err != nil {
		return err
	}

	instance, err := toJSONValue(options)
	if err != nil {
		return fmt.Errorf("rule %q: options are not valid JSON: %w", rule.ID(), err)
	}

	err = schema.Validate(instance)
	if err == nil {
		return nil
	}

	var validationErr *jsValidator.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("rule %q: %w", rule.ID(), err)
	}
	return errors.Join(rootCauses(rule.ID(), validationErr)...)
}

func rootCauses(ruleID string, err *jsValidator.ValidationError) []error {
	if len(err.Causes) == 0 {
		field := "options"
		if len(err.InstanceLocation) > 0 {
			field += "." + strings.Join(err.InstanceLocation, ".")
		}
		return []error{fmt.Errorf("rule %q: %s %s", ruleID, field, err.ErrorKind.LocalizedString(defaultPrinter))}
	}

	var errs []error
	for _, cause := range err.Causes {
		errs = append(errs, rootCauses(ruleID, cause)...)
	}
	return errs
}

func compileOptionsSchema(rule ConfigurableRule) (*jsValidator.Schema, error) {
	data, err := json.Marshal(rule.ConfigSchema())
	if err != nil {
		return nil, fmt.Errorf("rule %q: invalid options schema: %w", rule.ID(), err)
	}
	key := rule.ID() + "\x00" + string(data)

	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()

	if schema, ok := schemaCache[key]; ok {
		return schema, nil
	}

	doc, err := jsValidator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rule %q: invalid options schema: %w", rule.ID(), err)
	}

	url := "https://chaifriendly.dev/rules/" + rule.ID() + "/options.schema.json"
	c := jsValidator.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("rule %q: invalid options schema: %w", rule.ID(), err)
	}
	schema, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("rule %q: invalid options schema: %w", rule.ID(), err)
	}

	schemaCache[key] = schema
	return schema, nil
}

// toJSONValue normalizes YAML-decoded values into what the validator expects.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsValidator.UnmarshalJSON(bytes.NewReader(data))
}
