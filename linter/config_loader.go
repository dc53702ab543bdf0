package linter

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"regexp"
	"slices"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/system"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads lint configuration from a YAML reader.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.ErrInvalidConfig.Wrap(fmt.Errorf("failed to parse config: %w", err))
	}

	if len(cfg.Extends) == 0 {
		cfg.Extends = []string{DefaultRuleset}
	}
	if cfg.Categories == nil {
		cfg.Categories = make(map[string]CategoryConfig)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = OutputFormatText
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFromFile loads lint configuration from a YAML file.
func LoadConfigFromFile(fsys system.VirtualFS, path string) (*Config, error) {
	data, err := system.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	return LoadConfig(bytes.NewReader(data))
}

var configKeys = []string{"extends", "rules", "categories", "ignores", "output_format"}

// UnmarshalYAML accepts extends as a single ruleset name or a list.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config

	if value.Kind == yaml.MappingNode {
		content := make([]*yaml.Node, len(value.Content))
		copy(content, value.Content)
		for i := 0; i+1 < len(content); i += 2 {
			if !slices.Contains(configKeys, content[i].Value) {
				return fmt.Errorf("line %d: unknown field %q", content[i].Line, content[i].Value)
			}
			if content[i].Value == "extends" && content[i+1].Kind == yaml.ScalarNode {
				scalar := content[i+1]
				content[i+1] = &yaml.Node{
					Kind:    yaml.SequenceNode,
					Tag:     "!!seq",
					Line:    scalar.Line,
					Column:  scalar.Column,
					Content: []*yaml.Node{scalar},
				}
			}
		}
		rewritten := *value
		rewritten.Content = content
		value = &rewritten
	}

	return value.Decode((*plain)(c))
}

// Validate checks the parts of the configuration that do not depend on which
// rules are registered. See Linter.ValidateConfig for the rest.
func (c *Config) Validate() error {
	var errs []error

	if !c.OutputFormat.IsValid() {
		errs = append(errs, fmt.Errorf("unknown output_format %q", c.OutputFormat))
	}

	for id := range c.Rules {
		if id == "" {
			errs = append(errs, fmt.Errorf("rule entry missing id"))
		}
	}

	for i, ignore := range c.Ignores {
		if ignore.Rule == "" && ignore.Path == "" && ignore.MessagePattern == "" {
			errs = append(errs, fmt.Errorf("ignores[%d]: at least one of rule, path or message_pattern is required", i))
		}
		if ignore.Path != "" {
			if _, err := path.Match(ignore.Path, ""); err != nil {
				errs = append(errs, fmt.Errorf("ignores[%d].path: %w", i, err))
			}
		}
		if ignore.MessagePattern != "" {
			if _, err := regexp.Compile(ignore.MessagePattern); err != nil {
				errs = append(errs, fmt.Errorf("ignores[%d].message_pattern: %w", i, err))
			}
		}
	}

	if len(errs) > 0 {
		return errors.ErrInvalidConfig.Wrap(errors.Join(errs...))
	}
	return nil
}
