package typeinfo

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/system"
	"gopkg.in/yaml.v3"
)

// Facts is a Service backed by a precomputed table of node types, typically
// exported from a TypeScript program. Nodes without an entry are unknown,
// which no rule treats as any.
type Facts struct {
	options CompilerOptions
	byRange map[[2]int]*Type
	byLoc   []locFact
}

var _ Service = (*Facts)(nil)

type lineCol struct {
	line, column int
}

type locFact struct {
	start    lineCol
	end      *lineCol
	nodeType estree.NodeType
	typ      *Type
}

type factsDocument struct {
	CompilerOptions CompilerOptions `yaml:"compilerOptions"`
	Types           []typeFact      `yaml:"types"`
}

type typeFact struct {
	Range      []int  `yaml:"range"`
	Start      string `yaml:"start"`
	End        string `yaml:"end"`
	Node       string `yaml:"node"`
	Type       string `yaml:"type"`
	Constraint string `yaml:"constraint"`
}

// NewFacts returns an empty table with the given compiler options.
func NewFacts(options CompilerOptions) *Facts {
	return &Facts{
		options: options,
		byRange: make(map[[2]int]*Type),
	}
}

// LoadFacts reads a YAML (or JSON) type facts document.
func LoadFacts(r io.Reader) (*Facts, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read type facts: %w", err)
	}

	var doc factsDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.ErrInvalidTypeFacts.Wrap(err)
	}

	facts := NewFacts(doc.CompilerOptions)
	for i, fact := range doc.Types {
		if err := facts.add(fact); err != nil {
			return nil, errors.ErrInvalidTypeFacts.Wrapf("types[%d]: %w", i, err)
		}
	}
	return facts, nil
}

// LoadFactsFile reads a type facts document from fsys.
func LoadFactsFile(fsys system.VirtualFS, path string) (*Facts, error) {
	data, err := system.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open type facts: %w", err)
	}
	facts, err := LoadFacts(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return facts, nil
}

func (f *Facts) add(fact typeFact) error {
	typ, err := NewType(fact.Type)
	if err != nil {
		return err
	}
	if fact.Constraint != "" {
		if !typ.IsTypeParameter() {
			return fmt.Errorf("constraint given for non type parameter %q", fact.Type)
		}
		constraint, err := NewType(fact.Constraint)
		if err != nil {
			return fmt.Errorf("constraint: %w", err)
		}
		typ.Constraint = constraint
	}

	switch {
	case len(fact.Range) > 0:
		if len(fact.Range) != 2 || fact.Range[0] > fact.Range[1] {
			return fmt.Errorf("range must be [start, end], got %v", fact.Range)
		}
		f.SetRange(fact.Range[0], fact.Range[1], typ)
	case fact.Start != "":
		start, err := parseLineCol(fact.Start)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		lf := locFact{start: start, nodeType: estree.NodeType(fact.Node), typ: typ}
		if fact.End != "" {
			end, err := parseLineCol(fact.End)
			if err != nil {
				return fmt.Errorf("end: %w", err)
			}
			lf.end = &end
		}
		f.byLoc = append(f.byLoc, lf)
	default:
		return errors.New("either range or start is required")
	}
	return nil
}

// SetRange records the type of the node spanning [start, end).
func (f *Facts) SetRange(start, end int, t *Type) {
	f.byRange[[2]int{start, end}] = t
}

// SetAt records the type of the node of nodeType starting at line and 1-based
// column. An empty nodeType matches any node starting there.
func (f *Facts) SetAt(line, column int, nodeType estree.NodeType, t *Type) {
	f.byLoc = append(f.byLoc, locFact{start: lineCol{line, column}, nodeType: nodeType, typ: t})
}

// TypeAt returns the recorded type of node, or Unknown.
func (f *Facts) TypeAt(node *estree.Node) *Type {
	if f == nil || node == nil {
		return Unknown
	}
	if t, ok := f.byRange[node.Range]; ok {
		return t
	}
	if node.Loc == nil {
		return Unknown
	}

	start := lineCol{node.Loc.Start.Line, node.Loc.Start.Column + 1}
	end := lineCol{node.Loc.End.Line, node.Loc.End.Column + 1}
	for _, lf := range f.byLoc {
		if lf.start != start {
			continue
		}
		if lf.end != nil && *lf.end != end {
			continue
		}
		if lf.nodeType != "" && lf.nodeType != node.Type {
			continue
		}
		return lf.typ
	}
	return Unknown
}

func (f *Facts) ConstrainedTypeAt(node *estree.Node) *Type {
	return BaseConstraint(f.TypeAt(node))
}

func (f *Facts) IsAnyType(t *Type) bool {
	return IsAny(t)
}

func (f *Facts) IsStrictOptionEnabled(option string) bool {
	if f == nil {
		return false
	}
	return f.options.IsStrictOptionEnabled(option)
}

// parseLineCol parses "line:column".
func parseLineCol(s string) (lineCol, error) {
	lineStr, colStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return lineCol{}, fmt.Errorf("expected line:column, got %q", s)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return lineCol{}, fmt.Errorf("invalid line in %q", s)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 1 {
		return lineCol{}, fmt.Errorf("invalid column in %q", s)
	}
	return lineCol{line, col}, nil
}
