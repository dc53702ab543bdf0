package estree

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/chaifriendly/lint/errors"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Keys that typescript-estree and acorn attach to nodes which are not part of
// the syntax tree proper.
var skippedKeys = map[string]bool{
	"tokens":   true,
	"comments": true,
	"parent":   true,
	"type":     true,
	"range":    true,
	"loc":      true,
	"start":    true,
	"end":      true,
}

// Decode reads an ESTree JSON document whose root is a Program node.
func Decode(r io.Reader, path string) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeBytes(data, path)
}

// DecodeBytes is Decode for an in-memory document.
func DecodeBytes(data []byte, path string) (*File, error) {
	root := &Node{}
	if err := json.Unmarshal(data, root); err != nil {
		return nil, errors.ErrParse.Wrap(fmt.Errorf("%s: %w", path, err))
	}
	if root.Type != Program {
		return nil, errors.ErrUnsupportedSource.Wrap(fmt.Errorf("%s: root node is %q, expected %q", path, root.Type, Program))
	}
	Link(root)
	return &File{Root: root, Path: path}, nil
}

// UnmarshalJSON decodes a node object. Unknown object- or array-valued keys
// holding typed objects become children; scalar keys the rules do not use are
// dropped.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]jsontext.Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["type"]; ok {
		var typ string
		if err := json.Unmarshal(v, &typ); err != nil {
			return fmt.Errorf("type: %w", err)
		}
		n.Type = NodeType(typ)
	}
	if n.Type == "" {
		return errors.New("node has no type")
	}

	if err := n.decodePosition(raw); err != nil {
		return err
	}

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		v := raw[key]
		if skippedKeys[key] {
			continue
		}
		switch v.Kind() {
		case '{':
			if hasType(v) {
				child := &Node{}
				if err := json.Unmarshal(v, child); err != nil {
					return fmt.Errorf("%s.%s: %w", n.Type, key, err)
				}
				n.fields = append(n.fields, field{key: key, node: child})
				continue
			}
			// Plain objects such as regex descriptors or template values.
			if key == "value" {
				if err := json.Unmarshal(v, &n.Value); err != nil {
					return fmt.Errorf("%s.value: %w", n.Type, err)
				}
			}
		case '[':
			list, ok, err := decodeList(v)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", n.Type, key, err)
			}
			if ok {
				n.fields = append(n.fields, field{key: key, list: list, isList: true})
			}
		default:
			if err := n.decodeScalar(key, v); err != nil {
				return fmt.Errorf("%s.%s: %w", n.Type, key, err)
			}
		}
	}

	n.sortFields()
	return nil
}

func (n *Node) decodePosition(raw map[string]jsontext.Value) error {
	if v, ok := raw["range"]; ok {
		if err := json.Unmarshal(v, &n.Range); err != nil {
			return fmt.Errorf("%s.range: %w", n.Type, err)
		}
	} else {
		// acorn style offsets
		if v, ok := raw["start"]; ok && v.Kind() == '0' {
			if err := json.Unmarshal(v, &n.Range[0]); err != nil {
				return fmt.Errorf("%s.start: %w", n.Type, err)
			}
		}
		if v, ok := raw["end"]; ok && v.Kind() == '0' {
			if err := json.Unmarshal(v, &n.Range[1]); err != nil {
				return fmt.Errorf("%s.end: %w", n.Type, err)
			}
		}
	}
	if v, ok := raw["loc"]; ok && v.Kind() == '{' {
		n.Loc = &SourceLocation{}
		if err := json.Unmarshal(v, n.Loc); err != nil {
			return fmt.Errorf("%s.loc: %w", n.Type, err)
		}
	}
	return nil
}

func (n *Node) decodeScalar(key string, v jsontext.Value) error {
	switch key {
	case "name":
		return unmarshalString(v, &n.Name)
	case "operator":
		return unmarshalString(v, &n.Operator)
	case "directive":
		if v.Kind() != '"' {
			return nil
		}
		n.Prologue = true
		return json.Unmarshal(v, &n.Directive)
	case "raw":
		return unmarshalString(v, &n.Raw)
	case "kind":
		return unmarshalString(v, &n.Kind)
	case "optional":
		return unmarshalBool(v, &n.Optional)
	case "computed":
		return unmarshalBool(v, &n.Computed)
	case "prefix":
		return unmarshalBool(v, &n.Prefix)
	case "value":
		return json.Unmarshal(v, &n.Value)
	}
	return nil
}

// decodeList decodes an array of nodes. Arrays of non-node values report ok=false.
func decodeList(v jsontext.Value) ([]*Node, bool, error) {
	var items []jsontext.Value
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, false, err
	}
	list := make([]*Node, 0, len(items))
	for _, item := range items {
		switch item.Kind() {
		case 'n':
			list = append(list, nil)
		case '{':
			if !hasType(item) {
				return nil, false, nil
			}
			child := &Node{}
			if err := json.Unmarshal(item, child); err != nil {
				return nil, false, err
			}
			list = append(list, child)
		default:
			return nil, false, nil
		}
	}
	return list, true, nil
}

func unmarshalString(v jsontext.Value, out *string) error {
	if v.Kind() != '"' {
		return nil
	}
	return json.Unmarshal(v, out)
}

func unmarshalBool(v jsontext.Value, out *bool) error {
	switch v.Kind() {
	case 't':
		*out = true
	case 'f':
		*out = false
	}
	return nil
}

func hasType(v jsontext.Value) bool {
	var head struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(v, &head) == nil && head.Type != ""
}
