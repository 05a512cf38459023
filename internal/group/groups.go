// Package group aggregates scanned folders into theme groups keyed by colour signature.
package group

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Groups maps signatures to folder names. Both the signatures and the folder
// names within each signature keep the order in which they were added.
type Groups struct {
	keys    []string
	members map[string][]string
}

// New creates an empty Groups.
func New() *Groups {
	return &Groups{
		members: make(map[string][]string),
	}
}

// Add appends name to the group for signature, creating the group if needed.
func (g *Groups) Add(signature, name string) {
	if _, ok := g.members[signature]; !ok {
		g.keys = append(g.keys, signature)
		g.members[signature] = []string{}
	}
	g.members[signature] = append(g.members[signature], name)
}

// extend appends names to the group for signature, creating it even when
// names is empty.
func (g *Groups) extend(signature string, names []string) {
	if !g.Has(signature) {
		g.keys = append(g.keys, signature)
		g.members[signature] = []string{}
	}
	g.members[signature] = append(g.members[signature], names...)
}

// Len returns the number of distinct signatures.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Keys returns the signatures in insertion order.
func (g *Groups) Keys() []string {
	return slices.Clone(g.keys)
}

// Members returns the folder names of a signature in insertion order.
func (g *Groups) Members(signature string) []string {
	return slices.Clone(g.members[signature])
}

// Has reports whether a group exists for signature.
func (g *Groups) Has(signature string) bool {
	_, ok := g.members[signature]
	return ok
}

// MarshalJSON encodes the groups as a JSON object in insertion order.
func (g *Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, k := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(g.members[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	// Encoder.Encode terminates each value with a newline; drop them.
	return bytes.ReplaceAll(buf.Bytes(), []byte("\n"), nil), nil
}

// UnmarshalJSON decodes a JSON object of string arrays, keeping key order.
func (g *Groups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	*g = *New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", tok)
		}

		var names []string
		if err := dec.Decode(&names); err != nil {
			return fmt.Errorf("group %q: %w", key, err)
		}
		g.extend(key, names)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalYAML encodes the groups as a YAML mapping in insertion order.
func (g *Groups) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range g.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}

		valNode := &yaml.Node{Kind: yaml.SequenceNode}
		for _, name := range g.members[k] {
			valNode.Content = append(valNode.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name})
		}

		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping of string sequences, keeping key order.
func (g *Groups) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected YAML mapping", value.Line)
	}

	*g = *New()
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}

		var names []string
		if err := value.Content[i+1].Decode(&names); err != nil {
			return fmt.Errorf("group %q: %w", key, err)
		}
		g.extend(key, names)
	}
	return nil
}
