package entity

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Properties is an insertion-ordered mapping from property name to Value.
// Keys keep the position of their first Set; overwriting a key keeps its
// original position. Reads are safe on a nil receiver.
type Properties struct {
	keys []string
	vals map[string]Value
}

// NewProperties creates an empty property bag.
func NewProperties() *Properties {
	return &Properties{vals: make(map[string]Value)}
}

// Set stores a value under name, appending the key on first use.
func (p *Properties) Set(name string, v Value) {
	if p.vals == nil {
		p.vals = make(map[string]Value)
	}
	if _, ok := p.vals[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.vals[name] = v
}

// Get returns the value for name and whether it is present.
func (p *Properties) Get(name string) (Value, bool) {
	if p == nil {
		return Value{}, false
	}
	v, ok := p.vals[name]
	return v, ok
}

// Has reports whether name is present.
func (p *Properties) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Delete removes name and reports whether it was present.
func (p *Properties) Delete(name string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.vals[name]; !ok {
		return false
	}
	delete(p.vals, name)
	for i, k := range p.keys {
		if k == name {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the property names in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Merge applies patch on top of the bag: patch keys overwrite existing
// values in place, new keys append in patch order, other keys are retained.
func (p *Properties) Merge(patch *Properties) {
	if patch == nil {
		return
	}
	for _, k := range patch.keys {
		p.Set(k, patch.vals[k].Clone())
	}
}

// Clone returns a deep copy. Cloning nil yields an empty bag.
func (p *Properties) Clone() *Properties {
	out := NewProperties()
	if p == nil {
		return out
	}
	for _, k := range p.keys {
		out.Set(k, p.vals[k].Clone())
	}
	return out
}

// Equal reports whether two bags hold the same keys in the same order with
// equal values. Nil and empty bags compare equal.
func (p *Properties) Equal(o *Properties) bool {
	if p.Len() != o.Len() {
		return false
	}
	if p == nil || o == nil {
		return true
	}
	for i, k := range p.keys {
		if o.keys[i] != k {
			return false
		}
		if !p.vals[k].Equal(o.vals[k]) {
			return false
		}
	}
	return true
}

// MarshalYAML encodes the bag as a mapping preserving key order.
func (p *Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if p == nil {
		return node, nil
	}
	for _, k := range p.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{}
		if err := valNode.Encode(p.vals[k]); err != nil {
			return nil, fmt.Errorf("encode property %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping node preserving key order. Duplicate keys
// keep their first position with the last value.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		return p.UnmarshalYAML(node.Alias)
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	*p = *NewProperties()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		var v Value
		if err := v.UnmarshalYAML(valNode); err != nil {
			return fmt.Errorf("property %q: %w", keyNode.Value, err)
		}
		p.Set(keyNode.Value, v)
	}
	return nil
}
