package entity

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindString is a plain string value.
	KindString Kind = iota
	// KindInt is a 64-bit integer value.
	KindInt
	// KindBool is a boolean value.
	KindBool
	// KindStringList is a list of strings.
	KindStringList
	// KindMapping is a nested ordered property mapping.
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindStringList:
		return "string_list"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single property value: a string, integer, boolean, list of
// strings, or nested mapping. The zero value is the empty string.
type Value struct {
	kind Kind
	str  string
	num  int64
	flag bool
	list []string
	sub  *Properties
}

// String creates a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int creates an integer value.
func Int(n int64) Value {
	return Value{kind: KindInt, num: n}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// Strings creates a list-of-strings value.
func Strings(items ...string) Value {
	list := make([]string, len(items))
	copy(list, items)
	return Value{kind: KindStringList, list: list}
}

// Map creates a nested mapping value. A nil mapping is stored as empty.
func Map(p *Properties) Value {
	if p == nil {
		p = NewProperties()
	}
	return Value{kind: KindMapping, sub: p}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// AsString returns the string value and whether the value is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsInt returns the integer value and whether the value is an integer.
func (v Value) AsInt() (int64, bool) {
	return v.num, v.kind == KindInt
}

// AsBool returns the boolean value and whether the value is a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.flag, v.kind == KindBool
}

// AsStrings returns a copy of the list value and whether the value is a
// list of strings.
func (v Value) AsStrings() ([]string, bool) {
	if v.kind != KindStringList {
		return nil, false
	}
	list := make([]string, len(v.list))
	copy(list, v.list)
	return list, true
}

// AsMap returns the nested mapping and whether the value is a mapping.
// The returned mapping is shared, not copied.
func (v Value) AsMap() (*Properties, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	return v.sub, true
}

// Equal reports whether two values hold the same variant and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.num == o.num
	case KindBool:
		return v.flag == o.flag
	case KindStringList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	case KindMapping:
		return v.sub.Equal(o.sub)
	default:
		return false
	}
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	switch v.kind {
	case KindStringList:
		return Strings(v.list...)
	case KindMapping:
		return Map(v.sub.Clone())
	default:
		return v
	}
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindStringList:
		return "[" + strings.Join(v.list, ", ") + "]"
	case KindMapping:
		parts := make([]string, 0, v.sub.Len())
		for _, k := range v.sub.Keys() {
			sub, _ := v.sub.Get(k)
			parts = append(parts, k+": "+sub.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// MarshalYAML encodes the value as its natural YAML node.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindString:
		return v.str, nil
	case KindInt:
		return v.num, nil
	case KindBool:
		return v.flag, nil
	case KindStringList:
		return v.list, nil
	case KindMapping:
		return v.sub, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %s", v.kind)
	}
}

// UnmarshalYAML decodes a value from its YAML node shape. Scalars map to
// string/int/bool, sequences to string lists, mappings to nested mappings.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return v.unmarshalScalar(node)
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
				return fmt.Errorf("line %d: list values must contain only strings", item.Line)
			}
			items = append(items, item.Value)
		}
		*v = Strings(items...)
		return nil
	case yaml.MappingNode:
		sub := NewProperties()
		if err := sub.UnmarshalYAML(node); err != nil {
			return err
		}
		*v = Map(sub)
		return nil
	case yaml.AliasNode:
		return v.UnmarshalYAML(node.Alias)
	default:
		return fmt.Errorf("line %d: unsupported property value", node.Line)
	}
}

func (v *Value) unmarshalScalar(node *yaml.Node) error {
	switch node.Tag {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("line %d: decode bool: %w", node.Line, err)
		}
		*v = Bool(b)
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("line %d: decode int: %w", node.Line, err)
		}
		*v = Int(n)
	case "!!float":
		return fmt.Errorf("line %d: float values are not supported (use string or int)", node.Line)
	case "!!null":
		return fmt.Errorf("line %d: null values are not supported", node.Line)
	default:
		*v = String(node.Value)
	}
	return nil
}
