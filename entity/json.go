package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the value as its natural JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.flag)
	case KindStringList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindMapping:
		return v.sub.MarshalJSON()
	default:
		return nil, fmt.Errorf("unsupported value kind %s", v.kind)
	}
}

// UnmarshalJSON decodes a value from its JSON shape.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	decoded, err := decodeJSONValue(dec)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalJSON encodes the bag as a JSON object preserving key order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if p != nil {
		for i, k := range p.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, fmt.Errorf("encode property name %q: %w", k, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(p.vals[k])
			if err != nil {
				return nil, fmt.Errorf("encode property %q: %w", k, err)
			}
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties must be a JSON object")
	}
	decoded, err := decodeJSONObject(dec)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

// decodeJSONObject reads object members after the opening brace has been
// consumed, through the closing brace.
func decodeJSONObject(dec *json.Decoder) (*Properties, error) {
	props := NewProperties()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		props.Set(key, val)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return props, nil
}

// decodeJSONValue reads one JSON value from the decoder.
func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("number %s is not an integer (use string or int)", t)
		}
		return Int(n), nil
	case json.Delim:
		switch t {
		case '[':
			items := make([]string, 0)
			for dec.More() {
				itemTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				s, ok := itemTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("list values must contain only strings, got %v", itemTok)
				}
				items = append(items, s)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Strings(items...), nil
		case '{':
			sub, err := decodeJSONObject(dec)
			if err != nil {
				return Value{}, err
			}
			return Map(sub), nil
		default:
			return Value{}, fmt.Errorf("unexpected token %v", t)
		}
	case nil:
		return Value{}, fmt.Errorf("null values are not supported")
	default:
		return Value{}, fmt.Errorf("unsupported value %v", tok)
	}
}
