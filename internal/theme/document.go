// Package theme renders the theme template into per-variant documents and
// checks the result for structure, accessibility, drift, and token coverage.
package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Value is one JSON value in a document: *Object, []Value, string,
// json.Number, bool, or nil.
type Value = any

// Object is a JSON object that remembers key declaration order, so that
// re-encoding a document is byte-deterministic. Rendered output order is fixed
// by the template's declared key lists, never by Go map iteration.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set stores a value under key. A new key is appended; an existing key keeps
// its original position and gets the new value.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in declaration order. The returned slice is shared;
// callers must not modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// GetObject returns the object stored under key, or nil if the key is absent
// or holds a non-object.
func (o *Object) GetObject(key string) *Object {
	v, ok := o.vals[key]
	if !ok {
		return nil
	}
	obj, _ := v.(*Object)
	return obj
}

// GetString returns the string stored under key.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.vals[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetArray returns the array stored under key, or nil.
func (o *Object) GetArray(key string) []Value {
	v, ok := o.vals[key]
	if !ok {
		return nil
	}
	arr, _ := v.([]Value)
	return arr
}

// SortedKeys returns the keys in lexical order, for order-insensitive
// comparisons.
func (o *Object) SortedKeys() []string {
	keys := append([]string(nil), o.keys...)
	sort.Strings(keys)
	return keys
}

// Decode parses a JSON document into an ordered object tree. The top-level
// value must be an object. Number literals are kept verbatim (json.Number) so
// that re-encoding does not reformat them.
func Decode(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("document root is %T, expected an object", v)
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing content after document")
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, expected string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []Value{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		// string, json.Number, bool, or nil.
		return tok, nil
	}
}

// Encode serialises the document with two-space indentation and a trailing
// newline. Identical documents always encode to identical bytes.
func Encode(o *Object) []byte {
	var buf bytes.Buffer
	encodeValue(&buf, o, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func encodeValue(buf *bytes.Buffer, v Value, depth int) {
	switch t := v.(type) {
	case *Object:
		if t.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, key := range t.Keys() {
			writeIndent(buf, depth+1)
			writeString(buf, key)
			buf.WriteString(": ")
			val, _ := t.Get(key)
			encodeValue(buf, val, depth+1)
			if i < t.Len()-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	case []Value:
		if len(t) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, val := range t {
			writeIndent(buf, depth+1)
			encodeValue(buf, val, depth+1)
			if i < len(t)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	case string:
		writeString(buf, t)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	default:
		// Unreachable for documents built by this package.
		raw, _ := json.Marshal(t)
		buf.Write(raw)
	}
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func writeString(buf *bytes.Buffer, s string) {
	raw, _ := json.Marshal(s)
	buf.Write(raw)
}
