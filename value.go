package grimoire

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ValueKind identifies the shape of a Value node.
type ValueKind int

// Value node kinds.
const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindSeq
	KindMap
)

// Value is a tagged representation of one node in a record's attribute
// tree. The mechanical dataset nests maps, lists and scalars to
// arbitrary depth with no schema; Value replaces shape probing at every
// read site with safe-navigation accessors that return zero values for
// absent or mismatched nodes.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	seq  []Value
	m    map[string]Value
}

// NullValue is the absent node. All accessors on it return zero values.
var NullValue = Value{kind: KindNull}

// ValueOf converts a decoded JSON value (the output of encoding/json
// into any) to a Value tree.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return NullValue
	case string:
		return Value{kind: KindString, str: t}
	case float64:
		return Value{kind: KindNumber, num: t}
	case int:
		return Value{kind: KindNumber, num: float64(t)}
	case int64:
		return Value{kind: KindNumber, num: float64(t)}
	case json.Number:
		f, _ := t.Float64()
		return Value{kind: KindNumber, num: f}
	case bool:
		return Value{kind: KindBool, b: t}
	case []any:
		seq := make([]Value, len(t))
		for i, e := range t {
			seq[i] = ValueOf(e)
		}
		return Value{kind: KindSeq, seq: seq}
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = ValueOf(e)
		}
		return Value{kind: KindMap, m: m}
	default:
		return NullValue
	}
}

// ParseValue decodes JSON bytes into a Value tree.
func ParseValue(data []byte) (Value, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return NullValue, err
	}
	return ValueOf(raw), nil
}

// Kind returns the node kind.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the node is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Get navigates a chain of map keys, returning NullValue as soon as a
// key is missing or an intermediate node is not a map.
func (v Value) Get(keys ...string) Value {
	cur := v
	for _, k := range keys {
		if cur.kind != KindMap {
			return NullValue
		}
		next, ok := cur.m[k]
		if !ok {
			return NullValue
		}
		cur = next
	}
	return cur
}

// Has reports whether the map node contains the key.
func (v Value) Has(key string) bool {
	if v.kind != KindMap {
		return false
	}
	_, ok := v.m[key]
	return ok
}

// Index returns the i-th element of a sequence node, or NullValue.
func (v Value) Index(i int) Value {
	if v.kind != KindSeq || i < 0 || i >= len(v.seq) {
		return NullValue
	}
	return v.seq[i]
}

// Seq returns the elements of a sequence node, or nil.
func (v Value) Seq() []Value {
	if v.kind != KindSeq {
		return nil
	}
	return v.seq
}

// Keys returns the sorted keys of a map node, or nil. Sorted order
// keeps rendering and extraction deterministic.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Str returns the string scalar, or "" if the node is not a string.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Float returns the number scalar, or 0.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Int returns the number scalar truncated to int, or 0.
func (v Value) Int() int { return int(v.Float()) }

// IntOK returns the number scalar and whether the node was numeric.
func (v Value) IntOK() (int, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return int(v.num), true
}

// Bool returns the boolean scalar, or false.
func (v Value) Bool() bool {
	if v.kind != KindBool {
		return false
	}
	return v.b
}

// Strings returns the string elements of a sequence node, skipping
// non-string elements. A {"value": [...]} wrapper is not unwrapped;
// callers combine this with Get/ValueOrSelf as needed.
func (v Value) Strings() []string {
	seq := v.Seq()
	if seq == nil {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, e := range seq {
		if e.kind == KindString {
			out = append(out, e.str)
		}
	}
	return out
}

// ValueOrSelf unwraps the pervasive {"value": X} convention of the
// mechanical dataset: for a map node with a "value" key it returns that
// child, otherwise the node itself.
func (v Value) ValueOrSelf() Value {
	if v.kind == KindMap {
		if inner, ok := v.m["value"]; ok {
			return inner
		}
	}
	return v
}

// Interface converts the Value tree back to the plain representation
// used by encoding/json.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindSeq:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
