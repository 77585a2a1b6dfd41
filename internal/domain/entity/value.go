package entity

import (
	"fmt"
	"strconv"
)

// ValueType identifies which leaf type a Value holds.
type ValueType uint8

const (
	// ValueUnset marks the absence of a value (e.g. a field without a default).
	ValueUnset ValueType = iota
	ValueString
	ValueInt
	ValueBool
)

func (t ValueType) String() string {
	switch t {
	case ValueString:
		return "string"
	case ValueInt:
		return "int"
	case ValueBool:
		return "bool"
	default:
		return "unset"
	}
}

// Value is a single settings leaf: a string, an integer or a boolean.
// The zero Value is unset.
type Value struct {
	typ ValueType
	s   string
	i   int64
	b   bool
}

func StringValue(s string) Value { return Value{typ: ValueString, s: s} }

func IntValue(i int64) Value { return Value{typ: ValueInt, i: i} }

func BoolValue(b bool) Value { return Value{typ: ValueBool, b: b} }

// Type returns the leaf type held by v.
func (v Value) Type() ValueType { return v.typ }

// IsSet reports whether v holds a value.
func (v Value) IsSet() bool { return v.typ != ValueUnset }

// Str returns the string leaf, or "" when v is not a string.
func (v Value) Str() string { return v.s }

// Int returns the integer leaf, or 0 when v is not an integer.
func (v Value) Int() int64 { return v.i }

// Bool returns the boolean leaf, or false when v is not a boolean.
func (v Value) Bool() bool { return v.b }

// Interface returns the leaf as a plain Go value (string, int64, bool or nil).
func (v Value) Interface() any {
	switch v.typ {
	case ValueString:
		return v.s
	case ValueInt:
		return v.i
	case ValueBool:
		return v.b
	default:
		return nil
	}
}

// String renders the leaf the way a form field would display it.
func (v Value) String() string {
	switch v.typ {
	case ValueString:
		return v.s
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueBool:
		if v.b {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

// Equal reports whether both values hold the same type and leaf.
func (v Value) Equal(other Value) bool {
	return v == other
}

// ValueFromInterface converts a decoded leaf (as produced by TOML or JSON
// decoders) into a Value.
func ValueFromInterface(raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case int:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case float64:
		if x != float64(int64(x)) {
			return Value{}, fmt.Errorf("non-integer number %v", x)
		}
		return IntValue(int64(x)), nil
	default:
		return Value{}, fmt.Errorf("unsupported leaf type %T", raw)
	}
}
