// Package jsonval models JSON documents as an immutable tagged value tree.
//
// The column encoders dispatch on value kinds, so parsing goes through an
// explicit variant type rather than map[string]any: object member order is
// retained from the input, number text is kept verbatim (no float round
// trips), and canonical printing is deterministic.
package jsonval

import (
	"sort"
	"strconv"
)

// Kind discriminates the JSON value variants.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// MaxSafeInt is the largest integer magnitude the integer column encoders
// accept. Values beyond it lose precision in hosts with 53-bit number types,
// so they stay in raw JSON form.
const MaxSafeInt = 1<<53 - 1

// Member is one key/value pair of an object. Input order is preserved on the
// Value; canonical printing sorts by key.
type Member struct {
	Key   string
	Value Value
}

// Value is one JSON value. The zero value is JSON null.
type Value struct {
	arr  []Value
	obj  []Member
	num  string
	str  string
	kind Kind
	b    bool
}

// Null returns the JSON null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a JSON boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a JSON number holding its raw text form. The text must be a
// valid JSON number; it is reprinted verbatim.
func Number(raw string) Value {
	return Value{kind: KindNumber, num: raw}
}

// Int returns a JSON number for an integer.
func Int(v int64) Value {
	return Value{kind: KindNumber, num: strconv.FormatInt(v, 10)}
}

// String returns a JSON string.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns a JSON array. The slice is owned by the value afterwards.
func Array(elems []Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Object returns a JSON object from members in input order. The slice is
// owned by the value afterwards.
func Object(members []Member) Value {
	return Value{kind: KindObject, obj: members}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// BoolVal returns the boolean payload. Only meaningful for KindBool.
func (v Value) BoolVal() bool {
	return v.b
}

// NumberText returns the raw number text. Only meaningful for KindNumber.
func (v Value) NumberText() string {
	return v.num
}

// StringVal returns the string payload. Only meaningful for KindString.
func (v Value) StringVal() string {
	return v.str
}

// Elems returns the array elements. Only meaningful for KindArray.
func (v Value) Elems() []Value {
	return v.arr
}

// Members returns the object members in input order. Only meaningful for
// KindObject.
func (v Value) Members() []Member {
	return v.obj
}

// IntVal reports the value as an int64 when it is a JSON integer whose text
// round-trips exactly: plain decimal form, magnitude at most MaxSafeInt, and
// not the literal "-0" (which FormatInt would reprint as "0").
func (v Value) IntVal() (int64, bool) {
	if v.kind != KindNumber || v.num == "-0" {
		return 0, false
	}
	for i := 0; i < len(v.num); i++ {
		c := v.num[i]
		if c == '.' || c == 'e' || c == 'E' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(v.num, 10, 64)
	if err != nil || n > MaxSafeInt || n < -MaxSafeInt {
		return 0, false
	}

	return n, true
}

// Keys returns the object's key list sorted bytewise. Only meaningful for
// KindObject.
func (v Value) Keys() []string {
	keys := make([]string, len(v.obj))
	for i, m := range v.obj {
		keys[i] = m.Key
	}
	sort.Strings(keys)

	return keys
}

// Get returns the value of the named member. The second result is false when
// the key is absent.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}

	return Value{}, false
}

// Equal reports deep structural equality. Objects compare order-insensitively
// (by sorted key), numbers compare by raw text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for _, m := range v.obj {
			ov, ok := other.Get(m.Key)
			if !ok || !m.Value.Equal(ov) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
