package jsonvalue

import (
	"math"
	"unicode/utf8"
)

// Kind identifies the runtime type of a Value.
type Kind uint8

const (
	// KindNull is the JSON null literal. The zero Value has this kind.
	KindNull Kind = iota
	// KindBool is true or false.
	KindBool
	// KindInt is an integer that fits in an int64.
	KindInt
	// KindUint is an unsigned integer too large for an int64.
	KindUint
	// KindFloat is a number with a fractional part or an exponent.
	KindFloat
	// KindString is a UTF-8 string.
	KindString
	// KindArray is an ordered sequence of values.
	KindArray
	// KindObject is an ordered mapping of unique string keys to values.
	KindObject
)

// String returns the JSON Schema type name for the kind.
// All numeric kinds report "number".
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt, KindUint, KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// object holds members in document order plus a key index.
type object struct {
	members []Member
	index   map[string]int
}

// Value is an immutable JSON value. The zero Value is null.
//
// Values are cheap to copy: arrays and objects share their backing storage,
// which must never be modified once the Value is built.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	u     uint64
	f     float64
	s     string
	items []Value
	obj   *object
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Uint returns an unsigned integer value. Values that fit in an int64 are
// stored as KindInt so that the two integer kinds never overlap.
func Uint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return Value{kind: KindUint, u: u}
}

// Float returns a floating point value. NaN and infinities are not valid
// JSON numbers; callers must not pass them.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array holding items in order.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object returns an object holding members in order.
// When a key repeats, the later member replaces the earlier one in place.
func Object(members ...Member) Value {
	o := &object{
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		if i, ok := o.index[m.Key]; ok {
			o.members[i].Value = m.Value
			continue
		}
		o.index[m.Key] = len(o.members)
		o.members = append(o.members, m)
	}
	return Value{kind: KindObject, obj: o}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsBool reports whether v is a boolean.
func (v Value) IsBool() bool { return v.kind == KindBool }

// IsNumber reports whether v is any numeric kind.
func (v Value) IsNumber() bool {
	return v.kind == KindInt || v.kind == KindUint || v.kind == KindFloat
}

// IsInteger reports whether v is a number with no fractional part.
// A float such as 1.0 is an integer under this definition.
func (v Value) IsInteger() bool {
	switch v.kind {
	case KindInt, KindUint:
		return true
	case KindFloat:
		return !math.IsInf(v.f, 0) && v.f == math.Trunc(v.f)
	default:
		return false
	}
}

// IsString reports whether v is a string.
func (v Value) IsString() bool { return v.kind == KindString }

// IsArray reports whether v is an array.
func (v Value) IsArray() bool { return v.kind == KindArray }

// IsObject reports whether v is an object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// AsBool returns the boolean held by v, or false for other kinds.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsString returns the string held by v, or "" for other kinds.
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Float64 returns v as a float64. Non-numeric values return 0.
func (v Value) Float64() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindUint:
		return float64(v.u)
	case KindFloat:
		return v.f
	default:
		return 0
	}
}

// Int64 returns v as an int64 when v is an integer representable exactly.
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		if v.IsInteger() && v.f >= math.MinInt64 && v.f < math.MaxInt64 {
			return int64(v.f), true
		}
	}
	return 0, false
}

// Count returns v as a non-negative count, as used by keywords such as
// maxLength or minItems. It fails for negative or non-integer values.
func (v Value) Count() (uint64, bool) {
	switch v.kind {
	case KindInt:
		if v.i >= 0 {
			return uint64(v.i), true
		}
	case KindUint:
		return v.u, true
	case KindFloat:
		if v.IsInteger() && v.f >= 0 && v.f < math.MaxUint64 {
			return uint64(v.f), true
		}
	}
	return 0, false
}

// RuneCount returns the length of a string value in Unicode code points.
func (v Value) RuneCount() int {
	if v.kind != KindString {
		return 0
	}
	return utf8.RuneCountInString(v.s)
}

// Len returns the number of items of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.obj.members)
	default:
		return 0
	}
}

// Items returns the items of an array. The slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Index returns the i-th item of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Members returns the members of an object in document order.
// The slice must not be modified.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.obj.members
}

// MemberIndex returns the position of key within the object, or -1.
func (v Value) MemberIndex(key string) int {
	if v.kind != KindObject {
		return -1
	}
	if i, ok := v.obj.index[key]; ok {
		return i
	}
	return -1
}

// Lookup returns the value stored under key in an object.
func (v Value) Lookup(key string) (Value, bool) {
	i := v.MemberIndex(key)
	if i < 0 {
		return Value{}, false
	}
	return v.obj.members[i].Value, true
}

// Has reports whether an object contains key.
func (v Value) Has(key string) bool { return v.MemberIndex(key) >= 0 }

// Keys returns the keys of an object in document order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.obj.members))
	for i, m := range v.obj.members {
		keys[i] = m.Key
	}
	return keys
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	return string(v.AppendJSON(nil))
}
