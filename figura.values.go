package figura

import "strconv"

// ValueKind identifies the scalar kind held by a Value.
type ValueKind int

const (
	// KindString is a text value.
	KindString ValueKind = iota
	// KindInt is a signed 64-bit integer value.
	KindInt
	// KindFloat is a double-precision floating-point value.
	KindFloat
	// KindBool is a boolean value.
	KindBool
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return KindNameString
	case KindInt:
		return KindNameInt
	case KindFloat:
		return KindNameFloat
	case KindBool:
		return KindNameBool
	default:
		return ""
	}
}

// Value is an immutable scalar supplied through a Context.
// The zero Value is the empty string.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	fl   float64
	b    bool
}

// StringValue creates a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// IntValue creates an integer Value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, num: i}
}

// FloatValue creates a floating-point Value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, fl: f}
}

// BoolValue creates a boolean Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the scalar kind of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Display returns the canonical textual form of the value.
// Strings are returned as-is, numbers in decimal form, booleans as
// "true" or "false". Every directive that emits a value uses this.
func (v Value) Display() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.fl, 'f', -1, 64)
	case KindBool:
		if v.b {
			return DisplayTrue
		}
		return DisplayFalse
	default:
		return v.str
	}
}

// AsString returns the string content and true if the value is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsInt returns the integer content and true if the value is an integer.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.num, true
}

// AsFloat returns the float content and true if the value is a float.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.fl, true
}

// AsBool returns the boolean content and true if the value is a boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Context is the name-to-value table a template is rendered against.
// It is caller-owned and treated as read-only during Render; a Context
// may be shared across concurrent renders.
type Context map[string]Value

// Lookup retrieves a value by exact name.
func (c Context) Lookup(name string) (Value, bool) {
	v, ok := c[name]
	return v, ok
}
