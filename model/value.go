package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/autom8ter/shinyoracle/errors"
	"github.com/spf13/cast"
)

// Kind is the variant held by a Value
type Kind int

const (
	// KindInt is a 64 bit signed integer
	KindInt Kind = iota + 1
	// KindFloat is a 64 bit floating point number
	KindFloat
	// KindText is a utf-8 string
	KindText
	// KindBool is a boolean
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a scalar document field value. The zero Value is invalid.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Int returns an integer Value
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a floating point Value
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Text returns a text Value
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Bool returns a boolean Value
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// ValueOf converts a go scalar into a Value. json.Number literals keep their integer-ness.
func ValueOf(v any) (Value, error) {
	switch v := v.(type) {
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return Text(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return Value{}, errors.Wrap(err, errors.TypeMismatch, "invalid number literal: %s", v.String())
		}
		return Float(f), nil
	case float32, float64:
		return Float(cast.ToFloat64(v)), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		i, err := cast.ToInt64E(v)
		if err != nil {
			return Value{}, errors.Wrap(err, errors.TypeMismatch, "")
		}
		return Int(i), nil
	case uint64:
		if v > math.MaxInt64 {
			return Float(float64(v)), nil
		}
		return Int(int64(v)), nil
	default:
		return Value{}, errors.New(errors.TypeMismatch, "unsupported value type: %T", v)
	}
}

// Kind returns the variant held by the value
func (v Value) Kind() Kind {
	return v.kind
}

// Valid returns true if the value holds a variant
func (v Value) Valid() bool {
	return v.kind != 0
}

// IsNumeric returns true for integer and float values
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// Int64 returns the integer held by the value (floats are truncated)
func (v Value) Int64() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// Float64 returns the numeric value widened to a float
func (v Value) Float64() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	default:
		return v.f
	}
}

// Text returns the string held by the value
func (v Value) Text() string {
	return v.s
}

// Bool returns the boolean held by the value
func (v Value) Bool() bool {
	return v.b
}

// Interface returns the value as a plain go value
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// String returns the native textual form of the value. Floats always carry a fractional part.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindText:
		return v.s
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	// positional form inside [1e-4, 1e16), exponent form outside
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MarshalJSON encodes the value as a json scalar
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindFloat {
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return nil, errors.New(errors.InvalidArgument, "non-finite float cannot be encoded: %v", v.f)
		}
		// floats keep a fractional part or exponent so they decode back as floats
		return []byte(formatFloat(v.f)), nil
	}
	return json.Marshal(v.Interface())
}

// Equal reports whether two values are equal. Integers and floats compare exactly by numeric value and a
// boolean compared with a number compares as 0 or 1. Any other cross-kind comparison is false.
func (v Value) Equal(other Value) bool {
	switch {
	case v.kind == other.kind:
		switch v.kind {
		case KindInt:
			return v.i == other.i
		case KindFloat:
			return v.f == other.f
		case KindText:
			return v.s == other.s
		case KindBool:
			return v.b == other.b
		}
		return false
	case v.isNumberLike() && other.isNumberLike():
		cmp, ok := compareNumbers(v, other)
		return ok && cmp == 0
	default:
		return false
	}
}

// Compare returns -1, 0 or 1 ordering v against other. Numbers order exactly by numeric value, text by code
// point and booleans false before true. Comparing incompatible kinds is a TypeMismatch.
func (v Value) Compare(other Value) (int, error) {
	switch {
	case v.IsNumeric() && other.IsNumeric():
		cmp, _ := compareNumbers(v, other)
		return cmp, nil
	case v.kind == KindText && other.kind == KindText:
		return strings.Compare(v.s, other.s), nil
	case v.kind == KindBool && other.kind == KindBool:
		return compareOrdered(v.Float64(), other.Float64()), nil
	default:
		return 0, errors.New(errors.TypeMismatch, "cannot compare %s with %s", v.kind, other.kind)
	}
}

func (v Value) isNumberLike() bool {
	return v.IsNumeric() || v.kind == KindBool
}

// asInt returns booleans as 0 or 1
func (v Value) asInt() Value {
	if v.kind == KindBool {
		return Int(int64(v.Float64()))
	}
	return v
}

// 2^63 is the first float above the int64 range
var twoTo63 = math.Ldexp(1, 63)

// compareNumbers orders numbers without widening integers to float64, so integers beyond 2^53 stay
// distinct. ok is false when either side is NaN.
func compareNumbers(a, b Value) (cmp int, ok bool) {
	a, b = a.asInt(), b.asInt()
	switch {
	case a.kind == KindInt && b.kind == KindInt:
		return compareOrdered(a.i, b.i), true
	case a.kind == KindFloat && b.kind == KindFloat:
		if math.IsNaN(a.f) || math.IsNaN(b.f) {
			return 0, false
		}
		return compareOrdered(a.f, b.f), true
	case a.kind == KindInt:
		return compareIntFloat(a.i, b.f)
	default:
		cmp, ok = compareIntFloat(b.i, a.f)
		return -cmp, ok
	}
}

func compareIntFloat(i int64, f float64) (int, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= twoTo63:
		return -1, true
	case f < -twoTo63:
		return 1, true
	}
	whole := math.Trunc(f)
	if cmp := compareOrdered(i, int64(whole)); cmp != 0 {
		return cmp, true
	}
	// i is the integral part of f
	return compareOrdered(whole, f), true
}

// numericIdentity encodes a number so that two numbers share an identity iff they are Equal
func numericIdentity(v Value) string {
	v = v.asInt()
	if v.kind == KindInt {
		return "i:" + strconv.FormatInt(v.i, 10)
	}
	if v.f == math.Trunc(v.f) && v.f >= -twoTo63 && v.f < twoTo63 {
		return "i:" + strconv.FormatInt(int64(v.f), 10)
	}
	return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
