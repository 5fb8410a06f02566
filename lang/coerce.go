package lang

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// IsTruthy reports whether v counts as true in a condition.
// False are nil, false, the empty string, zero and NaN.
func IsTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}

	if f, ok := numeric(v); ok {
		return f != 0 && !math.IsNaN(f)
	}

	return true
}

// ToString returns the text rendering of v.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case []any:
		part := make([]string, len(t))
		for i, e := range t {
			if e != nil {
				part[i] = ToString(e)
			}
		}

		return strings.Join(part, ",")
	}

	if f, ok := numeric(v); ok {
		return formatNumber(f)
	}

	return fmt.Sprint(v)
}

// ToNumber converts v to a number. Values with no numeric reading are NaN.
func ToNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}

		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}

		if f, ok := parseNumber(s); ok {
			return f
		}

		switch s {
		case "Infinity", "+Infinity":
			return math.Inf(1)
		case "-Infinity":
			return math.Inf(-1)
		}

		return math.NaN()
	case []any:
		switch len(t) {
		case 0:
			return 0
		case 1:
			return ToNumber(ToString(t[0]))
		}

		return math.NaN()
	}

	if f, ok := numeric(v); ok {
		return f
	}

	return math.NaN()
}

// formatNumber renders f the shortest way that round-trips, switching to
// exponent notation outside [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")

		return mant + "e" + sign + digits
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	}

	return 0, false
}

// primitive reduces compound values to their text form before arithmetic
// or comparison.
func primitive(v any) any {
	switch v.(type) {
	case nil, bool, string:
		return v
	}

	if f, ok := numeric(v); ok {
		return f
	}

	return ToString(v)
}

func plus(a, b any) any {
	a, b = primitive(a), primitive(b)

	_, as := a.(string)
	_, bs := b.(string)

	if as || bs {
		return ToString(a) + ToString(b)
	}

	return ToNumber(a) + ToNumber(b)
}

// strictEqual compares without conversion: values of different kinds are
// never equal, NaN equals nothing and arrays are equal only to themselves.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if x, ok := numeric(a); ok {
		y, ok := numeric(b)

		return ok && x == y
	}

	switch x := a.(type) {
	case string:
		y, ok := b.(string)

		return ok && x == y
	case bool:
		y, ok := b.(bool)

		return ok && x == y
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}

	switch ra.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan:
		if ra.Kind() == reflect.Slice && ra.Len() != rb.Len() {
			return false
		}

		return ra.Pointer() == rb.Pointer()
	}

	return ra.Type().Comparable() && a == b
}

// order compares a and b as text when both are text, otherwise as numbers.
// ok is false when either side is NaN, making every ordering false.
func order(a, b any) (c int, ok bool) {
	a, b = primitive(a), primitive(b)

	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true
		}
	}

	x, y := ToNumber(a), ToNumber(b)
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, false
	}

	return cmp.Compare(x, y), true
}
