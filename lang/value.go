package lang

import (
	"math"
	"strconv"
	"strings"
)

// Literal is a parsed attribute value. Evaluating a literal never has side
// effects other than reading variables.
type Literal interface {
	// Eval returns the runtime value of the literal in env.
	Eval(env *Env) any
	// String returns the source form of the literal.
	String() string
}

type (
	// Number is a finite numeric literal.
	Number float64
	// String is a text literal.
	String string
	// Bool is a boolean literal.
	Bool bool
	// Var is a variable reference written as "$name".
	Var string
	// Binding is a named literal written as name="value".
	// Used positionally, it evaluates to its value.
	Binding struct {
		Name  string
		Value Literal
	}
)

func (n Number) Eval(*Env) any  { return float64(n) }
func (s String) Eval(*Env) any  { return string(s) }
func (b Bool) Eval(*Env) any    { return bool(b) }
func (v Var) Eval(env *Env) any { return env.Get(string(v), nil) }

func (b Binding) Eval(env *Env) any {
	if b.Value == nil {
		return nil
	}

	return b.Value.Eval(env)
}

func (n Number) String() string { return formatNumber(float64(n)) }
func (s String) String() string { return string(s) }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }
func (v Var) String() string    { return "$" + string(v) }

func (b Binding) String() string {
	if b.Value == nil {
		return b.Name + "="
	}

	return b.Name + "=" + strconv.Quote(b.Value.String())
}

// ParseLiteral converts raw attribute text to a literal.
//
// Text that parses as a finite number becomes a [Number], text beginning with
// "$" becomes a [Var], the exact words true and false become a [Bool], and
// anything else is a [String].
func ParseLiteral(text string) Literal {
	if f, ok := parseNumber(text); ok {
		return Number(f)
	}

	if name, ok := strings.CutPrefix(text, "$"); ok {
		return Var(name)
	}

	switch text {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	return String(text)
}

// ParseAttr converts a raw attribute pair to a literal. An attribute with an
// empty value is positional and parses from its name; any other attribute is
// a [Binding] whose value parses from the value text.
func ParseAttr(name, value string) Literal {
	if value == "" {
		return ParseLiteral(name)
	}

	return Binding{Name: name, Value: ParseLiteral(value)}
}

// parseNumber accepts decimal and exponent notation, Infinity spellings
// excluded, plus 0x/0o/0b integer prefixes. Surrounding whitespace is
// ignored and whitespace alone is zero, as in [ToNumber].
func parseNumber(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	s := strings.TrimSpace(text)
	if s == "" {
		return 0, true
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			u, err := strconv.ParseUint(s, 0, 64)
			if err != nil || strings.Contains(s, "_") {
				return 0, false
			}

			return float64(u), true
		}
	}

	// ParseFloat also accepts hex floats, underscores, "inf" and "nan".
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '.', c == 'e', c == 'E', c == '+', c == '-':
		default:
			return 0, false
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}
