package lang

import (
	"context"
	"io"
	"strings"
)

// Kind identifies the variant of a [Node].
type Kind int

const (
	// KindValue is a literal producing a text leaf (V tag or text).
	KindValue Kind = iota

	// KindComment logs the values of its children (NB tag).
	KindComment

	// KindDefine registers a user function (DEFN tag).
	KindDefine

	// KindLet binds variables in a child scope (LET tag).
	KindLet

	// KindCond selects the first satisfied branch (COND tag).
	KindCond

	// KindIf renders its body when its condition holds (IF tag).
	KindIf

	// KindElse renders its body unconditionally (ELSE tag).
	KindElse

	// KindFor renders its body once per element (FOR tag).
	KindFor

	// KindCall invokes a function (DO tag).
	KindCall

	// KindElement is a pass-through markup element.
	KindElement
)

// String returns a string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "Value"

	case KindComment:
		return "Comment"

	case KindDefine:
		return "Define"

	case KindLet:
		return "Let"

	case KindCond:
		return "Cond"

	case KindIf:
		return "If"

	case KindElse:
		return "Else"

	case KindFor:
		return "For"

	case KindCall:
		return "Call"

	case KindElement:
		return "Element"

	default:
		return "Unknown"
	}
}

// Node is one element of a parsed template.
type Node interface {
	Kind() Kind
}

type (
	// Value produces a text leaf with the rendering of its literal.
	Value struct {
		Literal Literal
	}

	// Comment logs the scalar values of its children and renders nothing.
	Comment struct {
		Body []Node
	}

	// Define registers a user function in the current scope.
	Define struct {
		Name   Literal
		Params []Literal
		Body   []Node
	}

	// Let renders its body in a child scope holding its bindings.
	Let struct {
		Bindings []Literal
		Body     []Node
	}

	// Cond renders the first If whose condition holds, or the first Else.
	Cond struct {
		Body []Node
	}

	// If renders its body when its first condition is truthy.
	If struct {
		Cond []Literal
		Body []Node
	}

	// Else renders its body.
	Else struct {
		Body []Node
	}

	// For renders its body once per element of Iter with Bind naming the
	// loop variable.
	For struct {
		Bind Literal
		Iter Literal
		Body []Node
	}

	// Call invokes the function named by Func with Args.
	Call struct {
		Func Literal
		Args []Literal
	}

	// Element is an output element with raw attributes.
	Element struct {
		Tag   string
		Attrs []Attr
		Body  []Node
	}

	// Attr is a raw name/value attribute pair.
	Attr struct {
		Name  string
		Value string
	}
)

func (*Value) Kind() Kind   { return KindValue }
func (*Comment) Kind() Kind { return KindComment }
func (*Define) Kind() Kind  { return KindDefine }
func (*Let) Kind() Kind     { return KindLet }
func (*Cond) Kind() Kind    { return KindCond }
func (*If) Kind() Kind      { return KindIf }
func (*Else) Kind() Kind    { return KindElse }
func (*For) Kind() Kind     { return KindFor }
func (*Call) Kind() Kind    { return KindCall }
func (*Element) Kind() Kind { return KindElement }

// Children returns the nested nodes of n, if any.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *Comment:
		return t.Body
	case *Define:
		return t.Body
	case *Let:
		return t.Body
	case *Cond:
		return t.Body
	case *If:
		return t.Body
	case *Else:
		return t.Body
	case *For:
		return t.Body
	case *Element:
		return t.Body
	}

	return nil
}

// Literals returns the attribute literals of n in source order.
func Literals(n Node) []Literal {
	switch t := n.(type) {
	case *Value:
		return []Literal{t.Literal}
	case *Define:
		return append([]Literal{t.Name}, t.Params...)
	case *Let:
		return t.Bindings
	case *If:
		return t.Cond
	case *For:
		return []Literal{t.Bind, t.Iter}
	case *Call:
		return append([]Literal{t.Func}, t.Args...)
	}

	return nil
}

func writer(w io.Writer) func(eol string, item ...string) {
	return func(eol string, item ...string) {
		_, err := io.WriteString(w, strings.Join(item, ": ")+eol)
		if err != nil {
			panic(err)
		}
	}
}

// Print writes an indented outline of nodes to w.
func Print(_ context.Context, w io.Writer, nodes ...Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}

			err = e
		}
	}()

	for _, n := range nodes {
		printNode(writer(w), n, 0)
	}

	return nil
}

func printNode(put func(eol string, item ...string), n Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch t := n.(type) {
	case *Element:
		put("", prefix+t.Kind().String(), "<"+t.Tag+">")

		for _, a := range t.Attrs {
			put("", " "+a.Name+"="+quote(a.Value))
		}

		put("\n")

	default:
		put("", prefix+n.Kind().String())

		for i, lit := range Literals(n) {
			if i == 0 {
				put("", ":")
			}

			put("", " "+describe(lit))
		}

		put("\n")
	}

	for _, c := range Children(n) {
		printNode(put, c, indent+1)
	}
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\r\n\"'=") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}

	return s
}

// describe renders a literal with its type, as in Number(3) or Var($x).
func describe(lit Literal) string {
	if lit == nil {
		return "(nil)"
	}

	if b, ok := lit.(Binding); ok {
		return "Binding(" + b.Name + "=" + describe(b.Value) + ")"
	}

	return literalType(lit) + "(" + quote(lit.String()) + ")"
}

func literalType(lit Literal) string {
	switch lit.(type) {
	case Number:
		return "Number"
	case String:
		return "String"
	case Bool:
		return "Bool"
	case Var:
		return "Var"
	}

	return "Literal"
}
