package lang_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ardnew/tagl/lang"
)

// textSink renders every output node directly as text.
type textSink struct{}

func (textSink) CreateElement(tag string) any { return &strings.Builder{} }
func (textSink) CreateText(text string) any {
	sb := &strings.Builder{}
	sb.WriteString(text)

	return sb
}
func (textSink) SetAttribute(any, string, string) {}
func (textSink) AppendChild(parent, child any) {
	parent.(*strings.Builder).WriteString(child.(*strings.Builder).String())
}

func Example() {
	b := lang.NewBuilder()

	nodes := []lang.Node{
		b.Define("square", []string{"x"},
			b.Do("push", "$x"),
			b.Do("push", "$x"),
			b.Do("mul"),
		),
		b.Do("range", "1", "4"),
		b.Do("set", "xs"),
		b.For("i", "$xs",
			b.Do("square", "$i"),
			b.Do("pop"),
			b.Text(" "),
		),
	}

	out := &strings.Builder{}
	if err := lang.Render(context.Background(), textSink{}, out, nodes); err != nil {
		fmt.Println(err)
	}

	fmt.Println(out.String())
	// Output: 1 4 9
}

func ExamplePrint() {
	b := lang.NewBuilder()

	_ = lang.Print(context.Background(), os.Stdout,
		b.Cond(
			b.If("$ready", b.Text("go")),
			b.Else(b.Text("wait")),
		),
	)
	// Output:
	// Cond
	//   If: Var($ready)
	//     Value: String(go)
	//   Else
	//     Value: String(wait)
}

func ExampleParseAttr() {
	for _, attr := range [][2]string{
		{"42", ""},
		{"$name", ""},
		{"true", ""},
		{"hello", ""},
		{"n", "0x10"},
	} {
		lit := lang.ParseAttr(attr[0], attr[1])
		fmt.Printf("%T %s\n", lit, lit)
	}
	// Output:
	// lang.Number 42
	// lang.Var $name
	// lang.Bool true
	// lang.String hello
	// lang.Binding n="16"
}
