package markup

import (
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ardnew/tagl/lang"
)

// Parse reads an HTML fragment from r and converts it to template nodes.
func Parse(r io.Reader) ([]lang.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	top, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, lang.ErrParse.Wrap(err)
	}

	top = trimSpace(top)

	if len(top) == 1 && top[0].Type == html.ElementNode && top[0].DataAtom == atom.Template {
		top = trimSpace(children(top[0]))
	}

	return convertAll(top)
}

// ParseString parses a template from source text.
func ParseString(src string) ([]lang.Node, error) {
	return Parse(strings.NewReader(src))
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}

	return out
}

// trimSpace drops whitespace-only text between top-level nodes.
func trimSpace(nodes []*html.Node) []*html.Node {
	out := nodes[:0:0]

	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}

		out = append(out, n)
	}

	return out
}

func convertAll(nodes []*html.Node) ([]lang.Node, error) {
	out := make([]lang.Node, 0, len(nodes))

	for _, n := range nodes {
		node, err := convert(n)
		if err != nil {
			return nil, err
		}

		if node != nil {
			out = append(out, node)
		}
	}

	return out, nil
}

// convert returns nil for nodes with no template meaning, such as comments.
func convert(n *html.Node) (lang.Node, error) {
	switch n.Type {
	case html.TextNode:
		return &lang.Value{Literal: lang.String(n.Data)}, nil

	case html.ElementNode:
		return convertElement(n)

	default:
		return nil, nil
	}
}

func convertElement(n *html.Node) (lang.Node, error) {
	body, err := convertAll(children(n))
	if err != nil {
		return nil, err
	}

	lits := make([]lang.Literal, len(n.Attr))
	for i, a := range n.Attr {
		lits[i] = lang.ParseAttr(a.Key, a.Val)
	}

	need := func(count int) error {
		if len(lits) < count {
			return lang.ErrMalformedTag.With(
				slog.String("tag", strings.ToUpper(n.Data)),
				slog.Int("want", count),
				slog.Int("got", len(lits)),
			)
		}

		return nil
	}

	switch strings.ToUpper(n.Data) {
	case "DEFN":
		if err := need(1); err != nil {
			return nil, err
		}

		return &lang.Define{Name: lits[0], Params: lits[1:], Body: body}, nil

	case "LET":
		return &lang.Let{Bindings: lits, Body: body}, nil

	case "COND":
		return &lang.Cond{Body: body}, nil

	case "IF":
		if err := need(1); err != nil {
			return nil, err
		}

		return &lang.If{Cond: lits, Body: body}, nil

	case "ELSE":
		return &lang.Else{Body: body}, nil

	case "FOR":
		if err := need(3); err != nil {
			return nil, err
		}

		return &lang.For{Bind: lits[0], Iter: lits[2], Body: body}, nil

	case "DO":
		if err := need(1); err != nil {
			return nil, err
		}

		return &lang.Call{Func: lits[0], Args: lits[1:]}, nil

	case "NB":
		return &lang.Comment{Body: body}, nil

	case "V":
		if err := need(1); err != nil {
			return nil, err
		}

		return &lang.Value{Literal: lits[0]}, nil
	}

	el := &lang.Element{Tag: n.Data, Body: body}
	for _, a := range n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}

		el.Attrs = append(el.Attrs, lang.Attr{Name: name, Value: a.Val})
	}

	return el, nil
}
