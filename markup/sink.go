package markup

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sink builds an [html.Node] tree. It implements lang.Sink.
type Sink struct{}

// NewSink returns a sink producing [html.Node] values.
func NewSink() *Sink { return &Sink{} }

// Fragment returns an empty container for top-level output.
func (*Sink) Fragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

func (*Sink) CreateElement(tag string) any {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func (*Sink) SetAttribute(node any, name, value string) {
	n, ok := node.(*html.Node)
	if !ok {
		return
	}

	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value

			return
		}
	}

	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func (*Sink) CreateText(text string) any {
	return &html.Node{Type: html.TextNode, Data: text}
}

func (*Sink) AppendChild(parent, child any) {
	p, ok := parent.(*html.Node)
	if !ok {
		return
	}

	c, ok := child.(*html.Node)
	if !ok || c.Parent != nil {
		return
	}

	p.AppendChild(c)
}

// Write renders the children of root to w.
func Write(w io.Writer, root *html.Node) error {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}

	return nil
}
