package lang

// Builder provides a programmatic API for constructing template nodes
// without parsing markup. Literal arguments are given in attribute form and
// parsed with [ParseLiteral]; "name=value" produces a [Binding].
//
// Example:
//
//	b := lang.NewBuilder()
//	nodes := []lang.Node{
//	    b.Define("greet", []string{"who"},
//	        b.Text("hello, "), b.V("$who"),
//	    ),
//	    b.Do("greet", "world"),
//	}
type Builder struct{}

// NewBuilder creates a new node builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) literals(attrs []string) []Literal {
	lits := make([]Literal, len(attrs))
	for i, a := range attrs {
		lits[i] = b.Lit(a)
	}

	return lits
}

// Lit parses one attribute in "name" or "name=value" form.
func (b *Builder) Lit(attr string) Literal {
	for i := range len(attr) {
		if attr[i] == '=' && i > 0 {
			return ParseAttr(attr[:i], attr[i+1:])
		}
	}

	return ParseLiteral(attr)
}

// V creates a [Value] node.
func (b *Builder) V(attr string) *Value {
	return &Value{Literal: b.Lit(attr)}
}

// Text creates a [Value] node holding text verbatim.
func (b *Builder) Text(s string) *Value {
	return &Value{Literal: String(s)}
}

// NB creates a [Comment] node.
func (b *Builder) NB(body ...Node) *Comment {
	return &Comment{Body: body}
}

// Define creates a [Define] node.
func (b *Builder) Define(name string, params []string, body ...Node) *Define {
	return &Define{
		Name:   b.Lit(name),
		Params: b.literals(params),
		Body:   body,
	}
}

// Let creates a [Let] node.
func (b *Builder) Let(bindings []string, body ...Node) *Let {
	return &Let{Bindings: b.literals(bindings), Body: body}
}

// Cond creates a [Cond] node.
func (b *Builder) Cond(body ...Node) *Cond {
	return &Cond{Body: body}
}

// If creates an [If] node.
func (b *Builder) If(cond string, body ...Node) *If {
	return &If{Cond: []Literal{b.Lit(cond)}, Body: body}
}

// Else creates an [Else] node.
func (b *Builder) Else(body ...Node) *Else {
	return &Else{Body: body}
}

// For creates a [For] node.
func (b *Builder) For(bind, iter string, body ...Node) *For {
	return &For{Bind: b.Lit(bind), Iter: b.Lit(iter), Body: body}
}

// Do creates a [Call] node.
func (b *Builder) Do(fn string, args ...string) *Call {
	return &Call{Func: b.Lit(fn), Args: b.literals(args)}
}

// Element creates an [Element] node. Attributes are "name=value" pairs
// kept verbatim.
func (b *Builder) Element(tag string, attrs []string, body ...Node) *Element {
	el := &Element{Tag: tag, Body: body}

	for _, a := range attrs {
		name, value := a, ""

		for i := range len(a) {
			if a[i] == '=' {
				name, value = a[:i], a[i+1:]

				break
			}
		}

		el.Attrs = append(el.Attrs, Attr{Name: name, Value: value})
	}

	return el
}
