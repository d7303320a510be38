package dom

import (
	"errors"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLDocument is a Document backed by an x/net/html node tree.
type HTMLDocument struct {
	root      *html.Node
	nodes     map[*html.Node]*htmlElement
	active    *htmlElement
	scrolled  *htmlElement
	submitted []Element
	onSubmit  func(Element)
	observers []*observer
	nextObs   int
}

type observer struct {
	id        int
	container *htmlElement
	fn        func(Element)
}

// Parse parses an HTML document.
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	return &HTMLDocument{root: root, nodes: make(map[*html.Node]*htmlElement)}, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(s))
}

// NewDocument returns an empty document with html, head and body elements.
func NewDocument() *HTMLDocument {
	doc, _ := ParseString("<!DOCTYPE html><html><head></head><body></body></html>")
	return doc
}

// Render writes the document as HTML.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Root returns the document element.
func (d *HTMLDocument) Root() Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(c)
		}
	}
	return nil
}

// Body returns the body element, or nil.
func (d *HTMLDocument) Body() Element {
	root := d.Root()
	if root == nil {
		return nil
	}
	return root.Query(Tag("body"))
}

func (d *HTMLDocument) ElementByID(id string) Element {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.wrap(found)
}

func (d *HTMLDocument) CreateElement(tag string) Element {
	tag = strings.ToLower(tag)
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	return d.wrap(n)
}

func (d *HTMLDocument) QueryAll(m Matcher) []Element {
	return d.queryAll(d.root, m)
}

func (d *HTMLDocument) Observe(container Element, fn func(Element)) func() {
	c, ok := container.(*htmlElement)
	if !ok || c.doc != d || fn == nil {
		return func() {}
	}
	d.nextObs++
	id := d.nextObs
	d.observers = append(d.observers, &observer{id: id, container: c, fn: fn})
	return func() {
		d.observers = slices.DeleteFunc(d.observers, func(o *observer) bool { return o.id == id })
	}
}

func (d *HTMLDocument) ActiveElement() Element {
	if d.active == nil {
		return nil
	}
	return d.active
}

// ScrolledTo returns the element most recently scrolled into view, or nil.
func (d *HTMLDocument) ScrolledTo() Element {
	if d.scrolled == nil {
		return nil
	}
	return d.scrolled
}

// Submitted returns the forms natively submitted so far, in order.
func (d *HTMLDocument) Submitted() []Element {
	return slices.Clone(d.submitted)
}

// OnSubmit installs a hook called on every native submission.
func (d *HTMLDocument) OnSubmit(fn func(form Element)) {
	d.onSubmit = fn
}

func (d *HTMLDocument) wrap(n *html.Node) *htmlElement {
	if e, ok := d.nodes[n]; ok {
		return e
	}
	e := &htmlElement{doc: d, n: n}
	d.nodes[n] = e
	return e
}

func (d *HTMLDocument) queryAll(from *html.Node, m Matcher) []Element {
	var out []Element
	for c := from.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if n.Type == html.ElementNode {
				if e := d.wrap(n); m(e) {
					out = append(out, e)
				}
			}
			return true
		})
	}
	return out
}

// inserted notifies the observers whose container holds e.
func (d *HTMLDocument) inserted(e *htmlElement) {
	if len(d.observers) == 0 {
		return
	}
	for _, o := range slices.Clone(d.observers) {
		if isAncestor(o.container.n, e.n) {
			o.fn(e)
		}
	}
}

// walk visits n and its descendants in document order until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func isAncestor(anc, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == anc {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
