package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

type htmlElement struct {
	doc       *HTMLDocument
	n         *html.Node
	listeners map[EventType][]Listener
}

// Node exposes the underlying html node of an element created by this package.
func Node(e Element) *html.Node {
	if he, ok := e.(*htmlElement); ok {
		return he.n
	}
	return nil
}

func (e *htmlElement) TagName() string { return strings.ToLower(e.n.Data) }

func (e *htmlElement) ID() string       { return attr(e.n, "id") }
func (e *htmlElement) SetID(id string)  { e.SetAttr("id", id) }
func (e *htmlElement) Name() string     { return attr(e.n, "name") }

func (e *htmlElement) Type() string {
	t, ok := e.Attr("type")
	if !ok && e.TagName() == "input" {
		return "text"
	}
	return strings.ToLower(t)
}

func (e *htmlElement) Value() string {
	switch e.TagName() {
	case "textarea":
		return e.Text()
	case "select":
		options := e.QueryAll(Tag("option"))
		for _, o := range options {
			if o.HasAttr("selected") {
				return optionValue(o)
			}
		}
		if len(options) > 0 {
			return optionValue(options[0])
		}
		return ""
	default:
		v, ok := e.Attr("value")
		if !ok && e.TagName() == "input" && (e.Type() == "checkbox" || e.Type() == "radio") {
			return "on"
		}
		return v
	}
}

func (e *htmlElement) SetValue(v string) {
	switch e.TagName() {
	case "textarea":
		e.SetText(v)
	case "select":
		for _, o := range e.QueryAll(Tag("option")) {
			if optionValue(o) == v {
				o.SetAttr("selected", "selected")
			} else {
				o.RemoveAttr("selected")
			}
		}
	default:
		e.SetAttr("value", v)
	}
}

func optionValue(o Element) string {
	if v, ok := o.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(o.Text())
}

func (e *htmlElement) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *htmlElement) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

func (e *htmlElement) SetAttr(name, value string) {
	name = strings.ToLower(name)
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *htmlElement) RemoveAttr(name string) {
	name = strings.ToLower(name)
	e.n.Attr = slices.DeleteFunc(e.n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
}

func (e *htmlElement) Classes() []string {
	return strings.Fields(attr(e.n, "class"))
}

func (e *htmlElement) HasClass(name string) bool {
	return slices.Contains(e.Classes(), name)
}

func (e *htmlElement) AddClass(names ...string) {
	classes := e.Classes()
	for _, name := range names {
		if name != "" && !slices.Contains(classes, name) {
			classes = append(classes, name)
		}
	}
	e.setClasses(classes)
}

func (e *htmlElement) RemoveClass(names ...string) {
	classes := slices.DeleteFunc(e.Classes(), func(c string) bool {
		return slices.Contains(names, c)
	})
	e.setClasses(classes)
}

func (e *htmlElement) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
		return
	}
	e.RemoveClass(name)
}

func (e *htmlElement) setClasses(classes []string) {
	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

type styleDecl struct{ prop, value string }

func (e *htmlElement) styles() []styleDecl {
	var out []styleDecl
	for decl := range strings.SplitSeq(attr(e.n, "style"), ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		out = append(out, styleDecl{prop: prop, value: strings.TrimSpace(value)})
	}
	return out
}

func (e *htmlElement) Style(prop string) string {
	prop = strings.ToLower(prop)
	for _, s := range e.styles() {
		if s.prop == prop {
			return s.value
		}
	}
	return ""
}

func (e *htmlElement) SetStyle(prop, value string) {
	prop = strings.ToLower(prop)
	decls := slices.DeleteFunc(e.styles(), func(s styleDecl) bool { return s.prop == prop })
	if value != "" {
		decls = append(decls, styleDecl{prop: prop, value: value})
	}
	if len(decls) == 0 {
		e.RemoveAttr("style")
		return
	}
	parts := make([]string, len(decls))
	for i, s := range decls {
		parts[i] = s.prop + ": " + s.value
	}
	e.SetAttr("style", strings.Join(parts, "; "))
}

func (e *htmlElement) Text() string {
	var b strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

func (e *htmlElement) SetText(text string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (e *htmlElement) Parent() Element {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

func (e *htmlElement) Closest(m Matcher) Element {
	for n := e.n; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if el := e.doc.wrap(n); m(el) {
			return el
		}
	}
	return nil
}

func (e *htmlElement) Query(m Matcher) Element {
	var found Element
	for c := e.n.FirstChild; c != nil && found == nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if n.Type != html.ElementNode {
				return true
			}
			if el := e.doc.wrap(n); m(el) {
				found = el
				return false
			}
			return true
		})
	}
	return found
}

func (e *htmlElement) QueryAll(m Matcher) []Element {
	return e.doc.queryAll(e.n, m)
}

func (e *htmlElement) AppendChild(child Element) {
	c, ok := child.(*htmlElement)
	if !ok || c.doc != e.doc {
		return
	}
	detach(c.n)
	e.n.AppendChild(c.n)
	e.doc.inserted(c)
}

func (e *htmlElement) InsertAfter(sibling Element) {
	s, ok := sibling.(*htmlElement)
	if !ok || s.doc != e.doc || e.n.Parent == nil {
		return
	}
	detach(s.n)
	e.n.Parent.InsertBefore(s.n, e.n.NextSibling)
	e.doc.inserted(s)
}

func (e *htmlElement) Remove() {
	detach(e.n)
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func (e *htmlElement) AddEventListener(t EventType, l Listener) {
	if l == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[EventType][]Listener)
	}
	e.listeners[t] = append(e.listeners[t], l)
}

func (e *htmlElement) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	if ev.Target == nil {
		ev.Target = e
	}
	for _, l := range slices.Clone(e.listeners[ev.Type]) {
		l(ev)
	}
}

func (e *htmlElement) Focus()          { e.doc.active = e }
func (e *htmlElement) ScrollIntoView() { e.doc.scrolled = e }

func (e *htmlElement) Submit() {
	e.doc.submitted = append(e.doc.submitted, e)
	if e.doc.onSubmit != nil {
		e.doc.onSubmit(e)
	}
}
