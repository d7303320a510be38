package formvalidator

import (
	"github.com/adoptmenow/formvalidation/pkg/debounce"
	"github.com/adoptmenow/formvalidation/pkg/dom"
	"github.com/adoptmenow/formvalidation/pkg/logger"
	"github.com/adoptmenow/formvalidation/pkg/rules"
)

type form struct {
	id       string
	el       dom.Element
	lookup   rules.Lookup
	fields   []*field
	index    map[string]int
	valid    bool
	onSubmit func(dom.Element)
}

type field struct {
	form     *form
	key      string
	el       dom.Element
	bindings []rules.Binding
	errEl    dom.Element
	valid    bool
	touched  bool
	message  string
	pending  *debounce.Debouncer
	gen      uint64
}

func (f *form) field(key string) (*field, error) {
	i, ok := f.index[key]
	if !ok {
		return nil, ErrFieldNotFound
	}
	return f.fields[i], nil
}

// computeValid is the AND of the fields' last validity, true for no fields.
func (f *form) computeValid() bool {
	for _, fl := range f.fields {
		if !fl.valid {
			return false
		}
	}
	return true
}

func (f *form) stop() {
	for _, fl := range f.fields {
		fl.pending.Stop()
	}
}

func (e *Engine) scanFields(f *form) {
	for _, el := range f.el.QueryAll(dom.HasAttr(Marker)) {
		key := el.Name()
		if key == "" {
			key = el.ID()
		}
		if key == "" {
			e.log.Warn("field without name or id skipped", logger.Form(f.id), "tag", el.TagName())
			continue
		}

		fl := &field{
			form:     f,
			key:      key,
			el:       el,
			bindings: e.parseRules(f, key, el),
			pending:  debounce.New(e.sched, e.cfg.Debounce),
		}
		fl.errEl = e.errorDisplay(fl)
		e.attachField(fl)

		if i, dup := f.index[key]; dup {
			e.log.Warn("duplicate field key, replacing earlier field", logger.Form(f.id), logger.Field(key))
			f.fields[i].pending.Stop()
			f.fields[i] = fl
			continue
		}
		f.index[key] = len(f.fields)
		f.fields = append(f.fields, fl)
	}
}

// parseRules binds the field's rule declaration. A native required attribute adds
// the required rule in front unless it is already declared.
func (e *Engine) parseRules(f *form, key string, el dom.Element) []rules.Binding {
	decl, _ := el.Attr(Marker)
	bindings, unknown := rules.Bind(rules.ParseTokens(decl), f.lookup)
	for _, name := range unknown {
		e.log.Warn("unknown validation rule skipped", logger.Form(f.id), logger.Field(key), logger.Rule(name))
	}
	if el.HasAttr("required") && !rules.HasBinding(bindings, rules.Required) {
		if r, ok := f.lookup.Lookup(rules.Required); ok {
			bindings = append([]rules.Binding{{Name: rules.Required, Rule: r}}, bindings...)
		}
	}
	return bindings
}

// errorDisplay returns the "<key>_error" element, creating it after the field's
// container when the document has none.
func (e *Engine) errorDisplay(fl *field) dom.Element {
	id := fl.key + "_error"
	if el := e.doc.ElementByID(id); el != nil {
		return el
	}

	el := e.doc.CreateElement("div")
	el.SetID(id)
	el.AddClass("validation-error")
	el.SetAttr("role", "alert")
	el.SetAttr("aria-live", "polite")
	el.SetStyle("display", "none")

	anchor := fl.el.Closest(dom.HasClass("form-group"))
	if anchor == nil {
		anchor = fl.el.Closest(dom.HasClass("input-container"))
	}
	if anchor == nil {
		anchor = fl.el.Parent()
	}
	if anchor == nil || anchor.Parent() == nil {
		anchor = fl.el
	}
	anchor.InsertAfter(el)
	return el
}
