package formvalidator

import (
	"github.com/adoptmenow/formvalidation/pkg/i18n"
	"github.com/adoptmenow/formvalidation/pkg/rules"
)

// validateField evaluates the field's rule chain against its current value and
// projects the outcome.
func (e *Engine) validateField(fl *field) bool {
	res := rules.Evaluate(fl.bindings, fl.el.Value())
	fl.valid = res.Valid
	fl.message = ""
	if !res.Valid {
		fl.message = e.message(res)
	}
	if e.obs != nil {
		e.obs.FieldValidated(fl.form.id, fl.key, res.Rule, res.Valid)
	}
	e.renderField(fl)
	return fl.valid
}

// validateForm validates every field, in declaration order, and projects the form.
func (e *Engine) validateForm(f *form) bool {
	valid := true
	for _, fl := range f.fields {
		if !e.validateField(fl) {
			valid = false
		}
	}
	f.valid = valid
	e.renderForm(f)
	return valid
}

// refreshForm recomputes form validity from the fields' last results.
func (e *Engine) refreshForm(f *form) {
	f.valid = f.computeValid()
	e.renderForm(f)
}

func (e *Engine) message(res rules.Result) string {
	if e.tr != nil && res.Key != "" {
		if tmpl, ok := e.tr.Lookup(e.lang, res.Key); ok {
			return i18n.Format(tmpl, map[string]string{"param": res.Param.String()})
		}
	}
	return res.Message
}
