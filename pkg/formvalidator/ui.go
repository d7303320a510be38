package formvalidator

import (
	"strconv"
	"strings"
	"time"

	"github.com/adoptmenow/formvalidation/pkg/dom"
	"github.com/adoptmenow/formvalidation/pkg/rules"
	"github.com/adoptmenow/formvalidation/pkg/strength"
)

// CSS classes applied by the engine.
const (
	ClassValid        = "valid"
	ClassInvalid      = "invalid"
	ClassFormValid    = "form-valid"
	ClassFormInvalid  = "form-invalid"
	ClassSuccessGlow  = "field-success-glow"
	ClassErrorShake   = "field-error-shake"
	ClassEnabled      = "enabled"
	ClassDisabled     = "disabled"
	ClassEmailPreview = "email-preview"
	ClassErrorDisplay = "validation-error"
)

func (e *Engine) renderField(fl *field) {
	el := fl.el
	el.RemoveClass(ClassValid, ClassInvalid)
	if fl.valid {
		el.AddClass(ClassValid)
		el.RemoveAttr("aria-invalid")
	} else {
		el.AddClass(ClassInvalid)
		el.SetAttr("aria-invalid", "true")
	}

	if fl.errEl != nil {
		if fl.valid {
			fl.errEl.SetText("")
			fl.errEl.SetStyle("display", "none")
			el.RemoveAttr("aria-describedby")
		} else {
			fl.errEl.SetText(fl.message)
			fl.errEl.SetStyle("display", "block")
			el.SetAttr("aria-describedby", fl.errEl.ID())
		}
	}

	e.animate(el, fl.valid)
}

// animate adds the one-shot success or failure class and removes it after its
// duration. The timers are not cancelled; removing an absent class is harmless.
func (e *Engine) animate(el dom.Element, valid bool) {
	el.RemoveClass(ClassErrorShake, ClassSuccessGlow)
	if !e.cfg.Animations {
		return
	}
	class, d := ClassErrorShake, e.cfg.FailureAnimation
	if valid {
		class, d = ClassSuccessGlow, e.cfg.SuccessAnimation
	}
	el.AddClass(class)
	e.after(d, func() { el.RemoveClass(class) })
}

func (e *Engine) after(d time.Duration, fn func()) {
	e.sched.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		fn()
	})
}

func (e *Engine) renderForm(f *form) {
	if submit := f.el.Query(dom.AttrEquals("type", "submit")); submit != nil {
		if f.valid {
			submit.RemoveAttr("disabled")
			submit.RemoveClass(ClassDisabled)
			submit.AddClass(ClassEnabled)
		} else {
			submit.SetAttr("disabled", "disabled")
			submit.RemoveClass(ClassEnabled)
			submit.AddClass(ClassDisabled)
		}
	}
	f.el.ToggleClass(ClassFormValid, f.valid)
	f.el.ToggleClass(ClassFormInvalid, !f.valid)
}

// liveFeedback runs on every input regardless of the debounce.
func (e *Engine) liveFeedback(fl *field) {
	value := fl.el.Value()
	switch fl.el.Type() {
	case "password":
		e.renderStrength(fl.el, value)
	case "email":
		if value != "" {
			fl.el.ToggleClass(ClassEmailPreview, rules.EmailPattern.MatchString(value))
		}
	}
}

func (e *Engine) renderStrength(el dom.Element, value string) {
	meterClass := dom.HasClass("password-strength")
	var meter dom.Element
	if parent := el.Parent(); parent != nil {
		meter = parent.Query(meterClass)
	}
	if meter == nil {
		if group := el.Closest(dom.HasClass("form-group")); group != nil {
			meter = group.Query(meterClass)
		}
	}
	if meter == nil {
		return
	}
	fill := meter.Query(dom.HasClass("password-strength-fill"))
	if fill == nil {
		return
	}

	res := strength.Evaluate(value)
	fill.SetStyle("width", strconv.Itoa(res.Score)+"%")
	fill.SetAttr("class", "password-strength-fill strength-"+string(res.Level))
	meter.SetAttr("title", strings.Join(e.suggestions(res), ", "))
}

func (e *Engine) suggestions(res strength.Result) []string {
	if e.tr == nil {
		return res.Suggestions
	}
	out := make([]string, len(res.Suggestions))
	for i, s := range res.Suggestions {
		out[i] = s
		if tmpl, ok := e.tr.Lookup(e.lang, "strength."+res.Missing[i]); ok {
			out[i] = tmpl
		}
	}
	return out
}
