package formvalidator

import (
	"github.com/adoptmenow/formvalidation/pkg/dom"
	"github.com/adoptmenow/formvalidation/pkg/logger"
)

func (e *Engine) attachField(fl *field) {
	fl.el.AddEventListener(dom.EventBlur, func(*dom.Event) {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.replaced(fl.form) {
			return
		}
		fl.touched = true
		e.validateField(fl)
		e.refreshForm(fl.form)
	})

	fl.el.AddEventListener(dom.EventInput, func(*dom.Event) {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.replaced(fl.form) {
			return
		}
		fl.pending.Cancel()
		fl.gen++
		if fl.touched {
			gen := fl.gen
			fl.pending.Trigger(func() {
				e.mu.Lock()
				defer e.mu.Unlock()
				// A newer input may have arrived while this task waited for the lock.
				if fl.gen != gen || e.replaced(fl.form) {
					return
				}
				e.validateField(fl)
				e.refreshForm(fl.form)
			})
		}
		e.liveFeedback(fl)
	})
}

func (e *Engine) attachSubmit(f *form) {
	f.el.AddEventListener(dom.EventSubmit, func(ev *dom.Event) {
		ev.PreventDefault()

		e.mu.Lock()
		if e.replaced(f) {
			e.mu.Unlock()
			return
		}
		for _, fl := range f.fields {
			fl.touched = true
		}
		valid := e.validateForm(f)
		if e.obs != nil {
			e.obs.FormSubmitted(f.id, valid)
		}
		if !valid {
			e.revealFirstInvalid(f)
			e.mu.Unlock()
			e.log.Debug("submit blocked by invalid fields", logger.Form(f.id))
			return
		}
		callback := f.onSubmit
		e.mu.Unlock()

		if callback != nil {
			callback(f.el)
			return
		}
		f.el.Submit()
	})
}

func (e *Engine) revealFirstInvalid(f *form) {
	for _, fl := range f.fields {
		if !fl.valid {
			fl.el.ScrollIntoView()
			fl.el.Focus()
			return
		}
	}
}

// replaced reports whether a newer registration took over f's id.
func (e *Engine) replaced(f *form) bool {
	return e.forms[f.id] != f
}
