package formvalidator

import (
	"slices"

	"github.com/adoptmenow/formvalidation/pkg/dom"
)

// FieldState is a snapshot of a registered field.
type FieldState struct {
	Key     string
	Valid   bool
	Touched bool
	// Message is the error shown for the field, empty when valid.
	Message string
	// Rules lists the bound rule names in evaluation order.
	Rules   []string
	ErrorID string
}

// ValidateField validates one field, updates the form state and returns the
// outcome with the message of the first failing rule.
func (e *Engine) ValidateField(formID, key string) (bool, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.form(formID)
	if err != nil {
		return false, "", err
	}
	fl, err := f.field(key)
	if err != nil {
		return false, "", err
	}
	valid := e.validateField(fl)
	e.refreshForm(f)
	return valid, fl.message, nil
}

// ValidateFormByID validates every field of the form. It returns false for
// unknown ids.
func (e *Engine) ValidateFormByID(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.form(id)
	if err != nil {
		return false
	}
	return e.validateForm(f)
}

// ClearFormErrors removes the valid/invalid presentation and hides the error
// displays. Rules and stored validity are left untouched.
func (e *Engine) ClearFormErrors(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.form(id)
	if err != nil {
		return err
	}
	for _, fl := range f.fields {
		fl.el.RemoveClass(ClassValid, ClassInvalid)
		fl.el.RemoveAttr("aria-invalid")
		fl.el.RemoveAttr("aria-describedby")
		if fl.errEl != nil {
			fl.errEl.SetText("")
			fl.errEl.SetStyle("display", "none")
		}
	}
	return nil
}

// SetSubmitCallback installs fn to run instead of the native submission once the
// form validates. A nil fn restores native submission.
func (e *Engine) SetSubmitCallback(id string, fn func(form dom.Element)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.form(id)
	if err != nil {
		return err
	}
	f.onSubmit = fn
	return nil
}

// Forms returns the registered form ids in registration order.
func (e *Engine) Forms() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.order)
}

// FormValid reports the aggregate validity of the form's fields.
func (e *Engine) FormValid(id string) (valid, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.form(id)
	if err != nil {
		return false, false
	}
	return f.computeValid(), true
}

// FieldState returns a snapshot of a field.
func (e *Engine) FieldState(formID, key string) (FieldState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.form(formID)
	if err != nil {
		return FieldState{}, false
	}
	fl, err := f.field(key)
	if err != nil {
		return FieldState{}, false
	}
	st := FieldState{
		Key:     fl.key,
		Valid:   fl.valid,
		Touched: fl.touched,
		Message: fl.message,
		Rules:   make([]string, len(fl.bindings)),
	}
	for i, b := range fl.bindings {
		st.Rules[i] = b.Name
	}
	if fl.errEl != nil {
		st.ErrorID = fl.errEl.ID()
	}
	return st, true
}

// Fields returns the field keys of a form in declaration order.
func (e *Engine) Fields(formID string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.form(formID)
	if err != nil {
		return nil
	}
	keys := make([]string, len(f.fields))
	for i, fl := range f.fields {
		keys[i] = fl.key
	}
	return keys
}

// SetFieldError marks a field invalid with message, as if its rule chain had
// failed. Servers use it to project checks the rules cannot express, such as an
// email that is already registered.
func (e *Engine) SetFieldError(formID, key, message string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, err := e.form(formID)
	if err != nil {
		return err
	}
	fl, err := f.field(key)
	if err != nil {
		return err
	}
	fl.valid = false
	fl.message = message
	e.renderField(fl)
	e.refreshForm(f)
	return nil
}
