package formvalidator_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoptmenow/formvalidation/pkg/debounce"
	"github.com/adoptmenow/formvalidation/pkg/dom"
	"github.com/adoptmenow/formvalidation/pkg/formvalidator"
	"github.com/adoptmenow/formvalidation/pkg/i18n"
	"github.com/adoptmenow/formvalidation/pkg/logger"
	"github.com/adoptmenow/formvalidation/pkg/rules"
)

const registrationPage = `<!DOCTYPE html><html><body>
<form id="registro" data-validate>
  <div class="form-group">
    <input name="email" type="email" data-validate="required|email">
  </div>
  <div class="form-group">
    <input name="password" type="password" data-validate="minLength:8">
    <div class="password-strength"><div class="password-strength-fill"></div></div>
  </div>
  <div class="input-container">
    <input name="nombre" data-validate="name" required>
  </div>
  <button type="submit">Registrarse</button>
</form>
<form id="plain"><input name="x" data-validate="required"></form>
</body></html>`

type counter struct {
	mu        sync.Mutex
	fields    map[string]int
	submitted []bool
}

func (c *counter) FieldValidated(_, field, _ string, _ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fields == nil {
		c.fields = make(map[string]int)
	}
	c.fields[field]++
}

func (c *counter) FormSubmitted(_ string, valid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitted = append(c.submitted, valid)
}

func (c *counter) count(field string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields[field]
}

type fixture struct {
	doc   *dom.HTMLDocument
	eng   *formvalidator.Engine
	clock *debounce.Manual
	obs   *counter
	logs  *bytes.Buffer
}

func setup(t *testing.T, page string, opts ...formvalidator.Option) *fixture {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)

	fx := &fixture{doc: doc, clock: debounce.NewManual(), obs: &counter{}, logs: &bytes.Buffer{}}
	base := []formvalidator.Option{
		formvalidator.WithScheduler(fx.clock),
		formvalidator.WithObserver(fx.obs),
		formvalidator.WithLogger(logger.New(logger.WithOutput(fx.logs), logger.WithFormat(logger.FormatText))),
	}
	fx.eng = formvalidator.New(doc, append(base, opts...)...)
	return fx
}

func (fx *fixture) field(t *testing.T, name string) dom.Element {
	t.Helper()
	el := fx.doc.Root().Query(dom.AttrEquals("name", name))
	require.NotNil(t, el, name)
	return el
}

func (fx *fixture) typeInto(t *testing.T, name, value string) {
	t.Helper()
	el := fx.field(t, name)
	el.SetValue(value)
	el.Dispatch(dom.NewEvent(dom.EventInput))
}

func (fx *fixture) blur(t *testing.T, name string) {
	t.Helper()
	fx.field(t, name).Dispatch(dom.NewEvent(dom.EventBlur))
}

func (fx *fixture) submit(id string) *dom.Event {
	ev := dom.NewEvent(dom.EventSubmit)
	fx.doc.ElementByID(id).Dispatch(ev)
	return ev
}

func TestInitRegistersMarkedForms(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)

	ids := fx.eng.Init()
	assert.Equal(t, []string{"registro"}, ids)
	assert.Equal(t, []string{"registro"}, fx.eng.Forms())
	assert.Equal(t, []string{"email", "password", "nombre"}, fx.eng.Fields("registro"))

	assert.Equal(t, ids, fx.eng.Init(), "init is idempotent")
	assert.Len(t, fx.eng.Forms(), 1)
	assert.Contains(t, fx.logs.String(), "form registered")
}

func TestRegisterForm(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-form elements", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, registrationPage)
		id, err := fx.eng.RegisterForm(fx.field(t, "email"), nil)
		assert.ErrorIs(t, err, formvalidator.ErrNotAForm)
		assert.Empty(t, id)
		_, err = fx.eng.RegisterForm(nil, nil)
		assert.ErrorIs(t, err, formvalidator.ErrNotAForm)
		assert.Contains(t, fx.logs.String(), "level=WARN")
	})

	t.Run("generates missing ids", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, `<form data-validate><input name="a" data-validate="required"></form>`,
			formvalidator.WithIDGenerator(func() string { return "form_fixed" }))
		form := fx.doc.Root().Query(dom.Tag("form"))
		id, err := fx.eng.RegisterForm(form, nil)
		require.NoError(t, err)
		assert.Equal(t, "form_fixed", id)
		assert.Equal(t, "form_fixed", form.ID())

		again, err := fx.eng.RegisterForm(form, nil)
		require.NoError(t, err)
		assert.Equal(t, id, again)
	})

	t.Run("default ids are uuids", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, `<form data-validate></form>`)
		ids := fx.eng.Init()
		require.Len(t, ids, 1)
		assert.True(t, strings.HasPrefix(ids[0], "form_"))
		assert.Len(t, ids[0], len("form_")+36)
	})

	t.Run("parses rules", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, `<form id="f">
			<input name="a" data-validate=" minLength:3 || emial | maxLength:10 " required>
			<input name="b" data-validate="email|required" required>
			<input data-validate="required">
		</form>`)
		_, err := fx.eng.RegisterForm(fx.doc.ElementByID("f"), nil)
		require.NoError(t, err)

		a, ok := fx.eng.FieldState("f", "a")
		require.True(t, ok)
		assert.Equal(t, []string{"required", "minLength", "maxLength"}, a.Rules)

		b, _ := fx.eng.FieldState("f", "b")
		assert.Equal(t, []string{"email", "required"}, b.Rules, "declared required is not prepended again")

		assert.Equal(t, []string{"a", "b"}, fx.eng.Fields("f"), "unnamed field skipped")
		logs := fx.logs.String()
		assert.Contains(t, logs, "unknown validation rule skipped")
		assert.Contains(t, logs, "rule=emial")
		assert.Contains(t, logs, "field without name or id skipped")
	})

	t.Run("duplicate keys replace in place", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, `<form id="f">
			<input name="a" data-validate="required">
			<input name="b" data-validate="required">
			<input name="a" data-validate="email">
		</form>`)
		_, err := fx.eng.RegisterForm(fx.doc.ElementByID("f"), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, fx.eng.Fields("f"))
		a, _ := fx.eng.FieldState("f", "a")
		assert.Equal(t, []string{"email"}, a.Rules)
	})
}

func TestErrorDisplay(t *testing.T) {
	t.Parallel()
	fx := setup(t, `<form id="f" data-validate>
		<div class="form-group"><label>Email</label><input name="email" data-validate="email"></div>
		<div class="input-container"><input name="tel" data-validate="phone"></div>
		<p><input name="user" data-validate="alphanumeric"></p>
		<input name="x" data-validate="required">
		<div id="existing_error"></div>
		<input name="existing" data-validate="required">
	</form>`)
	fx.eng.Init()

	for _, tc := range []struct{ field, after string }{
		{"email", "div"}, {"tel", "div"}, {"user", "p"},
	} {
		errEl := fx.doc.ElementByID(tc.field + "_error")
		require.NotNil(t, errEl, tc.field)
		assert.True(t, errEl.HasClass("validation-error"))
		role, _ := errEl.Attr("role")
		live, _ := errEl.Attr("aria-live")
		assert.Equal(t, "alert", role)
		assert.Equal(t, "polite", live)
		assert.Equal(t, "none", errEl.Style("display"))

		container := fx.field(t, tc.field).Parent()
		assert.Equal(t, tc.after, container.TagName())
		assert.Same(t, container.Parent(), errEl.Parent(), "inserted next to the container")
	}

	st, _ := fx.eng.FieldState("f", "existing")
	assert.Equal(t, "existing_error", st.ErrorID)
	assert.Len(t, fx.doc.QueryAll(dom.ID("existing_error")), 1, "existing display reused")
}

func TestValidateFieldScenarios(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)
	fx.eng.Init()

	check := func(field, value string, wantValid bool, wantMsg string) {
		t.Helper()
		fx.field(t, field).SetValue(value)
		valid, msg, err := fx.eng.ValidateField("registro", field)
		require.NoError(t, err)
		assert.Equal(t, wantValid, valid, "%s=%q", field, value)
		assert.Equal(t, wantMsg, msg, "%s=%q", field, value)

		again, msg2, _ := fx.eng.ValidateField("registro", field)
		assert.Equal(t, valid, again, "idempotent")
		assert.Equal(t, msg, msg2, "idempotent")
	}

	check("email", "", false, "Este campo es obligatorio")
	check("email", "a@b", false, "Ingresa un email válido")
	check("email", "a@b.com", true, "")
	check("password", "short", false, "Mínimo 8 caracteres")
	check("password", "longenough", true, "")
	check("nombre", "", false, "Este campo es obligatorio")
	check("nombre", "Ana María", true, "")

	_, _, err := fx.eng.ValidateField("missing", "email")
	assert.ErrorIs(t, err, formvalidator.ErrFormNotFound)
	_, _, err = fx.eng.ValidateField("registro", "missing")
	assert.ErrorIs(t, err, formvalidator.ErrFieldNotFound)
}

func TestShortCircuitStopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	fx := setup(t, `<form id="f"><input name="a" data-validate="required|probe"></form>`)

	calls := 0
	require.NoError(t, fx.eng.AddCustomRule("probe", func(string, rules.Param) bool {
		calls++
		return true
	}, rules.Static("probe")))
	_, err := fx.eng.RegisterForm(fx.doc.ElementByID("f"), nil)
	require.NoError(t, err)

	valid, msg, err := fx.eng.ValidateField("f", "a")
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, "Este campo es obligatorio", msg)
	assert.Zero(t, calls)

	fx.field(t, "a").SetValue("x")
	valid, _, _ = fx.eng.ValidateField("f", "a")
	assert.True(t, valid)
	assert.Equal(t, 1, calls)
}

func TestFieldUIProjection(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)
	fx.eng.Init()
	email := fx.field(t, "email")
	errEl := fx.doc.ElementByID("email_error")

	email.SetValue("bad")
	fx.blur(t, "email")

	st, _ := fx.eng.FieldState("registro", "email")
	assert.True(t, st.Touched)
	assert.False(t, st.Valid)
	assert.True(t, email.HasClass("invalid"))
	assert.False(t, email.HasClass("valid"))
	invalid, _ := email.Attr("aria-invalid")
	describedBy, _ := email.Attr("aria-describedby")
	assert.Equal(t, "true", invalid)
	assert.Equal(t, "email_error", describedBy)
	assert.Equal(t, "Ingresa un email válido", errEl.Text())
	assert.Equal(t, "block", errEl.Style("display"))

	assert.True(t, email.HasClass("field-error-shake"))
	fx.clock.Advance(499 * time.Millisecond)
	assert.True(t, email.HasClass("field-error-shake"))
	fx.clock.Advance(time.Millisecond)
	assert.False(t, email.HasClass("field-error-shake"))

	email.SetValue("ana@example.com")
	fx.blur(t, "email")
	assert.True(t, email.HasClass("valid"))
	assert.False(t, email.HasClass("invalid"))
	assert.False(t, email.HasAttr("aria-invalid"))
	assert.False(t, email.HasAttr("aria-describedby"))
	assert.Equal(t, "", errEl.Text())
	assert.Equal(t, "none", errEl.Style("display"))
	assert.True(t, email.HasClass("field-success-glow"))
	fx.clock.Advance(time.Second)
	assert.False(t, email.HasClass("field-success-glow"))
}

func TestFormValidityIsConjunction(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)
	fx.eng.Init()
	form := fx.doc.ElementByID("registro")
	submit := form.Query(dom.AttrEquals("type", "submit"))

	valid, ok := fx.eng.FormValid("registro")
	require.True(t, ok)
	assert.False(t, valid, "fields start invalid")

	fx.field(t, "email").SetValue("ana@example.com")
	fx.field(t, "password").SetValue("longenough")
	fx.field(t, "nombre").SetValue("Ana")
	assert.True(t, fx.eng.ValidateFormByID("registro"))
	assert.True(t, form.HasClass("form-valid"))
	assert.False(t, form.HasClass("form-invalid"))
	assert.False(t, submit.HasAttr("disabled"))
	assert.True(t, submit.HasClass("enabled"))

	fx.field(t, "password").SetValue("short")
	fx.blur(t, "password")
	valid, _ = fx.eng.FormValid("registro")
	assert.False(t, valid)
	assert.True(t, form.HasClass("form-invalid"))
	assert.True(t, submit.HasAttr("disabled"))
	assert.True(t, submit.HasClass("disabled"))
	assert.False(t, submit.HasClass("enabled"))

	fx.field(t, "password").SetValue("longenough")
	fx.blur(t, "password")
	valid, _ = fx.eng.FormValid("registro")
	assert.True(t, valid)

	assert.False(t, fx.eng.ValidateFormByID("missing"))
	_, ok = fx.eng.FormValid("missing")
	assert.False(t, ok)
}

func TestEmptyFormIsValid(t *testing.T) {
	t.Parallel()
	fx := setup(t, `<form id="f" data-validate><button type="submit">Ok</button></form>`)
	fx.eng.Init()
	assert.True(t, fx.eng.ValidateFormByID("f"))
	valid, ok := fx.eng.FormValid("f")
	assert.True(t, ok)
	assert.True(t, valid)
}

func TestInputDebounce(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)
	fx.eng.Init()

	fx.typeInto(t, "email", "a")
	fx.clock.Advance(time.Second)
	assert.Zero(t, fx.obs.count("email"), "untouched fields are not validated on input")

	fx.blur(t, "email")
	require.Equal(t, 1, fx.obs.count("email"))

	for _, v := range []string{"an", "ana", "ana@", "ana@x.es"} {
		fx.typeInto(t, "email", v)
		fx.clock.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, 1, fx.obs.count("email"), "burst still within the window")

	fx.clock.Advance(200 * time.Millisecond)
	assert.Equal(t, 2, fx.obs.count("email"), "only the last input of the burst validates")
	st, _ := fx.eng.FieldState("registro", "email")
	assert.True(t, st.Valid)

	fx.clock.Advance(time.Second)
	assert.Equal(t, 2, fx.obs.count("email"))
}

func TestDebounceWindowIsConfigurable(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage, formvalidator.WithDebounce(50*time.Millisecond))
	fx.eng.Init()
	fx.blur(t, "email")
	fx.typeInto(t, "email", "x")
	fx.clock.Advance(50 * time.Millisecond)
	assert.Equal(t, 2, fx.obs.count("email"))
}

func TestLiveFeedback(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)
	fx.eng.Init()

	meter := fx.doc.Root().Query(dom.HasClass("password-strength"))
	fill := meter.Query(dom.HasClass("password-strength-fill"))

	fx.typeInto(t, "password", "abcdefgh")
	assert.Equal(t, "50%", fill.Style("width"))
	class, _ := fill.Attr("class")
	assert.Equal(t, "password-strength-fill strength-good", class)
	title, _ := meter.Attr("title")
	assert.Equal(t, "Incluir mayúsculas, Incluir números, Incluir símbolos", title)

	fx.typeInto(t, "password", "Abcdefg1!")
	assert.Equal(t, "100%", fill.Style("width"))
	class, _ = fill.Attr("class")
	assert.Equal(t, "password-strength-fill strength-strong", class)
	title, _ = meter.Attr("title")
	assert.Equal(t, "", title)

	fx.typeInto(t, "password", "")
	class, _ = fill.Attr("class")
	assert.Equal(t, "password-strength-fill strength-none", class)
	assert.Equal(t, "0%", fill.Style("width"))

	email := fx.field(t, "email")
	fx.typeInto(t, "email", "ana@example.com")
	assert.True(t, email.HasClass("email-preview"))
	fx.typeInto(t, "email", "ana@")
	assert.False(t, email.HasClass("email-preview"))
	fx.typeInto(t, "email", "ana@example.com")
	fx.typeInto(t, "email", "")
	assert.True(t, email.HasClass("email-preview"), "empty input leaves the preview alone")

	assert.Zero(t, fx.obs.count("password"), "live feedback does not validate")
}

func TestSubmitInvalidForm(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)
	fx.eng.Init()

	called := false
	require.NoError(t, fx.eng.SetSubmitCallback("registro", func(dom.Element) { called = true }))

	fx.field(t, "email").SetValue("ana@example.com")
	fx.field(t, "nombre").SetValue("Ana")
	ev := fx.submit("registro")

	assert.True(t, ev.DefaultPrevented())
	assert.False(t, called)
	assert.Empty(t, fx.doc.Submitted())
	password := fx.field(t, "password")
	assert.Same(t, password, fx.doc.ActiveElement())
	assert.Same(t, password, fx.doc.ScrolledTo())
	assert.Equal(t, []bool{false}, fx.obs.submitted)

	for _, key := range fx.eng.Fields("registro") {
		st, _ := fx.eng.FieldState("registro", key)
		assert.True(t, st.Touched, key)
	}
	assert.Equal(t, "Mínimo 8 caracteres", fx.doc.ElementByID("password_error").Text())
}

func TestSubmitFocusesFirstInvalidInDeclarationOrder(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)
	fx.eng.Init()
	fx.field(t, "password").SetValue("longenough")
	fx.submit("registro")
	assert.Same(t, fx.field(t, "email"), fx.doc.ActiveElement())
}

func TestSubmitValidForm(t *testing.T) {
	t.Parallel()

	fill := func(t *testing.T, fx *fixture) {
		fx.field(t, "email").SetValue("ana@example.com")
		fx.field(t, "password").SetValue("longenough")
		fx.field(t, "nombre").SetValue("Ana")
	}

	t.Run("native submission", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, registrationPage)
		fx.eng.Init()
		fill(t, fx)
		ev := fx.submit("registro")
		assert.True(t, ev.DefaultPrevented())
		require.Len(t, fx.doc.Submitted(), 1)
		assert.Same(t, fx.doc.ElementByID("registro"), fx.doc.Submitted()[0])
	})

	t.Run("callback replaces native submission", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, registrationPage)
		fx.eng.Init()
		fill(t, fx)

		var got dom.Element
		require.NoError(t, fx.eng.SetSubmitCallback("registro", func(form dom.Element) {
			got = form
			// Callbacks may call back into the engine.
			assert.True(t, fx.eng.ValidateFormByID("registro"))
		}))
		fx.submit("registro")
		assert.Same(t, fx.doc.ElementByID("registro"), got)
		assert.Empty(t, fx.doc.Submitted())

		require.NoError(t, fx.eng.SetSubmitCallback("registro", nil))
		fx.submit("registro")
		assert.Len(t, fx.doc.Submitted(), 1)
	})

	t.Run("unknown form", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, registrationPage)
		assert.ErrorIs(t, fx.eng.SetSubmitCallback("nope", nil), formvalidator.ErrFormNotFound)
	})
}

func TestClearFormErrors(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)
	fx.eng.Init()
	fx.eng.ValidateFormByID("registro")

	require.NoError(t, fx.eng.ClearFormErrors("registro"))
	email := fx.field(t, "email")
	assert.False(t, email.HasClass("invalid"))
	assert.False(t, email.HasClass("valid"))
	assert.False(t, email.HasAttr("aria-describedby"))
	errEl := fx.doc.ElementByID("email_error")
	assert.Equal(t, "", errEl.Text())
	assert.Equal(t, "none", errEl.Style("display"))

	st, _ := fx.eng.FieldState("registro", "email")
	assert.Equal(t, []string{"required", "email"}, st.Rules)
	assert.False(t, st.Valid, "stored validity is unchanged")

	assert.ErrorIs(t, fx.eng.ClearFormErrors("missing"), formvalidator.ErrFormNotFound)
}

func TestCustomRules(t *testing.T) {
	t.Parallel()

	t.Run("form-local rules shadow the catalog", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, `<form id="a"><input name="n" data-validate="required"></form>
			<form id="b"><input name="m" data-validate="required"></form>`)
		lenient := rules.Set{"required": {Test: func(string, rules.Param) bool { return true }}}
		_, err := fx.eng.RegisterForm(fx.doc.ElementByID("a"), lenient)
		require.NoError(t, err)
		_, err = fx.eng.RegisterForm(fx.doc.ElementByID("b"), nil)
		require.NoError(t, err)

		valid, _, _ := fx.eng.ValidateField("a", "n")
		assert.True(t, valid)
		valid, _, _ = fx.eng.ValidateField("b", "m")
		assert.False(t, valid)
	})

	t.Run("catalog additions affect later registrations only", func(t *testing.T) {
		t.Parallel()
		fx := setup(t, `<form id="a"><input name="n" data-validate="even"></form>
			<form id="b"><input name="m" data-validate="even"></form>`)
		_, err := fx.eng.RegisterForm(fx.doc.ElementByID("a"), nil)
		require.NoError(t, err)

		require.NoError(t, fx.eng.AddCustomRule("even", func(v string, _ rules.Param) bool {
			return len(v)%2 == 0
		}, rules.Formatted(func(rules.Param) string { return "longitud impar" })))
		_, err = fx.eng.RegisterForm(fx.doc.ElementByID("b"), nil)
		require.NoError(t, err)

		a, _ := fx.eng.FieldState("a", "n")
		assert.Empty(t, a.Rules)
		b, _ := fx.eng.FieldState("b", "m")
		assert.Equal(t, []string{"even"}, b.Rules)

		fx.field(t, "m").SetValue("abc")
		valid, msg, _ := fx.eng.ValidateField("b", "m")
		assert.False(t, valid)
		assert.Equal(t, "longitud impar", msg)

		assert.ErrorIs(t, fx.eng.AddCustomRule("", func(string, rules.Param) bool { return true }, rules.Static("")), rules.ErrEmptyRuleName)
	})
}

func TestTranslatedMessages(t *testing.T) {
	t.Parallel()
	tr, err := i18n.NewDefault(context.Background())
	require.NoError(t, err)

	fx := setup(t, registrationPage, formvalidator.WithTranslator(tr, "en"))
	fx.eng.Init()

	fx.field(t, "password").SetValue("short")
	_, msg, _ := fx.eng.ValidateField("registro", "password")
	assert.Equal(t, "At least 8 characters", msg)

	fx.typeInto(t, "password", "abc")
	title, _ := fx.doc.Root().Query(dom.HasClass("password-strength")).Attr("title")
	assert.Equal(t, "At least 8 characters, Include uppercase letters, Include numbers, Include symbols", title)
}

func TestSetFieldError(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage)
	fx.eng.Init()
	fx.field(t, "email").SetValue("ana@example.com")
	fx.field(t, "password").SetValue("longenough")
	fx.field(t, "nombre").SetValue("Ana")
	require.True(t, fx.eng.ValidateFormByID("registro"))

	require.NoError(t, fx.eng.SetFieldError("registro", "email", "Este email ya está registrado"))
	assert.Equal(t, "Este email ya está registrado", fx.doc.ElementByID("email_error").Text())
	valid, _ := fx.eng.FormValid("registro")
	assert.False(t, valid)
	assert.ErrorIs(t, fx.eng.SetFieldError("registro", "nope", "x"), formvalidator.ErrFieldNotFound)
}

func TestObserveRegistersInsertedForms(t *testing.T) {
	t.Parallel()
	fx := setup(t, `<html><body><div id="host"></div><div id="other"></div></body></html>`)
	cancel := fx.eng.Observe(fx.doc.ElementByID("host"))

	form := fx.doc.CreateElement("form")
	form.SetID("late")
	form.SetAttr("data-validate", "")
	input := fx.doc.CreateElement("input")
	input.SetAttr("name", "a")
	input.SetAttr("data-validate", "required")
	form.AppendChild(input)

	outside := fx.doc.CreateElement("form")
	outside.SetID("outside")
	outside.SetAttr("data-validate", "")

	fx.doc.ElementByID("host").AppendChild(form)
	fx.doc.ElementByID("other").AppendChild(outside)

	assert.Equal(t, []string{"late"}, fx.eng.Forms())
	assert.Equal(t, []string{"a"}, fx.eng.Fields("late"))
	assert.NotNil(t, fx.doc.ElementByID("a_error"))

	cancel()
	assert.Equal(t, []string{"outside"}, fx.eng.Rescan(fx.doc.ElementByID("other")))
}

func TestAnimationsDisabled(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage, formvalidator.WithAnimations(false))
	fx.eng.Init()
	fx.eng.ValidateFormByID("registro")
	assert.False(t, fx.field(t, "email").HasClass("field-error-shake"))
	assert.Zero(t, fx.clock.Pending())
}

func TestStopCancelsPendingValidation(t *testing.T) {
	t.Parallel()
	fx := setup(t, registrationPage, formvalidator.WithAnimations(false))
	fx.eng.Init()
	fx.blur(t, "email")
	fx.typeInto(t, "email", "ana@example.com")
	fx.eng.Stop()
	fx.clock.Advance(time.Second)
	assert.Equal(t, 1, fx.obs.count("email"))
}

func TestRealTimeScheduler(t *testing.T) {
	t.Parallel()
	doc, err := dom.ParseString(registrationPage)
	require.NoError(t, err)
	obs := &counter{}
	eng := formvalidator.New(doc,
		formvalidator.WithObserver(obs),
		formvalidator.WithDebounce(10*time.Millisecond),
		formvalidator.WithAnimations(false))
	eng.Init()

	email := doc.Root().Query(dom.AttrEquals("name", "email"))
	email.Dispatch(dom.NewEvent(dom.EventBlur))
	eng.Stop()
	assert.Equal(t, 1, obs.count("email"))
}

func TestReplacedRegistrationIgnoresOldFields(t *testing.T) {
	t.Parallel()
	fx := setup(t, `<body>
		<form id="f"><div class="form-group"><input name="a" data-validate="required"></div></form>
		<form id="f"><div class="form-group"><input name="a" data-validate="required"></div></form>
	</body>`)
	forms := fx.doc.QueryAll(dom.Tag("form"))
	require.Len(t, forms, 2)
	_, err := fx.eng.RegisterForm(forms[0], nil)
	require.NoError(t, err)
	_, err = fx.eng.RegisterForm(forms[1], nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"f"}, fx.eng.Forms())

	old := forms[0].Query(dom.AttrEquals("name", "a"))
	current := forms[1].Query(dom.AttrEquals("name", "a"))
	errEl := fx.doc.ElementByID("a_error")
	require.NotNil(t, errEl)

	old.Dispatch(dom.NewEvent(dom.EventBlur))
	old.Dispatch(dom.NewEvent(dom.EventInput))
	fx.clock.Advance(time.Second)

	assert.False(t, old.HasClass(formvalidator.ClassInvalid))
	assert.Equal(t, "none", errEl.Style("display"))
	assert.Empty(t, errEl.Text())
	st, ok := fx.eng.FieldState("f", "a")
	require.True(t, ok)
	assert.False(t, st.Touched)

	current.Dispatch(dom.NewEvent(dom.EventBlur))
	assert.True(t, current.HasClass(formvalidator.ClassInvalid))
	assert.Equal(t, "Este campo es obligatorio", errEl.Text())
}
