package adoption

import (
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/adoptmenow/formvalidation/pkg/flash"
	"github.com/adoptmenow/formvalidation/pkg/formrules"
	"github.com/adoptmenow/formvalidation/pkg/formvalidator"
	"github.com/adoptmenow/formvalidation/pkg/i18n"
	"github.com/adoptmenow/formvalidation/pkg/logger"
	"github.com/adoptmenow/formvalidation/pkg/rules"
)

//go:embed pages/*.html
var pagesFS embed.FS

// Page is a site form: where it is served, the preset that validates it,
// where a valid submission is redirected and the translation key of the
// message shown after the redirect.
type Page struct {
	Path     string
	File     string
	FormID   string
	Preset   string
	Redirect string
	Flash    string
}

// Pages lists the forms served by the module.
var Pages = []Page{
	{Path: "/registro", File: "registro.html", FormID: "registro-form", Preset: formrules.Registration, Redirect: "/iniciar-sesion", Flash: "flash.registered"},
	{Path: "/iniciar-sesion", File: "iniciar-sesion.html", FormID: "login-form", Preset: formrules.Login, Redirect: "/", Flash: "flash.welcome"},
	{Path: "/formulario", File: "formulario.html", FormID: "adopcion-form", Preset: formrules.Adoption, Redirect: "/adopcion", Flash: "flash.adoption_sent"},
	{Path: "/registro-administrador", File: "registro-administrador.html", FormID: "admin-form", Preset: formrules.AdminRegistration, Redirect: "/iniciar-sesion", Flash: "flash.admin_registered"},
}

// Landings are the pages without a form that valid submissions redirect to.
var Landings = []Page{
	{Path: "/", File: "inicio.html"},
	{Path: "/adopcion", File: "adopcion.html"},
}

var flashFallback = map[string]string{
	"flash.registered":       "¡Registro exitoso! Ahora puedes iniciar sesión",
	"flash.welcome":          "¡Bienvenido!",
	"flash.adoption_sent":    "¡Solicitud de adopción enviada correctamente! Te contactaremos pronto para continuar con el proceso.",
	"flash.admin_registered": "Administrador registrado. Ya puede iniciar sesión",
}

// Option configures a Module.
type Option func(*Module)

func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// WithTranslator translates the messages projected into re-rendered pages.
func WithTranslator(t formvalidator.Translator) Option {
	return func(m *Module) { m.tr = t }
}

// WithEmailRegistry records the email of every successful registration.
func WithEmailRegistry(r formrules.EmailRegistry) Option {
	return func(m *Module) { m.emails = r }
}

// WithObserver receives the outcomes of the engines that re-render pages.
func WithObserver(o formvalidator.Observer) Option {
	return func(m *Module) { m.obs = o }
}

// WithCatalog shares a rule catalog with the page engines.
func WithCatalog(c *rules.Catalog) Option {
	return func(m *Module) { m.catalog = c }
}

// WithFlash shows a one-shot message on the page a valid submission
// redirects to.
func WithFlash(f *flash.Manager) Option {
	return func(m *Module) { m.flash = f }
}

// WithEngineOptions adds options to the engines that re-render pages.
// Animations stay disabled.
func WithEngineOptions(opts ...formvalidator.Option) Option {
	return func(m *Module) { m.engineOpts = append(m.engineOpts, opts...) }
}

// Module serves the adoption site forms and validates their submissions.
type Module struct {
	validator *formrules.Validator
	pages     map[string]page
	landings  []page
	tr        formvalidator.Translator
	emails    formrules.EmailRegistry
	obs       formvalidator.Observer
	catalog   *rules.Catalog
	flash     *flash.Manager
	log       *slog.Logger

	engineOpts []formvalidator.Option
}

type page struct {
	Page
	html []byte
}

func New(v *formrules.Validator, opts ...Option) (*Module, error) {
	m := &Module{
		validator: v,
		pages:     make(map[string]page, len(Pages)),
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, p := range Pages {
		b, err := pagesFS.ReadFile("pages/" + p.File)
		if err != nil {
			return nil, errors.Join(ErrPageNotFound, err)
		}
		m.pages[p.Path] = page{Page: p, html: b}
	}
	for _, p := range Landings {
		b, err := pagesFS.ReadFile("pages/" + p.File)
		if err != nil {
			return nil, errors.Join(ErrPageNotFound, err)
		}
		m.landings = append(m.landings, page{Page: p, html: b})
	}
	return m, nil
}

// Routes maps page paths to presets, in the form formrules.Middleware expects.
func (m *Module) Routes() map[string]string {
	routes := make(map[string]string, len(m.pages))
	for path, p := range m.pages {
		routes[path] = p.Preset
	}
	return routes
}

// Handle returns the router serving every page. Submissions are validated by
// formrules.Middleware before they reach the page handlers.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(formrules.Middleware(m.validator, m.Routes()))
	for path, p := range m.pages {
		r.Get(path, m.show(p))
		r.Post(path, m.submit(p))
	}
	for _, p := range m.landings {
		r.Get(p.Path, m.show(p))
	}
	return r
}

func (m *Module) show(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := p.html
		if m.flash != nil {
			if msg, ok := m.flash.Pop(w, r); ok {
				b, err := withFlash(p.html, msg)
				if err != nil {
					m.log.ErrorContext(r.Context(), "failed to render flash", logger.Path(p.Path), logger.Error(err))
				} else {
					body = b
				}
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(body); err != nil {
			m.log.ErrorContext(r.Context(), "failed to write page", logger.Path(p.Path), logger.Error(err))
		}
	}
}

func (m *Module) submit(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		res, ok := formrules.FromContext(ctx)
		if !ok {
			m.log.ErrorContext(ctx, "submission reached handler without validation", logger.Path(p.Path))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		lang := i18n.Locale(ctx)

		if res.Valid {
			if err := m.register(r, p, res, lang); err != nil {
				m.log.ErrorContext(ctx, "failed to register email", logger.Form(p.Preset), logger.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}
		// register may have turned res invalid.
		if res.Valid {
			m.log.InfoContext(ctx, "form accepted", logger.Form(p.Preset))
			m.setFlash(w, r, p, lang)
			http.Redirect(w, r, p.Redirect, http.StatusSeeOther)
			return
		}

		m.log.InfoContext(ctx, "form rejected", logger.Form(p.Preset), slog.Int("errors", len(res.Errors)))
		if wantsJSON(r) {
			if err := m.validator.ErrorResponse(res, lang).Render(w, r); err != nil {
				m.log.ErrorContext(ctx, "failed to write error response", logger.Error(err))
			}
			return
		}
		values, _ := formrules.Values(r)
		body, err := m.rerender(p, lang, values, res)
		if err != nil {
			m.log.ErrorContext(ctx, "failed to render form", logger.Path(p.Path), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(body)
	}
}

// register stores the email of a valid registration. A concurrent registration
// of the same address turns res invalid.
func (m *Module) register(r *http.Request, p page, res *formrules.Result, lang string) error {
	if m.emails == nil {
		return nil
	}
	if p.Preset != formrules.Registration && p.Preset != formrules.AdminRegistration {
		return nil
	}
	err := m.emails.Register(r.Context(), res.Data["email"])
	if errors.Is(err, formrules.ErrEmailTaken) {
		res.AddError("email", m.text(lang, "validation.email_taken", "Este email ya está registrado"))
		return nil
	}
	return err
}

func (m *Module) setFlash(w http.ResponseWriter, r *http.Request, p page, lang string) {
	if m.flash == nil || p.Flash == "" {
		return
	}
	msg := flash.Message{Kind: flash.Success, Text: m.text(lang, p.Flash, flashFallback[p.Flash])}
	if err := m.flash.Set(w, msg); err != nil {
		m.log.ErrorContext(r.Context(), "failed to set flash", logger.Form(p.Preset), logger.Error(err))
	}
}

func (m *Module) text(lang, key, fallback string) string {
	if m.tr != nil {
		if s, ok := m.tr.Lookup(lang, key); ok {
			return s
		}
	}
	return fallback
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}
