package formvalidator

import (
	"log/slog"
	"sync"

	"github.com/adoptmenow/formvalidation/pkg/debounce"
	"github.com/adoptmenow/formvalidation/pkg/dom"
	"github.com/adoptmenow/formvalidation/pkg/logger"
	"github.com/adoptmenow/formvalidation/pkg/rules"
)

// Marker is the attribute that opts forms and fields into validation.
const Marker = "data-validate"

// Engine validates the marked forms of one document.
type Engine struct {
	doc     dom.Document
	catalog *rules.Catalog
	cfg     Config
	sched   debounce.Scheduler
	log     *slog.Logger
	tr      Translator
	lang    string
	newID   func() string
	obs     Observer

	mu        sync.Mutex
	forms     map[string]*form
	order     []string
	byElement map[dom.Element]*form
}

// New returns an engine for doc. Nothing is registered until Init, RegisterForm,
// Rescan or Observe is called.
func New(doc dom.Document, opts ...Option) *Engine {
	e := &Engine{
		doc:       doc,
		cfg:       DefaultConfig(),
		sched:     debounce.RealTime{},
		log:       logger.Discard(),
		newID:     newFormID,
		forms:     make(map[string]*form),
		byElement: make(map[dom.Element]*form),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.catalog == nil {
		e.catalog = rules.Default()
	}
	e.log = e.log.With(logger.Component("formvalidator"))
	return e
}

// Catalog returns the rule catalog used for new registrations.
func (e *Engine) Catalog() *rules.Catalog { return e.catalog }

// Init registers every marked form in the document and returns their ids in
// document order. Forms that are already registered keep their registration.
func (e *Engine) Init() []string {
	root := e.doc.Root()
	if root == nil {
		return nil
	}
	return e.Rescan(root)
}

// Rescan registers the marked forms inside container, including container itself.
func (e *Engine) Rescan(container dom.Element) []string {
	var ids []string
	for _, el := range markedForms(container) {
		id, err := e.RegisterForm(el, nil)
		if err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// Observe registers marked forms inserted under container from now on. The
// returned function stops observing.
func (e *Engine) Observe(container dom.Element) (cancel func()) {
	return e.doc.Observe(container, func(el dom.Element) {
		// Error displays inserted by the engine itself arrive here while the
		// engine lock is held; they carry no forms and return before locking.
		for _, f := range markedForms(el) {
			_, _ = e.RegisterForm(f, nil)
		}
	})
}

// RegisterForm registers el with optional form-local custom rules and returns
// its id. Registering an element twice returns the existing id.
func (e *Engine) RegisterForm(el dom.Element, custom rules.Set) (string, error) {
	if el == nil || el.TagName() != "form" {
		e.log.Warn("element is not a valid form")
		return "", ErrNotAForm
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if f, ok := e.byElement[el]; ok {
		return f.id, nil
	}

	id := el.ID()
	if id == "" {
		id = e.newID()
		el.SetID(id)
	}
	if old, ok := e.forms[id]; ok {
		e.log.Warn("form id reused by another element, replacing registration", logger.Form(id))
		delete(e.byElement, old.el)
		old.stop()
	} else {
		e.order = append(e.order, id)
	}

	f := &form{id: id, el: el, lookup: e.catalog.Overlay(custom), index: make(map[string]int)}
	e.scanFields(f)
	e.attachSubmit(f)

	e.forms[id] = f
	e.byElement[el] = f
	e.log.Info("form registered", logger.Form(id), slog.Int("fields", len(f.fields)))
	return id, nil
}

// AddCustomRule registers a rule in the catalog, replacing any rule with the same
// name. Fields already registered keep their resolved rules.
func (e *Engine) AddCustomRule(name string, test rules.Test, msg rules.Message) error {
	if err := e.catalog.Add(name, test, msg); err != nil {
		e.log.Warn("custom rule rejected", logger.Rule(name), logger.Error(err))
		return err
	}
	return nil
}

// Stop cancels every pending debounced validation. Registrations stay in place.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, f := range e.forms {
		f.stop()
	}
}

func (e *Engine) form(id string) (*form, error) {
	f, ok := e.forms[id]
	if !ok {
		return nil, ErrFormNotFound
	}
	return f, nil
}

func markedForms(container dom.Element) []dom.Element {
	isMarked := dom.All(dom.Tag("form"), dom.HasAttr(Marker))
	var out []dom.Element
	if isMarked(container) {
		out = append(out, container)
	}
	return append(out, container.QueryAll(isMarked)...)
}
