package formvalidator

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adoptmenow/formvalidation/pkg/debounce"
	"github.com/adoptmenow/formvalidation/pkg/rules"
)

// Translator resolves message templates. *i18n.Translator satisfies it.
type Translator interface {
	Lookup(lang, key string) (string, bool)
}

// Observer receives validation outcomes. Calls happen under the engine lock and
// must not call back into the engine.
type Observer interface {
	FieldValidated(form, field, rule string, valid bool)
	FormSubmitted(form string, valid bool)
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithScheduler sets the clock used for debouncing and animations.
func WithScheduler(s debounce.Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithConfig replaces the timing configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.cfg.Debounce = d }
}

// WithAnimations toggles the transient success and failure classes. Server-side
// rendering turns them off so no timers are left behind.
func WithAnimations(on bool) Option {
	return func(e *Engine) { e.cfg.Animations = on }
}

// WithCatalog uses c instead of a fresh default catalog. The catalog is shared,
// so AddCustomRule on the engine registers into c.
func WithCatalog(c *rules.Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithTranslator translates rule messages and strength suggestions into lang.
func WithTranslator(t Translator, lang string) Option {
	return func(e *Engine) {
		e.tr = t
		e.lang = lang
	}
}

// WithIDGenerator sets the generator for ids of forms that have none.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.obs = o }
}

func newFormID() string {
	return "form_" + uuid.NewString()
}
