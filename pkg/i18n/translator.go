package i18n

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/adoptmenow/formvalidation/pkg/logger"
)

// DefaultLanguage is used when no default is configured.
const DefaultLanguage = "en"

// Option configures a Translator.
type Option func(*Translator)

func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a debug record for every key that falls back
// to the key itself.
func WithMissingTranslationsLogging(on bool) Option {
	return func(t *Translator) { t.logMissing = on }
}

// Translator resolves dotted keys per language. It is safe for concurrent use.
type Translator struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	adapter      TranslationAdapter
	defaultLang  string
	logger       *slog.Logger
	logMissing   bool
}

// NewTranslator loads translations from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	t := &Translator{
		adapter:     adapter,
		defaultLang: DefaultLanguage,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload reloads every language from the adapter.
func (t *Translator) Reload(ctx context.Context) error {
	raw, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	flat := make(map[string]map[string]string, len(raw))
	for lang, tree := range raw {
		if lang == "" || tree == nil {
			return ErrInvalidStructure
		}
		keys := make(map[string]string)
		flatten("", tree, keys)
		flat[strings.ToLower(lang)] = keys
	}

	t.mu.Lock()
	t.translations = flat
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return nil
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

func (t *Translator) DefaultLanguage() string { return t.defaultLang }

// Has reports whether key is translated for lang, without fallback.
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.translations[strings.ToLower(lang)][key]
	return ok
}

// Lookup returns the raw template for key, following the language fallback chain.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, l := range t.chain(lang) {
		if tmpl, ok := t.translations[l][key]; ok {
			return tmpl, true
		}
	}
	return "", false
}

// T translates key into lang. args are placeholder name/value pairs; an odd
// trailing argument is ignored. Missing keys return the key.
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.Lookup(lang, key)
	if !ok {
		if t.logMissing {
			t.logger.Debug("missing translation", slog.String("lang", lang), slog.String("key", key))
		}
		return key
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return Format(tmpl, params)
}

// chain lists lang, its base language and the default, without duplicates.
func (t *Translator) chain(lang string) []string {
	lang = strings.ToLower(lang)
	out := make([]string, 0, 3)
	add := func(l string) {
		if l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	add(lang)
	if base, _, ok := strings.Cut(lang, "-"); ok {
		add(base)
	}
	add(t.defaultLang)
	return out
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// Format replaces %{name} placeholders. Unknown placeholders are kept verbatim.
func Format(tmpl string, params map[string]string) string {
	if len(params) == 0 {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
