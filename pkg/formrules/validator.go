package formrules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/adoptmenow/formvalidation/pkg/i18n"
	"github.com/adoptmenow/formvalidation/pkg/logger"
	"github.com/adoptmenow/formvalidation/pkg/rules"
)

// OneOf is the server-only rule "oneOf:a,b,c": an empty value or one of the
// comma-separated options.
const OneOf = "oneOf"

// aliases maps the snake_case names used by server presets to catalog names.
var aliases = map[string]string{
	"min_length":      rules.MinLength,
	"max_length":      rules.MaxLength,
	"password_strong": rules.PasswordStrong,
	"one_of":          OneOf,
}

// Translator resolves message templates. *i18n.Translator satisfies it.
type Translator interface {
	Lookup(lang, key string) (string, bool)
}

// Observer receives the outcome of every preset validation.
type Observer interface {
	PresetValidated(preset string, valid bool, failedRules []string)
}

// Option configures a Validator.
type Option func(*Validator)

func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithCatalog validates against c instead of the built-in rules. The oneOf
// rule is added to a clone of c.
func WithCatalog(c *rules.Catalog) Option {
	return func(v *Validator) {
		if c != nil {
			v.catalog = c.Clone()
		}
	}
}

func WithTranslator(t Translator) Option {
	return func(v *Validator) { v.tr = t }
}

// WithEmailRegistry enables the email uniqueness check of the registration preset.
func WithEmailRegistry(r EmailRegistry) Option {
	return func(v *Validator) { v.emails = r }
}

func WithObserver(o Observer) Option {
	return func(v *Validator) { v.obs = o }
}

// Validator checks posted form values against the presets of a Store.
type Validator struct {
	store   *Store
	catalog *rules.Catalog
	tr      Translator
	emails  EmailRegistry
	obs     Observer
	log     *slog.Logger
}

func NewValidator(store *Store, opts ...Option) *Validator {
	v := &Validator{
		store:   store,
		catalog: rules.Default(),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	_ = v.catalog.Register(oneOfRule())
	return v
}

// Store returns the presets the validator reads from.
func (v *Validator) Store() *Store { return v.store }

// Validate runs the named preset against values, then the preset's business
// checks when every field passed. lang selects the message language; an empty
// lang uses the catalog messages.
func (v *Validator) Validate(ctx context.Context, preset, lang string, values map[string]string) (*Result, error) {
	fields, ok := v.store.Get(preset)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}
	res := v.ValidateFields(lang, fields, values)
	res.Preset = preset
	if res.Valid {
		if err := v.check(ctx, preset, lang, res); err != nil {
			return nil, err
		}
	}
	if v.obs != nil {
		v.obs.PresetValidated(preset, res.Valid, res.FailedRules())
	}
	v.log.DebugContext(ctx, "form validated",
		logger.Form(preset),
		slog.Bool("valid", res.Valid),
		slog.Int("errors", len(res.Errors)),
	)
	return res, nil
}

// ValidateFields validates values against an ad hoc field list. Business checks
// do not run.
func (v *Validator) ValidateFields(lang string, fields []FieldRules, values map[string]string) *Result {
	res := newResult()
	for _, fr := range fields {
		value := values[fr.Field]
		err := validation.Validate(value, v.chain(lang, fr)...)
		if err == nil {
			res.Data[fr.Field] = strings.TrimSpace(value)
			continue
		}
		res.fail(fr.Field, err)
	}
	return res
}

// chain converts a rule declaration into ozzo rules. Unknown names are skipped.
func (v *Validator) chain(lang string, fr FieldRules) []validation.Rule {
	tokens := rules.ParseTokens(fr.Rules)
	for i, t := range tokens {
		if name, ok := aliases[t.Name]; ok {
			tokens[i].Name = name
		}
	}
	bindings, unknown := rules.Bind(tokens, v.catalog)
	for _, name := range unknown {
		v.log.Warn("unknown validation rule skipped", logger.Field(fr.Field), logger.Rule(name))
	}
	chain := make([]validation.Rule, 0, len(bindings))
	for _, b := range bindings {
		chain = append(chain, bindingRule{binding: b, message: v.message(lang, b)})
	}
	return chain
}

func (v *Validator) message(lang string, b rules.Binding) string {
	if v.tr != nil && lang != "" && b.Rule.Key != "" {
		if tmpl, ok := v.tr.Lookup(lang, b.Rule.Key); ok {
			return i18n.Format(tmpl, map[string]string{"param": b.Param.String()})
		}
	}
	return b.Rule.Message.Resolve(b.Param)
}

func (v *Validator) translate(lang, key, fallback string) string {
	if v.tr != nil && lang != "" {
		if s, ok := v.tr.Lookup(lang, key); ok {
			return s
		}
	}
	return fallback
}

// bindingRule adapts a catalog binding to validation.Rule.
type bindingRule struct {
	binding rules.Binding
	message string
}

func (r bindingRule) Validate(value any) error {
	s, _ := value.(string)
	if r.binding.Rule.Test(s, r.binding.Param) {
		return nil
	}
	return validation.NewError(errorCode(r.binding.Name), r.message)
}

const codePrefix = "validation_"

func errorCode(rule string) string { return codePrefix + rule }

func oneOfRule() rules.Rule {
	return rules.Rule{
		Name: OneOf,
		Test: func(v string, p rules.Param) bool {
			if v == "" {
				return true
			}
			for opt := range strings.SplitSeq(p.String(), ",") {
				if strings.TrimSpace(opt) == v {
					return true
				}
			}
			return false
		},
		Message: rules.Formatted(func(p rules.Param) string {
			return "Selecciona una opción válida: " + p.String()
		}),
		Key: "validation.one_of",
	}
}

// Result is the outcome of validating one posted form.
type Result struct {
	Preset string
	Valid  bool
	// Errors holds one message per failing field.
	Errors map[string]string
	// Data holds the trimmed values of the fields that passed.
	Data map[string]string

	failed []string
}

func newResult() *Result {
	return &Result{
		Valid:  true,
		Errors: map[string]string{},
		Data:   map[string]string{},
	}
}

// AddError marks field invalid with message and drops its cleaned value.
func (r *Result) AddError(field, message string) {
	r.Valid = false
	r.Errors[field] = message
	delete(r.Data, field)
}

// FailedRules returns the names of the rules that failed, one per failing field.
func (r *Result) FailedRules() []string {
	return slices.Clone(r.failed)
}

// Err returns the errors as validation.Errors, or nil when the form is valid.
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	errs := validation.Errors{}
	for field, msg := range r.Errors {
		errs[field] = errors.New(msg)
	}
	return errs
}

func (r *Result) fail(field string, err error) {
	r.AddError(field, err.Error())
	var verr validation.Error
	if errors.As(err, &verr) {
		r.failed = append(r.failed, strings.TrimPrefix(verr.Code(), codePrefix))
	}
}
