package i18n

import (
	"context"
	"net/http"
)

type localeContextKey struct{}

// LocaleKey is the context key under which Middleware stores the locale.
var LocaleKey any = localeContextKey{}

// SetLocale returns a copy of ctx carrying locale.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// Locale returns the locale stored in ctx, or "" when none is set.
func Locale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale
}

// Middleware negotiates the request language against the translator's languages
// and stores it in the request context. A "lang" query parameter naming a
// supported language overrides the header.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supported := t.SupportedLanguages()
			lang := ParseAcceptLanguage(r.Header.Get("Accept-Language"), supported, t.DefaultLanguage())
			if q := r.URL.Query().Get("lang"); q != "" {
				lang = ParseAcceptLanguage(q, supported, lang)
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
