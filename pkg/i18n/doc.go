// Package i18n translates the user-facing strings of the form validation service:
// rule error messages and password strength suggestions.
//
// Translations are loaded once through a TranslationAdapter. MapAdapter serves an
// in-memory map; FSAdapter reads YAML files from any fs.FS, including the embedded
// Locales bundle shipped with the package (Spanish, the site language, and English).
// Each file holds one or more languages keyed at the root:
//
//	es:
//	  validation:
//	    min_length: "Mínimo %{param} caracteres"
//
// Nested keys are addressed with dots ("validation.min_length") and %{name}
// placeholders are filled from key/value pairs:
//
//	tr, err := i18n.NewDefault(ctx)
//	msg := tr.T("en", "validation.min_length", "param", "8")
//
// Lookups fall back from the regional tag to the base language ("es-AR" to "es"),
// then to the translator's default language, and finally return the key itself.
//
// Middleware negotiates the request language from Accept-Language against the
// supported languages and stores it in the context, where Locale reads it back.
package i18n
