// Package rules provides the named validation predicates shared by the browser-side
// form engine and the server-side preset validator.
//
// A Catalog maps rule names to Rule values. Each Rule couples a Test function with a
// Message, which is either static text or a formatter of the rule parameter:
//
//	msg := rules.Formatted(func(p rules.Param) string {
//	    return fmt.Sprintf("Mínimo %s caracteres", p)
//	})
//
// Fields declare their rules as a pipe-delimited token list such as
// "required|minLength:8|email". ParseTokens splits the list, resolving every parameter
// once: numeric-looking parameters become numbers, everything else stays a string.
// Bind resolves token names against a Lookup (a Catalog or a form-local Overlay) and
// reports the names it could not resolve.
//
// Evaluate runs a binding chain against a value and stops at the first failing rule,
// so the declaration order decides which single message is reported.
//
// # Built-in rules
//
//   - required       non-blank after trimming whitespace
//   - email          ^[^\s@]+@[^\s@]+\.[^\s@]+$
//   - minLength:n    non-empty and at least n characters
//   - maxLength:n    empty or at most n characters
//   - password       at least 6 characters
//   - passwordStrong at least 8 characters with upper, lower and digit
//   - phone          ^[\+]?[0-9\s\-\(\)]{7,15}$
//   - name           2 to 50 letters (Spanish accents allowed) and spaces
//   - alphanumeric   3 to 20 of [a-zA-Z0-9_]
//
// Default messages are in Spanish, the site's source language. Every built-in also
// carries a translation key (validation.<rule>) whose template may use %{param}.
package rules
