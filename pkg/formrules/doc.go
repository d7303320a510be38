// Package formrules validates posted forms on the server with the rule catalog
// used by the browser engine, so both sides report the same messages.
//
// Presets name the fields of each site form and their rule declarations. The
// defaults are embedded; a YAML file can replace them and a Watcher reloads it
// on change:
//
//	presets:
//	  login:
//	    - field: email
//	      rules: required|email
//	    - field: password
//	      rules: required
//
// Declarations accept the browser names (minLength) and their snake_case aliases
// (min_length, max_length, password_strong), plus the server-only oneOf:a,b,c.
// Each field is checked with ozzo-validation and stops at its first failing rule.
// When every field passes, the preset's business checks run: the adoption
// housing type must be known and a registration email must not be registered yet.
//
// Middleware validates POSTs to mapped routes and stores the Result in the
// request context for the handler.
package formrules
