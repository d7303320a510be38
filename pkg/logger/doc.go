// Package logger builds the *slog.Logger used across the form validation service.
//
// New applies functional options on top of production defaults (JSON, INFO, stdout)
// and wraps the handler with a decorator that copies request-scoped values, such as
// the negotiated locale, from the context into every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "formvalidation"),
//	    logger.WithContextValue("locale", localeKey),
//	)
//	log.Warn("unknown validation rule", logger.Form(id), logger.Field("email"), logger.Rule("emial"))
//
// Libraries that accept an optional logger fall back to Discard.
//
// Attribute helpers in attr.go keep key names consistent: Form, Field, Rule,
// Component, Path and Error. Error returns an empty attribute for a nil error so it
// can be passed unconditionally.
package logger
