package logger

import "log/slog"

// Error records err under the key "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Form records a form id.
func Form(id string) slog.Attr {
	return slog.String("form", id)
}

// Field records a field key.
func Field(key string) slog.Attr {
	return slog.String("field", key)
}

// Rule records a rule name.
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Path records a file system or URL path.
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
