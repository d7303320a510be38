package i18n

import (
	"context"
	"embed"
)

// Locales holds the bundled translations.
//
//go:embed locales/*.yaml
var Locales embed.FS

// NewDefault returns a translator over the bundled locales with Spanish as default.
func NewDefault(ctx context.Context, opts ...Option) (*Translator, error) {
	opts = append([]Option{WithDefaultLanguage("es")}, opts...)
	return NewTranslator(ctx, &FSAdapter{FS: Locales, Dir: "locales"}, opts...)
}
