package i18n

import "errors"

var (
	ErrNilAdapter           = errors.New("i18n: nil translation adapter")
	ErrFailedToParseYAML    = errors.New("i18n: failed to parse YAML translations")
	ErrFailedToReadFile     = errors.New("i18n: failed to read translation file")
	ErrInvalidStructure     = errors.New("i18n: invalid translation structure")
	ErrLoadingCancelled     = errors.New("i18n: loading translations cancelled")
	ErrNoTranslationsLoaded = errors.New("i18n: no translations loaded")
)
