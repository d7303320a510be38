package flash

import "errors"

var (
	ErrNoSecret         = errors.New("flash: no secret configured")
	ErrSecretTooShort   = errors.New("flash: secret too short")
	ErrInvalidSignature = errors.New("flash: invalid signature")
	ErrInvalidFormat    = errors.New("flash: invalid cookie format")
)
