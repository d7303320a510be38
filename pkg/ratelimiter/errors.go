package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid rate limit configuration")
	ErrInvalidTokenCount = errors.New("invalid token count")
	// ErrStoreUnavailable is returned when a store cannot complete an update.
	ErrStoreUnavailable = errors.New("rate limit store unavailable")
)
