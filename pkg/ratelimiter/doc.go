// Package ratelimiter throttles form submissions with a token bucket.
//
// Each key (by default the client address plus the form path) owns a bucket of
// Capacity tokens. A submission takes one token and RefillRate tokens come back
// every RefillInterval. Buckets live in a Store: MemoryStore for a single
// instance, RedisStore when several instances share the limit.
//
//	limiter, err := ratelimiter.New(ratelimiter.NewMemoryStore(), cfg)
//	r.Use(ratelimiter.Middleware(limiter, ratelimiter.ByClientIP(clientip.New())))
//
// Middleware only counts unsafe methods, so rendering a form is never limited.
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset,
// plus Retry-After when a submission is rejected with 429.
package ratelimiter
