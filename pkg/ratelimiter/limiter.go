package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config describes a token bucket.
type Config struct {
	Capacity       int           `env:"SUBMIT_RATE_CAPACITY" envDefault:"10"`
	RefillRate     int           `env:"SUBMIT_RATE_REFILL" envDefault:"1"`
	RefillInterval time.Duration `env:"SUBMIT_RATE_INTERVAL" envDefault:"30s"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the state of a bucket after a Take.
type Result struct {
	Limit int
	// Remaining is negative when the tokens were not available.
	Remaining int
	ResetAt   time.Time
}

func (r Result) Allowed() bool { return r.Remaining >= 0 }

// RetryAfter is how long a rejected caller should wait, measured from now.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

// Store persists buckets.
type Store interface {
	// Take removes n tokens from the bucket of key if it holds that many and
	// returns what is left. When it does not, the bucket is left unchanged and
	// the returned remaining count is negative.
	Take(ctx context.Context, key string, n int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Limiter applies one bucket configuration over a Store.
type Limiter struct {
	store Store
	cfg   Config
}

func New(store Store, cfg Config) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Limiter{store: store, cfg: cfg}, nil
}

func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	return l.AllowN(ctx, key, 1)
}

func (l *Limiter) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	remaining, resetAt, err := l.store.Take(ctx, key, n, l.cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{Limit: l.cfg.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}

func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

// refill adds the tokens earned since refilled, capped at capacity. The refill
// time only moves by whole intervals so partial intervals are not lost.
func refill(tokens int, refilled, now time.Time, cfg Config) (int, time.Time) {
	if tokens >= cfg.Capacity {
		return cfg.Capacity, now
	}
	intervals := int(now.Sub(refilled) / cfg.RefillInterval)
	if intervals <= 0 {
		return tokens, refilled
	}
	// Enough intervals to fill the bucket from empty.
	full := cfg.Capacity/cfg.RefillRate + 1
	if intervals >= full {
		return cfg.Capacity, now
	}
	tokens = min(tokens+intervals*cfg.RefillRate, cfg.Capacity)
	return tokens, refilled.Add(time.Duration(intervals) * cfg.RefillInterval)
}

// take applies a request for n tokens to a refilled bucket.
func take(tokens, n int) (stored, remaining int) {
	if tokens < n {
		return tokens, tokens - n
	}
	return tokens - n, tokens - n
}
