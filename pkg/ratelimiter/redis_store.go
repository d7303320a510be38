package ratelimiter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRedisPrefix namespaces bucket keys.
	DefaultRedisPrefix = "formvalidation:ratelimit:"
	maxTxRetries       = 5
)

// RedisStore keeps buckets in Redis hashes updated under WATCH, so instances
// sharing a server share the limit.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) Take(ctx context.Context, key string, n int, cfg Config) (int, time.Time, error) {
	k := s.prefix + key
	var (
		remaining int
		resetAt   time.Time
	)
	txf := func(tx *redis.Tx) error {
		now := s.now()
		tokens, refilled := cfg.Capacity, now
		vals, err := tx.HMGet(ctx, k, "tokens", "refilled").Result()
		if err != nil {
			return err
		}
		if t, ok := parseInt(vals[0]); ok {
			if ms, ok := parseInt(vals[1]); ok {
				tokens, refilled = int(t), time.UnixMilli(ms)
			}
		}
		tokens, refilled = refill(tokens, refilled, now, cfg)
		tokens, remaining = take(tokens, n)
		resetAt = refilled.Add(cfg.RefillInterval)

		// A bucket untouched for this long is full again.
		ttl := time.Duration(cfg.Capacity/cfg.RefillRate+1) * cfg.RefillInterval
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, k, "tokens", tokens, "refilled", refilled.UnixMilli())
			p.Expire(ctx, k, ttl)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := s.client.Watch(ctx, txf, k)
		if err == nil {
			return remaining, resetAt, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	return 0, time.Time{}, ErrStoreUnavailable
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

func parseInt(v any) (int64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
