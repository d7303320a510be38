package formrules

import (
	"context"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MemoryRegistry is an in-process EmailRegistry.
type MemoryRegistry struct {
	mu     sync.RWMutex
	emails map[string]struct{}
}

func NewMemoryRegistry(emails ...string) *MemoryRegistry {
	r := &MemoryRegistry{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		r.emails[normalizeEmail(e)] = struct{}{}
	}
	return r
}

func (r *MemoryRegistry) Exists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.emails[normalizeEmail(email)]
	return ok, nil
}

func (r *MemoryRegistry) Register(_ context.Context, email string) error {
	key := normalizeEmail(email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.emails[key]; ok {
		return ErrEmailTaken
	}
	r.emails[key] = struct{}{}
	return nil
}

// DefaultRegistryKey is the Redis set used when RedisRegistry has no key.
const DefaultRegistryKey = "formvalidation:emails"

// RedisRegistry keeps registered emails in a Redis set.
type RedisRegistry struct {
	client redis.UniversalClient
	key    string
}

func NewRedisRegistry(client redis.UniversalClient, key string) *RedisRegistry {
	if key == "" {
		key = DefaultRegistryKey
	}
	return &RedisRegistry{client: client, key: key}
}

func (r *RedisRegistry) Exists(ctx context.Context, email string) (bool, error) {
	return r.client.SIsMember(ctx, r.key, normalizeEmail(email)).Result()
}

// Register adds email to the set. SADD reports zero added members for an
// address that is already present.
func (r *RedisRegistry) Register(ctx context.Context, email string) error {
	added, err := r.client.SAdd(ctx, r.key, normalizeEmail(email)).Result()
	if err != nil {
		return err
	}
	if added == 0 {
		return ErrEmailTaken
	}
	return nil
}
