package ratelimiter

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/adoptmenow/formvalidation/pkg/clientip"
	"github.com/adoptmenow/formvalidation/pkg/logger"
)

const maxKeyLength = 64

// KeyFunc derives the bucket key of a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ByClientIP keys buckets by client address and path, so every form has its
// own allowance.
func ByClientIP(res *clientip.Resolver) KeyFunc {
	return func(r *http.Request) string {
		ip := clientip.FromContext(r.Context())
		if ip == "" {
			ip = res.IP(r)
		}
		if ip == "" {
			return ""
		}
		return Composite(func(*http.Request) string { return ip }, ByPath)(r)
	}
}

// ByPath keys buckets by request path.
func ByPath(r *http.Request) string { return r.URL.Path }

// Composite joins the non-empty keys of fns with ":". Keys longer than 64
// characters are hashed.
func Composite(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		key := strings.Join(parts, ":")
		if len(key) <= maxKeyLength {
			return key
		}
		sum := sha256.Sum256([]byte(key))
		return hex.EncodeToString(sum[:16])
	}
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middleware)

type middleware struct {
	log       *slog.Logger
	now       func() time.Time
	onLimited func(r *http.Request, key string)
}

func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(m *middleware) {
		if l != nil {
			m.log = l
		}
	}
}

// OnLimited is called for every rejected request.
func OnLimited(fn func(r *http.Request, key string)) MiddlewareOption {
	return func(m *middleware) { m.onLimited = fn }
}

// Middleware limits requests with unsafe methods. Store failures let the
// request through and are logged.
func Middleware(l *Limiter, key KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	m := middleware{log: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(&m)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}
			res, err := l.Allow(r.Context(), k)
			if err != nil {
				m.log.ErrorContext(r.Context(), "rate limit check failed", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
			if res.Allowed() {
				next.ServeHTTP(w, r)
				return
			}

			retry := int(res.RetryAfter(m.now()).Round(time.Second).Seconds())
			h.Set("Retry-After", strconv.Itoa(max(1, retry)))
			m.log.WarnContext(r.Context(), "form submission throttled", logger.Path(r.URL.Path))
			if m.onLimited != nil {
				m.onLimited(r, k)
			}
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}
}
