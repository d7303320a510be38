package formrules

import (
	"context"
	"net/http"
	"strings"

	"github.com/adoptmenow/formvalidation/pkg/i18n"
	"github.com/adoptmenow/formvalidation/pkg/logger"
)

type resultContextKey struct{}

// WithResult returns a copy of ctx carrying res.
func WithResult(ctx context.Context, res *Result) context.Context {
	return context.WithValue(ctx, resultContextKey{}, res)
}

// FromContext returns the validation result stored by Middleware.
func FromContext(ctx context.Context) (*Result, bool) {
	res, ok := ctx.Value(resultContextKey{}).(*Result)
	return res, ok && res != nil
}

// Values flattens posted form values, keeping the first value of every key.
func Values(r *http.Request) (map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			values[k] = vs[0]
		}
	}
	return values, nil
}

// Middleware validates POST requests whose path is a key of routes against the
// mapped preset and stores the Result in the request context. Messages use the
// locale set by i18n.Middleware. Requests are always passed on; handlers decide
// how to answer an invalid form.
func Middleware(v *Validator, routes map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			preset, ok := routes[strings.TrimSuffix(r.URL.Path, "/")]
			if !ok {
				preset, ok = routes[r.URL.Path]
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			values, err := Values(r)
			if err != nil {
				http.Error(w, "malformed form body", http.StatusBadRequest)
				return
			}
			res, err := v.Validate(r.Context(), preset, i18n.Locale(r.Context()), values)
			if err != nil {
				v.log.ErrorContext(r.Context(), "form validation failed", logger.Form(preset), logger.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithResult(r.Context(), res)))
		})
	}
}
