package restkit

import (
	"context"
	"net/http"
	"time"
)

// Timeout returns middleware that bounds each request with a context
// deadline. Handlers observe the deadline through ctx; the connection is
// not forcibly closed.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
