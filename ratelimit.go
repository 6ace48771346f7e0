package restkit

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Rate            float64                                      // requests per second
	Burst           int                                          // max burst
	KeyFunc         func(r *http.Request) string                 // default: remote IP
	OnLimit         func(w http.ResponseWriter, r *http.Request) // default: 429 response
	CleanupInterval time.Duration                                // how often to prune idle buckets (default: 1m)
	MaxIdle         time.Duration                                // drop buckets idle longer than this (default: 5m)
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns middleware applying a token bucket per key. Idle
// buckets are pruned lazily on request, so no background goroutine runs.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(r *http.Request) string {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				return r.RemoteAddr
			}
			return host
		}
	}
	if cfg.OnLimit == nil {
		cfg.OnLimit = func(w http.ResponseWriter, _ *http.Request) {
			writeProblem(w, Error(http.StatusTooManyRequests, "rate limit exceeded"))
		}
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 5 * time.Minute
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastPrune time.Time
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.KeyFunc(r)

			mu.Lock()
			now := time.Now()

			if now.Sub(lastPrune) >= cfg.CleanupInterval {
				for k, b := range buckets {
					if now.Sub(b.lastSeen) > cfg.MaxIdle {
						delete(buckets, k)
					}
				}
				lastPrune = now
			}

			b, ok := buckets[key]
			if !ok {
				b = &bucket{limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)}
				buckets[key] = b
			}
			b.lastSeen = now
			mu.Unlock()

			if !b.limiter.Allow() {
				w.Header().Set("Retry-After", strconv.FormatFloat(1/cfg.Rate, 'f', 0, 64))
				cfg.OnLimit(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
