package restkit_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restkit/restkit"
	"github.com/restkit/restkit/apitest"
)

func rateLimitedRouter(cfg restkit.RateLimitConfig) *restkit.Router {
	r := restkit.New()
	r.Use(restkit.RateLimit(cfg))
	restkit.Get(r, "/ping", func(_ context.Context, _ *restkit.Void) (*restkit.Void, error) {
		return &restkit.Void{}, nil
	})
	return r
}

func TestRateLimit_allows_within_burst(t *testing.T) {
	t.Parallel()

	r := rateLimitedRouter(restkit.RateLimitConfig{Rate: 1, Burst: 3})
	client := apitest.NewClient(t, r)

	for range 3 {
		res := apitest.Get[restkit.Void](t, client, "/ping")
		assert.Equal(t, http.StatusNoContent, res.Status)
	}
}

func TestRateLimit_rejects_over_burst(t *testing.T) {
	t.Parallel()

	r := rateLimitedRouter(restkit.RateLimitConfig{Rate: 0.5, Burst: 1})
	client := apitest.NewClient(t, r)

	first := apitest.Get[restkit.Void](t, client, "/ping")
	assert.Equal(t, http.StatusNoContent, first.Status)

	second := apitest.Get[restkit.Void](t, client, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, second.Status)
	assert.NotEmpty(t, second.Headers.Get("Retry-After"))
}

func TestRateLimit_keys_are_independent(t *testing.T) {
	t.Parallel()

	r := rateLimitedRouter(restkit.RateLimitConfig{
		Rate:    0.5,
		Burst:   1,
		KeyFunc: func(r *http.Request) string { return r.Header.Get("X-API-Key") },
	})
	client := apitest.NewClient(t, r)

	client.SetHeader("X-API-Key", "alice")
	first := apitest.Get[restkit.Void](t, client, "/ping")
	assert.Equal(t, http.StatusNoContent, first.Status)
	blocked := apitest.Get[restkit.Void](t, client, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Status)

	client.SetHeader("X-API-Key", "bob")
	other := apitest.Get[restkit.Void](t, client, "/ping")
	assert.Equal(t, http.StatusNoContent, other.Status)
}

func TestRateLimit_custom_on_limit(t *testing.T) {
	t.Parallel()

	r := rateLimitedRouter(restkit.RateLimitConfig{
		Rate:  0.5,
		Burst: 1,
		OnLimit: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	})
	client := apitest.NewClient(t, r)

	apitest.Get[restkit.Void](t, client, "/ping")
	res := apitest.Get[restkit.Void](t, client, "/ping")
	assert.Equal(t, http.StatusServiceUnavailable, res.Status)
}
