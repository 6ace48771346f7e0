package restkit_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/restkit/restkit"
	"github.com/restkit/restkit/apitest"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	r := restkit.New()
	r.Use(restkit.Recovery())
	restkit.Get(r, "/panic", func(_ context.Context, _ *restkit.Void) (*restkit.Void, error) {
		panic("boom")
	})
	restkit.Get(r, "/ok", func(_ context.Context, _ *restkit.Void) (*restkit.Void, error) {
		return &restkit.Void{}, nil
	})

	client := apitest.NewClient(t, r)

	res := apitest.Get[restkit.Void](t, client, "/panic")
	assert.Equal(t, http.StatusInternalServerError, res.Status)

	// The server keeps working after a panic.
	ok := apitest.Get[restkit.Void](t, client, "/ok")
	assert.Equal(t, http.StatusNoContent, ok.Status)
}

func TestUse_order(t *testing.T) {
	t.Parallel()

	mark := func(value string) restkit.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Add("X-Mark", value)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := restkit.New()
	r.Use(mark("outer"))
	r.Use(mark("inner"))
	restkit.Get(r, "/ping", func(_ context.Context, _ *restkit.Void) (*restkit.Void, error) {
		return &restkit.Void{}, nil
	})

	client := apitest.NewClient(t, r)
	res := apitest.Get[restkit.Void](t, client, "/ping")

	assert.Equal(t, []string{"outer", "inner"}, res.Headers.Values("X-Mark"))
}
