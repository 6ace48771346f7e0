package restkit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restkit/restkit"
	"github.com/restkit/restkit/apitest"
)

func TestCORS_default_headers(t *testing.T) {
	t.Parallel()

	r := restkit.New()
	r.Use(restkit.CORS())
	restkit.Get(r, "/ping", func(_ context.Context, _ *restkit.Void) (*restkit.Void, error) {
		return &restkit.Void{}, nil
	})

	client := apitest.NewClient(t, r)
	res := apitest.Get[restkit.Void](t, client, "/ping")

	assert.Equal(t, "*", res.Headers.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, res.Headers.Get("Access-Control-Allow-Methods"), "GET")
	assert.Contains(t, res.Headers.Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Equal(t, "Origin", res.Headers.Get("Vary"))
}

func TestCORS_preflight(t *testing.T) {
	t.Parallel()

	r := restkit.New()
	r.Use(restkit.CORS(restkit.CORSConfig{
		AllowOrigins:     []string{"https://app.example.com"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	restkit.Post(r, "/items", func(_ context.Context, _ *restkit.Void) (*restkit.Void, error) {
		return &restkit.Void{}, nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodOptions, srv.URL+"/items", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "3600", resp.Header.Get("Access-Control-Max-Age"))
}
