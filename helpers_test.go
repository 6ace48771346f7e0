package restkit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/restkit/restkit"
)

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// problemClient posts raw JSON and reads back problem-details fields,
// for tests that exercise malformed or rejected input.
type problemClient struct {
	srv *httptest.Server
}

type problemResult struct {
	status int
	detail string
	errs   []restkit.FieldError
}

func newProblemClient(t *testing.T, r *restkit.Router) *problemClient {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &problemClient{srv: srv}
}

func (c *problemClient) post(t *testing.T, path, body string) problemResult {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, c.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	result := problemResult{status: resp.StatusCode}

	var p restkit.Problem
	if json.NewDecoder(resp.Body).Decode(&p) == nil {
		result.detail = p.Detail
		result.errs = p.Errors
	}
	return result
}
