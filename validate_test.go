package restkit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restkit/restkit"
)

func requireProblem(t *testing.T, err error) *restkit.Problem {
	t.Helper()
	require.Error(t, err)
	var p *restkit.Problem
	require.True(t, errors.As(err, &p))
	assert.Equal(t, "Validation Failed", p.Title)
	return p
}

func TestValidateConstraints_strings(t *testing.T) {
	t.Parallel()

	type req struct {
		Name string `json:"name" minLength:"3" maxLength:"5"`
		Code string `json:"code" pattern:"^[A-Z]{2}$"`
		Role string `json:"role" enum:"admin,member"`
	}

	tests := map[string]struct {
		input     req
		wantField string
		wantMsg   string
	}{
		"too short": {
			input:     req{Name: "ab"},
			wantField: "name",
			wantMsg:   "at least 3 characters",
		},
		"too long": {
			input:     req{Name: "abcdef"},
			wantField: "name",
			wantMsg:   "at most 5 characters",
		},
		"pattern mismatch": {
			input:     req{Code: "x9"},
			wantField: "code",
			wantMsg:   "must match pattern",
		},
		"not in enum": {
			input:     req{Role: "root"},
			wantField: "role",
			wantMsg:   "must be one of [admin,member]",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := requireProblem(t, restkit.ValidateConstraints(tc.input))
			require.Len(t, p.Errors, 1)
			assert.Equal(t, tc.wantField, p.Errors[0].Field)
			assert.Contains(t, p.Errors[0].Message, tc.wantMsg)
		})
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, restkit.ValidateConstraints(req{Name: "abcd", Code: "AB", Role: "admin"}))
	})
}

func TestValidateConstraints_numbers(t *testing.T) {
	t.Parallel()

	type req struct {
		Age   int     `json:"age" minimum:"18" maximum:"120"`
		Score float64 `json:"score" maximum:"1.0"`
	}

	p := requireProblem(t, restkit.ValidateConstraints(req{Age: 12, Score: 1.5}))
	require.Len(t, p.Errors, 2)
	assert.Equal(t, "age", p.Errors[0].Field)
	assert.Contains(t, p.Errors[0].Message, "at least 18")
	assert.Equal(t, "score", p.Errors[1].Field)
	assert.Contains(t, p.Errors[1].Message, "at most 1.0")

	require.NoError(t, restkit.ValidateConstraints(req{Age: 30, Score: 0.5}))
}

func TestValidateConstraints_slices(t *testing.T) {
	t.Parallel()

	type req struct {
		Tags []string `json:"tags" minItems:"1" maxItems:"3"`
	}

	p := requireProblem(t, restkit.ValidateConstraints(req{Tags: []string{"a", "b", "c", "d"}}))
	require.Len(t, p.Errors, 1)
	assert.Contains(t, p.Errors[0].Message, "at most 3 items")

	require.NoError(t, restkit.ValidateConstraints(req{Tags: []string{"a"}}))
}

func TestValidateConstraints_required(t *testing.T) {
	t.Parallel()

	type req struct {
		Name string `json:"name" required:"true"`
		Age  int    `json:"age" required:"true"`
	}

	p := requireProblem(t, restkit.ValidateConstraints(req{}))
	require.Len(t, p.Errors, 2)
	assert.Equal(t, "name", p.Errors[0].Field)
	assert.Equal(t, "is required", p.Errors[0].Message)
	assert.Equal(t, "age", p.Errors[1].Field)

	require.NoError(t, restkit.ValidateConstraints(req{Name: "x", Age: 1}))
}

func TestValidateConstraints_optional_zero_skipped(t *testing.T) {
	t.Parallel()

	// Constraints only bind populated optional fields.
	type req struct {
		Role string `json:"role" enum:"admin,member"`
		Name string `json:"name" minLength:"3"`
	}

	require.NoError(t, restkit.ValidateConstraints(req{}))
}

func TestValidateConstraints_body_prefix(t *testing.T) {
	t.Parallel()

	type req struct {
		ID   string `path:"id"`
		Body struct {
			Email string `json:"email" required:"true"`
		}
	}

	p := requireProblem(t, restkit.ValidateConstraints(req{ID: "x"}))
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "body.email", p.Errors[0].Field)
}

func TestValidateConstraints_nested_struct(t *testing.T) {
	t.Parallel()

	type address struct {
		City string `json:"city" minLength:"2"`
	}
	type req struct {
		Address address `json:"address"`
	}

	p := requireProblem(t, restkit.ValidateConstraints(req{Address: address{City: "x"}}))
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "address.city", p.Errors[0].Field)
}

func TestValidateConstraints_aggregates_all(t *testing.T) {
	t.Parallel()

	type req struct {
		Name string `json:"name" required:"true"`
		Role string `json:"role" required:"true"`
	}

	p := requireProblem(t, restkit.ValidateConstraints(req{}))
	assert.Len(t, p.Errors, 2)
	assert.Contains(t, p.Detail, "2 constraint violation(s)")
}

type selfValidated struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (r *selfValidated) Validate() error {
	if r.From > r.To {
		return restkit.Error(422, "from must not exceed to")
	}
	return nil
}

func TestSelfValidator(t *testing.T) {
	t.Parallel()

	r := restkit.New()
	restkit.Post(r, "/range", func(_ context.Context, _ *selfValidated) (*restkit.Void, error) {
		return &restkit.Void{}, nil
	})

	client := newProblemClient(t, r)

	res := client.post(t, "/range", `{"from": 5, "to": 1}`)
	assert.Equal(t, 422, res.status)
	assert.Contains(t, res.detail, "from must not exceed to")

	ok := client.post(t, "/range", `{"from": 1, "to": 5}`)
	assert.Equal(t, 204, ok.status)
}

type rejectAll struct{}

func (rejectAll) Validate(any) error {
	return restkit.Error(403, "rejected by policy")
}

func TestRouterValidator(t *testing.T) {
	t.Parallel()

	type req struct {
		Name string `json:"name"`
	}

	r := restkit.New(restkit.WithValidator(rejectAll{}))
	restkit.Post(r, "/items", func(_ context.Context, _ *req) (*restkit.Void, error) {
		return &restkit.Void{}, nil
	})

	client := newProblemClient(t, r)
	res := client.post(t, "/items", `{"name": "x"}`)

	assert.Equal(t, 403, res.status)
	assert.Contains(t, res.detail, "rejected by policy")
}
